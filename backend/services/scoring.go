// ABOUTME: Feasibility scorer for evaluated spring candidates
// ABOUTME: Counts satisfied conditions and records a reason for each failure

package services

import (
	"fmt"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

// Score evaluates the feasibility conditions in fixed order: chip pressure
// band, positive preload, pitch limit, and (full mode only) solid length
// ratio. It returns the number of passing conditions, the per-condition
// outcomes, and one reason per failed condition.
func Score(c models.CandidateSpring, in models.AssemblyInput, mode models.ScoringMode) (int, []models.Check, []string) {
	lo := in.ChipMaxPSI * (1 - models.PSIBand)
	hi := in.ChipMaxPSI * (1 + models.PSIBand)

	checks := []models.Check{
		{
			Name:   models.CheckChipPressure,
			Passed: lo < c.ChipPressurePSI && c.ChipPressurePSI < hi,
			Reason: fmt.Sprintf("chip pressure out of range: %.2f lbf/in^2 (target %.2f-%.2f)", c.ChipPressurePSI, lo, hi),
		},
		{
			Name:   models.CheckPreload,
			Passed: c.Preload > 0,
			Reason: fmt.Sprintf("preload too small: %.2f mm", c.Preload),
		},
		{
			Name:   models.CheckPitch,
			Passed: c.Pitch < models.MaxPitchMM,
			Reason: fmt.Sprintf("pitch too large: %.2f mm (limit %.1f mm)", c.Pitch, models.MaxPitchMM),
		},
	}
	if mode != models.ScoringLegacy {
		checks = append(checks, models.Check{
			Name:   models.CheckSolidLength,
			Passed: c.SolidLength >= models.SolidLengthRatio*c.FreeLength,
			Reason: fmt.Sprintf("solid length too small: %.2f mm, must be at least 75%% of free length %.2f mm", c.SolidLength, c.FreeLength),
		})
	}

	score := 0
	reasons := []string{}
	for i := range checks {
		if checks[i].Passed {
			score++
			checks[i].Reason = ""
			continue
		}
		reasons = append(reasons, checks[i].Reason)
	}
	return score, checks, reasons
}
