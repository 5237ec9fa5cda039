// ABOUTME: Physics evaluator for a single spring design tuple
// ABOUTME: Computes geometry, spring rate, forces, and chip pressure with cascading rounding

package services

import "github.com/Kevin-Gith/spring-design-calculator/backend/models"

// pruneReason explains why a tuple never reaches scoring
type pruneReason int

const (
	pruneNone pruneReason = iota
	pruneActiveCoils
	prunePreload
	pruneStack
)

// activeCoils returns SN - 2; the two end coils do not deflect.
func activeCoils(sn float64) float64 {
	return round2(sn - 2)
}

// solidLength is the coil-bound height including the closed ends.
func solidLength(wd, sn float64) float64 {
	return round2((sn + 1) * wd)
}

// springRate is G*d^4 / (8*D^3*n) in kgf/mm.
func springRate(g, wd, md, nc float64) float64 {
	return round2((g * wd * wd * wd * wd) / (8 * md * md * md * nc))
}

// Evaluate computes every derived quantity for one (WD, ID, SN, FL) tuple.
// Each value is rounded to two decimals before it feeds the next formula.
// The returned pruneReason is non-zero when the tuple violates a hard
// constraint; in that case the candidate is incomplete and must be dropped.
func Evaluate(in models.AssemblyInput, wd, id, sn, fl float64) (models.CandidateSpring, pruneReason) {
	c := models.CandidateSpring{
		WireDiameter:  wd,
		InnerDiameter: id,
		CoilCount:     sn,
		FreeLength:    fl,
	}

	c.ActiveCoils = activeCoils(sn)
	if c.ActiveCoils <= 0 {
		return c, pruneActiveCoils
	}

	c.OuterDiameter = round2(id + 2*wd)
	c.MeanDiameter = round2(id + wd)
	c.SpringRate = springRate(in.EffectiveShearModulus(), wd, c.MeanDiameter, c.ActiveCoils)
	c.SolidLength = solidLength(wd, sn)
	c.CoilBoundLength = round2(sn * wd)

	c.Preload = round2(fl - in.SpringRoomUnlock)
	if c.Preload <= 0 {
		return c, prunePreload
	}

	c.Pitch = round2(fl / sn)
	c.ScrewRoomLocked = round2(in.SpringRoomUnlock - in.ScrewStroke)
	c.Stroke = round2(c.Preload + in.ScrewStroke)
	c.StackCheck = round2(c.Stroke + c.SolidLength)
	if c.StackCheck > fl {
		return c, pruneStack
	}

	c.PerScrewForce = round2(c.Stroke * c.SpringRate)
	c.TotalForceKgf = round2(c.PerScrewForce * float64(in.ScrewCount))
	c.TotalForceLbf = round2(c.TotalForceKgf * models.KgfToLbf)
	c.ChipPressurePSI = round2((c.TotalForceKgf / (in.ChipLength * in.ChipWidth)) * models.KgfPerMM2ToPSI)

	return c, pruneNone
}
