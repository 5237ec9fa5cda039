// ABOUTME: Exhaustive spring design search over the discretized parameter grid
// ABOUTME: Enumerates WD, ID, SN, FL with pruning, scores candidates, and ranks the top N

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

// SpringSearcher runs the sweep for a fixed grid configuration
type SpringSearcher struct {
	sweep models.SweepConfig
}

// NewSpringSearcher creates a searcher. Zero-valued step fields fall back to
// the default grid so a partially filled config never produces empty ranges.
func NewSpringSearcher(sweep models.SweepConfig) *SpringSearcher {
	def := models.DefaultSweepConfig()
	if sweep.WireDiameterStep <= 0 {
		sweep.WireDiameterMin, sweep.WireDiameterMax, sweep.WireDiameterStep =
			def.WireDiameterMin, def.WireDiameterMax, def.WireDiameterStep
	}
	if sweep.InnerDiameterStep <= 0 {
		sweep.InnerDiameterStep = def.InnerDiameterStep
	}
	if sweep.CoilStep <= 0 {
		sweep.CoilStep = def.CoilStep
	}
	if sweep.CoilCountMax <= 0 {
		sweep.CoilCountMin, sweep.CoilCountMax = def.CoilCountMin, def.CoilCountMax
	}
	if sweep.FreeLengthStep <= 0 {
		sweep.FreeLengthStep = def.FreeLengthStep
	}
	if sweep.Scoring == "" {
		sweep.Scoring = models.ScoringFull
	}
	return &SpringSearcher{sweep: sweep}
}

// Sweep returns the grid configuration in use
func (s *SpringSearcher) Sweep() models.SweepConfig {
	return s.sweep
}

// innerDiameterRange snaps the shaft/head clearance inward onto the ID grid.
func (s *SpringSearcher) innerDiameterRange(in models.AssemblyInput) []float64 {
	lo := snapUp(in.ScrewShaftDiameter+s.sweep.ClearanceMargin, s.sweep.InnerDiameterStep)
	hi := snapDown(in.ScrewHeadDiameter-s.sweep.ClearanceMargin, s.sweep.InnerDiameterStep)
	return FRange(lo, hi, s.sweep.InnerDiameterStep)
}

// maxGridPoints caps the (ID, SN, FL) tuples visited per wire diameter
const maxGridPoints = 10_000_000

// ErrGridTooLarge is returned when an assembly would expand into more tuples
// than a single sweep is allowed to visit.
var ErrGridTooLarge = fmt.Errorf("%w: design grid too large", models.ErrInvalidInput)

// gridPoints estimates the tuples per wire diameter without building any range.
func (s *SpringSearcher) gridPoints(in models.AssemblyInput) float64 {
	ids := (in.ScrewHeadDiameter-in.ScrewShaftDiameter)/s.sweep.InnerDiameterStep + 1
	sns := (s.sweep.CoilCountMax-s.sweep.CoilCountMin)/s.sweep.CoilStep + 1
	fls := in.SpringRoomUnlock/s.sweep.FreeLengthStep + 1
	return ids * sns * fls
}

// Enumerate walks the grid and returns every candidate that survives the hard
// prunes and reaches the minimum score, in enumeration order. The context is
// checked before every coil count; on cancellation no partial result is
// returned.
func (s *SpringSearcher) Enumerate(ctx context.Context, in models.AssemblyInput) ([]models.CandidateSpring, models.SweepStats, error) {
	var stats models.SweepStats
	retained := []models.CandidateSpring{}

	// NaN and Inf never satisfy <=, so they are rejected here too
	if n := s.gridPoints(in); !(n <= maxGridPoints) {
		return nil, stats, fmt.Errorf("%w (%.3g tuples per wire diameter, limit %d)", ErrGridTooLarge, n, maxGridPoints)
	}

	coilCounts := FRange(s.sweep.CoilCountMin, s.sweep.CoilCountMax, s.sweep.CoilStep)
	innerDiameters := s.innerDiameterRange(in)

	for _, wd := range FRange(s.sweep.WireDiameterMin, s.sweep.WireDiameterMax, s.sweep.WireDiameterStep) {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		for _, id := range innerDiameters {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
			for _, sn := range coilCounts {
				if err := ctx.Err(); err != nil {
					return nil, stats, err
				}
				if activeCoils(sn) <= 0 {
					stats.Enumerated++
					stats.PrunedActiveCoils++
					continue
				}

				sl := solidLength(wd, sn)
				for _, fl := range FRange(sl+s.sweep.FreeLengthMargin, in.SpringRoomUnlock+sl, s.sweep.FreeLengthStep) {
					stats.Enumerated++

					c, pruned := Evaluate(in, wd, id, sn, fl)
					switch pruned {
					case pruneActiveCoils:
						stats.PrunedActiveCoils++
						continue
					case prunePreload:
						stats.PrunedPreload++
						continue
					case pruneStack:
						stats.PrunedStack++
						continue
					}

					c.Score, c.Checks, c.Reasons = Score(c, in, s.sweep.Scoring)
					if c.Score < s.sweep.MinScore {
						stats.BelowMinScore++
						continue
					}
					retained = append(retained, c)
				}
			}
		}
	}

	stats.Retained = len(retained)
	return retained, stats, nil
}

// Rank sorts candidates by descending score, keeping enumeration order for
// equal scores, and returns at most n of them. The input is not modified.
func Rank(candidates []models.CandidateSpring, n int) []models.CandidateSpring {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b models.CandidateSpring) int {
		return b.Score - a.Score
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []models.CandidateSpring{}
	}
	return ranked
}

// Search runs the full sweep for one assembly and returns the ranked top
// ResultCount candidates. Returning fewer than requested is a normal outcome
// reported through Shortfall; an empty result is reported through Empty.
func (s *SpringSearcher) Search(ctx context.Context, in models.AssemblyInput) (models.SearchResult, error) {
	start := time.Now()
	in = in.WithDefaults()

	candidates, stats, err := s.Enumerate(ctx, in)
	if errors.Is(err, ErrGridTooLarge) {
		searchTotal.WithLabelValues(outcomeRejected).Inc()
		return models.SearchResult{}, err
	}
	if err != nil {
		searchTotal.WithLabelValues(outcomeCanceled).Inc()
		return models.SearchResult{}, fmt.Errorf("spring search interrupted: %w", err)
	}

	ranked := Rank(candidates, in.ResultCount)
	result := models.SearchResult{
		Input:         in,
		Sweep:         s.sweep,
		Candidates:    ranked,
		Requested:     in.ResultCount,
		Returned:      len(ranked),
		TotalRetained: len(candidates),
		Shortfall:     len(candidates) < in.ResultCount,
		Empty:         len(candidates) == 0,
		MaxScore:      s.sweep.Scoring.MaxScore(),
		Stats:         stats,
	}
	if result.Empty {
		result.Message = models.NoFeasibleMessage
	} else if result.Shortfall {
		result.Message = fmt.Sprintf("only %d combinations available, fewer than the %d requested", result.TotalRetained, result.Requested)
	}

	elapsed := time.Since(start)
	observeSearch(result, elapsed)
	slog.Debug("Spring sweep complete",
		"enumerated", stats.Enumerated,
		"pruned_preload", stats.PrunedPreload,
		"pruned_stack", stats.PrunedStack,
		"below_min_score", stats.BelowMinScore,
		"retained", stats.Retained,
		"returned", result.Returned,
		"elapsed", elapsed,
	)

	return result, nil
}
