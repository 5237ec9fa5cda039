// ABOUTME: Step-quantized decimal range generator for the design sweep
// ABOUTME: Rounds every value at generation time so comparisons never drift

package services

import (
	"math"
	"strconv"
)

// rangeEpsilon absorbs representation error when comparing against stop
const rangeEpsilon = 1e-9

// round2 rounds the stored binary value to two decimals. Only exact ties
// round half to even, so 0.085 (stored slightly above) becomes 0.09.
// Scaling by 100 first would land on a false tie and round down.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FRange returns start, start+step, ... while the value does not exceed stop.
// Values are computed as start+i*step and rounded to two decimals, so drift
// never accumulates. Requires step > 0; otherwise the range is empty.
func FRange(start, stop, step float64) []float64 {
	if !(step > 0) || math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(stop) || math.IsInf(stop, 0) {
		return nil
	}
	if stop < start-rangeEpsilon {
		return nil
	}

	var values []float64
	for i := 0; ; i++ {
		v := round2(start + float64(i)*step)
		if v > stop+rangeEpsilon {
			break
		}
		values = append(values, v)
	}
	return values
}

// snapUp returns the smallest multiple of step that is >= v.
func snapUp(v, step float64) float64 {
	// Round the quotient first so 12.000000000000002 does not ceil to 13
	q := math.Round((v/step)*1e6) / 1e6
	return round2(math.Ceil(q) * step)
}

// snapDown returns the largest multiple of step that is <= v.
func snapDown(v, step float64) float64 {
	q := math.Round((v/step)*1e6) / 1e6
	return round2(math.Floor(q) * step)
}
