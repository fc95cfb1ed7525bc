package domain

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BlockMeans assigns every index the arithmetic mean of its fixed,
// non-overlapping block of size block hours. Blocks are anchored at index
// 0, not at calendar boundaries, and the final block may be shorter. This
// is deliberately not a rolling or centered average: every hour in block k
// carries the identical value, which is what the gate comparisons key on.
//
// NaN temperatures are excluded from both numerator and denominator. A
// block with no valid temperature yields NaN for all its hours, which
// every gate comparison treats as a failed condition.
func BlockMeans(temps []float64, block int) []float64 {
	out := make([]float64, len(temps))
	valid := make([]float64, 0, block)

	for start := 0; start < len(temps); start += block {
		end := min(start+block, len(temps))

		valid = valid[:0]
		for _, t := range temps[start:end] {
			if !math.IsNaN(t) {
				valid = append(valid, t)
			}
		}

		m := math.NaN()
		if len(valid) > 0 {
			m = stat.Mean(valid, nil)
		}
		for i := start; i < end; i++ {
			out[i] = m
		}
	}
	return out
}
