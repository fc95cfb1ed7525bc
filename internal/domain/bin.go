package domain

import (
	"math"
	"strconv"
)

// Overflow bin sentinels. Any plausible air temperature lies strictly
// between them, so the first and last bins absorb everything outside the
// scenario's nominal range.
const (
	OverflowMin = -100.0
	OverflowMax = 100.0
)

// Binning maps temperatures to half-open bins (lo, hi]. Boundaries[0] is
// always OverflowMin and Boundaries[len-1] always OverflowMax, regardless
// of how the interior boundaries were built; bin i spans
// (Boundaries[i], Boundaries[i+1]].
type Binning struct {
	Boundaries []float64
}

// NewBinning builds the bin boundaries for a scenario: interior boundaries
// at RangeMin + k·BinWidth for k = 0..n−1 with n = ceil((max−min)/width),
// wrapped in the two overflow sentinels. The ceil stepping reproduces the
// reference boundary list exactly: when (max−min)/width lands a hair above
// an integer, the near-max boundary is included.
func NewBinning(cfg ScenarioConfig) Binning {
	n := int(math.Ceil((cfg.RangeMax - cfg.RangeMin) / cfg.BinWidth))

	boundaries := make([]float64, 0, n+2)
	boundaries = append(boundaries, OverflowMin)
	for k := 0; k < n; k++ {
		boundaries = append(boundaries, cfg.RangeMin+float64(k)*cfg.BinWidth)
	}
	boundaries = append(boundaries, OverflowMax)

	return Binning{Boundaries: boundaries}
}

// NumBins returns the bin count: interior bins plus the two overflow bins.
func (b Binning) NumBins() int {
	return len(b.Boundaries) - 1
}

// Assign returns the bin index for a temperature, or -1 for NaN. Every
// real value gets exactly one bin: anything at or below the low sentinel
// falls into bin 0, anything above the high sentinel into the last bin.
func (b Binning) Assign(t float64) int {
	if math.IsNaN(t) {
		return -1
	}
	for i := 0; i < b.NumBins()-1; i++ {
		if t <= b.Boundaries[i+1] {
			return i
		}
	}
	return b.NumBins() - 1
}

// Label renders bin i as a half-open interval, e.g. "(-100, -29.2]".
func (b Binning) Label(i int) string {
	lo := strconv.FormatFloat(b.Boundaries[i], 'g', -1, 64)
	hi := strconv.FormatFloat(b.Boundaries[i+1], 'g', -1, 64)
	return "(" + lo + ", " + hi + "]"
}
