package domain

import "math"

// DegreeHours computes the raw per-hour degree-hours from raw hourly
// temperatures (never from block means):
//
//	heating: max((threshold − temp) / 24, 0)
//	cooling: max((temp − threshold) / 24, 0)
//
// The division by 24 apportions a degree-day demand unit to one hour.
// Missing temperatures contribute zero.
func DegreeHours(temps []float64, degreeType DegreeType, threshold float64) []float64 {
	out := make([]float64, len(temps))
	for i, t := range temps {
		if math.IsNaN(t) {
			continue
		}
		var dh float64
		if degreeType == Heating {
			dh = (threshold - t) / HoursPerDay
		} else {
			dh = (t - threshold) / HoursPerDay
		}
		if dh > 0 {
			out[i] = dh
		}
	}
	return out
}
