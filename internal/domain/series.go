package domain

import "math"

const (
	// HoursPerDay and HoursPerWeek are the fixed block sizes for the daily
	// and weekly mean-temperature blocks.
	HoursPerDay  = 24
	HoursPerWeek = 168

	// YearHours and LeapYearHours are the only accepted series lengths:
	// one full year of hourly records, with or without February 29.
	YearHours     = 8760
	LeapYearHours = 8784
)

// HourlyRecord is one hour of weather observation for one site.
// Hour is already normalized to 0-23 (EPW files count 1-24; the parser
// shifts it). TempAir is the dry-bulb temperature in °C; NaN marks a
// missing observation.
type HourlyRecord struct {
	Month   int
	Day     int
	Hour    int
	TempAir float64
}

// Missing reports whether the record's temperature observation is absent.
func (r HourlyRecord) Missing() bool {
	return math.IsNaN(r.TempAir)
}

// TemperatureSeries is one site's ordered hourly records for one year,
// indexed 0..N-1 in time order. It is the immutable input to every
// scenario run; derived values are recomputed per scenario and never
// written back.
type TemperatureSeries []HourlyRecord

// Validate checks the structural invariants a scenario run depends on:
// a full-year record count and in-range calendar fields. Temperature is
// deliberately not checked here; missing temperatures are a data-quality
// concern, not a shape error.
func (s TemperatureSeries) Validate() error {
	if n := len(s); n != YearHours && n != LeapYearHours {
		return &InputShapeError{Got: n, Reason: "record count is not a full year of hours"}
	}
	for i, r := range s {
		if r.Month < 1 || r.Month > 12 {
			return &InputShapeError{Got: len(s), Index: i, Reason: "month out of range"}
		}
		if r.Day < 1 || r.Day > 31 {
			return &InputShapeError{Got: len(s), Index: i, Reason: "day out of range"}
		}
		if r.Hour < 0 || r.Hour > 23 {
			return &InputShapeError{Got: len(s), Index: i, Reason: "hour out of range"}
		}
	}
	return nil
}

// Temperatures returns the raw hourly temperature column.
func (s TemperatureSeries) Temperatures() []float64 {
	temps := make([]float64, len(s))
	for i, r := range s {
		temps[i] = r.TempAir
	}
	return temps
}

// Site identifies the weather station a series belongs to, taken from the
// EPW LOCATION header. City and StateProv travel with every aggregate row
// so concatenated multi-site output stays attributable.
type Site struct {
	City      string
	StateProv string
	Country   string
	WMOCode   string
	Latitude  float64
	Longitude float64
	TZOffset  float64
	Altitude  float64
}
