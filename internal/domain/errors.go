package domain

import "fmt"

// InputShapeError reports a structurally unusable series: wrong record
// count or an out-of-range calendar field. It is fatal for the whole
// (site, scenario) run; no partial result is produced.
type InputShapeError struct {
	Got    int
	Index  int
	Reason string
}

func (e *InputShapeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("input shape: %d records", e.Got)
	}
	return fmt.Sprintf("input shape: %s (records=%d, index=%d)", e.Reason, e.Got, e.Index)
}

// ConfigError reports an unusable scenario configuration. It is detected
// before any computation starts.
type ConfigError struct {
	Scenario string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Scenario == "" {
		return "scenario config: " + e.Reason
	}
	return fmt.Sprintf("scenario config %q: %s", e.Scenario, e.Reason)
}

// DataQualityIssue flags a non-fatal problem with one hour of input,
// currently always a missing temperature. The hour contributes zero
// degree-hours and is excluded from means and counts; the rest of the
// series is processed normally.
type DataQualityIssue struct {
	Index  int
	Month  int
	Day    int
	Hour   int
	Reason string
}

func (i DataQualityIssue) String() string {
	return fmt.Sprintf("hour %d (%02d-%02d %02d:00): %s", i.Index, i.Month, i.Day, i.Hour, i.Reason)
}
