package domain

// DegreeType selects the direction of the degree-hour formula.
type DegreeType string

const (
	Heating DegreeType = "heating"
	Cooling DegreeType = "cooling"
)

// GateStrategy selects which gate variant a scenario uses.
type GateStrategy string

const (
	// GateSimpleOr keeps an hour when at least one enabled mean-temperature
	// condition (daily, weekly) passes. Per-hour granularity.
	GateSimpleOr GateStrategy = "simple_or"

	// GateCDDOr keeps whole calendar days: all 24 hours of a day are kept
	// when the daily mean exceeds the daily threshold OR the trailing
	// 7-day cooling-degree-day mean exceeds the trigger.
	GateCDDOr GateStrategy = "cdd_or"
)

// DefaultCDDBaseTemp is the cooling-degree-day base temperature (67 °F)
// used when a CDD scenario does not set its own.
const DefaultCDDBaseTemp = 19.44

// ScenarioConfig is one named design case: thresholds, bin layout, and
// gate strategy for a heating or cooling degree-hour analysis.
type ScenarioConfig struct {
	Name       string
	DegreeType DegreeType

	// DailyThreshold is both the degree-hour base and the daily gate
	// threshold, matching the reference data set.
	DailyThreshold float64

	// WeeklyThreshold is the weekly mean threshold for GateSimpleOr, or
	// the CDD_week trigger (in degree-days) for GateCDDOr.
	WeeklyThreshold float64

	// Bin layout: interior bins of BinWidth °C spanning [RangeMin, RangeMax],
	// plus the two sentinel overflow bins.
	RangeMin float64
	RangeMax float64
	BinWidth float64

	Gate       GateStrategy
	DailyGate  bool // GateSimpleOr: daily condition enabled
	WeeklyGate bool // GateSimpleOr: weekly condition enabled

	// CDDBaseTemp applies to GateCDDOr only; zero means DefaultCDDBaseTemp.
	CDDBaseTemp float64
}

// Validate fails fast on configurations that cannot produce a meaningful
// result. A gate with no enabled condition is rejected rather than
// silently keeping or zeroing everything.
func (c ScenarioConfig) Validate() error {
	if c.DegreeType != Heating && c.DegreeType != Cooling {
		return &ConfigError{Scenario: c.Name, Reason: "degree type must be heating or cooling"}
	}
	if c.BinWidth <= 0 {
		return &ConfigError{Scenario: c.Name, Reason: "bin width must be positive"}
	}
	if c.RangeMin >= c.RangeMax {
		return &ConfigError{Scenario: c.Name, Reason: "temperature range min must be below max"}
	}
	switch c.Gate {
	case GateSimpleOr:
		if !c.DailyGate && !c.WeeklyGate {
			return &ConfigError{Scenario: c.Name, Reason: "simple gate has no enabled condition"}
		}
	case GateCDDOr:
		if c.DegreeType != Cooling {
			return &ConfigError{Scenario: c.Name, Reason: "CDD gate applies to cooling scenarios only"}
		}
		if c.CDDBaseTemp < 0 {
			return &ConfigError{Scenario: c.Name, Reason: "CDD base temperature must not be negative"}
		}
	default:
		return &ConfigError{Scenario: c.Name, Reason: "unknown gate strategy"}
	}
	return nil
}

// cddBase returns the effective CDD base temperature.
func (c ScenarioConfig) cddBase() float64 {
	if c.CDDBaseTemp == 0 {
		return DefaultCDDBaseTemp
	}
	return c.CDDBaseTemp
}

// Presets returns the named design scenarios. hdh_* size heating
// equipment, cdh_* cooling equipment. Thresholds, ranges, and widths are
// the fixed values of the reference data set; changing any of them
// changes the published numbers.
func Presets() map[string]ScenarioConfig {
	return map[string]ScenarioConfig{
		"hdh_sc1": {
			Name: "hdh_sc1", DegreeType: Heating,
			DailyThreshold: 18.3, WeeklyThreshold: 18.3,
			RangeMin: -29.2, RangeMax: 12.8, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true,
		},
		"hdh_sc2": {
			Name: "hdh_sc2", DegreeType: Heating,
			DailyThreshold: 14.9, WeeklyThreshold: 18.3,
			RangeMin: -29.2, RangeMax: 12.8, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true,
		},
		"hdh_sc3": {
			Name: "hdh_sc3", DegreeType: Heating,
			DailyThreshold: 14.9, WeeklyThreshold: 17.1,
			RangeMin: -29.2, RangeMax: 12.8, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true, WeeklyGate: true,
		},
		"cdh_sc1": {
			Name: "cdh_sc1", DegreeType: Cooling,
			DailyThreshold: 18.3, WeeklyThreshold: 18.3,
			RangeMin: -29.2, RangeMax: 12.8, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true,
		},
		"cdh_sc2": {
			Name: "cdh_sc2", DegreeType: Cooling,
			DailyThreshold: 22.8, WeeklyThreshold: 18.3,
			RangeMin: -29.2, RangeMax: 12.8, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true,
		},
		"cdh_sc3": {
			Name: "cdh_sc3", DegreeType: Cooling,
			DailyThreshold: 22.8, WeeklyThreshold: 19.5,
			RangeMin: 23.6, RangeMax: 43.2, BinWidth: 2.8,
			Gate: GateSimpleOr, DailyGate: true, WeeklyGate: true,
		},
		"cdh_sc4": {
			Name: "cdh_sc4", DegreeType: Cooling,
			DailyThreshold: 22.8, WeeklyThreshold: 1.0,
			RangeMin: 23.6, RangeMax: 43.2, BinWidth: 2.8,
			Gate: GateCDDOr, CDDBaseTemp: DefaultCDDBaseTemp,
		},
	}
}

// PresetNames returns the preset scenario names in a fixed order.
func PresetNames() []string {
	return []string{"hdh_sc1", "hdh_sc2", "hdh_sc3", "cdh_sc1", "cdh_sc2", "cdh_sc3", "cdh_sc4"}
}
