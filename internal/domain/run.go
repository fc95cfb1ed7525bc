package domain

import "time"

// Derived holds the per-record computed columns of one scenario run. It is
// scenario-scoped scratch state: fully recomputed for every
// (series, scenario) pair, never cached or shared across scenarios, and
// discarded once aggregation has produced the rows.
type Derived struct {
	Series      TemperatureSeries
	Temps       []float64
	DegreeHours []float64 // post-gate: zeroed where the gate failed
	DailyMean   []float64
	WeeklyMean  []float64
	Seasons     []Season
	Bins        []int // -1 for hours with missing temperature
}

// Result is the complete output of one (site, scenario) run.
type Result struct {
	Scenario    string
	Site        Site
	Rows        []AggregateRow
	Diagnostics []DataQualityIssue
	GeneratedAt time.Time
}

// RunScenario executes the full calculation pipeline for one site and one
// scenario: degree-hours, block means, gating, season labels, bins, and
// the (hour-of-day, bin) aggregation. It is a pure function of its inputs
// apart from the GeneratedAt stamp; it either returns a complete result or
// a typed error, never a partial table, so callers can drop one failed
// site without corrupting the rest of a batch.
func RunScenario(series TemperatureSeries, site Site, cfg ScenarioConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := series.Validate(); err != nil {
		return Result{}, err
	}
	gate, err := NewGate(cfg)
	if err != nil {
		return Result{}, err
	}

	d := &Derived{Series: series, Temps: series.Temperatures()}

	var diags []DataQualityIssue
	for i, r := range series {
		if r.Missing() {
			diags = append(diags, DataQualityIssue{
				Index: i, Month: r.Month, Day: r.Day, Hour: r.Hour,
				Reason: "missing temperature",
			})
		}
	}

	d.DegreeHours = DegreeHours(d.Temps, cfg.DegreeType, cfg.DailyThreshold)
	d.DailyMean = BlockMeans(d.Temps, HoursPerDay)
	d.WeeklyMean = BlockMeans(d.Temps, HoursPerWeek)

	for i, keep := range gate.Evaluate(d.DailyMean, d.WeeklyMean) {
		if !keep {
			d.DegreeHours[i] = 0
		}
	}

	binning := NewBinning(cfg)
	d.Seasons = make([]Season, len(series))
	d.Bins = make([]int, len(series))
	for i, r := range series {
		d.Seasons[i] = ClassifySeason(r.Month, r.Day)
		d.Bins[i] = binning.Assign(r.TempAir)
	}

	return Result{
		Scenario:    cfg.Name,
		Site:        site,
		Rows:        Aggregate(d, binning, site),
		Diagnostics: diags,
		GeneratedAt: clock.Now(),
	}, nil
}
