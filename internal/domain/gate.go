package domain

import "math"

// Gate decides, per hour, whether a scenario retains that hour's
// degree-hour. Hours with a false flag are zeroed, not removed: they stay
// in the series and still land in a temperature bin.
//
// Both variants evaluate block-level conditions (daily/weekly means), so a
// NaN mean — a fully missing block — simply fails every comparison and the
// block is zeroed.
type Gate interface {
	Evaluate(dailyMean, weeklyMean []float64) []bool
}

// NewGate builds the gate variant selected by the scenario. The config
// must already have passed Validate.
func NewGate(cfg ScenarioConfig) (Gate, error) {
	switch cfg.Gate {
	case GateSimpleOr:
		return &simpleOrGate{cfg: cfg}, nil
	case GateCDDOr:
		return &cddOrGate{cfg: cfg}, nil
	default:
		return nil, &ConfigError{Scenario: cfg.Name, Reason: "unknown gate strategy"}
	}
}

// simpleOrGate keeps an hour when at least one enabled condition passes.
// The favorable comparison depends on direction: heating wants means below
// the threshold, cooling wants them above.
//
// The framing matters: an hour is zeroed only when EVERY enabled condition
// fails. Requiring all conditions to pass ("AND-to-keep") silently changes
// every hour where exactly one condition holds, which is the documented
// failure mode this gate exists to avoid.
type simpleOrGate struct {
	cfg ScenarioConfig
}

func (g *simpleOrGate) Evaluate(dailyMean, weeklyMean []float64) []bool {
	keep := make([]bool, len(dailyMean))
	for i := range dailyMean {
		pass := false
		if g.cfg.DailyGate && g.favorable(dailyMean[i], g.cfg.DailyThreshold) {
			pass = true
		}
		if !pass && g.cfg.WeeklyGate && g.favorable(weeklyMean[i], g.cfg.WeeklyThreshold) {
			pass = true
		}
		keep[i] = pass
	}
	return keep
}

// favorable reports whether a block mean justifies running the equipment.
// NaN means fail both directions.
func (g *simpleOrGate) favorable(mean, threshold float64) bool {
	if g.cfg.DegreeType == Heating {
		return mean < threshold
	}
	return mean > threshold
}

// cddOrGate is the cooling-degree-day variant. It is evaluated once per
// calendar day and keeps or zeroes all 24 hours of that day together:
//
//	CDD_daily[d] = max(dailyMean[d] − base, 0)
//	CDD_week[d]  = trailing mean of CDD_daily over day d and up to the
//	               6 previous days (denominator = days available; the
//	               first week is left-truncated, never zero-padded)
//	keep day d  ⇔ dailyMean[d] > dailyThreshold OR CDD_week[d] > trigger
type cddOrGate struct {
	cfg ScenarioConfig
}

func (g *cddOrGate) Evaluate(dailyMean, _ []float64) []bool {
	n := len(dailyMean)
	days := (n + HoursPerDay - 1) / HoursPerDay

	// Block means are constant within a day, so the first hour stands in
	// for the whole day.
	byDay := make([]float64, days)
	for d := range byDay {
		byDay[d] = dailyMean[d*HoursPerDay]
	}

	cddDaily := make([]float64, days)
	for d, m := range byDay {
		if math.IsNaN(m) {
			continue
		}
		if cdd := m - g.cfg.cddBase(); cdd > 0 {
			cddDaily[d] = cdd
		}
	}

	keep := make([]bool, n)
	var window float64
	for d := range byDay {
		window += cddDaily[d]
		if d >= 7 {
			window -= cddDaily[d-7]
		}
		avail := min(d+1, 7)
		cddWeek := window / float64(avail)

		keepDay := byDay[d] > g.cfg.DailyThreshold || cddWeek > g.cfg.WeeklyThreshold
		if !keepDay {
			continue
		}
		for i := d * HoursPerDay; i < min((d+1)*HoursPerDay, n); i++ {
			keep[i] = true
		}
	}
	return keep
}
