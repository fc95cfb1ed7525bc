package domain

// AggregateRow is the terminal artifact of one (site, scenario) run:
// the degree-hour and occupancy statistics for one (hour-of-day, bin)
// group. Counts are float64 so empty groups can report 0.0 in the same
// column an occupied group reports its count in, mirroring the published
// CSV layout.
type AggregateRow struct {
	HourOfDay int
	Bin       string
	BinIndex  int

	SumDegreeHour float64
	MeanTemp      float64
	CountActive   float64
	CountSpring   float64
	CountSummer   float64
	CountFall     float64
	CountWinter   float64

	City      string
	StateProv string
}

// aggregateGroup accumulates one (hour-of-day, bin) group.
type aggregateGroup struct {
	sumDegreeHour float64
	tempSum       float64
	tempCount     int
	active        float64
	bySeason      map[Season]float64
}

// Aggregate groups all hours of a run by (hour-of-day, bin) and emits one
// row per combination over the FULL 24×NumBins product, deterministically
// ordered by hour then bin. Emitting empty groups keeps the output shape
// identical across sites and scenarios and guarantees no NaN ever appears:
// empty groups report 0.0 for every statistic.
//
// "Active" means the hour survived the gate with a positive degree-hour;
// the per-season counts additionally require the season label. Hours with
// missing temperature carry bin -1 and are excluded from every group.
func Aggregate(d *Derived, binning Binning, site Site) []AggregateRow {
	numBins := binning.NumBins()
	groups := make([]aggregateGroup, HoursPerDay*numBins)

	for i := range d.Series {
		bin := d.Bins[i]
		if bin < 0 {
			continue
		}
		g := &groups[d.Series[i].Hour*numBins+bin]
		g.sumDegreeHour += d.DegreeHours[i]
		g.tempSum += d.Temps[i]
		g.tempCount++
		if d.DegreeHours[i] > 0 {
			g.active++
			if g.bySeason == nil {
				g.bySeason = make(map[Season]float64, 4)
			}
			g.bySeason[d.Seasons[i]]++
		}
	}

	rows := make([]AggregateRow, 0, len(groups))
	for hour := 0; hour < HoursPerDay; hour++ {
		for bin := 0; bin < numBins; bin++ {
			g := groups[hour*numBins+bin]
			row := AggregateRow{
				HourOfDay:     hour,
				Bin:           binning.Label(bin),
				BinIndex:      bin,
				SumDegreeHour: g.sumDegreeHour,
				CountActive:   g.active,
				CountSpring:   g.bySeason[SeasonSpring],
				CountSummer:   g.bySeason[SeasonSummer],
				CountFall:     g.bySeason[SeasonFall],
				CountWinter:   g.bySeason[SeasonWinter],
				City:          site.City,
				StateProv:     site.StateProv,
			}
			if g.tempCount > 0 {
				row.MeanTemp = g.tempSum / float64(g.tempCount)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
