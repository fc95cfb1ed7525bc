package domain

// Season is a fixed-calendar season label. The windows are the same every
// year and ignore the actual year of the data set.
type Season string

const (
	SeasonWinter Season = "winter" // Jan 1 – Mar 20 and Dec 21 – Dec 31
	SeasonSpring Season = "spring" // Mar 21 – Jun 20
	SeasonSummer Season = "summer" // Jun 21 – Sep 20
	SeasonFall   Season = "fall"   // Sep 21 – Dec 20
)

// Seasons lists the four labels in calendar order from January.
var Seasons = [4]Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// ClassifySeason maps a (month, day) date to its season. The comparison
// uses a month*100+day ordinal, which orders dates exactly like day-of-year
// does; comparing zero-padded strings would misorder dates near the year
// boundary. Feb 29 falls inside the winter window with no special case.
func ClassifySeason(month, day int) Season {
	md := month*100 + day
	switch {
	case md <= 320:
		return SeasonWinter
	case md <= 620:
		return SeasonSpring
	case md <= 920:
		return SeasonSummer
	case md <= 1220:
		return SeasonFall
	default:
		return SeasonWinter
	}
}
