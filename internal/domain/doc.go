// Package domain implements the degree-hour calculation pipeline used for
// heating/cooling equipment sizing.
//
// # Data Source
//
// Input is one year of hourly weather observations per site (8760 hours,
// or 8784 in a leap year), typically parsed from EPW (EnergyPlus Weather)
// files published per weather station. Only the dry-bulb air temperature
// column feeds the calculation; site metadata (city, province) travels
// through to the output rows for attribution.
//
// # Degree-Hours
//
// A degree-hour is the hourly apportionment of a degree-day demand unit:
//
//	heating: max((threshold − temp) / 24, 0)
//	cooling: max((temp − threshold) / 24, 0)
//
// computed from the raw hourly temperature, never from a block mean. The
// division by 24 is what makes the unit an hourly one.
//
// # Block Means and Gates
//
// Daily (24 h) and weekly (168 h) mean temperatures are fixed-block means
// anchored at index 0 — every hour of block k shares one value. They feed
// the scenario gates, which zero the degree-hours of hours whose recent
// weather does not justify running the equipment:
//
//   - simple gate: an hour is kept when at least one enabled condition
//     passes (daily mean favorable OR weekly mean favorable). Zeroing
//     happens only when every enabled condition fails.
//   - CDD gate: evaluated per calendar day. CDD_daily = max(daily mean −
//     base, 0); CDD_week is its trailing mean over up to 7 days (the first
//     week divides by the days available, not by 7). A day is kept — all
//     24 hours of it — when the daily mean exceeds the daily threshold OR
//     CDD_week exceeds the trigger.
//
// # Seasons
//
// Fixed calendar windows independent of the year: winter Jan 1–Mar 20 and
// Dec 21–Dec 31, spring Mar 21–Jun 20, summer Jun 21–Sep 20, fall
// Sep 21–Dec 20. Classification compares (month, day) ordinals, not
// strings.
//
// # Bins and Aggregation
//
// Temperatures are sorted into half-open bins (lo, hi]: interior bins of
// the scenario's width across its nominal range, plus two overflow bins
// bounded by the ±100 °C sentinels so every value lands somewhere. The
// aggregation groups all hours by (hour-of-day, bin) and reports, per
// group, the degree-hour sum, the mean raw temperature, and how many hours
// were "active" (positive degree-hour after gating), overall and per
// season. Rows cover the full 24×bins product in fixed order; empty groups
// report zeros, never NaN.
//
// # Reproducibility
//
// The same series and scenario must produce identical rows on every run.
// Everything here is deterministic and side-effect free; the only clock
// read is the injectable one stamping Result.GeneratedAt.
package domain
