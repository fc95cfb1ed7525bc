// Command validate performs data integrity checks on published degree-hour
// results: it re-runs a scenario from the original weather file and compares
// every aggregate row against the CSV a previous batch wrote. It verifies
// weather file shape, result schema, and statistic-by-statistic parity.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -epw data/weather/CAN_AB_Calgary.Intl.AP.718770_CWEC2016.zip \
//	  -csv results/hdh_sc1.csv \
//	  -scenario hdh_sc1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
	"github.com/couchcryptid/degree-hour-etl/internal/epw"
)

var resultColumns = []string{
	"hour",
	"bin",
	"degree_hour",
	"temp_mean",
	"count_hours_in_bin",
	"count_hour_spring",
	"count_hour_summer",
	"count_hour_fall",
	"count_hour_winter",
	"city",
	"state-prov",
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	epwPath := flag.String("epw", "", "path to the source EPW weather file (.epw or .zip)")
	csvPath := flag.String("csv", "", "path to the published scenario CSV")
	scenario := flag.String("scenario", "", "scenario preset name (e.g. hdh_sc1)")
	flag.Parse()

	if *epwPath == "" || *csvPath == "" || *scenario == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*epwPath, *csvPath, *scenario); code != 0 {
		os.Exit(code)
	}
}

func run(epwPath, csvPath, scenario string) int {
	cfg, ok := domain.Presets()[scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: unknown scenario %q\n", scenario)
		return 1
	}

	fmt.Println("=== Degree-Hour Result Validation ===")
	fmt.Println()

	series, site, err := epw.ParseFile(epwPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse weather file: %v\n", err)
		return 1
	}

	result, err := domain.RunScenario(series, site, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: recompute scenario: %v\n", err)
		return 1
	}

	header, rows, err := loadCSV(csvPath, site)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load result CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateWeather(series, &result),
		validateSchema(header, rows),
		validateParity(result.Rows, rows),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Site: %s, %s  Hours: %d  Missing: %d  Rows: %d recomputed, %d in CSV\n",
		site.City, site.StateProv, len(series), len(result.Diagnostics), len(result.Rows), len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is one parsed result row keyed by header name.
type csvRow struct {
	lineNum int
	fields  map[string]string
}

// loadCSV reads the published CSV, keeping only the rows for the given site
// since batch output concatenates all sites into one file.
func loadCSV(path string, site domain.Site) ([]string, []csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) < 2 {
		return nil, nil, fmt.Errorf("no data rows in %s", path)
	}

	header := all[0]
	var rows []csvRow
	for i, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[h] = row[j]
			}
		}
		if fields["city"] != site.City || fields["state-prov"] != site.StateProv {
			continue
		}
		rows = append(rows, csvRow{lineNum: i + 2, fields: fields})
	}
	return header, rows, nil
}

// ── Phase 1: Weather Integrity ──
// Validates the source series shape and reports data quality.

func validateWeather(series domain.TemperatureSeries, result *domain.Result) *phase {
	p := &phase{name: "Phase 1: Weather Integrity (EPW)"}

	if n := len(series); n != domain.YearHours && n != domain.LeapYearHours {
		p.errorf("unexpected series length %d", n)
	}
	// Missing hours are non-fatal; they are excluded from every statistic.
	if n := len(result.Diagnostics); n > 0 {
		fmt.Printf("  Note: %d missing hour(s) excluded from statistics\n", n)
	}
	return p
}

// ── Phase 2: Result Schema ──
// Validates the CSV header and per-row field formats.

func validateSchema(header []string, rows []csvRow) *phase {
	p := &phase{name: "Phase 2: Result Schema (CSV)"}

	if len(header) != len(resultColumns) {
		p.errorf("header has %d columns, expected %d", len(header), len(resultColumns))
	} else {
		for i, want := range resultColumns {
			if header[i] != want {
				p.errorf("column %d: got %q, expected %q", i, header[i], want)
			}
		}
	}

	for _, row := range rows {
		hour, err := strconv.Atoi(row.fields["hour"])
		if err != nil || hour < 0 || hour > 23 {
			p.errorf("line %d: bad hour %q", row.lineNum, row.fields["hour"])
		}
		for _, col := range []string{"degree_hour", "temp_mean", "count_hours_in_bin",
			"count_hour_spring", "count_hour_summer", "count_hour_fall", "count_hour_winter"} {
			if _, err := strconv.ParseFloat(row.fields[col], 64); err != nil {
				p.errorf("line %d: column %q: %q is not numeric", row.lineNum, col, row.fields[col])
			}
		}
	}
	return p
}

// ── Phase 3: Recompute Parity ──
// Re-runs the scenario and compares every statistic to the published CSV.

func validateParity(recomputed []domain.AggregateRow, published []csvRow) *phase {
	p := &phase{name: "Phase 3: Recompute Parity"}

	if len(recomputed) != len(published) {
		p.errorf("row count: recomputed %d, CSV has %d", len(recomputed), len(published))
		return p
	}

	for i := range recomputed {
		want := &recomputed[i]
		got := published[i]

		if hour, _ := strconv.Atoi(got.fields["hour"]); hour != want.HourOfDay {
			p.errorf("line %d: hour: expected %d, got %s", got.lineNum, want.HourOfDay, got.fields["hour"])
		}
		if got.fields["bin"] != want.Bin {
			p.errorf("line %d: bin: expected %q, got %q", got.lineNum, want.Bin, got.fields["bin"])
		}

		checkFloat(p, got, "degree_hour", want.SumDegreeHour)
		checkFloat(p, got, "temp_mean", want.MeanTemp)
		checkFloat(p, got, "count_hours_in_bin", want.CountActive)
		checkFloat(p, got, "count_hour_spring", want.CountSpring)
		checkFloat(p, got, "count_hour_summer", want.CountSummer)
		checkFloat(p, got, "count_hour_fall", want.CountFall)
		checkFloat(p, got, "count_hour_winter", want.CountWinter)
	}
	return p
}

func checkFloat(p *phase, row csvRow, col string, want float64) {
	got, err := strconv.ParseFloat(row.fields[col], 64)
	if err != nil {
		return // already reported by the schema phase
	}
	if !floatEq(got, want) {
		p.errorf("line %d: %s: expected %g, got %g", row.lineNum, col, want, got)
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
