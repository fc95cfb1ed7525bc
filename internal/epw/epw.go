// Package epw parses EnergyPlus Weather (EPW) files into the domain's
// hourly temperature series.
//
// EPW is a CSV dialect with 8 header lines followed by one row per hour.
// Line 1 (LOCATION) carries the station metadata; data rows carry the
// calendar fields in columns 1-4 and the dry-bulb air temperature in
// column 7. Hours are recorded 1-24 and are normalized to 0-23 here.
// The value 99.9 is the EPW missing-value sentinel for dry-bulb
// temperature and becomes NaN.
package epw

import (
	"archive/zip"
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
)

const (
	headerLines = 8

	// Column indices within a data row.
	colMonth   = 1
	colDay     = 2
	colHour    = 3
	colTempAir = 6

	// missingTemp is the EPW sentinel for an absent dry-bulb reading.
	missingTemp = 99.9
)

// Parse reads EPW content into a series and its station metadata.
func Parse(r io.Reader) (domain.TemperatureSeries, domain.Site, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, domain.Site{}, fmt.Errorf("epw: empty input")
	}
	site, err := parseLocation(scanner.Text())
	if err != nil {
		return nil, domain.Site{}, err
	}

	// Skip the remaining header lines (design conditions, typical periods,
	// ground temperatures, holidays, comments, data periods).
	for i := 1; i < headerLines; i++ {
		if !scanner.Scan() {
			return nil, domain.Site{}, fmt.Errorf("epw: truncated header at line %d", i+1)
		}
	}

	var series domain.TemperatureSeries
	line := headerLines
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rec, err := parseDataRow(text)
		if err != nil {
			return nil, domain.Site{}, fmt.Errorf("epw: line %d: %w", line, err)
		}
		series = append(series, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.Site{}, fmt.Errorf("epw: read: %w", err)
	}
	if len(series) == 0 {
		return nil, domain.Site{}, fmt.Errorf("epw: no data rows")
	}
	return series, site, nil
}

// ParseFile reads a .epw file, or a .zip archive containing one.
func ParseFile(path string) (domain.TemperatureSeries, domain.Site, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return parseZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.Site{}, fmt.Errorf("epw: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func parseZip(path string) (domain.TemperatureSeries, domain.Site, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, domain.Site{}, fmt.Errorf("epw: open zip %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.EqualFold(filepath.Ext(f.Name), ".epw") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, domain.Site{}, fmt.Errorf("epw: open %s in %s: %w", f.Name, path, err)
		}
		defer rc.Close()
		return Parse(rc)
	}
	return nil, domain.Site{}, fmt.Errorf("epw: no .epw entry in %s", path)
}

// parseLocation decodes the LOCATION header line:
//
//	LOCATION,<city>,<state-prov>,<country>,<data type>,<WMO>,<lat>,<lon>,<tz>,<altitude>
func parseLocation(line string) (domain.Site, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 10 || !strings.EqualFold(strings.TrimSpace(fields[0]), "LOCATION") {
		return domain.Site{}, fmt.Errorf("epw: malformed LOCATION header: %q", line)
	}

	site := domain.Site{
		City:      strings.TrimSpace(fields[1]),
		StateProv: strings.TrimSpace(fields[2]),
		Country:   strings.TrimSpace(fields[3]),
		WMOCode:   strings.TrimSpace(fields[5]),
	}

	var err error
	if site.Latitude, err = strconv.ParseFloat(strings.TrimSpace(fields[6]), 64); err != nil {
		return domain.Site{}, fmt.Errorf("epw: latitude: %w", err)
	}
	if site.Longitude, err = strconv.ParseFloat(strings.TrimSpace(fields[7]), 64); err != nil {
		return domain.Site{}, fmt.Errorf("epw: longitude: %w", err)
	}
	if site.TZOffset, err = strconv.ParseFloat(strings.TrimSpace(fields[8]), 64); err != nil {
		return domain.Site{}, fmt.Errorf("epw: timezone: %w", err)
	}
	if site.Altitude, err = strconv.ParseFloat(strings.TrimSpace(fields[9]), 64); err != nil {
		return domain.Site{}, fmt.Errorf("epw: altitude: %w", err)
	}
	return site, nil
}

func parseDataRow(line string) (domain.HourlyRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) <= colTempAir {
		return domain.HourlyRecord{}, fmt.Errorf("short data row: %d fields", len(fields))
	}

	month, err := strconv.Atoi(strings.TrimSpace(fields[colMonth]))
	if err != nil {
		return domain.HourlyRecord{}, fmt.Errorf("month: %w", err)
	}
	day, err := strconv.Atoi(strings.TrimSpace(fields[colDay]))
	if err != nil {
		return domain.HourlyRecord{}, fmt.Errorf("day: %w", err)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(fields[colHour]))
	if err != nil {
		return domain.HourlyRecord{}, fmt.Errorf("hour: %w", err)
	}

	temp := math.NaN()
	raw := strings.TrimSpace(fields[colTempAir])
	if raw != "" {
		temp, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.HourlyRecord{}, fmt.Errorf("temperature: %w", err)
		}
		if temp == missingTemp {
			temp = math.NaN()
		}
	}

	return domain.HourlyRecord{
		Month:   month,
		Day:     day,
		Hour:    hour - 1, // EPW counts 1-24
		TempAir: temp,
	}, nil
}

// Loader adapts ParseFile to the pipeline's loader interface.
type Loader struct{}

func (Loader) Load(ctx context.Context, path string) (domain.TemperatureSeries, domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Site{}, err
	}
	return ParseFile(path)
}
