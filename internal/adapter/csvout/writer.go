// Package csvout writes scenario results as per-scenario CSV files.
package csvout

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
)

// columns is the published result schema, one row per (hour-of-day, bin)
// group per site.
var columns = []string{
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

// Writer persists aggregate rows to <dir>/<scenario>.csv.
// It implements pipeline.RowSink.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a CSV sink rooted at dir, creating it if needed.
func NewWriter(dir string, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &Writer{dir: dir, logger: logger}, nil
}

// WriteScenario writes all rows of one scenario to a single file,
// replacing any previous run's output.
func (w *Writer) WriteScenario(ctx context.Context, scenario string, rows []domain.AggregateRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(w.dir, scenario+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		if err := cw.Write(record(&rows[i])); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	w.logger.Info("csv written", "scenario", scenario, "path", path, "rows", len(rows))
	return nil
}

func record(row *domain.AggregateRow) []string {
	return []string{
		strconv.Itoa(row.HourOfDay),
		row.Bin,
		formatFloat(row.SumDegreeHour),
		formatFloat(row.MeanTemp),
		formatFloat(row.CountActive),
		formatFloat(row.CountSpring),
		formatFloat(row.CountSummer),
		formatFloat(row.CountFall),
		formatFloat(row.CountWinter),
		row.City,
		row.StateProv,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
