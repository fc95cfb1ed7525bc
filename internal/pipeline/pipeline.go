// Package pipeline orchestrates batch degree-hour runs: for every
// configured scenario it fans a set of weather files out to a worker pool,
// runs the domain calculation per site, and hands the concatenated rows to
// the sinks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
	"github.com/couchcryptid/degree-hour-etl/internal/observability"
)

// SeriesLoader reads one site's hourly series and metadata from a weather
// file path.
type SeriesLoader interface {
	Load(ctx context.Context, path string) (domain.TemperatureSeries, domain.Site, error)
}

// RowSink receives the concatenated aggregate rows of one scenario.
type RowSink interface {
	WriteScenario(ctx context.Context, scenario string, rows []domain.AggregateRow) error
}

// Runner executes scenarios over a file set with a fixed-size worker pool.
// Each worker owns a private series copy; the only shared state is the
// results slice, written at disjoint indices, so no locking discipline is
// needed around the computation itself.
type Runner struct {
	loader  SeriesLoader
	sinks   []RowSink
	logger  *slog.Logger
	metrics *observability.Metrics
	workers int

	ready  atomic.Bool
	done   atomic.Int64
	failed atomic.Int64
	total  atomic.Int64
}

// New creates a Runner with the given stages and observability.
func New(loader SeriesLoader, sinks []RowSink, logger *slog.Logger, metrics *observability.Metrics, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		loader:  loader,
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
		workers: workers,
	}
}

// CheckReadiness returns nil once the runner has completed at least one
// (site, scenario) run.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no site has been processed yet")
	}
	return nil
}

// Progress reports completed, failed, and total (site, scenario) runs.
func (r *Runner) Progress() (done, failed, total int64) {
	return r.done.Load(), r.failed.Load(), r.total.Load()
}

// Run processes every scenario over every file. Per-site failures are
// isolated: the site is logged, counted, and skipped, and the scenario's
// remaining sites are unaffected. A sink failure or cancellation aborts
// the batch.
func (r *Runner) Run(ctx context.Context, files []string, scenarios []domain.ScenarioConfig) error {
	r.total.Store(int64(len(files) * len(scenarios)))
	r.metrics.PipelineRunning.Set(1)
	defer r.metrics.PipelineRunning.Set(0)

	r.logger.Info("batch started",
		"files", len(files), "scenarios", len(scenarios), "workers", r.workers)

	for _, cfg := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runScenario(ctx, files, cfg); err != nil {
			return fmt.Errorf("scenario %s: %w", cfg.Name, err)
		}
	}

	r.logger.Info("batch finished", "done", r.done.Load(), "failed", r.failed.Load())
	return nil
}

// runScenario fans the files out to the worker pool and concatenates the
// surviving results in input order, keeping multi-site output
// reproducible run to run.
func (r *Runner) runScenario(ctx context.Context, files []string, cfg domain.ScenarioConfig) error {
	start := time.Now()

	jobs := make(chan int)
	results := make([][]domain.AggregateRow, len(files))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows, err := r.processSite(ctx, files[i], cfg)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					r.logger.Warn("site failed, skipping",
						"scenario", cfg.Name, "file", files[i], "error", err)
					r.metrics.SiteFailures.Inc()
					r.failed.Add(1)
					continue
				}
				results[i] = rows
				r.metrics.SitesProcessed.Inc()
				r.done.Add(1)
				r.ready.Store(true)
			}
		}()
	}

	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	var combined []domain.AggregateRow
	for _, rows := range results {
		combined = append(combined, rows...)
	}

	if len(combined) == 0 {
		r.logger.Warn("scenario produced no rows", "scenario", cfg.Name)
		return nil
	}

	for _, sink := range r.sinks {
		if err := sink.WriteScenario(ctx, cfg.Name, combined); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
	}
	r.metrics.RowsProduced.Add(float64(len(combined)))
	r.metrics.ScenarioDuration.Observe(time.Since(start).Seconds())

	r.logger.Info("scenario finished",
		"scenario", cfg.Name, "rows", len(combined), "duration", time.Since(start))
	return nil
}

// processSite runs one (site, scenario) computation.
func (r *Runner) processSite(ctx context.Context, path string, cfg domain.ScenarioConfig) ([]domain.AggregateRow, error) {
	start := time.Now()

	series, site, err := r.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result, err := domain.RunScenario(series, site, cfg)
	if err != nil {
		return nil, err
	}

	if n := len(result.Diagnostics); n > 0 {
		r.metrics.DataQualityIssues.Add(float64(n))
		r.logger.Debug("data quality issues",
			"scenario", cfg.Name, "file", path, "count", n, "first", result.Diagnostics[0].String())
	}

	r.metrics.SiteProcessingDuration.Observe(time.Since(start).Seconds())
	return result.Rows, nil
}
