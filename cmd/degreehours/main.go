package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	csvadapter "github.com/couchcryptid/degree-hour-etl/internal/adapter/csvout"
	httpadapter "github.com/couchcryptid/degree-hour-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/degree-hour-etl/internal/adapter/kafka"
	"github.com/couchcryptid/degree-hour-etl/internal/adapter/onebuilding"
	"github.com/couchcryptid/degree-hour-etl/internal/config"
	"github.com/couchcryptid/degree-hour-etl/internal/epw"
	"github.com/couchcryptid/degree-hour-etl/internal/observability"
	"github.com/couchcryptid/degree-hour-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Fetch weather archives first when enabled (feature-flagged via
	// DOWNLOAD_ENABLED); already-present files are skipped.
	if cfg.DownloadEnabled {
		client := onebuilding.NewClient(cfg.DownloadBaseURL, cfg.DownloadSuffix, cfg.DownloadTimeout, logger, metrics)
		if err := client.DownloadAll(ctx, cfg.WeatherDir, cfg.DownloadConcurrency); err != nil {
			logger.Error("weather download failed", "error", err)
			os.Exit(1)
		}
	}

	files, err := weatherFiles(cfg.WeatherDir)
	if err != nil {
		logger.Error("failed to list weather files", "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Error("no weather files found", "dir", cfg.WeatherDir)
		os.Exit(1)
	}

	loader := pipeline.NewCachedLoader(epw.Loader{}, cfg.CacheSize)

	csvSink, err := csvadapter.NewWriter(cfg.ResultsDir, logger)
	if err != nil {
		logger.Error("failed to create csv sink", "error", err)
		os.Exit(1)
	}
	sinks := []pipeline.RowSink{csvSink}

	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		sinks = append(sinks, publisher)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
	}

	runner := pipeline.New(loader, sinks, logger, metrics, cfg.Workers)

	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, runner, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	runErr := runner.Run(ctx, files, cfg.ScenarioConfigs())
	if runErr != nil {
		logger.Error("batch error", "error", runErr)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	if runErr != nil {
		os.Exit(1)
	}
}

// weatherFiles lists .epw and .zip files in dir, sorted so multi-site
// output order is stable across runs.
func weatherFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.epw", "*.zip"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
