package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// degree-hour batch pipeline.
type Metrics struct {
	SitesProcessed    prometheus.Counter
	SiteFailures      prometheus.Counter
	RowsProduced      prometheus.Counter
	DataQualityIssues prometheus.Counter
	PipelineRunning   prometheus.Gauge

	SiteProcessingDuration prometheus.Histogram
	ScenarioDuration       prometheus.Histogram

	// Download metrics.
	FilesDownloaded  prometheus.Counter
	DownloadFailures prometheus.Counter
	DownloadDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SitesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "sites_processed_total",
			Help:      "Total (site, scenario) runs completed successfully.",
		}),
		SiteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "site_failures_total",
			Help:      "Total (site, scenario) runs skipped due to parse or shape errors.",
		}),
		RowsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "rows_produced_total",
			Help:      "Total aggregate rows written to sinks.",
		}),
		DataQualityIssues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "data_quality_issues_total",
			Help:      "Total non-fatal input problems (missing hourly temperatures).",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "degreehours",
			Name:      "pipeline_running",
			Help:      "1 while the batch is active, 0 when finished.",
		}),
		SiteProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "degreehours",
			Name:      "site_processing_duration_seconds",
			Help:      "Duration of one (site, scenario) load-and-compute run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ScenarioDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "degreehours",
			Name:      "scenario_duration_seconds",
			Help:      "Duration of one full scenario over all sites, including sink writes.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
		FilesDownloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "files_downloaded_total",
			Help:      "Weather files fetched from the index.",
		}),
		DownloadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "degreehours",
			Name:      "download_failures_total",
			Help:      "Weather file downloads that failed after all retries.",
		}),
		DownloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "degreehours",
			Name:      "download_duration_seconds",
			Help:      "Duration of individual weather file downloads.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.SitesProcessed,
		m.SiteFailures,
		m.RowsProduced,
		m.DataQualityIssues,
		m.PipelineRunning,
		m.SiteProcessingDuration,
		m.ScenarioDuration,
		m.FilesDownloaded,
		m.DownloadFailures,
		m.DownloadDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SitesProcessed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "sites_processed_total"}),
		SiteFailures:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "site_failures_total"}),
		RowsProduced:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "rows_produced_total"}),
		DataQualityIssues:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "data_quality_issues_total"}),
		PipelineRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "degreehours", Name: "pipeline_running"}),
		SiteProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "degreehours", Name: "site_processing_duration_seconds"}),
		ScenarioDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "degreehours", Name: "scenario_duration_seconds"}),
		FilesDownloaded:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "files_downloaded_total"}),
		DownloadFailures:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "degreehours", Name: "download_failures_total"}),
		DownloadDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "degreehours", Name: "download_duration_seconds"}),
	}
}
