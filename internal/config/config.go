package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	WeatherDir string
	ResultsDir string
	Scenarios  []string // preset names; empty means all presets
	Workers    int
	CacheSize  int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather file download configuration.
	DownloadEnabled     bool
	DownloadBaseURL     string
	DownloadSuffix      string
	DownloadConcurrency int
	DownloadTimeout     time.Duration

	// Optional Kafka sink for aggregate rows.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	downloadTimeout, err := parseDurationEnv("DOWNLOAD_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	workers, err := parseIntEnv("WORKERS", min(runtime.NumCPU(), 8))
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseIntEnv("SERIES_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	downloadConcurrency, err := parseIntEnv("DOWNLOAD_CONCURRENCY", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		WeatherDir: envOrDefault("WEATHER_DIR", "data/weather"),
		ResultsDir: envOrDefault("RESULTS_DIR", "results"),
		Scenarios:  parseList(os.Getenv("SCENARIOS")),
		Workers:    workers,
		CacheSize:  cacheSize,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DownloadEnabled:     os.Getenv("DOWNLOAD_ENABLED") == "true",
		DownloadBaseURL:     envOrDefault("DOWNLOAD_BASE_URL", "http://climate.onebuilding.org/WMO_Region_4_North_and_Central_America/CAN_Canada/"),
		DownloadSuffix:      envOrDefault("DOWNLOAD_SUFFIX", "CWEC2016.zip"),
		DownloadConcurrency: downloadConcurrency,
		DownloadTimeout:     downloadTimeout,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   parseList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "degree-hour-rows"),
	}

	if cfg.WeatherDir == "" {
		return nil, errors.New("WEATHER_DIR is required")
	}
	if cfg.ResultsDir == "" {
		return nil, errors.New("RESULTS_DIR is required")
	}
	if cfg.Workers <= 0 {
		return nil, errors.New("WORKERS must be positive")
	}
	if cfg.DownloadConcurrency <= 0 {
		return nil, errors.New("DOWNLOAD_CONCURRENCY must be positive")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}

	presets := domain.Presets()
	for _, name := range cfg.Scenarios {
		if _, ok := presets[name]; !ok {
			return nil, fmt.Errorf("unknown scenario %q in SCENARIOS", name)
		}
	}

	return cfg, nil
}

// ScenarioConfigs resolves the configured scenario names to their presets,
// defaulting to every preset in fixed order.
func (c *Config) ScenarioConfigs() []domain.ScenarioConfig {
	names := c.Scenarios
	if len(names) == 0 {
		names = domain.PresetNames()
	}
	presets := domain.Presets()
	out := make([]domain.ScenarioConfig, 0, len(names))
	for _, name := range names {
		out = append(out, presets[name])
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseList splits a comma-separated value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
