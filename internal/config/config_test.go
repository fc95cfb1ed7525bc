package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/weather", cfg.WeatherDir)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Empty(t, cfg.Scenarios)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.DownloadEnabled)
	assert.Equal(t, "CWEC2016.zip", cfg.DownloadSuffix)
	assert.Equal(t, 10, cfg.DownloadConcurrency)
	assert.Equal(t, 5*time.Minute, cfg.DownloadTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "degree-hour-rows", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WEATHER_DIR", "/srv/epw")
	t.Setenv("RESULTS_DIR", "/srv/out")
	t.Setenv("SCENARIOS", "hdh_sc1, cdh_sc4")
	t.Setenv("WORKERS", "3")
	t.Setenv("SERIES_CACHE_SIZE", "16")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-rows")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/epw", cfg.WeatherDir)
	assert.Equal(t, "/srv/out", cfg.ResultsDir)
	assert.Equal(t, []string{"hdh_sc1", "cdh_sc4"}, cfg.Scenarios)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-rows", cfg.KafkaSinkTopic)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown scenario", "SCENARIOS", "hdh_sc1,hdh_sc99", "unknown scenario"},
		{"non-numeric workers", "WORKERS", "many", "invalid WORKERS"},
		{"zero workers", "WORKERS", "0", "WORKERS must be positive"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon", "invalid SHUTDOWN_TIMEOUT"},
		{"negative download timeout", "DOWNLOAD_TIMEOUT", "-5s", "invalid DOWNLOAD_TIMEOUT"},
		{"zero download concurrency", "DOWNLOAD_CONCURRENCY", "0", "DOWNLOAD_CONCURRENCY must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_KafkaEnabledRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", ",")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestScenarioConfigs(t *testing.T) {
	t.Run("defaults to all presets in fixed order", func(t *testing.T) {
		cfg := &Config{}
		scenarios := cfg.ScenarioConfigs()
		require.Len(t, scenarios, 7)
		assert.Equal(t, "hdh_sc1", scenarios[0].Name)
		assert.Equal(t, "cdh_sc4", scenarios[6].Name)
	})

	t.Run("resolves configured subset", func(t *testing.T) {
		cfg := &Config{Scenarios: []string{"cdh_sc2"}}
		scenarios := cfg.ScenarioConfigs()
		require.Len(t, scenarios, 1)
		assert.Equal(t, "cdh_sc2", scenarios[0].Name)
	})
}
