package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
	"github.com/couchcryptid/degree-hour-etl/internal/observability"
)

// --- mocks ---

// mapLoader serves a constant-temperature year per configured path and
// fails for anything else.
type mapLoader struct {
	sites map[string]domain.Site
	calls map[string]int
}

func newMapLoader(sites map[string]domain.Site) *mapLoader {
	return &mapLoader{sites: sites, calls: make(map[string]int)}
}

func (m *mapLoader) Load(_ context.Context, path string) (domain.TemperatureSeries, domain.Site, error) {
	m.calls[path]++
	site, ok := m.sites[path]
	if !ok {
		return nil, domain.Site{}, errors.New("no such file")
	}
	return constantYear(30.0), site, nil
}

type capturingSink struct {
	scenarios []string
	rows      [][]domain.AggregateRow
	err       error
}

func (s *capturingSink) WriteScenario(_ context.Context, scenario string, rows []domain.AggregateRow) error {
	if s.err != nil {
		return s.err
	}
	s.scenarios = append(s.scenarios, scenario)
	s.rows = append(s.rows, rows)
	return nil
}

// constantYear builds a non-leap year of hourly records at the given
// temperature.
func constantYear(temp float64) domain.TemperatureSeries {
	series := make(domain.TemperatureSeries, 0, domain.YearHours)
	ts := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < domain.YearHours; i++ {
		series = append(series, domain.HourlyRecord{
			Month:   int(ts.Month()),
			Day:     ts.Day(),
			Hour:    ts.Hour(),
			TempAir: temp,
		})
		ts = ts.Add(time.Hour)
	}
	return series
}

func testScenario() domain.ScenarioConfig {
	return domain.ScenarioConfig{
		Name:           "cooling_wide",
		DegreeType:     domain.Cooling,
		DailyThreshold: 22.8,
		RangeMin:       0,
		RangeMax:       50,
		BinWidth:       25,
		Gate:           domain.GateSimpleOr,
		DailyGate:      true,
	}
}

func newTestRunner(loader SeriesLoader, sinks ...RowSink) *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(loader, sinks, logger, observability.NewMetricsForTesting(), 2)
}

// --- Runner tests ---

func TestRunner_Run(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary", StateProv: "AB"},
		"b.epw": {City: "Halifax", StateProv: "NS"},
	})
	sink := &capturingSink{}
	runner := newTestRunner(loader, sink)

	err := runner.Run(context.Background(), []string{"a.epw", "b.epw"}, []domain.ScenarioConfig{testScenario()})
	require.NoError(t, err)

	require.Len(t, sink.rows, 1)
	assert.Equal(t, []string{"cooling_wide"}, sink.scenarios)

	// Boundaries are the two sentinels plus interior boundaries at 0 and
	// 25, giving 3 bins over 24 hours; two sites concatenated in input
	// order.
	rows := sink.rows[0]
	perSite := 24 * 3
	require.Len(t, rows, 2*perSite)
	assert.Equal(t, "Calgary", rows[0].City)
	assert.Equal(t, "Halifax", rows[perSite].City)

	done, failed, total := runner.Progress()
	assert.Equal(t, int64(2), done)
	assert.Equal(t, int64(0), failed)
	assert.Equal(t, int64(2), total)
}

func TestRunner_SiteFailureIsolated(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"good.epw": {City: "Calgary", StateProv: "AB"},
	})
	sink := &capturingSink{}
	runner := newTestRunner(loader, sink)

	err := runner.Run(context.Background(), []string{"missing.epw", "good.epw"}, []domain.ScenarioConfig{testScenario()})
	require.NoError(t, err, "a bad site must not fail the batch")

	require.Len(t, sink.rows, 1)
	for _, row := range sink.rows[0] {
		assert.Equal(t, "Calgary", row.City)
	}

	done, failed, _ := runner.Progress()
	assert.Equal(t, int64(1), done)
	assert.Equal(t, int64(1), failed)
}

func TestRunner_SinkErrorAbortsBatch(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary"},
	})
	sink := &capturingSink{err: errors.New("broker down")}
	runner := newTestRunner(loader, sink)

	err := runner.Run(context.Background(), []string{"a.epw"}, []domain.ScenarioConfig{testScenario()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestRunner_MultipleScenariosOneSinkCallEach(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary"},
	})
	sink := &capturingSink{}
	runner := newTestRunner(loader, sink)

	heating := testScenario()
	heating.Name = "heating_wide"
	heating.DegreeType = domain.Heating
	heating.DailyThreshold = 18.3

	err := runner.Run(context.Background(), []string{"a.epw"}, []domain.ScenarioConfig{testScenario(), heating})
	require.NoError(t, err)
	assert.Equal(t, []string{"cooling_wide", "heating_wide"}, sink.scenarios)
}

func TestRunner_CancelledContext(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary"},
	})
	runner := newTestRunner(loader, &capturingSink{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Run(ctx, []string{"a.epw"}, []domain.ScenarioConfig{testScenario()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Readiness(t *testing.T) {
	loader := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary"},
	})
	runner := newTestRunner(loader, &capturingSink{})

	require.Error(t, runner.CheckReadiness(context.Background()), "not ready before first site")

	err := runner.Run(context.Background(), []string{"a.epw"}, []domain.ScenarioConfig{testScenario()})
	require.NoError(t, err)

	assert.NoError(t, runner.CheckReadiness(context.Background()))
}
