package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
)

// --- CachedLoader tests ---

func TestCachedLoader_CacheHit(t *testing.T) {
	inner := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary", StateProv: "AB"},
	})
	cached := NewCachedLoader(inner, 10)

	_, site1, err := cached.Load(context.Background(), "a.epw")
	require.NoError(t, err)
	assert.Equal(t, "Calgary", site1.City)

	_, site2, err := cached.Load(context.Background(), "a.epw")
	require.NoError(t, err)
	assert.Equal(t, "Calgary", site2.City)

	assert.Equal(t, 1, inner.calls["a.epw"], "should only parse once")
}

func TestCachedLoader_ErrorsNotCached(t *testing.T) {
	inner := newMapLoader(map[string]domain.Site{})
	cached := NewCachedLoader(inner, 10)

	_, _, err := cached.Load(context.Background(), "missing.epw")
	require.Error(t, err)
	_, _, err = cached.Load(context.Background(), "missing.epw")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls["missing.epw"], "failed loads can be retried")
}

func TestCachedLoader_SharedAcrossScenarios(t *testing.T) {
	inner := newMapLoader(map[string]domain.Site{
		"a.epw": {City: "Calgary"},
	})
	cached := NewCachedLoader(inner, 10)
	sink := &capturingSink{}
	runner := newTestRunner(cached, sink)

	heating := testScenario()
	heating.Name = "heating_wide"
	heating.DegreeType = domain.Heating
	heating.DailyThreshold = 18.3

	err := runner.Run(context.Background(), []string{"a.epw"}, []domain.ScenarioConfig{testScenario(), heating})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls["a.epw"], "second scenario should hit the cache")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", loadedSeries{site: domain.Site{City: "A"}})
	c.put("b", loadedSeries{site: domain.Site{City: "B"}})

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", v.site.City)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", loadedSeries{site: domain.Site{City: "A"}})
	c.put("b", loadedSeries{site: domain.Site{City: "B"}})
	c.put("c", loadedSeries{site: domain.Site{City: "C"}}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", v.site.City)

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", v.site.City)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", loadedSeries{site: domain.Site{City: "A"}})
	c.put("b", loadedSeries{site: domain.Site{City: "B"}})

	// Access "a" to promote it
	c.get("a")

	// Insert "c" — should evict "b" (LRU), not "a"
	c.put("c", loadedSeries{site: domain.Site{City: "C"}})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", loadedSeries{site: domain.Site{City: "A1"}})
	c.put("a", loadedSeries{site: domain.Site{City: "A2"}})

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", v.site.City)
}
