package pipeline

import (
	"context"
	"sync"

	"github.com/couchcryptid/degree-hour-etl/internal/domain"
)

// CachedLoader wraps a SeriesLoader with an in-memory LRU cache keyed by
// file path. With multiple scenarios over the same file set this saves
// one parse per file per scenario after the first.
type CachedLoader struct {
	inner SeriesLoader
	cache *lruCache
}

// NewCachedLoader creates a cache decorator around a loader.
func NewCachedLoader(inner SeriesLoader, maxEntries int) *CachedLoader {
	return &CachedLoader{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedLoader) Load(ctx context.Context, path string) (domain.TemperatureSeries, domain.Site, error) {
	if cached, ok := c.cache.get(path); ok {
		return cached.series, cached.site, nil
	}
	series, site, err := c.inner.Load(ctx, path)
	if err != nil {
		return nil, domain.Site{}, err
	}
	c.cache.put(path, loadedSeries{series: series, site: site})
	return series, site, nil
}

type loadedSeries struct {
	series domain.TemperatureSeries
	site   domain.Site
}

// lruCache is a simple thread-safe LRU cache for parsed series.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value loadedSeries
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (loadedSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return loadedSeries{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value loadedSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
