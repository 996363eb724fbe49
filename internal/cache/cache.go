// Package cache memoizes reconciliation results per (source, region) so
// repeated views of the same workbook don't re-run the pipeline. It wraps the
// engine as a pure function; the engine itself knows nothing about caching.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/opsvantage/triage-cli/internal/reconcile"
)

// ResultCache is a concurrent-safe LRU cache of reconciled results with TTL
// expiration. Keys combine the workbook content digest and the region code,
// so a changed source never serves a stale result.
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	order      []string // LRU order: front=oldest, back=newest
	maxEntries int
	ttl        time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

type cacheEntry struct {
	result    *reconcile.Result
	createdAt time.Time
}

// Stats contains cache performance statistics.
type Stats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// New creates a ResultCache with the given capacity and TTL.
func New(maxEntries int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// resultKey builds the cache key for a digest and region.
func resultKey(digest, region string) string {
	return digest + "/" + region
}

// Get retrieves a cached result. Returns nil on miss or expiration.
func (c *ResultCache) Get(digest, region string) *reconcile.Result {
	key := resultKey(digest, region)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil
	}

	if time.Since(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.misses.Add(1)
		return nil
	}

	// Move to back (most recently used).
	c.removeFromOrder(key)
	c.order = append(c.order, key)
	c.hits.Add(1)
	return entry.result
}

// Put stores a result, evicting the oldest entry if at capacity.
func (c *ResultCache) Put(digest, region string, result *reconcile.Result) {
	key := resultKey(digest, region)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = &cacheEntry{result: result, createdAt: time.Now()}
		c.removeFromOrder(key)
		c.order = append(c.order, key)
		return
	}

	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{result: result, createdAt: time.Now()}
	c.order = append(c.order, key)
}

// InvalidateSource removes every cached result for the given content digest,
// across all regions.
func (c *ResultCache) InvalidateSource(digest string) {
	prefix := digest + "/"

	c.mu.Lock()
	defer c.mu.Unlock()

	var remaining []string
	for _, key := range c.order {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		} else {
			remaining = append(remaining, key)
		}
	}
	c.order = remaining
}

// Stats returns cache performance statistics.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	entries := len(c.entries)
	maxEntries := c.maxEntries
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Entries:    entries,
		MaxEntries: maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
	}
}

// removeFromOrder removes a key from the LRU order slice.
func (c *ResultCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
