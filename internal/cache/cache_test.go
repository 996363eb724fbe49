package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsvantage/triage-cli/internal/reconcile"
)

func result(runID string) *reconcile.Result {
	return &reconcile.Result{RunID: runID}
}

func TestResultCache_BasicGetPut(t *testing.T) {
	c := New(100, time.Hour)

	// Miss on empty cache.
	assert.Nil(t, c.Get("digest-a", "KZN"))

	c.Put("digest-a", "KZN", result("r1"))
	got := c.Get("digest-a", "KZN")
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.RunID)

	// Same digest, different region is still a miss.
	assert.Nil(t, c.Get("digest-a", "WES"))
}

func TestResultCache_TTLExpiration(t *testing.T) {
	c := New(100, 50*time.Millisecond)

	c.Put("digest-a", "KZN", result("r1"))
	assert.NotNil(t, c.Get("digest-a", "KZN"))

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, c.Get("digest-a", "KZN"))

	// Expired entry should be removed from the map.
	c.mu.Lock()
	_, exists := c.entries[resultKey("digest-a", "KZN")]
	c.mu.Unlock()
	assert.False(t, exists)
}

func TestResultCache_LRUEviction(t *testing.T) {
	c := New(3, time.Hour)

	c.Put("a", "KZN", result("1"))
	c.Put("b", "KZN", result("2"))
	c.Put("c", "KZN", result("3"))

	// Cache is full. Adding a fourth should evict "a" (oldest).
	c.Put("d", "KZN", result("4"))

	assert.Nil(t, c.Get("a", "KZN"))
	assert.NotNil(t, c.Get("b", "KZN"))
	assert.NotNil(t, c.Get("c", "KZN"))
	assert.NotNil(t, c.Get("d", "KZN"))
}

func TestResultCache_LRUEviction_AccessOrder(t *testing.T) {
	c := New(3, time.Hour)

	c.Put("a", "KZN", result("1"))
	c.Put("b", "KZN", result("2"))
	c.Put("c", "KZN", result("3"))

	// Access "a" to move it to back.
	c.Get("a", "KZN")

	// Now "b" is the oldest. Adding "d" should evict "b".
	c.Put("d", "KZN", result("4"))

	assert.NotNil(t, c.Get("a", "KZN"))
	assert.Nil(t, c.Get("b", "KZN"))
	assert.NotNil(t, c.Get("c", "KZN"))
	assert.NotNil(t, c.Get("d", "KZN"))
}

func TestResultCache_InvalidateSource(t *testing.T) {
	c := New(100, time.Hour)

	c.Put("digest-a", "KZN", result("1"))
	c.Put("digest-a", "WES", result("2"))
	c.Put("digest-b", "KZN", result("3"))

	c.InvalidateSource("digest-a")

	assert.Nil(t, c.Get("digest-a", "KZN"))
	assert.Nil(t, c.Get("digest-a", "WES"))
	assert.NotNil(t, c.Get("digest-b", "KZN"))
}

func TestResultCache_Stats(t *testing.T) {
	c := New(10, time.Hour)

	c.Get("missing", "KZN")
	c.Put("digest-a", "KZN", result("1"))
	c.Get("digest-a", "KZN")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, 10, stats.MaxEntries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestResultCache_ConcurrentAccess(t *testing.T) {
	c := New(1000, time.Hour)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			digest := string(rune('a' + n%26))
			c.Put(digest, "KZN", result("r"))
			c.Get(digest, "KZN")
		}(i)
	}
	wg.Wait()

	stats := c.Stats()
	assert.LessOrEqual(t, stats.Entries, 1000)
	assert.True(t, stats.Hits+stats.Misses > 0)
}
