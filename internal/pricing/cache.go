package pricing

import (
	"sync"
	"time"
)

// Cache is the capability the estimator uses to remember unit-price
// estimates between calls. Implementations provide last-writer-wins
// semantics; concurrent misses for the same key may both query the provider
// and both write, which only costs a duplicate lookup.
type Cache interface {
	Get(key string) (float64, bool)
	Set(key string, value float64, ttl time.Duration)
}

// MemoryCache is an in-memory TTL cache for unit-price estimates.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value     float64
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock creates a MemoryCache with an injected clock so
// tests can control expiry.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// Get returns the cached value for key if it has not expired.
func (c *MemoryCache) Get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return 0, false
	}
	return entry.value, true
}

// Set stores value under key for the given TTL, overwriting any previous
// entry.
func (c *MemoryCache) Set(key string, value float64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}
