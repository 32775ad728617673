package apiclient

import (
	"sync"
	"sync/atomic"
	"time"

	"animeschedule/internal/models"
)

// DefaultCacheDuration is the freshness window for cached responses.
const DefaultCacheDuration = 5 * time.Minute

// CacheEntry is a successful envelope stored under its literal endpoint key.
type CacheEntry struct {
	Key       string
	Payload   *models.Envelope
	FetchedAt time.Time
}

// ResponseCache is an in-process TTL cache. Expired entries are evicted
// lazily on lookup, never by a background sweep.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	ttl     time.Duration
	now     func() time.Time

	hits   uint64
	misses uint64
}

type CacheStats struct {
	EntryCount    int     `json:"entry_count"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	TotalRequests uint64  `json:"total_requests"`
	CacheHitRatio float64 `json:"cache_hit_ratio"`
	TTLSeconds    float64 `json:"ttl_seconds"`
}

func NewResponseCache(ttl time.Duration, now func() time.Time) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheDuration
	}
	if now == nil {
		now = time.Now
	}
	return &ResponseCache{
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached envelope when now - fetchedAt < ttl.
func (c *ResponseCache) Get(key string) (*CacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}

	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		c.mu.Lock()
		// a concurrent Set may have refreshed the key
		if current, still := c.entries[key]; still && current == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}

	atomic.AddUint64(&c.hits, 1)
	return entry, true
}

// Set stores payload under key, overwriting any prior entry.
func (c *ResponseCache) Set(key string, payload *models.Envelope) *CacheEntry {
	entry := &CacheEntry{
		Key:       key,
		Payload:   payload,
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return entry
}

func (c *ResponseCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear wipes every entry. Counters are kept.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet looked up.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResponseCache) Stats() CacheStats {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)
	total := hits + misses

	stats := CacheStats{
		EntryCount:    c.Len(),
		Hits:          hits,
		Misses:        misses,
		TotalRequests: total,
		TTLSeconds:    c.ttl.Seconds(),
	}
	if total > 0 {
		stats.CacheHitRatio = float64(hits) / float64(total) * 100
	}
	return stats
}
