package imagegen

import (
	"sync"
	"time"
)

// Cache holds generated image bytes in memory with a time-based expiry.
// Entries expire lazily on read and are swept before each generation. The
// cache is an injected dependency of the Generator, never package state.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is swappable in tests.
	now func() time.Time
}

type cacheEntry struct {
	data     []byte
	storedAt time.Time
}

// Stats describes the cache contents at one point in time. Field names
// follow the stats endpoint's JSON contract.
type Stats struct {
	TotalEntries    int     `json:"total_entries"`
	ValidEntries    int     `json:"valid_entries"`
	ExpiredEntries  int     `json:"expired_entries"`
	CacheTTLSeconds float64 `json:"cache_ttl_seconds"`
	MemoryUsageMB   float64 `json:"memory_usage_mb"`
}

// NewCache returns an empty cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) valid(e cacheEntry) bool {
	return c.now().Sub(e.storedAt) < c.ttl
}

// Get returns the cached bytes for key if present and unexpired. An expired
// entry is deleted on the spot.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.valid(e) {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Put stores data under key, replacing any previous entry.
func (c *Cache) Put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, storedAt: c.now()}
}

// Sweep removes all expired entries and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if !c.valid(e) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Clear empties the cache and returns the number of removed entries.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	return n
}

// Stats reports entry counts and actual memory held by cached images.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		TotalEntries:    len(c.entries),
		CacheTTLSeconds: c.ttl.Seconds(),
	}
	var bytes int
	for _, e := range c.entries {
		if c.valid(e) {
			s.ValidEntries++
		}
		bytes += len(e.data)
	}
	s.ExpiredEntries = s.TotalEntries - s.ValidEntries
	s.MemoryUsageMB = float64(bytes) / (1024 * 1024)
	return s
}
