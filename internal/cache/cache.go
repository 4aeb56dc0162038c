// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/companydesk/internal/metrics"
)

// DefaultTTL is used when New is given a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// expired reports whether the entry is stale at now.
// An entry is still valid at exactly its expiry instant.
func (e Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Cache is a thread-safe in-memory map with per-entry expiration.
//
// Expired entries are removed lazily when read and eagerly by Cleanup. The
// cache never starts goroutines of its own; periodic sweeping is done by a
// supervised janitor service that calls Cleanup.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
	name    string
	stats   Counters
}

// Stats is a point-in-time view of the entries currently held.
// Active + Expired always equals Total.
type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}

// Counters tracks lifetime cache activity.
type Counters struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	LastCleanup time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now. Used by tests to simulate the passage of time.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithName sets the cache_type label used for Prometheus metrics.
func WithName(name string) Option {
	return func(c *Cache) {
		if name != "" {
			c.name = name
		}
	}
}

// New creates an empty cache whose entries live for ttl unless stored with
// SetWithTTL. A non-positive ttl falls back to DefaultTTL.
//
// Example:
//
//	c := cache.New(5*time.Minute, cache.WithName("companies"))
//	c.Set("key", value)
//	if data, ok := c.Get("key"); ok {
//	    // Use cached data
//	}
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
		name:    "default",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.stats.LastCleanup = c.now()
	return c
}

// TTL returns the default time-to-live for new entries.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from the cache by key.
//
// Returns (nil, false) when the key is absent or its entry has expired. An
// expired entry is deleted as a side effect of the read.
func (c *Cache) Get(key string) (interface{}, bool) {
	entry, ok := c.GetEntry(key)
	if !ok {
		return nil, false
	}
	return entry.Data, true
}

// GetEntry is Get but also returns the entry's expiry time.
func (c *Cache) GetEntry(key string) (Entry, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return Entry{}, false
	}

	now := c.now()
	if entry.expired(now) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && current.expired(now) {
			delete(c.entries, key)
			c.recordEviction(1)
		}
		size := len(c.entries)
		c.mu.Unlock()
		c.recordMiss()
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
		return Entry{}, false
	}

	c.recordHit()
	return entry, true
}

// Set stores value under key with the default TTL, replacing any existing
// entry. The stored entry is returned so callers can report its expiry.
func (c *Cache) Set(key string, value interface{}) Entry {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
// A non-positive ttl uses the cache default.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) Entry {
	if ttl <= 0 {
		ttl = c.ttl
	}
	entry := Entry{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}

	c.mu.Lock()
	c.entries[key] = entry
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
	return entry
}

// Delete removes key and reports whether an entry was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEviction(1)
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
	return existed
}

// Clear removes every entry, expired or not, and returns how many were held.
func (c *Cache) Clear() int {
	c.mu.Lock()
	removed := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEviction(int64(removed))
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
	return removed
}

// Cleanup removes exactly the entries that have expired and returns the
// number removed. Unexpired entries are left alone.
func (c *Cache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.recordEviction(int64(removed))
	c.stats.mu.Lock()
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()

	metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
	return removed
}

// Stats counts held entries as of now. Expired entries that have not been
// read or swept yet are reported under Expired.
func (c *Cache) Stats() Stats {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Total: len(c.entries)}
	for _, entry := range c.entries {
		if entry.expired(now) {
			s.Expired++
		}
	}
	s.Active = s.Total - s.Expired
	return s
}

// Len returns the number of held entries including stale ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetCounters returns a copy of the lifetime counters.
func (c *Cache) GetCounters() Counters {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Counters{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	counters := c.GetCounters()
	total := counters.Hits + counters.Misses
	if total == 0 {
		return 0.0
	}
	return float64(counters.Hits) / float64(total) * 100.0
}

// recordHit increments the hit counter
func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

// recordMiss increments the miss counter
func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

// recordEviction adds n to the eviction counter
func (c *Cache) recordEviction(n int64) {
	if n <= 0 {
		return
	}
	c.stats.mu.Lock()
	c.stats.Evictions += n
	c.stats.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}
