package cache

import (
	"strings"
	"sync"
	"time"
)

// entry is one cached computation result
type entry struct {
	payload    any
	computedAt time.Time
	expiresAt  time.Time
	isValid    bool
}

// ResultCache is an optional write-behind sink for derived results
// (pivots, accuracy reports, waterfalls), keyed by entity and parameters.
// Entries expire on a TTL and can be invalidated early when fresher
// source rows arrive. Never a dependency for correctness: a miss just
// means recompute.
type ResultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewResultCache creates a cache whose entries expire after ttl
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds a cache key from entity and parameter parts
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Put stores a computed result under the key
func (c *ResultCache) Put(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = entry{
		payload:    payload,
		computedAt: now,
		expiresAt:  now.Add(c.ttl),
		isValid:    true,
	}
}

// Get returns the cached payload when it is still valid and unexpired
func (c *ResultCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.isValid || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.payload, true
}

// Invalidate marks the entry stale without removing it
func (c *ResultCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.isValid = false
		c.entries[key] = e
	}
}

// InvalidateAll marks every entry stale
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		e.isValid = false
		c.entries[key] = e
	}
}

// Purge removes expired and invalidated entries and returns how many
// were dropped
func (c *ResultCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for key, e := range c.entries {
		if !e.isValid || now.After(e.expiresAt) {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of stored entries, including stale ones
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
