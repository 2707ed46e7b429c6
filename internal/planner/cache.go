package planner

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PlanCache is a small TTL- and size-bounded cache of previously lowered
// plans, keyed by normalized statement text. It is a pure speed
// optimization: a cache miss or a disabled cache must produce exactly the
// same Plan as Lower would, so nothing here may change observable
// behavior. Eviction is FIFO-by-soonest-expiry, the same policy used by
// the query cache elsewhere in the wider example corpus. Every Get logs its
// outcome at debug level (§10.1 of the design).
type PlanCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	maxSize int
	log     zerolog.Logger
}

type cacheEntry struct {
	plan   *Plan
	expire time.Time
}

// NewPlanCache builds a cache with the given TTL and maximum entry count.
// A maxSize <= 0 disables the cache (Get always misses, Set is a no-op).
func NewPlanCache(ttl time.Duration, maxSize int, log zerolog.Logger) *PlanCache {
	return &PlanCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		log:     log,
	}
}

// Get looks up sql's normalized form, returning (nil, false) on a miss or
// an expired entry.
func (c *PlanCache) Get(sql string) (*Plan, bool) {
	if c.maxSize <= 0 {
		return nil, false
	}
	key := normalize(sql)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		c.log.Debug().Str("key", key).Msg("plan cache miss")
		return nil, false
	}
	if time.Now().After(entry.expire) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.log.Debug().Str("key", key).Msg("plan cache miss: entry expired")
		return nil, false
	}
	c.log.Debug().Str("key", key).Msg("plan cache hit")
	return entry.plan, true
}

// Set stores plan under sql's normalized form, evicting the
// soonest-to-expire entry if the cache is already at maxSize.
func (c *PlanCache) Set(sql string, plan *Plan) {
	if c.maxSize <= 0 {
		return
	}
	key := normalize(sql)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.expire.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.expire
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = cacheEntry{plan: plan, expire: time.Now().Add(c.ttl)}
}

// Clear empties the cache.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len reports the current number of cached entries.
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
