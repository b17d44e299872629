package availability

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cacheEntry struct {
	available bool
	expiresAt time.Time
}

// resultCache is a size bounded cache of probe outcomes keyed by model id.
// lru.Cache does its own locking.
type resultCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func newResultCache(size int, ttl time.Duration) (*resultCache, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &resultCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *resultCache) Get(key string) (bool, bool) {
	if c.ttl <= 0 {
		return false, false
	}
	val, found := c.cache.Get(key)
	if !found {
		return false, false
	}
	entry := val.(cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return false, false
	}
	return entry.available, true
}

func (c *resultCache) Set(key string, available bool) {
	if c.ttl <= 0 {
		return
	}
	c.cache.Add(key, cacheEntry{available: available, expiresAt: c.now().Add(c.ttl)})
}

func (c *resultCache) Invalidate(key string) {
	c.cache.Remove(key)
}
