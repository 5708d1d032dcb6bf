package skillsource

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "skillsource:"

// TieredCache keeps lookups in process memory and, when a redis client is
// given, shares them across instances. Values are stored as JSON so both tiers
// hold the same bytes. Cache failures are misses, never errors.
type TieredCache struct {
	local  *cache.Cache
	remote *redis.Client
	ttl    time.Duration
}

// NewTieredCache accepts a nil redis client for a memory-only cache
func NewTieredCache(ttl time.Duration, rdb *redis.Client) *TieredCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TieredCache{
		local:  cache.New(ttl, 10*time.Minute),
		remote: rdb,
		ttl:    ttl,
	}
}

// Get decodes the cached value for key into dest and reports a hit.
// A redis hit is promoted into the local tier.
func (c *TieredCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	if x, found := c.local.Get(key); found {
		return json.Unmarshal(x.([]byte), dest) == nil
	}
	if c.remote == nil {
		return false
	}

	data, err := c.remote.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	c.local.Set(key, data, cache.DefaultExpiration)
	return true
}

// Set writes value to both tiers
func (c *TieredCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.local.Set(key, data, cache.DefaultExpiration)
	if c.remote != nil {
		c.remote.Set(ctx, cacheKeyPrefix+key, data, c.ttl)
	}
}
