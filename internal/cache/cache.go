// Package cache provides a small redis-backed key/value cache used for
// short-lived lookups. A nil cache is valid and behaves as a miss on every
// read, so callers do not need to special-case a missing redis deployment.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a redis client with get/set helpers.
type Cache struct {
	client *redis.Client
}

// New creates a cache against the given redis address. An empty address
// returns a nil cache.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies connectivity to the redis backend.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns the cached value for key, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores a value under key with the given TTL. Failures are ignored;
// the cache is purely an optimization over the backing store.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, ttl)
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key)
}
