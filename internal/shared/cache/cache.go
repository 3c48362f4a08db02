// Package cache keeps derived results for a bounded time: an in-memory tier
// and, when configured, a Redis tier that survives restarts.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"job-assistant/internal/shared/telemetry"
)

const keyPrefix = "ja:"

// Options configures a Cache. RedisURL may be empty to disable the Redis tier.
type Options struct {
	RedisURL   string
	TTL        time.Duration
	MaxEntries int
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	items      map[string]entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New builds a cache. An unreachable or malformed Redis URL disables the
// Redis tier with a warning instead of failing.
func New(ctx context.Context, opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	c := &Cache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: opts.MaxEntries,
		now:        time.Now,
	}

	if opts.RedisURL != "" {
		redisOpts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			telemetry.Warn("cache.redis_invalid_url", map[string]any{"error": err.Error()})
		} else {
			rdb := redis.NewClient(redisOpts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				telemetry.Warn("cache.redis_unreachable", map[string]any{"error": err.Error()})
				_ = rdb.Close()
			} else {
				c.rdb = rdb
				telemetry.Info("cache.redis_connected", map[string]any{"addr": redisOpts.Addr})
			}
		}
	}

	telemetry.Info("cache.initialized", map[string]any{
		"ttl_ms":      ttl.Milliseconds(),
		"max_entries": opts.MaxEntries,
		"redis":       c.rdb != nil,
	})
	return c
}

// Get looks in memory first, then Redis; a Redis hit is copied into memory.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	now := c.now()

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		if now.Before(e.expiresAt) {
			c.mu.Unlock()
			return e.data, true
		}
		delete(c.items, key)
	}
	c.mu.Unlock()

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			telemetry.Warn("cache.redis_get_failed", map[string]any{"error": err.Error()})
		}
		return nil, false
	}
	c.store(key, data, now)
	return data, true
}

// Set stores data in both tiers.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	c.store(key, data, c.now())

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
			telemetry.Warn("cache.redis_set_failed", map[string]any{"error": err.Error()})
		}
	}
}

// Len reports the number of in-memory entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// RedisHealthy pings the Redis tier; false when it is disabled or down.
func (c *Cache) RedisHealthy(ctx context.Context) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.rdb.Ping(pingCtx).Err() == nil
}

// Close releases the Redis connection if there is one.
func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Cache) store(key string, data []byte, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		c.evictLocked(now)
	}
	c.items[key] = entry{data: data, expiresAt: now.Add(c.ttl)}
}

// evictLocked makes room for one more entry: expired entries go first, then
// the ones closest to expiry.
func (c *Cache) evictLocked(now time.Time) {
	if c.maxEntries <= 0 || len(c.items) < c.maxEntries {
		return
	}
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
		}
	}
	for len(c.items) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		first := true
		for k, e := range c.items {
			if first || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt, first = k, e.expiresAt, false
			}
		}
		delete(c.items, oldestKey)
	}
}
