// Package cache provides a Redis-backed read-through cache for chat list
// responses. Cache failures degrade to the document store; they are never
// surfaced to the caller.
package cache

import (
	"context"
	"errors"
	"time"

	"supplygenie/backend/pkg/config"
	"supplygenie/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is not cached
var ErrMiss = errors.New("cache miss")

// Cache wraps a Redis client with the application's TTL policy
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New creates a cache from configuration. Returns nil when caching is
// disabled; callers treat a nil cache as a permanent miss.
func New(log *logger.Logger) *Cache {
	cfg := config.Get()
	if !cfg.Cache.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	return &Cache{
		client: client,
		ttl:    cfg.Cache.TTL,
		log:    log,
	}
}

// ChatListKey builds the cache key for a user's chat list
func ChatListKey(userID string) string {
	return "chats:" + userID
}

// Get returns the cached value for key, or ErrMiss
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", ErrMiss
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "key", key, "error", err.Error())
		}
		return "", ErrMiss
	}
	return val, nil
}

// Set stores value under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key string, value string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err.Error())
	}
}

// Invalidate drops the cached value for key
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "key", key, "error", err.Error())
	}
}

// Close releases the underlying Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
