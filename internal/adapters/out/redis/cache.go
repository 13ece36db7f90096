// Package redis provides the Redis-backed implementation of the query cache.
package redis

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.Cache = &Cache{}

// Cache implements ports.Cache on a Redis client.
type Cache struct {
	client *redis.Client
}

// NewCache creates a cache connected to the Redis server at addr.
func NewCache(addr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Get looks up a key. A missing key is reported as a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value under the key with the given time to live.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the underlying client connections.
func (c *Cache) Close() error {
	return c.client.Close()
}
