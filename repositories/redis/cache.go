package redis

import (
	// Go Internal Packages
	"context"
	"errors"
	"time"

	// Local Packages
	cache "tx-guard/services/cache"

	// External Packages
	"github.com/redis/go-redis/v9"
)

// Cache adapts a redis client to the cache.Store port.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrMiss
	}
	return data, err
}

// Set writes value with the given TTL, a zero TTL keeps the key forever.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
