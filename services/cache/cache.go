// Package cache implements the cache-aside layer in front of the transaction
// store. The cache is an optimisation only: read failures are reported as
// misses and write failures are logged and dropped.
package cache

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "tx-guard/errors"
	metrics "tx-guard/metrics"

	// External Packages
	"go.uber.org/zap"
)

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the key/value port backing the caches.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func get(ctx context.Context, store Store, logger *zap.Logger, name, key string) ([]byte, bool) {
	data, err := store.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheRequests.WithLabelValues(name, "hit").Inc()
		return data, true
	case errors.Is(err, ErrMiss):
		metrics.CacheRequests.WithLabelValues(name, "miss").Inc()
	default:
		metrics.CacheRequests.WithLabelValues(name, "error").Inc()
		logger.Warn("cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func set(ctx context.Context, store Store, logger *zap.Logger, key string, value []byte, ttl time.Duration) {
	if err := store.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
