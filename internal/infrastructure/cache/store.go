// Package cache provides the owner-keyed store behind the dashboard
// aggregates. Entries are JSON-encoded read models keyed per owner;
// reads fail open, so a broken cache degrades to recomputation rather
// than an error.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a byte-oriented cache with per-entry TTLs. Implementations
// must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL. A zero TTL means
	// the entry does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the keys. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the store
	Close() error
}

// GetOrCompute returns the cached value under key, computing and caching
// it on a miss. Cache read and write failures are swallowed so a broken
// cache never breaks the caller; compute errors are returned as-is.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if data, err := store.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry, drop it and recompute
		_ = store.Delete(ctx, key)
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		_ = store.Set(ctx, key, data, ttl)
	}

	return value, nil
}
