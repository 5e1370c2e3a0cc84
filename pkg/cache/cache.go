package cache

import (
	"context"
	"time"
)

// Cache is the key/value cache used for read-heavy catalog views.
// Implementations serialize values as JSON.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a cache miss, in which case dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern such as "book:detail:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
