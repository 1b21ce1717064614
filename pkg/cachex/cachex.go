package cachex

import (
	"context"
	"time"
)

// Cache is a TTL key/value acceleration layer. Implementations are
// non-authoritative: every value must be recomputable from the system of
// record, and callers treat failures as cache misses.
type Cache interface {
	// Get unmarshals the cached value into dest. The boolean reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// DeleteByPattern removes every key matching a glob-style pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
}
