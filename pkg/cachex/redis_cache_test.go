package cachex

import (
	"context"
	"testing"
	"time"
)

// A nil Redis client means caching is disabled; every operation must be a
// clean miss or no-op rather than a panic or error.
func TestNilClientDegradesToMisses(t *testing.T) {
	t.Parallel()

	cache := NewRedisCache(nil)
	ctx := context.Background()

	var dest string
	hit, err := cache.Get(ctx, "some:key", &dest)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Fatalf("nil client can never hit")
	}

	if err := cache.Set(ctx, "some:key", "value", time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := cache.DeleteByPattern(ctx, "some:*"); err != nil {
		t.Fatalf("DeleteByPattern error: %v", err)
	}
}
