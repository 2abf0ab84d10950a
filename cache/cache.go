package cache

import (
	"context"
	"time"
)

// Store is the response-cache contract: get returns the cached bytes or the
// empty string on a miss, set stores with a TTL, Clear drops everything.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Clear(ctx context.Context) error
}

var store Store = NewMemoryStore()

// Use swaps the active backend. InitFromEnv installs redis when it is
// reachable; otherwise the in-process store stays active.
func Use(s Store) {
	if s != nil {
		store = s
	}
}

func Get(ctx context.Context, key string) (string, error) {
	return store.Get(ctx, key)
}

func Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return store.Set(ctx, key, value, ttl)
}

func Delete(ctx context.Context, key string) error {
	return store.Delete(ctx, key)
}

func DeleteByPrefix(ctx context.Context, prefix string) error {
	return store.DeleteByPrefix(ctx, prefix)
}

// Clear is the manual invalidation hook. Within the TTL the cache serves
// stale pages by design; Clear is the only way to force a refresh early.
func Clear(ctx context.Context) error {
	return store.Clear(ctx)
}
