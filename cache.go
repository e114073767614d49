package configcat

import (
	"context"

	sdk "github.com/configcat/go-sdk/v9"
)

// Cache stores the serialized configuration the SDK fetched, keyed by the
// SDK's own cache key. Providing one (e.g. backed by Redis or the local
// filesystem) lets the client serve flags from the last known configuration
// immediately after a restart, before the first fetch completes.
// The provider never reads or writes the cache itself; it only hands it to
// the wrapped client.
type Cache interface {
	// Get gets the value for the given key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set sets the value for the given key.
	Set(ctx context.Context, key string, value []byte) error
}

// configCacheAdapter bridges a Cache into the SDK's cache interface.
type configCacheAdapter struct {
	cache Cache
}

var _ sdk.ConfigCache = (*configCacheAdapter)(nil)

func (a *configCacheAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return a.cache.Get(ctx, key)
}

func (a *configCacheAdapter) Set(ctx context.Context, key string, value []byte) error {
	return a.cache.Set(ctx, key, value)
}
