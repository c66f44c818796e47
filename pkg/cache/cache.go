// Package cache stores rendered artifacts keyed by their inputs.
//
// The CLI caches diagrams rendered from DOT sources so repeated tree
// renders of an unchanged scene skip Graphviz:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.Key("tree", "svg", dot)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
//
// Use [NewNullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
