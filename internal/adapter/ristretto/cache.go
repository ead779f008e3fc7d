// Package ristretto implements the cache port using dgraph-io/ristretto.
// It trades the enumeration operations for admission-policy hit rates:
// DeletePattern degrades to Clear and Stats cannot list keys. Select it
// via cache.backend: ristretto when hit rate matters more than precise
// namespace invalidation.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/foliohq/folio/internal/port/cache"
)

// Cache wraps a ristretto cache as an in-process cache backend.
type Cache struct {
	c        *ristretto.Cache[string, []byte]
	capacity int64
}

// New creates a ristretto-backed cache. maxCostBytes is the maximum total
// size of cached values in bytes.
func New(maxCostBytes int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, capacity: maxCostBytes}, nil
}

// Get retrieves a value from the cache.
func (c *Cache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := c.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a value in the cache with the given TTL.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

// Delete removes a value from the cache.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

// DeletePattern drops the whole cache: ristretto cannot enumerate keys, so
// namespace invalidation over-invalidates. Safe (extra misses, never stale
// data) but coarse.
func (c *Cache) DeletePattern(_ context.Context, _ string) error {
	c.c.Clear()
	return nil
}

// Clear removes all entries.
func (c *Cache) Clear(_ context.Context) error {
	c.c.Clear()
	return nil
}

// Stats reports the configured capacity. Size is -1 and Keys nil because
// ristretto does not expose its contents.
func (c *Cache) Stats(_ context.Context) (cache.Stats, error) {
	return cache.Stats{Size: -1, Capacity: int(c.capacity)}, nil
}

// Close shuts down the cache and releases resources.
func (c *Cache) Close() {
	c.c.Close()
}
