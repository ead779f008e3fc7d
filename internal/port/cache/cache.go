// Package cache defines the port interface for key-value caching and the
// typed get-or-compute helper used by the service layer.
package cache

import (
	"context"
	"time"
)

// Stats describes the current contents of a cache. Keys may include entries
// whose TTL has elapsed but which have not been purged yet; expiry is lazy
// and only enforced on read.
type Stats struct {
	Size     int      `json:"size"`
	Capacity int      `json:"capacity"`
	Keys     []string `json:"keys"`
}

// Cache is the port interface for key-value caching.
//
// Get treats an entry older than its TTL as absent. Set inserts or
// overwrites with the entry's age reset; a bounded implementation at
// capacity evicts its earliest-inserted entry before inserting.
// DeletePattern removes every key containing the given substring
// (plain containment, not regex or glob).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, substr string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}
