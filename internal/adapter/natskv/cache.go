// Package natskv implements the cache port using NATS JetStream KV as an
// L2 remote cache shared across instances.
package natskv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/foliohq/folio/internal/port/cache"
)

// Cache wraps a NATS JetStream KeyValue store as an L2 cache.
type Cache struct {
	kv jetstream.KeyValue
	nc *nats.Conn
}

// JetStream KV keys are restricted to [-/_=.a-zA-Z0-9], so the canonical
// cache keys ("projects:all") cannot be stored as-is: Put and Get reject a
// ':' before any network call. Keys are stored with ':' mapped to '.'; no
// cache key contains a '.', so the mapping round-trips.
func encodeKey(key string) string { return strings.ReplaceAll(key, ":", ".") }

func decodeKey(key string) string { return strings.ReplaceAll(key, ".", ":") }

// New creates a NATS KV-backed cache over an existing bucket.
func New(kv jetstream.KeyValue) *Cache {
	return &Cache{kv: kv}
}

// Open connects to NATS, ensures the named KV bucket exists with the given
// bucket-level TTL, and returns a cache over it.
func Open(ctx context.Context, url, bucket string, ttl time.Duration) (*Cache, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, err
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
		TTL:    ttl,
	})
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &Cache{kv: kv, nc: nc}, nil
}

// Get retrieves a value from the NATS KV store.
func (c *Cache) Get(ctx context.Context, key string) (data []byte, ok bool, err error) {
	entry, err := c.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value(), true, nil
}

// Set stores a value in the NATS KV store. TTL is managed at bucket level.
func (c *Cache) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	_, err := c.kv.Put(ctx, encodeKey(key), value)
	return err
}

// Delete removes a value from the NATS KV store.
func (c *Cache) Delete(ctx context.Context, key string) error {
	err := c.kv.Purge(ctx, encodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

// DeletePattern removes every key containing substr.
func (c *Cache) DeletePattern(ctx context.Context, substr string) error {
	keys, err := c.listKeys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if strings.Contains(key, substr) {
			if err := c.Delete(ctx, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear removes all entries from the bucket.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.listKeys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Stats lists present keys. Capacity is 0: the bucket is unbounded from the
// cache's point of view.
func (c *Cache) Stats(ctx context.Context) (cache.Stats, error) {
	keys, err := c.listKeys(ctx)
	if err != nil {
		return cache.Stats{}, err
	}
	return cache.Stats{Size: len(keys), Keys: keys}, nil
}

// Close closes the NATS connection when this cache owns it.
func (c *Cache) Close() {
	if c.nc != nil {
		c.nc.Close()
	}
}

func (c *Cache) listKeys(ctx context.Context) ([]string, error) {
	lister, err := c.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, err
	}
	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, decodeKey(key))
	}
	return keys, nil
}
