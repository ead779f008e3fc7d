package cache

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/singleflight"
)

// Loader wraps a Cache for typed get-or-compute lookups. With singleFlight
// enabled, concurrent misses for the same key share one computation;
// otherwise each concurrent miss runs its own computation and the last
// write wins, which costs redundant work but never corrupts the store.
type Loader struct {
	cache  Cache
	group  *singleflight.Group
	onHit  func(key string)
	onMiss func(key string)
}

// NewLoader creates a Loader over the given cache backend.
func NewLoader(c Cache, singleFlight bool) *Loader {
	l := &Loader{cache: c}
	if singleFlight {
		l.group = &singleflight.Group{}
	}
	return l
}

// Cache returns the underlying cache backend.
func (l *Loader) Cache() Cache { return l.cache }

// Observe registers hit/miss callbacks, used to feed metric counters.
// Either may be nil. Not safe to call after the Loader is in use.
func (l *Loader) Observe(onHit, onMiss func(key string)) {
	l.onHit = onHit
	l.onMiss = onMiss
}

// Invalidate removes every cached key containing the given substring.
func (l *Loader) Invalidate(ctx context.Context, substr string) error {
	return l.cache.DeletePattern(ctx, substr)
}

// Lookup returns the cached value for p.Key when a fresh entry exists;
// compute is not invoked on a hit. On a miss it invokes compute, stores the
// JSON-encoded result under p.Key with p.TTL, and returns it. A compute
// failure propagates unchanged and caches nothing.
//
// Cache backend errors are swallowed: caching is a latency optimization,
// so a failing backend degrades to computing every time rather than
// failing the request.
func Lookup[T any](ctx context.Context, l *Loader, p Preset, compute func(ctx context.Context) (T, error)) (T, error) {
	data, found, err := l.cache.Get(ctx, p.Key)
	if err == nil && found {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			if l.onHit != nil {
				l.onHit(p.Key)
			}
			return v, nil
		}
		// Undecodable entry (value shape changed between deploys): drop it
		// and fall through to compute.
		_ = l.cache.Delete(ctx, p.Key)
	}
	if l.onMiss != nil {
		l.onMiss(p.Key)
	}

	if l.group == nil {
		return computeAndStore(ctx, l.cache, p, compute)
	}

	res, err, _ := l.group.Do(p.Key, func() (any, error) {
		return computeAndStore(ctx, l.cache, p, compute)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func computeAndStore[T any](ctx context.Context, c Cache, p Preset, compute func(ctx context.Context) (T, error)) (T, error) {
	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.Set(ctx, p.Key, data, p.TTL)
	}
	return v, nil
}
