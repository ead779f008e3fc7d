// Package memcache implements the cache port as a bounded in-process store
// with per-entry TTLs and insertion-order eviction.
package memcache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/foliohq/folio/internal/port/cache"
)

// DefaultMaxEntries bounds the store when no capacity is configured.
const DefaultMaxEntries = 100

type entry struct {
	value     []byte
	createdAt time.Time
	ttl       time.Duration
}

// Store is a fixed-capacity in-process cache. Expiry is lazy: an entry past
// its TTL is treated as absent and removed when a read touches it, not
// before. When an insert would exceed capacity the earliest-inserted entry
// still present is evicted; overwriting a key keeps its original insertion
// position. This is deliberately not LRU — a frequently read entry is just
// as evictable as one never read.
//
// Handlers run on concurrent goroutines, so the map is mutex-guarded; every
// operation is a short critical section with no suspension inside.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string // keys in insertion order, oldest first
	maxEntries int
	now        func() time.Time
	onEvict    func(key string)
}

// New creates a Store bounded to maxEntries. Non-positive values fall back
// to DefaultMaxEntries.
func New(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		entries:    make(map[string]entry, maxEntries),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// OnEvict registers a callback invoked with each key evicted to make room
// at capacity (not for TTL expiry or explicit deletes). Used to feed metric
// counters. Not safe to call after the Store is in use.
func (s *Store) OnEvict(fn func(key string)) {
	s.onEvict = fn
}

// Get returns the value for key when present and fresh. An expired entry is
// removed as a side effect and reported as a miss.
func (s *Store) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, present := s.entries[key]
	if !present {
		return nil, false, nil
	}
	if s.now().Sub(e.createdAt) > e.ttl {
		s.remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set inserts or overwrites the entry for key with its age reset. At
// capacity, the earliest-inserted entry is evicted first.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.entries[key]; !present {
		if len(s.entries) >= s.maxEntries {
			evicted := s.order[0]
			s.remove(evicted)
			if s.onEvict != nil {
				s.onEvict(evicted)
			}
		}
		s.order = append(s.order, key)
	}
	s.entries[key] = entry{value: value, createdAt: s.now(), ttl: ttl}
	return nil
}

// Delete removes the entry for key; no-op when absent.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
	return nil
}

// DeletePattern removes every key containing substr.
func (s *Store) DeletePattern(_ context.Context, substr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range append([]string(nil), s.order...) {
		if strings.Contains(key, substr) {
			s.remove(key)
		}
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry, s.maxEntries)
	s.order = nil
	return nil
}

// Stats reports size, capacity and present keys in insertion order. Keys
// past their TTL but not yet purged are included.
func (s *Store) Stats(_ context.Context) (cache.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cache.Stats{
		Size:     len(s.entries),
		Capacity: s.maxEntries,
		Keys:     append([]string(nil), s.order...),
	}, nil
}

// remove deletes key from the map and the order slice. Caller holds mu.
func (s *Store) remove(key string) {
	if _, present := s.entries[key]; !present {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
