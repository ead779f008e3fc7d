package cache_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/foliohq/folio/internal/adapter/memcache"
	"github.com/foliohq/folio/internal/port/cache"
)

func TestLookupComputesOnce(t *testing.T) {
	l := cache.NewLoader(memcache.New(100), false)
	ctx := context.Background()
	p := cache.Preset{Key: "x", TTL: time.Second}

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	v1, err := cache.Lookup(ctx, l, p, compute)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := cache.Lookup(ctx, l, p, compute)
	if err != nil {
		t.Fatal(err)
	}

	if v1 != "value" || v2 != "value" {
		t.Fatalf("unexpected values: %q, %q", v1, v2)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one compute call, got %d", calls)
	}
}

func TestLookupRecomputesAfterExpiry(t *testing.T) {
	l := cache.NewLoader(memcache.New(100), false)
	ctx := context.Background()
	p := cache.Preset{Key: "x", TTL: 10 * time.Millisecond}

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if v, _ := cache.Lookup(ctx, l, p, compute); v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}

	time.Sleep(25 * time.Millisecond)

	v, err := cache.Lookup(ctx, l, p, compute)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Fatalf("expected recompute to return 2, got %d", v)
	}
	if calls != 2 {
		t.Fatalf("expected two compute calls, got %d", calls)
	}
}

func TestLookupErrorCachesNothing(t *testing.T) {
	store := memcache.New(100)
	l := cache.NewLoader(store, false)
	ctx := context.Background()
	p := cache.Preset{Key: "x", TTL: time.Minute}

	boom := errors.New("boom")
	_, err := cache.Lookup(ctx, l, p, func(context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute error to propagate, got %v", err)
	}

	stats, _ := store.Stats(ctx)
	if slices.Contains(stats.Keys, "x") {
		t.Fatal("failed compute must not leave an entry behind")
	}
}

func TestLookupSingleFlight(t *testing.T) {
	l := cache.NewLoader(memcache.New(100), true)
	ctx := context.Background()
	p := cache.Preset{Key: "x", TTL: time.Minute}

	var mu sync.Mutex
	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func(context.Context) (string, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := cache.Lookup(ctx, l, p, compute)
		if err != nil {
			t.Error(err)
			return
		}
		results[0] = v
	}()

	// Launch the second caller only once the first computation is in
	// flight, so it must pile onto the shared call.
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := cache.Lookup(ctx, l, p, compute)
		if err != nil {
			t.Error(err)
			return
		}
		results[1] = v
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one shared computation, got %d", calls)
	}
	if results[0] != "shared" || results[1] != "shared" {
		t.Fatalf("expected both callers to share the result, got %v", results)
	}
}

func TestLookupInvalidate(t *testing.T) {
	l := cache.NewLoader(memcache.New(100), false)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, _ = cache.Lookup(ctx, l, cache.ProjectsAll, compute)
	if err := l.Invalidate(ctx, "projects"); err != nil {
		t.Fatal(err)
	}
	_, _ = cache.Lookup(ctx, l, cache.ProjectsAll, compute)

	if calls != 2 {
		t.Fatalf("expected recompute after invalidation, got %d calls", calls)
	}
}

func TestControlHeader(t *testing.T) {
	tests := []struct {
		name                 string
		maxAge, sMaxAge, swr time.Duration
		want                 string
	}{
		{"all", time.Minute, 5 * time.Minute, 10 * time.Minute, "public, max-age=60, s-maxage=300, stale-while-revalidate=600"},
		{"maxAgeOnly", 30 * time.Second, 0, 0, "public, max-age=30"},
		{"none", 0, 0, 0, "public"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.ControlHeader(tt.maxAge, tt.sMaxAge, tt.swr)
			if got != tt.want {
				t.Errorf("ControlHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPresetNamespaces(t *testing.T) {
	// Invalidation relies on key prefixes matching the namespace patterns.
	for _, p := range []cache.Preset{cache.ProjectsAll, cache.ProjectsFeatured, cache.ProjectSlug("my-app")} {
		if got := p.Key[:len("projects")]; got != "projects" {
			t.Errorf("preset %q outside projects namespace", p.Key)
		}
	}
	if cache.MessagesAll.TTL != time.Minute {
		t.Errorf("messages preset ttl = %v", cache.MessagesAll.TTL)
	}
}
