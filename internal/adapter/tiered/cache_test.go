package tiered_test

import (
	"context"
	"testing"
	"time"

	"github.com/foliohq/folio/internal/adapter/memcache"
	"github.com/foliohq/folio/internal/adapter/tiered"
)

func TestTiered_L1Hit(t *testing.T) {
	l1 := memcache.New(10)
	l2 := memcache.New(10)
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	// Present only in L1
	_ = l1.Set(ctx, "key1", []byte("val1"), time.Minute)

	val, found, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L1 hit")
	}
	if string(val) != "val1" {
		t.Fatalf("expected val1, got %s", val)
	}
}

func TestTiered_L2HitWithBackfill(t *testing.T) {
	l1 := memcache.New(10)
	l2 := memcache.New(10)
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	// Present only in L2
	_ = l2.Set(ctx, "key2", []byte("val2"), time.Minute)

	val, found, err := c.Get(ctx, "key2")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L2 hit")
	}
	if string(val) != "val2" {
		t.Fatalf("expected val2, got %s", val)
	}

	// Verify backfill into L1
	l1Val, found, err := l1.Get(ctx, "key2")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L1 backfill")
	}
	if string(l1Val) != "val2" {
		t.Fatalf("expected backfilled val2, got %s", l1Val)
	}
}

func TestTiered_Miss(t *testing.T) {
	c := tiered.New(memcache.New(10), memcache.New(10), 5*time.Minute)

	_, found, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected miss on both levels")
	}
}

func TestTiered_DeletePatternBothLevels(t *testing.T) {
	l1 := memcache.New(10)
	l2 := memcache.New(10)
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "projects:all", []byte("v"), time.Minute)
	_ = c.Set(ctx, "messages:all", []byte("v"), time.Minute)

	if err := c.DeletePattern(ctx, "projects"); err != nil {
		t.Fatal(err)
	}

	for name, level := range map[string]interface {
		Get(context.Context, string) ([]byte, bool, error)
	}{"l1": l1, "l2": l2} {
		if _, found, _ := level.Get(ctx, "projects:all"); found {
			t.Fatalf("%s: projects:all should be gone", name)
		}
		if _, found, _ := level.Get(ctx, "messages:all"); !found {
			t.Fatalf("%s: messages:all should remain", name)
		}
	}
}
