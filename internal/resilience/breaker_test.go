package resilience

import (
	"errors"
	"testing"
	"time"
)

var errSMTPDown = errors.New("smtp: connection refused")

func newTestBreaker(maxFailures int) (*Breaker, *time.Time) {
	b := NewBreaker(maxFailures, time.Minute)
	now := time.Now()
	b.now = func() time.Time { return now }
	return b, &now
}

func fail(b *Breaker) error { return b.Execute(func() error { return errSMTPDown }) }

func TestBreakerPassesWhileClosed(t *testing.T) {
	b, _ := newTestBreaker(3)

	sent := false
	if err := b.Execute(func() error { sent = true; return nil }); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !sent {
		t.Fatal("closed breaker did not invoke the call")
	}
	if b.Tripped() {
		t.Fatal("breaker tripped after a success")
	}
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3)

	for range 3 {
		if err := fail(b); !errors.Is(err, errSMTPDown) {
			t.Fatalf("expected the send error to pass through, got %v", err)
		}
	}
	if !b.Tripped() {
		t.Fatal("breaker still closed after reaching the failure threshold")
	}

	err := b.Execute(func() error {
		t.Fatal("open breaker invoked the call")
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
}

func TestBreakerTrialSuccessCloses(t *testing.T) {
	b, now := newTestBreaker(2)

	fail(b)
	fail(b)

	*now = now.Add(2 * time.Minute)

	sent := false
	if err := b.Execute(func() error { sent = true; return nil }); err != nil {
		t.Fatalf("trial call: %v", err)
	}
	if !sent {
		t.Fatal("trial call was not admitted after the cool-off")
	}
	if b.Tripped() {
		t.Fatal("breaker still tripped after a successful trial")
	}

	// Fully closed again: a single failure must not re-trip.
	fail(b)
	if b.Tripped() {
		t.Fatal("one failure after recovery tripped the breaker")
	}
}

func TestBreakerTrialFailureRetrips(t *testing.T) {
	b, now := newTestBreaker(2)

	fail(b)
	fail(b)

	*now = now.Add(2 * time.Minute)

	// The single trial fails; the breaker must trip again immediately.
	fail(b)
	if !b.Tripped() {
		t.Fatal("breaker closed after a failed trial")
	}
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen during the new cool-off", err)
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(3)

	fail(b)
	fail(b)
	_ = b.Execute(func() error { return nil })

	// The streak restarted: two more failures stay under the threshold.
	fail(b)
	fail(b)
	if b.Tripped() {
		t.Fatal("non-consecutive failures tripped the breaker")
	}
}
