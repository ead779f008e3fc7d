// Package resilience guards outbound notification sends so a dead SMTP
// server cannot back up contact-form handling with doomed delivery attempts.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is rejecting calls.
var ErrCircuitOpen = errors.New("circuit open")

// Breaker is a circuit breaker over a single flaky dependency. It trips
// after maxFailures consecutive failures, rejects calls for the cool-off
// duration, then admits one trial: success closes the circuit, failure
// trips it again for another cool-off.
//
// State is held implicitly: a zero trippedAt means closed; a set trippedAt
// within the cool-off means open; past the cool-off the next admitted call
// is the half-open trial.
type Breaker struct {
	mu          sync.Mutex
	failures    int
	maxFailures int
	cooloff     time.Duration
	trippedAt   time.Time
	trialing    bool
	now         func() time.Time // for testing
}

// NewBreaker creates a breaker that trips after maxFailures consecutive
// failures and cools off for the given duration.
func NewBreaker(maxFailures int, cooloff time.Duration) *Breaker {
	return &Breaker{
		maxFailures: maxFailures,
		cooloff:     cooloff,
		now:         time.Now,
	}
}

// Execute runs fn unless the circuit is open, in which case it returns
// ErrCircuitOpen without invoking fn. fn's own error is passed through.
func (b *Breaker) Execute(fn func() error) error {
	if !b.admit() {
		return ErrCircuitOpen
	}
	err := fn()
	b.record(err == nil)
	return err
}

// Tripped reports whether the breaker is currently rejecting calls.
func (b *Breaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.trippedAt.IsZero() && b.now().Sub(b.trippedAt) < b.cooloff
}

// admit decides whether a call may proceed, marking an elapsed open
// circuit as trialing.
func (b *Breaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.trippedAt.IsZero() {
		return true
	}
	if b.now().Sub(b.trippedAt) < b.cooloff {
		return false
	}
	b.trialing = true
	return true
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok {
		b.failures = 0
		b.trippedAt = time.Time{}
		b.trialing = false
		return
	}

	b.failures++
	if b.trialing || b.failures >= b.maxFailures {
		b.trippedAt = b.now()
		b.trialing = false
	}
}
