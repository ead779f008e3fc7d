package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"
)

// maxTrackedIPs caps the visitor map. A personal site's contact form sees
// modest traffic; past this point new senders are refused outright rather
// than letting a spoofed-source flood grow the map without bound.
const maxTrackedIPs = 10_000

// RateLimiter applies a per-IP token bucket to the public contact endpoint.
// Senders are identified by RemoteAddr only: X-Forwarded-For and X-Real-Ip
// are attacker-controlled, and honoring them would let one sender rotate
// through unlimited buckets.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64 // tokens refilled per second
	burst    int     // bucket capacity
}

type visitor struct {
	tokens   float64
	refilled time.Time // last refill
	lastSeen time.Time // for idle cleanup
}

// NewRateLimiter creates a limiter with the given sustained rate (requests
// per second) and burst size.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
	}
}

// Handler returns middleware enforcing the per-IP limit. Rejected requests
// get a 429 with a Retry-After hint.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.allow(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow takes one token from ip's bucket. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) allow(ip string) (ok bool, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, tracked := rl.visitors[ip]
	if !tracked {
		if len(rl.visitors) >= maxTrackedIPs {
			return false, time.Duration(float64(time.Second) / rl.rate)
		}
		rl.visitors[ip] = &visitor{tokens: float64(rl.burst) - 1, refilled: now, lastSeen: now}
		return true, 0
	}

	v.tokens = min(v.tokens+now.Sub(v.refilled).Seconds()*rl.rate, float64(rl.burst))
	v.refilled = now
	v.lastSeen = now

	if v.tokens < 1 {
		return false, time.Duration((1 - v.tokens) / rl.rate * float64(time.Second))
	}
	v.tokens--
	return true, 0
}

// StartCleanup spawns a goroutine that drops buckets idle longer than
// maxIdle, checking every interval. The returned func stops it.
func (rl *RateLimiter) StartCleanup(interval, maxIdle time.Duration) func() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup(maxIdle)
			}
		}
	}()
	return cancel
}

func (rl *RateLimiter) cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// Len returns the number of tracked sender buckets.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// clientIP is the connection's remote host. Proxy headers are deliberately
// ignored; see the RateLimiter doc.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
