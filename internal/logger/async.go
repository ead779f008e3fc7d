package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Closer flushes buffered log records on shutdown. The synchronous logger
// returns a no-op so main can defer Close unconditionally.
type Closer interface {
	Close()
}

type nopCloser struct{}

func (nopCloser) Close() {}

// asyncHandler decouples request handling from log output: records pass
// through a buffered channel drained by a single goroutine. When the buffer
// is full the record is dropped and counted instead of blocking a request —
// a contact-form burst should cost log lines, not latency.
type asyncHandler struct {
	inner   slog.Handler
	records chan slog.Record
	done    chan struct{}
	dropped *atomic.Int64
}

func newAsyncHandler(inner slog.Handler, buffer int) *asyncHandler {
	h := &asyncHandler{
		inner:   inner,
		records: make(chan slog.Record, buffer),
		done:    make(chan struct{}),
		dropped: &atomic.Int64{},
	}
	go h.drain()
	return h
}

func (h *asyncHandler) drain() {
	defer close(h.done)
	for rec := range h.records {
		_ = h.inner.Handle(context.Background(), rec)
	}
}

func (h *asyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *asyncHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	select {
	case h.records <- rec:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// WithAttrs clones share the channel and drop counter; only the handler
// returned by newAsyncHandler may be Closed.
func (h *asyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &asyncHandler{inner: h.inner.WithAttrs(attrs), records: h.records, done: h.done, dropped: h.dropped}
}

func (h *asyncHandler) WithGroup(name string) slog.Handler {
	return &asyncHandler{inner: h.inner.WithGroup(name), records: h.records, done: h.done, dropped: h.dropped}
}

// Close stops accepting records, waits for the buffer to drain, and writes
// a final synchronous record when anything was dropped under load.
func (h *asyncHandler) Close() {
	close(h.records)
	<-h.done
	if n := h.dropped.Load(); n > 0 {
		rec := slog.NewRecord(time.Now(), slog.LevelWarn, "log records dropped under load", 0)
		rec.AddAttrs(slog.Int64("count", n))
		_ = h.inner.Handle(context.Background(), rec)
	}
}
