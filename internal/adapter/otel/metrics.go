package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "folio"

// Metrics holds the API's metric instruments.
type Metrics struct {
	CacheHits        metric.Int64Counter
	CacheMisses      metric.Int64Counter
	CacheEvictions   metric.Int64Counter
	MessagesReceived metric.Int64Counter
}

// NewMetrics creates all metric instruments. With no meter provider
// installed these are no-ops, so callers record unconditionally.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CacheHits, err = meter.Int64Counter("folio.cache.hits",
		metric.WithDescription("Cache lookups served from the store"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("folio.cache.misses",
		metric.WithDescription("Cache lookups that fell through to compute"))
	if err != nil {
		return nil, err
	}

	m.CacheEvictions, err = meter.Int64Counter("folio.cache.evictions",
		metric.WithDescription("Entries evicted to make room at capacity"))
	if err != nil {
		return nil, err
	}

	m.MessagesReceived, err = meter.Int64Counter("folio.messages.received",
		metric.WithDescription("Contact-form messages accepted"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
