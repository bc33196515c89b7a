package repository

import (
	"context"

	"FXBench/internal/domain/models"
)

// RateProvider quotes one spot rate for a base/quote pair. Implementations
// are external lookups (or decorators around them); a failed or timed-out
// call returns an error and the resolver moves on to the next provider.
type RateProvider interface {
	Name() string
	Quote(ctx context.Context, base, quote models.Currency) (float64, error)
}

// MarketDataProvider fetches a year-to-date observation for a single index
// symbol. Provider-specific adapters implement this one narrow capability so
// the pipeline stays provider-agnostic.
type MarketDataProvider interface {
	Name() string
	FetchYTD(ctx context.Context, symbol string, year int) (*models.IndexYTD, error)
}

// AuditSink receives the audit trail of a completed comparison. Delivery is
// best-effort and append-only; a sink failure never fails the comparison.
type AuditSink interface {
	Name() string
	Store(ctx context.Context, records []models.AuditRecord) error
	Close() error
}

// Metrics records operational counters for the pipeline.
type Metrics interface {
	RecordRateResolved(source string, currency string)
	RecordProviderError(provider string)
	RecordComparison(mode string)
	RecordAuditDelivered(sink string, count int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
