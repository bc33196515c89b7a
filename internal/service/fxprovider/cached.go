package fxprovider

import (
	"context"
	"fmt"
	"time"

	"FXBench/internal/domain/models"
	drepo "FXBench/internal/domain/repository"
	"FXBench/pkg/cache"
)

// Cached decorates a RateProvider with a TTL'd quote cache. The cache lives
// entirely on the provider side of the resolver boundary, so the resolution
// pipeline itself stays a pure function of its inputs. Source attribution is
// unchanged: a cache hit still reports the inner provider's name.
type Cached struct {
	inner drepo.RateProvider
	cache cache.Service
	ttl   time.Duration
}

func NewCached(inner drepo.RateProvider, c cache.Service, ttl time.Duration) drepo.RateProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

func (c *Cached) Name() string { return c.inner.Name() }

func (c *Cached) Quote(ctx context.Context, base, quote models.Currency) (float64, error) {
	key := fmt.Sprintf("fx:spot:%s:%s%s", c.inner.Name(), base, quote)

	var v float64
	if err := c.cache.Get(ctx, key, &v); err == nil && v > 0 {
		return v, nil
	}

	v, err := c.inner.Quote(ctx, base, quote)
	if err != nil {
		return 0, err
	}

	// Best-effort write; a cache failure never fails the quote.
	_ = c.cache.Set(ctx, key, v, c.ttl)
	return v, nil
}
