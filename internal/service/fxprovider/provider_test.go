package fxprovider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"FXBench/internal/domain/models"
	"FXBench/pkg/cache"
)

func TestExchangeRateHostQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/convert" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("from") != "AED" || r.URL.Query().Get("to") != "USD" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"result":0.2723}`))
	}))
	defer srv.Close()

	p := NewExchangeRateHost(srv.URL, time.Second)
	v, err := p.Quote(context.Background(), models.AED, models.USD)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if v != 0.2723 {
		t.Fatalf("got %v, want 0.2723", v)
	}
}

func TestExchangeRateHostNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	p := NewExchangeRateHost(srv.URL, time.Second)
	if _, err := p.Quote(context.Background(), models.AED, models.USD); err == nil {
		t.Fatalf("expected error on unsuccessful response")
	}
}

func TestExchangeRateHostServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewExchangeRateHost(srv.URL, time.Second)
	if _, err := p.Quote(context.Background(), models.AED, models.USD); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestFrankfurterQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"GBP","rates":{"USD":1.27}}`))
	}))
	defer srv.Close()

	p := NewFrankfurter(srv.URL, time.Second)
	v, err := p.Quote(context.Background(), models.GBP, models.USD)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if v != 1.27 {
		t.Fatalf("got %v, want 1.27", v)
	}
}

func TestFrankfurterMissingQuoteCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"GBP","rates":{}}`))
	}))
	defer srv.Close()

	p := NewFrankfurter(srv.URL, time.Second)
	if _, err := p.Quote(context.Background(), models.GBP, models.USD); err == nil {
		t.Fatalf("expected error when quote currency is absent")
	}
}

type countingProvider struct {
	calls int64
	rate  float64
	err   error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Quote(context.Context, models.Currency, models.Currency) (float64, error) {
	atomic.AddInt64(&p.calls, 1)
	if p.err != nil {
		return 0, p.err
	}
	return p.rate, nil
}

func TestCachedQuoteHitsCacheOnSecondCall(t *testing.T) {
	inner := &countingProvider{rate: 0.2723}
	c := cache.NewMemoryCache()
	defer c.Close()

	p := NewCached(inner, c, time.Minute)
	if p.Name() != "counting" {
		t.Fatalf("cache must not rename the provider: %q", p.Name())
	}

	for i := 0; i < 3; i++ {
		v, err := p.Quote(context.Background(), models.AED, models.USD)
		if err != nil {
			t.Fatalf("Quote %d: %v", i, err)
		}
		if v != 0.2723 {
			t.Fatalf("Quote %d: got %v", i, v)
		}
	}
	if got := atomic.LoadInt64(&inner.calls); got != 1 {
		t.Fatalf("inner provider called %d times, want 1", got)
	}
}

func TestCachedQuotePropagatesError(t *testing.T) {
	inner := &countingProvider{err: errors.New("down")}
	c := cache.NewMemoryCache()
	defer c.Close()

	p := NewCached(inner, c, time.Minute)
	if _, err := p.Quote(context.Background(), models.AED, models.USD); err == nil {
		t.Fatalf("expected inner error to surface")
	}
	// Failures must not be cached.
	inner.err = nil
	inner.rate = 0.2723
	v, err := p.Quote(context.Background(), models.AED, models.USD)
	if err != nil || v != 0.2723 {
		t.Fatalf("retry after failure: %v/%v", v, err)
	}
}
