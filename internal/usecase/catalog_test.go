package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FXBench/internal/domain/models"
)

type fakeMarketData struct {
	ytd    map[string]float64
	errors map[string]error
}

func (f *fakeMarketData) Name() string { return "fake-market-data" }

func (f *fakeMarketData) FetchYTD(_ context.Context, symbol string, _ int) (*models.IndexYTD, error) {
	if err, ok := f.errors[symbol]; ok {
		return nil, err
	}
	v, ok := f.ytd[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return &models.IndexYTD{Symbol: symbol, YTDPercent: &v, AsOf: time.Now().UTC()}, nil
}

func TestCatalogListDefaults(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil, nil)
	list := svc.List()
	if len(list) == 0 {
		t.Fatalf("default catalog must not be empty")
	}

	found := false
	for _, c := range list {
		if c.Key == "DFM" && c.Exchange == "DFM" && c.LocalCurrency == models.AED {
			found = true
		}
	}
	if !found {
		t.Fatalf("default catalog must include DFM: %+v", list)
	}

	// List hands out a copy, not the backing slice.
	list[0].Key = "mutated"
	if svc.List()[0].Key == "mutated" {
		t.Fatalf("List must not expose internal state")
	}
}

func TestCatalogFetch(t *testing.T) {
	catalog := []models.IndexConfig{
		{Key: "DFM", Symbol: "^DFMGI", Name: "DFM General Index", Region: "UAE", Exchange: "DFM", LocalCurrency: models.AED},
		{Key: "TASI", Symbol: "^TASI", Name: "TASI", Region: "Saudi Arabia", Exchange: "Tadawul", LocalCurrency: models.SAR},
	}
	provider := &fakeMarketData{
		ytd:    map[string]float64{"^DFMGI": 12.5},
		errors: map[string]error{"^TASI": errors.New("upstream timeout")},
	}
	svc := NewCatalogService(provider, catalog, nil, nil)

	res, err := svc.Fetch(context.Background(), []string{"DFM", "TASI", "BOGUS"}, 2025)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(res.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %+v", res.Inputs)
	}
	in := res.Inputs[0]
	if in.Exchange != "DFM" || in.LocalCurrency != models.AED {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.YTDPercent == nil || *in.YTDPercent != 12.5 {
		t.Fatalf("unexpected ytd: %v", in.YTDPercent)
	}
	if in.MarketCapLocal != nil || in.ADTVLocal != nil {
		t.Fatalf("price-only provider must leave cap and adtv absent: %+v", in)
	}
	if in.Source != "fake-market-data" || in.SourceTimestamp == nil {
		t.Fatalf("provenance missing: %+v", in)
	}

	if len(res.Failed) != 2 {
		t.Fatalf("expected 2 failures, got %+v", res.Failed)
	}
	if res.Failed[0].Key != "TASI" || res.Failed[0].Error != "upstream timeout" {
		t.Fatalf("unexpected failure: %+v", res.Failed[0])
	}
	if res.Failed[1].Key != "BOGUS" || res.Failed[1].Error != "unknown index" {
		t.Fatalf("unexpected failure: %+v", res.Failed[1])
	}
}

func TestCatalogFetchAllWhenNoKeys(t *testing.T) {
	catalog := []models.IndexConfig{
		{Key: "A", Symbol: "^A", Name: "A", Region: "R", Exchange: "A", LocalCurrency: models.USD},
		{Key: "B", Symbol: "^B", Name: "B", Region: "R", Exchange: "B", LocalCurrency: models.USD},
	}
	provider := &fakeMarketData{ytd: map[string]float64{"^A": 1, "^B": 2}}
	svc := NewCatalogService(provider, catalog, nil, nil)

	res, err := svc.Fetch(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Inputs) != 2 || len(res.Failed) != 0 {
		t.Fatalf("empty key list must fetch the whole catalog: %+v", res)
	}
}

func TestCatalogFetchWithoutProvider(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil, nil)
	if _, err := svc.Fetch(context.Background(), []string{"DFM"}, 2025); err == nil {
		t.Fatalf("expected error without a provider")
	}
}
