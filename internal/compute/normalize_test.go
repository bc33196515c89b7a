package compute

import (
	"testing"
	"time"

	"FXBench/internal/domain/models"
)

func aedRate(rate float64) map[models.Currency]models.FXRate {
	return map[models.Currency]models.FXRate{
		models.AED: {
			Base: models.AED, Quote: models.USD, Rate: rate,
			Source: "manual_entry", Timestamp: time.Now().UTC(),
		},
	}
}

func TestNormalizeConvertsToReportingCurrency(t *testing.T) {
	inputs := []models.ExchangeInput{{
		Region:         "UAE",
		Exchange:       "DFM",
		IndexName:      "DFM General Index",
		LocalCurrency:  models.AED,
		YTDPercent:     fp(12.5),
		MarketCapLocal: fp(244e9),
		ADTVLocal:      fp(400e6),
		Source:         "manual",
	}}

	outputs, audits := Normalize(inputs, aedRate(0.2723), models.USD)
	if len(outputs) != 1 || len(audits) != 1 {
		t.Fatalf("expected 1 output and 1 audit, got %d/%d", len(outputs), len(audits))
	}

	out := outputs[0]
	if out.MarketCapUSD == nil || *out.MarketCapUSD != 244e9*0.2723 {
		t.Fatalf("unexpected market cap: %v", out.MarketCapUSD)
	}
	if out.MarketCapDisplay != "$66.44B" {
		t.Fatalf("unexpected display: %q", out.MarketCapDisplay)
	}
	if out.ADTVDisplay != "$108.92M" {
		t.Fatalf("unexpected adtv display: %q", out.ADTVDisplay)
	}
	if out.YTDPercentDisplay != "+12.50%" {
		t.Fatalf("unexpected ytd display: %q", out.YTDPercentDisplay)
	}
	if out.FXRateUsed == nil || *out.FXRateUsed != 0.2723 {
		t.Fatalf("unexpected rate used: %v", out.FXRateUsed)
	}

	a := audits[0]
	if a.FXSource != "manual_entry" {
		t.Fatalf("unexpected audit source: %q", a.FXSource)
	}
	if len(a.MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", a.MissingFields)
	}
}

func TestNormalizeAbsencePropagates(t *testing.T) {
	inputs := []models.ExchangeInput{{
		Region:        "UAE",
		Exchange:      "ADX",
		IndexName:     "ADX General Index",
		LocalCurrency: models.AED,
		// everything optional absent
	}}

	outputs, audits := Normalize(inputs, aedRate(0.2723), models.USD)
	out := outputs[0]

	if out.MarketCapUSD != nil || out.ADTVUSD != nil || out.YTDPercent != nil {
		t.Fatalf("absent inputs must stay absent: %+v", out)
	}
	if out.MarketCapDisplay != "N/A" || out.ADTVDisplay != "N/A" || out.YTDPercentDisplay != "N/A" {
		t.Fatalf("absent values must render N/A: %+v", out)
	}

	want := []string{"ytd_percent", "market_cap", "adtv"}
	got := audits[0].MissingFields
	if len(got) != len(want) {
		t.Fatalf("missing fields: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("missing field order: got %v, want %v", got, want)
		}
	}
}

func TestNormalizeUnresolvedRate(t *testing.T) {
	inputs := []models.ExchangeInput{{
		Region:         "Kuwait",
		Exchange:       "Boursa Kuwait",
		IndexName:      "Premier Market Index",
		LocalCurrency:  models.KWD,
		YTDPercent:     fp(3.0),
		MarketCapLocal: fp(40e9),
		ADTVLocal:      fp(60e6),
	}}

	outputs, audits := Normalize(inputs, map[models.Currency]models.FXRate{}, models.USD)
	out := outputs[0]

	if out.MarketCapUSD != nil || out.ADTVUSD != nil {
		t.Fatalf("converted values must be absent without a rate")
	}
	if out.YTDPercent == nil || *out.YTDPercent != 3.0 {
		t.Fatalf("ytd is currency-agnostic and must survive: %v", out.YTDPercent)
	}
	if audits[0].FXSource != "N/A" {
		t.Fatalf("unexpected source: %q", audits[0].FXSource)
	}

	found := false
	for _, m := range audits[0].MissingFields {
		if m == "fx_rate_KWD" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fx_rate_KWD in missing fields, got %v", audits[0].MissingFields)
	}
}

func TestNormalizeReportingCurrencyPassthrough(t *testing.T) {
	identity := map[models.Currency]models.FXRate{
		models.USD: models.IdentityRate(models.USD, time.Now().UTC()),
	}
	inputs := []models.ExchangeInput{{
		Region:         "USA",
		Exchange:       "NYSE",
		IndexName:      "NYSE Composite",
		LocalCurrency:  models.USD,
		MarketCapLocal: fp(28e12),
	}}

	outputs, audits := Normalize(inputs, identity, models.USD)
	out := outputs[0]
	if out.MarketCapUSD == nil || *out.MarketCapUSD != 28e12 {
		t.Fatalf("identity conversion changed the value: %v", out.MarketCapUSD)
	}
	if out.MarketCapDisplay != "$28.00T" {
		t.Fatalf("unexpected display: %q", out.MarketCapDisplay)
	}
	if audits[0].FXSource != "identity" {
		t.Fatalf("unexpected source: %q", audits[0].FXSource)
	}
}

func TestConvertNilRate(t *testing.T) {
	if Convert(fp(100), nil) != nil {
		t.Fatalf("nil rate must yield nil")
	}
	if Convert(nil, &models.FXRate{Rate: 2}) != nil {
		t.Fatalf("nil value must yield nil")
	}
}
