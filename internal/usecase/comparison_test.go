package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"FXBench/internal/domain/models"
	domrepo "FXBench/internal/domain/repository"
	"FXBench/internal/fx"
)

func fp(v float64) *float64 { return &v }

type captureSink struct {
	mu      sync.Mutex
	batches [][]models.AuditRecord
	stored  chan struct{}
}

func newCaptureSink() *captureSink {
	return &captureSink{stored: make(chan struct{}, 8)}
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Close() error { return nil }

func (s *captureSink) Store(_ context.Context, records []models.AuditRecord) error {
	s.mu.Lock()
	s.batches = append(s.batches, records)
	s.mu.Unlock()
	s.stored <- struct{}{}
	return nil
}

func (s *captureSink) waitStored(t *testing.T) []models.AuditRecord {
	t.Helper()
	select {
	case <-s.stored:
	case <-time.After(2 * time.Second):
		t.Fatalf("audit sink never received the trail")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches[len(s.batches)-1]
}

func newManualService(sinks ...domrepo.AuditSink) *ComparisonService {
	resolver := fx.NewResolver(nil, nil, time.Second, nil, nil)
	return NewComparisonService(resolver, sinks, nil, nil)
}

func dfmInput() models.ExchangeInput {
	return models.ExchangeInput{
		Region:         "UAE",
		Exchange:       "DFM",
		IndexName:      "DFM General Index",
		LocalCurrency:  models.AED,
		YTDPercent:     fp(12.5),
		MarketCapLocal: fp(244e9),
		ADTVLocal:      fp(400e6),
	}
}

func TestCompareManualEndToEnd(t *testing.T) {
	sink := newCaptureSink()
	svc := newManualService(sink)

	req := &models.CompareRequest{
		DateRange: models.DateRangePayload{Preset: "full_year", Year: 2025},
		FX: models.FXPayload{
			Mode:        "manual",
			ManualRates: map[string]float64{"AED": 0.2723},
		},
		Inputs: []models.ExchangeInput{dfmInput()},
	}

	res, err := svc.Compare(context.Background(), req)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if res.FXStatus != "Manual rates applied" {
		t.Fatalf("unexpected fx status: %q", res.FXStatus)
	}
	if res.FXMode != models.ModeManual || res.Reporting != models.USD {
		t.Fatalf("unexpected fx config echo: %s/%s", res.FXMode, res.Reporting)
	}
	if len(res.Exchanges) != 1 {
		t.Fatalf("expected 1 output, got %d", len(res.Exchanges))
	}
	out := res.Exchanges[0]
	if out.MarketCapDisplay != "$66.44B" || out.YTDPercentDisplay != "+12.50%" {
		t.Fatalf("unexpected displays: %q / %q", out.MarketCapDisplay, out.YTDPercentDisplay)
	}
	if out.Source != "manual" {
		t.Fatalf("record defaults not applied: %q", out.Source)
	}
	if len(res.Insights) == 0 || res.ExecutiveSummary == "" {
		t.Fatalf("summary sections must be populated")
	}
	if !strings.Contains(res.FXSummary, "1 AED = 0.272300 USD") {
		t.Fatalf("unexpected fx summary: %q", res.FXSummary)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	trail := sink.waitStored(t)
	if len(trail) != 1 || trail[0].Exchange != "DFM" || trail[0].FXSource != "manual_entry" {
		t.Fatalf("unexpected audit trail: %+v", trail)
	}
}

func TestCompareDropsMalformedRecordsNotBatch(t *testing.T) {
	svc := newManualService()

	noName := dfmInput()
	noName.Exchange = ""
	badCurrency := dfmInput()
	badCurrency.Exchange = "Mystery"
	badCurrency.LocalCurrency = models.Currency("XXX")

	req := &models.CompareRequest{
		FX: models.FXPayload{
			Mode:        "manual",
			ManualRates: map[string]float64{"AED": 0.2723},
		},
		Inputs: []models.ExchangeInput{noName, dfmInput(), badCurrency},
	}

	res, err := svc.Compare(context.Background(), req)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(res.Exchanges) != 1 || res.Exchanges[0].Exchange != "DFM" {
		t.Fatalf("expected only the valid record to survive: %+v", res.Exchanges)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "record 0") || !strings.Contains(res.Warnings[1], "unsupported currency XXX") {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestCompareNothingAdmitted(t *testing.T) {
	sink := newCaptureSink()
	svc := newManualService(sink)

	bad := dfmInput()
	bad.Region = ""

	res, err := svc.Compare(context.Background(), &models.CompareRequest{
		FX:     models.FXPayload{Mode: "manual"},
		Inputs: []models.ExchangeInput{bad},
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.FXStatus != "No input records admitted" {
		t.Fatalf("unexpected status: %q", res.FXStatus)
	}
	if len(res.Exchanges) != 0 || len(res.AuditTrail) != 0 {
		t.Fatalf("expected empty result sections: %+v", res)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", res.Warnings)
	}

	select {
	case <-sink.stored:
		t.Fatalf("no audit dispatch expected for an empty trail")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCompareRejectsUnknownFXMode(t *testing.T) {
	svc := newManualService()
	_, err := svc.Compare(context.Background(), &models.CompareRequest{
		FX:     models.FXPayload{Mode: "spot_of_the_day"},
		Inputs: []models.ExchangeInput{dfmInput()},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown fx mode") {
		t.Fatalf("expected fx mode error, got %v", err)
	}
}

func TestCompareRejectsUnknownPreset(t *testing.T) {
	svc := newManualService()
	_, err := svc.Compare(context.Background(), &models.CompareRequest{
		DateRange: models.DateRangePayload{Preset: "quarter"},
		Inputs:    []models.ExchangeInput{dfmInput()},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Fatalf("expected preset error, got %v", err)
	}
}

func TestBuildDateRangePresets(t *testing.T) {
	full, err := buildDateRange(models.DateRangePayload{Preset: "full_year", Year: 2024})
	if err != nil {
		t.Fatalf("full_year: %v", err)
	}
	if full.Start.Month() != time.January || full.Start.Day() != 1 ||
		full.End.Month() != time.December || full.End.Day() != 31 || full.Year != 2024 {
		t.Fatalf("unexpected full_year range: %+v", full)
	}

	custom, err := buildDateRange(models.DateRangePayload{
		Preset: "custom", Start: "2025-03-01", End: "2025-06-30", Year: 2025,
	})
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if custom.Start.Day() != 1 || custom.End.Day() != 30 {
		t.Fatalf("unexpected custom range: %+v", custom)
	}

	if _, err := buildDateRange(models.DateRangePayload{Preset: "custom", Start: "01/03/2025", End: "2025-06-30"}); err == nil {
		t.Fatalf("malformed custom start must fail")
	}

	pastYTD, err := buildDateRange(models.DateRangePayload{Preset: "ytd", Year: 2023})
	if err != nil {
		t.Fatalf("past ytd: %v", err)
	}
	if pastYTD.End.Year() != 2023 || pastYTD.End.Month() != time.December || pastYTD.End.Day() != 31 {
		t.Fatalf("past-year ytd must clamp to Dec 31: %+v", pastYTD)
	}
}

func TestBuildFXConfigDefaults(t *testing.T) {
	cfg, err := buildFXConfig(models.FXPayload{})
	if err != nil {
		t.Fatalf("buildFXConfig: %v", err)
	}
	if cfg.Mode != models.ModeLiveSpot || cfg.ReportingCurrency != models.USD {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if _, err := buildFXConfig(models.FXPayload{ReportingCurrency: "ZZZ"}); err == nil {
		t.Fatalf("unsupported reporting currency must fail")
	}
}

func TestBuildRateSeriesColumnLengthMismatch(t *testing.T) {
	_, err := buildFXConfig(models.FXPayload{
		Mode: "average",
		RateSeries: &models.RateSeriesPayload{
			Dates:   []string{"2025-01-01", "2025-01-02"},
			Columns: map[string][]*float64{"AEDUSD": {fp(0.27)}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "has 1 entries for 2 dates") {
		t.Fatalf("expected column length error, got %v", err)
	}
}
