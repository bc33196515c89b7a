package export

import (
	"testing"
	"time"

	"FXBench/internal/domain/models"
)

func TestBuildDocument(t *testing.T) {
	dr, err := models.NewDateRange(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		models.PresetYTD, 2025)
	if err != nil {
		t.Fatalf("date range: %v", err)
	}

	ts := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	res := &models.ComparisonResult{
		DateRange: dr,
		Exchanges: []models.ExchangeOutput{{Exchange: "DFM"}},
		AuditTrail: []models.AuditRecord{{
			Exchange:      "DFM",
			FXSource:      "manual_entry",
			ComputedAt:    ts,
			MissingFields: []string{"adtv"},
		}},
		FXRates: map[models.Currency]models.FXRate{
			models.AED: {Base: models.AED, Quote: models.USD, Rate: 0.2723, Source: "manual_entry", Timestamp: ts},
		},
		FXMode:      models.ModeManual,
		Reporting:   models.USD,
		GeneratedAt: ts,
	}

	doc := BuildDocument(res)

	if doc.Metadata.DateRange.Start != "2025-01-01" || doc.Metadata.DateRange.End != "2025-08-31" {
		t.Fatalf("unexpected date range meta: %+v", doc.Metadata.DateRange)
	}
	if doc.Metadata.DateRange.Preset != string(models.PresetYTD) || doc.Metadata.DateRange.Year != 2025 {
		t.Fatalf("unexpected preset meta: %+v", doc.Metadata.DateRange)
	}
	if doc.Metadata.FXMode != models.ModeManual || doc.Metadata.ReportingCurrency != models.USD {
		t.Fatalf("unexpected fx meta: %+v", doc.Metadata)
	}

	meta, ok := doc.Metadata.FXRates["AED"]
	if !ok {
		t.Fatalf("rate table must be keyed by currency code: %+v", doc.Metadata.FXRates)
	}
	if meta.Rate != 0.2723 || meta.Source != "manual_entry" || !meta.Timestamp.Equal(ts) {
		t.Fatalf("unexpected rate meta: %+v", meta)
	}

	if len(doc.Exchanges) != 1 || doc.Exchanges[0].Exchange != "DFM" {
		t.Fatalf("unexpected exchanges: %+v", doc.Exchanges)
	}
	if len(doc.AuditTrail) != 1 || doc.AuditTrail[0].MissingFields[0] != "adtv" {
		t.Fatalf("unexpected audit trail: %+v", doc.AuditTrail)
	}
}
