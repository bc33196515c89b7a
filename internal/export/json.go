package export

import (
	"time"

	"FXBench/internal/domain/models"
)

// Document is the structured export: metadata (including the resolved rate
// table, which is resolution provenance), the normalized records, and the
// audit trail.
type Document struct {
	Metadata   Metadata               `json:"metadata"`
	Exchanges  []models.ExchangeOutput `json:"exchanges"`
	AuditTrail []models.AuditRecord    `json:"audit_trail"`
}

type Metadata struct {
	GeneratedAt       time.Time               `json:"generated_at"`
	DateRange         DateRangeMeta           `json:"date_range"`
	FXMode            models.FXMode           `json:"fx_mode"`
	ReportingCurrency models.Currency         `json:"reporting_currency"`
	FXRates           map[string]FXRateMeta   `json:"fx_rates"`
}

type DateRangeMeta struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Preset string `json:"preset"`
	Year   int    `json:"year"`
}

type FXRateMeta struct {
	Rate      float64   `json:"rate"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildDocument assembles the export document from a comparison result.
func BuildDocument(res *models.ComparisonResult) Document {
	rates := make(map[string]FXRateMeta, len(res.FXRates))
	for c, r := range res.FXRates {
		rates[string(c)] = FXRateMeta{Rate: r.Rate, Source: r.Source, Timestamp: r.Timestamp}
	}

	return Document{
		Metadata: Metadata{
			GeneratedAt: res.GeneratedAt,
			DateRange: DateRangeMeta{
				Start:  res.DateRange.Start.Format("2006-01-02"),
				End:    res.DateRange.End.Format("2006-01-02"),
				Preset: string(res.DateRange.Preset),
				Year:   res.DateRange.Year,
			},
			FXMode:            res.FXMode,
			ReportingCurrency: res.Reporting,
			FXRates:           rates,
		},
		Exchanges:  res.Exchanges,
		AuditTrail: res.AuditTrail,
	}
}
