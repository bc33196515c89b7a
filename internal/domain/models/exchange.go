package models

import "time"

// ExchangeInput is one exchange's raw observation in its local currency.
// Values may be absent; absent is not zero. Records are immutable once
// admitted into the pipeline.
type ExchangeInput struct {
	Region          string     `json:"region" validate:"required"`
	Exchange        string     `json:"exchange" validate:"required"`
	IndexName       string     `json:"index_name" validate:"required"`
	LocalCurrency   Currency   `json:"local_currency" validate:"required"`
	YTDPercent      *float64   `json:"ytd_percent"`
	MarketCapLocal  *float64   `json:"market_cap_local" validate:"omitempty,gte=0"`
	ADTVLocal       *float64   `json:"adtv_local" validate:"omitempty,gte=0"`
	Source          string     `json:"source" default:"manual"`
	SourceURL       string     `json:"source_url,omitempty"`
	SourceTimestamp *time.Time `json:"source_timestamp,omitempty"`
}

// ExchangeOutput is the normalized, reporting-currency view of one input
// record. Outputs are 1:1 with inputs, in input order. The *_usd fields are
// denominated in the configured reporting currency (USD unless overridden);
// the wire names follow the historical export format.
type ExchangeOutput struct {
	Region            string     `json:"region"`
	Exchange          string     `json:"exchange"`
	IndexName         string     `json:"index_name"`
	LocalCurrency     Currency   `json:"local_currency"`
	YTDPercent        *float64   `json:"ytd_percent"`
	YTDPercentDisplay string     `json:"ytd_percent_display"`
	MarketCapLocal    *float64   `json:"market_cap_local"`
	MarketCapUSD      *float64   `json:"market_cap_usd"`
	MarketCapDisplay  string     `json:"market_cap_usd_display"`
	ADTVLocal         *float64   `json:"adtv_local"`
	ADTVUSD           *float64   `json:"adtv_usd"`
	ADTVDisplay       string     `json:"adtv_usd_display"`
	FXRateUsed        *float64   `json:"fx_rate_used"`
	Source            string     `json:"source"`
	SourceURL         string     `json:"source_url,omitempty"`
	SourceTimestamp   *time.Time `json:"source_timestamp,omitempty"`
}

// AuditRecord captures everything needed to reconstruct or dispute one
// output record: raw inputs, the rate applied and where it came from, the
// computed outputs, and the fields that could not be computed. Append-only.
type AuditRecord struct {
	Exchange           string    `json:"exchange"`
	InputLocalCurrency Currency  `json:"input_currency"`
	InputMarketCap     *float64  `json:"input_market_cap"`
	InputADTV          *float64  `json:"input_adtv"`
	InputYTDPercent    *float64  `json:"input_ytd_percent"`
	FXRate             *float64  `json:"fx_rate"`
	FXSource           string    `json:"fx_source"`
	OutputMarketCapUSD *float64  `json:"output_market_cap_usd"`
	OutputADTVUSD      *float64  `json:"output_adtv_usd"`
	ComputedAt         time.Time `json:"computed_at"`
	MissingFields      []string  `json:"missing_fields"`
}

// RankedEntry is one (exchange, value) pair in a ranking.
type RankedEntry struct {
	Exchange string  `json:"exchange"`
	Value    float64 `json:"value"`
}

// Rankings holds the deterministic orderings derived from outputs.
type Rankings struct {
	YTDBest          []RankedEntry `json:"ytd_best"`
	YTDWorst         []RankedEntry `json:"ytd_worst"`
	MarketCapLargest []RankedEntry `json:"market_cap_largest"`
	ADTVHighest      []RankedEntry `json:"adtv_highest"`
}

// ComparisonResult is the complete output bundle of one comparison run.
type ComparisonResult struct {
	DateRange        DateRange            `json:"date_range"`
	Exchanges        []ExchangeOutput     `json:"exchanges"`
	AuditTrail       []AuditRecord        `json:"audit_trail"`
	FXRates          map[Currency]FXRate  `json:"fx_rates"`
	FXStatus         string               `json:"fx_status"`
	FXMode           FXMode               `json:"fx_mode"`
	Reporting        Currency             `json:"reporting_currency"`
	Insights         []string             `json:"insights"`
	ExecutiveSummary string               `json:"executive_summary"`
	Rankings         Rankings             `json:"rankings"`
	FXSummary        string               `json:"fx_summary"`
	Warnings         []string             `json:"warnings,omitempty"`
	GeneratedAt      time.Time            `json:"generated_at"`
}
