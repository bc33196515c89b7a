package models

// Requests for the comparison HTTP endpoints. Defined in domain for consistency and reuse.

type CompareRequest struct {
	DateRange DateRangePayload `json:"date_range"`
	FX        FXPayload        `json:"fx"`
	Inputs    []ExchangeInput  `json:"inputs" validate:"required,min=1"`
}

// DateRangePayload carries the requested window. For the ytd and full_year
// presets only Year is consulted; custom requires explicit start/end dates
// in YYYY-MM-DD form.
type DateRangePayload struct {
	Preset string `json:"preset" default:"ytd" validate:"oneof=ytd full_year custom"`
	Year   int    `json:"year" validate:"omitempty,gte=1990,lte=2100"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

type FXPayload struct {
	Mode              string             `json:"mode" default:"live_spot" validate:"oneof=live_spot manual average"`
	ReportingCurrency string             `json:"reporting_currency" default:"USD"`
	ManualRates       map[string]float64 `json:"manual_rates,omitempty"`
	RateSeries        *RateSeriesPayload `json:"rate_series,omitempty"`
	Provider          string             `json:"provider,omitempty"`
}

// RateSeriesPayload is the wire form of a RateSeries: dates in YYYY-MM-DD,
// columns keyed by currency pair ("AEDUSD") with entries aligned to dates
// (null marks a missing observation).
type RateSeriesPayload struct {
	Dates   []string              `json:"dates" validate:"required,min=1"`
	Columns map[string][]*float64 `json:"columns" validate:"required,min=1"`
}

// FetchIndicesRequest asks the market-data provider to pre-fill input
// records for the named catalog entries.
type FetchIndicesRequest struct {
	Keys []string `json:"keys" validate:"required,min=1"`
	Year int      `json:"year" validate:"omitempty,gte=1990,lte=2100"`
}
