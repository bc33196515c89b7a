package models

import (
	"fmt"
	"time"
)

// FXMode selects how rates are resolved for a comparison request.
type FXMode string

const (
	ModeLiveSpot FXMode = "live_spot"
	ModeManual   FXMode = "manual"
	ModeAverage  FXMode = "average"
)

// Well-known rate source tags. Live providers report their own identifiers.
const (
	SourceIdentity = "identity"
	SourceManual   = "manual_entry"
	SourcePegged   = "static_pegged_rate"
)

// FXRate is one resolved base→quote rate. Immutable once resolved; the
// resolver never re-fetches mid-request.
type FXRate struct {
	Base      Currency  `json:"base_currency"`
	Quote     Currency  `json:"quote_currency"`
	Rate      float64   `json:"rate"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// IdentityRate builds the rate applied when base and quote coincide.
func IdentityRate(c Currency, ts time.Time) FXRate {
	return FXRate{Base: c, Quote: c, Rate: 1.0, Source: SourceIdentity, Timestamp: ts}
}

// RateSeries is a date-indexed table of rate observations, one column per
// currency pair (column name is base+quote, e.g. "AEDUSD"). Column slices are
// aligned with Dates; a nil entry is a missing observation for that day.
type RateSeries struct {
	Dates   []time.Time           `json:"dates"`
	Columns map[string][]*float64 `json:"columns"`
}

// PairColumn returns the series column name for a base/quote pair.
func PairColumn(base, quote Currency) string {
	return string(base) + string(quote)
}

// FXConfiguration describes the rate-resolution mode for one request.
// Exactly one mode is active; the mode-specific fields of the others are
// ignored.
type FXConfiguration struct {
	Mode              FXMode
	ReportingCurrency Currency
	// ManualRates maps currency→rate for ModeManual.
	ManualRates map[Currency]float64
	// Series is the pre-supplied rate time-series for ModeAverage.
	Series *RateSeries
	// Provider is the preferred live provider identifier for ModeLiveSpot.
	Provider string
}

// DateRangePreset tags how a date range was chosen.
type DateRangePreset string

const (
	PresetYTD      DateRangePreset = "ytd"
	PresetFullYear DateRangePreset = "full_year"
	PresetCustom   DateRangePreset = "custom"
)

// DateRange bounds the averaging window for ModeAverage.
type DateRange struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Preset DateRangePreset `json:"preset"`
	Year   int             `json:"year"`
}

// NewDateRange validates the start ≤ end invariant at construction.
func NewDateRange(start, end time.Time, preset DateRangePreset, year int) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if year == 0 {
		year = start.Year()
	}
	return DateRange{Start: start, End: end, Preset: preset, Year: year}, nil
}

// String renders the range as "2025-01-01 to 2025-06-30".
func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}
