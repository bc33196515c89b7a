package models

import "sort"

// Currency is an ISO-4217 style currency code from the supported set.
type Currency string

const (
	USD Currency = "USD"
	AED Currency = "AED"
	SAR Currency = "SAR"
	KWD Currency = "KWD"
	QAR Currency = "QAR"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	HKD Currency = "HKD"
)

var supportedCurrencies = map[Currency]struct{}{
	USD: {}, AED: {}, SAR: {}, KWD: {}, QAR: {},
	GBP: {}, EUR: {}, JPY: {}, HKD: {},
}

// Display symbols used by the formatters.
var currencySymbols = map[Currency]string{
	USD: "$",
	AED: "AED ",
	SAR: "SAR ",
	KWD: "KWD ",
	QAR: "QAR ",
	GBP: "£",
	EUR: "€",
	JPY: "¥",
	HKD: "HK$",
}

// Supported reports whether c belongs to the supported currency set.
func (c Currency) Supported() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// Symbol returns the display symbol for c, falling back to "<code> ".
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c) + " "
}

func (c Currency) String() string { return string(c) }

// SupportedCurrencies returns the supported set in stable alphabetical order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, 0, len(supportedCurrencies))
	for c := range supportedCurrencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
