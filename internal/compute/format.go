package compute

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders below-threshold values with thousands separators.
var printer = message.NewPrinter(language.English)

// NotAvailable is rendered wherever a value is absent.
const NotAvailable = "N/A"

// FormatMarketCap renders a market cap with magnitude suffixes:
// ≥1e12 → "T", ≥1e9 → "B", ≥1e6 → "M", otherwise grouped digits.
func FormatMarketCap(v *float64, symbol string) string {
	if v == nil {
		return NotAvailable
	}
	x := *v
	switch {
	case x >= 1e12:
		return fmt.Sprintf("%s%.2fT", symbol, x/1e12)
	case x >= 1e9:
		return fmt.Sprintf("%s%.2fB", symbol, x/1e9)
	case x >= 1e6:
		return fmt.Sprintf("%s%.2fM", symbol, x/1e6)
	default:
		return printer.Sprintf("%s%.0f", symbol, x)
	}
}

// FormatADTV renders an average daily traded value; unlike market cap it
// also carries a "K" tier since liquidity figures run smaller.
func FormatADTV(v *float64, symbol string) string {
	if v == nil {
		return NotAvailable
	}
	x := *v
	switch {
	case x >= 1e9:
		return fmt.Sprintf("%s%.2fB", symbol, x/1e9)
	case x >= 1e6:
		return fmt.Sprintf("%s%.2fM", symbol, x/1e6)
	case x >= 1e3:
		return fmt.Sprintf("%s%.2fK", symbol, x/1e3)
	default:
		return printer.Sprintf("%s%.0f", symbol, x)
	}
}

// FormatPercent renders a percentage with an explicit sign for non-negative
// values, e.g. "+5.23%" / "-2.10%".
func FormatPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	sign := ""
	if *v >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, *v)
}
