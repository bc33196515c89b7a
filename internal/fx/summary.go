package fx

import (
	"fmt"
	"sort"
	"strings"

	"FXBench/internal/domain/models"
)

// FormatRatesSummary renders the non-identity resolved rates as one line per
// currency, e.g. "1 AED = 0.272300 USD (Source: manual_entry)".
func FormatRatesSummary(rates map[models.Currency]models.FXRate, reporting models.Currency) string {
	keys := make([]models.Currency, 0, len(rates))
	for c := range rates {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var lines []string
	for _, c := range keys {
		r := rates[c]
		if r.Rate == 1.0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("1 %s = %.6f %s (Source: %s)", c, r.Rate, reporting, r.Source))
	}
	if len(lines) == 0 {
		return fmt.Sprintf("All values already in %s", reporting)
	}
	return strings.Join(lines, "\n")
}
