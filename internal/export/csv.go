package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"FXBench/internal/domain/models"
)

var csvHeader = []string{
	"region", "exchange", "index_name", "local_currency",
	"ytd_percent", "ytd_percent_display",
	"market_cap_local", "market_cap_usd", "market_cap_usd_display",
	"adtv_local", "adtv_usd", "adtv_usd_display",
	"fx_rate_used", "source",
}

// WriteCSV writes the flat tabular export: one row per exchange with both
// numeric and display columns. Absent numerics are empty cells.
func WriteCSV(w io.Writer, outputs []models.ExchangeOutput) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, o := range outputs {
		row := []string{
			o.Region,
			o.Exchange,
			o.IndexName,
			string(o.LocalCurrency),
			numCell(o.YTDPercent),
			o.YTDPercentDisplay,
			numCell(o.MarketCapLocal),
			numCell(o.MarketCapUSD),
			o.MarketCapDisplay,
			numCell(o.ADTVLocal),
			numCell(o.ADTVUSD),
			o.ADTVDisplay,
			numCell(o.FXRateUsed),
			o.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", o.Exchange, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func numCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
