package compute

import (
	"time"

	"FXBench/internal/domain/models"
)

// Convert applies a resolved rate to a local-currency value. Absence
// propagates: if either side is missing the result is missing, never zero.
func Convert(v *float64, rate *models.FXRate) *float64 {
	if v == nil || rate == nil {
		return nil
	}
	out := *v * rate.Rate
	return &out
}

// Normalize converts raw input records into reporting-currency outputs and
// builds the matching audit trail. Outputs and audits are 1:1 with inputs,
// in input order. A missing value or unresolved rate degrades that record's
// fields to absent; it never aborts the batch.
func Normalize(inputs []models.ExchangeInput, rates map[models.Currency]models.FXRate, reporting models.Currency) ([]models.ExchangeOutput, []models.AuditRecord) {
	outputs := make([]models.ExchangeOutput, 0, len(inputs))
	audits := make([]models.AuditRecord, 0, len(inputs))
	now := time.Now().UTC()
	symbol := reporting.Symbol()

	for _, in := range inputs {
		var rate *models.FXRate
		if r, ok := rates[in.LocalCurrency]; ok {
			rate = &r
		}

		capConverted := Convert(in.MarketCapLocal, rate)
		adtvConverted := Convert(in.ADTVLocal, rate)

		// Fixed check order: YTD, market cap, ADTV, then the FX rate when
		// the record is not already in the reporting currency.
		missing := []string{}
		if in.YTDPercent == nil {
			missing = append(missing, "ytd_percent")
		}
		if in.MarketCapLocal == nil {
			missing = append(missing, "market_cap")
		}
		if in.ADTVLocal == nil {
			missing = append(missing, "adtv")
		}
		if rate == nil && in.LocalCurrency != reporting {
			missing = append(missing, "fx_rate_"+string(in.LocalCurrency))
		}

		var rateUsed *float64
		fxSource := NotAvailable
		if rate != nil {
			r := rate.Rate
			rateUsed = &r
			fxSource = rate.Source
		}

		ts := in.SourceTimestamp
		if ts == nil {
			t := now
			ts = &t
		}

		outputs = append(outputs, models.ExchangeOutput{
			Region:            in.Region,
			Exchange:          in.Exchange,
			IndexName:         in.IndexName,
			LocalCurrency:     in.LocalCurrency,
			YTDPercent:        in.YTDPercent,
			YTDPercentDisplay: FormatPercent(in.YTDPercent),
			MarketCapLocal:    in.MarketCapLocal,
			MarketCapUSD:      capConverted,
			MarketCapDisplay:  FormatMarketCap(capConverted, symbol),
			ADTVLocal:         in.ADTVLocal,
			ADTVUSD:           adtvConverted,
			ADTVDisplay:       FormatADTV(adtvConverted, symbol),
			FXRateUsed:        rateUsed,
			Source:            in.Source,
			SourceURL:         in.SourceURL,
			SourceTimestamp:   ts,
		})

		audits = append(audits, models.AuditRecord{
			Exchange:           in.Exchange,
			InputLocalCurrency: in.LocalCurrency,
			InputMarketCap:     in.MarketCapLocal,
			InputADTV:          in.ADTVLocal,
			InputYTDPercent:    in.YTDPercent,
			FXRate:             rateUsed,
			FXSource:           fxSource,
			OutputMarketCapUSD: capConverted,
			OutputADTVUSD:      adtvConverted,
			ComputedAt:         now,
			MissingFields:      missing,
		})
	}

	return outputs, audits
}
