package insights

import (
	"fmt"
	"sort"
	"strings"

	"FXBench/internal/compute"
	"FXBench/internal/domain/models"
)

const maxInsights = 6

// tradingDaysPerYear annualizes daily turnover. 252 is the conventional
// assumption; the 500% suppression below is a presentation heuristic kept
// for compatibility with the historical report format.
const tradingDaysPerYear = 252

// Summarize derives the ordered observation list from normalized outputs.
// Each rule contributes at most one entry; rules with fully absent inputs
// are skipped. The list is capped at 6 entries in generation order.
func Summarize(outputs []models.ExchangeOutput, year int) []string {
	var out []string

	ytdValid := filter(outputs, func(o models.ExchangeOutput) bool { return o.YTDPercent != nil })
	capValid := filter(outputs, func(o models.ExchangeOutput) bool { return o.MarketCapUSD != nil })
	adtvValid := filter(outputs, func(o models.ExchangeOutput) bool { return o.ADTVUSD != nil })

	// 1. YTD performance leader (or least-declining when everything is red).
	if len(ytdValid) > 0 {
		best := ytdValid[0]
		worst := ytdValid[0]
		for _, o := range ytdValid[1:] {
			if *o.YTDPercent > *best.YTDPercent {
				best = o
			}
			if *o.YTDPercent < *worst.YTDPercent {
				worst = o
			}
		}

		if *best.YTDPercent >= 0 {
			out = append(out, fmt.Sprintf(
				"%s leads in YTD performance at %s, outperforming other exchanges in the comparison.",
				best.Exchange, compute.FormatPercent(best.YTDPercent)))
		} else {
			out = append(out, fmt.Sprintf(
				"All exchanges show negative YTD returns in %d, with %s declining the least at %s.",
				year, best.Exchange, compute.FormatPercent(best.YTDPercent)))
		}

		// 2. Performance spread.
		if len(ytdValid) >= 2 {
			spread := *best.YTDPercent - *worst.YTDPercent
			if spread > 10 {
				out = append(out, fmt.Sprintf(
					"Significant performance dispersion observed: %.1f percentage points separate the best (%s) from the weakest (%s) performer.",
					spread, best.Exchange, worst.Exchange))
			}
		}
	}

	// 3. Market-cap dominance.
	if len(capValid) > 0 {
		var total float64
		largest := capValid[0]
		for _, o := range capValid {
			total += *o.MarketCapUSD
			if *o.MarketCapUSD > *largest.MarketCapUSD {
				largest = o
			}
		}
		if total > 0 {
			share := *largest.MarketCapUSD / total * 100
			out = append(out, fmt.Sprintf(
				"%s dominates by market capitalization at %s, representing %.1f%% of the combined market cap in this comparison.",
				largest.Exchange, largest.MarketCapDisplay, share))
		}
	}

	// 4. Liquidity leader, with an annualized turnover estimate when its
	// market cap is known. Estimates above 500% are suppressed as noise.
	if len(adtvValid) > 0 {
		highest := adtvValid[0]
		for _, o := range adtvValid[1:] {
			if *o.ADTVUSD > *highest.ADTVUSD {
				highest = o
			}
		}
		if highest.MarketCapUSD != nil && *highest.MarketCapUSD > 0 {
			turnover := *highest.ADTVUSD / *highest.MarketCapUSD * 100 * tradingDaysPerYear
			suffix := ""
			if turnover < 500 {
				suffix = fmt.Sprintf(", implying ~%.0f%% annualized turnover", turnover)
			}
			out = append(out, fmt.Sprintf(
				"%s shows the highest liquidity with %s average daily traded value%s.",
				highest.Exchange, highest.ADTVDisplay, suffix))
		} else {
			out = append(out, fmt.Sprintf(
				"%s leads in liquidity with %s average daily traded value.",
				highest.Exchange, highest.ADTVDisplay))
		}
	}

	// 5. Divergence: above-median cap with below-median YTD.
	if len(ytdValid) > 0 && len(capValid) > 0 {
		medianCap := upperMedian(values(capValid, func(o models.ExchangeOutput) float64 { return *o.MarketCapUSD }))
		medianYTD := upperMedian(values(ytdValid, func(o models.ExchangeOutput) float64 { return *o.YTDPercent }))
		for _, o := range outputs {
			if o.MarketCapUSD == nil || o.YTDPercent == nil {
				continue
			}
			if *o.MarketCapUSD >= medianCap && *o.YTDPercent < medianYTD {
				out = append(out, fmt.Sprintf(
					"Notable divergence: %s has significant market cap (%s) but underperformed at %s, suggesting potential value or structural headwinds.",
					o.Exchange, o.MarketCapDisplay, compute.FormatPercent(o.YTDPercent)))
				break
			}
		}
	}

	// 6. Small-cap outperformer: bottom third by cap crossed with top third
	// by YTD; first hit in input order wins.
	if len(ytdValid) > 0 && len(capValid) >= 3 {
		capSorted := append([]models.ExchangeOutput(nil), capValid...)
		sort.SliceStable(capSorted, func(i, j int) bool { return *capSorted[i].MarketCapUSD < *capSorted[j].MarketCapUSD })
		ytdSorted := append([]models.ExchangeOutput(nil), ytdValid...)
		sort.SliceStable(ytdSorted, func(i, j int) bool { return *ytdSorted[i].YTDPercent > *ytdSorted[j].YTDPercent })

		smallCaps := exchangeSet(capSorted[:len(capSorted)/3+1])
		topPerformers := exchangeSet(ytdSorted[:len(ytdSorted)/3+1])

		for _, o := range outputs {
			if _, small := smallCaps[o.Exchange]; !small {
				continue
			}
			if _, top := topPerformers[o.Exchange]; !top {
				continue
			}
			out = append(out, fmt.Sprintf(
				"%s demonstrates strong performance (%s) despite its smaller market cap, indicating momentum in this market.",
				o.Exchange, compute.FormatPercent(o.YTDPercent)))
			break
		}
	}

	// 7. Regional average, only when a positive leader exists across ≥2
	// regions with YTD data.
	if region, mean, ok := bestRegion(outputs); ok && mean > 0 {
		m := mean
		out = append(out, fmt.Sprintf(
			"%s region shows the strongest average performance at %s across its exchanges.",
			region, compute.FormatPercent(&m)))
	}

	// Fallbacks: a currency-unification note when the list runs short, then
	// a completeness note whenever data was missing.
	if len(out) < 4 {
		currencies := map[models.Currency]struct{}{}
		for _, o := range outputs {
			currencies[o.LocalCurrency] = struct{}{}
		}
		if len(currencies) > 1 {
			names := make([]string, 0, len(currencies))
			for c := range currencies {
				names = append(names, string(c))
			}
			sort.Strings(names)
			out = append(out, fmt.Sprintf(
				"Currency unification applied across %d currencies (%s) to enable direct comparison.",
				len(names), strings.Join(names, ", ")))
		}
	}

	missingCount := 0
	for _, o := range outputs {
		if o.YTDPercent == nil || o.MarketCapUSD == nil {
			missingCount++
		}
	}
	if missingCount > 0 {
		out = append(out, fmt.Sprintf(
			"Note: %d exchange(s) have incomplete data marked as N/A. Insights are based on available data only.",
			missingCount))
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

// Rank builds the sorted metric rankings from the normalized outputs.
func Rank(outputs []models.ExchangeOutput) models.Rankings {
	var r models.Rankings
	for _, o := range outputs {
		if o.YTDPercent != nil {
			r.YTDBest = append(r.YTDBest, models.RankedEntry{Exchange: o.Exchange, Value: *o.YTDPercent})
		}
		if o.MarketCapUSD != nil {
			r.MarketCapLargest = append(r.MarketCapLargest, models.RankedEntry{Exchange: o.Exchange, Value: *o.MarketCapUSD})
		}
		if o.ADTVUSD != nil {
			r.ADTVHighest = append(r.ADTVHighest, models.RankedEntry{Exchange: o.Exchange, Value: *o.ADTVUSD})
		}
	}
	r.YTDWorst = append([]models.RankedEntry(nil), r.YTDBest...)
	sort.SliceStable(r.YTDBest, func(i, j int) bool { return r.YTDBest[i].Value > r.YTDBest[j].Value })
	sort.SliceStable(r.YTDWorst, func(i, j int) bool { return r.YTDWorst[i].Value < r.YTDWorst[j].Value })
	sort.SliceStable(r.MarketCapLargest, func(i, j int) bool { return r.MarketCapLargest[i].Value > r.MarketCapLargest[j].Value })
	sort.SliceStable(r.ADTVHighest, func(i, j int) bool { return r.ADTVHighest[i].Value > r.ADTVHighest[j].Value })
	return r
}

// ExecutiveSummary renders one deterministic overview paragraph.
func ExecutiveSummary(outputs []models.ExchangeOutput, dateRangeStr string, reporting models.Currency) string {
	regions := map[string]struct{}{}
	for _, o := range outputs {
		regions[o.Region] = struct{}{}
	}

	parts := []string{fmt.Sprintf(
		"This analysis compares %d stock exchanges across %d regions for %s.",
		len(outputs), len(regions), dateRangeStr)}

	ytdValid := filter(outputs, func(o models.ExchangeOutput) bool { return o.YTDPercent != nil })
	if len(ytdValid) > 0 {
		var sum float64
		positive := 0
		for _, o := range ytdValid {
			sum += *o.YTDPercent
			if *o.YTDPercent > 0 {
				positive++
			}
		}
		avg := sum / float64(len(ytdValid))
		parts = append(parts, fmt.Sprintf(
			"Average YTD performance is %s, with %d of %d exchanges showing positive returns.",
			compute.FormatPercent(&avg), positive, len(ytdValid)))
	}

	capValid := filter(outputs, func(o models.ExchangeOutput) bool { return o.MarketCapUSD != nil })
	if len(capValid) > 0 {
		var total float64
		for _, o := range capValid {
			total += *o.MarketCapUSD
		}
		parts = append(parts, fmt.Sprintf(
			"Combined market capitalization totals %s.",
			compute.FormatMarketCap(&total, reporting.Symbol())))
	}

	return strings.Join(parts, " ")
}

// bestRegion returns the region with the highest mean YTD, requiring at
// least two regions with YTD-valid records. Ties keep the earliest region
// in input order.
func bestRegion(outputs []models.ExchangeOutput) (string, float64, bool) {
	var order []string
	sums := map[string]float64{}
	counts := map[string]int{}
	seen := map[string]struct{}{}

	for _, o := range outputs {
		if _, ok := seen[o.Region]; !ok {
			seen[o.Region] = struct{}{}
			order = append(order, o.Region)
		}
		if o.YTDPercent != nil {
			sums[o.Region] += *o.YTDPercent
			counts[o.Region]++
		}
	}
	if len(order) < 2 {
		return "", 0, false
	}

	bestSet := false
	var bestRegionName string
	var bestMean float64
	valid := 0
	for _, region := range order {
		if counts[region] == 0 {
			continue
		}
		valid++
		mean := sums[region] / float64(counts[region])
		if !bestSet || mean > bestMean {
			bestSet = true
			bestRegionName = region
			bestMean = mean
		}
	}
	if valid < 2 {
		return "", 0, false
	}
	return bestRegionName, bestMean, true
}

// upperMedian matches the historical definition: element at index n/2 of the
// ascending sort.
func upperMedian(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func filter(in []models.ExchangeOutput, keep func(models.ExchangeOutput) bool) []models.ExchangeOutput {
	var out []models.ExchangeOutput
	for _, o := range in {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func values(in []models.ExchangeOutput, f func(models.ExchangeOutput) float64) []float64 {
	out := make([]float64, 0, len(in))
	for _, o := range in {
		out = append(out, f(o))
	}
	return out
}

func exchangeSet(in []models.ExchangeOutput) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, o := range in {
		out[o.Exchange] = struct{}{}
	}
	return out
}
