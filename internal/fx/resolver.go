package fx

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"FXBench/internal/domain/models"
	"FXBench/internal/domain/repository"
	xlogger "FXBench/pkg/logger"
	"FXBench/pkg/util"
)

// StatusAllFetched is the success sentinel for live-spot resolution: every
// requested currency produced a rate without fallbacks.
const StatusAllFetched = "All rates fetched successfully"

// Resolver produces one rate per required currency for a request. Providers
// are tried in priority order; the pegged table is the injected static
// fallback for currencies managed against the reporting currency. Resolver
// holds no per-request state: Resolve is a pure function of its inputs plus
// the injected collaborators.
type Resolver struct {
	providers []repository.RateProvider
	pegged    map[models.Currency]float64
	timeout   time.Duration
	metrics   repository.Metrics
	logger    *xlogger.Logger
}

// NewResolver creates a Resolver. timeout bounds each external lookup;
// pegged may be nil when no static fallbacks are configured.
func NewResolver(providers []repository.RateProvider, pegged map[models.Currency]float64, timeout time.Duration, m repository.Metrics, l *xlogger.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{providers: providers, pegged: pegged, timeout: timeout, metrics: m, logger: l}
}

// Resolve returns the rate table for the requested currencies plus a status
// string. Missing rates are omitted from the table, never fatal; only
// configuration misuse (average mode without a range or series) empties the
// whole result.
func (r *Resolver) Resolve(ctx context.Context, cfg models.FXConfiguration, currencies []models.Currency, dateRange *models.DateRange) (map[models.Currency]models.FXRate, string) {
	ordered := dedupeSorted(currencies)

	switch cfg.Mode {
	case models.ModeLiveSpot:
		return r.resolveLiveSpot(ctx, cfg, ordered)
	case models.ModeManual:
		return r.resolveManual(cfg, ordered)
	case models.ModeAverage:
		return r.resolveAverage(cfg, ordered, dateRange)
	default:
		return map[models.Currency]models.FXRate{}, fmt.Sprintf("Unknown FX mode: %s", cfg.Mode)
	}
}

func (r *Resolver) resolveLiveSpot(ctx context.Context, cfg models.FXConfiguration, currencies []models.Currency) (map[models.Currency]models.FXRate, string) {
	ts := time.Now().UTC()
	rates := make(map[models.Currency]models.FXRate, len(currencies))
	var notes []string

	providers := r.orderedProviders(cfg.Provider)

	for _, c := range currencies {
		if c == cfg.ReportingCurrency {
			rates[c] = models.IdentityRate(c, ts)
			r.recordResolved(models.SourceIdentity, c)
			continue
		}

		var (
			rate   float64
			source string
		)
		found := false
		for _, p := range providers {
			v, err := r.quote(ctx, p, c, cfg.ReportingCurrency)
			if err != nil {
				notes = append(notes, fmt.Sprintf("%s: %s failed - %v", c, p.Name(), err))
				r.recordProviderError(p.Name())
				continue
			}
			rate, source, found = v, p.Name(), true
			break
		}

		if !found {
			if peg, ok := r.pegged[c]; ok {
				rate, source, found = peg, models.SourcePegged, true
				notes = append(notes, fmt.Sprintf("%s: using static pegged rate (live fetch failed)", c))
			}
		}

		if !found {
			notes = append(notes, fmt.Sprintf("%s: could not retrieve rate", c))
			if r.logger != nil {
				r.logger.Warn("rate unresolved", xlogger.String("currency", string(c)))
			}
			continue
		}

		rates[c] = models.FXRate{Base: c, Quote: cfg.ReportingCurrency, Rate: rate, Source: source, Timestamp: ts}
		r.recordResolved(source, c)
	}

	if len(notes) == 0 {
		return rates, StatusAllFetched
	}
	return rates, strings.Join(notes, "; ")
}

// quote performs one bounded external lookup and rejects non-positive rates.
func (r *Resolver) quote(ctx context.Context, p repository.RateProvider, base, quote models.Currency) (float64, error) {
	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	v, err := p.Quote(qctx, base, quote)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive rate %v", v)
	}
	return v, nil
}

func (r *Resolver) resolveManual(cfg models.FXConfiguration, currencies []models.Currency) (map[models.Currency]models.FXRate, string) {
	ts := time.Now().UTC()
	rates := make(map[models.Currency]models.FXRate, len(currencies))
	var missing []string

	for _, c := range currencies {
		if c == cfg.ReportingCurrency {
			rates[c] = models.IdentityRate(c, ts)
			r.recordResolved(models.SourceIdentity, c)
			continue
		}
		v, ok := cfg.ManualRates[c]
		if !ok {
			missing = append(missing, string(c))
			continue
		}
		rates[c] = models.FXRate{Base: c, Quote: cfg.ReportingCurrency, Rate: v, Source: models.SourceManual, Timestamp: ts}
		r.recordResolved(models.SourceManual, c)
	}

	if len(missing) > 0 {
		return rates, "Missing manual rates for: " + strings.Join(missing, ", ")
	}
	return rates, "Manual rates applied"
}

func (r *Resolver) resolveAverage(cfg models.FXConfiguration, currencies []models.Currency, dateRange *models.DateRange) (map[models.Currency]models.FXRate, string) {
	if cfg.Series == nil {
		return map[models.Currency]models.FXRate{}, "No average FX data provided"
	}
	if dateRange == nil {
		return map[models.Currency]models.FXRate{}, "Date range required for average FX calculation"
	}

	ts := time.Now().UTC()
	rates := make(map[models.Currency]models.FXRate, len(currencies))

	inWindow := windowIndexes(cfg.Series.Dates, dateRange.Start, dateRange.End)
	if len(inWindow) == 0 {
		if contains(currencies, cfg.ReportingCurrency) {
			rates[cfg.ReportingCurrency] = models.IdentityRate(cfg.ReportingCurrency, ts)
		}
		return rates, fmt.Sprintf("No FX data found for date range %s", dateRange)
	}

	source := fmt.Sprintf("average:%s..%s",
		dateRange.Start.Format("2006-01-02"), dateRange.End.Format("2006-01-02"))

	var missing []string
	for _, c := range currencies {
		if c == cfg.ReportingCurrency {
			rates[c] = models.IdentityRate(c, ts)
			r.recordResolved(models.SourceIdentity, c)
			continue
		}
		col := models.PairColumn(c, cfg.ReportingCurrency)
		mean, ok := windowMean(cfg.Series.Columns[col], inWindow)
		if !ok {
			missing = append(missing, col)
			continue
		}
		rates[c] = models.FXRate{Base: c, Quote: cfg.ReportingCurrency, Rate: mean, Source: source, Timestamp: ts}
		r.recordResolved("average", c)
	}

	status := fmt.Sprintf("Calculated averages from %d days", len(inWindow))
	if len(missing) > 0 {
		status += "; Missing columns: " + strings.Join(missing, ", ")
	}
	return rates, status
}

// orderedProviders moves the preferred provider (if any) to the front while
// preserving the configured priority order of the rest.
func (r *Resolver) orderedProviders(preferred string) []repository.RateProvider {
	if preferred == "" {
		return r.providers
	}
	out := make([]repository.RateProvider, 0, len(r.providers))
	for _, p := range r.providers {
		if p.Name() == preferred {
			out = append(out, p)
		}
	}
	for _, p := range r.providers {
		if p.Name() != preferred {
			out = append(out, p)
		}
	}
	return out
}

func (r *Resolver) recordResolved(source string, c models.Currency) {
	if r.metrics != nil {
		r.metrics.RecordRateResolved(source, string(c))
	}
}

func (r *Resolver) recordProviderError(provider string) {
	if r.metrics != nil {
		r.metrics.RecordProviderError(provider)
	}
}

// windowIndexes returns the indexes of dates inside [from, to], inclusive,
// comparing at day granularity.
func windowIndexes(dates []time.Time, from, to time.Time) []int {
	fromDay := util.TruncateDay(from.UTC())
	toDay := util.TruncateDay(to.UTC())
	var idx []int
	for i, d := range dates {
		day := util.TruncateDay(d.UTC())
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// windowMean averages the present (non-nil) values at the given indexes.
// A column that is nil or has no present in-window values yields ok=false,
// never a zero average.
func windowMean(col []*float64, idx []int) (float64, bool) {
	if col == nil {
		return 0, false
	}
	var sum float64
	var n int
	for _, i := range idx {
		if i >= len(col) || col[i] == nil {
			continue
		}
		sum += *col[i]
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func dedupeSorted(in []models.Currency) []models.Currency {
	seen := make(map[models.Currency]struct{}, len(in))
	out := make([]models.Currency, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func contains(cs []models.Currency, c models.Currency) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
