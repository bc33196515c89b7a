package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"FXBench/internal/compute"
	"FXBench/internal/domain/models"
	domrepo "FXBench/internal/domain/repository"
	"FXBench/internal/fx"
	"FXBench/internal/insights"
	applogger "FXBench/pkg/logger"
	"FXBench/pkg/util"
)

// ComparisonService runs the full pipeline for one request: admit input
// records, resolve rates, normalize, build the audit trail, summarize, and
// hand the trail to the configured sinks.
type ComparisonService struct {
	resolver     *fx.Resolver
	sinks        []domrepo.AuditSink
	metrics      domrepo.Metrics
	l            *applogger.Logger
	validate     *validator.Validate
	auditTimeout time.Duration
}

func NewComparisonService(resolver *fx.Resolver, sinks []domrepo.AuditSink, m domrepo.Metrics, l *applogger.Logger) *ComparisonService {
	return &ComparisonService{
		resolver:     resolver,
		sinks:        sinks,
		metrics:      m,
		l:            l,
		validate:     validator.New(),
		auditTimeout: 10 * time.Second,
	}
}

func (s *ComparisonService) Compare(ctx context.Context, req *models.CompareRequest) (*models.ComparisonResult, error) {
	start := time.Now()

	dateRange, err := buildDateRange(req.DateRange)
	if err != nil {
		return nil, fmt.Errorf("date range: %w", err)
	}

	cfg, err := buildFXConfig(req.FX)
	if err != nil {
		return nil, fmt.Errorf("fx configuration: %w", err)
	}

	admitted, warnings := s.admit(req.Inputs)

	res := &models.ComparisonResult{
		DateRange:   dateRange,
		FXMode:      cfg.Mode,
		Reporting:   cfg.ReportingCurrency,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC(),
	}
	if len(admitted) == 0 {
		res.Exchanges = []models.ExchangeOutput{}
		res.AuditTrail = []models.AuditRecord{}
		res.FXStatus = "No input records admitted"
		return res, nil
	}

	currencies := make([]models.Currency, 0, len(admitted))
	for _, in := range admitted {
		currencies = append(currencies, in.LocalCurrency)
	}

	rates, status := s.resolver.Resolve(ctx, cfg, currencies, &dateRange)
	outputs, audit := compute.Normalize(admitted, rates, cfg.ReportingCurrency)

	res.Exchanges = outputs
	res.AuditTrail = audit
	res.FXRates = rates
	res.FXStatus = status
	res.Insights = insights.Summarize(outputs, dateRange.Year)
	res.Rankings = insights.Rank(outputs)
	res.ExecutiveSummary = insights.ExecutiveSummary(outputs, dateRange.String(), cfg.ReportingCurrency)
	res.FXSummary = fx.FormatRatesSummary(rates, cfg.ReportingCurrency)

	s.dispatchAudit(ctx, audit)

	if s.metrics != nil {
		s.metrics.RecordComparison(string(cfg.Mode))
		s.metrics.RecordLatency("compare", time.Since(start).Seconds())
	}
	return res, nil
}

// admit applies per-record defaults and validation. A malformed record is
// dropped with a warning; it never fails the batch.
func (s *ComparisonService) admit(inputs []models.ExchangeInput) ([]models.ExchangeInput, []string) {
	admitted := make([]models.ExchangeInput, 0, len(inputs))
	var warnings []string

	for i, in := range inputs {
		if err := defaults.Set(&in); err != nil {
			warnings = append(warnings, fmt.Sprintf("record %d (%s): %v", i, in.Exchange, err))
			continue
		}
		if err := s.validate.Struct(&in); err != nil {
			warnings = append(warnings, fmt.Sprintf("record %d (%s) rejected: %v", i, in.Exchange, err))
			if s.metrics != nil {
				s.metrics.RecordError("malformed_input")
			}
			continue
		}
		if !in.LocalCurrency.Supported() {
			warnings = append(warnings, fmt.Sprintf("record %d (%s) rejected: unsupported currency %s", i, in.Exchange, in.LocalCurrency))
			if s.metrics != nil {
				s.metrics.RecordError("malformed_input")
			}
			continue
		}
		admitted = append(admitted, in)
	}
	return admitted, warnings
}

// dispatchAudit hands the trail to every sink in the background. Delivery is
// best-effort: sink failures are logged and counted, never surfaced.
func (s *ComparisonService) dispatchAudit(ctx context.Context, records []models.AuditRecord) {
	if len(records) == 0 || len(s.sinks) == 0 {
		return
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, s.auditTimeout)
		defer cancel()

		for _, sink := range s.sinks {
			if err := sink.Store(ctx, records); err != nil {
				if s.l != nil {
					s.l.Error("audit sink store failed",
						applogger.String("sink", sink.Name()),
						applogger.Int("records", len(records)),
						applogger.Error(err),
					)
				}
				if s.metrics != nil {
					s.metrics.RecordError("audit_" + sink.Name())
				}
				continue
			}
			if s.metrics != nil {
				s.metrics.RecordAuditDelivered(sink.Name(), len(records))
			}
		}
	}()
}

func buildDateRange(p models.DateRangePayload) (models.DateRange, error) {
	now := time.Now().UTC()
	year := p.Year
	if year == 0 {
		year = now.Year()
	}

	switch models.DateRangePreset(p.Preset) {
	case models.PresetFullYear:
		return models.NewDateRange(
			time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
			models.PresetFullYear, year,
		)
	case models.PresetCustom:
		start, err := util.ParseDateOnly(p.Start)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("parse start: %w", err)
		}
		end, err := util.ParseDateOnly(p.End)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("parse end: %w", err)
		}
		return models.NewDateRange(start, end, models.PresetCustom, p.Year)
	case models.PresetYTD, "":
		end := now
		if year < now.Year() {
			end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
		return models.NewDateRange(
			time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			end,
			models.PresetYTD, year,
		)
	default:
		return models.DateRange{}, fmt.Errorf("unknown preset %q", p.Preset)
	}
}

func buildFXConfig(p models.FXPayload) (models.FXConfiguration, error) {
	mode := models.FXMode(p.Mode)
	if mode == "" {
		mode = models.ModeLiveSpot
	}
	switch mode {
	case models.ModeLiveSpot, models.ModeManual, models.ModeAverage:
	default:
		return models.FXConfiguration{}, fmt.Errorf("unknown fx mode %q", p.Mode)
	}

	reporting := models.Currency(p.ReportingCurrency)
	if reporting == "" {
		reporting = models.USD
	}
	if !reporting.Supported() {
		return models.FXConfiguration{}, fmt.Errorf("unsupported reporting currency %q", p.ReportingCurrency)
	}

	cfg := models.FXConfiguration{
		Mode:              mode,
		ReportingCurrency: reporting,
		Provider:          p.Provider,
	}

	if len(p.ManualRates) > 0 {
		cfg.ManualRates = make(map[models.Currency]float64, len(p.ManualRates))
		for c, v := range p.ManualRates {
			cfg.ManualRates[models.Currency(c)] = v
		}
	}

	if p.RateSeries != nil {
		series, err := buildRateSeries(p.RateSeries)
		if err != nil {
			return models.FXConfiguration{}, fmt.Errorf("rate series: %w", err)
		}
		cfg.Series = series
	}

	return cfg, nil
}

func buildRateSeries(p *models.RateSeriesPayload) (*models.RateSeries, error) {
	dates := make([]time.Time, 0, len(p.Dates))
	for _, d := range p.Dates {
		t, err := util.ParseDateOnly(d)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", d, err)
		}
		dates = append(dates, t)
	}

	columns := make(map[string][]*float64, len(p.Columns))
	for pair, col := range p.Columns {
		if len(col) != len(dates) {
			return nil, fmt.Errorf("column %s has %d entries for %d dates", pair, len(col), len(dates))
		}
		columns[pair] = col
	}

	return &models.RateSeries{Dates: dates, Columns: columns}, nil
}
