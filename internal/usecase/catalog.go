package usecase

import (
	"context"
	"fmt"
	"time"

	"FXBench/internal/domain/models"
	domrepo "FXBench/internal/domain/repository"
	applogger "FXBench/pkg/logger"
)

// CatalogService serves the known-index catalog and pre-fills input records
// from the market-data provider.
type CatalogService struct {
	provider domrepo.MarketDataProvider
	catalog  []models.IndexConfig
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

func NewCatalogService(provider domrepo.MarketDataProvider, catalog []models.IndexConfig, m domrepo.Metrics, l *applogger.Logger) *CatalogService {
	if len(catalog) == 0 {
		catalog = models.DefaultIndexCatalog()
	}
	return &CatalogService{provider: provider, catalog: catalog, metrics: m, l: l}
}

// List returns the catalog entries.
func (s *CatalogService) List() []models.IndexConfig {
	out := make([]models.IndexConfig, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// FetchFailure records one index that could not be fetched.
type FetchFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// FetchResult is the outcome of a catalog fetch: one input record per
// successful index, plus per-index failures. A failed index never fails
// the batch.
type FetchResult struct {
	Inputs    []models.ExchangeInput `json:"inputs"`
	Failed    []FetchFailure         `json:"failed"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// Fetch resolves each requested catalog key to an input record with the
// year-to-date change filled in. Market cap and ADTV stay absent: the
// provider only serves price history, and absent is not zero.
func (s *CatalogService) Fetch(ctx context.Context, keys []string, year int) (*FetchResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no market data provider configured")
	}
	if len(keys) == 0 {
		for _, c := range s.catalog {
			keys = append(keys, c.Key)
		}
	}

	res := &FetchResult{FetchedAt: time.Now().UTC()}
	for _, key := range keys {
		cfg, ok := s.find(key)
		if !ok {
			res.Failed = append(res.Failed, FetchFailure{Key: key, Error: "unknown index"})
			continue
		}

		ytd, err := s.provider.FetchYTD(ctx, cfg.Symbol, year)
		if err != nil {
			if s.l != nil {
				s.l.Warn("index fetch failed",
					applogger.String("key", key),
					applogger.String("symbol", cfg.Symbol),
					applogger.Error(err),
				)
			}
			if s.metrics != nil {
				s.metrics.RecordProviderError(s.provider.Name())
			}
			res.Failed = append(res.Failed, FetchFailure{Key: key, Error: err.Error()})
			continue
		}

		asOf := ytd.AsOf
		res.Inputs = append(res.Inputs, models.ExchangeInput{
			Region:          cfg.Region,
			Exchange:        cfg.Exchange,
			IndexName:       cfg.Name,
			LocalCurrency:   cfg.LocalCurrency,
			YTDPercent:      ytd.YTDPercent,
			Source:          s.provider.Name(),
			SourceTimestamp: &asOf,
		})
	}
	return res, nil
}

func (s *CatalogService) find(key string) (models.IndexConfig, bool) {
	for _, c := range s.catalog {
		if c.Key == key {
			return c, true
		}
	}
	return models.IndexConfig{}, false
}
