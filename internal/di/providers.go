package di

import (
	"context"
	"fmt"
	"time"

	"FXBench/internal/domain/models"
	"FXBench/internal/domain/repository"
	"FXBench/internal/fx"
	"FXBench/internal/handler/api"
	internalrepo "FXBench/internal/repository"
	"FXBench/internal/service/fxprovider"
	"FXBench/internal/service/marketdata"
	"FXBench/internal/usecase"
	"FXBench/pkg/cache"
	pkgch "FXBench/pkg/clickhouse"
	"FXBench/pkg/config"
	xhttp "FXBench/pkg/http"
	pkgkafka "FXBench/pkg/kafka"
	applogger "FXBench/pkg/logger"
	"FXBench/pkg/metrics"
	"FXBench/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Logging.Pretty {
		format = "console"
	}
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: format,
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache builds the quote cache. Nil when caching is disabled; the
// providers are used raw in that case.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.FX.Cache.Enabled {
		return nil, nil
	}
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(redisCache), nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideRateProviders builds the live provider chain in configured priority
// order, each wrapped with the quote cache when one is available.
func ProvideRateProviders(cfg *config.Config, c cache.Service) []repository.RateProvider {
	providers := make([]repository.RateProvider, 0, len(cfg.FX.Providers))
	for _, name := range cfg.FX.Providers {
		var p repository.RateProvider
		switch name {
		case "exchangerate.host":
			p = fxprovider.NewExchangeRateHost(cfg.FX.ExchangeRateHost.BaseURL, cfg.FX.ProviderTimeout)
		case "frankfurter.app":
			p = fxprovider.NewFrankfurter(cfg.FX.Frankfurter.BaseURL, cfg.FX.ProviderTimeout)
		default:
			continue
		}
		if c != nil {
			p = fxprovider.NewCached(p, c, cfg.FX.Cache.TTL)
		}
		providers = append(providers, p)
	}
	return providers
}

// ProvideResolver creates the rate resolver with the configured pegged
// static fallbacks.
func ProvideResolver(providers []repository.RateProvider, cfg *config.Config, m repository.Metrics, l *applogger.Logger) *fx.Resolver {
	pegged := make(map[models.Currency]float64, len(cfg.FX.PeggedRates))
	for ccy, rate := range cfg.FX.PeggedRates {
		pegged[models.Currency(ccy)] = rate
	}
	return fx.NewResolver(providers, pegged, cfg.FX.ProviderTimeout, m, l)
}

// ProvideClickHouseClient creates the audit store client. Nil when the
// ClickHouse sink is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Audit.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Audit.ClickHouse.Host),
		pkgch.WithPort(cfg.Audit.ClickHouse.Port),
		pkgch.WithDatabase(cfg.Audit.ClickHouse.Database),
		pkgch.WithCredentials(cfg.Audit.ClickHouse.User, cfg.Audit.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.Audit.ClickHouse.DialTimeout, cfg.Audit.ClickHouse.ReadTimeout, cfg.Audit.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates the audit publisher producer. Nil when the
// Kafka sink is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Audit.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Audit.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Audit.Kafka.RequiredAcks),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAuditSinks assembles the enabled sinks and makes sure the
// ClickHouse schema exists.
func ProvideAuditSinks(ch *pkgch.Client, producer *pkgkafka.Producer, cfg *config.Config, l *applogger.Logger) ([]repository.AuditSink, error) {
	var sinks []repository.AuditSink

	if ch != nil {
		store := internalrepo.NewAuditStore(ch, cfg.Audit.ClickHouse.Table)
		store.SetLogger(l)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ch.InitSchema(ctx, store.Schema()); err != nil {
			return nil, fmt.Errorf("audit schema: %w", err)
		}
		sinks = append(sinks, store)
	}

	if producer != nil {
		sinks = append(sinks, internalrepo.NewAuditPublisher(producer, cfg.Audit.Kafka.Topic))
	}

	return sinks, nil
}

// ProvideMarketDataProvider creates the index history provider. Nil when
// disabled; the catalog fetch endpoint then reports it as unconfigured.
func ProvideMarketDataProvider(cfg *config.Config) repository.MarketDataProvider {
	if !cfg.MarketData.Enabled {
		return nil
	}
	return marketdata.NewYahooChart(cfg.MarketData.BaseURL, cfg.MarketData.Timeout)
}

// ProvideComparisonService creates the pipeline use case.
func ProvideComparisonService(resolver *fx.Resolver, sinks []repository.AuditSink, m repository.Metrics, l *applogger.Logger) *usecase.ComparisonService {
	return usecase.NewComparisonService(resolver, sinks, m, l)
}

// ProvideCatalogService creates the index catalog use case.
func ProvideCatalogService(provider repository.MarketDataProvider, m repository.Metrics, l *applogger.Logger) *usecase.CatalogService {
	return usecase.NewCatalogService(provider, nil, m, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, comparisons *usecase.ComparisonService, catalog *usecase.CatalogService) xhttp.Handler {
	return api.NewCompareHandler(l, comparisons, catalog)
}

// ProvideApp creates the application server and registers infrastructure
// closers in startup order.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	c cache.Service,
	ch *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	app := server.New(cfg, l, handler)
	if c != nil {
		app.AddCloser("cache", c.Close)
	}
	if ch != nil {
		app.AddCloser("clickhouse", ch.Close)
	}
	if producer != nil {
		app.AddCloser("kafka producer", producer.Close)
	}
	return app
}
