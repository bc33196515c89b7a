//go:build wireinject
// +build wireinject

package di

import (
	"FXBench/pkg/config"
	"FXBench/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Rate resolution
		ProvideRateProviders,
		ProvideResolver,

		// Audit sinks and market data
		ProvideAuditSinks,
		ProvideMarketDataProvider,

		// Use cases
		ProvideComparisonService,
		ProvideCatalogService,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
