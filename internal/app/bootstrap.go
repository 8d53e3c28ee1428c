package app

import (
	"context"
	"fmt"
	"log/slog"

	"options_go/internal/cache"
	"options_go/internal/infra"
	"options_go/internal/infra/binance"
	"options_go/internal/infra/storage"
	"options_go/internal/service"
)

// Bootstrap orchestrates the collector startup sequence
type Bootstrap struct {
	Config   *infra.Config
	Storage  *storage.Storage
	Quotes   *cache.QuoteCache
	Prices   *cache.PriceBoard
	Registry *service.Registry
	Metadata *binance.MetadataClient
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB, caches).
func (b *Bootstrap) Initialize() error {
	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("bootstrapping options collector",
		slog.String("name", cfg.App.Name),
		slog.String("version", cfg.App.Version))

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("database initialized", slog.String("path", cfg.Storage.Path))

	// 4. Shared caches and universe registry
	b.Quotes = cache.NewQuoteCache()
	b.Prices = cache.NewPriceBoard()
	b.Registry = service.NewRegistry()
	b.Metadata = binance.NewMetadataClient(
		cfg.API.MetadataURL,
		cfg.Universe.Underlyings,
		cfg.Universe.QuoteSuffix,
	)

	return nil
}

// FetchInitialUniverse populates the registry before any stream starts.
// Startup without a universe is fatal; the daily refresh handles later
// failures gracefully.
func (b *Bootstrap) FetchInitialUniverse(ctx context.Context) error {
	symbols, err := b.Metadata.FetchUniverse(ctx)
	if err != nil {
		return fmt.Errorf("initial universe fetch: %w", err)
	}
	b.Registry.Replace(symbols)
	slog.Info("initial universe fetched", slog.Int("symbols", len(symbols)))
	return nil
}
