package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"options_go/internal/app"
	"options_go/internal/infra"
	"options_go/internal/infra/binance"
	"options_go/internal/service"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config

	// 3. Initial instrument universe (fatal on failure)
	if err := bootstrap.FetchInitialUniverse(ctx); err != nil {
		slog.Error("initial universe fetch failed", slog.Any("error", err))
		os.Exit(1)
	}

	retry := infra.FixedDelay{Interval: cfg.ReconnectDelay()}

	// 4. Underlying price tracker
	tradeWorker := binance.NewTradeWorker(
		cfg.API.SpotWSURL,
		cfg.Universe.Underlyings,
		cfg.Universe.QuoteSuffix,
		bootstrap.Prices,
		retry,
	)
	if err := tradeWorker.Connect(ctx); err != nil {
		slog.Error("failed to start trade worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer tradeWorker.Disconnect()

	// 5. Option quote streams, one worker per symbol group
	streams := binance.NewStreamManager(
		cfg.API.OptionsWSURL,
		cfg.Universe.GroupSize,
		bootstrap.Quotes,
		retry,
	)
	if err := streams.Start(ctx, bootstrap.Registry.Symbols()); err != nil {
		slog.Error("failed to start option streams", slog.Any("error", err))
		os.Exit(1)
	}
	defer streams.Stop()

	// 6. Snapshot scheduler
	snapshotter, err := service.NewSnapshotter(
		bootstrap.Quotes,
		bootstrap.Prices,
		bootstrap.Storage,
		cfg.Universe.QuoteSuffix,
		cfg.SnapshotInterval(),
	)
	if err != nil {
		slog.Error("failed to initialize snapshotter", slog.Any("error", err))
		os.Exit(1)
	}
	go snapshotter.Run(ctx)

	// 7. Daily universe refresh + cache prune
	refreshAt, _ := infra.ParseClock(cfg.Schedule.RefreshAtUTC)
	refresher := service.NewRefresher(bootstrap.Metadata, bootstrap.Registry, bootstrap.Quotes, refreshAt)
	go refresher.Run(ctx)

	slog.Info("options collector running",
		slog.Int("universe", bootstrap.Registry.Len()),
		slog.Int("stream_groups", streams.Workers()))

	// Wait for shutdown signal
	<-ctx.Done()

	slog.Info("shutting down")
}
