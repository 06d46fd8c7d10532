package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	httpadapter "github.com/harvestline/agrodata/internal/adapter/http"
	kafkaadapter "github.com/harvestline/agrodata/internal/adapter/kafka"
	"github.com/harvestline/agrodata/internal/cache"
	"github.com/harvestline/agrodata/internal/config"
	"github.com/harvestline/agrodata/internal/observability"
	"github.com/harvestline/agrodata/internal/refresh"
	"github.com/harvestline/agrodata/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	res := resolver.New(resolver.Config{
		DatasetDir:     cfg.DatasetDir,
		TabularEnabled: cfg.TabularEnabled,
	}, nil, logger, metrics)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher refresh.Publisher
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer writer.Close() //nolint:errcheck // best-effort close on shutdown
		publisher = writer
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	refresher := refresh.New(res, publisher, logger, metrics, cfg.RefreshInterval)

	sweeper := cache.NewSweeper(cfg.CacheDir, logger, metrics)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CacheSweepSchedule, func() { sweeper.Sweep() }); err != nil {
		logger.Error("failed to schedule cache sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("cache sweep scheduled", "schedule", cfg.CacheSweepSchedule, "dir", cfg.CacheDir)

	server := httpadapter.NewServer(cfg.HTTPAddr, refresher, res, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresherDone := make(chan error, 1)
	go func() { refresherDone <- refresher.Run(ctx) }()

	serverDone := make(chan error, 1)
	go func() { serverDone <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	scheduler.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	if err := <-refresherDone; err != nil {
		logger.Error("refresher exited with error", "error", err)
	}

	logger.Info("service stopped")
}
