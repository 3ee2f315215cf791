package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/twickenham/events/internal/config"
	"github.com/twickenham/events/internal/enrichment"
	"github.com/twickenham/events/internal/errlog"
	"github.com/twickenham/events/internal/logging"
	"github.com/twickenham/events/internal/metrics"
	"github.com/twickenham/events/internal/server"
	"github.com/twickenham/events/internal/service"
	"github.com/twickenham/events/internal/status"
	"github.com/twickenham/events/internal/summary"

	"log/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting twickenham events service")

	aggregator := errlog.NewAggregator(cfg.Errors.MaxErrors)
	summarizer := summary.NewSummarizer(aggregator)

	var generator enrichment.TextGenerator
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		generator = enrichment.NewOpenAIGenerator(cfg.AI.APIKey, cfg.AI.Model)
		logger.Info("ai enrichment enabled", "model", cfg.AI.Model)
	} else if cfg.AI.Enabled {
		logger.Warn("ai enrichment enabled but AI_API_KEY not set, fixture names stay unshortened")
	}
	gateway := enrichment.NewGateway(enrichment.Config{
		Enabled:             cfg.AI.Enabled,
		Model:               cfg.AI.Model,
		APIKey:              cfg.AI.APIKey,
		MaxLength:           cfg.AI.MaxLength,
		CacheEnabled:        cfg.AI.CacheEnabled,
		RetryMinutesOnQuota: cfg.AI.RetryMinutesOnQuota,
		FlagsEnabled:        cfg.AI.FlagsEnabled,
		PromptTemplate:      cfg.AI.PromptTemplate,
	}, generator, nil, logger)

	collector, err := metrics.NewCycleCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	if cfg.Service.FeedPath == "" {
		logger.Warn("EVENTS_FEED_PATH not set, cycles will report config_error")
	}

	runner := service.NewRunner(service.Deps{
		Fetcher:    service.NewFeedFetcher(cfg.Service.FeedPath),
		Publisher:  service.NewSnapshotPublisher(cfg.Service.OutputDir),
		Summarizer: summarizer,
		Gateway:    gateway,
		Errors:     aggregator,
		Composer:   status.NewComposer(cfg.AI.Enabled, cfg.Service.Interval),
		Rules: summary.Rules{
			EndOfDayCutoff:      cfg.EventRules.EndOfDayCutoff,
			NextEventDelayHours: cfg.EventRules.NextEventDelayHours,
		},
		Collector: collector,
		Logger:    logger,
		Interval:  cfg.Service.Interval,
	})

	srv := server.New(cfg.Metrics.Port, logger, collector.Handler())
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("metrics listener error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go runner.Start(ctx)

	waitForSignal(logger)

	logger.Info("shutting down")
	cancel()
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
