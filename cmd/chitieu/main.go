package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chitieu/internal/backend"
	"chitieu/internal/cache"
	"chitieu/internal/cli"
	"chitieu/internal/core"
	apphttp "chitieu/internal/http"
	applog "chitieu/internal/log"
	"chitieu/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", err)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize backend", err, "backend", cfg.DataBackend)
	}

	summaryCache := cache.NewLRUCache[core.Summary](cfg.SummaryCacheSize, cfg.SummaryCacheTTL)
	caches := cache.NewManager(logger.WithComponent(applog.ComponentCache).Logger)
	caches.Register(summaryCache)
	caches.StartCleanup(cfg.SummaryCacheTTL)

	summaries := services.NewSummaryService(result.Store, summaryCache)
	transactions := services.NewTransactionService(result.Store, result.Publisher, summaries)
	transactions.OnClose(result)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Summaries:          summaries,
		Transactions:       transactions,
		Categories:         result.Store,
		Geometry:           cfg.Geometry(),
		Ready:              result.Ready,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})
	if err != nil {
		cli.Fatal(logger, "Failed to build HTTP server", err)
	}

	parent, stop := context.WithCancel(context.Background())
	defer stop()

	ctx, done := cli.GracefulShutdown(parent, logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		caches.Stop()
		if err := transactions.Close(); err != nil {
			logger.Error("Backend close error", applog.FieldError, err)
		}
	})

	logger.Info("Starting chitieu server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"amqp_enabled", result.Publisher != nil,
		"chart_size", cfg.ChartSize,
		"chart_stroke_width", cfg.ChartStrokeWidth)
	cli.Supervise(ctx, stop, logger, "http server", func(context.Context) error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
