package main

import (
	"context"
	"errors"
	"time"

	"chitieu/internal/amqp"
	"chitieu/internal/cli"
	applog "chitieu/internal/log"
	"chitieu/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting chitieu-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if !cfg.AMQPEnabled() {
		cli.Fatal(logger, "Worker needs a broker", errors.New("AMQP_URL is not set"))
	}

	repo := cli.InitSQLite(logger, cfg)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		_ = repo.Close()
		cli.Fatal(logger, "Failed to initialize AMQP client", err)
	}

	ingest := worker.NewIngestWorker(repo)

	parent, stop := context.WithCancel(context.Background())
	defer stop()

	ctx, done := cli.GracefulShutdown(parent, logger, 15*time.Second, func(context.Context) {
		s := ingest.Stats()
		logger.Info("Final ingest stats", "applied", s.Applied, "dropped", s.Dropped, "failed", s.Failed)
		if err := client.Close(); err != nil {
			logger.Error("AMQP close error", applog.FieldError, err)
		}
		if err := repo.Close(); err != nil {
			logger.Error("SQLite close error", applog.FieldError, err)
		}
	})

	if err := ingest.StartupCheck(ctx); err != nil {
		logger.Error("Startup check failed", applog.FieldError, err, applog.FieldOperation, applog.OpStartup)
	}

	go ingest.ReportStats(ctx, cfg.StatsInterval)

	logger.Info("Consuming transactions",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		applog.FieldOperation, applog.OpConsume)
	cli.Supervise(ctx, stop, logger, "consumer", func(ctx context.Context) error {
		return client.ConsumeTransactionRecorded(ctx, ingest.HandleTransactionRecorded)
	})

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
