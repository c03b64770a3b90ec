package backend

import (
	"context"
	"fmt"
	"log/slog"

	"chitieu/internal/amqp"
	"chitieu/internal/core"
	"chitieu/internal/ledger/memory"
	"chitieu/internal/storage"
)

// Factory creates backends based on configuration
type Factory struct {
	logger *slog.Logger
	today  func() core.Date
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger, today: core.Today}
}

func (f *Factory) CreateBackend(ctx context.Context, cfg Config) (*BackendResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, cfg)
	case MemoryBackend:
		return f.createMemoryBackend(cfg)
	}
	return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
}

func (f *Factory) createSQLiteBackend(ctx context.Context, cfg Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, cfg.OpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	result := &BackendResult{Store: repo, Ready: repo.Ping, Cleanup: repo.Close}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, writing directly", "error", err)
		} else {
			result.Publisher = client
			result.Cleanup = func() error {
				client.Close()
				return repo.Close()
			}
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", result.Publisher != nil)
	return result, nil
}

func (f *Factory) createMemoryBackend(cfg Config) (*BackendResult, error) {
	store, err := memory.NewFromSeed(cfg.SeedFile, f.today())
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory backend: %w", err)
	}

	seed := cfg.SeedFile
	if seed == "" {
		seed = "built-in"
	}
	f.logger.Info("Initialized memory backend", "seed", seed)

	return &BackendResult{
		Store: store,
		Ready: func(context.Context) error { return nil },
	}, nil
}
