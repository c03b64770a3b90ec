// Package worker applies queued transactions to the SQLite ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"chitieu/internal/amqp"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
)

// Store is what the worker writes to.
type Store interface {
	ledger.TransactionWriter
	CountTransactions(ctx context.Context) (int64, error)
}

// Stats counts processed messages since start.
type Stats struct {
	Applied int64
	Dropped int64
	Failed  int64
}

// IngestWorker inserts transactions received over AMQP.
type IngestWorker struct {
	store Store

	applied atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

func NewIngestWorker(store Store) *IngestWorker {
	return &IngestWorker{store: store}
}

// HandleTransactionRecorded applies one message. Messages that can never
// succeed are logged and swallowed so they are acked; storage failures are
// returned so the delivery is requeued.
func (w *IngestWorker) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	tx, err := msg.Transaction()
	if err != nil {
		w.dropped.Add(1)
		slog.WarnContext(ctx, "Dropping invalid transaction message", "id", msg.ID, "error", err)
		return nil
	}

	ref, err := w.store.Record(ctx, tx)
	switch {
	case errors.Is(err, core.ErrUnknownCategory):
		w.dropped.Add(1)
		slog.WarnContext(ctx, "Dropping transaction for unknown category",
			"id", msg.ID, "kind", tx.Kind, "category", tx.CategoryID)
		return nil
	case err != nil:
		w.failed.Add(1)
		return fmt.Errorf("record transaction %s: %w", msg.ID, err)
	}

	w.applied.Add(1)
	slog.InfoContext(ctx, "Applied transaction",
		"id", msg.ID,
		"ref", ref,
		"kind", tx.Kind,
		"category", tx.CategoryID,
		"amount", tx.Amount.Minor)
	return nil
}

// StartupCheck verifies the store is reachable before consuming.
func (w *IngestWorker) StartupCheck(ctx context.Context) error {
	n, err := w.store.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	slog.InfoContext(ctx, "Ledger ready", "transactions", n)
	return nil
}

func (w *IngestWorker) Stats() Stats {
	return Stats{Applied: w.applied.Load(), Dropped: w.dropped.Load(), Failed: w.failed.Load()}
}

// ReportStats logs the counters every interval until ctx is done.
func (w *IngestWorker) ReportStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := w.Stats()
			slog.InfoContext(ctx, "Ingest stats", "applied", s.Applied, "dropped", s.Dropped, "failed", s.Failed)
		}
	}
}
