package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"chitieu/internal/amqp"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
)

// Publisher hands a transaction to the ingest worker.
type Publisher interface {
	PublishTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error
}

// Invalidator drops cached read models after a write.
type Invalidator interface {
	Invalidate()
}

// TransactionService records transactions either directly in the store or,
// when a publisher is configured, through the message queue.
type TransactionService struct {
	store     ledger.Store
	publisher Publisher
	summaries Invalidator
	closers   []io.Closer
}

func NewTransactionService(store ledger.Store, publisher Publisher, summaries Invalidator) *TransactionService {
	return &TransactionService{store: store, publisher: publisher, summaries: summaries}
}

// OnClose registers resources released by Close.
func (s *TransactionService) OnClose(c ...io.Closer) {
	s.closers = append(s.closers, c...)
}

// Record validates tx against the catalogue and stores or enqueues it.
// The returned ref is the store reference, or "queued:<id>" when enqueued.
func (s *TransactionService) Record(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if err := s.checkCategory(ctx, tx); err != nil {
		return "", err
	}
	defer s.invalidate()

	if s.publisher == nil {
		ref, err := s.store.Record(ctx, tx)
		if err != nil {
			return "", fmt.Errorf("record transaction: %w", err)
		}
		return ref, nil
	}

	msg := amqp.NewTransactionRecordedMessage(tx)
	if err := s.publisher.PublishTransactionRecorded(ctx, msg); err != nil {
		// Inserts are idempotent by id, so a late delivery of the same
		// message after this fallback is harmless.
		slog.WarnContext(ctx, "Publish failed, writing transaction directly",
			"id", msg.ID, "error", err)
		tx.ID = msg.ID
		ref, err := s.store.Record(ctx, tx)
		if err != nil {
			return "", fmt.Errorf("record transaction: %w", err)
		}
		return ref, nil
	}
	return "queued:" + msg.ID, nil
}

func (s *TransactionService) checkCategory(ctx context.Context, tx core.Transaction) error {
	cats, err := s.store.ListCategories(ctx, tx.Kind)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if c.ID == tx.CategoryID {
			return nil
		}
	}
	return fmt.Errorf("%s/%s: %w", tx.Kind, tx.CategoryID, core.ErrUnknownCategory)
}

func (s *TransactionService) invalidate() {
	if s.summaries != nil {
		s.summaries.Invalidate()
	}
}

// Close releases the registered resources.
func (s *TransactionService) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close transaction service: %w", err)
	}
	return nil
}
