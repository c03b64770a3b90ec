package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"chitieu/internal/amqp"
	"chitieu/internal/core"
	"chitieu/internal/storage"
)

func newRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"), core.Money{Minor: 1_000_000})
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func message(category string, amount int64) *amqp.TransactionRecordedMessage {
	return amqp.NewTransactionRecordedMessage(core.Transaction{
		Kind:       core.Expense,
		CategoryID: category,
		Amount:     core.Money{Minor: amount},
		Date:       core.NewDate(2025, 10, 1),
	})
}

func TestHandleIsIdempotent(t *testing.T) {
	repo := newRepo(t)
	w := NewIngestWorker(repo)
	ctx := context.Background()
	msg := message("an-uong", 35_000)

	for i := 0; i < 2; i++ {
		if err := w.HandleTransactionRecorded(ctx, msg); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	n, err := repo.CountTransactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("redelivery inserted %d rows, want 1", n)
	}
	bal, _ := repo.Balance(ctx)
	if bal.Minor != 965_000 {
		t.Errorf("balance = %d", bal.Minor)
	}
}

func TestHandleDropsUnusableMessages(t *testing.T) {
	w := NewIngestWorker(newRepo(t))
	ctx := context.Background()

	if err := w.HandleTransactionRecorded(ctx, message("xang-xe", 10_000)); err != nil {
		t.Errorf("unknown category should be acked, got %v", err)
	}
	bad := message("khac", 10_000)
	bad.Date = "01/10/2025"
	if err := w.HandleTransactionRecorded(ctx, bad); err != nil {
		t.Errorf("bad date should be acked, got %v", err)
	}
	if s := w.Stats(); s.Dropped != 2 || s.Applied != 0 {
		t.Errorf("stats = %+v", s)
	}
}

type brokenStore struct{}

func (brokenStore) Record(context.Context, core.Transaction) (string, error) {
	return "", errors.New("database is locked")
}

func (brokenStore) CountTransactions(context.Context) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestHandleReturnsStorageErrors(t *testing.T) {
	w := NewIngestWorker(brokenStore{})
	ctx := context.Background()

	if err := w.HandleTransactionRecorded(ctx, message("khac", 1)); err == nil {
		t.Fatal("storage failure must be returned for requeue")
	}
	if w.Stats().Failed != 1 {
		t.Errorf("stats = %+v", w.Stats())
	}
	if err := w.StartupCheck(ctx); err == nil {
		t.Error("StartupCheck should fail on a broken store")
	}
}
