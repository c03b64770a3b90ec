package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chitieu/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	opening core.Money
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// migrates it. opening is added to every balance read.
func NewSQLiteRepository(dbPath string, opening core.Money) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		opening: opening,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Record implements ledger.TransactionWriter. A transaction whose ID is
// already stored is accepted without writing it twice.
func (r *SQLiteRepository) Record(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	ok, err := r.queries.CategoryExists(ctx, string(tx.Kind), tx.CategoryID)
	if err != nil {
		return "", fmt.Errorf("check category: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%s %q: %w", tx.Kind, tx.CategoryID, core.ErrUnknownCategory)
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	inserted, err := r.queries.InsertTransaction(ctx, InsertTransactionParams{
		ID:         tx.ID,
		Kind:       string(tx.Kind),
		CategoryID: tx.CategoryID,
		Amount:     tx.Amount.Minor,
		OccurredOn: tx.Date.ISO(),
		Note:       tx.Note,
	})
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	if inserted {
		slog.InfoContext(ctx, "Transaction saved to SQLite",
			"id", tx.ID,
			"kind", tx.Kind,
			"category", tx.CategoryID,
			"amount", tx.Amount.Minor,
			"date", tx.Date.ISO())
	} else {
		slog.DebugContext(ctx, "Transaction already stored", "id", tx.ID)
	}
	return tx.ID, nil
}

// ListCategories implements ledger.CategoryLister
func (r *SQLiteRepository) ListCategories(ctx context.Context, kind core.Kind) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return toCategories(rows), nil
}

// CategoryTotals implements ledger.TotalsReader
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, kind core.Kind, rng core.DateRange) ([]core.Category, error) {
	rows, err := r.queries.CategoryTotals(ctx, CategoryTotalsParams{
		Kind: string(kind),
		From: rng.From.ISO(),
		To:   rng.To.ISO(),
	})
	if err != nil {
		return nil, fmt.Errorf("category totals (kind=%s, %s..%s): %w", kind, rng.From.ISO(), rng.To.ISO(), err)
	}
	return toCategories(rows), nil
}

// Balance implements ledger.BalanceReader
func (r *SQLiteRepository) Balance(ctx context.Context) (core.Money, error) {
	net, err := r.queries.Balance(ctx)
	if err != nil {
		return core.Money{}, fmt.Errorf("balance: %w", err)
	}
	return r.opening.Add(core.Money{Minor: net}), nil
}

// CountTransactions returns how many transactions are stored.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	n, err := r.queries.CountTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func toCategories(rows []CategoryRow) []core.Category {
	out := make([]core.Category, len(rows))
	for i, row := range rows {
		out[i] = core.Category{
			ID:     row.ID,
			Name:   row.Name,
			Kind:   core.Kind(row.Kind),
			Amount: core.Money{Minor: row.Amount},
			Color:  row.Color,
			Icon:   row.Icon,
		}
	}
	return out
}
