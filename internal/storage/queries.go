package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type CategoryRow struct {
	ID     string
	Kind   string
	Name   string
	Color  string
	Icon   string
	Amount int64
}

const listCategories = `
SELECT id, kind, name, color, icon
FROM categories
WHERE kind = ?
ORDER BY position, id`

func (q *Queries) ListCategories(ctx context.Context, kind string) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryRow
	for rows.Next() {
		var i CategoryRow
		if err := rows.Scan(&i.ID, &i.Kind, &i.Name, &i.Color, &i.Icon); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const categoryTotals = `
SELECT c.id, c.kind, c.name, c.color, c.icon, COALESCE(SUM(t.amount), 0)
FROM categories c
LEFT JOIN transactions t
    ON t.kind = c.kind AND t.category_id = c.id AND t.occurred_on BETWEEN ? AND ?
WHERE c.kind = ?
GROUP BY c.kind, c.id
ORDER BY c.position, c.id`

type CategoryTotalsParams struct {
	Kind string
	From string
	To   string
}

func (q *Queries) CategoryTotals(ctx context.Context, arg CategoryTotalsParams) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, categoryTotals, arg.From, arg.To, arg.Kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategoryRow
	for rows.Next() {
		var i CategoryRow
		if err := rows.Scan(&i.ID, &i.Kind, &i.Name, &i.Color, &i.Icon, &i.Amount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const categoryExists = `SELECT COUNT(*) FROM categories WHERE kind = ? AND id = ?`

func (q *Queries) CategoryExists(ctx context.Context, kind, id string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, categoryExists, kind, id).Scan(&n)
	return n > 0, err
}

const insertTransaction = `
INSERT INTO transactions (id, kind, category_id, amount, occurred_on, note)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`

type InsertTransactionParams struct {
	ID         string
	Kind       string
	CategoryID string
	Amount     int64
	OccurredOn string
	Note       string
}

// InsertTransaction reports whether a row was written; an existing id is a no-op.
func (q *Queries) InsertTransaction(ctx context.Context, arg InsertTransactionParams) (bool, error) {
	res, err := q.db.ExecContext(ctx, insertTransaction,
		arg.ID, arg.Kind, arg.CategoryID, arg.Amount, arg.OccurredOn, arg.Note)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const balance = `
SELECT COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE -amount END), 0)
FROM transactions`

func (q *Queries) Balance(ctx context.Context) (int64, error) {
	var v int64
	err := q.db.QueryRowContext(ctx, balance).Scan(&v)
	return v, err
}

const countTransactions = `SELECT COUNT(*) FROM transactions`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactions).Scan(&n)
	return n, err
}
