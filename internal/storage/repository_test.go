package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"chitieu/internal/core"
)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "chitieu.db"), core.Money{Minor: 2_708_000})
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	v1, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	v2, err := RunMigrations(path)
	if err != nil || v1 != v2 || v1 != 2 {
		t.Fatalf("expected version 2 twice, got %d then %d (err=%v)", v1, v2, err)
	}
}

func TestCategoryTotalsKeepCatalogueOrder(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	week, _ := core.PeriodWeek.Bounds(core.NewDate(2025, 9, 24))

	for _, tx := range []core.Transaction{
		{Kind: core.Expense, CategoryID: "4g", Amount: core.Money{Minor: 10_000}, Date: core.NewDate(2025, 9, 22)},
		{Kind: core.Expense, CategoryID: "khac", Amount: core.Money{Minor: 100_000}, Date: core.NewDate(2025, 9, 28)},
		{Kind: core.Expense, CategoryID: "khac", Amount: core.Money{Minor: 57_000}, Date: core.NewDate(2025, 9, 24)},
		{Kind: core.Expense, CategoryID: "khac", Amount: core.Money{Minor: 99_000}, Date: core.NewDate(2025, 9, 29)},
	} {
		if _, err := repo.Record(ctx, tx); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	totals, err := repo.CategoryTotals(ctx, core.Expense, week)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	wantIDs := []string{"khac", "4g", "an-uong", "di-chuyen", "giai-tri"}
	wantAmounts := []int64{157_000, 10_000, 0, 0, 0}
	if len(totals) != len(wantIDs) {
		t.Fatalf("expected %d rows, got %d", len(wantIDs), len(totals))
	}
	for i := range wantIDs {
		if totals[i].ID != wantIDs[i] || totals[i].Amount.Minor != wantAmounts[i] {
			t.Fatalf("row %d: got %s=%d", i, totals[i].ID, totals[i].Amount.Minor)
		}
	}
	if totals[0].Icon != "❓" || totals[3].DisplayIcon() != core.DefaultIcon {
		t.Fatalf("icons not carried: %+v", totals)
	}

	bal, err := repo.Balance(ctx)
	if err != nil || bal.Minor != 2_708_000-266_000 {
		t.Fatalf("unexpected balance %d (err=%v)", bal.Minor, err)
	}
}

func TestRecordIsIdempotentByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	tx := core.Transaction{ID: "msg-1", Kind: core.Income, CategoryID: "luong", Amount: core.Money{Minor: 5}, Date: core.NewDate(2025, 9, 1)}
	for i := 0; i < 2; i++ {
		ref, err := repo.Record(ctx, tx)
		if err != nil || ref != "msg-1" {
			t.Fatalf("attempt %d: ref=%q err=%v", i, ref, err)
		}
	}
	if n, _ := repo.CountTransactions(ctx); n != 1 {
		t.Fatalf("expected one stored transaction, got %d", n)
	}
}

func TestRecordRejectsUnknownCategory(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.Record(context.Background(), core.Transaction{Kind: core.Income, CategoryID: "khac", Amount: core.Money{Minor: 5}, Date: core.NewDate(2025, 9, 1)})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	ref, err := repo.Record(context.Background(), core.Transaction{Kind: core.Expense, CategoryID: "khac", Amount: core.Money{Minor: 5}, Date: core.NewDate(2025, 9, 1)})
	if err != nil || ref == "" {
		t.Fatalf("expected generated id, got %q err=%v", ref, err)
	}
}

func TestListCategories(t *testing.T) {
	repo := newRepo(t)
	cats, err := repo.ListCategories(context.Background(), core.Income)
	if err != nil || len(cats) != 3 || cats[0].ID != "luong" {
		t.Fatalf("unexpected income catalogue: %+v err=%v", cats, err)
	}
}
