package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chitieu/internal/amqp"
	"chitieu/internal/cache"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
	"chitieu/internal/ledger/memory"
	"chitieu/internal/screen"
)

var today = core.NewDate(2025, 10, 1)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.NewFromSeed("", today)
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

// countingStore counts CategoryTotals calls.
type countingStore struct {
	ledger.Store
	totals atomic.Int32
	err    error
}

func (c *countingStore) CategoryTotals(ctx context.Context, k core.Kind, r core.DateRange) ([]core.Category, error) {
	c.totals.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Store.CategoryTotals(ctx, k, r)
}

func TestSummaryDefaultScreen(t *testing.T) {
	svc := NewSummaryService(newStore(t), nil)

	sum, err := svc.Summary(context.Background(), screen.NewState(today))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalAll.String() != "2.541.000 đ" {
		t.Errorf("TotalAll = %s", sum.TotalAll)
	}
	if sum.TotalThisPeriod.Minor != 167_000 {
		t.Errorf("TotalThisPeriod = %d", sum.TotalThisPeriod.Minor)
	}
	if sum.RangeLabel != "29 thg 9 - 5 thg 10" {
		t.Errorf("RangeLabel = %q", sum.RangeLabel)
	}
	var ids []string
	for _, c := range sum.Items {
		ids = append(ids, c.ID)
	}
	if got := strings.Join(ids, ","); got != "khac,4g,an-uong,di-chuyen,giai-tri" {
		t.Errorf("items = %s", got)
	}
}

func TestSummaryIncomeTab(t *testing.T) {
	svc := NewSummaryService(newStore(t), nil)
	st := screen.NewState(today).WithKind(core.Income).WithPeriod(core.PeriodMonth)

	sum, err := svc.Summary(context.Background(), st)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalThisPeriod.Minor != 0 || len(sum.Items) != 3 {
		t.Errorf("unexpected income summary %+v", sum)
	}
	if sum.RangeLabel != "tháng 10, 2025" {
		t.Errorf("RangeLabel = %q", sum.RangeLabel)
	}
}

func TestSummaryErrors(t *testing.T) {
	svc := NewSummaryService(newStore(t), nil)
	ctx := context.Background()

	st := screen.NewState(today).WithPeriod(core.PeriodRange)
	if _, err := svc.Summary(ctx, st); !errors.Is(err, core.ErrInvalidPeriod) {
		t.Errorf("range without bounds: got %v", err)
	}
	if _, err := svc.Summary(ctx, screen.NewState(today).WithKind("loan")); !errors.Is(err, core.ErrInvalidKind) {
		t.Errorf("bad kind: got %v", err)
	}

	boom := errors.New("disk I/O error")
	failing := NewSummaryService(&countingStore{Store: newStore(t), err: boom}, nil)
	if _, err := failing.Summary(ctx, screen.NewState(today)); !errors.Is(err, boom) {
		t.Errorf("store failure should propagate, got %v", err)
	}
}

func TestSummaryCacheAndInvalidate(t *testing.T) {
	store := &countingStore{Store: newStore(t)}
	summaries := NewSummaryService(store, cache.NewLRUCache[core.Summary](8, time.Minute))
	txs := NewTransactionService(store, nil, summaries)
	ctx := context.Background()
	st := screen.NewState(today)

	for i := 0; i < 3; i++ {
		if _, err := summaries.Summary(ctx, st); err != nil {
			t.Fatal(err)
		}
	}
	if n := store.totals.Load(); n != 1 {
		t.Fatalf("store read %d times, want 1", n)
	}

	_, err := txs.Record(ctx, core.Transaction{Kind: core.Expense, CategoryID: "an-uong", Amount: core.Money{Minor: 45_000}, Date: today})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	sum, err := summaries.Summary(ctx, st)
	if err != nil {
		t.Fatal(err)
	}
	if store.totals.Load() != 2 || sum.TotalThisPeriod.Minor != 212_000 {
		t.Errorf("cache not invalidated: reads=%d total=%d", store.totals.Load(), sum.TotalThisPeriod.Minor)
	}
	if sum.TotalAll.Minor != 2_496_000 {
		t.Errorf("TotalAll = %d", sum.TotalAll.Minor)
	}
}

type fakePublisher struct {
	msgs []*amqp.TransactionRecordedMessage
	err  error
}

func (f *fakePublisher) PublishTransactionRecorded(_ context.Context, m *amqp.TransactionRecordedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func TestRecordValidation(t *testing.T) {
	svc := NewTransactionService(newStore(t), nil, nil)
	ctx := context.Background()
	base := core.Transaction{Kind: core.Expense, CategoryID: "khac", Amount: core.Money{Minor: 1000}, Date: today}

	tests := []struct {
		name string
		mod  func(*core.Transaction)
		want error
	}{
		{"zero amount", func(tx *core.Transaction) { tx.Amount = core.Money{} }, core.ErrInvalidAmount},
		{"no category", func(tx *core.Transaction) { tx.CategoryID = " " }, core.ErrEmptyCategory},
		{"unknown category", func(tx *core.Transaction) { tx.CategoryID = "xang" }, core.ErrUnknownCategory},
		{"category of other kind", func(tx *core.Transaction) { tx.CategoryID = "luong" }, core.ErrUnknownCategory},
		{"bad kind", func(tx *core.Transaction) { tx.Kind = "loan" }, core.ErrInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := base
			tt.mod(&tx)
			if _, err := svc.Record(ctx, tx); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	ref, err := svc.Record(ctx, base)
	if err != nil || !strings.HasPrefix(ref, "mem:") {
		t.Errorf("direct write: ref=%q err=%v", ref, err)
	}
}

func TestRecordThroughPublisher(t *testing.T) {
	store := newStore(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub, nil)
	tx := core.Transaction{Kind: core.Income, CategoryID: "luong", Amount: core.Money{Minor: 9_000_000}, Date: today}

	ref, err := svc.Record(context.Background(), tx)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(pub.msgs) != 1 || ref != "queued:"+pub.msgs[0].ID {
		t.Fatalf("ref=%q msgs=%d", ref, len(pub.msgs))
	}
	bal, _ := store.Balance(context.Background())
	if bal.Minor != 2_541_000 {
		t.Errorf("queued transaction must not be written directly, balance=%d", bal.Minor)
	}
}

func TestRecordFallsBackWhenPublishFails(t *testing.T) {
	store := newStore(t)
	svc := NewTransactionService(store, &fakePublisher{err: amqp.ErrCircuitOpen}, nil)
	tx := core.Transaction{Kind: core.Income, CategoryID: "thuong", Amount: core.Money{Minor: 500_000}, Date: today}

	ref, err := svc.Record(context.Background(), tx)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if strings.HasPrefix(ref, "queued:") || ref == "" {
		t.Errorf("expected direct ref, got %q", ref)
	}
	bal, _ := store.Balance(context.Background())
	if bal.Minor != 3_041_000 {
		t.Errorf("balance = %d", bal.Minor)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseJoinsErrors(t *testing.T) {
	svc := NewTransactionService(nil, nil, nil)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close with nothing registered: %v", err)
	}
	boom := errors.New("boom")
	svc.OnClose(closerFunc(func() error { return nil }), closerFunc(func() error { return boom }))
	if err := svc.Close(); !errors.Is(err, boom) {
		t.Errorf("Close = %v", err)
	}
}
