// Package services composes the ledger ports into what the dashboard reads
// and writes.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"chitieu/internal/cache"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
	"chitieu/internal/screen"
)

// SummaryService builds the dashboard summary for a selection.
type SummaryService struct {
	store ledger.Store
	cache cache.Cache[core.Summary]
}

// NewSummaryService wires store and an optional cache.
func NewSummaryService(store ledger.Store, c cache.Cache[core.Summary]) *SummaryService {
	return &SummaryService{store: store, cache: c}
}

// Summary returns the totals for the kind and period in st. Per-category
// amounts and the balance are read concurrently.
func (s *SummaryService) Summary(ctx context.Context, st screen.State) (core.Summary, error) {
	if err := st.Kind.Validate(); err != nil {
		return core.Summary{}, err
	}
	r, err := st.Range()
	if err != nil {
		return core.Summary{}, err
	}

	key := cacheKey(st.Kind, st.Period, r)
	if s.cache != nil {
		if sum, ok := s.cache.Get(key); ok {
			slog.DebugContext(ctx, "Summary cache hit", "key", key)
			return sum, nil
		}
	}

	var (
		items   []core.Category
		balance core.Money
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.CategoryTotals(gctx, st.Kind, r)
		if err != nil {
			return fmt.Errorf("category totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		balance, err = s.store.Balance(gctx)
		if err != nil {
			return fmt.Errorf("balance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}

	var total core.Money
	for _, c := range items {
		total = total.Add(c.Amount)
	}
	sum := core.Summary{
		Kind:            st.Kind,
		Period:          st.Period,
		Range:           r,
		TotalAll:        balance,
		TotalThisPeriod: total,
		RangeLabel:      core.RangeLabel(st.Period, r),
		Items:           items,
	}
	if s.cache != nil {
		s.cache.Set(key, sum)
	}
	return sum, nil
}

// Invalidate drops every cached summary.
func (s *SummaryService) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func cacheKey(k core.Kind, p core.Period, r core.DateRange) string {
	return fmt.Sprintf("%s|%s|%s|%s", k, p, r.From.ISO(), r.To.ISO())
}
