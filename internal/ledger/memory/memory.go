package memory

import (
	"context"
	"fmt"
	"sync"

	"chitieu/internal/core"
)

type Store struct {
	mu      sync.Mutex
	opening core.Money
	cats    []core.Category
	items   []core.Transaction
}

func New(opening core.Money, cats []core.Category, items []core.Transaction) *Store {
	return &Store{opening: opening, cats: dedupe(cats), items: append([]core.Transaction(nil), items...)}
}

// Record stores the transaction and returns a synthetic reference.
func (s *Store) Record(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCategory(tx.Kind, tx.CategoryID) {
		return "", fmt.Errorf("%s %q: %w", tx.Kind, tx.CategoryID, core.ErrUnknownCategory)
	}
	s.items = append(s.items, tx)
	ref := fmt.Sprintf("mem:%d", len(s.items))
	if tx.ID != "" {
		ref = tx.ID
	}
	return ref, nil
}

// ListCategories returns the catalogue for kind with zero amounts.
func (s *Store) ListCategories(_ context.Context, kind core.Kind) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Category
	for _, c := range s.cats {
		if c.Kind == kind {
			c.Amount = core.Money{}
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CategoryTotals(_ context.Context, kind core.Kind, r core.DateRange) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := map[string]int{}
	var out []core.Category
	for _, c := range s.cats {
		if c.Kind != kind {
			continue
		}
		c.Amount = core.Money{}
		idx[c.ID] = len(out)
		out = append(out, c)
	}
	for _, tx := range s.items {
		if tx.Kind != kind || !r.Contains(tx.Date) {
			continue
		}
		if i, ok := idx[tx.CategoryID]; ok {
			out[i].Amount = out[i].Amount.Add(tx.Amount)
		}
	}
	return out, nil
}

// Balance is the opening balance plus income minus expenses.
func (s *Store) Balance(_ context.Context) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal := s.opening
	for _, tx := range s.items {
		if tx.Kind == core.Income {
			bal = bal.Add(tx.Amount)
		} else {
			bal = bal.Sub(tx.Amount)
		}
	}
	return bal, nil
}

func (s *Store) hasCategory(kind core.Kind, id string) bool {
	for _, c := range s.cats {
		if c.Kind == kind && c.ID == id {
			return true
		}
	}
	return false
}

// dedupe keeps the first category per (kind, id), preserving input order.
func dedupe(in []core.Category) []core.Category {
	seen := map[string]struct{}{}
	out := make([]core.Category, 0, len(in))
	for _, c := range in {
		key := string(c.Kind) + "/" + c.ID
		if c.ID == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
