package ledger

import (
	"context"

	"chitieu/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		Record(ctx context.Context, tx core.Transaction) (ref string, err error)
	}

	// CategoryLister returns the category catalogue for a kind, in display order.
	CategoryLister interface {
		ListCategories(ctx context.Context, kind core.Kind) ([]core.Category, error)
	}

	// TotalsReader aggregates amounts per category.
	TotalsReader interface {
		// CategoryTotals returns every category of kind, in catalogue order,
		// with Amount set to its total inside r. Idle categories carry zero.
		CategoryTotals(ctx context.Context, kind core.Kind, r core.DateRange) ([]core.Category, error)
	}

	// BalanceReader reports the all-time account balance.
	BalanceReader interface {
		Balance(ctx context.Context) (core.Money, error)
	}

	Store interface {
		TransactionWriter
		CategoryLister
		TotalsReader
		BalanceReader
	}
)
