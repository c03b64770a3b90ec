package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chitieu/internal/core"
)

// Palette shared by the default categories.
const (
	ColorGreen     = "#5b806a"
	ColorGreenDark = "#476555"
	ColorRed       = "#e84a43"
	ColorBlue      = "#5aaad6"
	ColorYellow    = "#f7c234"
)

type (
	// Seed is the YAML layout of a seed file.
	Seed struct {
		OpeningBalance int64          `yaml:"opening_balance"`
		Categories     []SeedCategory `yaml:"categories"`
		Transactions   []SeedTx       `yaml:"transactions"`
	}

	SeedCategory struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Kind  string `yaml:"kind"`
		Color string `yaml:"color"`
		Icon  string `yaml:"icon,omitempty"`
	}

	// SeedTx dates are either absolute (date) or relative to today (days_ago).
	SeedTx struct {
		Kind     string `yaml:"kind"`
		Category string `yaml:"category"`
		Amount   int64  `yaml:"amount"`
		Date     string `yaml:"date,omitempty"`
		DaysAgo  int    `yaml:"days_ago,omitempty"`
		Note     string `yaml:"note,omitempty"`
	}
)

// DefaultSeed reproduces the mock dashboard: 167.000 đ spent this week out of
// a 2.541.000 đ balance.
func DefaultSeed() Seed {
	return Seed{
		OpeningBalance: 2_708_000,
		Categories: []SeedCategory{
			{ID: "khac", Name: "Khác", Kind: "expense", Color: ColorRed, Icon: "❓"},
			{ID: "4g", Name: "4G", Kind: "expense", Color: ColorBlue, Icon: "🌐"},
			{ID: "an-uong", Name: "Ăn uống", Kind: "expense", Color: ColorGreen, Icon: "🍔"},
			{ID: "di-chuyen", Name: "Di chuyển", Kind: "expense", Color: ColorGreenDark},
			{ID: "giai-tri", Name: "Giải trí", Kind: "expense", Color: ColorYellow},
			{ID: "luong", Name: "Lương", Kind: "income", Color: ColorGreen, Icon: "💰"},
			{ID: "thuong", Name: "Thưởng", Kind: "income", Color: ColorYellow, Icon: "🎁"},
			{ID: "thu-khac", Name: "Thu nhập khác", Kind: "income", Color: ColorBlue},
		},
		Transactions: []SeedTx{
			{Kind: "expense", Category: "khac", Amount: 157_000},
			{Kind: "expense", Category: "4g", Amount: 10_000},
		},
	}
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return s, nil
}

// Build converts the seed into domain values, resolving relative dates
// against today.
func (s Seed) Build(today core.Date) (core.Money, []core.Category, []core.Transaction, error) {
	cats := make([]core.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		kind, err := core.ParseKind(c.Kind)
		if err != nil {
			return core.Money{}, nil, nil, fmt.Errorf("category %q: %w", c.ID, err)
		}
		cats = append(cats, core.Category{ID: c.ID, Name: c.Name, Kind: kind, Color: c.Color, Icon: c.Icon})
	}

	known := make(map[string]bool, len(cats))
	for _, c := range cats {
		known[string(c.Kind)+"/"+c.ID] = true
	}

	txs := make([]core.Transaction, 0, len(s.Transactions))
	for i, t := range s.Transactions {
		kind, err := core.ParseKind(t.Kind)
		if err != nil {
			return core.Money{}, nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		date := core.Date{Time: today.AddDate(0, 0, -t.DaysAgo)}
		if t.Date != "" {
			if date, err = core.ParseDate(t.Date); err != nil {
				return core.Money{}, nil, nil, fmt.Errorf("transaction %d date: %w", i, err)
			}
		}
		tx := core.Transaction{
			Kind:       kind,
			CategoryID: t.Category,
			Amount:     core.Money{Minor: t.Amount},
			Date:       date,
			Note:       t.Note,
		}
		if err := tx.Validate(); err != nil {
			return core.Money{}, nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		if !known[string(kind)+"/"+t.Category] {
			return core.Money{}, nil, nil, fmt.Errorf("transaction %d %s %q: %w", i, kind, t.Category, core.ErrUnknownCategory)
		}
		txs = append(txs, tx)
	}
	return core.Money{Minor: s.OpeningBalance}, cats, txs, nil
}

// NewFromSeed builds a store from a seed file, falling back to DefaultSeed
// when path is empty.
func NewFromSeed(path string, today core.Date) (*Store, error) {
	seed := DefaultSeed()
	if path != "" {
		var err error
		if seed, err = LoadSeed(path); err != nil {
			return nil, err
		}
	}
	opening, cats, txs, err := seed.Build(today)
	if err != nil {
		return nil, err
	}
	return New(opening, cats, txs), nil
}
