package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// DefaultIcon is shown for categories without a glyph.
const DefaultIcon = "•"

type (
	Kind string

	Date struct {
		time.Time
	}

	// Money holds an amount in minor currency units (đồng).
	Money struct {
		Minor int64
	}

	Category struct {
		ID     string
		Name   string
		Kind   Kind
		Amount Money
		Color  string
		Icon   string // optional glyph
	}

	Transaction struct {
		ID         string
		Kind       Kind
		CategoryID string
		Amount     Money
		Date       Date
		Note       string
	}

	// Summary is what the dashboard shows for one kind over one period.
	Summary struct {
		Kind            Kind
		Period          Period
		Range           DateRange
		TotalAll        Money
		TotalThisPeriod Money
		RangeLabel      string
		Items           []Category
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid kind")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoteTooLong     = errors.New("note too long (max 200 characters)")
)

// ParseKind accepts the canonical names and the tab labels.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Expense), "chi phí", "chi-phi":
		return Expense, nil
	case string(Income), "thu nhập", "thu-nhap":
		return Income, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	}
	return ErrInvalidKind
}

// Label returns the tab caption.
func (k Kind) Label() string {
	if k == Income {
		return "THU NHẬP"
	}
	return "CHI PHÍ"
}

// Kinds lists the tabs in display order.
func Kinds() []Kind {
	return []Kind{Expense, Income}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// DisplayIcon returns the icon or the default marker.
func (c Category) DisplayIcon() string {
	if c.Icon == "" {
		return DefaultIcon
	}
	return c.Icon
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Note) > 200 {
		return ErrNoteTooLong
	}
	return nil
}
