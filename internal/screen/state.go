// Package screen holds the dashboard's selection state and navigation.
package screen

import (
	"fmt"

	"chitieu/internal/core"
)

// State is the screen's local selection. Each field is replaced
// independently; the last selection wins.
type State struct {
	Kind   core.Kind
	Period core.Period
	Date   core.Date
	// Custom holds explicit bounds for core.PeriodRange.
	Custom core.DateRange
}

// NewState returns the initial selection: expenses, this week, today.
func NewState(today core.Date) State {
	return State{Kind: core.Expense, Period: core.PeriodWeek, Date: today}
}

func (s State) WithKind(k core.Kind) State {
	s.Kind = k
	return s
}

func (s State) WithPeriod(p core.Period) State {
	s.Period = p
	return s
}

func (s State) WithDate(d core.Date) State {
	s.Date = core.DateOf(d.Time)
	return s
}

// WithRange selects a custom range and switches to core.PeriodRange.
func (s State) WithRange(r core.DateRange) State {
	s.Custom = r
	s.Period = core.PeriodRange
	return s
}

// Range resolves the span covered by the current selection.
func (s State) Range() (core.DateRange, error) {
	if s.Period == core.PeriodRange {
		if s.Custom.From.IsZero() || s.Custom.To.IsZero() {
			return core.DateRange{}, fmt.Errorf("custom range without bounds: %w", core.ErrInvalidPeriod)
		}
		return s.Custom, nil
	}
	return s.Period.Bounds(s.Date)
}

// DateLabel renders the date line under the period tabs, prefixing
// "Hôm nay" when the selected date is today.
func (s State) DateLabel(today core.Date) string {
	return FormatDate(s.Date, today)
}

// FormatDate renders d as "<day> tháng <month>".
func FormatDate(d, today core.Date) string {
	formatted := fmt.Sprintf("%d tháng %d", d.Day(), d.Month())
	if d.SameDay(today) {
		return "Hôm nay, " + formatted
	}
	return formatted
}
