package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodRange Period = "range"
)

type (
	// Period is the granularity picked in the period tabs.
	Period string

	// DateRange is an inclusive span of calendar days.
	DateRange struct {
		From Date
		To   Date
	}
)

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrEmptyRange    = errors.New("range end is before its start")
)

// Periods lists the period tabs in display order.
func Periods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodRange}
}

func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodWeek, nil
	}
	for _, p := range Periods() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrInvalidPeriod
}

// Label returns the tab caption.
func (p Period) Label() string {
	switch p {
	case PeriodDay:
		return "Ngày"
	case PeriodWeek:
		return "Tuần"
	case PeriodMonth:
		return "Tháng"
	case PeriodYear:
		return "Năm"
	case PeriodRange:
		return "Khoảng thời gian"
	}
	return string(p)
}

// Bounds returns the span of p that contains anchor. Weeks start on Monday.
// PeriodRange has no implicit bounds; use NewDateRange for it.
func (p Period) Bounds(anchor Date) (DateRange, error) {
	a := DateOf(anchor.Time)
	switch p {
	case PeriodDay:
		return DateRange{From: a, To: a}, nil
	case PeriodWeek:
		offset := (int(a.Weekday()) + 6) % 7
		from := Date{Time: a.AddDate(0, 0, -offset)}
		return DateRange{From: from, To: Date{Time: from.AddDate(0, 0, 6)}}, nil
	case PeriodMonth:
		from := NewDate(a.Year(), int(a.Month()), 1)
		return DateRange{From: from, To: Date{Time: from.AddDate(0, 1, -1)}}, nil
	case PeriodYear:
		return DateRange{From: NewDate(a.Year(), 1, 1), To: NewDate(a.Year(), 12, 31)}, nil
	}
	return DateRange{}, fmt.Errorf("bounds for %q: %w", p, ErrInvalidPeriod)
}

func NewDateRange(from, to Date) (DateRange, error) {
	from, to = DateOf(from.Time), DateOf(to.Time)
	if to.Before(from.Time) {
		return DateRange{}, ErrEmptyRange
	}
	return DateRange{From: from, To: to}, nil
}

// Contains reports whether d falls inside the range, bounds included.
func (r DateRange) Contains(d Date) bool {
	d = DateOf(d.Time)
	return !d.Before(r.From.Time) && !d.After(r.To.Time)
}

// RangeLabel renders the span the way the period header shows it,
// e.g. "22 thg 9 - 28 thg 9".
func RangeLabel(p Period, r DateRange) string {
	switch p {
	case PeriodDay:
		return shortDay(r.From, false)
	case PeriodMonth:
		return fmt.Sprintf("tháng %d, %d", r.From.Month(), r.From.Year())
	case PeriodYear:
		return fmt.Sprintf("năm %d", r.From.Year())
	}
	if r.From.SameDay(r.To) {
		return shortDay(r.From, false)
	}
	withYear := r.From.Year() != r.To.Year()
	return shortDay(r.From, withYear) + " - " + shortDay(r.To, withYear)
}

func shortDay(d Date, withYear bool) string {
	s := fmt.Sprintf("%d thg %d", d.Day(), d.Month())
	if withYear {
		s += fmt.Sprintf(", %d", d.Year())
	}
	return s
}

// Today returns the current calendar day in the local zone.
func Today() Date {
	return DateOf(time.Now())
}
