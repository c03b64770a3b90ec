package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"chitieu/internal/core"
	"chitieu/internal/screen"
)

var errBadQuery = errors.New("invalid query")

// parseState reads the dashboard selection from query values. Missing values
// fall back to the initial screen; a custom range without bounds starts from
// the week around the selected date.
func parseState(q url.Values, today core.Date) (screen.State, error) {
	st := screen.NewState(today)

	kind, err := core.ParseKind(q.Get("kind"))
	if err != nil {
		return st, err
	}
	period, err := core.ParsePeriod(q.Get("period"))
	if err != nil {
		return st, err
	}
	st = st.WithKind(kind).WithPeriod(period)

	if v := strings.TrimSpace(q.Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return st, fmt.Errorf("date %q: %w", v, errBadQuery)
		}
		st = st.WithDate(d)
	}

	if period == core.PeriodRange {
		r, err := parseRange(q, st.Date)
		if err != nil {
			return st, err
		}
		st = st.WithRange(r)
	}
	return st, nil
}

func parseRange(q url.Values, anchor core.Date) (core.DateRange, error) {
	week, _ := core.PeriodWeek.Bounds(anchor)
	from, to := week.From, week.To
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.DateRange{}, fmt.Errorf("from %q: %w", v, errBadQuery)
		}
		from = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.DateRange{}, fmt.Errorf("to %q: %w", v, errBadQuery)
		}
		to = d
	}
	return core.NewDateRange(from, to)
}

// stateQuery encodes st so that parseState(stateQuery(st)) == st.
func stateQuery(st screen.State) url.Values {
	q := url.Values{}
	q.Set("kind", string(st.Kind))
	q.Set("period", string(st.Period))
	q.Set("date", st.Date.ISO())
	if st.Period == core.PeriodRange {
		q.Set("from", st.Custom.From.ISO())
		q.Set("to", st.Custom.To.ISO())
	}
	return q
}

func stateHref(path string, st screen.State, extra url.Values) string {
	q := stateQuery(st)
	for k, vs := range extra {
		q[k] = vs
	}
	return path + "?" + q.Encode()
}

// transactionForm is the FAB form as submitted.
type transactionForm struct {
	Kind       string
	CategoryID string
	Amount     string
	Date       string
	Note       string
}

func readTransactionForm(form url.Values) transactionForm {
	return transactionForm{
		Kind:       sanitizeInput(form.Get("kind")),
		CategoryID: sanitizeInput(form.Get("category")),
		Amount:     sanitizeInput(form.Get("amount")),
		Date:       sanitizeInput(form.Get("date")),
		Note:       sanitizeInput(form.Get("note")),
	}
}

// Transaction validates the submitted fields; an empty date means today.
func (f transactionForm) Transaction(today core.Date) (core.Transaction, error) {
	kind, err := core.ParseKind(f.Kind)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date := today
	if f.Date != "" {
		if date, err = core.ParseDate(f.Date); err != nil {
			return core.Transaction{}, fmt.Errorf("date %q: %w", f.Date, errInvalidDate)
		}
	}
	tx := core.Transaction{
		Kind:       kind,
		CategoryID: f.CategoryID,
		Amount:     amount,
		Date:       date,
		Note:       f.Note,
	}
	return tx, tx.Validate()
}

var errInvalidDate = errors.New("invalid date")

// safeReturn accepts only local absolute paths.
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/"
	}
	return target
}

// sanitizeInput trims and drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
