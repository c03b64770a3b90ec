// Package core provides money parsing and handling utilities.
//
// Amounts are kept in whole đồng; the dong has no minor unit in practice, so
// decimal input with a non-zero fraction is rejected rather than rounded.
package core

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// groupedThousands matches vi-VN grouping such as "2.541.000".
var groupedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParseAmount converts user input to Money.
//
// It accepts plain integers ("157000"), vi-VN grouping ("157.000"), a trailing
// currency marker ("157.000 đ") and decimals with a zero fraction ("10,0").
// Zero, negative and fractional amounts are rejected.
//
// Examples:
//
//	ParseAmount("157000")    -> {157000}, nil
//	ParseAmount("2.541.000") -> {2541000}, nil
//	ParseAmount("12.5")      -> {}, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "đ"), "VND"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if groupedThousands.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if !d.IsInteger() || !d.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	if d.GreaterThan(decimal.NewFromInt(maxAmount)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Minor: d.IntPart()}, nil
}

// maxAmount keeps sums of many amounts well inside int64.
const maxAmount = 1 << 50

func (m Money) Validate() error {
	if m.Minor <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money {
	return Money{Minor: m.Minor + o.Minor}
}

func (m Money) Sub(o Money) Money {
	return Money{Minor: m.Minor - o.Minor}
}

// String formats the amount the way vi-VN locales do, e.g. "2.541.000 đ".
func (m Money) String() string {
	return FormatVND(m.Minor)
}

// FormatVND groups thousands with dots and appends the currency sign.
func FormatVND(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	b.WriteString(" đ")
	return b.String()
}
