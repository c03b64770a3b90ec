package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chitieu/internal/core"
)

func TestNewStateDefaults(t *testing.T) {
	today := core.NewDate(2025, 10, 1)
	s := NewState(today)
	assert.Equal(t, core.Expense, s.Kind)
	assert.Equal(t, core.PeriodWeek, s.Period)
	assert.True(t, s.Date.SameDay(today))
}

func TestSelectionsAreIndependent(t *testing.T) {
	s := NewState(core.NewDate(2025, 10, 1))
	s2 := s.WithKind(core.Income).WithPeriod(core.PeriodMonth).WithDate(core.NewDate(2025, 9, 24))

	assert.Equal(t, core.Expense, s.Kind, "original value is untouched")
	assert.Equal(t, core.Income, s2.Kind)
	assert.Equal(t, core.PeriodMonth, s2.Period)

	r, err := s2.Range()
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", r.From.ISO())
	assert.Equal(t, "2025-09-30", r.To.ISO())

	s3 := s2.WithPeriod(core.PeriodDay)
	assert.Equal(t, core.Income, s3.Kind, "last write wins per field only")
}

func TestCustomRange(t *testing.T) {
	s := NewState(core.NewDate(2025, 10, 1)).WithPeriod(core.PeriodRange)
	_, err := s.Range()
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)

	span, err := core.NewDateRange(core.NewDate(2025, 9, 3), core.NewDate(2025, 9, 10))
	require.NoError(t, err)
	s = s.WithRange(span)
	r, err := s.Range()
	require.NoError(t, err)
	assert.Equal(t, span, r)
}

func TestDateLabel(t *testing.T) {
	today := core.NewDate(2025, 10, 1)
	assert.Equal(t, "Hôm nay, 1 tháng 10", NewState(today).DateLabel(today))
	assert.Equal(t, "24 tháng 9", NewState(core.NewDate(2025, 9, 24)).DateLabel(today))
	assert.Equal(t, "1 tháng 10", FormatDate(core.NewDate(2024, 10, 1), today), "same day last year is not today")
}

func TestDrawer(t *testing.T) {
	d := NewDrawer("", false)
	var nav Navigator = d
	assert.Equal(t, RouteMain, nav.CurrentRoute())

	nav.ToggleMenu()
	assert.True(t, d.Open())
	d.Navigate(RouteTaiKhoan)
	assert.False(t, d.Open())
	assert.Equal(t, RouteTaiKhoan, nav.CurrentRoute())
	assert.Equal(t, "/tai-khoan", RouteTaiKhoan.Path())
	assert.Equal(t, "Tài Khoản", RouteTaiKhoan.Title())
}
