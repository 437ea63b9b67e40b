package calculation

import (
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlannedSchedule_Template(t *testing.T) {
	day := domain.DaySchedule{Enabled: true, Start: domain.MustClock("09:00"), End: domain.MustClock("18:00"), BreakMinutes: 60}
	contract := *testContract()
	contract.Schedule = domain.WeeklySchedule{Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day}
	holidays := domain.NewHolidaySet([]domain.Holiday{
		{Date: domain.MustDate("2024-04-25"), Name: "Dia da Liberdade", AffectsOvertime: true},
	})

	// Monday 22 April to Sunday 28 April
	days := BuildPlannedSchedule(contract, holidays, domain.MustDate("2024-04-22"), domain.MustDate("2024-04-28"))
	require.Len(t, days, 7)

	assert.True(t, days[0].PlannedHours.Equal(decimal.NewFromInt(8)))
	assert.True(t, days[3].IsHoliday)
	assert.Equal(t, "Dia da Liberdade", days[3].HolidayName)
	assert.True(t, days[3].PlannedHours.IsZero())
	assert.True(t, days[5].PlannedHours.IsZero(), "Saturday is not scheduled")
	assert.True(t, PlannedTotal(days).Equal(decimal.NewFromInt(32)))
}

func TestBuildPlannedSchedule_EvenSpread(t *testing.T) {
	contract := *testContract() // 40h a week, no template

	days := BuildPlannedSchedule(contract, domain.HolidaySet{}, domain.MustDate("2024-01-01"), domain.MustDate("2024-01-07"))
	require.Len(t, days, 7)
	for _, d := range days {
		assert.True(t, d.PlannedHours.Equal(hours("5.7143")), "%s: %s", d.Date, d.PlannedHours)
	}
}

func TestBuildPlannedSchedule_EmptyRange(t *testing.T) {
	contract := *testContract()
	assert.Nil(t, BuildPlannedSchedule(contract, domain.HolidaySet{}, domain.MustDate("2024-01-07"), domain.MustDate("2024-01-01")))
	assert.Nil(t, BuildPlannedSchedule(contract, domain.HolidaySet{}, domain.Date{}, domain.MustDate("2024-01-01")))

	days := BuildPlannedSchedule(contract, domain.HolidaySet{}, domain.MustDate("2024-01-01"), domain.MustDate("2024-01-01"))
	assert.Len(t, days, 1, "a single day range is inclusive")
}
