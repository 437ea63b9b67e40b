package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// PlannedDay is one row of a planned schedule
type PlannedDay struct {
	Date         domain.Date     `json:"date"`
	PlannedHours decimal.Decimal `json:"planned_hours"`
	IsHoliday    bool            `json:"is_holiday"`
	HolidayName  string          `json:"holiday_name,omitempty"`
}

// BuildPlannedSchedule returns one planned day for every date from..to inclusive.
// Hours come from the contract's weekday template when any day is enabled, otherwise
// the weekly hours are spread evenly across seven days. Holidays plan zero hours.
func BuildPlannedSchedule(contract domain.Contract, holidays domain.HolidaySet, from, to domain.Date) []PlannedDay {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil
	}

	useTemplate := contract.Schedule.HasEnabledDays()
	evenHours := contract.WeeklyHours.DivRound(decimal.NewFromInt(7), 4)

	var days []PlannedDay
	for d := from; !d.After(to); d = d.AddDays(1) {
		day := PlannedDay{Date: d}
		if h, ok := holidays.Lookup(d); ok {
			day.IsHoliday = true
			day.HolidayName = h.Name
			day.PlannedHours = decimal.Zero
		} else if useTemplate {
			day.PlannedHours = domain.MinutesToHours(contract.Schedule.Day(d.Weekday()).PlannedMinutes())
		} else {
			day.PlannedHours = evenHours
		}
		days = append(days, day)
	}
	return days
}

// PlannedTotal sums the planned hours of a schedule
func PlannedTotal(days []PlannedDay) decimal.Decimal {
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(d.PlannedHours)
	}
	return total
}
