package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

// weeksPerMonth is the average number of weeks in a month used to derive hourly rates
var weeksPerMonth = decimal.NewFromFloat(4.33)

// elapsedMinutes returns the minutes from start to end, rolling end over to the next
// day when it is at or before start.
func elapsedMinutes(start, end domain.ClockTime) int {
	span := end.Minutes() - start.Minutes()
	if span <= 0 {
		span += minutesPerDay
	}
	return span
}

func netMinutes(start, end domain.ClockTime, breakMinutes int) int {
	if breakMinutes < 0 {
		breakMinutes = 0
	}
	worked := elapsedMinutes(start, end) - breakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// HoursBetween returns the hours from start to end net of the break. An end at or before
// the start is taken as the next day. Negative breaks count as zero and the result is
// never negative.
func HoursBetween(start, end domain.ClockTime, breakMinutes int) decimal.Decimal {
	return domain.MinutesToHours(netMinutes(start, end, breakMinutes))
}

// WorkingMinutes returns the net worked minutes of an entry, or 0 when a time is missing
func WorkingMinutes(e domain.TimeEntry) int {
	if !e.HasTimes() {
		return 0
	}
	return netMinutes(e.Start, e.End, e.BreakMinutes)
}

// EntryValidation is the outcome of ValidateEntry
type EntryValidation struct {
	IsValid bool
	Errors  []error
}

// Err joins the validation errors, or returns nil when the entry is valid
func (v EntryValidation) Err() error {
	return errors.Join(v.Errors...)
}

// ValidateEntry checks an entry for well-formedness. Every error wraps one of the
// entry sentinels (ErrMissingDate, ErrZeroSpan, ...).
func ValidateEntry(e domain.TimeEntry, rules domain.StatutoryRules) EntryValidation {
	var errs []error
	label := e.Date.String()
	if e.Date.IsZero() {
		errs = append(errs, ErrMissingDate)
		label = "undated entry"
	}
	if !e.Start.IsSet() {
		errs = append(errs, fmt.Errorf("%s: %w", label, ErrMissingStartTime))
	}
	if !e.End.IsSet() {
		errs = append(errs, fmt.Errorf("%s: %w", label, ErrMissingEndTime))
	}
	if e.BreakMinutes < 0 {
		errs = append(errs, fmt.Errorf("%s: %d: %w", label, e.BreakMinutes, ErrNegativeBreak))
	}

	if e.HasTimes() {
		if e.Start.Minutes() == e.End.Minutes() {
			errs = append(errs, fmt.Errorf("%s %s-%s: %w", label, e.Start, e.End, ErrZeroSpan))
		} else {
			elapsed := elapsedMinutes(e.Start, e.End)
			if e.BreakMinutes > 0 && e.BreakMinutes >= elapsed {
				errs = append(errs, fmt.Errorf("%s: break of %d minutes in a %d minute shift: %w",
					label, e.BreakMinutes, elapsed, ErrBreakTooLong))
			}
			if limit := rules.MaxDailyWorkedMinutes(); limit > 0 && WorkingMinutes(e) > limit {
				errs = append(errs, fmt.Errorf("%s: %sh worked, limit %sh: %w",
					label, domain.MinutesToHours(WorkingMinutes(e)).StringFixed(2), rules.MaxDailyWorkedHours, ErrExceedsDailyMaximum))
			}
		}
	}

	return EntryValidation{IsValid: len(errs) == 0, Errors: errs}
}

// DeriveHourlyRate derives an hourly rate from a monthly salary and the weekly schedule:
// salary / 4.33 weeks / scheduled weekly hours. It returns 0 when nothing is scheduled.
func DeriveHourlyRate(baseSalary domain.Cents, schedule domain.WeeklySchedule) domain.Cents {
	weeklyMinutes := schedule.WeeklyMinutes()
	if weeklyMinutes == 0 {
		return 0
	}
	weeklyHours := decimal.NewFromInt(int64(weeklyMinutes)).Div(decimal.NewFromInt(60))
	return domain.RoundCents(baseSalary.Decimal().Div(weeksPerMonth).Div(weeklyHours))
}

// CompensatoryRest is the rest owed for working on a Sunday
type CompensatoryRest struct {
	Required bool
	Hours    decimal.Decimal
}

// CheckCompensatoryRest reports whether work on date requires compensatory rest.
// Any work on a Sunday does, for as many hours as were worked.
func CheckCompensatoryRest(date domain.Date, workedMinutes int) CompensatoryRest {
	if date.Weekday() != time.Sunday || workedMinutes <= 0 {
		return CompensatoryRest{}
	}
	return CompensatoryRest{Required: true, Hours: domain.MinutesToHours(workedMinutes)}
}
