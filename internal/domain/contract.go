package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a contract does not name one
const DefaultCurrency = "EUR"

// Contract represents an employment contract as seen by the payroll core
type Contract struct {
	ID                  string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name                string          `yaml:"name,omitempty" json:"name,omitempty"`
	BaseSalary          Cents           `yaml:"base_salary_cents" json:"base_salary_cents"`
	HourlyRate          Cents           `yaml:"hourly_rate_cents" json:"hourly_rate_cents"`
	WeeklyHours         decimal.Decimal `yaml:"weekly_hours" json:"weekly_hours"`
	Schedule            WeeklySchedule  `yaml:"schedule" json:"schedule"`
	MealAllowancePerDay Cents           `yaml:"meal_allowance_cents_per_day" json:"meal_allowance_cents_per_day"`
	Currency            string          `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// DaySchedule is the planned shift for one weekday
type DaySchedule struct {
	Enabled      bool      `yaml:"enabled" json:"enabled"`
	Start        ClockTime `yaml:"start" json:"start"`
	End          ClockTime `yaml:"end" json:"end"`
	BreakMinutes int       `yaml:"break_minutes" json:"break_minutes"`
}

// PlannedMinutes returns the scheduled working minutes for the day, net of the break.
// An end at or before the start rolls over to the next day.
func (d DaySchedule) PlannedMinutes() int {
	if !d.Enabled || !d.Start.IsSet() || !d.End.IsSet() {
		return 0
	}
	span := d.End.Minutes() - d.Start.Minutes()
	if span <= 0 {
		span += 24 * 60
	}
	brk := d.BreakMinutes
	if brk < 0 {
		brk = 0
	}
	if span-brk < 0 {
		return 0
	}
	return span - brk
}

// WeeklySchedule is the contract's weekly shift template
type WeeklySchedule struct {
	Monday    DaySchedule `yaml:"monday" json:"monday"`
	Tuesday   DaySchedule `yaml:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `yaml:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `yaml:"thursday" json:"thursday"`
	Friday    DaySchedule `yaml:"friday" json:"friday"`
	Saturday  DaySchedule `yaml:"saturday" json:"saturday"`
	Sunday    DaySchedule `yaml:"sunday" json:"sunday"`
}

// Day returns the template for a weekday
func (w WeeklySchedule) Day(wd time.Weekday) DaySchedule {
	switch wd {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// HasEnabledDays reports whether any weekday is scheduled
func (w WeeklySchedule) HasEnabledDays() bool {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if w.Day(wd).Enabled {
			return true
		}
	}
	return false
}

// WeeklyMinutes sums the planned minutes across the week
func (w WeeklySchedule) WeeklyMinutes() int {
	total := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		total += w.Day(wd).PlannedMinutes()
	}
	return total
}

// NewContract validates a contract and fills defaults
func NewContract(c Contract) (Contract, error) {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if err := c.Validate(); err != nil {
		return Contract{}, err
	}
	return c, nil
}

// Validate checks the contract for values the calculation cannot work with
func (c Contract) Validate() error {
	var errs []error
	if c.BaseSalary <= 0 {
		errs = append(errs, fmt.Errorf("base salary %d: %w", c.BaseSalary, ErrNonPositiveSalary))
	}
	if c.HourlyRate <= 0 {
		errs = append(errs, fmt.Errorf("hourly rate %d: %w", c.HourlyRate, ErrNonPositiveRate))
	}
	if c.WeeklyHours.IsNegative() {
		errs = append(errs, fmt.Errorf("weekly hours cannot be negative: %s", c.WeeklyHours))
	}
	if c.MealAllowancePerDay < 0 {
		errs = append(errs, fmt.Errorf("meal allowance per day cannot be negative: %d", c.MealAllowancePerDay))
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := c.Schedule.Day(wd)
		if day.Enabled && (!day.Start.IsSet() || !day.End.IsSet()) {
			errs = append(errs, fmt.Errorf("schedule for %s is enabled without start and end", wd))
		}
		if day.BreakMinutes < 0 {
			errs = append(errs, fmt.Errorf("schedule for %s has a negative break", wd))
		}
	}
	return errors.Join(errs...)
}
