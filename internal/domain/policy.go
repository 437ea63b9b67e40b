package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Overtime policy defaults under Portuguese labour law
var (
	DefaultThresholdHours    = decimal.NewFromInt(8)
	DefaultDayMultiplier     = decimal.NewFromFloat(1.5)
	DefaultNightMultiplier   = decimal.NewFromFloat(1.75)
	DefaultWeekendMultiplier = decimal.NewFromInt(2)
	DefaultHolidayMultiplier = decimal.NewFromInt(2)
	DefaultDailyLimitHours   = decimal.NewFromInt(2)
	DefaultWeeklyLimitHours  = decimal.NewFromInt(48)
	DefaultAnnualLimitHours  = decimal.NewFromInt(150)
	DefaultNightStart        = NewClockTime(22, 0)
	DefaultNightEnd          = NewClockTime(7, 0)

	minMultiplier = decimal.NewFromInt(1)
	maxMultiplier = decimal.NewFromInt(5)
	maxThreshold  = decimal.NewFromInt(24)
)

// OvertimePolicy holds the rules that turn worked time into overtime.
// Build it with NewOvertimePolicy so defaults are applied and ranges are checked.
type OvertimePolicy struct {
	ID                string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name              string          `yaml:"name,omitempty" json:"name,omitempty"`
	ThresholdHours    decimal.Decimal `yaml:"threshold_hours" json:"threshold_hours"`
	DayMultiplier     decimal.Decimal `yaml:"day_multiplier" json:"day_multiplier"`
	NightMultiplier   decimal.Decimal `yaml:"night_multiplier" json:"night_multiplier"`
	WeekendMultiplier decimal.Decimal `yaml:"weekend_multiplier" json:"weekend_multiplier"`
	HolidayMultiplier decimal.Decimal `yaml:"holiday_multiplier" json:"holiday_multiplier"`
	NightStart        ClockTime       `yaml:"night_start_time" json:"night_start_time"`
	NightEnd          ClockTime       `yaml:"night_end_time" json:"night_end_time"`
	DailyLimitHours   decimal.Decimal `yaml:"daily_limit_hours" json:"daily_limit_hours"`
	WeeklyLimitHours  decimal.Decimal `yaml:"weekly_limit_hours" json:"weekly_limit_hours"`
	AnnualLimitHours  decimal.Decimal `yaml:"annual_limit_hours" json:"annual_limit_hours"`
	RoundingMinutes   int             `yaml:"rounding_minutes" json:"rounding_minutes"`
}

// NewOvertimePolicy fills unset fields with defaults and rejects out-of-range values.
// A zero multiplier, threshold or cap counts as unset. Zero rounding means no rounding.
func NewOvertimePolicy(p OvertimePolicy) (OvertimePolicy, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return OvertimePolicy{}, err
	}
	return p, nil
}

func (p OvertimePolicy) withDefaults() OvertimePolicy {
	orDefault := func(v, def decimal.Decimal) decimal.Decimal {
		if v.IsZero() {
			return def
		}
		return v
	}
	p.ThresholdHours = orDefault(p.ThresholdHours, DefaultThresholdHours)
	p.DayMultiplier = orDefault(p.DayMultiplier, DefaultDayMultiplier)
	p.NightMultiplier = orDefault(p.NightMultiplier, DefaultNightMultiplier)
	p.WeekendMultiplier = orDefault(p.WeekendMultiplier, DefaultWeekendMultiplier)
	p.HolidayMultiplier = orDefault(p.HolidayMultiplier, DefaultHolidayMultiplier)
	p.DailyLimitHours = orDefault(p.DailyLimitHours, DefaultDailyLimitHours)
	p.WeeklyLimitHours = orDefault(p.WeeklyLimitHours, DefaultWeeklyLimitHours)
	p.AnnualLimitHours = orDefault(p.AnnualLimitHours, DefaultAnnualLimitHours)
	if !p.NightStart.IsSet() {
		p.NightStart = DefaultNightStart
	}
	if !p.NightEnd.IsSet() {
		p.NightEnd = DefaultNightEnd
	}
	return p
}

// Validate checks every field against its allowed range
func (p OvertimePolicy) Validate() error {
	var errs []error
	if !p.ThresholdHours.IsPositive() || p.ThresholdHours.GreaterThan(maxThreshold) {
		errs = append(errs, fmt.Errorf("threshold_hours %s: %w", p.ThresholdHours, ErrInvalidThreshold))
	}
	multipliers := []struct {
		name  string
		value decimal.Decimal
	}{
		{"day_multiplier", p.DayMultiplier},
		{"night_multiplier", p.NightMultiplier},
		{"weekend_multiplier", p.WeekendMultiplier},
		{"holiday_multiplier", p.HolidayMultiplier},
	}
	for _, m := range multipliers {
		if m.value.LessThan(minMultiplier) || m.value.GreaterThan(maxMultiplier) {
			errs = append(errs, fmt.Errorf("%s %s must be between %s and %s: %w",
				m.name, m.value, minMultiplier, maxMultiplier, ErrInvalidMultiplier))
		}
	}
	caps := []struct {
		name  string
		value decimal.Decimal
	}{
		{"daily_limit_hours", p.DailyLimitHours},
		{"weekly_limit_hours", p.WeeklyLimitHours},
		{"annual_limit_hours", p.AnnualLimitHours},
	}
	for _, c := range caps {
		if c.value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s %s: %w", c.name, c.value, ErrNegativeCap))
		}
	}
	if p.RoundingMinutes < 0 || p.RoundingMinutes > 60 {
		errs = append(errs, fmt.Errorf("rounding_minutes %d: %w", p.RoundingMinutes, ErrInvalidRounding))
	}
	return errors.Join(errs...)
}

// ThresholdMinutes returns the daily threshold in whole minutes
func (p OvertimePolicy) ThresholdMinutes() int {
	return HoursToMinutes(p.ThresholdHours)
}

// DailyLimitMinutes returns the per-day overtime cap in whole minutes
func (p OvertimePolicy) DailyLimitMinutes() int {
	return HoursToMinutes(p.DailyLimitHours)
}

// HoursToMinutes converts decimal hours to whole minutes, rounding to the nearest minute
func HoursToMinutes(h decimal.Decimal) int {
	return int(h.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// MinutesToHours converts minutes to decimal hours with four decimal places
func MinutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).DivRound(decimal.NewFromInt(60), 4)
}
