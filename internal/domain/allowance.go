package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the meal allowance is paid; it decides the tax-exempt ceiling
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// DefaultMinimumRegularHours is the regular time a day needs to earn a meal allowance
var DefaultMinimumRegularHours = decimal.NewFromInt(4)

// MealAllowanceConfig configures the daily meal allowance
type MealAllowanceConfig struct {
	DailyAmount         Cents            `yaml:"daily_amount_cents" json:"daily_amount_cents"`
	ExcludedMonths      []int            `yaml:"excluded_months,omitempty" json:"excluded_months,omitempty"`
	PaymentMethod       PaymentMethod    `yaml:"payment_method" json:"payment_method"`
	Duodecimos          bool             `yaml:"duodecimos_enabled" json:"duodecimos_enabled"`
	MinimumRegularHours *decimal.Decimal `yaml:"minimum_regular_hours,omitempty" json:"minimum_regular_hours,omitempty"`
}

// MinimumMinutes returns the minimum regular time for a paid day
func (m MealAllowanceConfig) MinimumMinutes() int {
	if m.MinimumRegularHours == nil {
		return HoursToMinutes(DefaultMinimumRegularHours)
	}
	return HoursToMinutes(*m.MinimumRegularHours)
}

// Excludes reports whether a month is excluded from payment
func (m MealAllowanceConfig) Excludes(month int) bool {
	for _, x := range m.ExcludedMonths {
		if x == month {
			return true
		}
	}
	return false
}

// Validate checks the meal allowance configuration
func (m MealAllowanceConfig) Validate() error {
	var errs []error
	if m.DailyAmount < 0 {
		errs = append(errs, fmt.Errorf("daily_amount_cents cannot be negative: %d", m.DailyAmount))
	}
	switch m.PaymentMethod {
	case "", PaymentCash, PaymentCard:
	default:
		errs = append(errs, fmt.Errorf("unknown payment_method %q", m.PaymentMethod))
	}
	for _, month := range m.ExcludedMonths {
		if month < 1 || month > 12 {
			errs = append(errs, fmt.Errorf("excluded month %d: %w", month, ErrInvalidMonth))
		}
	}
	if m.MinimumRegularHours != nil && m.MinimumRegularHours.IsNegative() {
		errs = append(errs, errors.New("minimum_regular_hours cannot be negative"))
	}
	return errors.Join(errs...)
}

// SubsidyRule configures one annual subsidy (vacation or Christmas)
type SubsidyRule struct {
	Enabled      bool `yaml:"enabled" json:"enabled"`
	Proportional bool `yaml:"proportional" json:"proportional"`
	PaymentMonth int  `yaml:"payment_month" json:"payment_month"`
	Duodecimos   bool `yaml:"duodecimos" json:"duodecimos"`
}

// SubsidyConfig configures the vacation and Christmas subsidies
type SubsidyConfig struct {
	Vacation     SubsidyRule `yaml:"vacation" json:"vacation"`
	Christmas    SubsidyRule `yaml:"christmas" json:"christmas"`
	WorkedMonths int         `yaml:"worked_months" json:"worked_months"`
}

// Validate checks payment months and worked months
func (s SubsidyConfig) Validate() error {
	var errs []error
	rules := []struct {
		name string
		rule SubsidyRule
	}{{"vacation", s.Vacation}, {"christmas", s.Christmas}}
	for _, r := range rules {
		if r.rule.Enabled && !r.rule.Duodecimos && (r.rule.PaymentMonth < 1 || r.rule.PaymentMonth > 12) {
			errs = append(errs, fmt.Errorf("%s payment_month %d: %w", r.name, r.rule.PaymentMonth, ErrInvalidMonth))
		}
	}
	if s.WorkedMonths < 0 || s.WorkedMonths > 12 {
		errs = append(errs, fmt.Errorf("worked_months %d: %w", s.WorkedMonths, ErrInvalidMonth))
	}
	return errors.Join(errs...)
}

// DeductionConfig holds the statutory deduction percentages (0-100)
type DeductionConfig struct {
	IncomeTaxPercent      decimal.Decimal `yaml:"irs_percentage" json:"irs_percentage"`
	SocialSecurityPercent decimal.Decimal `yaml:"social_security_percentage" json:"social_security_percentage"`
	SurchargePercent      decimal.Decimal `yaml:"irs_surcharge_percentage" json:"irs_surcharge_percentage"`
	SolidarityPercent     decimal.Decimal `yaml:"solidarity_contribution_percentage" json:"solidarity_contribution_percentage"`
}

var hundredPercent = decimal.NewFromInt(100)

// Validate rejects percentages outside 0..100
func (d DeductionConfig) Validate() error {
	var errs []error
	for _, p := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"irs_percentage", d.IncomeTaxPercent},
		{"social_security_percentage", d.SocialSecurityPercent},
		{"irs_surcharge_percentage", d.SurchargePercent},
		{"solidarity_contribution_percentage", d.SolidarityPercent},
	} {
		if p.value.IsNegative() || p.value.GreaterThan(hundredPercent) {
			errs = append(errs, fmt.Errorf("%s %s: %w", p.name, p.value, ErrInvalidPercentage))
		}
	}
	return errors.Join(errs...)
}

// BonusRule pays a percentage of regular pay once a minimum number of days is worked
type BonusRule struct {
	Percent           decimal.Decimal `yaml:"percent" json:"percent"`
	MinimumWorkedDays int             `yaml:"minimum_worked_days" json:"minimum_worked_days"`
}

// DefaultBonusRule is the punctuality bonus: 5% of regular pay from 20 worked days
var DefaultBonusRule = BonusRule{Percent: decimal.NewFromInt(5), MinimumWorkedDays: 20}
