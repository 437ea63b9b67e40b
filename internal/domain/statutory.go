package domain

import (
	"github.com/shopspring/decimal"
)

// StatutoryRules contains the legal limits that apply to every contract.
// It is loaded from statutory.yaml and falls back to DefaultStatutoryRules.
type StatutoryRules struct {
	Metadata                  StatutoryMetadata `yaml:"metadata" json:"metadata"`
	MinimumMonthlySalary      Cents             `yaml:"minimum_monthly_salary_cents" json:"minimum_monthly_salary_cents"`
	MaxDailyOvertimeHours     decimal.Decimal   `yaml:"max_daily_overtime_hours" json:"max_daily_overtime_hours"`
	MaxWeeklyHours            decimal.Decimal   `yaml:"max_weekly_hours" json:"max_weekly_hours"`
	MaxAnnualOvertimeHours    decimal.Decimal   `yaml:"max_annual_overtime_hours" json:"max_annual_overtime_hours"`
	MaxDailyWorkedHours       decimal.Decimal   `yaml:"max_daily_worked_hours" json:"max_daily_worked_hours"`
	MealCeilingCash           Cents             `yaml:"meal_ceiling_cash_cents" json:"meal_ceiling_cash_cents"`
	MealCeilingCard           Cents             `yaml:"meal_ceiling_card_cents" json:"meal_ceiling_card_cents"`
	SurchargeAnnualThreshold  Cents             `yaml:"surcharge_annual_threshold_cents" json:"surcharge_annual_threshold_cents"`
	MaxSurchargePercent       decimal.Decimal   `yaml:"max_surcharge_percentage" json:"max_surcharge_percentage"`
	SocialSecurityPercent     decimal.Decimal   `yaml:"social_security_percentage" json:"social_security_percentage"`
	MaxIncomeTaxPercent       decimal.Decimal   `yaml:"max_irs_percentage" json:"max_irs_percentage"`
	CompensatoryRestOnSundays bool              `yaml:"compensatory_rest_on_sundays" json:"compensatory_rest_on_sundays"`
}

// StatutoryMetadata describes where the rules come from
type StatutoryMetadata struct {
	Jurisdiction string `yaml:"jurisdiction" json:"jurisdiction"`
	DataYear     int    `yaml:"data_year" json:"data_year"`
	LastUpdated  string `yaml:"last_updated" json:"last_updated"`
}

// DefaultStatutoryRules returns the Portuguese limits for 2025
func DefaultStatutoryRules() StatutoryRules {
	return StatutoryRules{
		Metadata: StatutoryMetadata{
			Jurisdiction: "PT",
			DataYear:     2025,
		},
		MinimumMonthlySalary:      76000,
		MaxDailyOvertimeHours:     decimal.NewFromInt(2),
		MaxWeeklyHours:            decimal.NewFromInt(48),
		MaxAnnualOvertimeHours:    decimal.NewFromInt(200),
		MaxDailyWorkedHours:       decimal.NewFromInt(16),
		MealCeilingCash:           600,
		MealCeilingCard:           1020,
		SurchargeAnnualThreshold:  8064000,
		MaxSurchargePercent:       decimal.NewFromInt(5),
		SocialSecurityPercent:     decimal.NewFromInt(11),
		MaxIncomeTaxPercent:       decimal.NewFromInt(48),
		CompensatoryRestOnSundays: true,
	}
}

// MealCeiling returns the tax-exempt daily ceiling for a payment method.
// Anything other than cash is treated as card.
func (r StatutoryRules) MealCeiling(method PaymentMethod) Cents {
	if method == PaymentCash {
		return r.MealCeilingCash
	}
	return r.MealCeilingCard
}

// MaxDailyWorkedMinutes returns the hard ceiling on worked time per day
func (r StatutoryRules) MaxDailyWorkedMinutes() int {
	return HoursToMinutes(r.MaxDailyWorkedHours)
}
