package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
)

// CalculateBonus pays rule.Percent of regular pay when at least rule.MinimumWorkedDays
// days were worked, and nothing otherwise.
func CalculateBonus(regularPay domain.Cents, workedDays int, rule domain.BonusRule) domain.Cents {
	if workedDays < rule.MinimumWorkedDays || !rule.Percent.IsPositive() {
		return 0
	}
	return regularPay.Percent(rule.Percent)
}
