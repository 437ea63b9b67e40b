package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// VacationSubsidy is one base salary, prorated by workedMonths/12 when proportional
// and fewer than twelve months were worked.
func VacationSubsidy(base domain.Cents, workedMonths int, proportional bool) domain.Cents {
	return entitledSubsidy(base, workedMonths, proportional)
}

// ChristmasSubsidy follows the same rule as VacationSubsidy
func ChristmasSubsidy(base domain.Cents, workedMonths int, proportional bool) domain.Cents {
	return entitledSubsidy(base, workedMonths, proportional)
}

func entitledSubsidy(base domain.Cents, workedMonths int, proportional bool) domain.Cents {
	if base <= 0 {
		return 0
	}
	if !proportional || workedMonths >= 12 {
		return base
	}
	if workedMonths <= 0 {
		return 0
	}
	return domain.RoundCents(base.Decimal().Mul(decimal.NewFromInt(int64(workedMonths))).Div(twelve))
}

// SubsidyForMonth returns the part of a subsidy paid in month: the whole entitled amount
// in the payment month, or a twelfth every month when paid in duodecimos.
func SubsidyForMonth(rule domain.SubsidyRule, entitled domain.Cents, month int) domain.Cents {
	if !rule.Enabled || entitled <= 0 {
		return 0
	}
	if rule.Duodecimos {
		return domain.RoundCents(entitled.Decimal().Div(twelve))
	}
	if month == rule.PaymentMonth {
		return entitled
	}
	return 0
}
