package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DEDUCTION ASSUMPTIONS:
//
// 1. Every percentage applies to the monthly gross pay in cents and each deduction is
//    rounded to the cent on its own before they are added up.
//
// 2. Without a deduction configuration social security is withheld at the statutory
//    rate (11%) and no income tax is withheld.
//
// 3. The surcharge and solidarity contribution only apply above an annual income
//    threshold. Annual income is estimated as twelve times the monthly gross.
//
// 4. Configurations that break these rules are still applied as given and reported as
//    warnings.

// DeductionCalculator applies statutory deductions to gross pay
type DeductionCalculator struct {
	Rules domain.StatutoryRules
}

// NewDeductionCalculator creates a calculator for the given rules
func NewDeductionCalculator(rules domain.StatutoryRules) *DeductionCalculator {
	return &DeductionCalculator{Rules: rules}
}

// Effective returns the configuration that will be applied
func (dc *DeductionCalculator) Effective(cfg *domain.DeductionConfig) domain.DeductionConfig {
	if cfg == nil {
		return domain.DeductionConfig{
			IncomeTaxPercent:      decimal.Zero,
			SocialSecurityPercent: dc.Rules.SocialSecurityPercent,
			SurchargePercent:      decimal.Zero,
			SolidarityPercent:     decimal.Zero,
		}
	}
	return *cfg
}

// Calculate returns the itemized deductions for a gross amount
func (dc *DeductionCalculator) Calculate(gross domain.Cents, cfg *domain.DeductionConfig) domain.Deductions {
	eff := dc.Effective(cfg)
	d := domain.Deductions{
		IncomeTax:      gross.Percent(eff.IncomeTaxPercent),
		SocialSecurity: gross.Percent(eff.SocialSecurityPercent),
		Surcharge:      gross.Percent(eff.SurchargePercent),
		Solidarity:     gross.Percent(eff.SolidarityPercent),
	}
	d.Total = d.IncomeTax + d.SocialSecurity + d.Surcharge + d.Solidarity
	return d
}

// Check compares a configuration against the statutory rules and returns a warning for
// every mismatch. A nil configuration has nothing to check.
func (dc *DeductionCalculator) Check(gross domain.Cents, cfg *domain.DeductionConfig) []string {
	if cfg == nil {
		return nil
	}
	var warnings []string
	if !cfg.SocialSecurityPercent.Equal(dc.Rules.SocialSecurityPercent) {
		warnings = append(warnings, fmt.Sprintf("social security must be %s%%, configured %s%%",
			dc.Rules.SocialSecurityPercent, cfg.SocialSecurityPercent))
	}
	if cfg.IncomeTaxPercent.IsNegative() || cfg.IncomeTaxPercent.GreaterThan(dc.Rules.MaxIncomeTaxPercent) {
		warnings = append(warnings, fmt.Sprintf("income tax must be between 0%% and %s%%, configured %s%%",
			dc.Rules.MaxIncomeTaxPercent, cfg.IncomeTaxPercent))
	}

	annual := gross * 12
	checkHighIncome := func(name string, pct decimal.Decimal) {
		if !pct.IsPositive() {
			return
		}
		if annual <= dc.Rules.SurchargeAnnualThreshold {
			warnings = append(warnings, fmt.Sprintf("%s only applies above %s a year, estimated annual income %s",
				name, formatEuros(dc.Rules.SurchargeAnnualThreshold), formatEuros(annual)))
		}
		if pct.GreaterThan(dc.Rules.MaxSurchargePercent) {
			warnings = append(warnings, fmt.Sprintf("%s cannot exceed %s%%, configured %s%%",
				name, dc.Rules.MaxSurchargePercent, pct))
		}
	}
	checkHighIncome("income tax surcharge", cfg.SurchargePercent)
	checkHighIncome("solidarity contribution", cfg.SolidarityPercent)
	return warnings
}

func formatEuros(c domain.Cents) string {
	return domain.CentsToMajor(c).StringFixed(2)
}
