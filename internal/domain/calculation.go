package domain

import (
	"github.com/shopspring/decimal"
)

// CalculationInput is everything needed to compute one month of payroll.
// Year and Month may be left zero; the month of the earliest entry is used instead.
type CalculationInput struct {
	Year                    int                  `yaml:"year,omitempty" json:"year,omitempty"`
	Month                   int                  `yaml:"month,omitempty" json:"month,omitempty"`
	Contract                *Contract            `yaml:"contract" json:"contract"`
	Policy                  *OvertimePolicy      `yaml:"overtime_policy" json:"overtime_policy"`
	Entries                 []TimeEntry          `yaml:"time_entries" json:"time_entries"`
	Holidays                []Holiday            `yaml:"holidays,omitempty" json:"holidays,omitempty"`
	Trips                   []MileageTrip        `yaml:"mileage_trips,omitempty" json:"mileage_trips,omitempty"`
	MileagePolicy           *MileagePolicy       `yaml:"mileage_policy,omitempty" json:"mileage_policy,omitempty"`
	MealAllowance           *MealAllowanceConfig `yaml:"meal_allowance,omitempty" json:"meal_allowance,omitempty"`
	Vacations               []VacationPeriod     `yaml:"vacations,omitempty" json:"vacations,omitempty"`
	Deductions              *DeductionConfig     `yaml:"deductions,omitempty" json:"deductions,omitempty"`
	Subsidies               *SubsidyConfig       `yaml:"subsidies,omitempty" json:"subsidies,omitempty"`
	Bonus                   *BonusRule           `yaml:"bonus,omitempty" json:"bonus,omitempty"`
	YearToDateOvertimeHours decimal.Decimal      `yaml:"year_to_date_overtime_hours" json:"year_to_date_overtime_hours"`
}

// OvertimeHours splits overtime hours by category
type OvertimeHours struct {
	Total   decimal.Decimal `yaml:"total" json:"total"`
	Day     decimal.Decimal `yaml:"day" json:"day"`
	Night   decimal.Decimal `yaml:"night" json:"night"`
	Weekend decimal.Decimal `yaml:"weekend" json:"weekend"`
	Holiday decimal.Decimal `yaml:"holiday" json:"holiday"`
}

// OvertimePay splits overtime pay by category
type OvertimePay struct {
	Total   Cents `yaml:"total" json:"total"`
	Day     Cents `yaml:"day" json:"day"`
	Night   Cents `yaml:"night" json:"night"`
	Weekend Cents `yaml:"weekend" json:"weekend"`
	Holiday Cents `yaml:"holiday" json:"holiday"`
}

// Deductions itemizes what is withheld from gross pay
type Deductions struct {
	IncomeTax      Cents `yaml:"income_tax" json:"income_tax"`
	SocialSecurity Cents `yaml:"social_security" json:"social_security"`
	Surcharge      Cents `yaml:"surcharge" json:"surcharge"`
	Solidarity     Cents `yaml:"solidarity" json:"solidarity"`
	Total          Cents `yaml:"total" json:"total"`
}

// PayrollCalculation is the result of one monthly calculation. Treat it as a value;
// use Clone before handing it to code that may modify it.
type PayrollCalculation struct {
	Year                 int             `yaml:"year" json:"year"`
	Month                int             `yaml:"month" json:"month"`
	WorkedDays           int             `yaml:"worked_days" json:"worked_days"`
	RegularHours         decimal.Decimal `yaml:"regular_hours" json:"regular_hours"`
	OvertimeHours        OvertimeHours   `yaml:"overtime_hours" json:"overtime_hours"`
	RegularPay           Cents           `yaml:"regular_pay" json:"regular_pay"`
	OvertimePay          OvertimePay     `yaml:"overtime_pay" json:"overtime_pay"`
	MealAllowance        Cents           `yaml:"meal_allowance" json:"meal_allowance"`
	MileageReimbursement Cents           `yaml:"mileage_reimbursement" json:"mileage_reimbursement"`
	VacationSubsidy      Cents           `yaml:"vacation_subsidy" json:"vacation_subsidy"`
	ChristmasSubsidy     Cents           `yaml:"christmas_subsidy" json:"christmas_subsidy"`
	Bonuses              Cents           `yaml:"bonuses" json:"bonuses"`
	GrossPay             Cents           `yaml:"gross_pay" json:"gross_pay"`
	Deductions           Deductions      `yaml:"deductions" json:"deductions"`
	NetPay               Cents           `yaml:"net_pay" json:"net_pay"`
	Warnings             []string        `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// Clone returns a deep copy
func (p PayrollCalculation) Clone() PayrollCalculation {
	out := p
	if p.Warnings != nil {
		out.Warnings = append([]string(nil), p.Warnings...)
	}
	return out
}

// hourScale is the number of decimals hours are kept at
const hourScale = 4

// Canonical returns a copy with every hour figure at four decimals and no empty warning
// list. A calculation decoded from JSON compares equal to its canonical source.
func (p PayrollCalculation) Canonical() PayrollCalculation {
	out := p.Clone()
	out.RegularHours = canonicalHours(p.RegularHours)
	out.OvertimeHours = OvertimeHours{
		Total:   canonicalHours(p.OvertimeHours.Total),
		Day:     canonicalHours(p.OvertimeHours.Day),
		Night:   canonicalHours(p.OvertimeHours.Night),
		Weekend: canonicalHours(p.OvertimeHours.Weekend),
		Holiday: canonicalHours(p.OvertimeHours.Holiday),
	}
	if len(out.Warnings) == 0 {
		out.Warnings = nil
	}
	return out
}

func canonicalHours(d decimal.Decimal) decimal.Decimal {
	return decimal.New(d.Shift(hourScale).Round(0).IntPart(), -hourScale)
}
