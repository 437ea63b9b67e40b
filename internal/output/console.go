package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
)

// ConsoleFormatter renders each result as a payslip
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder
	for i, res := range report.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderPayslip(res, report.Currency))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// RenderPayslip renders one result. Lines for zero optional amounts are left out.
func RenderPayslip(res calculation.Result, code string) string {
	calc := res.Calculation
	title := TitleStyle.Render(fmt.Sprintf("PAYSLIP %04d-%02d", calc.Year, calc.Month))
	if res.Error != "" {
		return PayslipStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			ErrorStyle.Render("Calculation failed: "+res.Error),
		))
	}

	money := func(c domain.Cents) string { return FormatCurrency(c, code) }
	lines := []string{title}
	if res.IsFromCache {
		lines = append(lines, SubtitleStyle.Render("served from cache"))
	}
	lines = append(lines, "",
		row("Worked days", fmt.Sprint(calc.WorkedDays)),
		row("Regular hours", FormatHours(calc.RegularHours)),
		row("Overtime hours", FormatHours(calc.OvertimeHours.Total)),
		"",
		row("Regular pay", money(calc.RegularPay)),
		row("Overtime pay", money(calc.OvertimePay.Total)),
	)

	optional := []struct {
		label  string
		amount domain.Cents
	}{
		{"  day", calc.OvertimePay.Day},
		{"  night", calc.OvertimePay.Night},
		{"  weekend", calc.OvertimePay.Weekend},
		{"  holiday", calc.OvertimePay.Holiday},
		{"Meal allowance", calc.MealAllowance},
		{"Mileage", calc.MileageReimbursement},
		{"Vacation subsidy", calc.VacationSubsidy},
		{"Christmas subsidy", calc.ChristmasSubsidy},
		{"Bonuses", calc.Bonuses},
	}
	for _, o := range optional {
		if o.amount != 0 {
			lines = append(lines, row(o.label, money(o.amount)))
		}
	}

	lines = append(lines,
		row("Gross pay", money(calc.GrossPay)),
		"",
		row("Income tax", money(-calc.Deductions.IncomeTax)),
		row("Social security", money(-calc.Deductions.SocialSecurity)),
	)
	if calc.Deductions.Surcharge != 0 {
		lines = append(lines, row("Surcharge", money(-calc.Deductions.Surcharge)))
	}
	if calc.Deductions.Solidarity != 0 {
		lines = append(lines, row("Solidarity", money(-calc.Deductions.Solidarity)))
	}
	lines = append(lines, "",
		LabelStyle.Render("Net pay")+TotalStyle.Render(money(calc.NetPay)))

	if len(calc.Warnings) > 0 {
		lines = append(lines, "", "Warnings:")
		for _, w := range calc.Warnings {
			lines = append(lines, WarningStyle.Render("! "+w))
		}
	}
	if res.Hash != "" {
		lines = append(lines, "", SubtitleStyle.Render("key "+res.Hash[:min(12, len(res.Hash))]))
	}
	return PayslipStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func row(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
