package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderOvertime renders the per-day overtime of a timesheet followed by its totals
func RenderOvertime(b calculation.OvertimeBreakdown, code string) string {
	t := newTable("Date", "Category", "Worked", "Regular", "Overtime", "Night", "Overtime pay", "")
	for _, d := range b.Daily {
		flag := ""
		switch {
		case d.Absence:
			flag = "absence"
		case d.ExceededDailyLimit:
			flag = "over daily limit"
		}
		t.Row(
			d.Date.String(),
			d.Category.String(),
			FormatMinutes(d.WorkedMinutes),
			FormatMinutes(d.RegularMinutes),
			FormatMinutes(d.OvertimeMinutes),
			FormatMinutes(d.NightMinutes),
			FormatCurrency(d.OvertimePay, code),
			flag,
		)
	}

	summary := lipgloss.JoinVertical(lipgloss.Left,
		row("Regular hours", FormatMinutes(b.RegularMinutes)),
		row("Overtime hours", FormatMinutes(b.OvertimeMinutes)),
		row("Regular pay", FormatCurrency(b.RegularPay, code)),
		row("Overtime pay", FormatCurrency(b.Pay.Total, code)),
	)
	return joinSections(t.String(), summary, renderWarnings(b.Warnings))
}

// RenderWeekly renders one line per Monday-start week
func RenderWeekly(weeks []calculation.WeeklySummary) string {
	t := newTable("Week", "Regular", "Overtime", "Total", "Limit", "")
	for _, w := range weeks {
		flag := ""
		if w.LimitExceeded {
			flag = "limit exceeded"
		}
		t.Row(
			w.WeekStart.String()+" to "+w.WeekEnd.String(),
			FormatHours(w.RegularHours()),
			FormatHours(w.OvertimeHours()),
			FormatHours(w.TotalHours()),
			FormatHours(w.LimitHours),
			flag,
		)
	}
	return t.String()
}

// RenderSchedule renders a planned schedule and its total
func RenderSchedule(days []calculation.PlannedDay) string {
	t := newTable("Date", "Day", "Planned", "Holiday")
	for _, d := range days {
		t.Row(d.Date.String(), d.Date.Weekday().String(), FormatHours(d.PlannedHours), d.HolidayName)
	}
	return joinSections(t.String(), row("Planned total", FormatHours(calculation.PlannedTotal(days))))
}

// RenderHolidays renders a holiday calendar
func RenderHolidays(holidays []domain.Holiday) string {
	t := newTable("Date", "Day", "Holiday", "Type")
	for _, h := range holidays {
		t.Row(h.Date.String(), h.Date.Weekday().String(), h.Name, h.Type)
	}
	return t.String()
}

func renderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(warnings)+1)
	lines = append(lines, "Warnings:")
	for _, w := range warnings {
		lines = append(lines, WarningStyle.Render("! "+w))
	}
	return strings.Join(lines, "\n")
}

func joinSections(sections ...string) string {
	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n") + "\n"
}
