package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/calendar"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport() *Report {
	ok := calculation.Result{
		Calculation: domain.PayrollCalculation{
			Year:         2024,
			Month:        1,
			WorkedDays:   1,
			RegularHours: decimal.NewFromInt(8),
			OvertimeHours: domain.OvertimeHours{
				Total: decimal.NewFromInt(1),
				Day:   decimal.NewFromInt(1),
			},
			RegularPay:  8000,
			OvertimePay: domain.OvertimePay{Total: 1500, Day: 1500},
			GrossPay:    9500,
			Deductions:  domain.Deductions{SocialSecurity: 1045, Total: 1045},
			NetPay:      8455,
			Warnings:    []string{"Sábado 2024-01-13: trabalho em dia de descanso"},
		},
		Hash:      "4f9c2b7a1d3e5f60718293a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4",
		Timestamp: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	failed := calculation.Result{
		Calculation: domain.PayrollCalculation{Year: 2024, Month: 2},
		Error:       "input 1: time entry 2024-02-03: start and end are equal",
	}
	return NewReport("EUR", ok, failed)
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(buildTestReport())

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(*Report) ([]byte, error) { return []byte("test output content"), nil },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "payroll_report_", "Should have correct prefix")
	assert.Contains(t, filename, ".txt", "Should have correct extension")

	content, err := os.ReadFile(filename)
	require.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestNewReport_DefaultCurrency(t *testing.T) {
	report := NewReport("")
	assert.Equal(t, "EUR", report.Currency)
	assert.Empty(t, report.Results)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestConsoleFormatter_Format(t *testing.T) {
	formatter := ConsoleFormatter{}
	assert.Equal(t, "console", formatter.Name())

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "PAYSLIP 2024-01", "Should have header")
	assert.Contains(t, content, "Net pay")
	assert.Contains(t, content, "84.55", "Should show net pay")
	assert.Contains(t, content, "-10.45", "Should show deductions as negative amounts")
	assert.Contains(t, content, "Sábado 2024-01-13", "Should list warnings")
	assert.Contains(t, content, "key 4f9c2b7a1d3e")
	assert.NotContains(t, content, "Meal allowance", "Zero optional lines are left out")

	assert.Contains(t, content, "PAYSLIP 2024-02")
	assert.Contains(t, content, "Calculation failed: input 1")
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := JSONFormatter{}
	assert.Equal(t, "json", formatter.Name())

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, `"results"`, "Should have JSON structure")
	assert.Contains(t, content, `"net_pay": 8455`)
	assert.Contains(t, content, `"regular_hours": "8"`)
	assert.Contains(t, content, `"currency": "EUR"`)
}

func TestYAMLFormatter_Format(t *testing.T) {
	formatter := GetFormatterByName("yml")
	require.NotNil(t, formatter)
	assert.Equal(t, "yaml", formatter.Name())

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "net_pay: 8455")
	assert.Contains(t, content, "is_from_cache: false")
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := Encode("xml", struct{}{})
	assert.ErrorContains(t, err, "unsupported format: xml")
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := CSVFormatter{}
	assert.Equal(t, "csv", formatter.Name())

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "Should have a header and one row per result")

	header := records[0]
	row := func(r []string, column string) string {
		for i, name := range header {
			if name == column {
				return r[i]
			}
		}
		t.Fatalf("missing column %s", column)
		return ""
	}
	assert.Equal(t, "84.55", row(records[1], "NetPay"))
	assert.Equal(t, "95.00", row(records[1], "GrossPay"))
	assert.Equal(t, "8.00", row(records[1], "RegularHours"))
	assert.Equal(t, "false", row(records[1], "FromCache"))
	assert.Contains(t, row(records[2], "Error"), "start and end are equal")
}

func TestCSVFormatter_Windows1252(t *testing.T) {
	formatter := GetFormatterByName("csv-cp1252")
	require.NotNil(t, formatter)

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte{'S', 0xE1, 'b'}), "á should be a single cp1252 byte")
	assert.False(t, bytes.Contains(out, []byte("Sábado")), "Should not contain UTF-8")

	_, err = CSVFormatter{Encoding: "ebcdic"}.Format(buildTestReport())
	assert.ErrorContains(t, err, "unsupported CSV encoding")
}

func TestHTMLFormatter_Format(t *testing.T) {
	formatter := HTMLFormatter{}
	assert.Equal(t, "html", formatter.Name())

	out, err := formatter.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>", "Should have HTML structure")
	assert.Contains(t, content, "<h2>2024-01</h2>")
	assert.Contains(t, content, "84.55")
	assert.Contains(t, content, "Calculation failed")
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "csv-cp1252", "html", "json", "yaml"}, names)
	assert.Equal(t, []string{"payslip", "text", "yml"}, AvailableFormatAliases())
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"TEXT", "console"},
		{" json ", "json"},
		{"yml", "yaml"},
		{"csv-cp1252", "csv-cp1252"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := GetFormatterByName(tt.name)
			require.NotNil(t, formatter)
			assert.Equal(t, tt.expected, formatter.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil for unknown names")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "€", CurrencySymbol("not-a-code"), "Unknown codes fall back to the euro")
	assert.Equal(t, "€ 1234.50", FormatCurrency(123450, "EUR"))
	assert.Equal(t, "0.07", FormatAmount(7))
	assert.Equal(t, "-10.45", FormatAmount(-1045))
	assert.Equal(t, "1.50h", FormatMinutes(90))
}

func TestRenderTables(t *testing.T) {
	policy, err := domain.NewOvertimePolicy(domain.OvertimePolicy{})
	require.NoError(t, err)
	holidays := calendar.Holidays(2024, calendar.Location{Municipality: "Lisboa"})
	x, err := calculation.NewExtractor(policy, domain.NewHolidaySet(holidays), 1000)
	require.NoError(t, err)

	entries := []domain.TimeEntry{
		{Date: domain.MustDate("2024-01-15"), Start: domain.MustClock("08:00"), End: domain.MustClock("20:00")},
		{Date: domain.MustDate("2024-01-16"), Start: domain.MustClock("09:00"), End: domain.MustClock("17:00")},
	}

	overtime := RenderOvertime(x.ExtractOvertimeFromTimesheet(entries), "EUR")
	assert.Contains(t, overtime, "2024-01-15")
	assert.Contains(t, overtime, "over daily limit")
	assert.Contains(t, overtime, "Overtime pay")

	weekly := RenderWeekly(x.CalculateWeeklyOvertime(entries))
	assert.Contains(t, weekly, "2024-01-15 to 2024-01-21")

	contract := domain.Contract{HourlyRate: 1000, WeeklyHours: decimal.NewFromInt(40)}
	days := calculation.BuildPlannedSchedule(contract, domain.NewHolidaySet(holidays), domain.MustDate("2024-06-10"), domain.MustDate("2024-06-16"))
	schedule := RenderSchedule(days)
	assert.Contains(t, schedule, "Dia de Portugal")
	assert.Contains(t, schedule, "Santo António")
	assert.Contains(t, schedule, "Planned total")

	calendarTable := RenderHolidays(holidays)
	assert.Contains(t, calendarTable, "Natal")
	assert.Contains(t, calendarTable, "2024-03-29", "Good Friday")
}
