package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodingWindows1252 produces CSV that spreadsheet programs on Portuguese Windows
// installs open without mangling accented names
const EncodingWindows1252 = "cp1252"

// CSVFormatter renders one row per result. Amounts are in major units.
type CSVFormatter struct {
	Encoding string
}

func (c CSVFormatter) Name() string {
	if c.Encoding == "" {
		return "csv"
	}
	return "csv-" + c.Encoding
}

var csvHeader = []string{
	"Year", "Month", "WorkedDays", "RegularHours", "OvertimeHours",
	"RegularPay", "OvertimePay", "DayOvertimePay", "NightOvertimePay", "WeekendOvertimePay", "HolidayOvertimePay",
	"MealAllowance", "Mileage", "VacationSubsidy", "ChristmasSubsidy", "Bonuses",
	"GrossPay", "IncomeTax", "SocialSecurity", "Surcharge", "Solidarity", "NetPay",
	"Warnings", "FromCache", "Key", "Error",
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, res := range report.Results {
		calc := res.Calculation
		record := []string{
			strconv.Itoa(calc.Year),
			strconv.Itoa(calc.Month),
			strconv.Itoa(calc.WorkedDays),
			calc.RegularHours.StringFixed(2),
			calc.OvertimeHours.Total.StringFixed(2),
			FormatAmount(calc.RegularPay),
			FormatAmount(calc.OvertimePay.Total),
			FormatAmount(calc.OvertimePay.Day),
			FormatAmount(calc.OvertimePay.Night),
			FormatAmount(calc.OvertimePay.Weekend),
			FormatAmount(calc.OvertimePay.Holiday),
			FormatAmount(calc.MealAllowance),
			FormatAmount(calc.MileageReimbursement),
			FormatAmount(calc.VacationSubsidy),
			FormatAmount(calc.ChristmasSubsidy),
			FormatAmount(calc.Bonuses),
			FormatAmount(calc.GrossPay),
			FormatAmount(calc.Deductions.IncomeTax),
			FormatAmount(calc.Deductions.SocialSecurity),
			FormatAmount(calc.Deductions.Surcharge),
			FormatAmount(calc.Deductions.Solidarity),
			FormatAmount(calc.NetPay),
			strings.Join(calc.Warnings, "; "),
			strconv.FormatBool(res.IsFromCache),
			res.Hash,
			res.Error,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return c.encode(buf.Bytes())
}

func (c CSVFormatter) encode(data []byte) ([]byte, error) {
	switch c.Encoding {
	case "", "utf-8":
		return data, nil
	case EncodingWindows1252:
		encoded, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode CSV as %s: %w", c.Encoding, err)
		}
		return encoded, nil
	default:
		return nil, fmt.Errorf("unsupported CSV encoding: %s", c.Encoding)
	}
}
