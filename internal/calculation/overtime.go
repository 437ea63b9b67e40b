package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DayCategory decides which overtime multiplier a day is billed at
type DayCategory int

const (
	CategoryWeekday DayCategory = iota
	CategoryWeekend
	CategoryHoliday
)

func (c DayCategory) String() string {
	switch c {
	case CategoryHoliday:
		return "holiday"
	case CategoryWeekend:
		return "weekend"
	default:
		return "weekday"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c DayCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ResolveDayCategory returns the category a date is billed at. Priority, highest first:
//  1. holiday: the entry is flagged as a holiday or the set has an overtime holiday on that date
//  2. weekend: Saturday or Sunday
//  3. weekday
func ResolveDayCategory(date domain.Date, flaggedHoliday bool, holidays domain.HolidaySet) DayCategory {
	if flaggedHoliday {
		return CategoryHoliday
	}
	if _, ok := holidays.OvertimeHoliday(date); ok {
		return CategoryHoliday
	}
	if date.IsWeekend() {
		return CategoryWeekend
	}
	return CategoryWeekday
}

// DailyOvertime is the overtime result for one entry
type DailyOvertime struct {
	Date               domain.Date  `json:"date"`
	Category           DayCategory  `json:"category"`
	HolidayName        string       `json:"holiday_name,omitempty"`
	Absence            bool         `json:"absence"`
	WorkedMinutes      int          `json:"worked_minutes"`
	RegularMinutes     int          `json:"regular_minutes"`
	OvertimeMinutes    int          `json:"overtime_minutes"`
	DayMinutes         int          `json:"day_overtime_minutes"`
	NightMinutes       int          `json:"night_overtime_minutes"`
	WeekendMinutes     int          `json:"weekend_overtime_minutes"`
	HolidayMinutes     int          `json:"holiday_overtime_minutes"`
	ExceededDailyLimit bool         `json:"exceeded_daily_limit"`
	RegularPay         domain.Cents `json:"regular_pay"`
	DayPay             domain.Cents `json:"day_overtime_pay"`
	NightPay           domain.Cents `json:"night_overtime_pay"`
	WeekendPay         domain.Cents `json:"weekend_overtime_pay"`
	HolidayPay         domain.Cents `json:"holiday_overtime_pay"`
	OvertimePay        domain.Cents `json:"overtime_pay"`
}

func (d DailyOvertime) WorkedHours() decimal.Decimal   { return domain.MinutesToHours(d.WorkedMinutes) }
func (d DailyOvertime) RegularHours() decimal.Decimal  { return domain.MinutesToHours(d.RegularMinutes) }
func (d DailyOvertime) OvertimeHours() decimal.Decimal { return domain.MinutesToHours(d.OvertimeMinutes) }

// TotalPay is regular plus overtime pay for the day
func (d DailyOvertime) TotalPay() domain.Cents { return d.RegularPay + d.OvertimePay }

// OvertimeBreakdown aggregates overtime across a timesheet
type OvertimeBreakdown struct {
	RegularMinutes  int                  `json:"regular_minutes"`
	OvertimeMinutes int                  `json:"overtime_minutes"`
	Hours           domain.OvertimeHours `json:"hours"`
	Pay             domain.OvertimePay   `json:"pay"`
	RegularPay      domain.Cents         `json:"regular_pay"`
	Daily           []DailyOvertime      `json:"daily"`
	Warnings        []string             `json:"warnings,omitempty"`
}

// TotalOvertimeValue is the total overtime pay in cents
func (b OvertimeBreakdown) TotalOvertimeValue() domain.Cents { return b.Pay.Total }

// Extractor turns timesheet entries into categorized overtime. It is an immutable value;
// the policy and holidays are fixed when it is built.
type Extractor struct {
	policy     domain.OvertimePolicy
	holidays   domain.HolidaySet
	hourlyRate domain.Cents
	yearToDate decimal.Decimal
}

// NewExtractor validates its arguments and returns an Extractor.
// The policy is expected to come from domain.NewOvertimePolicy.
func NewExtractor(policy domain.OvertimePolicy, holidays domain.HolidaySet, hourlyRate domain.Cents) (Extractor, error) {
	if hourlyRate <= 0 {
		return Extractor{}, fmt.Errorf("hourly rate %d: %w", hourlyRate, ErrNonPositiveRate)
	}
	if !policy.ThresholdHours.IsPositive() {
		return Extractor{}, fmt.Errorf("threshold_hours %s: %w", policy.ThresholdHours, domain.ErrInvalidThreshold)
	}
	return Extractor{policy: policy, holidays: holidays, hourlyRate: hourlyRate, yearToDate: decimal.Zero}, nil
}

// WithYearToDate returns a copy that counts hours already worked this year toward the
// annual cap
func (x Extractor) WithYearToDate(hours decimal.Decimal) Extractor {
	x.yearToDate = hours
	return x
}

// Policy returns the policy the extractor was built with
func (x Extractor) Policy() domain.OvertimePolicy { return x.policy }

// ExtractOvertimeFromTimesheet computes per-day and total overtime for the entries.
// The input slice is not modified; the daily breakdown is sorted by date.
func (x Extractor) ExtractOvertimeFromTimesheet(entries []domain.TimeEntry) OvertimeBreakdown {
	sorted := sortedCopy(entries)

	var b OvertimeBreakdown
	var dayMin, nightMin, weekendMin, holidayMin int
	exceeded := 0
	for _, e := range sorted {
		d := x.Day(e)
		b.Daily = append(b.Daily, d)
		b.RegularMinutes += d.RegularMinutes
		b.OvertimeMinutes += d.OvertimeMinutes
		dayMin += d.DayMinutes
		nightMin += d.NightMinutes
		weekendMin += d.WeekendMinutes
		holidayMin += d.HolidayMinutes
		b.RegularPay += d.RegularPay
		b.Pay.Day += d.DayPay
		b.Pay.Night += d.NightPay
		b.Pay.Weekend += d.WeekendPay
		b.Pay.Holiday += d.HolidayPay
		if d.ExceededDailyLimit {
			exceeded++
		}
		b.Warnings = append(b.Warnings, entryWarnings(e)...)
	}
	b.Pay.Total = b.Pay.Day + b.Pay.Night + b.Pay.Weekend + b.Pay.Holiday
	b.Hours = domain.OvertimeHours{
		Total:   domain.MinutesToHours(b.OvertimeMinutes),
		Day:     domain.MinutesToHours(dayMin),
		Night:   domain.MinutesToHours(nightMin),
		Weekend: domain.MinutesToHours(weekendMin),
		Holiday: domain.MinutesToHours(holidayMin),
	}

	if exceeded > 0 {
		b.Warnings = append(b.Warnings, fmt.Sprintf("%d day(s) exceed the daily overtime limit of %sh",
			exceeded, x.policy.DailyLimitHours))
	}
	for _, w := range x.weeks(b.Daily) {
		if w.LimitExceeded {
			b.Warnings = append(b.Warnings, fmt.Sprintf("week of %s: %sh worked exceeds the weekly limit of %sh",
				w.WeekStart, w.TotalHours().StringFixed(2), w.LimitHours))
		}
	}
	annual := x.yearToDate.Add(b.Hours.Total)
	if annual.GreaterThan(x.policy.AnnualLimitHours) {
		b.Warnings = append(b.Warnings, fmt.Sprintf("annual overtime limit exceeded: %sh / %sh",
			annual.StringFixed(1), x.policy.AnnualLimitHours))
	}
	return b
}

// Day computes the overtime result for a single entry
func (x Extractor) Day(e domain.TimeEntry) DailyOvertime {
	d := DailyOvertime{Date: e.Date}
	if e.IsAbsence() {
		d.Absence = true
		return d
	}

	d.Category = ResolveDayCategory(e.Date, e.IsHoliday, x.holidays)
	if h, ok := x.holidays.Lookup(e.Date); ok {
		d.HolidayName = h.Name
	}

	var raw, tailNight int
	for _, span := range SegmentEntry(e, x.policy, x.policy.ThresholdHours) {
		if span.Overtime {
			raw, tailNight = span.Minutes, span.NightMinutes
			continue
		}
		d.RegularMinutes = span.Minutes
	}
	d.WorkedMinutes = d.RegularMinutes + raw
	rounded := roundUp(raw, x.policy.RoundingMinutes)

	limit := x.policy.DailyLimitMinutes()
	d.OvertimeMinutes = rounded
	if rounded > limit {
		d.OvertimeMinutes = limit
		d.ExceededDailyLimit = true
	}

	switch d.Category {
	case CategoryHoliday:
		d.HolidayMinutes = d.OvertimeMinutes
	case CategoryWeekend:
		d.WeekendMinutes = d.OvertimeMinutes
	default:
		d.NightMinutes = min(tailNight, d.OvertimeMinutes)
		d.DayMinutes = d.OvertimeMinutes - d.NightMinutes
	}

	d.RegularPay = pay(d.RegularMinutes, x.hourlyRate, decimal.NewFromInt(1))
	d.DayPay = pay(d.DayMinutes, x.hourlyRate, x.policy.DayMultiplier)
	d.NightPay = pay(d.NightMinutes, x.hourlyRate, x.policy.NightMultiplier)
	d.WeekendPay = pay(d.WeekendMinutes, x.hourlyRate, x.policy.WeekendMultiplier)
	d.HolidayPay = pay(d.HolidayMinutes, x.hourlyRate, x.policy.HolidayMultiplier)
	d.OvertimePay = d.DayPay + d.NightPay + d.WeekendPay + d.HolidayPay
	return d
}

// pay returns round(minutes * rate * multiplier / 60)
func pay(minutes int, rate domain.Cents, multiplier decimal.Decimal) domain.Cents {
	if minutes == 0 {
		return 0
	}
	amount := decimal.NewFromInt(int64(minutes)).Mul(rate.Decimal()).Mul(multiplier).Div(decimal.NewFromInt(60))
	return domain.RoundCents(amount)
}

// roundUp rounds minutes up to the next multiple of granularity
func roundUp(minutes, granularity int) int {
	if minutes <= 0 || granularity <= 0 {
		return minutes
	}
	return (minutes + granularity - 1) / granularity * granularity
}

func entryWarnings(e domain.TimeEntry) []string {
	var warnings []string
	if e.IsAbsence() {
		if e.Start.IsSet() || e.End.IsSet() {
			warnings = append(warnings, fmt.Sprintf("%s: hours recorded on a %s day", e.Date, absenceKind(e)))
		}
		return warnings
	}
	if !e.Start.IsSet() {
		warnings = append(warnings, fmt.Sprintf("%s: start time missing", e.Date))
	}
	if !e.End.IsSet() {
		warnings = append(warnings, fmt.Sprintf("%s: end time missing", e.Date))
	}
	return warnings
}

func absenceKind(e domain.TimeEntry) string {
	switch {
	case e.IsSick:
		return "sick"
	case e.IsVacation:
		return "vacation"
	default:
		return "leave"
	}
}

func sortedCopy(entries []domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(entries))
	copy(out, entries)
	domain.SortEntries(out)
	return out
}
