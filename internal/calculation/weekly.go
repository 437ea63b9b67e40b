package calculation

import (
	"sort"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// WeeklySummary totals one Monday-to-Sunday week
type WeeklySummary struct {
	WeekStart       domain.Date     `json:"week_start"`
	WeekEnd         domain.Date     `json:"week_end"`
	RegularMinutes  int             `json:"regular_minutes"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	Days            []DailyOvertime `json:"days"`
	LimitExceeded   bool            `json:"weekly_limit_exceeded"`
	LimitHours      decimal.Decimal `json:"weekly_limit_hours"`
}

// TotalHours is regular plus billed overtime hours
func (w WeeklySummary) TotalHours() decimal.Decimal {
	return domain.MinutesToHours(w.RegularMinutes + w.OvertimeMinutes)
}

func (w WeeklySummary) RegularHours() decimal.Decimal {
	return domain.MinutesToHours(w.RegularMinutes)
}

func (w WeeklySummary) OvertimeHours() decimal.Decimal {
	return domain.MinutesToHours(w.OvertimeMinutes)
}

// CalculateWeeklyOvertime groups entries into Monday-start weeks and flags weeks whose
// total hours exceed the policy's weekly limit. Weeks are returned in date order.
func (x Extractor) CalculateWeeklyOvertime(entries []domain.TimeEntry) []WeeklySummary {
	sorted := sortedCopy(entries)
	days := make([]DailyOvertime, 0, len(sorted))
	for _, e := range sorted {
		days = append(days, x.Day(e))
	}
	return x.weeks(days)
}

// weeks groups daily results, which must already be sorted by date
func (x Extractor) weeks(days []DailyOvertime) []WeeklySummary {
	index := make(map[string]int)
	var out []WeeklySummary
	for _, d := range days {
		start := d.Date.WeekStart()
		key := start.String()
		i, ok := index[key]
		if !ok {
			out = append(out, WeeklySummary{
				WeekStart:  start,
				WeekEnd:    start.AddDays(6),
				LimitHours: x.policy.WeeklyLimitHours,
			})
			i = len(out) - 1
			index[key] = i
		}
		w := &out[i]
		w.Days = append(w.Days, d)
		w.RegularMinutes += d.RegularMinutes
		w.OvertimeMinutes += d.OvertimeMinutes
	}
	for i := range out {
		out[i].LimitExceeded = out[i].TotalHours().GreaterThan(out[i].LimitHours)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}
