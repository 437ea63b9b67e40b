package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
)

// MealDay is what the meal allowance rules need to know about one worked date
type MealDay struct {
	Date           domain.Date
	RegularMinutes int
	WorkedMinutes  int
	IsHoliday      bool
	IsVacation     bool
	IsSick         bool
	IsException    bool
}

// MealAllowanceForDay returns the allowance paid for one day and whether the configured
// amount was reduced to the tax-exempt ceiling of the payment method.
//
// Rules, in order: a zero amount pays nothing; sick and leave days pay nothing;
// excluded months pay nothing unless duodecimos is on; with duodecimos any day with
// worked time pays; holidays and vacation days pay only as exceptions with enough
// regular time; any other day pays once regular time reaches the minimum.
func MealAllowanceForDay(day MealDay, cfg domain.MealAllowanceConfig, rules domain.StatutoryRules) (domain.Cents, bool) {
	if cfg.DailyAmount <= 0 || day.IsSick {
		return 0, false
	}
	if !cfg.Duodecimos && cfg.Excludes(int(day.Date.Month())) {
		return 0, false
	}

	ceiling := rules.MealCeiling(cfg.PaymentMethod)
	amount := domain.MinCents(cfg.DailyAmount, ceiling)
	capped := cfg.DailyAmount > ceiling

	if cfg.Duodecimos {
		if day.RegularMinutes > 0 || day.WorkedMinutes > 0 {
			return amount, capped
		}
		return 0, false
	}

	enough := day.RegularMinutes >= cfg.MinimumMinutes()
	if day.IsHoliday || day.IsVacation {
		if !day.IsException || !enough {
			return 0, false
		}
		return amount, capped
	}
	if !enough {
		return 0, false
	}
	return amount, capped
}

// MealAllowance sums the allowance over a set of days and counts the days that were
// capped. Days are merged by date first, so two entries on one date count once.
func MealAllowance(days []MealDay, cfg domain.MealAllowanceConfig, rules domain.StatutoryRules) (domain.Cents, int) {
	merged := mergeMealDays(days)
	var total domain.Cents
	cappedDays := 0
	for _, d := range merged {
		paid, capped := MealAllowanceForDay(d, cfg, rules)
		total += paid
		if capped && paid > 0 {
			cappedDays++
		}
	}
	return total, cappedDays
}

func mergeMealDays(days []MealDay) []MealDay {
	index := make(map[string]int, len(days))
	var out []MealDay
	for _, d := range days {
		key := d.Date.String()
		i, ok := index[key]
		if !ok {
			out = append(out, d)
			index[key] = len(out) - 1
			continue
		}
		m := &out[i]
		m.RegularMinutes += d.RegularMinutes
		m.WorkedMinutes += d.WorkedMinutes
		m.IsHoliday = m.IsHoliday || d.IsHoliday
		m.IsVacation = m.IsVacation || d.IsVacation
		m.IsSick = m.IsSick || d.IsSick
		m.IsException = m.IsException || d.IsException
	}
	return out
}
