package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// ValidateInput returns every hard error in the input, joined. Missing start or end
// times are not hard errors: such entries contribute nothing and produce a warning.
func ValidateInput(in domain.CalculationInput, rules domain.StatutoryRules) error {
	var errs []error

	if in.Contract == nil {
		errs = append(errs, ErrMissingContract)
	} else {
		if err := in.Contract.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("contract: %w", err))
		}
		if in.Contract.BaseSalary > 0 && in.Contract.BaseSalary < rules.MinimumMonthlySalary {
			errs = append(errs, fmt.Errorf("base salary %s below %s: %w",
				formatEuros(in.Contract.BaseSalary), formatEuros(rules.MinimumMonthlySalary), ErrBelowMinimumWage))
		}
	}

	if in.Policy == nil {
		errs = append(errs, ErrMissingPolicy)
	} else if policy, err := domain.NewOvertimePolicy(*in.Policy); err != nil {
		errs = append(errs, fmt.Errorf("%w: overtime policy: %w", ErrInvalidInput, err))
	} else {
		errs = append(errs, checkStatutoryCaps(policy, rules)...)
	}

	if in.Month < 0 || in.Month > 12 {
		errs = append(errs, fmt.Errorf("%w: month %d: %w", ErrInvalidInput, in.Month, domain.ErrInvalidMonth))
	}
	if in.YearToDateOvertimeHours.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: year_to_date_overtime_hours cannot be negative", ErrInvalidInput))
	}

	for _, e := range in.Entries {
		if err := entryHardErrors(e, rules); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidEntry, err))
		}
	}
	if err := ValidateTrips(in.Trips); err != nil {
		errs = append(errs, err)
	}
	if in.MileagePolicy != nil && in.MileagePolicy.RatePerKm < 0 {
		errs = append(errs, fmt.Errorf("%w: mileage rate cannot be negative", ErrInvalidInput))
	}
	if in.MealAllowance != nil {
		if err := in.MealAllowance.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: meal allowance: %w", ErrInvalidInput, err))
		}
	}
	if in.Deductions != nil {
		if err := in.Deductions.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: deductions: %w", ErrInvalidInput, err))
		}
	}
	if in.Subsidies != nil {
		if err := in.Subsidies.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: subsidies: %w", ErrInvalidInput, err))
		}
	}
	if in.Bonus != nil && (in.Bonus.Percent.IsNegative() || in.Bonus.MinimumWorkedDays < 0) {
		errs = append(errs, fmt.Errorf("%w: bonus rule cannot be negative", ErrInvalidInput))
	}

	return errors.Join(errs...)
}

func checkStatutoryCaps(p domain.OvertimePolicy, rules domain.StatutoryRules) []error {
	var errs []error
	if rules.MaxDailyOvertimeHours.IsPositive() && p.DailyLimitHours.GreaterThan(rules.MaxDailyOvertimeHours) {
		errs = append(errs, fmt.Errorf("daily_limit_hours %s exceeds %s: %w",
			p.DailyLimitHours, rules.MaxDailyOvertimeHours, ErrCapExceedsStatutory))
	}
	if rules.MaxWeeklyHours.IsPositive() && p.WeeklyLimitHours.GreaterThan(rules.MaxWeeklyHours) {
		errs = append(errs, fmt.Errorf("weekly_limit_hours %s exceeds %s: %w",
			p.WeeklyLimitHours, rules.MaxWeeklyHours, ErrCapExceedsStatutory))
	}
	if rules.MaxAnnualOvertimeHours.IsPositive() && p.AnnualLimitHours.GreaterThan(rules.MaxAnnualOvertimeHours) {
		errs = append(errs, fmt.Errorf("annual_limit_hours %s exceeds %s: %w",
			p.AnnualLimitHours, rules.MaxAnnualOvertimeHours, ErrCapExceedsStatutory))
	}
	return errs
}

// entryHardErrors validates an entry and drops the missing-time errors, which the
// extractor reports as warnings. Absence days are not checked.
func entryHardErrors(e domain.TimeEntry, rules domain.StatutoryRules) error {
	if e.IsAbsence() {
		if e.Date.IsZero() {
			return ErrMissingDate
		}
		return nil
	}
	var hard []error
	for _, err := range ValidateEntry(e, rules).Errors {
		if errors.Is(err, ErrMissingStartTime) || errors.Is(err, ErrMissingEndTime) {
			continue
		}
		hard = append(hard, err)
	}
	return errors.Join(hard...)
}

// Prepare fills policy defaults, merges approved vacations into the entries, sorts
// the entries and resolves the period. The input must have passed ValidateInput.
func Prepare(in domain.CalculationInput) (domain.CalculationInput, error) {
	out := in
	policy, err := domain.NewOvertimePolicy(*in.Policy)
	if err != nil {
		return domain.CalculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	out.Policy = &policy

	out.Entries = domain.ApplyVacations(in.Entries, in.Vacations)
	domain.SortEntries(out.Entries)
	out.Vacations = nil

	if out.Year == 0 || out.Month == 0 {
		if len(out.Entries) > 0 {
			first := out.Entries[0].Date
			if out.Year == 0 {
				out.Year = first.Year()
			}
			if out.Month == 0 {
				out.Month = int(first.Month())
			}
		}
	}
	return out, nil
}

// CalcMonth computes one month of payroll. It validates and prepares the input itself,
// so it can be called directly as well as through the Engine.
func CalcMonth(in domain.CalculationInput, rules domain.StatutoryRules) (domain.PayrollCalculation, error) {
	if err := ValidateInput(in, rules); err != nil {
		return domain.PayrollCalculation{}, err
	}
	prepared, err := Prepare(in)
	if err != nil {
		return domain.PayrollCalculation{}, err
	}
	return calcPrepared(prepared, rules)
}

// PrepareExtractor validates and prepares an input and returns the extractor a month
// calculation would use, together with the prepared input.
func PrepareExtractor(in domain.CalculationInput, rules domain.StatutoryRules) (Extractor, domain.CalculationInput, error) {
	if err := ValidateInput(in, rules); err != nil {
		return Extractor{}, domain.CalculationInput{}, err
	}
	prepared, err := Prepare(in)
	if err != nil {
		return Extractor{}, domain.CalculationInput{}, err
	}
	x, err := preparedExtractor(prepared, domain.NewHolidaySet(prepared.Holidays))
	if err != nil {
		return Extractor{}, domain.CalculationInput{}, err
	}
	return x, prepared, nil
}

func preparedExtractor(in domain.CalculationInput, holidays domain.HolidaySet) (Extractor, error) {
	x, err := NewExtractor(*in.Policy, holidays, in.Contract.HourlyRate)
	if err != nil {
		return Extractor{}, err
	}
	return x.WithYearToDate(in.YearToDateOvertimeHours), nil
}

func calcPrepared(in domain.CalculationInput, rules domain.StatutoryRules) (domain.PayrollCalculation, error) {
	contract := *in.Contract
	holidays := domain.NewHolidaySet(in.Holidays)

	extractor, err := preparedExtractor(in, holidays)
	if err != nil {
		return domain.PayrollCalculation{}, err
	}
	breakdown := extractor.ExtractOvertimeFromTimesheet(in.Entries)

	calc := domain.PayrollCalculation{
		Year:          in.Year,
		Month:         in.Month,
		RegularHours:  domain.MinutesToHours(breakdown.RegularMinutes),
		OvertimeHours: breakdown.Hours,
		RegularPay:    breakdown.RegularPay,
		OvertimePay:   breakdown.Pay,
	}
	warnings := append([]string(nil), breakdown.Warnings...)

	// breakdown.Daily is in the same order as in.Entries, which Prepare sorted.
	// Meal days use the recorded time even on vacation so that exceptions can qualify.
	threshold := in.Policy.ThresholdMinutes()
	mealDays := make([]MealDay, 0, len(in.Entries))
	workedDates := make(map[string]struct{})
	for i, e := range in.Entries {
		day := breakdown.Daily[i]
		if day.WorkedMinutes > 0 {
			workedDates[e.Date.String()] = struct{}{}
		}
		if rules.CompensatoryRestOnSundays {
			if rest := CheckCompensatoryRest(e.Date, day.WorkedMinutes); rest.Required {
				warnings = append(warnings, fmt.Sprintf("%s: Sunday work requires %sh of compensatory rest",
					e.Date, rest.Hours.StringFixed(2)))
			}
		}
		_, onHoliday := holidays.Lookup(e.Date)
		worked := WorkingMinutes(e)
		mealDays = append(mealDays, MealDay{
			Date:           e.Date,
			RegularMinutes: min(worked, threshold),
			WorkedMinutes:  worked,
			IsHoliday:      e.IsHoliday || onHoliday,
			IsVacation:     e.IsVacation,
			IsSick:         e.IsSick || e.IsLeave,
			IsException:    e.IsException,
		})
	}
	calc.WorkedDays = len(workedDates)

	mealCfg := domain.MealAllowanceConfig{DailyAmount: contract.MealAllowancePerDay, PaymentMethod: domain.PaymentCard}
	if in.MealAllowance != nil {
		mealCfg = *in.MealAllowance
	}
	var cappedDays int
	calc.MealAllowance, cappedDays = MealAllowance(mealDays, mealCfg, rules)
	if cappedDays > 0 {
		warnings = append(warnings, fmt.Sprintf("meal allowance of %s capped at the %s %s ceiling on %d day(s)",
			formatEuros(mealCfg.DailyAmount), formatEuros(rules.MealCeiling(mealCfg.PaymentMethod)),
			paymentMethodName(mealCfg.PaymentMethod), cappedDays))
	}

	mileagePolicy := domain.MileagePolicy{RatePerKm: domain.DefaultMileageRate}
	if in.MileagePolicy != nil {
		mileagePolicy = *in.MileagePolicy
	}
	var mileageCapped bool
	calc.MileageReimbursement, mileageCapped = CalculateMileage(in.Trips, mileagePolicy)
	if mileageCapped {
		warnings = append(warnings, fmt.Sprintf("mileage reimbursement capped at the monthly limit of %s",
			formatEuros(calc.MileageReimbursement)))
	}

	if in.Subsidies != nil {
		months := in.Subsidies.WorkedMonths
		if months == 0 {
			months = 12
		}
		vacation := VacationSubsidy(contract.BaseSalary, months, in.Subsidies.Vacation.Proportional)
		christmas := ChristmasSubsidy(contract.BaseSalary, months, in.Subsidies.Christmas.Proportional)
		calc.VacationSubsidy = SubsidyForMonth(in.Subsidies.Vacation, vacation, in.Month)
		calc.ChristmasSubsidy = SubsidyForMonth(in.Subsidies.Christmas, christmas, in.Month)
	}

	bonusRule := domain.DefaultBonusRule
	if in.Bonus != nil {
		bonusRule = *in.Bonus
	}
	calc.Bonuses = CalculateBonus(calc.RegularPay, calc.WorkedDays, bonusRule)

	calc.GrossPay = calc.RegularPay + calc.OvertimePay.Total + calc.MealAllowance +
		calc.MileageReimbursement + calc.VacationSubsidy + calc.ChristmasSubsidy + calc.Bonuses

	deductions := NewDeductionCalculator(rules)
	warnings = append(warnings, deductions.Check(calc.GrossPay, in.Deductions)...)
	calc.Deductions = deductions.Calculate(calc.GrossPay, in.Deductions)
	calc.NetPay = calc.GrossPay - calc.Deductions.Total

	if len(warnings) > 0 {
		calc.Warnings = warnings
	}
	return calc.Canonical(), nil
}

func paymentMethodName(m domain.PaymentMethod) string {
	if m == domain.PaymentCash {
		return string(domain.PaymentCash)
	}
	return string(domain.PaymentCard)
}
