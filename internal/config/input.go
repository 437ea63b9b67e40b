package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rgehrsitz/paycalc/internal/calendar"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	hundred     = decimal.NewFromInt(100)
	hoursPerDay = decimal.NewFromInt(24)
)

// InputFile is the on-disk form of a calculation input. Besides the input itself it may
// name a workplace whose public holidays are added automatically.
type InputFile struct {
	domain.CalculationInput `yaml:",inline"`

	Workplace    string `yaml:"workplace,omitempty"`
	AutoHolidays bool   `yaml:"auto_holidays,omitempty"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a single calculation input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationInput, error) {
	inputs, err := ip.LoadAllFromFile(filename)
	if err != nil {
		return nil, err
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%s holds %d inputs, expected exactly one", filename, len(inputs))
	}
	return &inputs[0], nil
}

// LoadAllFromFile loads every YAML document in a file as a separate input
func (ip *InputParser) LoadAllFromFile(filename string) ([]domain.CalculationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	inputs, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return inputs, nil
}

// Parse decodes one or more YAML documents into calculation inputs
func (ip *InputParser) Parse(data []byte) ([]domain.CalculationInput, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var inputs []domain.CalculationInput
	for i := 0; ; i++ {
		var file InputFile
		err := dec.Decode(&file)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", i+1, err)
		}

		if err := ip.ValidateIdentifiers(&file.CalculationInput); err != nil {
			return nil, fmt.Errorf("document %d validation failed: %w", i+1, err)
		}
		assignIDs(&file.CalculationInput)
		if file.AutoHolidays {
			ip.addHolidays(&file)
		}
		inputs = append(inputs, file.CalculationInput)
	}
	if len(inputs) == 0 {
		return nil, errors.New("no calculation input found")
	}
	return inputs, nil
}

// addHolidays appends the public holidays of the workplace for the input's year. The
// year comes from the input, or from its first entry when not set.
func (ip *InputParser) addHolidays(file *InputFile) {
	year := file.Year
	if year == 0 {
		for _, e := range file.Entries {
			if !e.Date.IsZero() && (year == 0 || e.Date.Year() < year) {
				year = e.Date.Year()
			}
		}
	}
	if year == 0 {
		return
	}
	loc, _ := calendar.ParseLocation(file.Workplace)
	file.Holidays = append(file.Holidays, calendar.Holidays(year, loc)...)
}

// ValidateIdentifiers checks that every id present is a UUID and that entries belong to
// the contract. Ids are optional; values and limits are checked by the calculation.
func (ip *InputParser) ValidateIdentifiers(in *domain.CalculationInput) error {
	contractID := ""
	if in.Contract != nil {
		if err := validateID("contract id", in.Contract.ID); err != nil {
			return err
		}
		contractID = in.Contract.ID
	}
	if in.Policy != nil {
		if err := validateID("overtime policy id", in.Policy.ID); err != nil {
			return err
		}
	}
	if in.MileagePolicy != nil {
		if err := validateID("mileage policy id", in.MileagePolicy.ID); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for i, e := range in.Entries {
		if err := validateID(fmt.Sprintf("time entry %d id", i+1), e.ID); err != nil {
			return err
		}
		if e.ID != "" {
			if seen[e.ID] {
				return fmt.Errorf("time entry id %s is used more than once", e.ID)
			}
			seen[e.ID] = true
		}
		if err := validateID(fmt.Sprintf("time entry %d contract_id", i+1), e.ContractID); err != nil {
			return err
		}
		if e.ContractID != "" && contractID != "" && e.ContractID != contractID {
			return fmt.Errorf("time entry %d belongs to contract %s, not %s", i+1, e.ContractID, contractID)
		}
	}

	for i, t := range in.Trips {
		if err := validateID(fmt.Sprintf("mileage trip %d id", i+1), t.ID); err != nil {
			return err
		}
		if in.MileagePolicy != nil && t.PolicyID != "" && in.MileagePolicy.ID != "" && t.PolicyID != in.MileagePolicy.ID {
			return fmt.Errorf("mileage trip %d uses policy %s, not %s", i+1, t.PolicyID, in.MileagePolicy.ID)
		}
	}
	return nil
}

func validateID(field, id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q is not a valid UUID: %w", field, id, err)
	}
	return nil
}

// NewID returns a random id for entries created without one
func NewID() string {
	return uuid.NewString()
}

// assignIDs gives every time entry and trip without an id a fresh one, so warnings and
// reports can refer to them. Ids never reach the cache key.
func assignIDs(in *domain.CalculationInput) {
	for i := range in.Entries {
		if in.Entries[i].ID == "" {
			in.Entries[i].ID = NewID()
		}
	}
	for i := range in.Trips {
		if in.Trips[i].ID == "" {
			in.Trips[i].ID = NewID()
		}
	}
}

// LoadStatutory loads statutory rules from a YAML file. Fields missing from the file keep
// their default value. An empty filename returns the defaults.
func (ip *InputParser) LoadStatutory(filename string) (domain.StatutoryRules, error) {
	rules := domain.DefaultStatutoryRules()
	if filename == "" {
		return rules, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.StatutoryRules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.StatutoryRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateStatutory(rules); err != nil {
		return domain.StatutoryRules{}, fmt.Errorf("statutory rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateStatutory checks the loaded rules
func (ip *InputParser) ValidateStatutory(rules domain.StatutoryRules) error {
	if rules.MinimumMonthlySalary < 0 {
		return fmt.Errorf("minimum monthly salary cannot be negative")
	}
	if rules.MealCeilingCash < 0 || rules.MealCeilingCard < 0 {
		return fmt.Errorf("meal allowance ceilings cannot be negative")
	}
	if rules.SocialSecurityPercent.IsNegative() || rules.SocialSecurityPercent.GreaterThan(hundred) {
		return fmt.Errorf("social security percentage must be between 0 and 100")
	}
	if rules.MaxIncomeTaxPercent.IsNegative() || rules.MaxIncomeTaxPercent.GreaterThan(hundred) {
		return fmt.Errorf("maximum income tax percentage must be between 0 and 100")
	}
	if rules.MaxDailyOvertimeHours.IsNegative() || rules.MaxWeeklyHours.IsNegative() ||
		rules.MaxAnnualOvertimeHours.IsNegative() || rules.MaxDailyWorkedHours.IsNegative() {
		return fmt.Errorf("statutory hour limits cannot be negative")
	}
	if rules.MaxDailyWorkedHours.GreaterThan(hoursPerDay) {
		return fmt.Errorf("maximum daily worked hours cannot exceed 24")
	}
	return nil
}
