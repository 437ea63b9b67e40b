package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// keyVersion is bumped whenever the normalized form changes so stale SQLite entries
// stop matching.
const keyVersion = 2

type keyDocument struct {
	Version int                     `json:"v"`
	Input   domain.CalculationInput `json:"input"`
	Rules   domain.StatutoryRules   `json:"rules"`
}

// Key returns the hex SHA-256 of the normalized input and rules. Inputs that differ only
// in ids, names, descriptions, the contract's display and planning fields or the order of
// their lists produce the same key.
func Key(in domain.CalculationInput, rules domain.StatutoryRules) (string, error) {
	doc, err := canonical(in, rules)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:]), nil
}

// KeyFNV hashes the same normalized form with 64-bit FNV-1a. It is not collision
// resistant; use it only where a short deterministic key is enough.
func KeyFNV(in domain.CalculationInput, rules domain.StatutoryRules) (string, error) {
	doc, err := canonical(in, rules)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	h.Write(doc)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func canonical(in domain.CalculationInput, rules domain.StatutoryRules) ([]byte, error) {
	rules.Metadata = domain.StatutoryMetadata{}
	doc, err := json.Marshal(keyDocument{Version: keyVersion, Input: Normalize(in), Rules: rules})
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache key: %w", err)
	}
	return doc, nil
}

// Normalize returns a copy of the input with every field that cannot change the result
// cleared and every list in a fixed order. The input is not modified.
func Normalize(in domain.CalculationInput) domain.CalculationInput {
	out := in

	if in.Contract != nil {
		c := *in.Contract
		c.ID, c.Name = "", ""
		// only the planned schedule reads these
		c.Currency = ""
		c.WeeklyHours = decimal.Decimal{}
		c.Schedule = domain.WeeklySchedule{}
		out.Contract = &c
	}
	if in.Policy != nil {
		p := *in.Policy
		p.ID, p.Name = "", ""
		out.Policy = &p
	}
	if in.MileagePolicy != nil {
		m := *in.MileagePolicy
		m.ID, m.Name = "", ""
		out.MileagePolicy = &m
	}
	if in.MealAllowance != nil {
		m := *in.MealAllowance
		m.ExcludedMonths = append([]int(nil), m.ExcludedMonths...)
		sort.Ints(m.ExcludedMonths)
		out.MealAllowance = &m
	}

	out.Entries = make([]domain.TimeEntry, len(in.Entries))
	for i, e := range in.Entries {
		e.ID, e.ContractID, e.Description = "", "", ""
		out.Entries[i] = e
	}
	domain.SortEntries(out.Entries)

	// Only the date and the overtime flag of a holiday reach the calculation. Going
	// through the set also resolves duplicate dates the way the calculation does.
	out.Holidays = nil
	for _, h := range domain.NewHolidaySet(in.Holidays).All() {
		out.Holidays = append(out.Holidays, domain.Holiday{Date: h.Date, AffectsOvertime: h.AffectsOvertime})
	}

	out.Trips = make([]domain.MileageTrip, len(in.Trips))
	for i, t := range in.Trips {
		out.Trips[i] = domain.MileageTrip{Date: t.Date, Km: t.Km}
	}
	sort.SliceStable(out.Trips, func(i, j int) bool {
		a, b := out.Trips[i], out.Trips[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		return a.Km.LessThan(b.Km)
	})

	out.Vacations = append([]domain.VacationPeriod(nil), in.Vacations...)
	sort.SliceStable(out.Vacations, func(i, j int) bool {
		a, b := out.Vacations[i], out.Vacations[j]
		if c := a.Start.Compare(b.Start); c != 0 {
			return c < 0
		}
		if c := a.End.Compare(b.End); c != 0 {
			return c < 0
		}
		return !a.Approved && b.Approved
	})
	if len(out.Vacations) == 0 {
		out.Vacations = nil
	}
	return out
}
