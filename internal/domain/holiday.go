package domain

import (
	"sort"
)

// Holiday types
const (
	HolidayNational  = "national"
	HolidayRegional  = "regional"
	HolidayMunicipal = "municipal"
	HolidayCompany   = "company"
)

// Holiday represents a public or company holiday
type Holiday struct {
	Date            Date   `yaml:"date" json:"date"`
	Name            string `yaml:"name" json:"name"`
	Type            string `yaml:"type,omitempty" json:"type,omitempty"`
	IsPaid          bool   `yaml:"is_paid" json:"is_paid"`
	AffectsOvertime bool   `yaml:"affects_overtime" json:"affects_overtime"`
}

// HolidaySet indexes holidays by date. When two holidays share a date the one that
// affects overtime wins, then the lexically smaller name, so the set does not depend
// on input order.
type HolidaySet struct {
	byDate map[string]Holiday
}

// NewHolidaySet builds a set from a list of holidays
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := HolidaySet{byDate: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		key := h.Date.String()
		if existing, ok := set.byDate[key]; ok && !preferHoliday(h, existing) {
			continue
		}
		set.byDate[key] = h
	}
	return set
}

func preferHoliday(candidate, existing Holiday) bool {
	if candidate.AffectsOvertime != existing.AffectsOvertime {
		return candidate.AffectsOvertime
	}
	return candidate.Name < existing.Name
}

// Lookup returns the holiday on a date, if any
func (s HolidaySet) Lookup(d Date) (Holiday, bool) {
	h, ok := s.byDate[d.String()]
	return h, ok
}

// OvertimeHoliday returns the holiday on a date only when it affects overtime
func (s HolidaySet) OvertimeHoliday(d Date) (Holiday, bool) {
	h, ok := s.Lookup(d)
	if !ok || !h.AffectsOvertime {
		return Holiday{}, false
	}
	return h, true
}

// Len returns the number of distinct holiday dates
func (s HolidaySet) Len() int {
	return len(s.byDate)
}

// All returns the holidays sorted by date
func (s HolidaySet) All() []Holiday {
	out := make([]Holiday, 0, len(s.byDate))
	for _, h := range s.byDate {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
