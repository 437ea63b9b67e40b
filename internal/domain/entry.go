package domain

import (
	"sort"
)

// TimeEntry is one day of attendance. An end at or before the start means the shift
// ended on the following day.
type TimeEntry struct {
	ID           string    `yaml:"id,omitempty" json:"id,omitempty"`
	ContractID   string    `yaml:"contract_id,omitempty" json:"contract_id,omitempty"`
	Date         Date      `yaml:"date" json:"date"`
	Start        ClockTime `yaml:"start_time" json:"start_time"`
	End          ClockTime `yaml:"end_time" json:"end_time"`
	BreakMinutes int       `yaml:"break_minutes" json:"break_minutes"`
	Description  string    `yaml:"description,omitempty" json:"description,omitempty"`
	IsHoliday    bool      `yaml:"is_holiday,omitempty" json:"is_holiday,omitempty"`
	IsSick       bool      `yaml:"is_sick,omitempty" json:"is_sick,omitempty"`
	IsVacation   bool      `yaml:"is_vacation,omitempty" json:"is_vacation,omitempty"`
	IsLeave      bool      `yaml:"is_leave,omitempty" json:"is_leave,omitempty"`
	IsException  bool      `yaml:"is_exception,omitempty" json:"is_exception,omitempty"`
}

// IsAbsence reports whether the day is sick leave, vacation or other leave
func (e TimeEntry) IsAbsence() bool {
	return e.IsSick || e.IsVacation || e.IsLeave
}

// HasTimes reports whether both start and end were recorded
func (e TimeEntry) HasTimes() bool {
	return e.Start.IsSet() && e.End.IsSet()
}

// SortEntries orders entries by date, breaking ties on every field that affects the
// outcome so that any permutation of the same entries sorts identically.
func SortEntries(entries []TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return lessEntry(entries[i], entries[j])
	})
}

func lessEntry(a, b TimeEntry) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	if a.Start != b.Start {
		return clockLess(a.Start, b.Start)
	}
	if a.End != b.End {
		return clockLess(a.End, b.End)
	}
	if a.BreakMinutes != b.BreakMinutes {
		return a.BreakMinutes < b.BreakMinutes
	}
	return flagBits(a) < flagBits(b)
}

func clockLess(a, b ClockTime) bool {
	if a.IsSet() != b.IsSet() {
		return !a.IsSet()
	}
	return a.Minutes() < b.Minutes()
}

func flagBits(e TimeEntry) int {
	bits := 0
	for i, f := range []bool{e.IsHoliday, e.IsSick, e.IsVacation, e.IsLeave, e.IsException} {
		if f {
			bits |= 1 << i
		}
	}
	return bits
}

// VacationPeriod is an inclusive range of vacation days
type VacationPeriod struct {
	Start    Date `yaml:"start_date" json:"start_date"`
	End      Date `yaml:"end_date" json:"end_date"`
	Approved bool `yaml:"is_approved" json:"is_approved"`
}

// Contains reports whether a date falls inside the period
func (v VacationPeriod) Contains(d Date) bool {
	return !d.Before(v.Start) && !d.After(v.End)
}

// ApplyVacations returns a copy of entries with IsVacation set on every entry whose
// date falls inside an approved period. The input slice is not modified.
func ApplyVacations(entries []TimeEntry, periods []VacationPeriod) []TimeEntry {
	out := make([]TimeEntry, len(entries))
	copy(out, entries)
	for i := range out {
		for _, p := range periods {
			if p.Approved && p.Contains(out[i].Date) {
				out[i].IsVacation = true
				break
			}
		}
	}
	return out
}
