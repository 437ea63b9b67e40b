package calculation

import (
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Span is a contiguous stretch of worked time
type Span struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Minutes      int       `json:"minutes"`
	Overtime     bool      `json:"overtime"`
	NightMinutes int       `json:"night_minutes"`
}

// Hours returns the span length in hours
func (s Span) Hours() decimal.Decimal {
	return domain.MinutesToHours(s.Minutes)
}

// SegmentEntry splits an entry into a regular span and, when worked time exceeds the
// threshold, an overtime span.
//
// Spans are laid end to end from the start instant and cover the net worked time, so
// the break is treated as if it were taken at the end of the shift and overtime is
// always the tail of the shift. A shift that starts inside the night window therefore
// attributes its early night time to regular hours.
func SegmentEntry(e domain.TimeEntry, policy domain.OvertimePolicy, thresholdHours decimal.Decimal) []Span {
	if !e.HasTimes() {
		return nil
	}
	worked := WorkingMinutes(e)
	threshold := domain.HoursToMinutes(thresholdHours)
	start := e.Date.At(e.Start)

	if worked <= threshold {
		end := start.Add(time.Duration(worked) * time.Minute)
		return []Span{{
			Start:        start,
			End:          end,
			Minutes:      worked,
			NightMinutes: NightMinutes(start, end, policy),
		}}
	}

	boundary := start.Add(time.Duration(threshold) * time.Minute)
	end := start.Add(time.Duration(worked) * time.Minute)
	return []Span{
		{
			Start:        start,
			End:          boundary,
			Minutes:      threshold,
			NightMinutes: NightMinutes(start, boundary, policy),
		},
		{
			Start:        boundary,
			End:          end,
			Minutes:      worked - threshold,
			Overtime:     true,
			NightMinutes: NightMinutes(boundary, end, policy),
		},
	}
}

// NightMinutes returns how many minutes of [from, to) fall inside the policy's night
// window. The window may cross midnight and is checked on every day the interval
// touches. A window whose start equals its end is empty.
func NightMinutes(from, to time.Time, policy domain.OvertimePolicy) int {
	if !to.After(from) || !policy.NightStart.IsSet() || !policy.NightEnd.IsSet() {
		return 0
	}
	windowLen := policy.NightEnd.Minutes() - policy.NightStart.Minutes()
	if windowLen == 0 {
		return 0
	}
	if windowLen < 0 {
		windowLen += minutesPerDay
	}

	total := 0
	first := domain.DateOf(from).AddDays(-1)
	last := domain.DateOf(to)
	for d := first; !d.After(last); d = d.AddDays(1) {
		ws := d.At(policy.NightStart)
		we := ws.Add(time.Duration(windowLen) * time.Minute)
		total += overlapMinutes(from, to, ws, we)
	}
	return total
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
