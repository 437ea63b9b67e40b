package calculation

import (
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Helper functions for building test inputs

func testContract() *domain.Contract {
	return &domain.Contract{
		ID:          "c0a8012e-0000-4000-8000-000000000001",
		Name:        "Full time",
		BaseSalary:  150000,
		HourlyRate:  1000,
		WeeklyHours: decimal.NewFromInt(40),
	}
}

func testPolicy(t *testing.T) domain.OvertimePolicy {
	t.Helper()
	p, err := domain.NewOvertimePolicy(domain.OvertimePolicy{})
	require.NoError(t, err)
	return p
}

func testExtractor(t *testing.T, holidays ...domain.Holiday) Extractor {
	t.Helper()
	x, err := NewExtractor(testPolicy(t), domain.NewHolidaySet(holidays), 1000)
	require.NoError(t, err)
	return x
}

func entry(date, start, end string, breakMinutes int) domain.TimeEntry {
	e := domain.TimeEntry{Date: domain.MustDate(date), BreakMinutes: breakMinutes}
	if start != "" {
		e.Start = domain.MustClock(start)
	}
	if end != "" {
		e.End = domain.MustClock(end)
	}
	return e
}

func testInput(entries ...domain.TimeEntry) domain.CalculationInput {
	return domain.CalculationInput{
		Year:     2024,
		Month:    1,
		Contract: testContract(),
		Policy:   &domain.OvertimePolicy{},
		Entries:  entries,
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func centsPtr(c domain.Cents) *domain.Cents {
	return &c
}

func hours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testClock is a clock that only moves when told to
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(level, format string) {
	tl.mu.Lock()
	tl.messages = append(tl.messages, level+": "+format)
	tl.mu.Unlock()
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) { tl.record("DEBUG", format) }
func (tl *TestLogger) Infof(format string, args ...interface{})  { tl.record("INFO", format) }
func (tl *TestLogger) Warnf(format string, args ...interface{})  { tl.record("WARN", format) }
func (tl *TestLogger) Errorf(format string, args ...interface{}) { tl.record("ERROR", format) }

func (tl *TestLogger) Messages() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return append([]string(nil), tl.messages...)
}
