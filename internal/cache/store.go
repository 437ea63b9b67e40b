// Package cache stores finished payroll calculations by content hash.
package cache

import (
	"context"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// Entry is a cached calculation and the time it was stored
type Entry struct {
	Calculation domain.PayrollCalculation `json:"calculation"`
	StoredAt    time.Time                 `json:"stored_at"`
}

// Store is the backing store for cached calculations. Implementations must be safe for
// concurrent use and must return copies, never shared values.
//
// Expiry is checked lazily: Get reports a miss for an entry whose TTL has passed and
// may drop it. A TTL of zero or less never expires.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, value Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
	Len(ctx context.Context) (int, error)
}

// Clock returns the current time. Stores take one so tests can move time forward.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// NopStore never stores anything
type NopStore struct{}

func (NopStore) Get(context.Context, string) (Entry, bool, error)        { return Entry{}, false, nil }
func (NopStore) Set(context.Context, string, Entry, time.Duration) error { return nil }
func (NopStore) Clear(context.Context) error                             { return nil }
func (NopStore) Len(context.Context) (int, error)                        { return 0, nil }

func cloneEntry(e Entry) Entry {
	return Entry{Calculation: e.Calculation.Clone(), StoredAt: e.StoredAt}
}
