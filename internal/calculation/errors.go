package calculation

import (
	"errors"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// Input errors. A calculation that returns one of these produced no result and
// nothing was cached.
var (
	ErrInvalidInput        = errors.New("invalid calculation input")
	ErrMissingContract     = errors.New("contract is required")
	ErrMissingPolicy       = errors.New("overtime policy is required")
	ErrNonPositiveRate     = domain.ErrNonPositiveRate
	ErrNonPositiveSalary   = domain.ErrNonPositiveSalary
	ErrBelowMinimumWage    = errors.New("base salary is below the statutory minimum")
	ErrCapExceedsStatutory = errors.New("policy cap exceeds the statutory maximum")
	ErrInvalidEntry        = errors.New("invalid time entry")
	ErrInvalidTrip         = errors.New("invalid mileage trip")
)

// Time entry errors reported by ValidateEntry
var (
	ErrMissingDate         = errors.New("date is required")
	ErrMissingStartTime    = errors.New("start time is required")
	ErrMissingEndTime      = errors.New("end time is required")
	ErrZeroSpan            = errors.New("end time must differ from start time")
	ErrExceedsDailyMaximum = errors.New("worked time exceeds the daily maximum")
	ErrNegativeBreak       = errors.New("break minutes cannot be negative")
	ErrBreakTooLong        = errors.New("break must be shorter than the shift")
)
