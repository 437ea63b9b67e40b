package domain

import "errors"

// Validation errors returned by the constructors in this package
var (
	ErrNonPositiveSalary = errors.New("salary must be greater than zero")
	ErrNonPositiveRate   = errors.New("hourly rate must be greater than zero")
	ErrInvalidMultiplier = errors.New("multiplier out of range")
	ErrInvalidThreshold  = errors.New("overtime threshold out of range")
	ErrNegativeCap       = errors.New("cap cannot be negative")
	ErrInvalidRounding   = errors.New("rounding minutes out of range")
	ErrInvalidPercentage = errors.New("percentage out of range")
	ErrInvalidMonth      = errors.New("month out of range")
)
