package domain

import (
	"github.com/shopspring/decimal"
)

// Cents is an amount of money in minor currency units
type Cents int64

var hundred = decimal.NewFromInt(100)

// Decimal returns the amount as a decimal number of cents
func (c Cents) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c))
}

// RoundCents rounds a fractional cent amount half away from zero
func RoundCents(d decimal.Decimal) Cents {
	return Cents(d.Round(0).IntPart())
}

// CentsToMajor converts cents to major currency units (e.g. 1050 -> 10.50)
func CentsToMajor(c Cents) decimal.Decimal {
	return c.Decimal().Div(hundred)
}

// MajorToCents converts a major currency amount to cents, rounding half away from zero
func MajorToCents(amount decimal.Decimal) Cents {
	return RoundCents(amount.Mul(hundred))
}

// Percent applies a percentage to an amount and rounds to the nearest cent
func (c Cents) Percent(pct decimal.Decimal) Cents {
	return RoundCents(c.Decimal().Mul(pct).Div(hundred))
}

// MinCents returns the smaller of two amounts
func MinCents(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}
