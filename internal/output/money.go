package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when a contract does not name one
const DefaultCurrency = domain.DefaultCurrency

// currencyUnit resolves an ISO 4217 code, falling back to the euro
func currencyUnit(code string) currency.Unit {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return currency.EUR
	}
	return unit
}

// CurrencySymbol returns the display symbol for an ISO 4217 code
func CurrencySymbol(code string) string {
	return fmt.Sprint(currency.Symbol(currencyUnit(code)))
}

// FormatCurrency formats an amount in cents with its currency symbol, e.g. "€ 1234.50"
func FormatCurrency(amount domain.Cents, code string) string {
	return CurrencySymbol(code) + " " + FormatAmount(amount)
}

// FormatAmount formats cents as major units with two decimals
func FormatAmount(amount domain.Cents) string {
	return domain.CentsToMajor(amount).StringFixed(2)
}

// FormatHours formats hours with two decimals
func FormatHours(h decimal.Decimal) string {
	return h.StringFixed(2) + "h"
}

// FormatMinutes formats a minute count as hours
func FormatMinutes(m int) string {
	return FormatHours(domain.MinutesToHours(m))
}
