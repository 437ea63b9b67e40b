package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// CalculateMileage returns the reimbursement for a set of trips. Each trip is rounded to
// the cent on its own before summing. A monthly cap, when present and not negative,
// truncates the total; the second return value reports whether it did.
func CalculateMileage(trips []domain.MileageTrip, policy domain.MileagePolicy) (domain.Cents, bool) {
	var total domain.Cents
	for _, t := range trips {
		total += domain.RoundCents(t.Km.Mul(policy.RatePerKm.Decimal()))
	}
	if total < 0 {
		total = 0
	}
	if policy.MonthlyCap != nil && *policy.MonthlyCap >= 0 && total > *policy.MonthlyCap {
		return *policy.MonthlyCap, true
	}
	return total, false
}

// ValidateTrips rejects trips without a date or with a distance that is not positive
func ValidateTrips(trips []domain.MileageTrip) error {
	for i, t := range trips {
		if t.Date.IsZero() {
			return fmt.Errorf("trip %d has no date: %w", i+1, ErrInvalidTrip)
		}
		if !t.Km.IsPositive() {
			return fmt.Errorf("trip on %s has distance %s km: %w", t.Date, t.Km, ErrInvalidTrip)
		}
	}
	return nil
}
