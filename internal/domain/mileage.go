package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultMileageRate is the per-km rate used when no policy is configured (0.40 EUR)
const DefaultMileageRate Cents = 40

// MileageTrip is a reimbursable business trip
type MileageTrip struct {
	ID          string          `yaml:"id,omitempty" json:"id,omitempty"`
	PolicyID    string          `yaml:"policy_id,omitempty" json:"policy_id,omitempty"`
	Date        Date            `yaml:"date" json:"date"`
	Origin      string          `yaml:"origin,omitempty" json:"origin,omitempty"`
	Destination string          `yaml:"destination,omitempty" json:"destination,omitempty"`
	Km          decimal.Decimal `yaml:"km" json:"km"`
	Purpose     string          `yaml:"purpose,omitempty" json:"purpose,omitempty"`
}

// MileagePolicy sets the reimbursement rate and an optional monthly cap
type MileagePolicy struct {
	ID         string `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	RatePerKm  Cents  `yaml:"rate_per_km_cents" json:"rate_per_km_cents"`
	MonthlyCap *Cents `yaml:"monthly_cap_cents,omitempty" json:"monthly_cap_cents,omitempty"`
}
