// Package money converts integer minor-unit amounts to decimal major units
// at the presentation boundary. All computation elsewhere stays in int64
// minor units so rounding never compounds.
package money

import "github.com/shopspring/decimal"

// FromMinorUnits converts an amount in minor units (cents) to a decimal
// in major units with two decimal places.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// Format renders a minor-unit amount as a fixed two-decimal string,
// rounding half away from zero.
func Format(amount int64) string {
	return decimal.New(amount, -2).Round(2).StringFixed(2)
}
