// Package types - Boundary rounding policy
// Applied once at the result boundary to avoid compounding rounding error.
package types

import "github.com/shopspring/decimal"

// RoundMoney rounds a monetary value to 2 decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundPercent rounds a percentage to 4 decimal places
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// RoundWeight rounds a weight in kilograms to 2 decimal places
func RoundWeight(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundVolume rounds a volume in CBM to 4 decimal places
func RoundVolume(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}
