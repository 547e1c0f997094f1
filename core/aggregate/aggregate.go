// Package aggregate sums the component costs into the landed total.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"trade-cost/internal/errors"
)

// Components are the per-stage costs entering the total
type Components struct {
	BaseCost        decimal.Decimal
	Freight         decimal.Decimal
	Insurance       decimal.Decimal
	Customs         decimal.Decimal
	InlandTransport decimal.Decimal
}

// TotalLandedCost returns the exact decimal sum of all components.
// A negative total should be structurally impossible given upstream
// validation; it is still guarded because every stage after this one
// divides by or percentages against it.
func TotalLandedCost(c Components) (decimal.Decimal, error) {
	total := c.BaseCost.
		Add(c.Freight).
		Add(c.Insurance).
		Add(c.Customs).
		Add(c.InlandTransport)
	if total.IsNegative() {
		return decimal.Zero, errors.Aggregation(
			fmt.Sprintf("total landed cost is negative: %s", total))
	}
	return total, nil
}

// CostPerUnit divides the total across the shipment quantity
func CostPerUnit(total decimal.Decimal, quantity int64) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, errors.Aggregation("quantity must be greater than zero to compute cost per unit")
	}
	if total.IsNegative() {
		return decimal.Zero, errors.Aggregation("total landed cost must not be negative to compute cost per unit")
	}
	return total.Div(decimal.NewFromInt(quantity)), nil
}
