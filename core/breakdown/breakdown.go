// Package breakdown turns the aggregated components into a percentage
// waterfall with running cumulative totals.
package breakdown

import (
	"fmt"

	"github.com/shopspring/decimal"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Line is one candidate breakdown line
type Line struct {
	Component string
	Amount    decimal.Decimal
}

// Lines enumerates the cost lines in their fixed presentation order.
// The order is part of the output contract: breakdowns must be
// reproducible across runs.
func Lines(base *types.BaseCostResult, freight *types.FreightResult,
	insurance *types.InsuranceResult, customs *types.CustomsResult,
	inland *types.InlandTransportResult) []Line {

	lines := []Line{
		{"base_cost", base.NormalizedCost},
		{"freight", freight.SelectedCost},
		{"insurance", insurance.Amount},
		{"import_duty", customs.DutyAmount},
		{"vat", customs.VATAmount},
		{"merchandise_processing_fee", customs.MPF},
		{"harbor_maintenance_fee", customs.HMF},
	}
	for _, t := range customs.AdditionalTariffs {
		lines = append(lines, Line{t.Name, t.Amount})
	}
	lines = append(lines,
		Line{"inland_transport_origin", inland.Origin.Cost},
		Line{"inland_transport_destination", inland.Destination.Cost},
	)
	return lines
}

// Build folds the ordered lines into breakdown items, skipping zero lines.
// Cumulative amounts and percentages are computed on exact values; the
// boundary rounding pass happens later.
func Build(lines []Line, total decimal.Decimal) ([]types.CostBreakdownItem, error) {
	if !total.IsPositive() {
		return nil, errors.Aggregation(
			fmt.Sprintf("total landed cost must be positive to build a breakdown, got %s", total))
	}

	var (
		items      []types.CostBreakdownItem
		cumAmount  decimal.Decimal
		cumPercent decimal.Decimal
	)
	for _, line := range lines {
		if line.Amount.IsZero() {
			continue
		}
		percent := line.Amount.Div(total).Mul(hundred)
		cumAmount = cumAmount.Add(line.Amount)
		cumPercent = cumPercent.Add(percent)
		items = append(items, types.CostBreakdownItem{
			Component:            line.Component,
			Amount:               line.Amount,
			Percentage:           percent,
			CumulativeAmount:     cumAmount,
			CumulativePercentage: cumPercent,
		})
	}
	return items, nil
}
