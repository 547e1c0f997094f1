// Package types - Per-component results and the result envelope
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCostResult is the normalized vendor quote
type BaseCostResult struct {
	// FOBCost is the quote expressed on an FOB basis
	FOBCost decimal.Decimal `json:"fob_cost"`

	// EXWCost is the quote expressed on an EXW basis
	EXWCost decimal.Decimal `json:"exw_cost"`

	// NormalizedCost is the figure downstream stages consume
	NormalizedCost decimal.Decimal `json:"normalized_cost"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`

	Notes []CalculationNote `json:"notes,omitempty"`
}

// ContainerQuote is one container option on a lane
type ContainerQuote struct {
	Container ContainerType   `json:"container"`
	Cost      decimal.Decimal `json:"cost"`
}

// FreightResult is the transport cost for the selected method
type FreightResult struct {
	// Method is the shipping method that drove the cost
	Method ShippingMethod `json:"method"`

	// SelectedCost is the freight cost carried into the total
	SelectedCost decimal.Decimal `json:"selected_cost"`

	// ContainerQuotes lists the lane's container options (sea_fcl only)
	ContainerQuotes []ContainerQuote `json:"container_quotes,omitempty"`

	// ActualWeightKG is the gross weight used for air/express pricing
	ActualWeightKG decimal.Decimal `json:"actual_weight_kg,omitempty"`

	// VolumetricWeightKG is volume x 167 (air only)
	VolumetricWeightKG decimal.Decimal `json:"volumetric_weight_kg,omitempty"`

	// ChargeableWeightKG is max(actual, volumetric) (air only)
	ChargeableWeightKG decimal.Decimal `json:"chargeable_weight_kg,omitempty"`

	// VolumeCBM is the volume used for LCL/air pricing
	VolumeCBM decimal.Decimal `json:"volume_cbm,omitempty"`

	// TransitDays is the lane's estimated transit time, zero when unknown
	TransitDays int `json:"transit_days,omitempty"`

	Notes []CalculationNote `json:"notes,omitempty"`
}

// InsuranceResult is the cargo insurance premium
type InsuranceResult struct {
	// Rate is the applied insurance rate (fraction)
	Rate decimal.Decimal `json:"rate"`

	// Amount is the premium (cifValue x rate)
	Amount decimal.Decimal `json:"amount"`

	// CIFValue is the insured value (base + freight)
	CIFValue decimal.Decimal `json:"cif_value"`

	Notes []CalculationNote `json:"notes,omitempty"`
}

// TariffLine is one additional trade-remedy tariff applied to the dutiable value
type TariffLine struct {
	// Name identifies the measure (e.g. "Section 301 List 3")
	Name string `json:"name"`

	// Kind is the remedy type: anti_dumping, countervailing, safeguard, other
	Kind string `json:"kind"`

	// Rate is the tariff rate (fraction)
	Rate decimal.Decimal `json:"rate"`

	// Amount is rate x dutiable value
	Amount decimal.Decimal `json:"amount"`
}

// CustomsResult is the duty, tax and surcharge assessment
type CustomsResult struct {
	// ValuationMethod is the destination's declared valuation basis
	ValuationMethod ValuationMethod `json:"valuation_method,omitempty"`

	// CustomsValue is the dutiable value derived from the valuation table
	CustomsValue decimal.Decimal `json:"customs_value"`

	// DutyRate is the applied tariff rate (fraction)
	DutyRate decimal.Decimal `json:"duty_rate"`

	// DutyAmount is customs value x duty rate
	DutyAmount decimal.Decimal `json:"duty_amount"`

	// VATRate is the destination VAT/GST rate (fraction)
	VATRate decimal.Decimal `json:"vat_rate"`

	// VATAmount is (customs value + duty) x VAT rate
	VATAmount decimal.Decimal `json:"vat_amount"`

	// MPF is the US Merchandise Processing Fee, zero elsewhere
	MPF decimal.Decimal `json:"mpf"`

	// HMF is the US Harbor Maintenance Fee, zero elsewhere
	HMF decimal.Decimal `json:"hmf"`

	// AdditionalTariffs lists trade-remedy tariffs as individual line items
	AdditionalTariffs []TariffLine `json:"additional_tariffs,omitempty"`

	// AdditionalTariffTotal sums the additional tariff amounts
	AdditionalTariffTotal decimal.Decimal `json:"additional_tariff_total"`

	// TotalCustomsFees = duty + VAT + MPF + HMF + additional tariffs
	TotalCustomsFees decimal.Decimal `json:"total_customs_fees"`

	Notes []CalculationNote `json:"notes,omitempty"`
}

// InlandLeg is one trucking leg
type InlandLeg struct {
	// Cost is the leg cost
	Cost decimal.Decimal `json:"cost"`

	// Source is "override", "estimate" or "not_applicable"
	Source string `json:"source"`
}

// InlandTransportResult covers pre-carriage and on-carriage trucking
type InlandTransportResult struct {
	Origin      InlandLeg       `json:"origin"`
	Destination InlandLeg       `json:"destination"`
	Total       decimal.Decimal `json:"total"`

	Notes []CalculationNote `json:"notes,omitempty"`
}

// Totals holds the aggregated figures
type Totals struct {
	TotalLandedCost decimal.Decimal `json:"total_landed_cost"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	Currency        Currency        `json:"currency"`
}

// CostBreakdownItem is one line of the percentage waterfall.
// Cumulative fields are a running fold over the ordered item list.
type CostBreakdownItem struct {
	Component            string          `json:"component"`
	Amount               decimal.Decimal `json:"amount"`
	Percentage           decimal.Decimal `json:"percentage"`
	CumulativeAmount     decimal.Decimal `json:"cumulative_amount"`
	CumulativePercentage decimal.Decimal `json:"cumulative_percentage"`
}

// LandedCostResult is the envelope returned for every successful calculation.
// It is JSON-serializable; monetary values are raw numerics and presentation
// formatting is a caller concern.
type LandedCostResult struct {
	// CalculationID uniquely identifies this calculation for audit correlation
	CalculationID string `json:"calculation_id"`

	// CalculationVersion identifies the calculation logic revision
	CalculationVersion string `json:"calculation_version"`

	// DataSnapshotTimestamp records when the underlying rate data was current
	DataSnapshotTimestamp time.Time `json:"data_snapshot_timestamp"`

	// CalculationTimestamp records when this call ran
	CalculationTimestamp time.Time `json:"calculation_timestamp"`

	BaseCost        BaseCostResult        `json:"base_cost"`
	Freight         FreightResult         `json:"freight"`
	Insurance       InsuranceResult       `json:"insurance"`
	Customs         CustomsResult         `json:"customs"`
	InlandTransport InlandTransportResult `json:"inland_transport"`

	Totals    Totals              `json:"totals"`
	Breakdown []CostBreakdownItem `json:"breakdown"`
	Notes     []CalculationNote   `json:"notes"`
}
