// Package types defines the landed cost data model.
// All monetary, weight and volume values are decimals; rounding happens
// only at the result boundary, never mid-pipeline.
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Incoterm is a standardized trade term defining who bears cost and risk
// at each stage of the shipment.
type Incoterm string

const (
	// IncotermFOB - Free On Board: seller's cost basis up to loading at origin port
	IncotermFOB Incoterm = "FOB"

	// IncotermEXW - Ex Works: seller's cost basis at their own facility
	IncotermEXW Incoterm = "EXW"

	// IncotermCIF - Cost, Insurance, Freight: quote includes freight and insurance to destination port
	IncotermCIF Incoterm = "CIF"

	// IncotermDDP - Delivered Duty Paid: quote includes duties and final delivery
	IncotermDDP Incoterm = "DDP"
)

// Valid reports whether the incoterm is one of the supported trade terms
func (i Incoterm) Valid() bool {
	switch i {
	case IncotermFOB, IncotermEXW, IncotermCIF, IncotermDDP:
		return true
	}
	return false
}

// ShippingMethod identifies how the goods travel
type ShippingMethod string

const (
	MethodSeaFCL  ShippingMethod = "sea_fcl"
	MethodSeaLCL  ShippingMethod = "sea_lcl"
	MethodAir     ShippingMethod = "air"
	MethodExpress ShippingMethod = "express"
)

// Valid reports whether the shipping method is supported
func (m ShippingMethod) Valid() bool {
	switch m {
	case MethodSeaFCL, MethodSeaLCL, MethodAir, MethodExpress:
		return true
	}
	return false
}

// IsSea reports whether the method moves goods by sea.
// Sea-only customs surcharges (US HMF in particular) key off this.
func (m ShippingMethod) IsSea() bool {
	return m == MethodSeaFCL || m == MethodSeaLCL
}

// ContainerType identifies the container for full-container sea freight
type ContainerType string

const (
	Container20ft ContainerType = "20ft"
	Container40ft ContainerType = "40ft"
	Container40HC ContainerType = "40hc"
)

// ValuationMethod is the customs valuation basis a destination country declares
type ValuationMethod string

const (
	ValuationFOB ValuationMethod = "FOB"
	ValuationCIF ValuationMethod = "CIF"
)

// Dimensions are shipment dimensions in centimeters
type Dimensions struct {
	LengthCM decimal.Decimal `json:"length_cm"`
	WidthCM  decimal.Decimal `json:"width_cm"`
	HeightCM decimal.Decimal `json:"height_cm"`
}

var cbmDivisor = decimal.NewFromInt(1000000)

// CBM returns the volume in cubic meters
func (d Dimensions) CBM() decimal.Decimal {
	return d.LengthCM.Mul(d.WidthCM).Mul(d.HeightCM).Div(cbmDivisor)
}

// LandedCostInput is the immutable input to one calculation.
// It is plain structured data supplied by the report-generation collaborator.
type LandedCostInput struct {
	// ProductName is the commercial product name
	ProductName string `json:"product_name"`

	// HSCode is the Harmonized System classification code
	HSCode string `json:"hs_code"`

	// Category is an optional product category
	Category string `json:"category,omitempty"`

	// BaseCost is the vendor-quoted cost for the whole shipment
	BaseCost decimal.Decimal `json:"base_cost"`

	// Incoterm is the trade term the quote was given under
	Incoterm Incoterm `json:"incoterm"`

	// Quantity is the number of units in the shipment
	Quantity int64 `json:"quantity"`

	// Currency is the quote currency
	Currency Currency `json:"currency"`

	// OriginCountry is the ISO country code goods ship from
	OriginCountry string `json:"origin_country"`

	// DestinationCountry is the ISO country code goods ship to
	DestinationCountry string `json:"destination_country"`

	// OriginPort optionally names the origin port
	OriginPort string `json:"origin_port,omitempty"`

	// DestinationPort optionally names the destination port
	DestinationPort string `json:"destination_port,omitempty"`

	// ShippingMethod selects the transport mode
	ShippingMethod ShippingMethod `json:"shipping_method"`

	// ContainerType is required for sea_fcl shipments
	ContainerType ContainerType `json:"container_type,omitempty"`

	// WeightKG is the actual gross weight in kilograms
	WeightKG decimal.Decimal `json:"weight_kg,omitempty"`

	// VolumeCBM is the shipment volume in cubic meters
	VolumeCBM decimal.Decimal `json:"volume_cbm,omitempty"`

	// Dimensions optionally describe the shipment; volume is derived
	// from them when VolumeCBM is absent
	Dimensions *Dimensions `json:"dimensions,omitempty"`

	// InsuranceRate overrides the default cargo insurance rate (fraction, e.g. 0.005)
	InsuranceRate *decimal.Decimal `json:"insurance_rate,omitempty"`

	// InlandTransportOrigin overrides the factory-to-port trucking cost
	InlandTransportOrigin *decimal.Decimal `json:"inland_transport_origin,omitempty"`

	// InlandTransportDestination overrides the port-to-warehouse trucking cost
	InlandTransportDestination *decimal.Decimal `json:"inland_transport_destination,omitempty"`
}

// Volume returns the usable shipment volume in CBM. When VolumeCBM is not
// set it falls back to the volume derived from Dimensions; derived reports
// which one was used.
func (in *LandedCostInput) Volume() (cbm decimal.Decimal, derived bool) {
	if in.VolumeCBM.IsPositive() {
		return in.VolumeCBM, false
	}
	if in.Dimensions != nil {
		return in.Dimensions.CBM(), true
	}
	return decimal.Zero, false
}
