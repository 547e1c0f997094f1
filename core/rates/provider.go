// Package rates defines the trade data capability the engine consumes.
// The pure calculation logic stays independent of any live data source;
// implementations decide where tariff tables and freight rates come from.
package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"trade-cost/core/types"
)

// Lane identifies an origin/destination country pair
type Lane struct {
	Origin      string
	Destination string
}

// String returns a deterministic string representation for lookup
func (l Lane) String() string {
	return l.Origin + "->" + l.Destination
}

// FreightRate holds lane rates for one shipping method.
// Only the fields relevant to the method are populated.
type FreightRate struct {
	// Method is the shipping method the rates price
	Method types.ShippingMethod

	// ContainerRates maps container type to lane cost (sea_fcl)
	ContainerRates map[types.ContainerType]decimal.Decimal

	// PerCBM is the per-cubic-meter rate (sea_lcl)
	PerCBM decimal.Decimal

	// PerKG is the per-kilogram rate (air, express)
	PerKG decimal.Decimal

	// TransitDays is the estimated door-to-port transit time
	TransitDays int
}

// AdditionalTariff is a trade-remedy duty applied on top of the base tariff
type AdditionalTariff struct {
	// Name identifies the measure
	Name string

	// Kind is anti_dumping, countervailing, safeguard or other
	Kind string

	// Rate is the tariff rate (fraction of dutiable value)
	Rate decimal.Decimal
}

// FeeSchedule holds destination-specific customs surcharges.
// For the US this is the Merchandise Processing Fee (percentage of CIF
// bounded by statutory min/max) and the Harbor Maintenance Fee.
type FeeSchedule struct {
	MPFRate decimal.Decimal
	MPFMin  decimal.Decimal
	MPFMax  decimal.Decimal
	HMFRate decimal.Decimal
}

// ValuationConfig describes how a destination country values customs duty
type ValuationConfig struct {
	// Method is the declared customs valuation basis (FOB or CIF)
	Method types.ValuationMethod

	// Fees is the destination's sea-import surcharge schedule, nil when none
	Fees *FeeSchedule
}

// Provider supplies externally sourced trade data. Lookups that miss
// report ok=false and the caller falls back with a warning note; retries
// and backoff belong to the provider, never to the calculation pipeline.
type Provider interface {
	// Timestamp reports when the underlying rate data was last refreshed
	Timestamp() time.Time

	// ValidateHSCode checks an HS code; an error here blocks the calculation
	ValidateHSCode(hsCode string) error

	// TariffRate returns the base duty rate for an HS code on a lane
	TariffRate(hsCode string, lane Lane) (decimal.Decimal, bool)

	// VATRate returns the destination's VAT/GST rate
	VATRate(destination string) (decimal.Decimal, bool)

	// AdditionalTariffs returns trade-remedy tariffs for an HS code on a lane
	AdditionalTariffs(hsCode string, lane Lane) []AdditionalTariff

	// ValuationConfig returns the destination's customs valuation configuration
	ValuationConfig(destination string) (ValuationConfig, bool)

	// FreightRate returns the lane's rate card for a shipping method
	FreightRate(lane Lane, method types.ShippingMethod) (FreightRate, bool)
}
