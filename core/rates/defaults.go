// Package rates - Seeded default snapshot
// Indicative rates so the CLI works offline. Deployments replace this with
// a provider backed by their own rate tables.
package rates

import (
	"time"

	"github.com/shopspring/decimal"

	"trade-cost/core/types"
)

// usFees is the US CBP sea-import surcharge schedule (FY2024 statutory values)
func usFees() *FeeSchedule {
	return &FeeSchedule{
		MPFRate: decimal.NewFromFloat(0.003464),
		MPFMin:  decimal.NewFromFloat(31.67),
		MPFMax:  decimal.NewFromFloat(614.35),
		HMFRate: decimal.NewFromFloat(0.00125),
	}
}

// DefaultSnapshot returns a snapshot seeded with indicative rates for the
// common Asia-to-West lanes.
func DefaultSnapshot() *Snapshot {
	b := NewSnapshotBuilder().
		WithTimestamp(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))

	// Destination valuation configuration. The US values duty on FOB and
	// levies MPF/HMF on sea imports; the EU and UK value on CIF.
	b.AddValuation("US", ValuationConfig{Method: types.ValuationFOB, Fees: usFees()})
	b.AddValuation("DE", ValuationConfig{Method: types.ValuationCIF})
	b.AddValuation("GB", ValuationConfig{Method: types.ValuationCIF})

	b.AddVAT("DE", decimal.NewFromFloat(0.19))
	b.AddVAT("GB", decimal.NewFromFloat(0.20))
	b.AddVAT("US", decimal.Zero)

	lanes := []struct {
		lane    Lane
		fcl20   float64
		fcl40   float64
		lclCBM  float64
		airKG   float64
		expKG   float64
		seaDays int
		airDays int
	}{
		{Lane{"CN", "US"}, 1500, 2500, 85, 4.50, 6.50, 30, 6},
		{Lane{"CN", "DE"}, 1700, 2900, 95, 4.80, 7.00, 35, 7},
		{Lane{"CN", "GB"}, 1650, 2800, 92, 4.70, 6.80, 34, 7},
		{Lane{"VN", "US"}, 1600, 2700, 90, 4.90, 6.90, 28, 6},
		{Lane{"IN", "US"}, 1750, 2950, 98, 5.20, 7.40, 32, 7},
	}

	for _, l := range lanes {
		b.AddFreightRate(l.lane, FreightRate{
			Method: types.MethodSeaFCL,
			ContainerRates: map[types.ContainerType]decimal.Decimal{
				types.Container20ft: decimal.NewFromFloat(l.fcl20),
				types.Container40ft: decimal.NewFromFloat(l.fcl40),
			},
			TransitDays: l.seaDays,
		})
		b.AddFreightRate(l.lane, FreightRate{
			Method:      types.MethodSeaLCL,
			PerCBM:      decimal.NewFromFloat(l.lclCBM),
			TransitDays: l.seaDays + 5,
		})
		b.AddFreightRate(l.lane, FreightRate{
			Method:      types.MethodAir,
			PerKG:       decimal.NewFromFloat(l.airKG),
			TransitDays: l.airDays,
		})
		b.AddFreightRate(l.lane, FreightRate{
			Method:      types.MethodExpress,
			PerKG:       decimal.NewFromFloat(l.expKG),
			TransitDays: 4,
		})
	}

	// Indicative duty rates at HS heading level: laptops and phones are
	// duty free, wooden furniture 5%, footwear 10%.
	cnUS := Lane{"CN", "US"}
	b.AddTariff("847130", cnUS, decimal.Zero)
	b.AddTariff("851712", cnUS, decimal.Zero)
	b.AddTariff("940360", cnUS, decimal.NewFromFloat(0.05))
	b.AddTariff("640399", cnUS, decimal.NewFromFloat(0.10))
	b.AddTariff("940360", Lane{"VN", "US"}, decimal.NewFromFloat(0.05))

	// Section 301 remedies on China-origin goods.
	b.AddAdditionalTariff("940360", cnUS, AdditionalTariff{
		Name: "Section 301 List 3",
		Kind: "safeguard",
		Rate: decimal.NewFromFloat(0.25),
	})

	return b.Build()
}
