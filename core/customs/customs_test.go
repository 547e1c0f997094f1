package customs

import (
	"testing"

	"github.com/shopspring/decimal"

	"trade-cost/core/rates"
	"trade-cost/core/types"
	"trade-cost/internal/errors"
)

var (
	testLane  = rates.Lane{Origin: "CN", Destination: "US"}
	testComps = Components{
		BaseCost:     decimal.NewFromInt(1000),
		Freight:      decimal.NewFromInt(100),
		Insurance:    decimal.NewFromInt(10),
		OriginInland: decimal.NewFromInt(50),
		CIFValue:     decimal.NewFromInt(1110),
	}
)

func snapshotWith(method types.ValuationMethod, fees *rates.FeeSchedule) *rates.Snapshot {
	return rates.NewSnapshotBuilder().
		AddValuation("US", rates.ValuationConfig{Method: method, Fees: fees}).
		AddTariff("940360", testLane, decimal.NewFromFloat(0.05)).
		AddVAT("US", decimal.NewFromFloat(0.07)).
		Build()
}

func customsInput(incoterm types.Incoterm, method types.ShippingMethod) *types.LandedCostInput {
	return &types.LandedCostInput{
		HSCode:             "940360",
		Incoterm:           incoterm,
		OriginCountry:      "CN",
		DestinationCountry: "US",
		ShippingMethod:     method,
	}
}

// TestValuationDecisionTable covers all six incoterm x valuation method entries.
func TestValuationDecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		method   types.ValuationMethod
		incoterm types.Incoterm
		want     int64
	}{
		{"CIF method, FOB quote", types.ValuationCIF, types.IncotermFOB, 1110}, // base + freight + insurance
		{"CIF method, CIF quote", types.ValuationCIF, types.IncotermCIF, 1000}, // already CIF
		{"CIF method, EXW quote", types.ValuationCIF, types.IncotermEXW, 1160}, // + origin inland
		{"FOB method, FOB quote", types.ValuationFOB, types.IncotermFOB, 1000},
		{"FOB method, CIF quote", types.ValuationFOB, types.IncotermCIF, 890}, // base - freight - insurance
		{"FOB method, EXW quote", types.ValuationFOB, types.IncotermEXW, 1050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(snapshotWith(tt.method, nil))
			result, err := svc.Calculate(customsInput(tt.incoterm, types.MethodSeaFCL), testComps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.CustomsValue.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("customs value = %s, want %d", result.CustomsValue, tt.want)
			}
		})
	}
}

func TestDutyAndVAT(t *testing.T) {
	svc := NewService(snapshotWith(types.ValuationCIF, nil))
	result, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), testComps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// duty = 1110 * 0.05 = 55.5; VAT = (1110 + 55.5) * 0.07 = 81.585
	if !result.DutyAmount.Equal(decimal.NewFromFloat(55.5)) {
		t.Errorf("duty = %s, want 55.5", result.DutyAmount)
	}
	if !result.VATAmount.Equal(decimal.NewFromFloat(81.585)) {
		t.Errorf("VAT = %s, want 81.585", result.VATAmount)
	}
	if !result.TotalCustomsFees.Equal(decimal.NewFromFloat(137.085)) {
		t.Errorf("total customs fees = %s, want 137.085", result.TotalCustomsFees)
	}
}

func TestDDPRejectedAtCustoms(t *testing.T) {
	svc := NewService(snapshotWith(types.ValuationCIF, nil))
	_, err := svc.Calculate(customsInput(types.IncotermDDP, types.MethodSeaFCL), testComps)
	if !errors.IsType(err, errors.TypeValuation) {
		t.Fatalf("expected VALUATION_ERROR for DDP, got %v", err)
	}
}

func TestNegativeCustomsValueBlocks(t *testing.T) {
	// FOB valuation of a CIF quote subtracts freight and insurance; when
	// those exceed the quote the inputs are inconsistent.
	comps := testComps
	comps.BaseCost = decimal.NewFromInt(100)

	svc := NewService(snapshotWith(types.ValuationFOB, nil))
	_, err := svc.Calculate(customsInput(types.IncotermCIF, types.MethodSeaFCL), comps)
	if !errors.IsType(err, errors.TypeValuation) {
		t.Fatalf("expected VALUATION_ERROR, got %v", err)
	}
}

func TestMissingValuationConfigBlocks(t *testing.T) {
	svc := NewService(rates.NewSnapshotBuilder().Build())
	_, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), testComps)
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestInvalidHSCodeBlocks(t *testing.T) {
	svc := NewService(snapshotWith(types.ValuationCIF, nil))
	in := customsInput(types.IncotermFOB, types.MethodSeaFCL)
	in.HSCode = "12AB"
	_, err := svc.Calculate(in, testComps)
	if !errors.IsType(err, errors.TypeClassification) {
		t.Fatalf("expected CLASSIFICATION_ERROR, got %v", err)
	}
}

func TestTariffMissFallsBackToZero(t *testing.T) {
	snap := rates.NewSnapshotBuilder().
		AddValuation("US", rates.ValuationConfig{Method: types.ValuationCIF}).
		AddVAT("US", decimal.NewFromFloat(0.07)).
		Build()

	svc := NewService(snap)
	result, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), testComps)
	if err != nil {
		t.Fatalf("tariff miss must not block: %v", err)
	}
	if !result.DutyAmount.IsZero() {
		t.Errorf("duty = %s, want 0 on a tariff miss", result.DutyAmount)
	}

	warned := false
	for _, n := range result.Notes {
		if n.Category == types.NoteWarning {
			warned = true
		}
	}
	if !warned {
		t.Error("tariff miss must be flagged with a warning note")
	}
}

func TestMPFClampedToStatutoryBounds(t *testing.T) {
	fees := &rates.FeeSchedule{
		MPFRate: decimal.NewFromFloat(0.003464),
		MPFMin:  decimal.NewFromFloat(31.67),
		MPFMax:  decimal.NewFromFloat(614.35),
		HMFRate: decimal.NewFromFloat(0.00125),
	}
	svc := NewService(snapshotWith(types.ValuationFOB, fees))

	// Small shipment: raw MPF 1110 * 0.003464 = 3.84..., below the floor.
	result, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), testComps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MPF.Equal(decimal.NewFromFloat(31.67)) {
		t.Errorf("MPF = %s, want floor 31.67", result.MPF)
	}
	if !result.HMF.Equal(decimal.NewFromFloat(1.3875)) {
		t.Errorf("HMF = %s, want 1.3875 (1110 x 0.00125)", result.HMF)
	}

	// Large shipment: raw MPF 1,000,000 * 0.003464 = 3464, above the cap.
	comps := testComps
	comps.CIFValue = decimal.NewFromInt(1000000)
	result, err = svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), comps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MPF.Equal(decimal.NewFromFloat(614.35)) {
		t.Errorf("MPF = %s, want cap 614.35", result.MPF)
	}
}

func TestFeesSkippedForAirShipments(t *testing.T) {
	fees := &rates.FeeSchedule{
		MPFRate: decimal.NewFromFloat(0.003464),
		MPFMin:  decimal.NewFromFloat(31.67),
		MPFMax:  decimal.NewFromFloat(614.35),
		HMFRate: decimal.NewFromFloat(0.00125),
	}
	svc := NewService(snapshotWith(types.ValuationFOB, fees))

	result, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodAir), testComps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MPF.IsZero() || !result.HMF.IsZero() {
		t.Errorf("MPF/HMF must not apply to air shipments, got %s / %s", result.MPF, result.HMF)
	}
}

func TestAdditionalTariffsAreIndependentLineItems(t *testing.T) {
	snap := rates.NewSnapshotBuilder().
		AddValuation("US", rates.ValuationConfig{Method: types.ValuationFOB}).
		AddTariff("940360", testLane, decimal.NewFromFloat(0.05)).
		AddVAT("US", decimal.Zero).
		AddAdditionalTariff("940360", testLane, rates.AdditionalTariff{
			Name: "Section 301 List 3", Kind: "safeguard", Rate: decimal.NewFromFloat(0.25),
		}).
		AddAdditionalTariff("940360", testLane, rates.AdditionalTariff{
			Name: "AD order A-570-000", Kind: "anti_dumping", Rate: decimal.NewFromFloat(0.10),
		}).
		Build()

	svc := NewService(snap)
	result, err := svc.Calculate(customsInput(types.IncotermFOB, types.MethodSeaFCL), testComps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.AdditionalTariffs) != 2 {
		t.Fatalf("expected 2 additional tariff lines, got %d", len(result.AdditionalTariffs))
	}
	// 1000 * 0.25 + 1000 * 0.10 = 350 on the FOB dutiable value.
	if !result.AdditionalTariffTotal.Equal(decimal.NewFromInt(350)) {
		t.Errorf("additional tariff total = %s, want 350", result.AdditionalTariffTotal)
	}
	// total = duty 50 + VAT 0 + additional 350
	if !result.TotalCustomsFees.Equal(decimal.NewFromInt(400)) {
		t.Errorf("total customs fees = %s, want 400", result.TotalCustomsFees)
	}
}
