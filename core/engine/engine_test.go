package engine

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"trade-cost/core/rates"
	"trade-cost/core/types"
)

// testSnapshot seeds a minimal CN->US lane: CIF valuation with no import
// surcharges, 7% VAT, a 5% duty on wooden furniture and sea FCL rates.
func testSnapshot() *rates.Snapshot {
	lane := rates.Lane{Origin: "CN", Destination: "US"}
	return rates.NewSnapshotBuilder().
		WithTimestamp(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)).
		AddValuation("US", rates.ValuationConfig{Method: types.ValuationCIF}).
		AddVAT("US", decimal.NewFromFloat(0.07)).
		AddTariff("940360", lane, decimal.NewFromFloat(0.05)).
		AddFreightRate(lane, rates.FreightRate{
			Method: types.MethodSeaFCL,
			ContainerRates: map[types.ContainerType]decimal.Decimal{
				types.Container20ft: decimal.NewFromInt(1500),
				types.Container40ft: decimal.NewFromInt(2500),
			},
			TransitDays: 30,
		}).
		Build()
}

func testInput() *types.LandedCostInput {
	return &types.LandedCostInput{
		ProductName:        "wooden office desk",
		HSCode:             "940360",
		BaseCost:           decimal.NewFromInt(10000),
		Incoterm:           types.IncotermFOB,
		Quantity:           1000,
		Currency:           "USD",
		OriginCountry:      "CN",
		DestinationCountry: "US",
		ShippingMethod:     types.MethodSeaFCL,
		ContainerType:      types.Container40ft,
	}
}

func mustCalculate(t *testing.T, input *types.LandedCostInput) *types.LandedCostResult {
	t.Helper()
	eng := New(testSnapshot(), Config{})
	result, err := eng.Calculate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func wantMoney(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	w, _ := decimal.NewFromString(want)
	if !got.Equal(w) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestFullPipelineScenario(t *testing.T) {
	result := mustCalculate(t, testInput())

	wantMoney(t, "normalized base cost", result.BaseCost.NormalizedCost, "10000")
	wantMoney(t, "freight", result.Freight.SelectedCost, "2500")
	wantMoney(t, "pre-insurance CIF", result.Insurance.CIFValue, "12500")
	wantMoney(t, "insurance premium", result.Insurance.Amount, "62.50")
	wantMoney(t, "customs value", result.Customs.CustomsValue, "12562.50")
	wantMoney(t, "import duty", result.Customs.DutyAmount, "628.13")
	wantMoney(t, "VAT", result.Customs.VATAmount, "923.34")
	wantMoney(t, "total customs fees", result.Customs.TotalCustomsFees, "1551.47")
	wantMoney(t, "origin inland", result.InlandTransport.Origin.Cost, "0")
	wantMoney(t, "destination inland", result.InlandTransport.Destination.Cost, "500")
	wantMoney(t, "total landed cost", result.Totals.TotalLandedCost, "14613.97")
	wantMoney(t, "cost per unit", result.Totals.CostPerUnit, "14.61")

	if result.Customs.ValuationMethod != types.ValuationCIF {
		t.Errorf("valuation method = %s, want CIF", result.Customs.ValuationMethod)
	}
	if result.CalculationVersion != CalculationVersion {
		t.Errorf("calculation version = %q, want %q", result.CalculationVersion, CalculationVersion)
	}
	if result.CalculationID == "" {
		t.Error("missing calculation id")
	}
	if !result.DataSnapshotTimestamp.Equal(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("data snapshot timestamp = %s, want the snapshot's", result.DataSnapshotTimestamp)
	}
	if result.Totals.Currency != "USD" {
		t.Errorf("currency = %q, want USD", result.Totals.Currency)
	}
}

func TestComponentsAddUpToTotal(t *testing.T) {
	result := mustCalculate(t, testInput())

	sum := result.BaseCost.NormalizedCost.
		Add(result.Freight.SelectedCost).
		Add(result.Insurance.Amount).
		Add(result.Customs.TotalCustomsFees).
		Add(result.InlandTransport.Total)

	// Components are rounded independently of the total, so the rounded
	// sum may drift by a cent per component.
	tolerance := decimal.NewFromFloat(0.02)
	if sum.Sub(result.Totals.TotalLandedCost).Abs().GreaterThan(tolerance) {
		t.Errorf("components sum to %s, total is %s", sum, result.Totals.TotalLandedCost)
	}
}

func TestBreakdownCumulativeLaws(t *testing.T) {
	result := mustCalculate(t, testInput())

	if len(result.Breakdown) == 0 {
		t.Fatal("expected a non-empty breakdown")
	}
	for _, item := range result.Breakdown {
		if item.Amount.IsZero() {
			t.Errorf("%s: zero lines must be omitted from the breakdown", item.Component)
		}
	}

	last := result.Breakdown[len(result.Breakdown)-1]
	if !last.CumulativeAmount.Equal(result.Totals.TotalLandedCost) {
		t.Errorf("final cumulative amount = %s, want total %s",
			last.CumulativeAmount, result.Totals.TotalLandedCost)
	}
	hundred := decimal.NewFromInt(100)
	if last.CumulativePercentage.Sub(hundred).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("final cumulative percentage = %s, want within 0.01 of 100", last.CumulativePercentage)
	}
}

func TestCalculationIsDeterministic(t *testing.T) {
	first := mustCalculate(t, testInput())
	second := mustCalculate(t, testInput())

	// Only the id and wall-clock timestamp may differ between runs.
	first.CalculationID, second.CalculationID = "", ""
	first.CalculationTimestamp, second.CalculationTimestamp = time.Time{}, time.Time{}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("identical inputs produced different results:\n%s\n%s", a, b)
	}
}

func TestDDPShortCircuitsCustoms(t *testing.T) {
	input := testInput()
	input.Incoterm = types.IncotermDDP

	result := mustCalculate(t, input)

	if !result.Customs.TotalCustomsFees.IsZero() || !result.Customs.DutyAmount.IsZero() {
		t.Errorf("DDP customs must be zeroed, got duty=%s fees=%s",
			result.Customs.DutyAmount, result.Customs.TotalCustomsFees)
	}

	found := false
	for _, n := range result.Customs.Notes {
		if n.Category == types.NoteInfo && strings.Contains(n.Message, "DDP") {
			found = true
		}
	}
	if !found {
		t.Error("expected an info note explaining the zeroed DDP customs component")
	}

	want := result.BaseCost.NormalizedCost.
		Add(result.Freight.SelectedCost).
		Add(result.Insurance.Amount).
		Add(result.InlandTransport.Total)
	if result.Totals.TotalLandedCost.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(0.02)) {
		t.Errorf("DDP total = %s, want %s (no customs fees)", result.Totals.TotalLandedCost, want)
	}
}

func TestDataQualityWarningOnDefaultRates(t *testing.T) {
	// The default insurance rate and inland estimate are both in play, so
	// the envelope must carry the derived warning.
	result := mustCalculate(t, testInput())

	found := false
	for _, n := range result.Notes {
		if n.Category == types.NoteWarning && n.Component == "calculation" {
			found = true
		}
	}
	if !found {
		t.Error("expected a data-quality warning when default rates were used")
	}
}

func TestBlockingInputErrorStopsPipeline(t *testing.T) {
	input := testInput()
	input.Quantity = 0

	eng := New(testSnapshot(), Config{})
	if _, err := eng.Calculate(context.Background(), input); err == nil {
		t.Fatal("expected a blocking validation error for zero quantity")
	}
}

func TestCancelledContextStopsCalculation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(testSnapshot(), Config{})
	if _, err := eng.Calculate(ctx, testInput()); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
