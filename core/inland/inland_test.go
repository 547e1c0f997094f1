package inland

import (
	"testing"

	"github.com/shopspring/decimal"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
)

func TestOriginDefaultAppliesOnlyToEXW(t *testing.T) {
	svc := NewService(Options{})

	result, err := svc.Calculate(&types.LandedCostInput{Incoterm: types.IncotermEXW})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Origin.Cost.IsPositive() {
		t.Error("EXW shipments need an origin trucking estimate")
	}
	if result.Origin.Source != "estimate" {
		t.Errorf("origin source = %q, want estimate", result.Origin.Source)
	}

	for _, incoterm := range []types.Incoterm{types.IncotermFOB, types.IncotermCIF, types.IncotermDDP} {
		result, err := svc.Calculate(&types.LandedCostInput{Incoterm: incoterm})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", incoterm, err)
		}
		if !result.Origin.Cost.IsZero() {
			t.Errorf("%s: origin cost = %s, want 0 (seller delivers to port)", incoterm, result.Origin.Cost)
		}
	}
}

func TestDestinationDefaultAlwaysApplies(t *testing.T) {
	svc := NewService(Options{DestinationEstimate: decimal.NewFromInt(750)})
	result, err := svc.Calculate(&types.LandedCostInput{Incoterm: types.IncotermFOB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Destination.Cost.Equal(decimal.NewFromInt(750)) {
		t.Errorf("destination cost = %s, want configured 750", result.Destination.Cost)
	}
	if !result.Total.Equal(decimal.NewFromInt(750)) {
		t.Errorf("total = %s, want 750", result.Total)
	}
}

func TestOverridesWin(t *testing.T) {
	origin := decimal.NewFromInt(120)
	dest := decimal.NewFromInt(340)
	svc := NewService(Options{})

	result, err := svc.Calculate(&types.LandedCostInput{
		Incoterm:                   types.IncotermFOB,
		InlandTransportOrigin:      &origin,
		InlandTransportDestination: &dest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Origin.Source != "override" || result.Destination.Source != "override" {
		t.Errorf("override sources not recorded: %q / %q", result.Origin.Source, result.Destination.Source)
	}
	if !result.Total.Equal(decimal.NewFromInt(460)) {
		t.Errorf("total = %s, want 460", result.Total)
	}
}

func TestNegativeOverrideBlocks(t *testing.T) {
	bad := decimal.NewFromInt(-10)
	svc := NewService(Options{})

	_, err := svc.Calculate(&types.LandedCostInput{Incoterm: types.IncotermFOB, InlandTransportOrigin: &bad})
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("negative origin override: expected INPUT_ERROR, got %v", err)
	}

	_, err = svc.Calculate(&types.LandedCostInput{Incoterm: types.IncotermFOB, InlandTransportDestination: &bad})
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("negative destination override: expected INPUT_ERROR, got %v", err)
	}
}
