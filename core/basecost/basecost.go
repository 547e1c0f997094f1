// Package basecost normalizes a vendor-quoted cost under its trade term.
// Its validation is the single blocking gate for the whole pipeline: once
// an input passes here, downstream stages degrade gracefully instead of
// failing outright wherever the data allows it.
package basecost

import (
	"fmt"

	"go.uber.org/zap"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

const component = "base_cost"

// Service normalizes vendor quotes
type Service struct{}

// NewService creates a base cost service
func NewService() *Service {
	return &Service{}
}

// Validate checks the input invariants. Any error here aborts the whole
// calculation.
func (s *Service) Validate(input *types.LandedCostInput) error {
	if input == nil {
		return errors.Input("input is required")
	}
	if !input.BaseCost.IsPositive() {
		return errors.Input("base cost must be greater than zero")
	}
	if input.Quantity <= 0 {
		return errors.Input("quantity must be greater than zero")
	}
	if input.Currency == "" {
		return errors.Input("currency is required")
	}
	if !input.Incoterm.Valid() {
		return errors.Inputf("unsupported incoterm: %q (supported: FOB, EXW, CIF, DDP)", input.Incoterm)
	}
	if input.OriginCountry == "" {
		return errors.Input("origin country is required")
	}
	if input.DestinationCountry == "" {
		return errors.Input("destination country is required")
	}
	if input.HSCode == "" {
		return errors.Input("HS code is required")
	}
	if !input.ShippingMethod.Valid() {
		return errors.Inputf("unsupported shipping method: %q", input.ShippingMethod)
	}
	if input.WeightKG.IsNegative() {
		return errors.Input("weight must not be negative")
	}
	if input.VolumeCBM.IsNegative() {
		return errors.Input("volume must not be negative")
	}
	if input.InlandTransportOrigin != nil && input.InlandTransportOrigin.IsNegative() {
		return errors.Input("origin inland transport override must not be negative")
	}
	if input.InlandTransportDestination != nil && input.InlandTransportDestination.IsNegative() {
		return errors.Input("destination inland transport override must not be negative")
	}
	return nil
}

// Calculate validates the input and normalizes the quoted cost.
// All four incoterms use the quote as-is downstream; the notes record which
// term it came from so consumers can avoid double counting CIF/DDP content
// when presenting the breakdown.
func (s *Service) Calculate(input *types.LandedCostInput) (*types.BaseCostResult, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}
	logging.Debug("normalizing base cost",
		zap.String("incoterm", string(input.Incoterm)),
		zap.String("currency", input.Currency.String()),
	)

	result := &types.BaseCostResult{
		FOBCost:        input.BaseCost,
		EXWCost:        input.BaseCost,
		NormalizedCost: input.BaseCost,
		Currency:       input.Currency,
	}

	result.Notes = append(result.Notes, types.Note(types.NoteInfo, component,
		fmt.Sprintf("vendor quote of %s %s taken on %s terms", input.BaseCost, input.Currency, input.Incoterm)))

	switch input.Incoterm {
	case types.IncotermCIF:
		result.Notes = append(result.Notes, types.Note(types.NoteInfo, component,
			"CIF quote: freight and insurance to destination port are already included upstream"))
	case types.IncotermDDP:
		result.Notes = append(result.Notes, types.Note(types.NoteInfo, component,
			"DDP quote: duties and final delivery are already included upstream"))
	case types.IncotermEXW:
		result.Notes = append(result.Notes, types.Note(types.NoteInfo, component,
			"EXW quote: buyer bears all transport from the seller's facility"))
	}

	return result, nil
}
