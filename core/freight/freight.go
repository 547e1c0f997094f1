// Package freight computes transport cost for the selected shipping method.
// Missing dimensional data is a blocking error: freight is structurally
// impossible to estimate without it. A rate-table miss is not: the lane is
// priced off a fallback rate and flagged with a warning note.
package freight

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-cost/core/rates"
	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

const component = "freight"

// volumetricDivisor is the industry-standard air freight divisor:
// kilograms per cubic meter of chargeable volume.
var volumetricDivisor = decimal.NewFromInt(167)

// Fallback rates used when a lane has no entry in the rate data.
var (
	fallbackContainerRates = map[types.ContainerType]decimal.Decimal{
		types.Container20ft: decimal.NewFromInt(1800),
		types.Container40ft: decimal.NewFromInt(3000),
	}
	fallbackPerCBM       = decimal.NewFromInt(95)
	fallbackAirPerKG     = decimal.NewFromFloat(5.0)
	fallbackExpressPerKG = decimal.NewFromFloat(7.5)
)

// Service computes freight costs from a rate provider
type Service struct {
	rates rates.Provider
}

// NewService creates a freight service
func NewService(provider rates.Provider) *Service {
	return &Service{rates: provider}
}

// Calculate dispatches on the shipping method
func (s *Service) Calculate(input *types.LandedCostInput) (*types.FreightResult, error) {
	lane := rates.Lane{Origin: input.OriginCountry, Destination: input.DestinationCountry}
	logging.Debug("calculating freight",
		zap.String("lane", lane.String()),
		zap.String("method", string(input.ShippingMethod)),
	)

	switch input.ShippingMethod {
	case types.MethodSeaFCL:
		return s.seaFCL(input, lane)
	case types.MethodSeaLCL:
		return s.seaLCL(input, lane)
	case types.MethodAir:
		return s.air(input, lane)
	case types.MethodExpress:
		return s.express(input, lane)
	default:
		return nil, errors.Inputf("unsupported shipping method: %q", input.ShippingMethod)
	}
}

func (s *Service) seaFCL(input *types.LandedCostInput, lane rates.Lane) (*types.FreightResult, error) {
	if input.ContainerType == "" {
		return nil, errors.Dimension("container type is required for sea FCL shipments")
	}

	result := &types.FreightResult{Method: types.MethodSeaFCL}

	containerRates := fallbackContainerRates
	if rate, ok := s.rates.FreightRate(lane, types.MethodSeaFCL); ok {
		containerRates = rate.ContainerRates
		result.TransitDays = rate.TransitDays
	} else {
		logging.Warn("no FCL rate on file, using fallback container rates", zap.String("lane", lane.String()))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no FCL rate on file for lane %s; using estimated default container rates", lane)))
	}

	cost, ok := containerRates[input.ContainerType]
	if !ok && input.ContainerType == types.Container40HC {
		// No dedicated high-cube rate on most lanes; the 40ft rate is the
		// closest available basis.
		cost, ok = containerRates[types.Container40ft]
		if ok {
			result.Notes = append(result.Notes, types.Note(types.NoteEstimate, component,
				"no dedicated 40hc rate; estimated from the 40ft rate"))
		}
	}
	if !ok {
		return nil, errors.Inputf("unsupported container type: %q", input.ContainerType)
	}

	for _, ct := range []types.ContainerType{types.Container20ft, types.Container40ft} {
		if c, has := containerRates[ct]; has {
			result.ContainerQuotes = append(result.ContainerQuotes, types.ContainerQuote{Container: ct, Cost: c})
		}
	}

	result.SelectedCost = cost
	result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
		fmt.Sprintf("sea FCL %s container on lane %s: %s", input.ContainerType, lane, cost)))
	return result, nil
}

func (s *Service) seaLCL(input *types.LandedCostInput, lane rates.Lane) (*types.FreightResult, error) {
	volume, derived := input.Volume()
	if !volume.IsPositive() {
		return nil, errors.Dimension("volume (CBM) is required for sea LCL shipments")
	}

	result := &types.FreightResult{Method: types.MethodSeaLCL, VolumeCBM: volume}
	if derived {
		result.Notes = append(result.Notes, types.Note(types.NoteAssumption, component,
			fmt.Sprintf("volume %s CBM derived from shipment dimensions", volume)))
	}

	perCBM := fallbackPerCBM
	if rate, ok := s.rates.FreightRate(lane, types.MethodSeaLCL); ok {
		perCBM = rate.PerCBM
		result.TransitDays = rate.TransitDays
	} else {
		logging.Warn("no LCL rate on file, using fallback rate", zap.String("lane", lane.String()))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no LCL rate on file for lane %s; using estimated default of %s per CBM", lane, perCBM)))
	}

	result.SelectedCost = volume.Mul(perCBM)
	result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
		fmt.Sprintf("sea LCL %s CBM at %s per CBM on lane %s", volume, perCBM, lane)))
	return result, nil
}

func (s *Service) air(input *types.LandedCostInput, lane rates.Lane) (*types.FreightResult, error) {
	if !input.WeightKG.IsPositive() {
		return nil, errors.Dimension("weight (kg) is required for air shipments")
	}
	volume, derived := input.Volume()
	if !volume.IsPositive() {
		return nil, errors.Dimension("volume (CBM) is required for air shipments")
	}

	volumetric := volume.Mul(volumetricDivisor)
	chargeable := decimal.Max(input.WeightKG, volumetric)

	result := &types.FreightResult{
		Method:             types.MethodAir,
		ActualWeightKG:     input.WeightKG,
		VolumetricWeightKG: volumetric,
		ChargeableWeightKG: chargeable,
		VolumeCBM:          volume,
	}
	if derived {
		result.Notes = append(result.Notes, types.Note(types.NoteAssumption, component,
			fmt.Sprintf("volume %s CBM derived from shipment dimensions", volume)))
	}

	perKG := fallbackAirPerKG
	if rate, ok := s.rates.FreightRate(lane, types.MethodAir); ok {
		perKG = rate.PerKG
		result.TransitDays = rate.TransitDays
	} else {
		logging.Warn("no air rate on file, using fallback rate", zap.String("lane", lane.String()))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no air rate on file for lane %s; using estimated default of %s per kg", lane, perKG)))
	}

	result.SelectedCost = chargeable.Mul(perKG)
	result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
		fmt.Sprintf("air freight chargeable weight %s kg (actual %s kg, volumetric %s kg) at %s per kg",
			chargeable, input.WeightKG, volumetric, perKG)))
	return result, nil
}

func (s *Service) express(input *types.LandedCostInput, lane rates.Lane) (*types.FreightResult, error) {
	if !input.WeightKG.IsPositive() {
		return nil, errors.Dimension("weight (kg) is required for express shipments")
	}

	result := &types.FreightResult{Method: types.MethodExpress, ActualWeightKG: input.WeightKG}

	perKG := fallbackExpressPerKG
	if rate, ok := s.rates.FreightRate(lane, types.MethodExpress); ok {
		perKG = rate.PerKG
		result.TransitDays = rate.TransitDays
	} else {
		logging.Warn("no express courier rate on file, using fallback rate", zap.String("lane", lane.String()))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no express courier rate on file for lane %s; using estimated default of %s per kg", lane, perKG)))
	}

	result.SelectedCost = input.WeightKG.Mul(perKG)
	result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
		fmt.Sprintf("express courier %s kg at %s per kg on lane %s", input.WeightKG, perKG, lane)))
	return result, nil
}
