// Package customs determines dutiable value, duty, VAT/GST and
// country-specific surcharges for a shipment.
//
// The dutiable value depends on the destination's declared valuation
// method crossed with the shipment's incoterm; several destinations value
// duty on CIF including insurance, which is why the orchestrator passes
// the insurance-inclusive CIF figure here.
package customs

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-cost/core/rates"
	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

const component = "customs"

var hundred = decimal.NewFromInt(100)

// Components carries the upstream figures the valuation table needs
type Components struct {
	// BaseCost is the normalized vendor quote
	BaseCost decimal.Decimal

	// Freight is the selected freight cost
	Freight decimal.Decimal

	// Insurance is the cargo insurance premium
	Insurance decimal.Decimal

	// OriginInland is the factory-to-port trucking cost (EXW valuation needs it)
	OriginInland decimal.Decimal

	// CIFValue is base + freight + insurance; the basis for US MPF/HMF
	CIFValue decimal.Decimal
}

// Service assesses customs duties and fees
type Service struct {
	rates rates.Provider
}

// NewService creates a customs service
func NewService(provider rates.Provider) *Service {
	return &Service{rates: provider}
}

// Calculate assesses duty, VAT and surcharges for the shipment.
// HS validation failures, missing valuation configuration and negative
// dutiable values are blocking; a tariff or VAT table miss falls back to
// zero with a warning note.
func (s *Service) Calculate(input *types.LandedCostInput, comps Components) (*types.CustomsResult, error) {
	logging.Debug("assessing customs",
		zap.String("hs_code", input.HSCode),
		zap.String("destination", input.DestinationCountry),
	)

	if err := s.rates.ValidateHSCode(input.HSCode); err != nil {
		return nil, err
	}

	cfg, ok := s.rates.ValuationConfig(input.DestinationCountry)
	if !ok {
		return nil, errors.Config(
			fmt.Sprintf("destination country %s has no customs valuation configuration", input.DestinationCountry))
	}

	customsValue, err := dutiableValue(input.Incoterm, cfg.Method, comps)
	if err != nil {
		return nil, err
	}

	result := &types.CustomsResult{
		ValuationMethod: cfg.Method,
		CustomsValue:    customsValue,
	}
	result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
		fmt.Sprintf("dutiable value %s under %s valuation for a %s-quoted shipment",
			customsValue, cfg.Method, input.Incoterm)))

	lane := rates.Lane{Origin: input.OriginCountry, Destination: input.DestinationCountry}

	// Base duty. A missing rate is a data gap, not a structural failure.
	dutyRate, ok := s.rates.TariffRate(input.HSCode, lane)
	if !ok {
		dutyRate = decimal.Zero
		logging.Warn("no duty rate on file, assuming zero",
			zap.String("hs_code", input.HSCode), zap.String("lane", lane.String()))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no duty rate on file for HS %s on lane %s; assuming 0%% (default)", input.HSCode, lane)))
	}
	result.DutyRate = dutyRate
	result.DutyAmount = customsValue.Mul(dutyRate)

	// VAT/GST on duty-inclusive value.
	vatRate, ok := s.rates.VATRate(input.DestinationCountry)
	if !ok {
		vatRate = decimal.Zero
		logging.Warn("no VAT rate on file, assuming zero", zap.String("destination", input.DestinationCountry))
		result.Notes = append(result.Notes, types.Note(types.NoteWarning, component,
			fmt.Sprintf("no VAT rate on file for %s; assuming 0%% (default)", input.DestinationCountry)))
	}
	result.VATRate = vatRate
	result.VATAmount = customsValue.Add(result.DutyAmount).Mul(vatRate)

	// Trade-remedy tariffs, each an independent line item on the dutiable value.
	for _, t := range s.rates.AdditionalTariffs(input.HSCode, lane) {
		line := types.TariffLine{
			Name:   t.Name,
			Kind:   t.Kind,
			Rate:   t.Rate,
			Amount: customsValue.Mul(t.Rate),
		}
		result.AdditionalTariffs = append(result.AdditionalTariffs, line)
		result.AdditionalTariffTotal = result.AdditionalTariffTotal.Add(line.Amount)
		result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
			fmt.Sprintf("%s (%s): %s%% of dutiable value", t.Name, t.Kind, t.Rate.Mul(hundred))))
	}

	// Destination surcharges apply to sea imports only.
	if cfg.Fees != nil && input.ShippingMethod.IsSea() {
		mpf := comps.CIFValue.Mul(cfg.Fees.MPFRate)
		if mpf.LessThan(cfg.Fees.MPFMin) {
			mpf = cfg.Fees.MPFMin
		} else if mpf.GreaterThan(cfg.Fees.MPFMax) {
			mpf = cfg.Fees.MPFMax
		}
		result.MPF = mpf
		result.HMF = comps.CIFValue.Mul(cfg.Fees.HMFRate)
		result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
			fmt.Sprintf("merchandise processing fee %s and harbor maintenance fee %s on CIF value %s",
				mpf, result.HMF, comps.CIFValue)))
	}

	result.TotalCustomsFees = result.DutyAmount.
		Add(result.VATAmount).
		Add(result.MPF).
		Add(result.HMF).
		Add(result.AdditionalTariffTotal)

	return result, nil
}

// dutiableValue derives the customs value from the incoterm x valuation
// method decision table. DDP is not valid here: its duties are embedded in
// the quote and the orchestrator short-circuits the customs stage instead.
func dutiableValue(incoterm types.Incoterm, method types.ValuationMethod, c Components) (decimal.Decimal, error) {
	if incoterm == types.IncotermDDP {
		return decimal.Zero, errors.Valuation("DDP shipments embed duties in the quote; customs valuation is undefined")
	}

	var value decimal.Decimal
	switch method {
	case types.ValuationCIF:
		switch incoterm {
		case types.IncotermFOB:
			value = c.BaseCost.Add(c.Freight).Add(c.Insurance)
		case types.IncotermCIF:
			value = c.BaseCost
		case types.IncotermEXW:
			value = c.BaseCost.Add(c.OriginInland).Add(c.Freight).Add(c.Insurance)
		default:
			return decimal.Zero, errors.Valuation(
				fmt.Sprintf("no CIF valuation rule for incoterm %s", incoterm))
		}
	case types.ValuationFOB:
		switch incoterm {
		case types.IncotermFOB:
			value = c.BaseCost
		case types.IncotermCIF:
			value = c.BaseCost.Sub(c.Freight).Sub(c.Insurance)
		case types.IncotermEXW:
			value = c.BaseCost.Add(c.OriginInland)
		default:
			return decimal.Zero, errors.Valuation(
				fmt.Sprintf("no FOB valuation rule for incoterm %s", incoterm))
		}
	default:
		return decimal.Zero, errors.Config(
			fmt.Sprintf("unsupported customs valuation method: %q", method))
	}

	if value.IsNegative() {
		return decimal.Zero, errors.Valuation(
			fmt.Sprintf("customs value is negative (%s); freight and insurance exceed the %s quote", value, incoterm))
	}
	return value, nil
}
