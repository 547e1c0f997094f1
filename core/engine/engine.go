// Package engine orchestrates the landed cost pipeline.
//
// Stages run in strict dependency order: base cost, freight, CIF,
// insurance, insurance-inclusive CIF, customs, inland transport,
// aggregation, breakdown, notes. Data flows strictly forward and no stage
// calls back into an earlier one. The engine is a pure synchronous
// function of its input plus the injected rate data; callers may run
// unrelated calculations in parallel but never parallelize within one.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-cost/core/aggregate"
	"trade-cost/core/basecost"
	"trade-cost/core/breakdown"
	"trade-cost/core/customs"
	"trade-cost/core/freight"
	"trade-cost/core/inland"
	"trade-cost/core/insurance"
	"trade-cost/core/notes"
	"trade-cost/core/rates"
	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

// CalculationVersion identifies the calculation logic revision.
// Bump whenever any stage's math changes; the data snapshot timestamp on
// the result versions the rate data independently.
const CalculationVersion = "1.2.0"

// Config carries the engine's calculation defaults
type Config struct {
	// DefaultInsuranceRate is used absent a user override; zero means 0.5%
	DefaultInsuranceRate decimal.Decimal

	// OriginInlandEstimate is the flat EXW pickup estimate; zero means the built-in default
	OriginInlandEstimate decimal.Decimal

	// DestinationInlandEstimate is the flat delivery estimate; zero means the built-in default
	DestinationInlandEstimate decimal.Decimal
}

// Engine computes landed costs
type Engine struct {
	rates     rates.Provider
	base      *basecost.Service
	freight   *freight.Service
	insurance *insurance.Service
	customs   *customs.Service
	inland    *inland.Service
	log       *zap.Logger
}

// New creates an engine bound to a rate provider.
// The provider is the engine's only collaborator with external data; it is
// injected rather than reached through any global.
func New(provider rates.Provider, cfg Config) *Engine {
	return &Engine{
		rates:     provider,
		base:      basecost.NewService(),
		freight:   freight.NewService(provider),
		insurance: insurance.NewService(insurance.Options{DefaultRate: cfg.DefaultInsuranceRate}),
		customs:   customs.NewService(provider),
		inland: inland.NewService(inland.Options{
			OriginEstimate:      cfg.OriginInlandEstimate,
			DestinationEstimate: cfg.DestinationInlandEstimate,
		}),
		log: logging.With(zap.String("component", "engine")),
	}
}

// Calculate runs the full pipeline for one shipment.
// Blocking errors from any stage propagate unmodified; the caller decides
// whether to retry with corrected input. Once validation passes, rate
// misses degrade to defaults and the result is always returned.
func (e *Engine) Calculate(ctx context.Context, input *types.LandedCostInput) (*types.LandedCostResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Debug("starting calculation",
		zap.String("route", input.OriginCountry+"->"+input.DestinationCountry),
		zap.String("method", string(input.ShippingMethod)),
	)

	base, err := e.base.Calculate(input)
	if err != nil {
		return nil, err
	}

	fr, err := e.freight.Calculate(input)
	if err != nil {
		return nil, err
	}

	cif, err := insurance.CIFValue(base.NormalizedCost, fr.SelectedCost)
	if err != nil {
		return nil, err
	}

	ins, err := e.insurance.Calculate(input, cif)
	if err != nil {
		return nil, err
	}

	// Second CIF pass: several destinations value duty on CIF including
	// insurance, so the customs stage must see the premium-inclusive figure.
	updatedCIF := cif.Add(ins.Amount)

	// Inland runs before customs because EXW valuation includes the
	// origin trucking leg.
	inl, err := e.inland.Calculate(input)
	if err != nil {
		return nil, err
	}

	cust, err := e.assessCustoms(input, base, fr, ins, inl, updatedCIF)
	if err != nil {
		return nil, err
	}

	total, err := aggregate.TotalLandedCost(aggregate.Components{
		BaseCost:        base.NormalizedCost,
		Freight:         fr.SelectedCost,
		Insurance:       ins.Amount,
		Customs:         cust.TotalCustomsFees,
		InlandTransport: inl.Total,
	})
	if err != nil {
		return nil, err
	}

	perUnit, err := aggregate.CostPerUnit(total, input.Quantity)
	if err != nil {
		return nil, err
	}

	items, err := breakdown.Build(breakdown.Lines(base, fr, ins, cust, inl), total)
	if err != nil {
		return nil, err
	}

	snapshot := e.rates.Timestamp()
	result := &types.LandedCostResult{
		CalculationID:         uuid.NewString(),
		CalculationVersion:    CalculationVersion,
		DataSnapshotTimestamp: snapshot,
		CalculationTimestamp:  time.Now().UTC(),
		BaseCost:              *base,
		Freight:               *fr,
		Insurance:             *ins,
		Customs:               *cust,
		InlandTransport:       *inl,
		Totals: types.Totals{
			TotalLandedCost: total,
			CostPerUnit:     perUnit,
			Currency:        input.Currency,
		},
		Breakdown: items,
		Notes: notes.Aggregate(input, CalculationVersion, snapshot,
			base.Notes, fr.Notes, ins.Notes, cust.Notes, inl.Notes),
	}

	applyRounding(result)

	e.log.Info("landed cost calculated",
		zap.String("calculation_id", result.CalculationID),
		zap.String("route", input.OriginCountry+"->"+input.DestinationCountry),
		zap.String("method", string(input.ShippingMethod)),
		zap.String("total", result.Totals.TotalLandedCost.String()),
	)

	return result, nil
}

// assessCustoms runs the customs stage, short-circuiting DDP shipments:
// their duties are already embedded in the vendor quote, so the component
// is zeroed and annotated instead of assessed.
func (e *Engine) assessCustoms(input *types.LandedCostInput, base *types.BaseCostResult,
	fr *types.FreightResult, ins *types.InsuranceResult, inl *types.InlandTransportResult,
	updatedCIF decimal.Decimal) (*types.CustomsResult, error) {

	if input.Incoterm == types.IncotermDDP {
		return &types.CustomsResult{
			Notes: []types.CalculationNote{
				types.Note(types.NoteInfo, "customs",
					"DDP shipment: duties and import taxes are already paid by the seller; customs component zeroed"),
			},
		}, nil
	}

	cust, err := e.customs.Calculate(input, customs.Components{
		BaseCost:     base.NormalizedCost,
		Freight:      fr.SelectedCost,
		Insurance:    ins.Amount,
		OriginInland: inl.Origin.Cost,
		CIFValue:     updatedCIF,
	})
	if err != nil {
		if !errors.Blocking(err) {
			// Rate errors never escape the customs stage; anything that
			// reaches here with a non-blocking type is an internal bug.
			return nil, errors.Internal("non-blocking error escaped customs stage", err)
		}
		return nil, err
	}
	return cust, nil
}

// applyRounding applies the boundary rounding policy to every exported
// numeric: money 2dp, percentages 4dp, weights 2dp, volumes 4dp.
// Cumulative breakdown fields are rounded after the exact fold so the last
// cumulative amount still equals the rounded total.
func applyRounding(r *types.LandedCostResult) {
	r.BaseCost.FOBCost = types.RoundMoney(r.BaseCost.FOBCost)
	r.BaseCost.EXWCost = types.RoundMoney(r.BaseCost.EXWCost)
	r.BaseCost.NormalizedCost = types.RoundMoney(r.BaseCost.NormalizedCost)

	r.Freight.SelectedCost = types.RoundMoney(r.Freight.SelectedCost)
	for i := range r.Freight.ContainerQuotes {
		r.Freight.ContainerQuotes[i].Cost = types.RoundMoney(r.Freight.ContainerQuotes[i].Cost)
	}
	r.Freight.ActualWeightKG = types.RoundWeight(r.Freight.ActualWeightKG)
	r.Freight.VolumetricWeightKG = types.RoundWeight(r.Freight.VolumetricWeightKG)
	r.Freight.ChargeableWeightKG = types.RoundWeight(r.Freight.ChargeableWeightKG)
	r.Freight.VolumeCBM = types.RoundVolume(r.Freight.VolumeCBM)

	r.Insurance.Amount = types.RoundMoney(r.Insurance.Amount)
	r.Insurance.CIFValue = types.RoundMoney(r.Insurance.CIFValue)

	r.Customs.CustomsValue = types.RoundMoney(r.Customs.CustomsValue)
	r.Customs.DutyAmount = types.RoundMoney(r.Customs.DutyAmount)
	r.Customs.VATAmount = types.RoundMoney(r.Customs.VATAmount)
	r.Customs.MPF = types.RoundMoney(r.Customs.MPF)
	r.Customs.HMF = types.RoundMoney(r.Customs.HMF)
	r.Customs.AdditionalTariffTotal = types.RoundMoney(r.Customs.AdditionalTariffTotal)
	for i := range r.Customs.AdditionalTariffs {
		r.Customs.AdditionalTariffs[i].Amount = types.RoundMoney(r.Customs.AdditionalTariffs[i].Amount)
	}
	r.Customs.TotalCustomsFees = types.RoundMoney(r.Customs.TotalCustomsFees)

	r.InlandTransport.Origin.Cost = types.RoundMoney(r.InlandTransport.Origin.Cost)
	r.InlandTransport.Destination.Cost = types.RoundMoney(r.InlandTransport.Destination.Cost)
	r.InlandTransport.Total = types.RoundMoney(r.InlandTransport.Total)

	r.Totals.TotalLandedCost = types.RoundMoney(r.Totals.TotalLandedCost)
	r.Totals.CostPerUnit = types.RoundMoney(r.Totals.CostPerUnit)

	for i := range r.Breakdown {
		r.Breakdown[i].Amount = types.RoundMoney(r.Breakdown[i].Amount)
		r.Breakdown[i].Percentage = types.RoundPercent(r.Breakdown[i].Percentage)
		r.Breakdown[i].CumulativeAmount = types.RoundMoney(r.Breakdown[i].CumulativeAmount)
		r.Breakdown[i].CumulativePercentage = types.RoundPercent(r.Breakdown[i].CumulativePercentage)
	}
}
