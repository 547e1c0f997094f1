// Package inland computes pre-carriage (factory to origin port) and
// on-carriage (destination port to warehouse) trucking cost.
package inland

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

const component = "inland_transport"

// Built-in flat estimates, used when Options leaves them unset.
var (
	defaultOriginEstimate      = decimal.NewFromInt(350)
	defaultDestinationEstimate = decimal.NewFromInt(500)
)

// Options configures the flat estimates applied absent user overrides.
// Deployments with per-lane trucking data set these per calculation.
type Options struct {
	OriginEstimate      decimal.Decimal
	DestinationEstimate decimal.Decimal
}

// Service computes inland trucking legs
type Service struct {
	opts Options
}

// NewService creates an inland transport service
func NewService(opts Options) *Service {
	if opts.OriginEstimate.IsZero() {
		opts.OriginEstimate = defaultOriginEstimate
	}
	if opts.DestinationEstimate.IsZero() {
		opts.DestinationEstimate = defaultDestinationEstimate
	}
	return &Service{opts: opts}
}

// Calculate resolves both trucking legs.
// Origin pre-carriage is only estimated for EXW shipments: under the other
// terms the seller delivers to the origin port. Destination on-carriage is
// always applied since the buyer needs port-to-warehouse transport
// regardless of incoterm.
func (s *Service) Calculate(input *types.LandedCostInput) (*types.InlandTransportResult, error) {
	logging.Debug("resolving inland transport legs", zap.String("incoterm", string(input.Incoterm)))
	result := &types.InlandTransportResult{}

	switch {
	case input.InlandTransportOrigin != nil:
		if input.InlandTransportOrigin.IsNegative() {
			return nil, errors.Input("origin inland transport override must not be negative")
		}
		result.Origin = types.InlandLeg{Cost: *input.InlandTransportOrigin, Source: "override"}
		result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
			fmt.Sprintf("origin trucking %s from user override", result.Origin.Cost)))
	case input.Incoterm == types.IncotermEXW:
		result.Origin = types.InlandLeg{Cost: s.opts.OriginEstimate, Source: "estimate"}
		result.Notes = append(result.Notes, types.Note(types.NoteEstimate, component,
			fmt.Sprintf("origin trucking estimated at flat %s for EXW pickup", s.opts.OriginEstimate)))
	default:
		result.Origin = types.InlandLeg{Cost: decimal.Zero, Source: "not_applicable"}
		result.Notes = append(result.Notes, types.Note(types.NoteInfo, component,
			fmt.Sprintf("no origin trucking: seller delivers to origin port under %s", input.Incoterm)))
	}

	if input.InlandTransportDestination != nil {
		if input.InlandTransportDestination.IsNegative() {
			return nil, errors.Input("destination inland transport override must not be negative")
		}
		result.Destination = types.InlandLeg{Cost: *input.InlandTransportDestination, Source: "override"}
		result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
			fmt.Sprintf("destination trucking %s from user override", result.Destination.Cost)))
	} else {
		result.Destination = types.InlandLeg{Cost: s.opts.DestinationEstimate, Source: "estimate"}
		result.Notes = append(result.Notes, types.Note(types.NoteEstimate, component,
			fmt.Sprintf("destination trucking estimated at flat %s for port-to-warehouse delivery", s.opts.DestinationEstimate)))
	}

	result.Total = result.Origin.Cost.Add(result.Destination.Cost)
	return result, nil
}
