// Package insurance derives CIF value and the cargo insurance premium.
package insurance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-cost/core/types"
	"trade-cost/internal/errors"
	"trade-cost/internal/logging"
)

const component = "insurance"

// defaultRate is the industry-typical cargo insurance rate used when the
// caller supplies neither an override nor a configured default.
var defaultRate = decimal.NewFromFloat(0.005)

// CIFValue returns cost + freight, the insured value. Both inputs must be
// non-negative.
func CIFValue(baseCost, freightCost decimal.Decimal) (decimal.Decimal, error) {
	if baseCost.IsNegative() {
		return decimal.Zero, errors.Valuation("base cost must not be negative when deriving CIF value")
	}
	if freightCost.IsNegative() {
		return decimal.Zero, errors.Valuation("freight cost must not be negative when deriving CIF value")
	}
	return baseCost.Add(freightCost), nil
}

// Options configures the insurance service
type Options struct {
	// DefaultRate is the rate applied absent a user override; zero means
	// the built-in 0.5% default.
	DefaultRate decimal.Decimal
}

// Service computes insurance premiums
type Service struct {
	opts Options
}

// NewService creates an insurance service
func NewService(opts Options) *Service {
	if opts.DefaultRate.IsZero() {
		opts.DefaultRate = defaultRate
	}
	return &Service{opts: opts}
}

// Rate returns the insurance rate to apply: the user override when present,
// else the configured default. A negative override is a blocking error.
func (s *Service) Rate(input *types.LandedCostInput) (rate decimal.Decimal, overridden bool, err error) {
	if input.InsuranceRate != nil {
		if input.InsuranceRate.IsNegative() {
			return decimal.Zero, false, errors.Input("insurance rate override must not be negative")
		}
		return *input.InsuranceRate, true, nil
	}
	return s.opts.DefaultRate, false, nil
}

// Calculate computes the premium on a CIF value
func (s *Service) Calculate(input *types.LandedCostInput, cifValue decimal.Decimal) (*types.InsuranceResult, error) {
	rate, overridden, err := s.Rate(input)
	if err != nil {
		return nil, err
	}
	logging.Debug("calculating insurance premium",
		zap.String("rate", rate.String()),
		zap.Bool("overridden", overridden),
	)

	result := &types.InsuranceResult{
		Rate:     rate,
		Amount:   cifValue.Mul(rate),
		CIFValue: cifValue,
	}

	if overridden {
		result.Notes = append(result.Notes, types.Note(types.NoteActual, component,
			fmt.Sprintf("insurance at user-supplied rate of %s%% on CIF value %s",
				rate.Mul(decimal.NewFromInt(100)), cifValue)))
	} else {
		result.Notes = append(result.Notes, types.Note(types.NoteEstimate, component,
			fmt.Sprintf("insurance at default rate of %s%% on CIF value %s",
				rate.Mul(decimal.NewFromInt(100)), cifValue)))
	}

	return result, nil
}
