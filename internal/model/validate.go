package model

import (
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Validate checks p and returns a *ConfigurationError listing every problem,
// or nil. The field provides the constants the rate check needs.
func Validate[T numeric.Number[T]](p Params[T], field numeric.Field[T]) error {
	if field == nil {
		return NewConfigurationError(errors.New("numeric field is required"))
	}

	var problems []error

	if p.Horizon < 0 {
		problems = append(problems, errors.Errorf("horizon must be non-negative, got %d", p.Horizon))
	}
	if p.Horizon > MaxHorizon {
		problems = append(problems, errors.Errorf("horizon %d exceeds maximum %d", p.Horizon, MaxHorizon))
	}

	if p.S0.Sign() <= 0 {
		problems = append(problems, errors.Errorf("initial price must be positive, got %s", p.S0))
	}

	if len(p.Rates) < p.Horizon {
		problems = append(problems, errors.Errorf("need %d rates for horizon %d, got %d",
			p.Horizon, p.Horizon, len(p.Rates)))
	}

	// 1 + r is a discount divisor.
	one := field.One()
	for t := 0; t < p.Horizon && t < len(p.Rates); t++ {
		if one.Add(p.Rates[t]).Sign() <= 0 {
			problems = append(problems, errors.Errorf("rate r[%d] = %s must be greater than -1", t, p.Rates[t]))
		}
	}

	for _, st := range p.StoppingTimes {
		if st < 0 || st > p.Horizon {
			problems = append(problems, errors.Errorf("stopping time %d outside [0, %d]", st, p.Horizon))
		}
	}

	return NewConfigurationError(problems...)
}
