package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/dynamics"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// parser parses scenario numbers into T and remembers every failure.
type parser[T numeric.Number[T]] struct {
	field numeric.Field[T]
	errs  *multierror.Error
}

func (p *parser[T]) parse(name, s string) T {
	v, err := p.field.Parse(s)
	if err != nil {
		p.errs = multierror.Append(p.errs, errors.WithMessage(err, name))
		return p.field.Zero()
	}
	return v
}

// Build converts s into model parameters and dynamics over field. Every
// number that fails to parse is reported in one *model.ConfigurationError.
// Only the horizon is range-checked here, since it sizes the rate slice;
// pricing.New checks the rest.
func Build[T numeric.Number[T]](s *Scenario, field numeric.Field[T]) (model.Params[T], model.Dynamics[T], error) {
	var params model.Params[T]
	if s == nil {
		return params, nil, model.NewConfigurationError(errors.New("scenario is required"))
	}
	if field == nil {
		return params, nil, model.NewConfigurationError(errors.New("numeric field is required"))
	}

	if s.Horizon < 0 || s.Horizon > model.MaxHorizon {
		return params, nil, model.NewConfigurationError(
			errors.Errorf("horizon %d outside [0, %d]", s.Horizon, model.MaxHorizon))
	}

	p := &parser[T]{field: field}
	params.S0 = p.parse("s0", s.S0)
	params.Horizon = s.Horizon
	params.StoppingTimes = append([]int(nil), s.StoppingTimes...)

	if s.Rate != "" {
		r := p.parse("rate", s.Rate)
		params.Rates = make([]T, s.Horizon)
		for i := range params.Rates {
			params.Rates[i] = r
		}
	} else {
		params.Rates = make([]T, len(s.Rates))
		for i, r := range s.Rates {
			params.Rates[i] = p.parse(fmt.Sprintf("rates[%d]", i), r)
		}
	}

	up := p.parse("stepper.up", s.Stepper.Up)
	down := p.parse("stepper.down", s.Stepper.Down)
	strike := p.parse("payoff.strike", s.Payoff.Strike)

	var stepper model.Stepper[T]
	switch s.Stepper.Kind {
	case AdditiveStepper:
		stepper = dynamics.Additive[T]{Up: up, Down: down}
	case MultiplicativeStepper:
		stepper = dynamics.Multiplicative[T]{Up: up, Down: down}
	default:
		p.errs = multierror.Append(p.errs, errors.Errorf("unknown stepper kind %q", s.Stepper.Kind))
	}

	var payoff model.Payoff[T]
	stat, err := dynamics.StatisticByName(s.Payoff.Statistic, field)
	if err != nil {
		p.errs = multierror.Append(p.errs, err)
	} else if payoff, err = dynamics.PayoffByName(s.Payoff.Kind, stat, strike, field); err != nil {
		p.errs = multierror.Append(p.errs, err)
	}

	if p.errs != nil {
		return params, nil, model.NewConfigurationError(p.errs.Errors...)
	}
	return params, dynamics.Compose(stepper, payoff), nil
}
