// Package dynamics provides the model variants a lattice can be priced with.
//
// A model is a Stepper (how prices move one step up or down) composed with a
// Payoff (what exercising pays given the realised price path). Steppers and
// payoffs are independent, so an additive lattice can carry a median-strike
// call as easily as a multiplicative lattice carries a lookback put.
package dynamics

import (
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Additive moves prices by fixed amounts: s+Up on the up branch, s-Down on
// the down branch.
type Additive[T numeric.Number[T]] struct {
	Up   T
	Down T
}

// NextUp returns price + Up.
func (a Additive[T]) NextUp(price T) (T, error) { return price.Add(a.Up), nil }

// NextDown returns price - Down.
func (a Additive[T]) NextDown(price T) (T, error) { return price.Sub(a.Down), nil }

// Multiplicative moves prices by fixed factors: s*Up and s*Down.
type Multiplicative[T numeric.Number[T]] struct {
	Up   T
	Down T
}

// NextUp returns price * Up. A non-positive Up is a configuration error.
func (m Multiplicative[T]) NextUp(price T) (T, error) {
	if m.Up.Sign() <= 0 {
		return price, model.NewConfigurationError(errors.Errorf("up factor must be positive, got %s", m.Up))
	}
	return price.Mul(m.Up), nil
}

// NextDown returns price * Down. A non-positive Down is a configuration error.
func (m Multiplicative[T]) NextDown(price T) (T, error) {
	if m.Down.Sign() <= 0 {
		return price, model.NewConfigurationError(errors.Errorf("down factor must be positive, got %s", m.Down))
	}
	return price.Mul(m.Down), nil
}

// StepFuncs adapts a pair of functions to model.Stepper.
type StepFuncs[T numeric.Number[T]] struct {
	Up   func(T) (T, error)
	Down func(T) (T, error)
}

// NextUp calls f.Up.
func (f StepFuncs[T]) NextUp(price T) (T, error) { return f.Up(price) }

// NextDown calls f.Down.
func (f StepFuncs[T]) NextDown(price T) (T, error) { return f.Down(price) }

type composed[T numeric.Number[T]] struct {
	stepper model.Stepper[T]
	payoff  model.Payoff[T]
}

// Compose joins a stepper and a payoff into full model dynamics.
func Compose[T numeric.Number[T]](stepper model.Stepper[T], payoff model.Payoff[T]) model.Dynamics[T] {
	return composed[T]{stepper: stepper, payoff: payoff}
}

func (c composed[T]) NextUp(price T) (T, error) { return c.stepper.NextUp(price) }

func (c composed[T]) NextDown(price T) (T, error) { return c.stepper.NextDown(price) }

func (c composed[T]) Payoff(price T, history []T) (T, error) { return c.payoff.Payoff(price, history) }
