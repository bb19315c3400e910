// Package model defines the inputs of a lattice pricing run.
//
// A run is described by Params (initial price, per-step riskless rates,
// horizon and the depths at which early exercise is allowed) and by Dynamics,
// the capability that moves prices up and down one step and computes the
// path-dependent payoff. Both are generic over the numeric representation so
// the same model can be priced with exact rationals or with decimals.
//
// The package also owns the error taxonomy shared by the lattice and pricing
// packages: ConfigurationError, ArbitrageError and DomainError.
package model

import (
	"sort"

	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// MaxHorizon bounds the number of steps. The lattice is not recombining, so
// a horizon of T materialises 2^(T+1)-1 nodes.
const MaxHorizon = 24

// Stepper moves a price one step along the lattice.
//
// Implementations must be deterministic: the same input price always yields
// the same output price.
type Stepper[T numeric.Number[T]] interface {
	// NextUp returns the price reached by the up branch.
	NextUp(price T) (T, error)

	// NextDown returns the price reached by the down branch.
	NextDown(price T) (T, error)
}

// Payoff computes the exercise value of a node.
type Payoff[T numeric.Number[T]] interface {
	// Payoff receives the node price and the whole root-to-node price path,
	// current price included. The history slice is owned by the callee.
	Payoff(price T, history []T) (T, error)
}

// Dynamics is the full model capability: price stepping plus payoff.
type Dynamics[T numeric.Number[T]] interface {
	Stepper[T]
	Payoff[T]
}

// Params holds the market and contract parameters of a pricing run.
//
// Params is not mutated after a model is built from it.
type Params[T numeric.Number[T]] struct {
	S0 T // Initial underlying price

	// Rates holds the riskless rate of each step; Rates[t] applies between
	// depth t and t+1. At least Horizon entries are required.
	Rates []T

	Horizon int // Number of steps, i.e. the depth of every leaf

	// StoppingTimes lists the depths, in [0, Horizon], at which early
	// exercise is evaluated.
	StoppingTimes []int
}

// Clone returns a deep copy of p.
func (p Params[T]) Clone() Params[T] {
	out := p
	out.Rates = append([]T(nil), p.Rates...)
	out.StoppingTimes = append([]int(nil), p.StoppingTimes...)
	return out
}

// Stopping returns the stopping times as a set.
func (p Params[T]) Stopping() StoppingSet {
	return NewStoppingSet(p.StoppingTimes...)
}

// StoppingSet is a set of depths at which exercise is permitted.
type StoppingSet map[int]struct{}

// NewStoppingSet builds a set from depths; duplicates are ignored.
func NewStoppingSet(depths ...int) StoppingSet {
	s := make(StoppingSet, len(depths))
	for _, d := range depths {
		s[d] = struct{}{}
	}
	return s
}

// Contains reports whether exercise is permitted at depth.
func (s StoppingSet) Contains(depth int) bool {
	_, ok := s[depth]
	return ok
}

// Sorted returns the depths in ascending order.
func (s StoppingSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
