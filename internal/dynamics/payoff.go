package dynamics

import (
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Payoff kinds accepted by PayoffByName.
const (
	// CallKind pays the statistic above the strike
	CallKind = "call"

	// PutKind pays the strike above the statistic
	PutKind = "put"
)

// Call pays max(stat(path) - strike, 0).
type Call[T numeric.Number[T]] struct {
	stat   Statistic[T]
	strike T
	zero   T
}

// NewCall returns a call on stat struck at strike.
func NewCall[T numeric.Number[T]](stat Statistic[T], strike T, field numeric.Field[T]) Call[T] {
	return Call[T]{stat: stat, strike: strike, zero: field.Zero()}
}

// Payoff applies the statistic to history and floors the call at zero.
func (c Call[T]) Payoff(_ T, history []T) (T, error) {
	s, err := c.stat(history)
	if err != nil {
		return c.zero, err
	}
	return numeric.Max(s.Sub(c.strike), c.zero), nil
}

// Put pays max(strike - stat(path), 0).
type Put[T numeric.Number[T]] struct {
	stat   Statistic[T]
	strike T
	zero   T
}

// NewPut returns a put on stat struck at strike.
func NewPut[T numeric.Number[T]](stat Statistic[T], strike T, field numeric.Field[T]) Put[T] {
	return Put[T]{stat: stat, strike: strike, zero: field.Zero()}
}

// Payoff applies the statistic to history and floors the put at zero.
func (p Put[T]) Payoff(_ T, history []T) (T, error) {
	s, err := p.stat(history)
	if err != nil {
		return p.zero, err
	}
	return numeric.Max(p.strike.Sub(s), p.zero), nil
}

// PayoffByName returns a call or put on stat.
func PayoffByName[T numeric.Number[T]](kind string, stat Statistic[T], strike T, field numeric.Field[T]) (model.Payoff[T], error) {
	switch kind {
	case CallKind:
		return NewCall(stat, strike, field), nil
	case PutKind:
		return NewPut(stat, strike, field), nil
	}
	return nil, errors.Errorf("unknown payoff kind %q", kind)
}

// PayoffFunc adapts a function to model.Payoff.
type PayoffFunc[T numeric.Number[T]] func(price T, history []T) (T, error)

// Payoff calls f.
func (f PayoffFunc[T]) Payoff(price T, history []T) (T, error) { return f(price, history) }
