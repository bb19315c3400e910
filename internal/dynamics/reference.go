package dynamics

import (
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Reference returns the reference scenario: s0 = 20, three riskless steps at
// r = 0, prices moving +2 / -4, a call on the running median struck at 4,
// and exercise permitted at depths 0, 1 and 3.
func Reference[T numeric.Number[T]](field numeric.Field[T]) (model.Params[T], model.Dynamics[T]) {
	const horizon = 3
	rates := make([]T, horizon)
	for i := range rates {
		rates[i] = field.Zero()
	}
	params := model.Params[T]{
		S0:            field.FromInt(20),
		Rates:         rates,
		Horizon:       horizon,
		StoppingTimes: []int{0, 1, 3},
	}
	dyn := Compose[T](
		Additive[T]{Up: field.FromInt(2), Down: field.FromInt(4)},
		NewCall(Median(field), field.FromInt(4), field),
	)
	return params, dyn
}
