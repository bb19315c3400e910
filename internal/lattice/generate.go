package lattice

import (
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Generate builds the complete price lattice for params.
//
// Starting from a root priced at params.S0, every node above params.Horizon
// gets an up child priced stepper.NextUp(price) and a down child priced
// stepper.NextDown(price). Nodes are visited in pre-order with an explicit
// stack: a node's two prices are computed, then its whole up subtree, then
// its down subtree. This is the order a recursive generator would call the
// stepper in.
//
// A stepper failure or a non-positive price is reported as a
// *model.DomainError naming the parent node. A stepper error that already is
// a *model.ConfigurationError is returned unchanged.
func Generate[T numeric.Number[T]](params model.Params[T], stepper model.Stepper[T]) (*Tree[T], error) {
	if stepper == nil {
		return nil, model.NewConfigurationError(errors.New("stepper is required"))
	}
	if params.Horizon < 0 || params.Horizon > model.MaxHorizon {
		return nil, model.NewConfigurationError(
			errors.Errorf("horizon %d outside [0, %d]", params.Horizon, model.MaxHorizon))
	}
	if params.S0.Sign() <= 0 {
		return nil, model.NewConfigurationError(
			errors.Errorf("initial price must be positive, got %s", params.S0))
	}

	t := newTree[T](params.Horizon)
	stack := []NodeID{t.alloc(params.S0, 0, NilNode, RootBranch)}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		price, depth := t.nodes[id].price, t.nodes[id].depth
		if depth >= params.Horizon {
			continue // leaf
		}

		upPrice, err := t.step(id, "next up", stepper.NextUp, price)
		if err != nil {
			return nil, err
		}
		downPrice, err := t.step(id, "next down", stepper.NextDown, price)
		if err != nil {
			return nil, err
		}

		up := t.alloc(upPrice, depth+1, id, UpBranch)
		down := t.alloc(downPrice, depth+1, id, DownBranch)
		t.nodes[id].children = [2]NodeID{up, down}

		// down first so the up subtree is popped first
		stack = append(stack, down, up)
	}

	return t, nil
}

func (t *Tree[T]) step(id NodeID, op string, next func(T) (T, error), price T) (T, error) {
	out, err := next(price)
	if err != nil {
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			return out, err
		}
		return out, t.domainError(id, op, err)
	}
	if out.Sign() <= 0 {
		return out, t.domainError(id, op, errors.Errorf("non-positive price %s from %s", out, price))
	}
	return out, nil
}

func (t *Tree[T]) domainError(id NodeID, op string, err error) error {
	return &model.DomainError{
		Depth: t.nodes[id].depth,
		Path:  t.Path(id),
		Op:    op,
		Err:   err,
	}
}
