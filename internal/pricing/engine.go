// Package pricing values a generated lattice by risk-neutral backward
// induction with Bermudan exercise rights.
//
// The Engine walks the tree in post-order with an explicit stack. On the way
// down each node receives its path-dependent intrinsic value; on the way back
// up each internal node is valued from its two children:
//
//	u = S_up / S,  d = S_down / S
//	p = ((1 + r[t]) - d) / (u - d)
//	continuation = 1/(1 + r[t]) * (p * V_up + (1 - p) * V_down)
//
// At depths listed as stopping times the node takes the larger of its
// continuation and intrinsic values. At every other depth exercise is not
// permitted and the node takes its continuation value even when exercising
// would pay more.
package pricing

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Result summarises a pricing pass.
type Result struct {
	Nodes  int // nodes valued
	Leaves int // nodes valued at the horizon

	// Exercised counts internal nodes at stopping depths where exercise
	// strictly beat continuation.
	Exercised int

	// BarredExercises counts internal nodes at non-stopping depths where
	// exercise would have strictly beaten continuation but is not permitted.
	BarredExercises int
}

// Engine performs backward induction over a lattice.
type Engine[T numeric.Number[T]] struct {
	rates    []T
	stopping model.StoppingSet
	payoff   model.Payoff[T]
	zero     T
	one      T
	logger   zerolog.Logger
}

// NewEngine returns an engine for params, valuing exercise with payoff.
// params is assumed valid (see model.Validate).
func NewEngine[T numeric.Number[T]](params model.Params[T], payoff model.Payoff[T], field numeric.Field[T], logger zerolog.Logger) *Engine[T] {
	return &Engine[T]{
		rates:    params.Rates,
		stopping: params.Stopping(),
		payoff:   payoff,
		zero:     field.Zero(),
		one:      field.One(),
		logger:   logger,
	}
}

type frame[T numeric.Number[T]] struct {
	id       lattice.NodeID
	history  *history[T] // path to the parent on first visit, to the node on the second
	expanded bool
}

// Price values every node of tree and leaves it fully Valued. The tree must
// be freshly generated: every node Unpriced.
//
// The first error aborts the pass; the tree is then partially priced and
// must be discarded.
func (e *Engine[T]) Price(tree *lattice.Tree[T]) (Result, error) {
	var res Result
	if tree.Len() == 0 {
		return res, errors.Wrap(lattice.ErrStateViolation, "empty tree")
	}
	if len(e.rates) < tree.Horizon() {
		return res, model.NewConfigurationError(
			errors.Errorf("need %d rates for horizon %d, got %d", tree.Horizon(), tree.Horizon(), len(e.rates)))
	}

	stack := []frame[T]{{id: tree.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.expanded {
			if err := e.backward(tree, f.id, &res); err != nil {
				return res, err
			}
			res.Nodes++
			continue
		}

		node := tree.Node(f.id)
		path := f.history.extend(node.Price())
		if err := e.intrinsic(tree, node, path); err != nil {
			return res, err
		}

		if node.IsLeaf() {
			if err := tree.SetValue(f.id, tree.Node(f.id).Intrinsic()); err != nil {
				return res, err
			}
			res.Leaves++
			res.Nodes++
			continue
		}

		// popped in reverse: up subtree, down subtree, then this node
		stack = append(stack,
			frame[T]{id: f.id, history: path, expanded: true},
			frame[T]{id: node.Down(), history: path},
			frame[T]{id: node.Up(), history: path},
		)
	}

	return res, nil
}

func (e *Engine[T]) intrinsic(tree *lattice.Tree[T], node lattice.Node[T], path *history[T]) error {
	v, err := e.payoff.Payoff(node.Price(), path.prices())
	if err != nil {
		return domainError(tree, node.ID(), "payoff", err)
	}
	if v.Sign() < 0 {
		return domainError(tree, node.ID(), "payoff", errors.Errorf("negative payoff %s", v))
	}
	return tree.SetIntrinsic(node.ID(), v)
}

func (e *Engine[T]) backward(tree *lattice.Tree[T], id lattice.NodeID, res *Result) error {
	if err := tree.MarkChildrenPriced(id); err != nil {
		return err
	}

	node := tree.Node(id)
	up, down := tree.Node(node.Up()), tree.Node(node.Down())
	depth := node.Depth()

	if node.Price().IsZero() {
		return domainError(tree, id, "risk-neutral probability", errors.New("zero price"))
	}
	u := up.Price().Div(node.Price())
	d := down.Price().Div(node.Price())
	growth := e.one.Add(e.rates[depth])

	if u.Cmp(d) == 0 {
		return &model.ArbitrageError{
			Depth:  depth,
			Path:   tree.Path(id),
			Up:     u.String(),
			Down:   d.String(),
			Growth: growth.String(),
		}
	}
	p := growth.Sub(d).Div(u.Sub(d))
	if !numeric.InRange(p, e.zero, e.one) {
		return &model.ArbitrageError{
			Depth:       depth,
			Path:        tree.Path(id),
			Up:          u.String(),
			Down:        d.String(),
			Growth:      growth.String(),
			Probability: p.String(),
		}
	}

	expected := p.Mul(up.Value()).Add(e.one.Sub(p).Mul(down.Value()))
	continuation := e.one.Div(growth).Mul(expected)

	value := continuation
	exercisePays := node.Intrinsic().Cmp(continuation) > 0
	switch {
	case e.stopping.Contains(depth):
		if exercisePays {
			value = node.Intrinsic()
			res.Exercised++
		}
	case exercisePays:
		res.BarredExercises++
		e.logger.Debug().
			Int("depth", depth).
			Str("path", model.NodeLabel(tree.Path(id))).
			Stringer("intrinsic", node.Intrinsic()).
			Stringer("continuation", continuation).
			Msg("exercise not permitted at this depth")
	}

	return tree.SetValue(id, value)
}

func domainError[T numeric.Number[T]](tree *lattice.Tree[T], id lattice.NodeID, op string, err error) error {
	return &model.DomainError{
		Depth: tree.Node(id).Depth(),
		Path:  tree.Path(id),
		Op:    op,
		Err:   err,
	}
}
