package pricing

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Option customises New.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used during generation and pricing.
// The default is the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Model is a fully generated and priced lattice.
//
// A Model only exists in its final state: New either returns a Model whose
// every node is Valued, or an error. Models are read-only.
type Model[T numeric.Number[T]] struct {
	params model.Params[T]
	field  numeric.Field[T]
	tree   *lattice.Tree[T]
	result Result
}

// New validates params, generates the lattice with dyn and prices it.
//
// Errors are *model.ConfigurationError for malformed inputs,
// *model.DomainError when dyn fails or leaves its domain at some node, and
// *model.ArbitrageError when a step admits arbitrage. No partial model is
// returned.
func New[T numeric.Number[T]](params model.Params[T], dyn model.Dynamics[T], field numeric.Field[T], opts ...Option) (*Model[T], error) {
	o := options{logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}

	if dyn == nil {
		return nil, model.NewConfigurationError(errors.New("model dynamics are required"))
	}
	if err := model.Validate(params, field); err != nil {
		return nil, err
	}
	params = params.Clone()

	tree, err := lattice.Generate(params, dyn)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().
		Int("horizon", tree.Horizon()).
		Int("nodes", tree.Len()).
		Msg("lattice generated")

	res, err := NewEngine(params, dyn, field, o.logger).Price(tree)
	if err != nil {
		return nil, err
	}

	m := &Model[T]{
		params: params,
		field:  field,
		tree:   tree,
		result: res,
	}
	o.logger.Info().
		Str("numeric", field.Name()).
		Int("horizon", tree.Horizon()).
		Int("nodes", res.Nodes).
		Int("exercised", res.Exercised).
		Int("barred_exercises", res.BarredExercises).
		Stringer("value", m.Value()).
		Msg("lattice priced")

	return m, nil
}

// Value returns the fair value at the root.
func (m *Model[T]) Value() T { return m.tree.Node(m.tree.Root()).Value() }

// Tree returns the priced lattice for display or export.
func (m *Model[T]) Tree() *lattice.Tree[T] { return m.tree }

// Result returns the pricing pass counters.
func (m *Model[T]) Result() Result { return m.result }

// Params returns a copy of the parameters the model was built from.
func (m *Model[T]) Params() model.Params[T] { return m.params.Clone() }

// Field returns the numeric field the model was priced with.
func (m *Model[T]) Field() numeric.Field[T] { return m.field }
