package model

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sentinels for errors.Is. Every typed error below matches exactly one of them.
var (
	// ErrConfiguration indicates malformed model inputs.
	ErrConfiguration = errors.New("model configuration error")

	// ErrArbitrage indicates a step whose risk-neutral probability is
	// degenerate or outside [0, 1].
	ErrArbitrage = errors.New("arbitrage")

	// ErrDomain indicates a stepper or payoff evaluated outside its domain.
	ErrDomain = errors.New("domain error")
)

// ConfigurationError reports every problem found in the model inputs.
type ConfigurationError struct {
	// Problems is a *multierror.Error when more than one problem was found.
	Problems error
}

// NewConfigurationError collects problems into a ConfigurationError.
// It returns nil when problems holds no non-nil error.
func NewConfigurationError(problems ...error) error {
	var result *multierror.Error
	for _, p := range problems {
		if p != nil {
			result = multierror.Append(result, p)
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return &ConfigurationError{Problems: result}
}

// Error lists every problem on one line.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrConfiguration, e.Problems)
}

// Errors returns the individual problems.
func (e *ConfigurationError) Errors() []error {
	var merr *multierror.Error
	if errors.As(e.Problems, &merr) {
		return merr.Errors
	}
	return []error{e.Problems}
}

// Unwrap returns the collected problems.
func (e *ConfigurationError) Unwrap() error { return e.Problems }

// Cause returns the collected problems for errors.Cause.
func (e *ConfigurationError) Cause() error { return e.Problems }

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ArbitrageError reports a lattice step that admits arbitrage.
//
// The numeric fields are formatted with the String method of the numeric
// representation in use.
type ArbitrageError struct {
	Depth       int
	Path        string
	Up          string // up factor, up child price / node price
	Down        string // down factor, down child price / node price
	Growth      string // 1 + r[depth]
	Probability string // empty when the factors are equal
}

// Error names the node and the offending factors or probability.
func (e *ArbitrageError) Error() string {
	if e.Probability == "" {
		return fmt.Sprintf("%s at depth %d node %s: up factor %s equals down factor %s",
			ErrArbitrage, e.Depth, NodeLabel(e.Path), e.Up, e.Down)
	}
	return fmt.Sprintf("%s at depth %d node %s: risk-neutral probability %s outside [0, 1] (up %s, down %s, growth %s)",
		ErrArbitrage, e.Depth, NodeLabel(e.Path), e.Probability, e.Up, e.Down, e.Growth)
}

// Is matches ErrArbitrage.
func (e *ArbitrageError) Is(target error) bool { return target == ErrArbitrage }

// DomainError reports a stepper or payoff failure at a node.
type DomainError struct {
	Depth int
	Path  string
	Op    string // "next up", "next down", "payoff", ...
	Err   error
}

// Error names the node, the operation and the failure.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s at depth %d node %s: %s: %v", ErrDomain, e.Depth, NodeLabel(e.Path), e.Op, e.Err)
}

// Unwrap returns the underlying failure.
func (e *DomainError) Unwrap() error { return e.Err }

// Cause returns the underlying failure for errors.Cause.
func (e *DomainError) Cause() error { return e.Err }

// Is matches ErrDomain.
func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// NodeLabel renders a node path ("UDU") for messages; the root is "root".
func NodeLabel(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

func listFormat(es []error) string {
	msgs := make([]string, len(es))
	for i, err := range es {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
