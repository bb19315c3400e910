package dynamics

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// ErrEmptyPath is returned by statistics asked to reduce an empty path.
var ErrEmptyPath = errors.New("empty price path")

// Statistic reduces a root-to-node price path to one number.
// Statistics never modify the path they receive.
type Statistic[T numeric.Number[T]] func(path []T) (T, error)

// Statistic names accepted by StatisticByName.
const (
	// MedianStat selects Median
	MedianStat = "median"

	// MeanStat selects Mean
	MeanStat = "mean"

	// MaximumStat selects Maximum
	MaximumStat = "max"

	// MinimumStat selects Minimum
	MinimumStat = "min"

	// TerminalStat selects Terminal
	TerminalStat = "terminal"
)

// StatisticByName returns the named statistic.
func StatisticByName[T numeric.Number[T]](name string, field numeric.Field[T]) (Statistic[T], error) {
	switch name {
	case MedianStat:
		return Median(field), nil
	case MeanStat:
		return Mean(field), nil
	case MaximumStat:
		return Maximum[T](), nil
	case MinimumStat:
		return Minimum[T](), nil
	case TerminalStat:
		return Terminal[T](), nil
	}
	return nil, errors.Errorf("unknown statistic %q", name)
}

// Median returns the middle price of the path, or the mean of the two middle
// prices when the path has even length.
func Median[T numeric.Number[T]](field numeric.Field[T]) Statistic[T] {
	two := field.FromInt(2)
	return func(path []T) (T, error) {
		if len(path) == 0 {
			return field.Zero(), ErrEmptyPath
		}
		sorted := slices.Clone(path)
		slices.SortFunc(sorted, func(a, b T) int { return a.Cmp(b) })

		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid], nil
		}
		return sorted[mid-1].Add(sorted[mid]).Div(two), nil
	}
}

// Mean returns the arithmetic average of the path (Asian style).
func Mean[T numeric.Number[T]](field numeric.Field[T]) Statistic[T] {
	return func(path []T) (T, error) {
		if len(path) == 0 {
			return field.Zero(), ErrEmptyPath
		}
		sum := field.Zero()
		for _, p := range path {
			sum = sum.Add(p)
		}
		return sum.Div(field.FromInt(int64(len(path)))), nil
	}
}

// Maximum returns the highest price seen (lookback style).
func Maximum[T numeric.Number[T]]() Statistic[T] {
	return func(path []T) (T, error) {
		var out T
		if len(path) == 0 {
			return out, ErrEmptyPath
		}
		out = path[0]
		for _, p := range path[1:] {
			out = numeric.Max(out, p)
		}
		return out, nil
	}
}

// Minimum returns the lowest price seen.
func Minimum[T numeric.Number[T]]() Statistic[T] {
	return func(path []T) (T, error) {
		var out T
		if len(path) == 0 {
			return out, ErrEmptyPath
		}
		out = path[0]
		for _, p := range path[1:] {
			out = numeric.Min(out, p)
		}
		return out, nil
	}
}

// Terminal returns the last price of the path, i.e. the node price. Payoffs
// built on it are path independent.
func Terminal[T numeric.Number[T]]() Statistic[T] {
	return func(path []T) (T, error) {
		var out T
		if len(path) == 0 {
			return out, ErrEmptyPath
		}
		return path[len(path)-1], nil
	}
}
