// Package numeric defines the arithmetic abstraction the lattice is priced with.
//
// The pricing core never touches a concrete number type. It is written against
// Number and receives a Field once, at model construction, which supplies the
// constants and the parser for the chosen representation.
//
// Two representations are provided:
//   - Rat: an exact rational backed by math/big. Every division is exact, so
//     the root value of a lattice can be pinned as a literal fraction.
//   - decimal.Decimal (shopspring): already satisfies Number. Division is
//     rounded to decimal.DivisionPrecision digits.
package numeric

import (
	"github.com/shopspring/decimal"
)

// Number is the set of operations the lattice arithmetic needs.
//
// Implementations are immutable values: every operation returns a new value
// and leaves the receiver untouched.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	// Div panics on a zero divisor. Callers check IsZero first.
	Div(T) T
	Cmp(T) int
	IsZero() bool
	Sign() int
	String() string
}

// Field supplies constants and parsing for one Number representation.
type Field[T Number[T]] interface {
	// Name identifies the representation ("rational", "decimal").
	Name() string
	Zero() T
	One() T
	FromInt(n int64) T
	// Parse reads a number from its textual form.
	Parse(s string) (T, error)
}

var (
	_ Number[decimal.Decimal] = decimal.Decimal{}
	_ Number[Rat]             = Rat{}
	_ Field[Rat]              = RationalField{}
	_ Field[decimal.Decimal]  = DecimalField{}
)

// Max returns the larger of a and b, preferring a on ties.
func Max[T Number[T]](a, b T) T {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the smaller of a and b, preferring a on ties.
func Min[T Number[T]](a, b T) T {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// InRange reports whether lo <= x <= hi.
func InRange[T Number[T]](x, lo, hi T) bool {
	return x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0
}
