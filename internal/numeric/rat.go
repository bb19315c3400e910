package numeric

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Rat is an immutable exact rational number.
//
// The zero value is 0 and ready to use.
type Rat struct {
	r *big.Rat
}

// NewRat returns a/b. It panics if b is zero.
func NewRat(a, b int64) Rat {
	return Rat{r: big.NewRat(a, b)}
}

// RatFromBig copies x into a Rat.
func RatFromBig(x *big.Rat) Rat {
	if x == nil {
		return Rat{}
	}
	return Rat{r: new(big.Rat).Set(x)}
}

func (x Rat) rat() *big.Rat {
	if x.r == nil {
		return new(big.Rat)
	}
	return x.r
}

// Add returns x+y.
func (x Rat) Add(y Rat) Rat { return Rat{r: new(big.Rat).Add(x.rat(), y.rat())} }

// Sub returns x-y.
func (x Rat) Sub(y Rat) Rat { return Rat{r: new(big.Rat).Sub(x.rat(), y.rat())} }

// Mul returns x*y.
func (x Rat) Mul(y Rat) Rat { return Rat{r: new(big.Rat).Mul(x.rat(), y.rat())} }

// Div returns x/y. It panics if y is zero.
func (x Rat) Div(y Rat) Rat {
	if y.IsZero() {
		panic("numeric: division by zero")
	}
	return Rat{r: new(big.Rat).Quo(x.rat(), y.rat())}
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Rat) Cmp(y Rat) int { return x.rat().Cmp(y.rat()) }

// IsZero reports whether x is 0.
func (x Rat) IsZero() bool { return x.Sign() == 0 }

// Sign returns -1, 0 or +1 by the sign of x.
func (x Rat) Sign() int { return x.rat().Sign() }

// String formats x as "a/b", or "a" when x is an integer.
func (x Rat) String() string { return x.rat().RatString() }

// FloatString formats x in decimal notation with prec digits after the point.
func (x Rat) FloatString(prec int) string { return x.rat().FloatString(prec) }

// RationalField is the Field of exact rationals.
type RationalField struct{}

// Name returns "rational".
func (RationalField) Name() string { return "rational" }

// Zero returns 0.
func (RationalField) Zero() Rat { return Rat{} }

// One returns 1.
func (RationalField) One() Rat { return NewRat(1, 1) }

// FromInt returns n as a rational.
func (RationalField) FromInt(n int64) Rat { return Rat{r: new(big.Rat).SetInt64(n)} }

// Parse accepts fractions ("3/4"), decimals ("1.25") and exponents ("1e-3").
func (RationalField) Parse(s string) (Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Rat{}, errors.Errorf("invalid rational number %q", s)
	}
	return Rat{r: r}, nil
}
