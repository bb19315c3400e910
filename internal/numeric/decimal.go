package numeric

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DecimalField is the Field of shopspring decimals.
//
// Division rounds to decimal.DivisionPrecision digits, so lattices priced
// with this field agree with RationalField only up to that precision.
type DecimalField struct{}

// Name returns "decimal".
func (DecimalField) Name() string { return "decimal" }

// Zero returns decimal 0.
func (DecimalField) Zero() decimal.Decimal { return decimal.Zero }

// One returns decimal 1.
func (DecimalField) One() decimal.Decimal { return decimal.NewFromInt(1) }

// FromInt returns n as a decimal.
func (DecimalField) FromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Parse reads a decimal such as "20" or "0.05".
func (DecimalField) Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid decimal number %q", s)
	}
	return d, nil
}
