package hpmath

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/govalues/decimal"
)

var errDivisionByZero = errors.New("division by zero")

// Decimal is a 19-digit decimal backed by github.com/govalues/decimal.
// Arithmetic that overflows or divides by zero does not panic: the result
// carries the error, compares as non-finite and poisons everything derived
// from it.
type Decimal struct {
	v   decimal.Decimal
	err error
}

// NewDecimal wraps an existing decimal value.
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{v: d} }

// ParseDecimal parses a decimal literal such as "8.6173324e-5".
func ParseDecimal(s string) (Decimal, error) { return Decimal{}.Parse(s) }

// Value returns the wrapped decimal and the first error met while computing it.
func (x Decimal) Value() (decimal.Decimal, error) { return x.v, x.err }

func (x Decimal) lift(f func() (decimal.Decimal, error), y Decimal) Decimal {
	if x.err != nil {
		return x
	}
	if y.err != nil {
		return y
	}
	d, err := f()
	if err != nil {
		return Decimal{err: err}
	}
	return Decimal{v: d}
}

func (x Decimal) Add(y Decimal) Decimal {
	return x.lift(func() (decimal.Decimal, error) { return x.v.Add(y.v) }, y)
}

func (x Decimal) Sub(y Decimal) Decimal {
	return x.lift(func() (decimal.Decimal, error) { return x.v.Sub(y.v) }, y)
}

func (x Decimal) Mul(y Decimal) Decimal {
	return x.lift(func() (decimal.Decimal, error) { return x.v.Mul(y.v) }, y)
}

func (x Decimal) Quo(y Decimal) Decimal {
	return x.lift(func() (decimal.Decimal, error) {
		if y.v.IsZero() {
			return decimal.Decimal{}, errDivisionByZero
		}
		return x.v.Quo(y.v)
	}, y)
}

func (x Decimal) Neg() Decimal {
	if x.err != nil {
		return x
	}
	return Decimal{v: x.v.Neg()}
}

func (x Decimal) Cmp(y Decimal) int { return x.v.Cmp(y.v) }
func (x Decimal) Sign() int         { return x.v.Sign() }
func (x Decimal) IsFinite() bool    { return x.err == nil }

func (x Decimal) Int64() int64 {
	whole, _, ok := x.v.Trunc(0).Int64(0)
	if !ok {
		return 0
	}
	return whole
}

func (x Decimal) Float64() float64 {
	f, _ := x.v.Float64()
	return f
}

func (x Decimal) FromInt64(i int64) Decimal {
	d, err := decimal.New(i, 0)
	return Decimal{v: d, err: err}
}

// Parse accepts plain decimal text and falls back to float64 for exponent
// notation, which the decimal parser does not read.
func (x Decimal) Parse(s string) (Decimal, error) {
	d, err := decimal.Parse(s)
	if err == nil {
		return Decimal{v: d}, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return Decimal{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	d, err = decimal.NewFromFloat64(f)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return Decimal{v: d}, nil
}

func (x Decimal) Epsilon() Decimal {
	d, _ := decimal.New(1, decimal.MaxScale)
	return Decimal{v: d}
}

func (x Decimal) Text(int) string {
	if x.err != nil {
		return "NaN"
	}
	return x.v.String()
}

func (x Decimal) String() string { return x.Text(0) }
