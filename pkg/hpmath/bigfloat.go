package hpmath

import (
	"fmt"
	"math"
	"math/big"
)

// DefaultPrecision is the binary precision used for a zero BigFloat. 3322
// bits carry roughly 1000 significant decimal digits.
const DefaultPrecision uint = 3322

// BigFloat is an immutable wrapper around *big.Float. The zero value is 0 at
// DefaultPrecision.
type BigFloat struct {
	v *big.Float
}

// NewBigFloat returns 0 at the given binary precision.
func NewBigFloat(prec uint) BigFloat {
	if prec == 0 {
		prec = DefaultPrecision
	}
	return BigFloat{v: new(big.Float).SetPrec(prec)}
}

// PrecisionForDigits converts decimal significant digits into bits.
func PrecisionForDigits(digits int) uint {
	if digits <= 0 {
		return DefaultPrecision
	}
	return uint(math.Ceil(float64(digits) * math.Log2(10)))
}

// ParseBigFloat parses s at the given binary precision.
func ParseBigFloat(s string, prec uint) (BigFloat, error) {
	return NewBigFloat(prec).Parse(s)
}

// MustBigFloat is ParseBigFloat for literals known to be valid.
func MustBigFloat(s string, prec uint) BigFloat {
	x, err := ParseBigFloat(s, prec)
	if err != nil {
		panic(err)
	}
	return x
}

// Prec returns the binary precision of x.
func (x BigFloat) Prec() uint {
	if x.v == nil {
		return DefaultPrecision
	}
	return x.v.Prec()
}

// Big returns a copy of the underlying value.
func (x BigFloat) Big() *big.Float {
	return new(big.Float).Copy(x.val())
}

func (x BigFloat) val() *big.Float {
	if x.v == nil {
		return new(big.Float).SetPrec(DefaultPrecision)
	}
	return x.v
}

func (x BigFloat) alloc() *big.Float {
	return new(big.Float).SetPrec(x.Prec())
}

func (x BigFloat) Add(y BigFloat) BigFloat { return BigFloat{x.alloc().Add(x.val(), y.val())} }
func (x BigFloat) Sub(y BigFloat) BigFloat { return BigFloat{x.alloc().Sub(x.val(), y.val())} }
func (x BigFloat) Mul(y BigFloat) BigFloat { return BigFloat{x.alloc().Mul(x.val(), y.val())} }

// Quo returns x/y. Dividing a non-zero value by zero yields ±Inf; 0/0 panics
// with big.ErrNaN, so callers keep divisors away from zero.
func (x BigFloat) Quo(y BigFloat) BigFloat { return BigFloat{x.alloc().Quo(x.val(), y.val())} }

func (x BigFloat) Neg() BigFloat          { return BigFloat{x.alloc().Neg(x.val())} }
func (x BigFloat) Cmp(y BigFloat) int     { return x.val().Cmp(y.val()) }
func (x BigFloat) Sign() int              { return x.val().Sign() }
func (x BigFloat) IsFinite() bool         { return !x.val().IsInf() }
func (x BigFloat) FromInt64(i int64) BigFloat {
	return BigFloat{x.alloc().SetInt64(i)}
}

func (x BigFloat) Int64() int64 {
	i, _ := x.val().Int64()
	return i
}

func (x BigFloat) Float64() float64 {
	f, _ := x.val().Float64()
	return f
}

func (x BigFloat) Parse(s string) (BigFloat, error) {
	f, _, err := big.ParseFloat(s, 10, x.Prec(), big.ToNearestEven)
	if err != nil {
		return BigFloat{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return BigFloat{f}, nil
}

func (x BigFloat) Epsilon() BigFloat {
	one := big.NewFloat(1)
	return BigFloat{x.alloc().SetMantExp(one, 1-int(x.Prec()))}
}

// Text formats x with the given number of significant digits.
func (x BigFloat) Text(digits int) string { return x.val().Text('g', digits) }

func (x BigFloat) String() string { return x.Text(16) }
