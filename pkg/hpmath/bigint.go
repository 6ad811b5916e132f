package hpmath

import (
	"fmt"
	"math/big"
)

// BigInt is an immutable arbitrary-size integer. Quo truncates, so it suits
// Factorial and integral powers; the series and Newton primitives degrade to
// integer arithmetic on it.
type BigInt struct {
	v *big.Int
}

// NewBigInt returns i as a BigInt.
func NewBigInt(i int64) BigInt { return BigInt{big.NewInt(i)} }

// Big returns a copy of the underlying value.
func (x BigInt) Big() *big.Int { return new(big.Int).Set(x.val()) }

func (x BigInt) val() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

func (x BigInt) Add(y BigInt) BigInt { return BigInt{new(big.Int).Add(x.val(), y.val())} }
func (x BigInt) Sub(y BigInt) BigInt { return BigInt{new(big.Int).Sub(x.val(), y.val())} }
func (x BigInt) Mul(y BigInt) BigInt { return BigInt{new(big.Int).Mul(x.val(), y.val())} }

// Quo truncates toward zero and panics on a zero divisor like big.Int does.
func (x BigInt) Quo(y BigInt) BigInt { return BigInt{new(big.Int).Quo(x.val(), y.val())} }

func (x BigInt) Neg() BigInt              { return BigInt{new(big.Int).Neg(x.val())} }
func (x BigInt) Cmp(y BigInt) int         { return x.val().Cmp(y.val()) }
func (x BigInt) Sign() int                { return x.val().Sign() }
func (x BigInt) IsFinite() bool           { return true }
func (x BigInt) Int64() int64             { return x.val().Int64() }
func (x BigInt) FromInt64(i int64) BigInt { return NewBigInt(i) }
func (x BigInt) Epsilon() BigInt          { return NewBigInt(1) }
func (x BigInt) Text(int) string          { return x.val().String() }
func (x BigInt) String() string           { return x.val().String() }

func (x BigInt) Float64() float64 {
	f, _ := new(big.Float).SetInt(x.val()).Float64()
	return f
}

func (x BigInt) Parse(s string) (BigInt, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return BigInt{i}, nil
}
