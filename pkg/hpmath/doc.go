// Package hpmath provides arbitrary-precision numeric primitives written once
// against a small capability set and instantiated for several backends.
//
// Overview
//
//   - Number[T] is the constraint every backend satisfies: the four
//     arithmetic operators, negation, exact comparison, conversion from
//     int64 and decimal literals, and formatting.
//
//   - Backends:
//
//   - BigFloat: math/big.Float at a configurable binary precision. The
//     default, DefaultPrecision, carries roughly 1000 significant digits.
//
//   - Decimal: github.com/govalues/decimal (19 significant digits) with a
//     sticky error in place of NaN.
//
//   - BigInt: math/big.Int, for exact factorials and integral powers.
//
//   - Primitives:
//     Factorial(n)        n! for integral n >= 0, 1 below 2
//     Exp(x)              series sum, stops at a fixed point of the running sum
//     Ln(x)               Newton-style refinement with Exp as the oracle
//     Pow(base, exp)      exact for integral exponents, exp(exp*ln(base)) otherwise
//     Tetrate(base, h)    power towers for h > 0, repeated roots for h < 0
//
// # Convergence
//
// Iterative primitives return a Result carrying the value, the number of
// iterations and a Status. A Status of CeilingHit means the loop stopped at
// MaxSeriesTerms or MaxNewtonIterations; the value is a best-effort
// approximation and Result.Err returns ErrNoConvergence. OutOfDomain marks an
// argument the primitive is not defined for (ln of x <= 0); Result.Err returns
// ErrDomain. No primitive panics on its own account, although BigFloat
// inherits big.ErrNaN panics for 0/0 and Inf-Inf.
//
// Exp never delegates to math.Exp: the backends carry far more digits than a
// float64, and a round trip through hardware floating point would truncate
// them. Ln only uses math.Log to pick its starting point.
package hpmath
