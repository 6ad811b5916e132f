package hpmath

import (
	"math"
	"strconv"
)

// MaxNewtonIterations caps the refinement loop in Ln.
const MaxNewtonIterations = 1 << 12

// LnTolerance is the absolute step size below which Ln stops. Backends whose
// resolution is coarser than this stop once the step falls under 1024 units
// in the last place of the iterate, the noise floor of Exp after argument
// reduction.
const LnTolerance = "1e-300"

// Ln returns the natural logarithm of x > 0 by refining
//
//	y <- y + 2(x - e^y)/(x + e^y)
//
// with Exp as the inverse oracle. For x <= 0 the result is the unrefined
// starting point with status OutOfDomain.
func Ln[T Number[T]](x T) Result[T] {
	zero := x.FromInt64(0)
	if x.Sign() <= 0 || !x.IsFinite() {
		return Result[T]{Value: zero, Status: OutOfDomain}
	}

	tol, err := x.Parse(LnTolerance)
	if err != nil {
		tol = zero
	}
	eps := x.Epsilon().Mul(x.FromInt64(1 << 10))
	one := x.FromInt64(1)
	two := x.FromInt64(2)

	y := seed(x)
	status := Converged
	for i := 1; i <= MaxNewtonIterations; i++ {
		e := Exp(y)
		status = worst(status, e.Status)
		next := y.Add(two.Mul(x.Sub(e.Value)).Quo(x.Add(e.Value)))

		step := abs(next.Sub(y))
		limit := maxOf(tol, eps.Mul(maxOf(one, abs(next))))
		y = next
		if step.Sign() == 0 || step.Cmp(limit) < 0 {
			return Result[T]{Value: y, Iterations: i, Status: status}
		}
	}
	return Result[T]{Value: y, Iterations: MaxNewtonIterations, Status: CeilingHit}
}

// seed starts the iteration from the float64 logarithm when x fits in a
// float64, and from 0 otherwise.
func seed[T Number[T]](x T) T {
	f := x.Float64()
	if f > 0 && !math.IsInf(f, 0) {
		if l := math.Log(f); !math.IsNaN(l) && !math.IsInf(l, 0) {
			if y, err := x.Parse(strconv.FormatFloat(l, 'f', -1, 64)); err == nil {
				return y
			}
		}
	}
	return x.FromInt64(0)
}
