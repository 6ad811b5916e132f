package hpmath

// MaxSeriesTerms caps the series in Exp. With the argument reduced to
// |x| <= 1 the series converges in far fewer terms even at thousands of
// digits; reaching the cap means the backend never settles on a fixed point.
const MaxSeriesTerms = 1 << 14

// maxHalvings bounds the argument reduction in Exp.
const maxHalvings = 1 << 12

// Exp returns e^x from the Taylor series sum x^k/k!, accumulated until the
// running sum no longer changes under the type's own comparison.
//
// The argument is first halved until |x| <= 1 and the partial result is
// squared back, and e^-x is taken as 1/e^x, so the summed terms are all
// positive and few. exp(0) is exactly 1.
func Exp[T Number[T]](x T) Result[T] {
	one := x.FromInt64(1)
	if !x.IsFinite() {
		return Result[T]{Value: x, Status: OutOfDomain}
	}
	if x.Sign() == 0 {
		return Result[T]{Value: one, Status: Converged}
	}
	if x.Sign() < 0 {
		r := Exp(x.Neg())
		if r.Value.IsFinite() {
			r.Value = one.Quo(r.Value)
		} else {
			// e^-x overflowed the backend, so e^x underflows it
			r.Value = x.FromInt64(0)
		}
		return r
	}

	two := x.FromInt64(2)
	halvings := 0
	for x.Cmp(one) > 0 && halvings < maxHalvings {
		x = x.Quo(two)
		halvings++
	}

	r := expSeries(x)
	for i := 0; i < halvings; i++ {
		r.Value = r.Value.Mul(r.Value)
	}
	return r
}

// expSeries sums the series directly. Each term is derived from the previous
// one (t_k = t_{k-1} * x / k) instead of recomputing x^k and k!.
func expSeries[T Number[T]](x T) Result[T] {
	one := x.FromInt64(1)
	sum := one
	term := one
	for k := int64(1); k <= MaxSeriesTerms; k++ {
		term = term.Mul(x).Quo(x.FromInt64(k))
		next := sum.Add(term)
		if next.Cmp(sum) == 0 {
			return Result[T]{Value: next, Iterations: int(k), Status: Converged}
		}
		sum = next
	}
	return Result[T]{Value: sum, Iterations: MaxSeriesTerms, Status: CeilingHit}
}
