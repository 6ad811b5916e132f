package hpmath

// Pow returns base^exponent. Integral exponents are evaluated exactly by
// repeated squaring; other exponents go through exp(exponent * ln(base)) and
// require a positive base.
func Pow[T Number[T]](base, exponent T) Result[T] {
	if isIntegral(exponent) {
		return Result[T]{Value: powInt(base, exponent.Int64()), Status: Converged}
	}
	if base.Sign() <= 0 {
		return Result[T]{Value: base.FromInt64(0), Status: OutOfDomain}
	}
	l := Ln(base)
	e := Exp(exponent.Mul(l.Value))
	e.Iterations += l.Iterations
	e.Status = worst(l.Status, e.Status)
	return e
}

func powInt[T Number[T]](base T, n int64) T {
	one := base.FromInt64(1)
	if n < 0 {
		return one.Quo(powInt(base, -n))
	}
	result := one
	for sq := base; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(sq)
		}
		if n > 1 {
			sq = sq.Mul(sq)
		}
	}
	return result
}

// Tetrate iterates exponentiation. A positive hyperpower h builds the power
// tower base^base^...^base of height h; a negative one starts from base and
// takes the base-th root |h|-1 times (base must be positive); zero yields 1.
func Tetrate[T Number[T]](base T, hyperpower int) Result[T] {
	one := base.FromInt64(1)
	switch {
	case hyperpower > 0:
		r := Result[T]{Value: base, Status: Converged}
		for i := 1; i < hyperpower; i++ {
			p := Pow(base, r.Value)
			r.Value = p.Value
			r.Iterations += p.Iterations
			r.Status = worst(r.Status, p.Status)
		}
		return r
	case hyperpower < 0 && base.Sign() > 0:
		r := Result[T]{Value: base, Status: Converged}
		root := one.Quo(base)
		for i := 1; i < -hyperpower; i++ {
			p := Pow(r.Value, root)
			r.Value = p.Value
			r.Iterations += p.Iterations
			r.Status = worst(r.Status, p.Status)
		}
		return r
	case hyperpower < 0:
		return Result[T]{Value: one, Status: OutOfDomain}
	default:
		return Result[T]{Value: one, Status: Converged}
	}
}
