package hpmath

// Factorial returns n! for a non-negative integral n. Anything below 2,
// including negative n, yields 1; callers guard negative input themselves.
func Factorial[T Number[T]](n T) T {
	one := n.FromInt64(1)
	result := one
	for i := n.FromInt64(2); i.Cmp(n) <= 0; i = i.Add(one) {
		result = result.Mul(i)
	}
	return result
}
