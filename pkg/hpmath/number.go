package hpmath

// Number is the capability set the primitives are written against. Values are
// immutable: every operation returns a fresh value and leaves its operands
// untouched. Results take the precision of the receiver.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Neg() T

	// Cmp returns -1, 0 or +1. Equality under Cmp is the termination test
	// for fixed-point iterations.
	Cmp(T) int
	Sign() int
	IsFinite() bool

	// Int64 truncates toward zero. Float64 is lossy and only meant for
	// seeding iterations and for tests.
	Int64() int64
	Float64() float64

	FromInt64(int64) T
	Parse(string) (T, error)

	// Epsilon is the distance from 1 to the next representable value.
	Epsilon() T

	Text(digits int) string
}

func abs[T Number[T]](x T) T {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

func maxOf[T Number[T]](a, b T) T {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// isIntegral reports whether x has no fractional part.
func isIntegral[T Number[T]](x T) bool {
	return x.Cmp(x.FromInt64(x.Int64())) == 0
}
