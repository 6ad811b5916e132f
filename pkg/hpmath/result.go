package hpmath

// Status reports how an iterative primitive terminated.
type Status int

const (
	Converged   Status = iota // fixed point or tolerance reached
	CeilingHit                // stopped at the iteration ceiling
	OutOfDomain               // argument outside the function's domain
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case CeilingHit:
		return "ceiling hit"
	case OutOfDomain:
		return "out of domain"
	default:
		return "unknown"
	}
}

// Result is the outcome of an iterative primitive. Value is always set; when
// Status is not Converged it is the best the iteration could do.
type Result[T any] struct {
	Value      T
	Iterations int
	Status     Status
}

// Converged reports whether the primitive reached its convergence criterion.
func (r Result[T]) Converged() bool { return r.Status == Converged }

// Err maps the status onto the package sentinels.
func (r Result[T]) Err() error {
	switch r.Status {
	case Converged:
		return nil
	case CeilingHit:
		return ErrNoConvergence
	default:
		return ErrDomain
	}
}

// worst keeps the least favourable of two statuses.
func worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
