package hpmath

import "errors"

var (
	// ErrNoConvergence indicates that a series or iteration stopped at its
	// iteration ceiling. The accompanying value is a best-effort approximation.
	ErrNoConvergence = errors.New("hpmath: iteration ceiling reached")

	// ErrDomain indicates an argument outside the function's domain
	// (ln of a non-positive value, roots of a non-positive base).
	ErrDomain = errors.New("hpmath: argument out of domain")

	// ErrParse indicates a literal that the numeric backend could not parse.
	ErrParse = errors.New("hpmath: invalid number")
)
