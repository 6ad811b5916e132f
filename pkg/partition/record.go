package partition

import (
	"fmt"
	"math"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

const (
	// MaxStates is the largest number of states a system may have.
	MaxStates = math.MaxUint16

	// MaxSamples bounds the number of temperature points in one sweep.
	MaxSamples = 1 << 24
)

// Record is a parsed, not yet accepted, description of a system: where to
// write results, the state energies (eV), the optional per-state chemical
// potentials (eV) and the temperature sweep (K).
type Record[T hpmath.Number[T]] struct {
	Output     string
	Energies   []T
	Potentials []T // nil when chemical potentials are not modelled
	TMin       T
	TMax       T
	Step       T
}

// Source supplies a Record. Implementations read a configuration file, ask
// on a terminal, or return fixed values in tests. proto carries the precision
// the values must be parsed at.
type Source[T hpmath.Number[T]] interface {
	Acquire(proto T) (Record[T], error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T hpmath.Number[T]] func(proto T) (Record[T], error)

func (f SourceFunc[T]) Acquire(proto T) (Record[T], error) { return f(proto) }

// Static returns a Source that always yields r.
func Static[T hpmath.Number[T]](r Record[T]) Source[T] {
	return SourceFunc[T](func(T) (Record[T], error) { return r, nil })
}

// Validate checks the record against the sweep constraints: at least one and
// at most MaxStates states, potentials matching the energies index for index,
// finite values, 0 < TMin < TMax, 0 < Step < TMax-TMin and a sample count
// no larger than MaxSamples.
func (r Record[T]) Validate() error {
	n := len(r.Energies)
	switch {
	case n == 0:
		return ErrNoStates
	case n > MaxStates:
		return fmt.Errorf("%w: %d > %d", ErrTooManyStates, n, MaxStates)
	case r.Potentials != nil && len(r.Potentials) != n:
		return fmt.Errorf("%w: %d potentials for %d states", ErrPotentialMismatch, len(r.Potentials), n)
	}

	for i, e := range r.Energies {
		if !e.IsFinite() {
			return fmt.Errorf("%w: energy of state %d", ErrNonFinite, i+1)
		}
	}
	for i, mu := range r.Potentials {
		if !mu.IsFinite() {
			return fmt.Errorf("%w: potential of state %d", ErrNonFinite, i+1)
		}
	}
	for _, t := range []T{r.TMin, r.TMax, r.Step} {
		if !t.IsFinite() {
			return fmt.Errorf("%w: temperature sweep", ErrNonFinite)
		}
	}

	if r.TMin.Sign() <= 0 || r.TMax.Cmp(r.TMin) <= 0 {
		return fmt.Errorf("%w: [%s, %s]", ErrTemperatureRange, r.TMin.Text(8), r.TMax.Text(8))
	}
	span := r.TMax.Sub(r.TMin)
	if r.Step.Sign() <= 0 || r.Step.Cmp(span) >= 0 {
		return fmt.Errorf("%w: %s for a range of %s", ErrStep, r.Step.Text(8), span.Text(8))
	}

	count := sampleCount(r.TMin, r.TMax, r.Step)
	switch {
	case count < 1:
		return ErrNoSamples
	case count > MaxSamples:
		return fmt.Errorf("%w: %d > %d", ErrTooManySamples, count, MaxSamples)
	}
	return nil
}

// sampleCount is floor((max-min)/step).
func sampleCount[T hpmath.Number[T]](tMin, tMax, step T) int64 {
	return tMax.Sub(tMin).Quo(step).Int64()
}
