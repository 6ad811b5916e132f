package partition

import (
	"fmt"
	"slices"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

// Parameters is the fixed description of a thermodynamic system: state
// energies, optional chemical potentials and the temperature sweep. It owns
// its slices; nothing handed to Populate or returned by an accessor aliases
// them.
type Parameters[T hpmath.Number[T]] struct {
	proto T
	zero  T
	kB    T

	output      string
	energies    []T
	potentials  []T
	tMin        T
	tMax        T
	step        T
	temperature T
}

// NewParameters returns an empty, energy-free instance whose values will be
// parsed at the precision of proto.
func NewParameters[T hpmath.Number[T]](proto T) *Parameters[T] {
	zero := proto.FromInt64(0)
	return &Parameters[T]{proto: proto, zero: zero, tMin: zero, tMax: zero, step: zero, temperature: zero}
}

// Populate acquires a record from src, validates it and takes a copy of it.
// On failure the instance is left as it was.
func (p *Parameters[T]) Populate(src Source[T]) error {
	r, err := src.Acquire(p.proto)
	if err != nil {
		return fmt.Errorf("acquire parameters: %w", err)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	kB, err := p.proto.Parse(BoltzmannEV)
	if err != nil {
		return fmt.Errorf("boltzmann constant: %w", err)
	}

	p.kB = kB
	p.output = r.Output
	p.energies = slices.Clone(r.Energies)
	p.potentials = slices.Clone(r.Potentials)
	p.tMin, p.tMax, p.step = r.TMin, r.TMax, r.Step
	p.temperature = r.TMin
	return nil
}

// Output is the file name the results should be written to.
func (p *Parameters[T]) Output() string { return p.output }

// States is the number of states n.
func (p *Parameters[T]) States() int { return len(p.energies) }

// Energy returns E_i in eV, or zero for an index outside [0, n).
func (p *Parameters[T]) Energy(i int) T {
	if i < 0 || i >= len(p.energies) {
		return p.zero
	}
	return p.energies[i]
}

// HasPotentials reports whether chemical potentials are modelled.
func (p *Parameters[T]) HasPotentials() bool { return p.potentials != nil }

// Potential returns mu_i in eV, or zero when potentials are not modelled or
// i is outside [0, n).
func (p *Parameters[T]) Potential(i int) T {
	if i < 0 || i >= len(p.potentials) {
		return p.zero
	}
	return p.potentials[i]
}

// Energies returns a copy of the energy list.
func (p *Parameters[T]) Energies() []T { return slices.Clone(p.energies) }

// Temperature is the temperature most recently set by a sweep.
func (p *Parameters[T]) Temperature() T { return p.temperature }

// SetTemperature records the current sweep temperature.
func (p *Parameters[T]) SetTemperature(t T) { p.temperature = t }

func (p *Parameters[T]) TMin() T { return p.tMin }
func (p *Parameters[T]) TMax() T { return p.tMax }
func (p *Parameters[T]) Step() T { return p.step }

// Samples is floor((TMax-TMin)/Step), derived on every call. It is zero
// before Populate succeeds.
func (p *Parameters[T]) Samples() int {
	if p.step.Sign() <= 0 {
		return 0
	}
	return int(sampleCount(p.tMin, p.tMax, p.step))
}

// TemperatureAt returns TMin + i*Step.
func (p *Parameters[T]) TemperatureAt(i int) T {
	return p.tMin.Add(p.step.Mul(p.proto.FromInt64(int64(i))))
}

// Boltzmann returns k_B in eV/K at the precision of the instance.
func (p *Parameters[T]) Boltzmann() T { return p.kB }
