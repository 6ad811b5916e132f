package config

import (
	"fmt"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
)

// DefaultSteps is the number of steps the range is split into when a file
// gives no step.
const DefaultSteps = 100

// Record parses every number of f at the precision of proto.
func Record[T hpmath.Number[T]](f File, proto T) (partition.Record[T], error) {
	parse := func(field string, n Number) (T, error) {
		v, err := proto.Parse(string(n))
		if err != nil {
			return v, fmt.Errorf("%w: %s %q: %w", ErrNumber, field, n, err)
		}
		return v, nil
	}

	r := partition.Record[T]{Output: f.Output}
	var err error
	if r.TMin, err = parse("t_min", f.TMin); err != nil {
		return partition.Record[T]{}, err
	}
	if r.TMax, err = parse("t_max", f.TMax); err != nil {
		return partition.Record[T]{}, err
	}
	if f.Step == "" {
		r.Step = defaultStep(r.TMin, r.TMax)
	} else if r.Step, err = parse("step", f.Step); err != nil {
		return partition.Record[T]{}, err
	}

	r.Energies = make([]T, len(f.Energies))
	for i, e := range f.Energies {
		if r.Energies[i], err = parse(fmt.Sprintf("energy %d", i+1), e); err != nil {
			return partition.Record[T]{}, err
		}
	}
	if f.Potentials != nil {
		r.Potentials = make([]T, len(f.Potentials))
		for i, mu := range f.Potentials {
			if r.Potentials[i], err = parse(fmt.Sprintf("potential %d", i+1), mu); err != nil {
				return partition.Record[T]{}, err
			}
		}
	}
	return r, nil
}

// defaultStep splits [tMin, tMax] into DefaultSteps steps. The rounded
// quotient can land just above span/DefaultSteps, which would drop the last
// sample, so the step is lowered by a few units in the last place until the
// range holds DefaultSteps of them.
func defaultStep[T hpmath.Number[T]](tMin, tMax T) T {
	span := tMax.Sub(tMin)
	step := span.Quo(span.FromInt64(DefaultSteps))
	if span.Sign() <= 0 || !step.IsFinite() {
		return step
	}
	nudge := step.Mul(step.Epsilon())
	if nudge.Sign() == 0 {
		nudge = step.Epsilon()
	}
	for range 64 {
		if span.Quo(step).Int64() >= DefaultSteps {
			break
		}
		step = step.Sub(nudge)
		nudge = nudge.Add(nudge)
	}
	return step
}

// FileSource is a partition.Source backed by a parameter file.
type FileSource[T hpmath.Number[T]] struct {
	Path string
}

// Acquire loads and parses the file.
func (s FileSource[T]) Acquire(proto T) (partition.Record[T], error) {
	f, err := Load(s.Path)
	if err != nil {
		return partition.Record[T]{}, err
	}
	return Record(f, proto)
}
