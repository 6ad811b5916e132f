package prompt

import (
	"strconv"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
)

// Temperature bounds accepted interactively, in K.
const (
	MinTemperature = "1e-100"
	MaxTemperature = "1.416833e32"
	MinStep        = "1e-100"
)

// Source asks for a complete parameter record on a terminal. It is a
// partition.Source.
type Source[T hpmath.Number[T]] struct {
	P *Prompter
}

// Acquire asks for the output file, the temperature sweep, the states and,
// if wanted, their chemical potentials. Bounds the backend cannot represent
// are not enforced.
func (s Source[T]) Acquire(proto T) (partition.Record[T], error) {
	var (
		r   partition.Record[T]
		err error
	)
	lo, hasLo := bound(proto, MinTemperature)
	hi, hasHi := bound(proto, MaxTemperature)
	minStep, hasMinStep := bound(proto, MinStep)
	atLeast := func(v, lo T, ok bool) bool { return v.Sign() > 0 && (!ok || v.Cmp(lo) >= 0) }
	atMost := func(v T) bool { return !hasHi || v.Cmp(hi) <= 0 }

	p := s.P
	for r.Output == "" {
		if r.Output, err = p.Line("\nEnter a filename to save the results (CSV format, will be overwritten): "); err != nil {
			return r, err
		}
	}

	if r.TMin, err = Ask(p, proto,
		"What is the minimum temperature to calculate (in K)?: ",
		"Please enter a finite, positive temperature in Kelvins: ",
		func(v T) bool { return atLeast(v, lo, hasLo) && (!hasHi || v.Cmp(hi) < 0) }); err != nil {
		return r, err
	}
	if r.TMax, err = Ask(p, proto,
		"What is the maximum temperature to calculate (in K)?: ",
		"Please enter a finite temperature greater than the minimum temperature: ",
		func(v T) bool { return v.Cmp(r.TMin) > 0 && atMost(v) }); err != nil {
		return r, err
	}
	span := r.TMax.Sub(r.TMin)
	if r.Step, err = Ask(p, proto,
		"How many Kelvins should the program step for each sample? ",
		"Please enter a finite, positive value less than the temperature range: ",
		func(v T) bool { return atLeast(v, minStep, hasMinStep) && v.Cmp(span) < 0 }); err != nil {
		return r, err
	}

	n, err := p.Int(
		"How many states does the partition function have? ",
		"Please enter a positive integer no larger than "+strconv.Itoa(partition.MaxStates)+": ",
		1, partition.MaxStates)
	if err != nil {
		return r, err
	}

	r.Energies = make([]T, n)
	for i := range n {
		if r.Energies[i], err = Ask(p, proto,
			"Enter the energy of the "+Ordinal(i+1)+" state in eV: ",
			"Please enter a numerical value: ", nil); err != nil {
			return r, err
		}
	}

	withMu, err := p.Confirm("Model chemical potentials? (y/n) ")
	if err != nil {
		return r, err
	}
	if withMu {
		r.Potentials = make([]T, n)
		for i := range n {
			if r.Potentials[i], err = Ask(p, proto,
				"Enter the chemical potential of the "+Ordinal(i+1)+" state in eV: ",
				"Please enter a numerical value: ", nil); err != nil {
				return r, err
			}
		}
	}

	p.Printf("Please wait . . .\n")
	return r, nil
}

// bound parses a limit literal. A limit the backend cannot hold, or one it
// rounds to zero, is reported as absent.
func bound[T hpmath.Number[T]](proto T, lit string) (T, bool) {
	v, err := proto.Parse(lit)
	if err != nil || !v.IsFinite() || v.Sign() == 0 {
		return v, false
	}
	return v, true
}
