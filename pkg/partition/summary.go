package partition

import "github.com/ja7ad/boltzmann/pkg/hpmath"

// Summary holds sweep-wide figures over the calculated samples.
type Summary[T hpmath.Number[T]] struct {
	Samples    int
	Degraded   int   // samples with at least one exponential at its ceiling
	MeanZ      T     // arithmetic mean of Z(tau)
	MeanEnergy T     // arithmetic mean of <E> = sum P_i E_i, in eV
	Dominant   []int // per state, samples in which it is the most probable
}

// Accumulator keeps running sums over samples.
type Accumulator[T hpmath.Number[T]] struct {
	params   *Parameters[T]
	count    int
	degraded int
	sumZ     T
	sumE     T
	dominant []int
}

// NewAccumulator returns an empty accumulator for samples of params.
func NewAccumulator[T hpmath.Number[T]](params *Parameters[T]) *Accumulator[T] {
	zero := params.zero
	return &Accumulator[T]{
		params:   params,
		sumZ:     zero,
		sumE:     zero,
		dominant: make([]int, params.States()),
	}
}

// MeanEnergy returns <E> = sum P_i E_i of s in eV.
func MeanEnergy[T hpmath.Number[T]](s *Sample[T], params *Parameters[T]) T {
	e := params.zero
	for i := range s.States() {
		e = e.Add(s.P(i).Mul(params.Energy(i)))
	}
	return e
}

// MostProbable returns the index of the state with the largest probability,
// the lowest index on ties, or -1 for an empty sample.
func MostProbable[T hpmath.Number[T]](s *Sample[T]) int {
	best := -1
	for i := range s.States() {
		if best < 0 || s.P(i).Cmp(s.P(best)) > 0 {
			best = i
		}
	}
	return best
}

// Apply adds s to the running sums. Samples not yet calculated are skipped.
func (a *Accumulator[T]) Apply(s *Sample[T]) {
	if !s.Calculated() {
		return
	}
	a.count++
	if s.Degraded() > 0 {
		a.degraded++
	}
	a.sumZ = a.sumZ.Add(s.Z())
	a.sumE = a.sumE.Add(MeanEnergy(s, a.params))
	if i := MostProbable(s); i >= 0 && i < len(a.dominant) {
		a.dominant[i]++
	}
}

// Summary returns the figures over all applied samples.
func (a *Accumulator[T]) Summary() Summary[T] {
	sum := Summary[T]{
		Samples:    a.count,
		Degraded:   a.degraded,
		MeanZ:      a.sumZ,
		MeanEnergy: a.sumE,
		Dominant:   append([]int(nil), a.dominant...),
	}
	if a.count == 0 {
		return sum
	}
	n := a.sumZ.FromInt64(int64(a.count))
	sum.MeanZ = a.sumZ.Quo(n)
	sum.MeanEnergy = a.sumE.Quo(n)
	return sum
}

// Summary accumulates every sample of the sweep.
func (m *Manager[T]) Summary() Summary[T] {
	acc := NewAccumulator(m.params)
	for i := range m.samples {
		acc.Apply(&m.samples[i])
	}
	return acc.Summary()
}
