package partition

import "github.com/ja7ad/boltzmann/pkg/hpmath"

// Sample is the state of the system at one temperature: T, tau = k_B T, the
// partition function Z(tau) and the occupation probability of every state.
type Sample[T hpmath.Number[T]] struct {
	t   T
	tau T
	z   T
	p   []T
	mu  []T // potentials consumed by Calculate, kept for reporting only

	degraded   int
	calculated bool
}

// Initialize (re)allocates the probability and potential slices to n zeros
// and forgets any previous calculation.
func (s *Sample[T]) Initialize(n int) {
	var zero T
	s.p = make([]T, n)
	s.mu = make([]T, n)
	for i := range n {
		s.p[i] = zero
		s.mu[i] = zero
	}
	s.t, s.tau, s.z = zero, zero, zero
	s.degraded = 0
	s.calculated = false
}

// Calculate evaluates the sample at temperature t (K, strictly positive)
// against params, which it only reads:
//
//	tau = k_B t
//	w_i = exp((mu_i - E_i) / tau)
//	Z   = sum w_i
//	P_i = w_i / Z
//
// The weights are evaluated relative to the largest exponent so that the
// normalisation never divides by an underflowed sum; Z is scaled back
// afterwards. Each exponential that stopped at its iteration ceiling is
// counted in Degraded.
func (s *Sample[T]) Calculate(t T, params *Parameters[T]) {
	kB := params.Boltzmann()
	s.t = t
	s.tau = kB.Mul(t)
	s.degraded = 0
	s.calculated = true

	n := len(s.p)
	if n == 0 {
		s.z = kB.FromInt64(0)
		return
	}

	exps := make([]T, n)
	for i := range n {
		mu := params.Potential(i)
		s.mu[i] = mu
		exps[i] = mu.Sub(params.Energy(i)).Quo(s.tau)
	}
	peak := exps[0]
	for _, a := range exps[1:] {
		if a.Cmp(peak) > 0 {
			peak = a
		}
	}

	sum := kB.FromInt64(0)
	for i, a := range exps {
		w := s.exp(a.Sub(peak))
		s.p[i] = w
		sum = sum.Add(w)
	}
	for i := range s.p {
		s.p[i] = s.p[i].Quo(sum)
	}
	s.z = sum.Mul(s.exp(peak))
}

func (s *Sample[T]) exp(x T) T {
	r := hpmath.Exp(x)
	if !r.Converged() {
		s.degraded++
	}
	return r.Value
}

// T is the temperature in K.
func (s *Sample[T]) T() T { return s.t }

// Tau is the fundamental temperature k_B T in eV.
func (s *Sample[T]) Tau() T { return s.tau }

// Z is the partition function at Tau.
func (s *Sample[T]) Z() T { return s.z }

// States is the length of the probability vector.
func (s *Sample[T]) States() int { return len(s.p) }

// P returns the occupation probability of state i, or zero outside [0, n).
func (s *Sample[T]) P(i int) T {
	if i < 0 || i >= len(s.p) {
		var zero T
		return zero
	}
	return s.p[i]
}

// Potential returns the chemical potential state i was evaluated with, or
// zero outside [0, n).
func (s *Sample[T]) Potential(i int) T {
	if i < 0 || i >= len(s.mu) {
		var zero T
		return zero
	}
	return s.mu[i]
}

// Calculated reports whether Calculate has run since the last Initialize.
func (s *Sample[T]) Calculated() bool { return s.calculated }

// Degraded is the number of exponentials in the last Calculate that stopped
// at their iteration ceiling.
func (s *Sample[T]) Degraded() int { return s.degraded }

// ProbabilitySum returns sum P_i, which is 1 within the precision of T.
func (s *Sample[T]) ProbabilitySum() T {
	var sum T
	for i, p := range s.p {
		if i == 0 {
			sum = p
			continue
		}
		sum = sum.Add(p)
	}
	return sum
}
