// Package partition computes partition functions and Boltzmann occupation
// probabilities of a discrete set of states over a temperature sweep.
//
// A Manager owns the system Parameters and one Sample per temperature. It is
// populated from a Source (a parameter file, a terminal, a fixed Record),
// sweeps the range from TMin in steps of Step, and hands its results out as
// a header and a row iterator or writes them as CSV:
//
//	m := partition.NewManager(hpmath.NewBigFloat(hpmath.DefaultPrecision))
//	if err := m.Initialize(src); err != nil {
//		return err
//	}
//	if err := m.Sweep(ctx, bar); err != nil {
//		return err
//	}
//	return m.SaveToDisk(m.Parameters().Output())
//
// At temperature T every sample holds tau = k_B T in eV, Z(tau) = sum_i
// exp((mu_i - E_i)/tau) and P_i = exp((mu_i - E_i)/tau) / Z. Energies and
// chemical potentials are in eV, temperatures in K. A Manager is not safe for
// concurrent use; WithWorkers parallelises a single Sweep internally.
package partition
