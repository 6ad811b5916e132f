package partition

import (
	"fmt"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

// Physical constants as decimal literals, so each backend parses them at its
// own precision instead of inheriting float64 rounding.
const (
	BoltzmannEV       = "8.6173324e-5"    // eV/K
	Avogadro          = "6.022140857e23"  // 1/mol
	AbsolutePotential = "4.44"            // V, absolute potential of the standard hydrogen electrode
	Permittivity      = "8.854187817e-12" // F/m, vacuum permittivity
	Pi                = "3.14159265358979323846264338327950288419716939937510" +
		"58209749445923078164062862089986280348253421170679" +
		"82148086513282306647093844609550582231725359408128" +
		"48111745028410270193852110555964462294895493038196"
)

// Constants holds the physical constants parsed for one backend. The values
// never change after NewConstants returns.
type Constants[T hpmath.Number[T]] struct {
	KB   T // eV/K
	NA   T // 1/mol
	VAbs T // V
	Pi   T
	Eps0 T // F/m
	KE   T // N m^2 / C^2, Coulomb's constant 1/(4 pi eps0)
}

// NewConstants parses the constants at the precision of proto.
func NewConstants[T hpmath.Number[T]](proto T) (Constants[T], error) {
	var c Constants[T]
	for _, f := range []struct {
		dst *T
		lit string
	}{
		{&c.KB, BoltzmannEV},
		{&c.NA, Avogadro},
		{&c.VAbs, AbsolutePotential},
		{&c.Pi, Pi},
		{&c.Eps0, Permittivity},
	} {
		v, err := proto.Parse(f.lit)
		if err != nil {
			return Constants[T]{}, fmt.Errorf("constant %s: %w", f.lit, err)
		}
		*f.dst = v
	}
	c.KE = proto.FromInt64(1).Quo(proto.FromInt64(4).Mul(c.Pi).Mul(c.Eps0))
	return c, nil
}
