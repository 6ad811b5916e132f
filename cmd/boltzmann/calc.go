package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
	"github.com/ja7ad/boltzmann/pkg/report"
)

func newTetrateCmd(g *global) *cobra.Command {
	return &cobra.Command{
		Use:   "tetrate BASE HYPERPOWER",
		Short: "Iterated exponentiation: the power tower of BASE with height HYPERPOWER",
		Long: `A positive HYPERPOWER builds BASE^BASE^...^BASE, HYPERPOWER levels high.
A negative one takes the BASE-th root of BASE |HYPERPOWER|-1 times, which
requires a positive BASE. Zero yields 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("hyperpower %q: %w", args[1], err)
			}
			return dispatch(g, cmd.OutOrStdout(), args[0],
				tetrateOp[hpmath.BigFloat](h), tetrateOp[hpmath.Decimal](h))
		},
	}
}

func tetrateOp[T hpmath.Number[T]](h int) func(T) hpmath.Result[T] {
	return func(x T) hpmath.Result[T] { return hpmath.Tetrate(x, h) }
}

func newExpCmd(g *global) *cobra.Command {
	return &cobra.Command{
		Use:   "exp X",
		Short: "e^X by its power series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(g, cmd.OutOrStdout(), args[0], hpmath.Exp[hpmath.BigFloat], hpmath.Exp[hpmath.Decimal])
		},
	}
}

func newLnCmd(g *global) *cobra.Command {
	return &cobra.Command{
		Use:   "ln X",
		Short: "Natural logarithm of X > 0 by Newton iteration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(g, cmd.OutOrStdout(), args[0], hpmath.Ln[hpmath.BigFloat], hpmath.Ln[hpmath.Decimal])
		},
	}
}

func newFactorialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factorial N",
		Short: "Exact N! for a non-negative integer N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("N must be a non-negative integer: %w", err)
			}
			if n > maxFactorial {
				return fmt.Errorf("N must be <= %d", maxFactorial)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hpmath.Factorial(hpmath.NewBigInt(int64(n))).String())
			return err
		},
	}
}

// maxFactorial keeps the result printable in reasonable time.
const maxFactorial = 1 << 16

func newConstantsCmd(g *global) *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "Print the physical constants at the working precision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := g.bigFloat()
			if err != nil {
				return err
			}
			c, err := partition.NewConstants(proto)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"k_B", c.KB.Text(g.digits), "eV/K"},
				{"N_A", c.NA.Text(g.digits), "1/mol"},
				{"V_abs", c.VAbs.Text(g.digits), "V"},
				{"eps_0", c.Eps0.Text(g.digits), "F/m"},
				{"k_e", c.KE.Text(g.digits), "N m^2/C^2"},
				{"pi", c.Pi.Text(g.digits), ""},
			}
			return report.WriteTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "UNIT"}, slices.Values(rows))
		},
	}
}

// dispatch parses arg with the selected backend, applies the matching op and
// prints the value. A result that did not converge is still printed, with a
// warning.
func dispatch(g *global, w io.Writer, arg string,
	onBig func(hpmath.BigFloat) hpmath.Result[hpmath.BigFloat],
	onDec func(hpmath.Decimal) hpmath.Result[hpmath.Decimal],
) error {
	backend, err := g.checkBackend()
	if err != nil {
		return err
	}
	if backend == backendDecimal {
		return evaluate(w, hpmath.Decimal{}, arg, g.digits, onDec)
	}
	proto, err := g.bigFloat()
	if err != nil {
		return err
	}
	return evaluate(w, proto, arg, g.digits, onBig)
}

func evaluate[T hpmath.Number[T]](w io.Writer, proto T, arg string, digits int, op func(T) hpmath.Result[T]) error {
	x, err := proto.Parse(arg)
	if err != nil {
		return err
	}
	r := op(x)
	if err := r.Err(); err != nil {
		slog.Warn("result is not exact", "status", r.Status.String(), "iterations", r.Iterations, "err", err)
	}
	_, err = fmt.Fprintln(w, r.Value.Text(digits))
	return err
}
