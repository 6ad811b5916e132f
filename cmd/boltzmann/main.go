package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/boltzmann/pkg/config"
	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

// global holds the settings shared by every subcommand.
type global struct {
	precision int
	backend   string
	logLevel  string
	digits    int
}

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	if err := newRootCmd(env).Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(env config.Env) *cobra.Command {
	g := &global{
		precision: env.Precision,
		backend:   env.Backend,
		logLevel:  env.LogLevel,
	}

	root := &cobra.Command{
		Use:   "boltzmann",
		Short: "Arbitrary-precision partition functions and Boltzmann probabilities",
		Long: `boltzmann sweeps a discrete set of state energies across a temperature
range and computes, at every temperature, the fundamental temperature
tau = k_B T, the partition function Z(tau) and the occupation probability of
every state, all in arbitrary-precision arithmetic.

Parameters come from a configuration file (legacy whitespace format, TOML or
YAML) or are asked for interactively. Results are written as CSV and,
optionally, as JSON, HTML, a SQLite database or a table on stdout.

Environment:
  BOLTZMANN_PRECISION   significant decimal digits (default 1000)
  BOLTZMANN_BACKEND     bigfloat or decimal (default bigfloat)
  BOLTZMANN_LOG_LEVEL   debug, info, warn or error (default info)
  BOLTZMANN_CONFIG      parameter file (default boltzmann.cfg)
  BOLTZMANN_WORKERS     concurrent samples (default 1)

Examples:
  boltzmann sweep
  boltzmann sweep -c params.toml --json out.json --html out.html
  boltzmann tetrate 2 3
  boltzmann factorial 100`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(g.logLevel)
		},
	}

	root.PersistentFlags().IntVarP(&g.precision, "precision", "p", g.precision, "significant decimal digits of the bigfloat backend")
	root.PersistentFlags().StringVar(&g.backend, "backend", g.backend, "numeric backend: bigfloat or decimal")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", g.logLevel, "log level: debug, info, warn or error")
	root.PersistentFlags().IntVarP(&g.digits, "digits", "d", 50, "significant digits printed to stdout")

	root.AddCommand(
		newSweepCmd(g, env),
		newTetrateCmd(g),
		newFactorialCmd(),
		newHistoryCmd(),
		newExpCmd(g),
		newLnCmd(g),
		newConstantsCmd(g),
	)
	return root
}

func setupLogger(level string) error {
	lvl, err := config.Env{LogLevel: level}.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

const (
	backendBigFloat = "bigfloat"
	backendDecimal  = "decimal"
)

func (g *global) checkBackend() (string, error) {
	b := strings.ToLower(strings.TrimSpace(g.backend))
	switch b {
	case backendBigFloat, backendDecimal:
		return b, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %s or %s)", g.backend, backendBigFloat, backendDecimal)
	}
}

func (g *global) bigFloat() (hpmath.BigFloat, error) {
	if g.precision < 1 {
		return hpmath.BigFloat{}, fmt.Errorf("precision must be > 0")
	}
	return hpmath.NewBigFloat(hpmath.PrecisionForDigits(g.precision)), nil
}
