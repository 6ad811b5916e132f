package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/boltzmann/pkg/config"
	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
	"github.com/ja7ad/boltzmann/pkg/progress"
	"github.com/ja7ad/boltzmann/pkg/prompt"
	"github.com/ja7ad/boltzmann/pkg/report"
	"github.com/ja7ad/boltzmann/pkg/store"
)

// maxSaveAttempts bounds how often a new file name is asked for after the
// output cannot be created.
const maxSaveAttempts = 5

type sweepOpts struct {
	configPath string
	useConfig  bool
	workers    int
	quiet      bool
	pretty     bool

	// outputs
	csvPath    string
	jsonPath   string
	htmlPath   string
	sqlitePath string
}

func newSweepCmd(g *global, env config.Env) *cobra.Command {
	o := sweepOpts{configPath: env.Config, workers: env.Workers}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compute Z(tau) and P_n(tau) over a temperature range",
		Long: `sweep reads the system from the parameter file when it exists and the
answer to "use data?" is yes (or --yes is given); otherwise it asks for every
value on the terminal. The results are saved as CSV to the output named by the
parameters, or to --csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := g.checkBackend()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if backend == backendDecimal {
				return runSweep(ctx, hpmath.Decimal{}, *g, o, p, cmd.OutOrStdout())
			}
			proto, err := g.bigFloat()
			if err != nil {
				return err
			}
			return runSweep(ctx, proto, *g, o, p, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&o.configPath, "config", "c", o.configPath, "parameter file (legacy, .toml or .yaml)")
	cmd.Flags().BoolVarP(&o.useConfig, "yes", "y", false, "use the parameter file without asking")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", o.workers, "samples computed concurrently")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "do not draw the progress bar")
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "print the results as a table on stdout")

	cmd.Flags().StringVar(&o.csvPath, "csv", "", "write the CSV here instead of the output named by the parameters")
	cmd.Flags().StringVar(&o.jsonPath, "json", "", "write the samples to a JSON file")
	cmd.Flags().StringVar(&o.htmlPath, "html", "", "write the samples and a summary to an HTML file")
	cmd.Flags().StringVar(&o.sqlitePath, "sqlite", "", "append the sweep to a SQLite database")
	return cmd
}

func runSweep[T hpmath.Number[T]](ctx context.Context, proto T, g global, o sweepOpts, p *prompt.Prompter, stdout io.Writer) error {
	if o.workers < 1 {
		return fmt.Errorf("workers must be > 0")
	}

	m := partition.NewManager(proto,
		partition.WithLogger(slog.Default()),
		partition.WithWorkers(o.workers),
	)
	if err := m.Initialize(chooseSource[T](o, p)); err != nil {
		return err
	}
	params := m.Parameters()
	slog.Info("sweep",
		"states", params.States(),
		"samples", m.Samples(),
		"t_min", params.TMin().Text(8),
		"t_max", params.TMax().Text(8),
		"step", params.Step().Text(8),
		"workers", o.workers,
	)

	var bar partition.Progress
	if !o.quiet {
		bar = progress.New(os.Stderr, progress.DefaultWidth)
	}
	start := time.Now()
	if err := m.Sweep(ctx, bar); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted")
		}
		return err
	}
	elapsed := time.Since(start)

	path := o.csvPath
	if path == "" {
		path = params.Output()
	}
	saved, err := saveWithRetry(m, p, path)
	if err != nil {
		return err
	}

	if o.jsonPath != "" {
		if err := writeFile(o.jsonPath, func(w io.Writer) error {
			header, rows := m.Table(partition.SaveDigits)
			return report.WriteJSON(w, header, rows)
		}); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(w io.Writer) error {
			return writeHTML(w, m, g.digits)
		}); err != nil {
			slog.Error("write html", "err", err)
		}
	}
	if o.sqlitePath != "" {
		if err := saveSQLite(ctx, o.sqlitePath, m); err != nil {
			slog.Error("write sqlite", "err", err)
		}
	}
	if o.pretty {
		header, rows := m.Table(min(g.digits, partition.SaveDigits))
		if err := report.WriteTable(stdout, header, rows); err != nil {
			return err
		}
	}

	sum := m.Summary()
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "boltzmann sweep (%d samples of %d states in %s):\n", sum.Samples, params.States(), elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "- results:        %s\n", saved)
	fmt.Fprintf(stdout, "- mean Z(tau):    %s\n", sum.MeanZ.Text(12))
	fmt.Fprintf(stdout, "- mean <E>:       %s eV\n", sum.MeanEnergy.Text(12))
	if sum.Degraded > 0 {
		fmt.Fprintf(stdout, "- degraded:       %d samples\n", sum.Degraded)
	}
	fmt.Fprintln(stdout)
	return nil
}

// chooseSource prefers the parameter file and falls back to the terminal
// when the file is missing, declined or unreadable.
func chooseSource[T hpmath.Number[T]](o sweepOpts, p *prompt.Prompter) partition.Source[T] {
	interactive := prompt.Source[T]{P: p}
	if o.configPath == "" {
		return interactive
	}
	if _, err := os.Stat(o.configPath); err != nil {
		slog.Debug("no parameter file", "path", o.configPath)
		return interactive
	}
	return partition.SourceFunc[T](func(proto T) (partition.Record[T], error) {
		use := o.useConfig
		if !use {
			var err error
			if use, err = p.Confirm("\nConfiguration file found; use data? (y/n) "); err != nil {
				return partition.Record[T]{}, err
			}
		}
		if !use {
			return interactive.Acquire(proto)
		}
		r, err := config.FileSource[T]{Path: o.configPath}.Acquire(proto)
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			slog.Warn("error reading configuration file", "path", o.configPath, "err", err)
			return interactive.Acquire(proto)
		}
		return r, nil
	})
}

// saveWithRetry saves the CSV and, while the file cannot be created, asks for
// another name.
func saveWithRetry[T hpmath.Number[T]](m *partition.Manager[T], p *prompt.Prompter, path string) (string, error) {
	for attempt := 1; ; attempt++ {
		err := m.SaveToDisk(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, partition.ErrOpenOutput) || attempt == maxSaveAttempts {
			return "", err
		}
		slog.Warn("cannot open output", "path", path, "attempt", attempt, "err", err)
		if path, err = p.Line("Enter a new filename to save the results: "); err != nil {
			return "", err
		}
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeHTML[T hpmath.Number[T]](w io.Writer, m *partition.Manager[T], digits int) error {
	header, rows := m.Table(min(digits, partition.SaveDigits))
	doc, err := report.NewDocument("Boltzmann Report", header, rows)
	if err != nil {
		return err
	}

	params := m.Parameters()
	sum := m.Summary()
	doc.Notes = []string{partition.Preamble[0], "Temperatures are in K"}
	doc.Summary = []report.Field{
		{Label: "States", Value: strconv.Itoa(params.States())},
		{Label: "Temperature range", Value: params.TMin().Text(12) + " K to " + params.TMax().Text(12) + " K"},
		{Label: "Step", Value: params.Step().Text(12) + " K"},
		{Label: "Chemical potentials", Value: strconv.FormatBool(params.HasPotentials())},
		{Label: "Mean Z(tau)", Value: sum.MeanZ.Text(12)},
		{Label: "Mean <E>", Value: sum.MeanEnergy.Text(12) + " eV"},
	}
	for i, n := range sum.Dominant {
		if n > 0 {
			doc.Summary = append(doc.Summary, report.Field{
				Label: "Most probable state " + strconv.Itoa(i+1),
				Value: strconv.Itoa(n) + " samples",
			})
		}
	}
	if sum.Degraded > 0 {
		doc.Summary = append(doc.Summary, report.Field{Label: "Degraded samples", Value: strconv.Itoa(sum.Degraded)})
	}
	return report.WriteHTML(w, doc)
}

func saveSQLite[T hpmath.Number[T]](ctx context.Context, path string, m *partition.Manager[T]) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := store.Save(ctx, s, m, partition.SaveDigits)
	if err != nil {
		return err
	}
	slog.Info("sweep stored", "path", path, "id", id)
	return nil
}
