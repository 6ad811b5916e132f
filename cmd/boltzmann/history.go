package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/boltzmann/pkg/partition"
	"github.com/ja7ad/boltzmann/pkg/report"
	"github.com/ja7ad/boltzmann/pkg/store"
)

func newHistoryCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "List sweeps stored with --sqlite, or print the samples of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) == 0 {
				return listSweeps(cmd, s)
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID must be an integer: %w", err)
			}
			return showSweep(cmd, s, id)
		},
	}
	cmd.Flags().StringVar(&dbPath, "sqlite", "boltzmann.db", "SQLite database written by sweep --sqlite")
	return cmd
}

func listSweeps(cmd *cobra.Command, s *store.Store) error {
	sweeps, err := s.List(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(sweeps) == 0 {
		_, err = fmt.Fprintln(w, "no stored sweeps")
		return err
	}

	header := []string{"ID", "Created", "Output", "States", "Samples", "T_min (K)", "T_max (K)", "Step (K)"}
	rows := make([][]string, 0, len(sweeps))
	for _, sw := range sweeps {
		rows = append(rows, []string{
			strconv.FormatInt(sw.ID, 10),
			sw.CreatedAt.Format(time.DateTime),
			sw.Output,
			strconv.Itoa(sw.States),
			strconv.Itoa(sw.Samples),
			sw.TMin, sw.TMax, sw.Step,
		})
	}
	return report.WriteTable(w, header, slices.Values(rows))
}

func showSweep(cmd *cobra.Command, s *store.Store, id int64) error {
	ctx := cmd.Context()
	sw, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	samples, err := s.Samples(ctx, id)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writeSweepHeader(w, sw)
	rows := make([][]string, 0, len(samples))
	for _, r := range samples {
		rows = append(rows, append([]string{r.T, r.Tau, r.Z}, r.P...))
	}
	return report.WriteTable(w, partition.Header(sw.States), slices.Values(rows))
}

func writeSweepHeader(w io.Writer, sw store.Sweep) {
	fmt.Fprintf(w, "sweep %d (%s):\n", sw.ID, sw.CreatedAt.Format(time.DateTime))
	fmt.Fprintf(w, "- results:        %s\n", sw.Output)
	fmt.Fprintf(w, "- range:          %s K to %s K, step %s K\n", sw.TMin, sw.TMax, sw.Step)
	fmt.Fprintf(w, "- energies (eV):  %s\n", strings.Join(sw.Energies, " "))
	fmt.Fprintln(w)
}
