package partition

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"github.com/ja7ad/boltzmann/pkg/report"
)

// SaveDigits is the number of significant digits SaveToDisk writes.
const SaveDigits = 16

// Preamble precedes the header in saved results.
var Preamble = []string{"All energies are in eV", ""}

// Header returns the column names of the result table for n states.
func Header(n int) []string {
	h := make([]string, 0, n+3)
	h = append(h, "T (K)", "tau", "Z(tau)")
	for i := range n {
		h = append(h, "P_"+strconv.Itoa(i+1)+"(tau)")
	}
	return h
}

// Table returns the header and a row iterator over every sample, each value
// formatted with the given number of significant digits.
func (m *Manager[T]) Table(digits int) ([]string, iter.Seq[[]string]) {
	n := m.params.States()
	rows := func(yield func([]string) bool) {
		for i := range m.samples {
			s := &m.samples[i]
			row := make([]string, 0, n+3)
			row = append(row, s.T().Text(digits), s.Tau().Text(digits), s.Z().Text(digits))
			for j := range n {
				row = append(row, s.P(j).Text(digits))
			}
			if !yield(row) {
				return
			}
		}
	}
	return Header(n), rows
}

// WriteCSV writes the preamble, the header and one row per sample.
func (m *Manager[T]) WriteCSV(w io.Writer) error {
	header, rows := m.Table(SaveDigits)
	return report.WriteCSV(w, Preamble, header, rows)
}

// SaveToDisk writes the results as CSV to path. When path cannot be created
// it returns ErrOpenOutput and the samples are left untouched, so the caller
// may retry with another path.
func (m *Manager[T]) SaveToDisk(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenOutput, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := m.WriteCSV(f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	m.opts.logger.Debug("results saved", "path", path, "samples", len(m.samples))
	return nil
}
