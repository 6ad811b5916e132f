// Package report serializes tabular results: a header and a stream of rows
// of already formatted cells. Every writer checks that each row is as wide
// as the header.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// WriteCSV writes each preamble line verbatim, then header and rows as
// comma-separated records.
func WriteCSV(w io.Writer, preamble, header []string, rows iter.Seq[[]string]) error {
	if len(header) == 0 {
		return ErrNoHeader
	}
	for _, line := range preamble {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	n := 0
	for row := range rows {
		n++
		if len(row) != len(header) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, n, len(row), len(header))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// WriteJSON writes a JSON array with one object per row. Keys follow header
// order and values stay strings so no digit is lost to float64.
func WriteJSON(w io.Writer, header []string, rows iter.Seq[[]string]) error {
	if len(header) == 0 {
		return ErrNoHeader
	}
	keys := make([][]byte, len(header))
	for i, h := range header {
		b, err := json.Marshal(h)
		if err != nil {
			return err
		}
		keys[i] = b
	}

	var buf bytes.Buffer
	buf.WriteString("[\n")
	n := 0
	for row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, n+1, len(row), len(header))
		}
		if n > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("  {")
		for i, cell := range row {
			if i > 0 {
				buf.WriteString(", ")
			}
			v, err := json.Marshal(cell)
			if err != nil {
				return err
			}
			buf.Write(keys[i])
			buf.WriteString(": ")
			buf.Write(v)
		}
		buf.WriteString("}")
		n++

		// stream in chunks rather than holding the whole sweep
		if buf.Len() > 1<<16 {
			if _, err := w.Write(buf.Bytes()); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteFailed, err)
			}
			buf.Reset()
		}
	}
	if n > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// WriteTable writes an aligned plain-text table: header, a dashed rule, rows.
func WriteTable(w io.Writer, header []string, rows iter.Seq[[]string]) error {
	if len(header) == 0 {
		return ErrNoHeader
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeLine(tw, header)
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", utf8.RuneCountInString(h))
	}
	writeLine(tw, rule)

	n := 0
	for row := range rows {
		n++
		if len(row) != len(header) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, n, len(row), len(header))
		}
		writeLine(tw, row)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

func writeLine(tw *tabwriter.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
}

