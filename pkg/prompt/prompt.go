// Package prompt asks questions on a terminal and keeps asking until the
// answer is acceptable.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
)

// ErrClosed is returned when the input ends before an acceptable answer.
var ErrClosed = errors.New("prompt: input closed")

// Prompter reads one answer per line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Printf writes to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Line writes question and returns the next input line without surrounding
// white space.
func (p *Prompter) Line(question string) (string, error) {
	p.Printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrClosed, err)
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Confirm asks a yes/no question. Only the first letter of the answer
// counts; anything else is asked again.
func (p *Prompter) Confirm(question string) (bool, error) {
	q := question
	for {
		s, err := p.Line(q)
		if err != nil {
			return false, err
		}
		if s != "" {
			switch unicode.ToLower(rune(s[0])) {
			case 'y':
				return true, nil
			case 'n':
				return false, nil
			}
		}
		q = "Please answer y or n: "
	}
}

// Int asks for an integer in [lo, hi]. retry is written after every rejected
// answer.
func (p *Prompter) Int(question, retry string, lo, hi int) (int, error) {
	q := question
	for {
		s, err := p.Line(q)
		if err != nil {
			return 0, err
		}
		if v, err := strconv.Atoi(s); err == nil && v >= lo && v <= hi {
			return v, nil
		}
		q = retry
	}
}

// Ask asks for a number parsed at the precision of proto and accepted by
// accept, which may be nil. retry is written after every rejected answer.
func Ask[T hpmath.Number[T]](p *Prompter, proto T, question, retry string, accept func(T) bool) (T, error) {
	q := question
	for {
		s, err := p.Line(q)
		if err != nil {
			var zero T
			return zero, err
		}
		if v, err := proto.Parse(s); err == nil && v.IsFinite() && (accept == nil || accept(v)) {
			return v, nil
		}
		q = retry
	}
}

// Ordinal returns n with its English ordinal suffix: 1st, 2nd, 3rd, 4th,
// 11th, 12th, 13th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
