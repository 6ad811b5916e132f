// Package progress draws a single-line text progress bar.
package progress

import (
	"io"
	"strings"
)

// DefaultWidth is the number of cells between the brackets.
const DefaultWidth = 80

// Bar draws "[" followed by width blanks and "]", returns to the start of the
// line and then fills the bar with pipes as work completes. It is not safe
// for concurrent use.
type Bar struct {
	w       io.Writer
	width   int
	total   int
	current int
}

// New returns a bar of the given width writing to w. A width below 1 means
// DefaultWidth.
func New(w io.Writer, width int) *Bar {
	if width < 1 {
		width = DefaultWidth
	}
	return &Bar{w: w, width: width}
}

// Start draws the empty bar for total units of work.
func (b *Bar) Start(total int) {
	b.total = total
	b.current = 0
	_, _ = io.WriteString(b.w, "["+strings.Repeat(" ", b.width)+"]\r[|")
}

// Increment advances the bar to the fraction now/total of its width.
func (b *Bar) Increment(now int) {
	if b.total <= 0 {
		return
	}
	frac := int(int64(b.width) * int64(now) / int64(b.total))
	if diff := frac - b.current; diff > 0 {
		_, _ = io.WriteString(b.w, strings.Repeat("|", diff))
		b.current = frac
	}
}

// End terminates the line and resets the bar.
func (b *Bar) End() {
	_, _ = io.WriteString(b.w, "\n")
	b.total = 0
	b.current = 0
}
