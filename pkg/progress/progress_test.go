package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar_Start(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, 10)
	b.Start(5)
	assert.Equal(t, "[          ]\r[|", buf.String())
}

func TestBar_DefaultWidth(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 0).Start(1)
	assert.Equal(t, 1+DefaultWidth+len("]\r[|"), buf.Len())
}

func TestBar_Increments(t *testing.T) {
	tests := []struct {
		name  string
		width int
		total int
		pipes int // after every index 0..total-1
	}{
		{"even", 10, 5, 8},
		{"more work than cells", 4, 100, 3},
		{"fewer units than cells", 80, 4, 60},
		{"single unit", 80, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			b := New(&buf, tc.width)
			b.Start(tc.total)
			buf.Reset()
			for i := range tc.total {
				b.Increment(i)
			}
			assert.Equal(t, strings.Repeat("|", tc.pipes), buf.String())
		})
	}
}

func TestBar_NeverMovesBack(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, 10)
	b.Start(10)
	buf.Reset()
	b.Increment(5)
	b.Increment(2)
	b.Increment(5)
	assert.Equal(t, "|||||", buf.String())
}

func TestBar_End(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, 10)
	b.Start(2)
	b.Increment(1)
	b.End()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	// unstarted bar ignores increments
	buf.Reset()
	b.Increment(1)
	assert.Empty(t, buf.String())
}
