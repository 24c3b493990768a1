package render

import (
	"io"
	"strings"
)

// Canvas is the row grid of a rendered avatar. Text is added to the right of
// the art with [Canvas.Append].
type Canvas struct {
	rows  []string
	width int
}

// NewCanvas wraps already rendered rows. width is the cell width of each row.
func NewCanvas(width int, rows []string) *Canvas {
	return &Canvas{rows: rows, width: width}
}

// Len returns the number of rows.
func (c *Canvas) Len() int { return len(c.rows) }

// Width returns the cell width of the art part of each row.
func (c *Canvas) Width() int { return c.width }

// Row returns row i.
func (c *Canvas) Row(i int) string { return c.rows[i] }

// Rows returns a copy of all rows.
func (c *Canvas) Rows() []string {
	out := make([]string, len(c.rows))
	copy(out, c.rows)
	return out
}

// Pad appends blank rows until the canvas has at least n rows.
func (c *Canvas) Pad(n int) {
	blank := strings.Repeat(" ", c.width)
	for len(c.rows) < n {
		c.rows = append(c.rows, blank)
	}
}

// Append adds s to the end of row i, padding the canvas first if row i
// does not exist yet.
func (c *Canvas) Append(i int, s string) {
	if i < 0 {
		return
	}
	c.Pad(i + 1)
	c.rows[i] += s
}

// String joins the rows with newlines.
func (c *Canvas) String() string {
	if len(c.rows) == 0 {
		return ""
	}
	return strings.Join(c.rows, "\n") + "\n"
}

// WriteTo writes the canvas to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}
