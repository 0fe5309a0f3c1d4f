package chart

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pcky/grammar"
)

// Chart is the triangular table of cells for a sentence of n words.
type Chart struct {
	n    int
	rows [][]*Cell // rows[i][j-i] is cell (i, j)
}

// New creates a chart for a sentence of n words, with cells for all spans
// (i, j), 0 ≤ i ≤ j < n. For n ≤ 0 the chart has no cells.
func New(n int) *Chart {
	if n <= 0 {
		return &Chart{}
	}
	c := &Chart{n: n, rows: make([][]*Cell, n)}
	for i := 0; i < n; i++ {
		c.rows[i] = make([]*Cell, n-i)
		for j := i; j < n; j++ {
			c.rows[i][j-i] = newCell(i, j)
		}
	}
	tracer().Debugf("new chart for %d words, %d cells", n, n*(n+1)/2)
	return c
}

// Size returns the number of words the chart has been created for.
func (c *Chart) Size() int {
	return c.n
}

// Cell returns cell (i, j), with inclusive word indices 0 ≤ i ≤ j < n.
// It panics for indices out of range.
func (c *Chart) Cell(i, j int) *Cell {
	if i < 0 || j < i || j >= c.n {
		panic(fmt.Sprintf("chart cell (%d, %d) out of range for %d words", i, j, c.n))
	}
	return c.rows[i][j-i]
}

// Top returns the cell spanning the whole sentence, or nil for an empty
// chart.
func (c *Chart) Top() *Cell {
	if c.n == 0 {
		return nil
	}
	return c.rows[0][c.n-1]
}

// Root returns the entry for label over the whole sentence, if any.
func (c *Chart) Root(label *grammar.Symbol) (*Entry, bool) {
	if c.n == 0 {
		return nil, false
	}
	return c.Top().Get(label)
}

// Dump is a debugging helper, tracing the labels of every non-empty cell at
// level Debug, shorter spans first.
func (c *Chart) Dump() {
	tracer().Debugf("--- chart (%d words) ---------------------------------", c.n)
	for l := 0; l < c.n; l++ {
		for i := 0; i+l < c.n; i++ {
			cell := c.Cell(i, i+l)
			if cell.IsEmpty() {
				continue
			}
			var b strings.Builder
			cell.Each(func(e *Entry) {
				fmt.Fprintf(&b, " %s", e)
			})
			tracer().Debugf("(%d,%d):%s", i, i+l, b.String())
		}
	}
	tracer().Debugf("-------------------------------------------------------")
}
