package cky

import (
	"errors"
	"fmt"

	"github.com/npillmayer/pcky"
	"github.com/npillmayer/pcky/chart"
	"github.com/npillmayer/pcky/grammar"
	"github.com/npillmayer/pcky/tree"
)

// --- Derivation listener ---------------------------------------------------

// Listener is a type for walking the Viterbi derivation of a sentence.
// Terminal is called for every word, Reduce for every chart entry of the
// derivation, children before parents. The values returned are handed to
// the parent's Reduce call as RuleNode.Value.
type Listener interface {
	Reduce(entry *chart.Entry, rhs []*RuleNode, span pcky.Span, level int) interface{}
	Terminal(word string, pos int, span pcky.Span, level int) interface{}
}

// RuleNode represents a node occuring during a derivation walk.
type RuleNode struct {
	sym    *grammar.Symbol
	Extent pcky.Span   // span of input words this node covers
	Value  interface{} // user defined value
}

// Symbol returns the grammar symbol a RuleNode refers to. It is either a
// word or the parent of a rule.
func (rnode *RuleNode) Symbol() *grammar.Symbol {
	return rnode.sym
}

// ErrNoChart is returned when walking the derivation of a result which did
// not keep its chart.
var ErrNoChart = errors.New("chart not available; parse with option KeepChart")

// WalkDerivation walks the Viterbi derivation of a successful parse, calling
// listener for every node. The parse must have been run with option
// KeepChart.
func (r *Result) WalkDerivation(listener Listener) (*RuleNode, error) {
	if !r.Success() {
		return nil, r.Failure
	}
	if r.Chart == nil {
		return nil, ErrNoChart
	}
	root, found := r.Chart.Root(r.start)
	if !found {
		return nil, ErrNoParse
	}
	tracer().Debugf("=== Walk ===============================")
	return newWalker(r.Chart, r.words, listener).walk(0, r.Chart.Size()-1, root, 0)
}

type walker struct {
	c        *chart.Chart
	words    []string
	listener Listener
	maxDepth int
}

// newWalker creates a walker for a chart. Depth of a derivation is bounded:
// a path from the root to a leaf crosses at most n spans, each contributing
// at most one chain of unary rules.
func newWalker(c *chart.Chart, words []string, listener Listener) *walker {
	n := c.Size()
	longest := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if s := c.Cell(i, j).Size(); s > longest {
				longest = s
			}
		}
	}
	return &walker{c: c, words: words, listener: listener, maxDepth: n * (longest + 1)}
}

/*
walk follows the backpointers of entry e in cell (i, j).

A terminal backpointer produces a leaf for word i. A unary backpointer for
A -> B refers to B in the same cell, a binary backpointer for A -> B C at
split k refers to B in cell (i, k) and to C in cell (k+1, j). Backpointers
never form cycles, as entries are replaced only by strictly more probable
derivations. A walk deeper than the chart allows is nevertheless reported
as an error.
*/
func (w *walker) walk(i, j int, e *chart.Entry, level int) (*RuleNode, error) {
	if level > w.maxDepth {
		return nil, stuck(fmt.Sprintf("derivation too deep at (%d,%d) %s", i, j, e.Label))
	}
	span := pcky.CellSpan(i, j)
	var rhs []*RuleNode
	switch e.Back.Kind {
	case chart.Terminal:
		value := w.listener.Terminal(w.words[i], i, span, level+1)
		rhs = []*RuleNode{{sym: e.Back.Left(), Extent: span, Value: value}}
	case chart.Unary:
		child, err := w.child(i, j, e.Back.Left(), level)
		if err != nil {
			return nil, err
		}
		rhs = []*RuleNode{child}
	case chart.Binary:
		k := e.Back.Split
		left, err := w.child(i, k, e.Back.Left(), level)
		if err != nil {
			return nil, err
		}
		right, err := w.child(k+1, j, e.Back.Right(), level)
		if err != nil {
			return nil, err
		}
		rhs = []*RuleNode{left, right}
	}
	value := w.listener.Reduce(e, rhs, span, level)
	tracer().Debugf("Tree node    %d|-----%s-----|%d", span.From(), e.Label, span.To())
	return &RuleNode{sym: e.Label, Extent: span, Value: value}, nil
}

func (w *walker) child(i, j int, label *grammar.Symbol, level int) (*RuleNode, error) {
	e, found := w.c.Cell(i, j).Get(label)
	if !found {
		return nil, stuck(fmt.Sprintf("backpointer to missing entry %s at (%d,%d)", label, i, j))
	}
	return w.walk(i, j, e, level+1)
}

func stuck(msg string) error {
	tracer().Errorf("%s", msg)
	return fmt.Errorf("derivation walk: %s", msg)
}

// --- Tree building listener -------------------------------------------

// TreeBuilder is a Listener which creates a parse tree (see package tree)
// from a derivation. The parser uses it to produce a result's tree; users
// may call it themselves with Result.WalkDerivation.
type TreeBuilder struct {
	root *tree.Node
}

// NewTreeBuilder creates a TreeBuilder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Tree returns the parse tree after walking the derivation.
func (tb *TreeBuilder) Tree() *tree.Node {
	return tb.root
}

// Reduce is a listener method, called for every chart entry of the
// derivation.
func (tb *TreeBuilder) Reduce(entry *chart.Entry, rhs []*RuleNode, span pcky.Span, level int) interface{} {
	children := make([]*tree.Node, len(rhs))
	for i, r := range rhs {
		children[i] = r.Value.(*tree.Node)
	}
	node := tree.NewInternal(entry.Label.Name(), entry.LogProb, entry.NumParses, children...)
	if level == 0 {
		tb.root = node
	}
	return node
}

// Terminal is a listener method, called for every word.
func (tb *TreeBuilder) Terminal(word string, pos int, span pcky.Span, level int) interface{} {
	return tree.NewLeaf(word, pos)
}

var _ Listener = &TreeBuilder{}
