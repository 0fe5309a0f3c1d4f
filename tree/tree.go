/*
Package tree holds parse trees, as produced by the CKY parser.

A tree node is either a leaf, representing a word of the input, or an
internal node, labeled with a grammar category and carrying one or two
children. Internal nodes carry the log-probability and the number of parses
of the derivation they represent.

Trees render as bracketed text, with single spaces between all items:

    ( TOP ( S ( N dog ) ( V barks ) ) )

Read parses this format back into a tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"math"
	"strings"

	"github.com/npillmayer/pcky"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.tree'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.tree")
}

// Kind distinguishes leaves from internal nodes.
type Kind int8

// Kinds of tree nodes.
const (
	Leaf Kind = iota
	Internal
)

// Node is a node of a parse tree. Trees are immutable once produced.
type Node struct {
	Kind      Kind
	Label     string    // category, or the word for leaves
	LogProb   float64   // 0 for leaves
	NumParses uint64    // number of parses at LogProb; 0 for leaves
	Span      pcky.Span // words covered
	Children  []*Node
}

// NewLeaf creates a leaf for a word at position pos.
func NewLeaf(word string, pos int) *Node {
	return &Node{
		Kind:  Leaf,
		Label: word,
		Span:  pcky.Span{uint64(pos), uint64(pos + 1)},
	}
}

// NewInternal creates an internal node. The node's span extends over the
// spans of its children.
func NewInternal(label string, logProb float64, numParses uint64, children ...*Node) *Node {
	n := &Node{
		Kind:      Internal,
		Label:     label,
		LogProb:   logProb,
		NumParses: numParses,
		Children:  children,
	}
	for i, ch := range children {
		if i == 0 {
			n.Span = ch.Span
		} else {
			n.Span = n.Span.Extend(ch.Span)
		}
	}
	return n
}

// IsLeaf is true for leaves.
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// Probability returns exp(LogProb).
func (n *Node) Probability() float64 {
	return math.Exp(n.LogProb)
}

// String renders a tree in bracketed format.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	if n.IsLeaf() {
		b.WriteString(n.Label)
		return
	}
	b.WriteString("( ")
	b.WriteString(n.Label)
	for _, ch := range n.Children {
		b.WriteByte(' ')
		ch.render(b)
	}
	b.WriteString(" )")
}

// Leaves returns the words of a tree, from left to right.
func (n *Node) Leaves() []string {
	var words []string
	n.Walk(func(node *Node, level int) {
		if node.IsLeaf() {
			words = append(words, node.Label)
		}
	})
	return words
}

// Walk calls f for every node in pre-order, with level 0 for n.
func (n *Node) Walk(f func(node *Node, level int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), level int) {
	f(n, level)
	for _, ch := range n.Children {
		ch.walk(f, level+1)
	}
}

// Height returns the length of the longest path from n to a leaf.
func (n *Node) Height() int {
	h := 0
	for _, ch := range n.Children {
		if hh := ch.Height() + 1; hh > h {
			h = hh
		}
	}
	return h
}

// Equal is true if two trees have the same shape and labels. Probabilities
// and counts are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Label != b.Label || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
