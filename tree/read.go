package tree

import (
	"errors"
	"fmt"

	"github.com/npillmayer/pcky/scanner"
)

// ErrSyntax is wrapped by all errors of Read.
var ErrSyntax = errors.New("malformed tree")

// Read parses a tree in bracketed format. Brackets must be separated by
// whitespace, as they are in the output of Node.String. Words may therefore
// not be "(" or ")".
//
// Nodes read back carry neither log-probabilities nor parse counts.
func Read(s string) (*Node, error) {
	items, err := scanner.Words(s)
	if err != nil {
		return nil, err
	}
	r := &reader{items: items}
	n, err := r.node()
	if err != nil {
		return nil, err
	}
	if r.pos < len(items) {
		return nil, fmt.Errorf("%w: unexpected %q after end of tree", ErrSyntax, items[r.pos])
	}
	tracer().Debugf("read tree %s", n)
	return n, nil
}

type reader struct {
	items []string
	pos   int // next item
	words int // next word position
}

func (r *reader) node() (*Node, error) {
	if r.pos >= len(r.items) {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	item := r.items[r.pos]
	r.pos++
	switch item {
	case ")":
		return nil, fmt.Errorf("%w: unexpected ')' at item %d", ErrSyntax, r.pos-1)
	case "(":
	default:
		leaf := NewLeaf(item, r.words)
		r.words++
		return leaf, nil
	}
	if r.pos >= len(r.items) || r.items[r.pos] == "(" || r.items[r.pos] == ")" {
		return nil, fmt.Errorf("%w: missing label at item %d", ErrSyntax, r.pos)
	}
	label := r.items[r.pos]
	r.pos++
	var children []*Node
	for r.pos < len(r.items) && r.items[r.pos] != ")" {
		ch, err := r.node()
		if err != nil {
			return nil, err
		}
		children = append(children, ch)
	}
	if r.pos >= len(r.items) {
		return nil, fmt.Errorf("%w: missing ')' for %s", ErrSyntax, label)
	}
	r.pos++ // ')'
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: node %s has no children", ErrSyntax, label)
	}
	return NewInternal(label, 0, 0, children...), nil
}
