package grammar

import (
	"fmt"
	"math"
	"strings"
)

// Rule is a weighted production in Chomsky Normal Form: a parent symbol
// and one or two children. Rules are immutable and owned by a grammar.
type Rule struct {
	Serial  int     // order of the rule within its grammar
	Parent  *Symbol // left hand side
	LogProb float64 // natural logarithm of the rule's probability
	rhs     [2]*Symbol
	arity   int
}

// RHS returns the children of a rule. Clients must not modify the slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs[:r.arity]
}

// Arity is 1 for unary rules and 2 for binary rules.
func (r *Rule) Arity() int {
	return r.arity
}

// IsBinary is true for rules A → B C.
func (r *Rule) IsBinary() bool {
	return r.arity == 2
}

// IsLexical is true for unary rules producing a terminal.
func (r *Rule) IsLexical() bool {
	return r.arity == 1 && r.rhs[0].terminal
}

// Left returns the first child.
func (r *Rule) Left() *Symbol {
	return r.rhs[0]
}

// Right returns the second child of a binary rule, or nil.
func (r *Rule) Right() *Symbol {
	return r.rhs[1]
}

// Prob returns the rule's probability. It is intended for reporting only.
func (r *Rule) Prob() float64 {
	return math.Exp(r.LogProb)
}

// String renders a rule in grammar file format.
func (r *Rule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g %s ->", r.Prob(), r.Parent)
	for _, sym := range r.RHS() {
		b.WriteByte(' ')
		b.WriteString(sym.Name())
	}
	return b.String()
}

// rhsKey is the ordered tuple of children a rule is indexed with. Right is
// nil for unary rules.
type rhsKey struct {
	left, right *Symbol
}

func (r *Rule) key() rhsKey {
	return rhsKey{left: r.rhs[0], right: r.rhs[1]}
}
