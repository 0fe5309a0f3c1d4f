package grammar

import (
	"errors"
	"fmt"
	"math"
)

// MalformedRuleError is returned if a rule is rejected during grammar
// construction. Line is the 1-based line number for rules read from a
// grammar file, and 0 for rules added programmatically.
type MalformedRuleError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed rule in line %d (%q): %s", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed rule %q: %s", e.Text, e.Reason)
}

// Builder is a helper for constructing a grammar. The first malformed rule
// is remembered and reported by Grammar().
//
//    b := grammar.NewBuilder("G")
//    b.Rule(1.0, "TOP", "S")
//    b.Rule(0.4, "S", "NP", "VP")
//    g, err := b.Grammar()
//
type Builder struct {
	name    string
	start   string
	symbols *SymbolTable
	rules   []*Rule
	err     error
	done    bool
}

// NewBuilder gets a new grammar builder, given the name of the grammar to
// build. The start symbol is taken from the global configuration and may
// be overridden by StartSymbol.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		start:   StartSymbolName(),
		symbols: NewSymbolTable(),
	}
}

// StartSymbol sets the name of the start symbol.
func (b *Builder) StartSymbol(name string) *Builder {
	if name != "" {
		b.start = name
	}
	return b
}

// Rule adds a rule parent -> children with probability prob. Malformed
// rules are not added; the error will be reported by Grammar().
func (b *Builder) Rule(prob float64, parent string, children ...string) *Builder {
	b.add(0, prob, parent, children)
	return b
}

// add appends a rule and remembers the first error.
func (b *Builder) add(line int, prob float64, parent string, children []string) error {
	var err error
	switch {
	case b.done:
		err = errors.New("grammar builder already finished")
	case b.err != nil:
		return b.err
	default:
		if reason := check(prob, parent, children); reason != "" {
			err = &MalformedRuleError{Line: line, Text: ruleText(prob, parent, children), Reason: reason}
		}
	}
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return err
	}
	r := &Rule{
		Serial:  len(b.rules),
		LogProb: math.Log(prob),
		arity:   len(children),
	}
	r.Parent, _ = b.symbols.ResolveOrDefineSymbol(parent)
	r.Parent.terminal = false
	for i, child := range children {
		r.rhs[i], _ = b.symbols.ResolveOrDefineSymbol(child)
	}
	tracer().Debugf("rule %d: %s", r.Serial, r)
	b.rules = append(b.rules, r)
	return nil
}

// check returns a reason why a rule is malformed, or "".
func check(prob float64, parent string, children []string) string {
	if !(prob > 0 && prob <= 1) { // also catches NaN
		return fmt.Sprintf("probability %g not in (0, 1]", prob)
	}
	if parent == "" {
		return "empty parent"
	}
	if len(children) < 1 || len(children) > 2 {
		return fmt.Sprintf("rule must have 1 or 2 children, has %d", len(children))
	}
	for _, child := range children {
		if child == "" {
			return "empty child"
		}
	}
	return ""
}

func ruleText(prob float64, parent string, children []string) string {
	s := fmt.Sprintf("%g %s ->", prob, parent)
	for _, child := range children {
		s += " " + child
	}
	return s
}

// Grammar returns the grammar built so far, or the first error
// encountered. There is no partial success: a single malformed rule
// invalidates the grammar.
//
// The builder must not be used any further after a call to Grammar().
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.done = true
	g := &Grammar{
		Name:    b.name,
		start:   b.start,
		symbols: b.symbols,
		rules:   b.rules,
		index:   make(map[rhsKey][]*Rule, len(b.rules)),
	}
	for _, r := range g.rules {
		k := r.key()
		g.index[k] = append(g.index[k], r)
	}
	if !g.StartSymbolReachable() {
		tracer().P("grammar", g.Name).Errorf(
			"start symbol %s does not generate any children (grammar will always fail)", g.start)
	}
	if cycles := g.UnaryCycles(); len(cycles) > 0 {
		tracer().P("grammar", g.Name).Infof("grammar has %d cycle(s) of unary rules", len(cycles))
	}
	tracer().Infof("grammar %s: %d rules, %d symbols", g.Name, len(g.rules), g.symbols.Size())
	return g, nil
}
