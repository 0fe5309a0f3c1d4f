package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Grammar is a probabilistic context-free grammar in Chomsky Normal Form.
// It owns its symbols and rules and an index from right hand sides to
// rules. A grammar is immutable after construction and safe for
// concurrent use.
type Grammar struct {
	Name    string
	start   string
	symbols *SymbolTable
	rules   []*Rule
	index   map[rhsKey][]*Rule
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule no. n, or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// EachRule iterates over the rules in grammar order.
func (g *Grammar) EachRule(mapper func(r *Rule)) {
	for _, r := range g.rules {
		mapper(r)
	}
}

// Symbol returns the symbol with the given name, or nil if the grammar
// does not know it. Unknown words resolve to nil.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.symbols.ResolveSymbol(name)
}

// SymbolCount returns the number of distinct symbols, words included.
func (g *Grammar) SymbolCount() int {
	return g.symbols.Size()
}

// EachSymbol iterates over all symbols in order of first occurence.
func (g *Grammar) EachSymbol(mapper func(*Symbol)) {
	g.symbols.Each(mapper)
}

// StartName returns the name of the start symbol.
func (g *Grammar) StartName() string {
	return g.start
}

// Start returns the start symbol, or nil if no rule mentions it.
func (g *Grammar) Start() *Symbol {
	return g.Symbol(g.start)
}

// StartSymbolReachable is true if at least one rule has the start symbol as
// its parent. Otherwise every parse with this grammar fails.
func (g *Grammar) StartSymbolReachable() bool {
	return g.Produces(g.Start())
}

// Produces is true if sym is the parent of at least one rule.
func (g *Grammar) Produces(sym *Symbol) bool {
	return sym != nil && !sym.terminal
}

// RulesWithRHS returns all rules with right hand side rhs, in grammar
// order. rhs must consist of one or two symbols. The result is empty if no
// rule matches, and must not be modified by clients.
//
//    g.RulesWithRHS(N, V)     // all rules X -> N V
//    g.RulesWithRHS(dog)      // all rules X -> dog
//
func (g *Grammar) RulesWithRHS(rhs ...*Symbol) []*Rule {
	switch len(rhs) {
	case 1:
		return g.index[rhsKey{left: rhs[0]}]
	case 2:
		return g.index[rhsKey{left: rhs[0], right: rhs[1]}]
	}
	return nil
}

// UnaryRulesFor returns all rules X -> child.
func (g *Grammar) UnaryRulesFor(child *Symbol) []*Rule {
	return g.index[rhsKey{left: child}]
}

// BinaryRulesFor returns all rules X -> left right.
func (g *Grammar) BinaryRulesFor(left, right *Symbol) []*Rule {
	return g.index[rhsKey{left: left, right: right}]
}

// Nonterminals returns all symbols which are the parent of some rule,
// sorted by name.
func (g *Grammar) Nonterminals() []*Symbol {
	return g.sortedSymbols(func(sym *Symbol) bool { return !sym.terminal })
}

// Terminals returns all symbols which never occur as a parent, sorted by
// name.
func (g *Grammar) Terminals() []*Symbol {
	return g.sortedSymbols(func(sym *Symbol) bool { return sym.terminal })
}

func (g *Grammar) sortedSymbols(pred func(*Symbol) bool) []*Symbol {
	set := treeset.NewWith(bySymbolName)
	g.symbols.Each(func(sym *Symbol) {
		if pred(sym) {
			set.Add(sym)
		}
	})
	symbols := make([]*Symbol, 0, set.Size())
	for _, v := range set.Values() {
		symbols = append(symbols, v.(*Symbol))
	}
	return symbols
}

func bySymbolName(a, b interface{}) int {
	return utils.StringComparator(a.(*Symbol).name, b.(*Symbol).name)
}

func (g *Grammar) String() string {
	return fmt.Sprintf("<grammar %s: %d rules, %d symbols>", g.Name, len(g.rules), g.symbols.Size())
}

// Dump is a debugging helper, tracing all rules at level Debug.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s ----------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("start symbol %s, %d nonterminals, %d terminals",
		g.start, len(g.Nonterminals()), len(g.Terminals()))
	tracer().Debugf("-------------------------------------------------------")
}
