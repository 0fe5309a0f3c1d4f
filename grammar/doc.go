/*
Package grammar implements probabilistic context-free grammars in Chomsky
Normal Form.

Building a Grammar

Grammars are either read from a line-oriented grammar file or specified
using a grammar builder object. Every rule has a probability, a parent
symbol and one or two children. Unary rules either produce a word (a
terminal) or another category, binary rules produce two categories.

Example:

    b := grammar.NewBuilder("G")
    b.Rule(1.0, "TOP", "S")         // TOP ->  S
    b.Rule(1.0, "S", "N", "V")      // S   ->  N V
    b.Rule(1.0, "N", "dog")         // N   ->  dog
    b.Rule(1.0, "V", "barks")       // V   ->  barks
    g, err := b.Grammar()

The equivalent grammar file has one rule per line:

    1.0 TOP -> S
    1.0 S -> N V
    1.0 N -> dog
    1.0 V -> barks

Probabilities are converted to natural-log space when a rule is created
and are never converted back during parsing.

Grammar Lookup

After construction a grammar is immutable and may be shared between any
number of parses, including parallel ones. Rules are indexed by their
right-hand side, which is what a bottom-up parser needs:

    rules := g.RulesWithRHS(g.Symbol("N"), g.Symbol("V"))   // [ S -> N V ]

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.grammar")
}

// DefaultStart is the start symbol of grammars if not configured otherwise.
const DefaultStart = "TOP"

// StartSymbolName returns the globally configured name of the start symbol
// (configuration key "pcky.start-symbol"), or DefaultStart.
func StartSymbolName() string {
	if s := gconf.GetString("pcky.start-symbol"); s != "" {
		return s
	}
	return DefaultStart
}
