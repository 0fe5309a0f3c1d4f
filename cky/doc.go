/*
Package cky implements a probabilistic CKY parser (Viterbi parser) for
context-free grammars in Chomsky Normal Form.

Given a grammar and a sentence, the parser finds the most probable parse
tree rooted at the grammar's start symbol, together with the number of
distinct parse trees reaching that probability.

Algorithm

The parser fills a triangular chart (see package chart) bottom-up:

    1. Seed: for every word w at position i, every rule A -> w enters
       cell (i, i) with count 1.
    2. Unary closure: entries B of a cell propagate through rules A -> B
       within the same cell, until no entry changes.
    3. Binary fill: spans of length ℓ = 1 … n-1 are filled from all splits
       into two shorter spans, using rules A -> B C. Every filled cell gets
       its unary closure.
    4. Extraction: the start symbol's entry for the whole sentence is the
       root of the Viterbi tree, which is reconstructed from backpointers.

All probabilities are handled in log-space. Entries are compared with a
small tolerance; equally probable derivations of the same label and span
add up their parse counts, while the derivation seen first remains the
witness for tree reconstruction. Counts saturate at math.MaxUint64.

Unary closure is delta-propagating: only the part of an entry's parse count
not propagated yet travels through unary rules. Chains of unary rules are
therefore never counted twice. Cycles of unary rules with probability 1
would let counts grow forever; the closure stops after a bounded number of
passes and reports ErrUnaryCycle as a hazard of the result.

Spans of equal length are independent of each other. With option Parallel
they are filled concurrently, one goroutine per span, with a barrier
between lengths.

Configuration

The following keys of the global configuration (package gconf) are
respected. Options given to NewParser take precedence.

    pcky.unary-passes      int,  bound for unary closure passes (default |symbols|+1)
    pcky.parallel          bool, fill spans concurrently (default false)
    panic-on-unary-cycle   bool, panic instead of reporting a hazard (default false)

The start symbol is taken from the grammar, which in turn respects the
configuration key "pcky.start-symbol".

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cky

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.cky'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.cky")
}
