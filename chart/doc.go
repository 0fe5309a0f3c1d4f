/*
Package chart implements the triangular table of a CKY parser.

For a sentence of n words the chart holds a cell for every span (i, j) with
0 ≤ i ≤ j < n, where i and j are inclusive word indices. A cell maps
grammar categories to the best derivation known for the category over the
cell's span: there is at most one entry per label (Viterbi chart).

Entries are updated by relaxation only:

    absent label             ⇒  insert
    higher log-probability   ⇒  replace, including count and backpointer
    equal log-probability    ⇒  add the parse counts, keep the backpointer
    lower log-probability    ⇒  discard

Labels of a cell are kept in order of insertion. This makes iteration over
cells deterministic and lets the first inserted label win ties.

A chart is created per parse and is not safe for concurrent use, with one
exception: different cells may be written by different goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chart

import (
	"math"
	"math/bits"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.chart'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.chart")
}

// SameLogProb is true if two log-probabilities are equal within
// floating-point tolerance.
func SameLogProb(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-9*scale
}

// AddCounts adds two parse counts, saturating at math.MaxUint64.
func AddCounts(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// MulCounts multiplies two parse counts, saturating at math.MaxUint64.
func MulCounts(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
