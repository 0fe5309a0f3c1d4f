/*
Command pcky parses sentences with a probabilistic context-free grammar in
Chomsky Normal Form and prints the most probable parse tree.

Usage:

	pcky parse [-db treebank.db] [-parallel] [-trace Info] grammar.txt [sentence …]
	pcky check grammar.txt
	pcky repl grammar.txt

Sub-command parse parses every sentence given on the command line. If no
sentence is given, it reads sentences from stdin, one per line. For every
sentence it prints the tree together with its probability and the number of
parses sharing that probability, or "Parse failure!".

Sub-command check loads a grammar and reports on it: rules, start symbol
productivity, unary cycles and the grammar's fingerprint.

Sub-command repl starts an interactive session for parsing sentences with
a grammar.

Configuration is read from a NestedText file "pcky.nt", searched for at
the usual configuration locations, and flags override it. Keys are

	pcky.start-symbol      start symbol (flag -start)
	pcky.unary-passes      bound for unary closure passes (flag -passes)
	pcky.parallel          fill spans concurrently (flag -parallel)
	tracing.pcky           trace level (flag -trace)

Parse results with a treebank (flag -db) are stored per grammar
fingerprint and closure bound. Results with a unary cycle hazard are not
stored.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.cmd'
func tracer() tracing.Trace {
	return tracing.Select("pcky.cmd")
}
