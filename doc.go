/*
Package pcky is a probabilistic CKY chart parser.

PCKY computes Viterbi parses for probabilistic context-free grammars in
Chomsky Normal Form: the single most probable parse tree for a sentence,
together with the number of distinct trees reaching that probability.
Package structure is as follows:

■ grammar: Package grammar implements weighted CNF rules, a grammar indexed by
right-hand sides, and readers for the line-oriented grammar file format.

■ chart: Package chart implements the triangular chart and its cells, holding
the best derivation per span and label.

■ cky: Package cky implements the CKY engine, i.e. filling the chart bottom-up
and reconstructing the Viterbi tree from back-pointers.

■ tree: Package tree implements the parse tree output and its textual form.

■ scanner: Package scanner provides tokenizers for grammar lines and sentences.

■ treebank: Package treebank stores parse results in SQLite.

■ cmd/pcky: Command pcky parses sentences from the command line or interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pcky
