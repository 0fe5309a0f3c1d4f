package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/pcky/cky"
	"github.com/npillmayer/pcky/tree"
	"github.com/pterm/pterm"
)

// report writes the outcome of a parse in bracketed form: the tree, its
// probability and the number of parses sharing that probability.
func report(w io.Writer, r *cky.Result) {
	if !r.Success() {
		fmt.Fprintln(w, "Parse failure!")
		return
	}
	fmt.Fprintln(w, r.Tree.String())
	fmt.Fprintf(w, "Probability: %g\n", r.Probability())
	fmt.Fprintf(w, "Num parses: %d\n", r.NumParses)
}

// showTree displays a parse tree on the terminal.
func showTree(root *tree.Node) {
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledTree(root))).Render()
}

func leveledTree(root *tree.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	root.Walk(func(node *tree.Node, level int) {
		text := node.Label
		if !node.IsLeaf() {
			text = fmt.Sprintf("%s  %s", node.Label, node.Span)
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return ll
}
