package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/npillmayer/pcky/grammar"
	"github.com/pterm/pterm"
)

var checkSettings settings

func checkCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runCheck,
		UsageLine: "check [options] grammar-file",
		Short:     "load a grammar and report on it",
		Long: `
Load a grammar, report malformed rules, and print its rules, symbols,
unary cycles and fingerprint. A warning is issued if the start symbol does
not generate any children.

ex:
 $ pcky check grammar.txt
`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	checkSettings.register(&cmd.Flag)
	return cmd
}

func runCheck(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		cmd.Usage()
		return fmt.Errorf("expected exactly one grammar file")
	}
	setup(&checkSettings)
	g, err := loadGrammar(args[0])
	if err != nil {
		return err
	}
	describe(os.Stdout, g)
	if cycles := g.UnaryCycles(); len(cycles) > 0 {
		pterm.Warning.Println(fmt.Sprintf("grammar has %d unary cycle(s)", len(cycles)))
	}
	pterm.Success.Println(fmt.Sprintf("grammar %s is well-formed", g.Name))
	return nil
}

// describe writes a report about a grammar.
func describe(w io.Writer, g *grammar.Grammar) {
	fmt.Fprintf(w, "Grammar %s, start symbol %s\n", g.Name, g.StartName())
	fmt.Fprintf(w, "Rules (%d):\n", g.Size())
	g.EachRule(func(r *grammar.Rule) {
		fmt.Fprintf(w, "  %s\n", r)
	})
	fmt.Fprintf(w, "Nonterminals: %s\n", names(g.Nonterminals()))
	fmt.Fprintf(w, "Terminals: %s\n", names(g.Terminals()))
	if !g.StartSymbolReachable() {
		fmt.Fprintf(w, "Start symbol %s does not generate any children\n", g.StartName())
	}
	for _, cycle := range g.UnaryCycles() {
		fmt.Fprintf(w, "Unary cycle: %s\n", names(cycle))
	}
	fmt.Fprintf(w, "Fingerprint: %s\n", g.Fingerprint())
}

func names(symbols []*grammar.Symbol) string {
	s := make([]string, len(symbols))
	for i, sym := range symbols {
		s[i] = sym.Name()
	}
	return strings.Join(s, " ")
}
