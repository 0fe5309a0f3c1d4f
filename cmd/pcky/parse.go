package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/npillmayer/pcky/cky"
	"github.com/npillmayer/pcky/grammar"
	"github.com/npillmayer/pcky/scanner"
	"github.com/npillmayer/pcky/treebank"
	"github.com/pterm/pterm"
)

var (
	parseSettings settings
	treebankPath  string
	drawTrees     bool
)

func parseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runParse,
		UsageLine: "parse [options] grammar-file [sentence …]",
		Short:     "parse sentences with a grammar",
		Long: `
Parse each sentence with a grammar and print the most probable parse tree,
its probability and the number of parses with this probability. Sentences
are given as arguments (one argument per sentence) or read from stdin, one
per line.

ex:
 $ pcky parse -db trees.db grammar.txt "the dog barks" "a cat meows"
`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	parseSettings.register(&cmd.Flag)
	cmd.Flag.StringVar(&treebankPath, "db", "", "Treebank file to look up and store parse results")
	cmd.Flag.BoolVar(&drawTrees, "tree", false, "Draw parse trees")
	return cmd
}

func runParse(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return fmt.Errorf("no grammar file given")
	}
	setup(&parseSettings)
	sess, err := newSession(args[0], treebankPath, os.Stdout)
	if err != nil {
		return err
	}
	defer sess.close()
	sess.drawTrees = drawTrees
	if len(args) > 1 {
		for _, sentence := range args[1:] {
			if err := sess.parse(sentence); err != nil {
				return err
			}
		}
		return nil
	}
	return sess.parseAll(os.Stdin)
}

// session holds everything needed to parse sentences with one grammar.
type session struct {
	parser    *cky.Parser
	key       string // treebank key: grammar fingerprint and closure bound
	bank      *treebank.Store
	out       io.Writer
	drawTrees bool
}

func newSession(grammarFile, bankFile string, out io.Writer, opts ...cky.Option) (*session, error) {
	g, err := loadGrammar(grammarFile)
	if err != nil {
		return nil, err
	}
	parser := cky.NewParser(g, opts...)
	sess := &session{
		parser: parser,
		key:    fmt.Sprintf("%s/%d", g.Fingerprint(), parser.UnaryPasses()),
		out:    out,
	}
	if bankFile != "" {
		if sess.bank, err = treebank.Open(bankFile); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	g, err := grammar.LoadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %s with %d rules", g.Name, g.Size())
	if !g.StartSymbolReachable() {
		pterm.Warning.Println(fmt.Sprintf("start symbol %s does not generate any children (grammar will always fail)",
			g.StartName()))
	}
	return g, nil
}

func (sess *session) close() {
	if sess.bank != nil {
		if err := sess.bank.Close(); err != nil {
			tracer().Errorf("closing treebank: %v", err)
		}
	}
}

// parseAll parses every non-blank line of r as a sentence.
func (sess *session) parseAll(r io.Reader) error {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		if err := sess.parse(line); err != nil {
			return err
		}
	}
	return lines.Err()
}

// parse parses a single sentence and reports the result. With a treebank
// attached, sentences already stored for the grammar are not parsed again,
// and new results are stored. Results with a hazard are not stored.
func (sess *session) parse(sentence string) error {
	words, err := scanner.Words(sentence)
	if err != nil {
		return err
	}
	if sess.bank != nil {
		rec, err := sess.bank.Lookup(sess.key, words)
		if err != nil {
			return err
		}
		if rec != nil {
			tracer().Infof("sentence found in treebank as record %d", rec.ID)
			reportRecord(sess.out, rec)
			return nil
		}
	}
	r := sess.parser.Parse(words)
	if r.Hazard != nil {
		pterm.Warning.Println(r.Hazard.Error())
	}
	report(sess.out, r)
	if sess.drawTrees && r.Success() {
		showTree(r.Tree)
	}
	if sess.bank != nil && r.Hazard == nil {
		if _, err := sess.bank.Save(sess.key, r); err != nil {
			return err
		}
	}
	return nil
}

// reportRecord writes a stored parse result in the same form as report.
func reportRecord(w io.Writer, rec *treebank.Record) {
	if !rec.Success() {
		fmt.Fprintln(w, "Parse failure!")
		return
	}
	fmt.Fprintln(w, rec.Tree)
	fmt.Fprintf(w, "Probability: %g\n", math.Exp(rec.LogProb))
	fmt.Fprintf(w, "Num parses: %d\n", rec.NumParses)
}
