package cky

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/npillmayer/pcky/chart"
	"github.com/npillmayer/pcky/grammar"
	"github.com/npillmayer/pcky/scanner"
	"github.com/npillmayer/pcky/tree"
	"github.com/npillmayer/schuko/gconf"
)

// Outcomes of a parse which are not a success. They are stored as a
// result's Failure and may be checked with errors.Is.
var (
	ErrEmptySentence = errors.New("empty input")
	ErrNoParse       = errors.New("no parse found")
)

// ErrUnaryCycle is reported as a result's Hazard if unary closure of a cell
// did not reach a fixpoint within the bound for passes.
var ErrUnaryCycle = errors.New("unary closure did not terminate")

// Parser is a CKY parser for a grammar. A parser may be used for any
// number of sentences, but not concurrently.
type Parser struct {
	g         *grammar.Grammar
	startName string
	maxPasses int
	parallel  bool
	keepChart bool
}

// NewParser creates a parser for a grammar. The grammar is never modified
// by parsing.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	p.defaults()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// UnaryPasses returns the bound for unary closure passes per cell.
func (p *Parser) UnaryPasses() int {
	return p.maxPasses
}

// Parse finds the most probable parse tree for a sentence with grammar g.
// It is a shortcut for NewParser(g, opts...).Parse(words).
func Parse(g *grammar.Grammar, words []string, opts ...Option) *Result {
	return NewParser(g, opts...).Parse(words)
}

// ParseSentence splits a sentence into words at whitespace, then parses it.
func (p *Parser) ParseSentence(sentence string) (*Result, error) {
	words, err := scanner.Words(sentence)
	if err != nil {
		return nil, err
	}
	return p.Parse(words), nil
}

// Parse finds the most probable parse tree for a sentence. The result is
// never nil. Unknown words do not abort a parse; the parse fails if the
// start symbol does not derive the whole sentence.
func (p *Parser) Parse(words []string) *Result {
	r := &Result{words: words}
	n := len(words)
	if n == 0 {
		tracer().Errorf("cannot parse empty sentence")
		r.Failure = ErrEmptySentence
		return r
	}
	tracer().P("grammar", p.g.Name).Infof("parsing %d words", n)
	c := chart.New(n)
	p.seed(c, words, r)
	for l := 1; l < n; l++ {
		if p.parallel {
			p.fillParallel(c, l, r)
		} else {
			for i := 0; i+l < n; i++ {
				if err := p.fill(c, i, i+l); err != nil {
					r.hazard(err)
				}
			}
		}
		tracer().Debugf("filled spans of length %d", l+1)
	}
	if p.keepChart {
		r.Chart = c
	}
	r.start = p.g.Symbol(p.startName)
	root, found := c.Root(r.start)
	if !found {
		tracer().Infof("start symbol %s does not derive the sentence", p.startName)
		r.Failure = ErrNoParse
		return r
	}
	r.LogProb = root.LogProb
	r.NumParses = root.NumParses
	node, err := newWalker(c, words, NewTreeBuilder()).walk(0, n-1, root, 0)
	if err != nil {
		r.Failure = err
		return r
	}
	r.Tree = node.Value.(*tree.Node)
	tracer().Infof("parse probability %g, %d parse(s)", r.Probability(), r.NumParses)
	return r
}

// seed enters every word's rules into the diagonal of the chart, then
// applies unary closure. Every rule A -> w matches word w, even if w is
// a category name as well.
func (p *Parser) seed(c *chart.Chart, words []string, r *Result) {
	for i, w := range words {
		cell := c.Cell(i, i)
		word := p.g.Symbol(w)
		for _, rule := range p.g.UnaryRulesFor(word) {
			cell.Relax(rule.Parent, rule.LogProb, 1, chart.TerminalBack(rule))
		}
		if cell.IsEmpty() {
			tracer().Infof("unknown word %q at position %d", w, i)
			continue
		}
		if err := p.closure(cell, i, i, word); err != nil {
			r.hazard(err)
		}
	}
}

// fill computes cell (i, j), j > i, from all splits into two shorter spans.
func (p *Parser) fill(c *chart.Chart, i, j int) error {
	cell := c.Cell(i, j)
	for k := i; k < j; k++ {
		left, right := c.Cell(i, k), c.Cell(k+1, j)
		if left.IsEmpty() || right.IsEmpty() {
			continue
		}
		left.Each(func(B *chart.Entry) {
			right.Each(func(C *chart.Entry) {
				for _, rule := range p.g.BinaryRulesFor(B.Label, C.Label) {
					cell.Relax(rule.Parent, rule.LogProb+B.LogProb+C.LogProb,
						chart.MulCounts(B.NumParses, C.NumParses), chart.BinaryBack(rule, k))
				}
			})
		})
	}
	return p.closure(cell, i, j, nil)
}

// fillParallel fills all spans of length l+1 concurrently. Each goroutine
// writes to its own cell and reads shorter spans only.
func (p *Parser) fillParallel(c *chart.Chart, l int, r *Result) {
	n := c.Size()
	errs := make([]error, n-l)
	var wg sync.WaitGroup
	for i := 0; i+l < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = p.fill(c, i, i+l)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			r.hazard(err)
		}
	}
}

// closure propagates pending parse counts of a cell's entries through unary
// rules, one level per pass, until no entry changes.
//
// For cells of a single word, a rule w -> w has been applied as a lexical
// rule during seeding and is not applied again.
func (p *Parser) closure(cell *chart.Cell, i, j int, word *grammar.Symbol) error {
	for pass := 0; ; pass++ {
		var pending []*chart.Entry
		cell.Each(func(e *chart.Entry) {
			if e.HasPending() {
				pending = append(pending, e)
			}
		})
		if len(pending) == 0 {
			return nil
		}
		if pass >= p.maxPasses {
			return unaryCycle(i, j, p.maxPasses)
		}
		for _, B := range pending {
			delta := B.TakePending()
			for _, rule := range p.g.UnaryRulesFor(B.Label) {
				if word != nil && rule.Parent == word && rule.Left() == word {
					continue
				}
				outcome := cell.Relax(rule.Parent, rule.LogProb+B.LogProb, delta, chart.UnaryBack(rule))
				tracer().Debugf("(%d,%d) %s ⇒ %s: %v", i, j, B.Label, rule.Parent, outcome)
			}
		}
	}
}

func unaryCycle(i, j, passes int) error {
	err := fmt.Errorf("%w in cell (%d,%d) after %d passes", ErrUnaryCycle, i, j, passes)
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-unary-cycle") {
		panic(`CKY unary closure did not terminate.

Configuration flag panic-on-unary-cycle is set to true. It is aimed at helping
to debug a grammar with cycles of unary rules. However, if this is a production
environment and you did not expect this to panic, please unset
panic-on-unary-cycle to its default (false).

` + err.Error())
	}
	return err
}

// --- Results ---------------------------------------------------------------

// Result is the outcome of a parse.
type Result struct {
	Tree      *tree.Node   // Viterbi tree, or nil
	LogProb   float64      // log-probability of the tree
	NumParses uint64       // number of trees with probability exp(LogProb)
	Failure   error        // ErrEmptySentence or ErrNoParse, nil for success
	Hazard    error        // first ErrUnaryCycle encountered, if any
	Chart     *chart.Chart // the chart, if option KeepChart is set
	words     []string
	start     *grammar.Symbol
}

// Success is true if a parse tree has been found.
func (r *Result) Success() bool {
	return r.Failure == nil
}

// Probability returns the probability of the parse tree, or 0 for failed
// parses.
func (r *Result) Probability() float64 {
	if !r.Success() {
		return 0
	}
	return math.Exp(r.LogProb)
}

// Words returns the parsed sentence.
func (r *Result) Words() []string {
	return r.words
}

func (r *Result) hazard(err error) {
	if r.Hazard == nil {
		r.Hazard = err
	}
}

func (r *Result) String() string {
	if !r.Success() {
		return fmt.Sprintf("<parse failure: %v>", r.Failure)
	}
	return fmt.Sprintf("<parse p=%g #%d: %s>", r.Probability(), r.NumParses, r.Tree)
}
