package grammar

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The dog-barks grammar is the smallest grammar deriving a two-word
// sentence.
var dogBarks = []string{
	"1.0 TOP -> S",
	"1.0 S -> N V",
	"1.0 N -> dog",
	"1.0 V -> barks",
}

func TestLoadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, err := LoadGrammar("G", dogBarks)
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 4 {
		t.Errorf("expected grammar to have 4 rules, has %d", g.Size())
	}
	if g.SymbolCount() != 6 {
		t.Errorf("expected grammar to have 6 symbols, has %d", g.SymbolCount())
	}
	if !g.StartSymbolReachable() {
		t.Errorf("expected start symbol TOP to be reachable")
	}
	r := g.Rule(1)
	if r.Parent.Name() != "S" || !r.IsBinary() || r.Left().Name() != "N" || r.Right().Name() != "V" {
		t.Errorf("expected rule #1 to be S -> N V, is %v", r)
	}
	if r.LogProb != 0 {
		t.Errorf("expected log-prob of 1.0 to be 0, is %g", r.LogProb)
	}
	if !g.Rule(2).IsLexical() || g.Rule(0).IsLexical() {
		t.Errorf("expected N -> dog to be lexical and TOP -> S not to be")
	}
}

func TestLogProbability(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, err := LoadGrammar("G", []string{"0.25 NP -> the", ".5 NP -> a", "1e-1 NP -> an"})
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range []float64{0.25, 0.5, 0.1} {
		if lp := g.Rule(i).LogProb; math.Abs(lp-math.Log(p)) > 1e-12 {
			t.Errorf("expected rule %d to have log-prob %g, has %g", i, math.Log(p), lp)
		}
	}
	if s := g.Rule(0).String(); s != "0.25 NP -> the" {
		t.Errorf("unexpected rendering of rule: %q", s)
	}
}

func TestMalformedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	for _, line := range []string{
		"0 S -> N V",      // probability not positive
		"1.5 S -> N V",    // probability > 1
		"-0.5 S -> N V",   // not a number
		"x S -> N V",      // not a number
		"0.5 -> N V",      // empty parent
		"0.5 S N V",       // missing separator
		"0.5 S ->",        // no children
		"0.5 S -> N V W",  // too many children
		"0.5 S -> N -> V", // extra separator
		"0.5",             // probability only
	} {
		lines := append([]string{"1.0 TOP -> S", ""}, line)
		g, err := LoadGrammar("G", lines)
		if err == nil || g != nil {
			t.Errorf("expected line %q to fail grammar construction", line)
			continue
		}
		var mre *MalformedRuleError
		if !errors.As(err, &mre) {
			t.Errorf("expected MalformedRuleError for %q, got %T", line, err)
			continue
		}
		if mre.Line != 3 {
			t.Errorf("expected error for line 3, got line %d", mre.Line)
		}
		t.Logf("%v", err)
	}
}

func TestLineErrorInvalidatesGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Line(1, "1.0 TOP -> S")
	b.Line(2, "x S -> N V") // error ignored by caller
	b.Line(3, "1.0 S -> dog")
	g, err := b.Grammar()
	var mre *MalformedRuleError
	if g != nil || !errors.As(err, &mre) || mre.Line != 2 {
		t.Errorf("expected grammar to fail with error for line 2, have %v", err)
	}
}

func TestBuilderRejectsRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	b := NewBuilder("G")
	b.Rule(1.0, "TOP", "S").Rule(math.NaN(), "S", "N", "V").Rule(1.0, "N", "dog")
	if _, err := b.Grammar(); err == nil {
		t.Error("expected NaN probability to be rejected")
	}
	b = NewBuilder("G")
	b.Rule(1.0, "TOP", "S")
	if _, err := b.Grammar(); err != nil {
		t.Fatal(err)
	}
	b.Rule(1.0, "S", "x")
	if _, err := b.Grammar(); err == nil {
		t.Error("expected finished builder to reject further rules")
	}
}

func TestRulesWithRHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, err := LoadGrammar("G", []string{
		"1.0 TOP -> S",
		"0.6 S -> NP VP",
		"0.4 X -> NP VP",
		"0.5 NP -> she",
		"0.5 VP -> she",
		"0.5 NP -> fish",
		"0.5 VP -> fish",
	})
	if err != nil {
		t.Fatal(err)
	}
	np, vp := g.Symbol("NP"), g.Symbol("VP")
	rules := g.RulesWithRHS(np, vp)
	if len(rules) != 2 || rules[0].Parent.Name() != "S" || rules[1].Parent.Name() != "X" {
		t.Errorf("expected [S -> NP VP, X -> NP VP], have %v", rules)
	}
	if len(g.RulesWithRHS(vp, np)) != 0 {
		t.Errorf("RHS index should respect order of children")
	}
	she := g.Symbol("she")
	if rules := g.UnaryRulesFor(she); len(rules) != 2 {
		t.Errorf("expected 2 rules for 'she', have %v", rules)
	}
	if rules := g.RulesWithRHS(g.Symbol("cat")); len(rules) != 0 {
		t.Errorf("expected no rules for unknown word, have %v", rules)
	}
	if rules := g.RulesWithRHS(); rules != nil {
		t.Errorf("expected no rules for empty RHS")
	}
}

func TestStartSymbolNotReachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, err := LoadGrammar("G", []string{"1.0 S -> N V", "1.0 N -> TOP"})
	if err != nil {
		t.Fatal(err)
	}
	if g.StartSymbolReachable() {
		t.Errorf("start symbol should not be reachable")
	}
	b := NewBuilder("G").StartSymbol("S")
	b.Rule(1.0, "S", "N", "V")
	g, _ = b.Grammar()
	if !g.StartSymbolReachable() || g.Start().Name() != "S" {
		t.Errorf("expected start symbol S to be reachable")
	}
}

func TestSymbolInventories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, _ := LoadGrammar("G", dogBarks)
	names := func(symbols []*Symbol) string {
		var s []string
		for _, sym := range symbols {
			s = append(s, sym.Name())
		}
		return strings.Join(s, " ")
	}
	if nt := names(g.Nonterminals()); nt != "N S TOP V" {
		t.Errorf("unexpected nonterminals: %s", nt)
	}
	if term := names(g.Terminals()); term != "barks dog" {
		t.Errorf("unexpected terminals: %s", term)
	}
}

func TestUnaryCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g, _ := LoadGrammar("G", dogBarks)
	if c := g.UnaryCycles(); len(c) != 0 {
		t.Errorf("expected no unary cycles, have %v", c)
	}
	g, err := LoadGrammar("G", []string{
		"1.0 TOP -> A",
		"0.5 A -> B",
		"0.5 B -> A",
		"0.5 A -> a",
		"0.5 B -> b",
		"0.5 C -> C",
		"0.5 C -> c",
	})
	if err != nil {
		t.Fatal(err)
	}
	cycles := g.UnaryCycles()
	if len(cycles) != 2 {
		t.Fatalf("expected 2 unary cycles, have %v", cycles)
	}
	sizes := len(cycles[0]) + len(cycles[1])
	if sizes != 3 {
		t.Errorf("expected cycles {A,B} and {C}, have %v", cycles)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	g1, _ := LoadGrammar("G1", dogBarks)
	g2, _ := LoadGrammar("G2", dogBarks)
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected equal grammars to have equal fingerprints")
	}
	g3, _ := LoadGrammar("G3", append([]string{"0.5 N -> cat"}, dogBarks...))
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
	t.Logf("fingerprint = %s", g1.Fingerprint())
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "dogs.pcfg")
	content := strings.Join(dogBarks, "\n") + "\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "dogs.pcfg" || g.Size() != 4 {
		t.Errorf("expected grammar dogs.pcfg with 4 rules, have %v", g)
	}
	ref, _ := LoadGrammar("ref", dogBarks)
	if g.Fingerprint() != ref.Fingerprint() {
		t.Errorf("expected grammar from file to equal grammar from lines")
	}
	empty := filepath.Join(dir, "empty.pcfg")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	g, err = LoadFile(empty)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 0 || g.StartSymbolReachable() {
		t.Errorf("expected empty grammar, have %v", g)
	}
	if _, err = LoadFile(filepath.Join(dir, "missing.pcfg")); err == nil {
		t.Errorf("expected missing file to fail")
	}
}

func TestReadGrammarLineNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.grammar")
	defer teardown()
	//
	input := "1.0 TOP -> S\n\n   \n1.0 S -> N V X\n"
	_, err := ReadGrammar("G", strings.NewReader(input))
	var mre *MalformedRuleError
	if !errors.As(err, &mre) || mre.Line != 4 {
		t.Errorf("expected error in line 4, have %v", err)
	}
}
