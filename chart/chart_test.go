package chart

import (
	"math"
	"testing"

	"github.com/npillmayer/pcky"
	"github.com/npillmayer/pcky/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testGrammar(t *testing.T) *grammar.Grammar {
	g, err := grammar.LoadGrammar("G", []string{
		"1.0 TOP -> S",
		"0.5 S -> N V",
		"0.5 S -> V N",
		"1.0 N -> dog",
		"1.0 V -> barks",
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTriangularChart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.chart")
	defer teardown()
	//
	c := New(4)
	if c.Size() != 4 {
		t.Errorf("expected chart for 4 words, have %d", c.Size())
	}
	seen := make(map[*Cell]bool)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			cell := c.Cell(i, j)
			if seen[cell] {
				t.Errorf("cell (%d,%d) is shared", i, j)
			}
			seen[cell] = true
			if cell.Span() != pcky.CellSpan(i, j) {
				t.Errorf("expected cell (%d,%d) to span %v, spans %v", i, j, pcky.CellSpan(i, j), cell.Span())
			}
		}
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 cells, have %d", len(seen))
	}
	if c.Top() != c.Cell(0, 3) {
		t.Errorf("expected top cell to be (0,3)")
	}
}

func TestEmptyChart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.chart")
	defer teardown()
	//
	g := testGrammar(t)
	c := New(0)
	if c.Size() != 0 {
		t.Errorf("expected empty chart, have size %d", c.Size())
	}
	if c.Top() != nil {
		t.Errorf("expected empty chart to have no top cell")
	}
	if _, found := c.Root(g.Start()); found {
		t.Errorf("expected empty chart to have no root entry")
	}
	c.Dump()
}

func TestCellOutOfRange(t *testing.T) {
	c := New(2)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected access to cell (1,0) to panic")
		}
	}()
	c.Cell(1, 0)
}

func TestRelax(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.chart")
	defer teardown()
	//
	g := testGrammar(t)
	S := g.Symbol("S")
	r1, r2 := g.Rule(1), g.Rule(2)
	cell := New(2).Cell(0, 1)
	half := math.Log(0.5)
	if o := cell.Relax(S, half+math.Log(0.5), 1, BinaryBack(r1, 0)); o != Inserted {
		t.Errorf("expected first relax to insert, was %v", o)
	}
	if o := cell.Relax(S, half, 2, BinaryBack(r2, 0)); o != Replaced {
		t.Errorf("expected higher log-prob to replace, was %v", o)
	}
	e, _ := cell.Get(S)
	if e.NumParses != 2 || e.Back.Rule != r2 || e.TakePending() != 2 {
		t.Errorf("expected replaced entry to carry count 2 and rule 2, is %v", e)
	}
	if o := cell.Relax(S, half+1e-14, 3, BinaryBack(r1, 0)); o != Tied {
		t.Errorf("expected equal log-prob to tie, was %v", o)
	}
	if e.NumParses != 5 || e.Back.Rule != r2 {
		t.Errorf("expected tie to add counts and keep witness, is %v", e)
	}
	if !e.HasPending() || e.TakePending() != 3 || e.HasPending() {
		t.Errorf("expected tie to leave exactly the delta pending")
	}
	if o := cell.Relax(S, math.Log(0.1), 7, BinaryBack(r1, 0)); o != Discarded {
		t.Errorf("expected lower log-prob to be discarded, was %v", o)
	}
	if e.NumParses != 5 || cell.Size() != 1 {
		t.Errorf("discarded relax changed the cell: %v", e)
	}
	if _, found := cell.Get(g.Symbol("N")); found {
		t.Errorf("expected no entry for N")
	}
	if _, found := cell.Get(nil); found {
		t.Errorf("expected no entry for nil label")
	}
}

func TestBestLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.chart")
	defer teardown()
	//
	g := testGrammar(t)
	N, V, S := g.Symbol("N"), g.Symbol("V"), g.Symbol("S")
	cell := New(1).Cell(0, 0)
	if cell.BestLabel() != nil {
		t.Errorf("expected empty cell to have no best label")
	}
	cell.Relax(S, math.Log(0.25), 1, TerminalBack(g.Rule(3)))
	cell.Relax(V, math.Log(0.5), 1, TerminalBack(g.Rule(4)))
	cell.Relax(N, math.Log(0.5), 1, TerminalBack(g.Rule(3)))
	if best := cell.BestLabel(); best != V {
		t.Errorf("expected first inserted of tied labels (V) to be best, is %v", best)
	}
	labels := cell.Entries()
	if len(labels) != 3 || labels[0].Label != S || labels[2].Label != N {
		t.Errorf("expected entries in order of insertion, have %v", labels)
	}
	New(1).Dump()
}

func TestSaturatingCounts(t *testing.T) {
	if AddCounts(math.MaxUint64, 1) != math.MaxUint64 {
		t.Errorf("expected addition to saturate")
	}
	if MulCounts(1<<40, 1<<40) != math.MaxUint64 {
		t.Errorf("expected multiplication to saturate")
	}
	if AddCounts(2, 3) != 5 || MulCounts(2, 3) != 6 {
		t.Errorf("arithmetic on small counts is broken")
	}
}

func TestSameLogProb(t *testing.T) {
	if !SameLogProb(math.Log(0.5)+math.Log(0.5), math.Log(0.25)) {
		t.Errorf("expected log(0.5)+log(0.5) to equal log(0.25)")
	}
	if SameLogProb(-1, -1.001) {
		t.Errorf("expected -1 and -1.001 to differ")
	}
	if !SameLogProb(math.Inf(-1), math.Inf(-1)) {
		t.Errorf("expected -Inf to equal itself")
	}
}
