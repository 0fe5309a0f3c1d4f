package chart

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/pcky"
	"github.com/npillmayer/pcky/grammar"
)

// --- Backpointers ----------------------------------------------------------

// Kind tells how an entry has been derived.
type Kind int8

// Kinds of derivations.
const (
	Terminal Kind = iota // A -> word
	Unary                // A -> B, B from the same cell
	Binary               // A -> B C, split at word index k
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	}
	return "?"
}

// Backpointer is the canonical witness of an entry's derivation. Children
// are given by the rule: for a binary rule A -> B C at split k, B spans
// (i, k) and C spans (k+1, j).
type Backpointer struct {
	Kind  Kind
	Rule  *grammar.Rule
	Split int // k, for binary derivations only
}

// TerminalBack creates a backpointer for a lexical rule.
func TerminalBack(r *grammar.Rule) Backpointer {
	return Backpointer{Kind: Terminal, Rule: r}
}

// UnaryBack creates a backpointer for a unary rule between categories.
func UnaryBack(r *grammar.Rule) Backpointer {
	return Backpointer{Kind: Unary, Rule: r}
}

// BinaryBack creates a backpointer for a binary rule, split after word k.
func BinaryBack(r *grammar.Rule, k int) Backpointer {
	return Backpointer{Kind: Binary, Rule: r, Split: k}
}

// Left returns the (first) child label, or the word for terminal
// derivations.
func (bp Backpointer) Left() *grammar.Symbol {
	return bp.Rule.Left()
}

// Right returns the second child label of a binary derivation.
func (bp Backpointer) Right() *grammar.Symbol {
	return bp.Rule.Right()
}

func (bp Backpointer) String() string {
	switch bp.Kind {
	case Terminal, Unary:
		return fmt.Sprintf("%s(%s)", bp.Kind, bp.Left())
	}
	return fmt.Sprintf("binary(%d, %s, %s)", bp.Split, bp.Left(), bp.Right())
}

// --- Entries ---------------------------------------------------------------

// Entry is the best derivation of a label over a cell's span.
type Entry struct {
	Label     *grammar.Symbol
	LogProb   float64
	NumParses uint64
	Back      Backpointer
	pending   uint64 // parse count not yet propagated through unary rules
}

// TakePending returns the part of the parse count which has not yet been
// propagated through unary rules, and clears it.
func (e *Entry) TakePending() uint64 {
	n := e.pending
	e.pending = 0
	return n
}

// HasPending is true if the entry has changed since the last call to
// TakePending.
func (e *Entry) HasPending() bool {
	return e.pending > 0
}

func (e *Entry) String() string {
	return fmt.Sprintf("[%s %.6g #%d %v]", e.Label, e.LogProb, e.NumParses, e.Back)
}

// --- Cells -----------------------------------------------------------------

// Outcome reports the effect of a relaxation step.
type Outcome int8

// Outcomes of Cell.Relax.
const (
	Discarded Outcome = iota
	Inserted
	Replaced
	Tied
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	case Tied:
		return "tied"
	}
	return "discarded"
}

// Cell holds the entries for a span, one per label, in order of insertion.
type Cell struct {
	span    pcky.Span
	entries *linkedhashmap.Map // *grammar.Symbol → *Entry
}

func newCell(i, j int) *Cell {
	return &Cell{
		span:    pcky.CellSpan(i, j),
		entries: linkedhashmap.New(),
	}
}

// Span returns the span of words the cell covers.
func (c *Cell) Span() pcky.Span {
	return c.span
}

// Size returns the number of labels in the cell.
func (c *Cell) Size() int {
	return c.entries.Size()
}

// IsEmpty is true if no label derives the cell's span.
func (c *Cell) IsEmpty() bool {
	return c.entries.Empty()
}

// Relax offers a derivation of label with log-probability logProb and
// numParses distinct parses. See the package documentation for the rules.
//
// Inserting or replacing an entry marks its full count as pending, a tie
// adds the incoming count to the pending count.
func (c *Cell) Relax(label *grammar.Symbol, logProb float64, numParses uint64, back Backpointer) Outcome {
	v, found := c.entries.Get(label)
	if !found {
		c.entries.Put(label, &Entry{
			Label:     label,
			LogProb:   logProb,
			NumParses: numParses,
			Back:      back,
			pending:   numParses,
		})
		return Inserted
	}
	e := v.(*Entry)
	switch {
	case SameLogProb(logProb, e.LogProb):
		e.NumParses = AddCounts(e.NumParses, numParses)
		e.pending = AddCounts(e.pending, numParses)
		return Tied
	case logProb > e.LogProb:
		e.LogProb = logProb
		e.NumParses = numParses
		e.Back = back
		e.pending = numParses
		return Replaced
	}
	return Discarded
}

// Get returns the entry for label, if any.
func (c *Cell) Get(label *grammar.Symbol) (*Entry, bool) {
	if label == nil {
		return nil, false
	}
	v, found := c.entries.Get(label)
	if !found {
		return nil, false
	}
	return v.(*Entry), true
}

// BestLabel returns the label with the highest log-probability. Ties are
// resolved to the label inserted first. Returns nil for empty cells.
func (c *Cell) BestLabel() *grammar.Symbol {
	var best *Entry
	c.Each(func(e *Entry) {
		if best == nil || (e.LogProb > best.LogProb && !SameLogProb(e.LogProb, best.LogProb)) {
			best = e
		}
	})
	if best == nil {
		return nil
	}
	return best.Label
}

// Entries returns the entries in order of insertion.
func (c *Cell) Entries() []*Entry {
	entries := make([]*Entry, 0, c.entries.Size())
	c.Each(func(e *Entry) {
		entries = append(entries, e)
	})
	return entries
}

// Each calls f for every entry, in order of insertion. f must not add
// labels to the cell.
func (c *Cell) Each(f func(*Entry)) {
	it := c.entries.Iterator()
	for it.Next() {
		f(it.Value().(*Entry))
	}
}

func (c *Cell) String() string {
	return fmt.Sprintf("<cell %v |%d|>", c.span, c.entries.Size())
}
