package pcky

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Scanners define their own constants.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect either fields of a grammar line or words of a sentence.
//
// An example would be a token for a rule probability:
//
//    TokType = Number      // identifier for this kind of tokens (scanner specific)
//    Lexeme  = "0.25"      // lexeme how it appeared in the input stream
//    Value   = nil         // left to the consumer
//    Span    = 0…4         // occured from position 0 in the input line
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. For every
// node of a parse tree we track which words it covers. A span denotes a
// start position and the position just behind the end.
//
// Note that chart cells are addressed by inclusive word indices (i, j);
// the corresponding span is (i…j+1).
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// CellSpan returns the span for the chart cell (i, j), with i and j
// being inclusive word indices.
func CellSpan(i, j int) Span {
	return Span{uint64(i), uint64(j + 1)}
}
