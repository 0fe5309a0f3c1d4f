/*
Package scanner defines tokenizers for the inputs of the CKY parser.

Two kinds of input are scanned: lines of a grammar file, consisting of a
rule probability, a parent symbol, an arrow and one or two children, and
sentences, which are whitespace-separated runs of words. Both scanners are
backed by lexmachine DFAs, which are compiled once and shared.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/pcky"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pcky.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pcky.scanner")
}

// Token categories produced by the scanners of this package.
const (
	EOF pcky.TokType = -1
)

const (
	Number pcky.TokType = iota + 1 // rule probability, or a numeric word
	Arrow                          // literal '->' in grammar lines
	Symbol                         // grammar symbol, i.e. anything else in grammar lines
	Word                           // sentence word
)

// TokTypeString returns a printable name for the token categories above.
func TokTypeString(t pcky.TokType) string {
	switch t {
	case EOF:
		return "EOF"
	case Number:
		return "NUMBER"
	case Arrow:
		return "ARROW"
	case Symbol:
		return "SYMBOL"
	case Word:
		return "WORD"
	}
	return fmt.Sprintf("<%d>", t)
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() pcky.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used for all the
// scanners of this package.
type DefaultToken struct {
	kind   pcky.TokType
	lexeme string
	Val    interface{}
	span   pcky.Span
}

var _ pcky.Token = DefaultToken{}

func MakeDefaultToken(typ pcky.TokType, lexeme string, span pcky.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() pcky.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() pcky.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%s(%q)%v", TokTypeString(t.kind), t.lexeme, t.span)
}
