package scanner

import (
	"sync"

	"github.com/npillmayer/pcky"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init function
// which adds the patterns to the lexer, in order of priority.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer)) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumed input is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() pcky.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", pcky.Span{0, 0})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return MakeDefaultToken(
		pcky.TokType(token.Type),
		string(token.Lexeme),
		pcky.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id pcky.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}

// --- Shared lexers ---------------------------------------------------------

// Patterns are added in order of priority: for matches of equal length,
// lexmachine selects the pattern added first.
const (
	whitespace = `( |\t|\n|\r)+`
	arrow      = `\-\>`
	decimal    = `[0-9]+(\.[0-9]*)?([eE][\+\-]?[0-9]+)?`
	fraction   = `\.[0-9]+([eE][\+\-]?[0-9]+)?`
	nonblank   = `[^ \t\n\r]+`
)

var grammarLexer, wordLexer struct {
	once    sync.Once
	adapter *LMAdapter
	err     error
}

// GrammarLexer returns the (shared) lexer for grammar lines. It produces
// tokens of categories Number, Arrow and Symbol.
func GrammarLexer() (*LMAdapter, error) {
	grammarLexer.once.Do(func() {
		grammarLexer.adapter, grammarLexer.err = NewLMAdapter(func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(whitespace), Skip)
			lexer.Add([]byte(arrow), MakeToken("ARROW", Arrow))
			lexer.Add([]byte(decimal), MakeToken("NUMBER", Number))
			lexer.Add([]byte(fraction), MakeToken("NUMBER", Number))
			lexer.Add([]byte(nonblank), MakeToken("SYMBOL", Symbol))
		})
	})
	return grammarLexer.adapter, grammarLexer.err
}

// WordLexer returns the (shared) lexer for sentences. It produces tokens
// of category Word.
func WordLexer() (*LMAdapter, error) {
	wordLexer.once.Do(func() {
		wordLexer.adapter, wordLexer.err = NewLMAdapter(func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(whitespace), Skip)
			lexer.Add([]byte(nonblank), MakeToken("WORD", Word))
		})
	})
	return wordLexer.adapter, wordLexer.err
}
