package grammar

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/edsrzf/mmap-go"
	"github.com/npillmayer/pcky/scanner"
)

// LoadGrammar creates a grammar from lines in grammar file format:
//
//    <probability> <parent> -> <child1> [<child2>]
//
// Blank lines are skipped. The first malformed line fails the whole
// grammar with a *MalformedRuleError, carrying the 1-based line number.
func LoadGrammar(name string, lines []string) (*Grammar, error) {
	b := NewBuilder(name)
	for i, line := range lines {
		if err := b.Line(i+1, line); err != nil {
			return nil, err
		}
	}
	return b.Grammar()
}

// ReadGrammar creates a grammar from a reader, delivering lines in grammar
// file format. See LoadGrammar.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	b := NewBuilder(name)
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		if err := b.Line(lineno, lines.Text()); err != nil {
			return nil, err
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading grammar %s: %w", name, err)
	}
	return b.Grammar()
}

// LoadFile reads a grammar file. The file is mapped into memory read-only.
// The grammar is named after the file's base name.
func LoadFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file: %w", err)
	}
	defer f.Close()
	name := filepath.Base(path)
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat grammar file: %w", err)
	}
	if info.Size() == 0 { // empty files cannot be mapped
		return ReadGrammar(name, bytes.NewReader(nil))
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot map grammar file %s: %w", path, err)
	}
	defer m.Unmap()
	tracer().Debugf("mapped grammar file %s, %d bytes", path, len(m))
	return ReadGrammar(name, bytes.NewReader(m))
}

// Line parses a single line in grammar file format and adds the rule to
// the grammar. lineno is used for error messages. Blank lines are ignored.
func (b *Builder) Line(lineno int, line string) error {
	malformed := func(format string, args ...interface{}) error {
		err := &MalformedRuleError{Line: lineno, Text: line, Reason: fmt.Sprintf(format, args...)}
		if b.err == nil {
			b.err = err
		}
		return err
	}
	tokens, err := scanner.Fields(line)
	if err != nil {
		return malformed("%v", err)
	}
	if len(tokens) == 0 {
		return nil
	}
	prob, err := strconv.ParseFloat(tokens[0].Lexeme(), 64)
	if err != nil || tokens[0].TokType() != scanner.Number {
		return malformed("unparsable probability %q", tokens[0].Lexeme())
	}
	if len(tokens) < 2 || tokens[1].TokType() == scanner.Arrow {
		return malformed("empty parent")
	}
	if len(tokens) < 3 || tokens[2].TokType() != scanner.Arrow {
		return malformed("missing '->' separator")
	}
	children := make([]string, 0, 2)
	for _, t := range tokens[3:] {
		if t.TokType() == scanner.Arrow {
			return malformed("unexpected '->' at position %d", t.Span().From())
		}
		children = append(children, t.Lexeme())
	}
	return b.add(lineno, prob, tokens[1].Lexeme(), children)
}
