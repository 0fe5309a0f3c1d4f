package grammar

import (
	"fmt"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is an interned grammar symbol. Words and categories share one
// symbol space: a symbol is a category if it occurs as the parent of at
// least one rule, otherwise it is a terminal.
//
// Symbols are compared by identity. Two symbols of the same grammar are
// equal if and only if their names are equal.
//
type Symbol struct {
	name     string
	id       int
	terminal bool
}

// Name returns the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// ID returns the symbol's serial number within its grammar. IDs start at 0
// and follow the order of first occurence.
func (s *Symbol) ID() int {
	return s.id
}

// IsTerminal is true if s never occurs as the parent of a rule.
func (s *Symbol) IsTerminal() bool {
	return s.terminal
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable interns symbols by name (map-like semantics). Symbols are
// never deleted.
type SymbolTable struct {
	table   map[string]*Symbol
	symbols []*Symbol
}

// NewSymbolTable creates an empty symbol table.
//
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		table: make(map[string]*Symbol),
	}
}

// ResolveSymbol checks for a symbol in the symbol table.
// Returns a symbol or nil.
//
func (t *SymbolTable) ResolveSymbol(name string) *Symbol {
	if t == nil {
		return nil
	}
	return t.table[name]
}

// ResolveOrDefineSymbol finds a symbol in the table, inserts a new one if
// not found. Returns the symbol and a flag, signalling wether the symbol
// has already been present.
//
// An empty name does not denote a symbol; nil is returned.
//
func (t *SymbolTable) ResolveOrDefineSymbol(name string) (*Symbol, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if sym := t.ResolveSymbol(name); sym != nil {
		return sym, true
	}
	sym := &Symbol{name: name, id: len(t.symbols), terminal: true}
	t.table[name] = sym
	t.symbols = append(t.symbols, sym)
	return sym, false
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.symbols)
}

// SymbolByID returns the symbol with serial number id, or nil.
func (t *SymbolTable) SymbolByID(id int) *Symbol {
	if id < 0 || id >= len(t.symbols) {
		return nil
	}
	return t.symbols[id]
}

// Each iterates over each symbol in the table in order of definition,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(*Symbol)) {
	for _, sym := range t.symbols {
		mapper(sym)
	}
}

func (t *SymbolTable) String() string {
	return fmt.Sprintf("<symtab |%d|>", len(t.symbols))
}
