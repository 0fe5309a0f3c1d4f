package grammar

import (
	"testing"
)

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil {
		t.Error("no symbol table created")
	}
	if symtab.Size() != 0 {
		t.Errorf("expected new symbol table to be empty, has %d entries", symtab.Size())
	}
}

func TestTwoSymbolsDistinctID(t *testing.T) {
	symtab := NewSymbolTable()
	sym1, _ := symtab.ResolveOrDefineSymbol("new-sym1")
	sym2, _ := symtab.ResolveOrDefineSymbol("new-sym2")
	if sym1 == sym2 || sym1.ID() == sym2.ID() {
		t.Error("2 symbols with equal identity")
	}
	if symtab.SymbolByID(1) != sym2 {
		t.Errorf("expected symbol #1 to be %v, is %v", sym2, symtab.SymbolByID(1))
	}
}

func TestResolveOrDefineSymbol(t *testing.T) {
	symtab := NewSymbolTable()
	sym, found := symtab.ResolveOrDefineSymbol("new-sym")
	if found {
		t.Error("new symbol reported as present")
	}
	if s, found := symtab.ResolveOrDefineSymbol("new-sym"); !found || s != sym {
		t.Error("cannot find stored symbol in table")
	}
	if s := symtab.ResolveSymbol("other"); s != nil {
		t.Errorf("expected unknown symbol to resolve to nil, is %v", s)
	}
	if s, _ := symtab.ResolveOrDefineSymbol(""); s != nil {
		t.Error("empty name should not define a symbol")
	}
}

func TestSymbolTableOrder(t *testing.T) {
	symtab := NewSymbolTable()
	for _, n := range []string{"TOP", "S", "N", "S", "V"} {
		symtab.ResolveOrDefineSymbol(n)
	}
	var names []string
	symtab.Each(func(sym *Symbol) {
		names = append(names, sym.Name())
	})
	if len(names) != 4 || names[0] != "TOP" || names[3] != "V" {
		t.Errorf("expected symbols in order of definition, have %v", names)
	}
}
