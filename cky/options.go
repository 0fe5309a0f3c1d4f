package cky

import (
	"github.com/npillmayer/schuko/gconf"
)

// Option configures a parser.
type Option func(p *Parser)

// StartSymbol overrides the grammar's start symbol.
func StartSymbol(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.startName = name
		}
	}
}

// MaxUnaryPasses sets the bound for passes of unary closure per cell.
// Values < 1 select the default, which is the number of grammar symbols
// plus 1.
func MaxUnaryPasses(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = p.g.SymbolCount() + 1
		}
		p.maxPasses = n
	}
}

// Parallel sets or clears concurrent filling of spans of equal length.
func Parallel(b bool) Option {
	return func(p *Parser) {
		p.parallel = b
	}
}

// KeepChart sets or clears keeping the chart after a parse. If set, the
// chart is available from the result, and the derivation may be walked
// with a custom listener.
func KeepChart(b bool) Option {
	return func(p *Parser) {
		p.keepChart = b
	}
}

// defaults reads the global configuration.
func (p *Parser) defaults() {
	p.startName = p.g.StartName()
	p.maxPasses = p.g.SymbolCount() + 1
	if n := gconf.GetInt("pcky.unary-passes"); n > 0 {
		p.maxPasses = n
	}
	p.parallel = gconf.GetBool("pcky.parallel")
}
