package grammar

import (
	"github.com/cnf/structhash"
)

// fingerprintVersion is the structhash version of grammar fingerprints.
// Increment it when the digest format changes.
const fingerprintVersion = 1

type ruleDigest struct {
	Parent  string
	RHS     []string
	LogProb float64
}

type grammarDigest struct {
	Start string
	Rules []ruleDigest
}

// Fingerprint returns a structural hash of the grammar, covering the start
// symbol and all rules in order. The grammar's name does not contribute.
// Equal fingerprints identify equal grammars, e.g. for stored parse
// results.
func (g *Grammar) Fingerprint() string {
	digest := grammarDigest{
		Start: g.start,
		Rules: make([]ruleDigest, len(g.rules)),
	}
	for i, r := range g.rules {
		rhs := make([]string, r.arity)
		for j, sym := range r.RHS() {
			rhs[j] = sym.name
		}
		digest.Rules[i] = ruleDigest{Parent: r.Parent.name, RHS: rhs, LogProb: r.LogProb}
	}
	h, err := structhash.Hash(digest, fingerprintVersion)
	if err != nil { // structhash fails on malformed struct tags only
		panic(err)
	}
	return h
}
