package scanner

import (
	"fmt"
)

// Fields splits a grammar line into tokens. Whitespace is skipped.
//
//    "0.5 S -> NP VP"  ⇒  NUMBER ARROW … : [0.5] [S] [->] [NP] [VP]
//
// An empty slice is returned for blank lines.
func Fields(line string) ([]DefaultToken, error) {
	lm, err := GrammarLexer()
	if err != nil {
		return nil, err
	}
	return collect(lm, line)
}

// Words splits a sentence into words. Words are maximal runs of
// non-whitespace characters.
func Words(sentence string) ([]string, error) {
	lm, err := WordLexer()
	if err != nil {
		return nil, err
	}
	tokens, err := collect(lm, sentence)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Lexeme()
	}
	return words, nil
}

func collect(lm *LMAdapter, input string) ([]DefaultToken, error) {
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = fmt.Errorf("cannot scan %q: %w", input, e)
		}
	})
	var tokens []DefaultToken
	for token := sc.NextToken(); token.TokType() != EOF; token = sc.NextToken() {
		tokens = append(tokens, token.(DefaultToken))
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return tokens, nil
}
