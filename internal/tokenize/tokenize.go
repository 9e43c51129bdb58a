// Package tokenize splits text into words and classifies each one against the
// lexicon, sending misses through the resolution protocol.
package tokenize

import (
	"context"
	"regexp"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/resolve"
)

// wordPattern matches runs of letters, digits and underscore in any script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Lookuper is the read side of the lexicon.
type Lookuper interface {
	Lookup(lexeme string) (lexicon.Entry, bool)
}

// Resolver classifies a word the lexicon does not know.
type Resolver interface {
	Resolve(ctx context.Context, word string) resolve.Outcome
}

// Result is the tokenization of one text.
type Result struct {
	Tokens      []model.Token
	Corrections []model.Correction
	// Unresolved lists, in order, every occurrence that ended as "unknown".
	Unresolved []string
}

// Tokenizer classifies words against a lexicon.
type Tokenizer struct {
	lex      Lookuper
	resolver Resolver
}

// New creates a Tokenizer.
func New(lex Lookuper, resolver Resolver) *Tokenizer {
	return &Tokenizer{lex: lex, resolver: resolver}
}

// Words returns the folded words of text in order.
func Words(text string) []string {
	return wordPattern.FindAllString(lexicon.Fold(text), -1)
}

// Tokenize classifies every word of text in order.
//
// Each miss is resolved on its own: an unknown word that appears twice reaches
// the resolver twice unless the first resolution registered it.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) Result {
	words := Words(text)
	res := Result{Tokens: make([]model.Token, 0, len(words))}

	for _, w := range words {
		if e, ok := t.lex.Lookup(w); ok {
			res.Tokens = append(res.Tokens, model.Token{Word: w, Category: e.Category, Weight: e.Weight})
			continue
		}

		out := t.resolver.Resolve(ctx, w)
		res.Tokens = append(res.Tokens, out.Token)
		if out.Correction != nil {
			res.Corrections = append(res.Corrections, *out.Correction)
		}
		if !out.Resolved {
			res.Unresolved = append(res.Unresolved, w)
		}
	}

	return res
}
