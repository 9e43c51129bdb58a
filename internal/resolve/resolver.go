package resolve

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/similarity"
)

// Lexicon is the subset of *lexicon.Store the resolver needs.
type Lexicon interface {
	Lookup(lexeme string) (lexicon.Entry, bool)
	Insert(ctx context.Context, lexeme, category string, weight int) (lexicon.Entry, error)
	Keys() []string
	Categories() []string
}

// Outcome is the result of resolving one word.
type Outcome struct {
	Token model.Token
	// Correction is set only when the word was replaced by another lexeme.
	Correction *model.Correction
	// Resolved is false when the token is the "unknown" classification.
	Resolved bool
}

// Resolver runs the resolution protocol against a lexicon and an oracle.
type Resolver struct {
	lex    Lexicon
	oracle Oracle
	opts   similarity.Options
	logger *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSimilarity overrides the suggestion threshold and size.
func WithSimilarity(opts similarity.Options) Option {
	return func(r *Resolver) { r.opts = opts }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver.
func New(lex Lexicon, oracle Oracle, opts ...Option) *Resolver {
	r := &Resolver{
		lex:    lex,
		oracle: oracle,
		opts:   similarity.DefaultOptions(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies a word that missed the lexicon. It never fails: every
// problem ends in an unresolved token.
func (r *Resolver) Resolve(ctx context.Context, word string) Outcome {
	q := Query{
		Word:        word,
		Suggestions: similarity.Suggest(word, r.lex.Keys(), r.opts),
		Categories:  r.lex.Categories(),
	}

	d, err := r.oracle.Decide(ctx, q)
	if err != nil {
		r.logger.Warn("oracle failed, leaving word unresolved",
			zap.String("word", word),
			zap.Error(err),
		)
		return unresolved(word)
	}

	var out Outcome
	switch d.Kind {
	case DecisionSelect:
		out = r.selectSuggestion(word, d.Suggestion, q.Suggestions)
	case DecisionKeep:
		out = r.keepNew(ctx, word, d)
	default:
		out = unresolved(word)
	}

	r.logger.Debug("word resolved",
		zap.String("word", word),
		zap.Stringer("decision", d.Kind),
		zap.Strings("suggestions", q.Suggestions),
		zap.String("category", out.Token.Category),
		zap.Int("weight", out.Token.Weight),
		zap.Bool("resolved", out.Resolved),
	)
	return out
}

// selectSuggestion accepts only a word from the suggestion list shown to the
// oracle.
func (r *Resolver) selectSuggestion(word, choice string, suggestions []string) Outcome {
	e, ok := r.lex.Lookup(choice)
	if !ok || e.Lexeme == word || !slices.Contains(suggestions, e.Lexeme) {
		r.logger.Warn("oracle selected a word that is not a lexicon correction",
			zap.String("word", word),
			zap.String("selected", choice),
		)
		return unresolved(word)
	}

	return Outcome{
		Token: model.Token{Word: e.Lexeme, Category: e.Category, Weight: e.Weight},
		Correction: &model.Correction{
			Original: word,
			Resolved: e.Lexeme,
			Category: e.Category,
			Weight:   e.Weight,
		},
		Resolved: true,
	}
}

func (r *Resolver) keepNew(ctx context.Context, word string, d Decision) Outcome {
	if d.Category == "" || d.Weight == nil {
		return unresolved(word)
	}

	e, err := r.lex.Insert(ctx, word, d.Category, *d.Weight)
	if err != nil {
		if !lexicon.IsDuplicate(err) {
			r.logger.Warn("registering word failed",
				zap.String("word", word),
				zap.Error(err),
			)
			return unresolved(word)
		}
		found, ok := r.lex.Lookup(word)
		if !ok {
			return unresolved(word)
		}
		e = found
	}

	return Outcome{
		Token:    model.Token{Word: word, Category: e.Category, Weight: e.Weight},
		Resolved: true,
	}
}

func unresolved(word string) Outcome {
	return Outcome{Token: model.UnknownToken(word)}
}
