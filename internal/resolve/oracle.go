package resolve

import "context"

// DecisionKind enumerates the answers an Oracle can give.
type DecisionKind int

const (
	// DecisionCancel leaves the word unresolved.
	DecisionCancel DecisionKind = iota
	// DecisionSelect replaces the word with an existing lexeme.
	DecisionSelect
	// DecisionKeep registers the word as a new lexeme.
	DecisionKeep
)

// String returns the lowercase name of the kind.
func (k DecisionKind) String() string {
	switch k {
	case DecisionSelect:
		return "select"
	case DecisionKeep:
		return "keep"
	default:
		return "cancel"
	}
}

// Decision is an Oracle's answer for one word.
//
// For DecisionKeep, an empty Category or a nil Weight means the operator
// withheld that input; the word is then left unresolved.
type Decision struct {
	Kind       DecisionKind
	Suggestion string
	Category   string
	Weight     *int
}

// Cancel leaves the word unresolved.
func Cancel() Decision {
	return Decision{Kind: DecisionCancel}
}

// Select replaces the word with the lexicon word s.
func Select(s string) Decision {
	return Decision{Kind: DecisionSelect, Suggestion: s}
}

// KeepNew registers the word with the given category and weight.
func KeepNew(category string, weight int) Decision {
	return Decision{Kind: DecisionKeep, Category: category, Weight: &weight}
}

// Query is what an Oracle is shown for one unrecognized word.
type Query struct {
	// Word is the folded, unrecognized word.
	Word string
	// Suggestions are the closest lexicon words, best first.
	Suggestions []string
	// Categories are the categories already in use, for reuse.
	Categories []string
}

// Oracle decides what to do with an unrecognized word.
//
// Implementations may block (an operator prompt, a remote model). The
// presentation layer owns the implementation; this package only calls it.
type Oracle interface {
	Decide(ctx context.Context, q Query) (Decision, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, q Query) (Decision, error)

// Decide calls f.
func (f OracleFunc) Decide(ctx context.Context, q Query) (Decision, error) {
	return f(ctx, q)
}
