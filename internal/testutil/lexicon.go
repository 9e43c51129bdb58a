package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/callcheck/internal/lexicon"
)

// ScenarioEntries is the small lexicon most engine-level tests start from.
func ScenarioEntries() []lexicon.Entry {
	return []lexicon.Entry{
		{Lexeme: "hola", Category: "saludo", Weight: 1},
		{Lexeme: "gracias", Category: "despedida", Weight: 1},
		{Lexeme: "bueno", Category: "positivo", Weight: 1},
		{Lexeme: "mal", Category: "negativo", Weight: -2},
	}
}

// NewLexicon opens a lexicon in a temp dir holding exactly entries.
// The store is closed when the test ends.
func NewLexicon(t testing.TB, entries ...lexicon.Entry) *lexicon.Store {
	t.Helper()

	st, err := lexicon.Open(filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("open lexicon: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	for _, e := range entries {
		if _, err := st.Insert(ctx, e.Lexeme, e.Category, e.Weight); err != nil {
			t.Fatalf("insert %q: %v", e.Lexeme, err)
		}
	}
	return st
}
