package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the lookup key for a word form: NFC-normalized, case-folded and
// trimmed. Every lexeme is stored and looked up through Fold, so "Inútil",
// "INÚTIL" and a decomposed "inútil" share one key.
func Fold(s string) string {
	// Casers are stateful; build one per call.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
