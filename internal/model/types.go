package model

import "fmt"

// UnknownCategory tags a token whose word could not be resolved against the lexicon.
const UnknownCategory = "unknown"

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerAgent    Speaker = "agent"
	SpeakerCustomer Speaker = "customer"
)

// String returns the display name used in reports.
func (s Speaker) String() string {
	switch s {
	case SpeakerAgent:
		return "Agent"
	case SpeakerCustomer:
		return "Customer"
	default:
		return string(s)
	}
}

// Token is a single classified word.
type Token struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// UnknownToken returns the terminal classification for an unresolved word.
func UnknownToken(word string) Token {
	return Token{Word: word, Category: UnknownCategory, Weight: 0}
}

// IsUnknown reports whether the token was left unresolved.
func (t Token) IsUnknown() bool {
	return t.Category == UnknownCategory
}

// Correction records that an unrecognized word was replaced by a lexicon word.
type Correction struct {
	Original string `json:"original"`
	Resolved string `json:"resolved"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// String formats the correction the way the report prints it.
func (c Correction) String() string {
	return fmt.Sprintf("%s -> %s [%s, %s]", c.Original, c.Resolved, c.Category, SignedWeight(c.Weight))
}

// Turn is one speaker utterance after tokenization.
type Turn struct {
	Index   int     `json:"index"`
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Tokens  []Token `json:"tokens"`
}

// SignedWeight renders a weight with an explicit sign for positive values.
func SignedWeight(w int) string {
	if w > 0 {
		return fmt.Sprintf("+%d", w)
	}
	return fmt.Sprintf("%d", w)
}
