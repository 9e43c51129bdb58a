package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/resolve"
)

// Script defaults for words the document does not list.
const (
	DefaultCancel          = "cancel"
	DefaultFirstSuggestion = "first-suggestion"
)

// KeepAnswer registers the word. A nil Weight withholds it.
type KeepAnswer struct {
	Category string `yaml:"category"`
	Weight   *int   `yaml:"weight"`
}

// Answer is the scripted decision for one word. Exactly one field is set.
type Answer struct {
	Select string      `yaml:"select,omitempty"`
	Keep   *KeepAnswer `yaml:"keep,omitempty"`
	Cancel bool        `yaml:"cancel,omitempty"`
}

// ScriptDoc is the YAML form of a Script.
type ScriptDoc struct {
	Default string            `yaml:"default,omitempty"`
	Answers map[string]Answer `yaml:"answers"`
}

// Script answers queries from a fixed table.
type Script struct {
	def     string
	answers map[string]Answer

	mu      sync.Mutex
	queries []resolve.Query
}

// NewScript validates doc and builds a Script from it.
func NewScript(doc ScriptDoc) (*Script, error) {
	s := &Script{def: doc.Default, answers: make(map[string]Answer, len(doc.Answers))}
	if s.def == "" {
		s.def = DefaultCancel
	}
	if s.def != DefaultCancel && s.def != DefaultFirstSuggestion {
		return nil, fmt.Errorf("script: unknown default %q", doc.Default)
	}

	for word, a := range doc.Answers {
		set := 0
		if a.Select != "" {
			set++
		}
		if a.Keep != nil {
			set++
		}
		if a.Cancel {
			set++
		}
		if set != 1 {
			return nil, fmt.Errorf("script: answer for %q must set exactly one of select, keep, cancel", word)
		}
		s.answers[lexicon.Fold(word)] = a
	}
	return s, nil
}

// ParseScript decodes a YAML script document.
func ParseScript(data []byte) (*Script, error) {
	var doc ScriptDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return NewScript(doc)
}

// LoadScript reads a YAML script document from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// Decide looks the word up in the table.
func (s *Script) Decide(_ context.Context, q resolve.Query) (resolve.Decision, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	a, ok := s.answers[q.Word]
	switch {
	case !ok:
		if s.def == DefaultFirstSuggestion && len(q.Suggestions) > 0 {
			return resolve.Select(q.Suggestions[0]), nil
		}
		return resolve.Cancel(), nil
	case a.Select != "":
		return resolve.Select(lexicon.Fold(a.Select)), nil
	case a.Keep != nil:
		return resolve.Decision{Kind: resolve.DecisionKeep, Category: a.Keep.Category, Weight: a.Keep.Weight}, nil
	default:
		return resolve.Cancel(), nil
	}
}

// Queries returns every query received so far, in order.
func (s *Script) Queries() []resolve.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]resolve.Query, len(s.queries))
	copy(out, s.queries)
	return out
}
