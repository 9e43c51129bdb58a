// Package protocol checks an agent's words against the four-phase service
// protocol: greeting, customer identification, no prohibited language and a
// courteous closing.
package protocol

import (
	"strings"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
)

// Phrases holds the trigger phrases of each phase.
type Phrases struct {
	Greeting       []string `yaml:"greeting" json:"greeting"`
	Identification []string `yaml:"identification" json:"identification"`
	Prohibited     []string `yaml:"prohibited" json:"prohibited"`
	Closing        []string `yaml:"closing" json:"closing"`
}

// DefaultPhrases returns the Spanish phrase lists the checker ships with.
func DefaultPhrases() Phrases {
	return Phrases{
		Greeting:       []string{"hola", "buenos días", "buenas tardes", "buenas noches", "bienvenido"},
		Identification: []string{"nombre", "con quién", "con quien", "identificarse", "quién es", "quien es"},
		Prohibited:     []string{"inútil", "tonto", "estúpido", "idiota", "molesto", "incompetente"},
		Closing:        []string{"gracias", "adiós", "hasta luego", "que tenga", "buen día", "buenas tardes"},
	}
}

// Checker evaluates protocol compliance.
type Checker struct {
	greeting       []string
	identification []string
	prohibited     []string
	closing        []string
}

// NewChecker folds and dedupes every phrase list once.
func NewChecker(p Phrases) *Checker {
	return &Checker{
		greeting:       foldAll(p.Greeting),
		identification: foldAll(p.Identification),
		prohibited:     foldAll(p.Prohibited),
		closing:        foldAll(p.Closing),
	}
}

// Check evaluates the tokens of one speaker. Only the agent is bound by the
// protocol; any other speaker yields nil.
//
// Matching is substring containment over the words joined by single spaces,
// so "hola" also matches inside "holanda".
func (c *Checker) Check(speaker model.Speaker, tokens []model.Token) *model.ProtocolReport {
	if speaker != model.SpeakerAgent {
		return nil
	}

	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Word
	}
	text := strings.Join(words, " ")

	prohibited := model.StatusNoneDetected
	if found := matches(text, c.prohibited); len(found) > 0 {
		prohibited = model.DetectedStatus(found)
	}

	return &model.ProtocolReport{Results: []model.PhaseResult{
		{Phase: model.PhaseGreeting, Status: presence(text, c.greeting)},
		{Phase: model.PhaseIdentification, Status: presence(text, c.identification)},
		{Phase: model.PhaseProhibited, Status: prohibited},
		{Phase: model.PhaseClosing, Status: presence(text, c.closing)},
	}}
}

func presence(text string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return model.StatusOK
		}
	}
	return model.StatusMissing
}

func matches(text string, phrases []string) []string {
	var found []string
	for _, p := range phrases {
		if strings.Contains(text, p) {
			found = append(found, p)
		}
	}
	return found
}

func foldAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		f := lexicon.Fold(p)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
