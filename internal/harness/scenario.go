package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/oracle"
)

// Scenario defines one conversation and what its analysis must show.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Lexicon, when present, is the complete starting lexicon. When absent
	// the default seed is applied.
	Lexicon []lexicon.Entry `yaml:"lexicon,omitempty"`

	// Transcript is the labelled conversation text.
	Transcript string `yaml:"transcript"`

	// Answers script the oracle, keyed by unknown word.
	Answers map[string]oracle.Answer `yaml:"answers,omitempty"`

	// AnswerDefault applies to unknown words not listed in Answers.
	AnswerDefault string `yaml:"answer_default,omitempty"`

	// Assertions validate the analysis and the final lexicon.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is stamped on the analysis. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// Assertion validates one aspect of a scenario run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "sentiment": verdict of a speaker (agent, customer, overall)
	// - "protocol": status of one protocol phase
	// - "correction": a correction was recorded
	// - "token": the token at an index of a speaker's stream
	// - "lexicon": an entry exists in the lexicon after the run
	// - "unresolved": the exact list of unresolved words
	Type string `yaml:"type"`

	// Speaker selects the token stream (sentiment, token).
	Speaker string `yaml:"speaker,omitempty"`

	// Label and Score are the expected verdict (sentiment). Either may be omitted.
	Label string `yaml:"label,omitempty"`
	Score *int   `yaml:"score,omitempty"`

	// Phase and Status are the expected protocol result (protocol).
	Phase  string `yaml:"phase,omitempty"`
	Status string `yaml:"status,omitempty"`

	// Original and Resolved identify a correction (correction).
	Original string `yaml:"original,omitempty"`
	Resolved string `yaml:"resolved,omitempty"`

	// Index is the 0-based position in the speaker's stream (token).
	Index *int `yaml:"index,omitempty"`

	// Word, Lexeme, Category and Weight are subset-matched (token, lexicon).
	Word     string `yaml:"word,omitempty"`
	Lexeme   string `yaml:"lexeme,omitempty"`
	Category string `yaml:"category,omitempty"`
	Weight   *int   `yaml:"weight,omitempty"`

	// Words is the expected unresolved list (unresolved).
	Words []string `yaml:"words,omitempty"`
}

// Assertion type constants.
const (
	AssertSentiment  = "sentiment"
	AssertProtocol   = "protocol"
	AssertCorrection = "correction"
	AssertToken      = "token"
	AssertLexicon    = "lexicon"
	AssertUnresolved = "unresolved"
)

// Speaker selectors. SpeakerOverall selects every token.
const SpeakerOverall = "overall"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(s.Transcript) == "" {
		return fmt.Errorf("transcript is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, e := range s.Lexicon {
		if e.Lexeme == "" || e.Category == "" {
			return fmt.Errorf("lexicon[%d]: lexeme and category are required", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertSentiment:
		if !validSpeaker(a.Speaker) {
			return fmt.Errorf("assertions[%d]: speaker must be agent, customer or overall for sentiment", index)
		}
		if a.Label == "" && a.Score == nil {
			return fmt.Errorf("assertions[%d]: label or score is required for sentiment", index)
		}
	case AssertProtocol:
		if !validPhase(a.Phase) {
			return fmt.Errorf("assertions[%d]: unknown phase %q", index, a.Phase)
		}
		if a.Status == "" {
			return fmt.Errorf("assertions[%d]: status is required for protocol", index)
		}
	case AssertCorrection:
		if a.Original == "" || a.Resolved == "" {
			return fmt.Errorf("assertions[%d]: original and resolved are required for correction", index)
		}
	case AssertToken:
		if !validSpeaker(a.Speaker) {
			return fmt.Errorf("assertions[%d]: speaker must be agent, customer or overall for token", index)
		}
		if a.Index == nil || *a.Index < 0 {
			return fmt.Errorf("assertions[%d]: non-negative index is required for token", index)
		}
	case AssertLexicon:
		if a.Lexeme == "" {
			return fmt.Errorf("assertions[%d]: lexeme is required for lexicon", index)
		}
	case AssertUnresolved:
		// An empty list asserts that everything resolved.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func validSpeaker(s string) bool {
	switch s {
	case string(model.SpeakerAgent), string(model.SpeakerCustomer), SpeakerOverall:
		return true
	}
	return false
}

func validPhase(p string) bool {
	for _, phase := range model.Phases {
		if p == phase {
			return true
		}
	}
	return false
}
