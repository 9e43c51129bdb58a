package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
)

// AssertionError is returned when an assertion fails.
// It carries the rendered report to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Report   string // Full report for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Report != "" {
		fmt.Fprintf(&buf, "\nReport:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Report, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}
	return buf.String()
}

// LexiconReader is the lexicon access lexicon assertions need.
type LexiconReader interface {
	Lookup(lexeme string) (lexicon.Entry, bool)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// lex backs lexicon assertions and may be nil when there are none.
func EvaluateAssertions(result *Result, assertions []Assertion, lex LexiconReader) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSentiment:
			err = assertSentiment(result, assertion)
		case AssertProtocol:
			err = assertProtocol(result, assertion)
		case AssertCorrection:
			err = assertCorrection(result, assertion)
		case AssertToken:
			err = assertToken(result, assertion)
		case AssertUnresolved:
			err = assertUnresolved(result, assertion)
		case AssertLexicon:
			if lex == nil {
				err = fmt.Errorf("assertion[%d]: lexicon requires a lexicon", i)
			} else {
				err = assertLexicon(result, lex, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func verdictFor(a *model.Analysis, speaker string) *model.Verdict {
	switch speaker {
	case string(model.SpeakerAgent):
		return a.Agent
	case string(model.SpeakerCustomer):
		return a.Customer
	default:
		return a.Overall
	}
}

func tokensFor(a *model.Analysis, speaker string) []model.Token {
	if speaker == SpeakerOverall {
		return a.AllTokens()
	}
	return a.Tokens(model.Speaker(speaker))
}

func assertSentiment(r *Result, as Assertion) error {
	v := verdictFor(r.Analysis, as.Speaker)
	expected := describeVerdict(as.Label, as.Score)
	if v == nil {
		return &AssertionError{Type: AssertSentiment, Expected: as.Speaker + " " + expected, Actual: "no tokens", Report: r.Report}
	}
	if (as.Label != "" && string(v.Label) != as.Label) || (as.Score != nil && v.TotalScore != *as.Score) {
		return &AssertionError{
			Type:     AssertSentiment,
			Expected: as.Speaker + " " + expected,
			Actual:   fmt.Sprintf("%s %s (%d)", as.Speaker, v.Label, v.TotalScore),
			Report:   r.Report,
		}
	}
	return nil
}

func describeVerdict(label string, score *int) string {
	switch {
	case label != "" && score != nil:
		return fmt.Sprintf("%s (%d)", label, *score)
	case score != nil:
		return fmt.Sprintf("score %d", *score)
	default:
		return label
	}
}

func assertProtocol(r *Result, as Assertion) error {
	status, ok := r.Analysis.Protocol.Status(as.Phase)
	if !ok {
		return &AssertionError{Type: AssertProtocol, Expected: as.Phase + ": " + as.Status, Actual: "no protocol check (agent said nothing)", Report: r.Report}
	}
	if status != as.Status {
		return &AssertionError{Type: AssertProtocol, Expected: as.Phase + ": " + as.Status, Actual: as.Phase + ": " + status, Report: r.Report}
	}
	return nil
}

func assertCorrection(r *Result, as Assertion) error {
	for _, c := range r.Analysis.Corrections {
		if c.Original == as.Original && c.Resolved == as.Resolved {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertCorrection,
		Expected: as.Original + " -> " + as.Resolved,
		Actual:   fmt.Sprintf("%d corrections, none matching", len(r.Analysis.Corrections)),
		Report:   r.Report,
	}
}

func assertToken(r *Result, as Assertion) error {
	tokens := tokensFor(r.Analysis, as.Speaker)
	idx := *as.Index
	if idx >= len(tokens) {
		return &AssertionError{
			Type:     AssertToken,
			Expected: fmt.Sprintf("%s token at index %d", as.Speaker, idx),
			Actual:   fmt.Sprintf("only %d tokens", len(tokens)),
			Report:   r.Report,
		}
	}

	t := tokens[idx]
	if !matchEntry(t.Word, t.Category, t.Weight, as.Word, as.Category, as.Weight) {
		return &AssertionError{
			Type:     AssertToken,
			Expected: fmt.Sprintf("%s[%d] %s", as.Speaker, idx, describeEntry(as.Word, as.Category, as.Weight)),
			Actual:   fmt.Sprintf("%s[%d] %s/%s/%d", as.Speaker, idx, t.Word, t.Category, t.Weight),
			Report:   r.Report,
		}
	}
	return nil
}

func assertLexicon(r *Result, lex LexiconReader, as Assertion) error {
	e, ok := lex.Lookup(as.Lexeme)
	if !ok {
		return &AssertionError{Type: AssertLexicon, Expected: "lexeme " + as.Lexeme, Actual: "not in lexicon", Report: r.Report}
	}
	if !matchEntry(e.Lexeme, e.Category, e.Weight, "", as.Category, as.Weight) {
		return &AssertionError{
			Type:     AssertLexicon,
			Expected: describeEntry(as.Lexeme, as.Category, as.Weight),
			Actual:   fmt.Sprintf("%s/%s/%d", e.Lexeme, e.Category, e.Weight),
			Report:   r.Report,
		}
	}
	return nil
}

func assertUnresolved(r *Result, as Assertion) error {
	got := r.Analysis.Unresolved
	if len(got) == 0 && len(as.Words) == 0 {
		return nil
	}
	if !slices.Equal(got, as.Words) {
		return &AssertionError{
			Type:     AssertUnresolved,
			Expected: fmt.Sprintf("%v", as.Words),
			Actual:   fmt.Sprintf("%v", got),
			Report:   r.Report,
		}
	}
	return nil
}

// matchEntry subset-matches: empty strings and a nil weight match anything.
func matchEntry(word, category string, weight int, wantWord, wantCategory string, wantWeight *int) bool {
	if wantWord != "" && lexicon.Fold(wantWord) != word {
		return false
	}
	if wantCategory != "" && wantCategory != category {
		return false
	}
	if wantWeight != nil && *wantWeight != weight {
		return false
	}
	return true
}

func describeEntry(word, category string, weight *int) string {
	parts := []string{}
	for _, p := range []string{word, category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if weight != nil {
		parts = append(parts, fmt.Sprintf("%d", *weight))
	}
	return strings.Join(parts, "/")
}
