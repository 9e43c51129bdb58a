// Package transcript splits a conversation transcript into speaker turns.
package transcript

import (
	"regexp"
	"strings"

	"github.com/roach88/callcheck/internal/model"
)

// Default speaker labels.
const (
	DefaultAgentLabel    = "Agent:"
	DefaultCustomerLabel = "Customer:"
)

// Labels are the literal markers that open each turn.
type Labels struct {
	Agent    string
	Customer string
}

// DefaultLabels returns "Agent:" and "Customer:".
func DefaultLabels() Labels {
	return Labels{Agent: DefaultAgentLabel, Customer: DefaultCustomerLabel}
}

// Segment is one labelled utterance.
type Segment struct {
	Index   int
	Speaker model.Speaker
	Text    string
}

// Segmenter splits transcripts on speaker labels.
type Segmenter struct {
	labels Labels
	split  *regexp.Regexp
}

// NewSegmenter creates a Segmenter for the given labels. Empty labels fall
// back to the defaults.
func NewSegmenter(labels Labels) *Segmenter {
	if labels.Agent == "" {
		labels.Agent = DefaultAgentLabel
	}
	if labels.Customer == "" {
		labels.Customer = DefaultCustomerLabel
	}
	pattern := "(" + regexp.QuoteMeta(labels.Agent) + "|" + regexp.QuoteMeta(labels.Customer) + ")"
	return &Segmenter{labels: labels, split: regexp.MustCompile(pattern)}
}

// Segment returns the turns of text in order, and how many fragments were
// dropped as malformed.
//
// The text is cut at every label occurrence; fragments are trimmed and empty
// ones discarded. A label followed by text forms a segment. A label followed
// directly by another label, and text with no label before it, are dropped.
func (s *Segmenter) Segment(text string) ([]Segment, int) {
	var parts []string
	last := 0
	for _, loc := range s.split.FindAllStringIndex(text, -1) {
		parts = appendTrimmed(parts, text[last:loc[0]])
		parts = append(parts, text[loc[0]:loc[1]])
		last = loc[1]
	}
	parts = appendTrimmed(parts, text[last:])

	var segments []Segment
	dropped := 0
	for i := 0; i < len(parts); {
		speaker, isLabel := s.speakerFor(parts[i])
		if isLabel && i+1 < len(parts) {
			if _, nextIsLabel := s.speakerFor(parts[i+1]); !nextIsLabel {
				segments = append(segments, Segment{
					Index:   len(segments),
					Speaker: speaker,
					Text:    parts[i+1],
				})
				i += 2
				continue
			}
		}
		dropped++
		i++
	}

	return segments, dropped
}

func (s *Segmenter) speakerFor(part string) (model.Speaker, bool) {
	switch part {
	case s.labels.Agent:
		return model.SpeakerAgent, true
	case s.labels.Customer:
		return model.SpeakerCustomer, true
	}
	return "", false
}

func appendTrimmed(parts []string, p string) []string {
	if p = strings.TrimSpace(p); p != "" {
		parts = append(parts, p)
	}
	return parts
}
