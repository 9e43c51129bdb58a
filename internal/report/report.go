// Package report renders an Analysis as the plain-text conversation report.
package report

import (
	"fmt"
	"strings"

	"github.com/roach88/callcheck/internal/model"
)

// Title is the first line of every report.
const Title = "=== CONVERSATION ANALYSIS REPORT ==="

// Build renders a. Sections whose data is absent are left out: a speaker with
// no tokens has no sentiment section, and the protocol check only appears
// when the agent said something.
func Build(a *model.Analysis) string {
	var sections []string

	header := Title + "\n"
	if a.RunID != "" {
		header += "Run: " + a.RunID + "\n"
	}
	sections = append(sections, header)

	if a.Overall != nil {
		sections = append(sections, sentimentSection("OVERALL SENTIMENT", a.Overall))
	}
	if a.Agent != nil {
		sections = append(sections, sentimentSection("AGENT SENTIMENT", a.Agent))
	}
	if a.Customer != nil {
		sections = append(sections, sentimentSection("CUSTOMER SENTIMENT", a.Customer))
	}
	if a.Protocol != nil {
		sections = append(sections, protocolSection(a.Protocol))
	}
	if len(a.Corrections) > 0 {
		sections = append(sections, correctionsSection(a.Corrections))
	}
	if len(a.Unresolved) > 0 {
		sections = append(sections, "UNRESOLVED WORDS: "+strings.Join(a.Unresolved, ", ")+"\n")
	}

	return strings.Join(sections, "\n")
}

func sentimentSection(title string, v *model.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	fmt.Fprintf(&b, "Label: %s (%d)\n", v.Label, v.TotalScore)
	fmt.Fprintf(&b, "Positive words: %d\n", v.PositiveCount)
	if v.TopPositive != nil {
		fmt.Fprintf(&b, "Most positive word: %s, %s\n", v.TopPositive.Word, model.SignedWeight(v.TopPositive.Weight))
	}
	fmt.Fprintf(&b, "Negative words: %d\n", v.NegativeCount)
	if v.TopNegative != nil {
		fmt.Fprintf(&b, "Most negative word: %s, %d\n", v.TopNegative.Word, v.TopNegative.Weight)
	}
	return b.String()
}

func protocolSection(r *model.ProtocolReport) string {
	var b strings.Builder
	b.WriteString("SERVICE PROTOCOL CHECK:\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%s: %s\n", res.Phase, res.Status)
	}
	return b.String()
}

func correctionsSection(cs []model.Correction) string {
	var b strings.Builder
	b.WriteString("CORRECTIONS:\n")
	for _, c := range cs {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
