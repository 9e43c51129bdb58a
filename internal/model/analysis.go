package model

// Analysis is the outcome of processing one conversation.
//
// Agent, Customer and Overall are nil when the corresponding token stream is
// empty. Protocol is nil when the agent said nothing that could be tokenized.
type Analysis struct {
	RunID       string          `json:"run_id"`
	Turns       []Turn          `json:"turns"`
	Agent       *Verdict        `json:"agent_sentiment,omitempty"`
	Customer    *Verdict        `json:"customer_sentiment,omitempty"`
	Overall     *Verdict        `json:"overall_sentiment,omitempty"`
	Protocol    *ProtocolReport `json:"protocol,omitempty"`
	Corrections []Correction    `json:"corrections"`
	Unresolved  []string        `json:"unresolved"`
}

// Tokens returns the concatenated tokens of every turn by the given speaker,
// in transcript order.
func (a *Analysis) Tokens(speaker Speaker) []Token {
	var out []Token
	for _, t := range a.Turns {
		if t.Speaker == speaker {
			out = append(out, t.Tokens...)
		}
	}
	return out
}

// AllTokens returns every token in transcript order.
func (a *Analysis) AllTokens() []Token {
	var out []Token
	for _, t := range a.Turns {
		out = append(out, t.Tokens...)
	}
	return out
}
