package model

import "strings"

// Phase names, in the order they are checked and reported.
const (
	PhaseGreeting       = "Greeting"
	PhaseIdentification = "Customer identification"
	PhaseProhibited     = "Prohibited language"
	PhaseClosing        = "Courteous closing"
)

// Phase statuses.
const (
	StatusOK           = "OK"
	StatusMissing      = "Missing"
	StatusNoneDetected = "None detected"
	detectedPrefix     = "Detected: "
)

// Phases lists every protocol phase in report order.
var Phases = []string{PhaseGreeting, PhaseIdentification, PhaseProhibited, PhaseClosing}

// DetectedStatus formats the prohibited-language status for the given phrases.
func DetectedStatus(phrases []string) string {
	return detectedPrefix + strings.Join(phrases, ", ")
}

// PhaseResult is the status of one protocol phase.
type PhaseResult struct {
	Phase  string `json:"phase"`
	Status string `json:"status"`
}

// ProtocolReport holds one result per protocol phase, in Phases order.
type ProtocolReport struct {
	Results []PhaseResult `json:"results"`
}

// Status returns the status recorded for phase and whether it was present.
func (r *ProtocolReport) Status(phase string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, res := range r.Results {
		if res.Phase == phase {
			return res.Status, true
		}
	}
	return "", false
}

// Passed reports whether every phase is in its good state: greeting,
// identification and closing OK and no prohibited language.
func (r *ProtocolReport) Passed() bool {
	if r == nil {
		return false
	}
	for _, res := range r.Results {
		if res.Status != StatusOK && res.Status != StatusNoneDetected {
			return false
		}
	}
	return true
}
