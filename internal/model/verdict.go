package model

// Label is the overall polarity of a token stream.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// WordScore pairs a word with its sentiment weight.
type WordScore struct {
	Word   string `json:"word"`
	Weight int    `json:"weight"`
}

// Verdict is the sentiment summary of a token stream.
//
// TopPositive and TopNegative are nil when the stream holds no token of that
// polarity.
type Verdict struct {
	Label         Label      `json:"label"`
	TotalScore    int        `json:"total_score"`
	PositiveCount int        `json:"positive_count"`
	NegativeCount int        `json:"negative_count"`
	TopPositive   *WordScore `json:"top_positive,omitempty"`
	TopNegative   *WordScore `json:"top_negative,omitempty"`
}
