// Package sentiment reduces a token stream to a polarity verdict.
package sentiment

import "github.com/roach88/callcheck/internal/model"

// Analyze computes the verdict for tokens.
//
// The label follows the sign of the summed weights. Ties for the strongest
// positive or negative word go to the first one in scan order.
func Analyze(tokens []model.Token) model.Verdict {
	var v model.Verdict

	for _, t := range tokens {
		v.TotalScore += t.Weight
		switch {
		case t.Weight > 0:
			v.PositiveCount++
			if v.TopPositive == nil || t.Weight > v.TopPositive.Weight {
				v.TopPositive = &model.WordScore{Word: t.Word, Weight: t.Weight}
			}
		case t.Weight < 0:
			v.NegativeCount++
			if v.TopNegative == nil || t.Weight < v.TopNegative.Weight {
				v.TopNegative = &model.WordScore{Word: t.Word, Weight: t.Weight}
			}
		}
	}

	v.Label = LabelFor(v.TotalScore)
	return v
}

// LabelFor maps a total score to its label.
func LabelFor(score int) model.Label {
	switch {
	case score > 0:
		return model.LabelPositive
	case score < 0:
		return model.LabelNegative
	default:
		return model.LabelNeutral
	}
}
