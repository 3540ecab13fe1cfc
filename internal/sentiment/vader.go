package sentiment

import (
	"github.com/jonreiter/govader"
)

// VaderEstimator scores text with the VADER lexicon and rules
// (boosters, negation, caps emphasis, "but" shifts, punctuation).
// Output is the normalized compound score in [-1, 1].
type VaderEstimator struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderEstimator loads the VADER lexicon.
// The analyzer is read-only after construction, so one estimator can be shared.
func NewVaderEstimator() *VaderEstimator {
	return &VaderEstimator{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the VADER compound score of text
func (e *VaderEstimator) Polarity(text string) float64 {
	if text == "" {
		return 0
	}
	return e.analyzer.PolarityScores(text).Compound
}
