package sentiment

// PatternEstimator averages the polarity of known adjectives,
// scaled by a preceding intensifier and damped/flipped by negation.
type PatternEstimator struct{}

// NewPatternEstimator creates the adjective-pattern estimator
func NewPatternEstimator() *PatternEstimator {
	return &PatternEstimator{}
}

// Polarity returns the mean adjective polarity of text in [-1, 1]
func (e *PatternEstimator) Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var n int
	for i, t := range tokens {
		p, ok := polarity[t.lower]
		if !ok {
			continue
		}

		j := i - 1
		if j >= 0 {
			if m, ok := intensifiers[tokens[j].lower]; ok {
				p *= m
				j--
			}
		}
		if j >= 0 && negations[tokens[j].lower] {
			p *= -0.5
		}

		sum += clamp(p, -1, 1)
		n++
	}

	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), -1, 1)
}
