package fundamental

import (
	"fmt"
	"math"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/logger"
)

const (
	// MaxScore is the normalized ceiling
	MaxScore = 100.0

	// NeutralScore is reported when no ratio was available
	NeutralScore = 50.0

	strongCutoff   = 70.0
	moderateCutoff = 50.0
)

// Scorer turns raw ratios into a 0-100 quality score
// ⭐ SSOT: 펀더멘털 점수 계산은 여기서만
type Scorer struct {
	rules  []metricRule
	logger *logger.Logger
}

// NewScorer creates a scorer with the standard metric table
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{
		rules:  defaultRules,
		logger: log,
	}
}

// Score folds every present ratio into the assessment.
// Absent ratios add to neither the score nor the denominator.
func (s *Scorer) Score(ratios contracts.FundamentalRatios) (result contracts.FundamentalAssessment) {
	// stays neutral if a failure hits before any ratio is scored
	result = contracts.FundamentalAssessment{
		Score:             NeutralScore,
		MaxScore:          MaxScore,
		Metrics:           make(map[string]contracts.FundamentalMetricRecord),
		Strengths:         []string{},
		Weaknesses:        []string{},
		OverallAssessment: contracts.AssessmentNeutral,
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Fundamental scoring failed")
			result.OverallAssessment = contracts.AssessmentError
		}
	}()

	var score, maxPossible float64

	for _, rule := range s.rules {
		raw := rule.extract(ratios)
		if raw == nil {
			continue
		}

		v := *raw
		if rule.scale != nil {
			v = rule.scale(v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.logger.WithFields(map[string]interface{}{
				"metric": rule.key,
				"value":  *raw,
			}).Error("Non-finite fundamental ratio")
			result.OverallAssessment = contracts.AssessmentError
			return result
		}

		b := rule.score(v)
		score += b.points
		maxPossible += rule.maxPoints
		result.MetricsPresent++

		if b.note != "" {
			if b.strength {
				result.Strengths = append(result.Strengths, b.note)
			} else {
				result.Weaknesses = append(result.Weaknesses, b.note)
			}
		}

		status := contracts.StatusCaution
		if rule.good(v) {
			status = contracts.StatusGood
		}
		result.Metrics[rule.key] = contracts.FundamentalMetricRecord{Value: v, Status: status}

		// running value, kept if a later rule fails
		result.Score = score / maxPossible * MaxScore
	}

	if maxPossible == 0 {
		result.Score = NeutralScore
		result.OverallAssessment = contracts.AssessmentNeutral
		return result
	}

	result.Score = score / maxPossible * MaxScore
	result.OverallAssessment = Assess(result.Score)

	s.logger.WithFields(map[string]interface{}{
		"score":      fmt.Sprintf("%.2f", result.Score),
		"metrics":    result.MetricsPresent,
		"assessment": result.OverallAssessment,
	}).Debug("Scored fundamentals")

	return result
}

// Assess maps a normalized score to its verdict
func Assess(score float64) contracts.Assessment {
	switch {
	case score >= strongCutoff:
		return contracts.AssessmentStrong
	case score >= moderateCutoff:
		return contracts.AssessmentModerate
	default:
		return contracts.AssessmentWeak
	}
}
