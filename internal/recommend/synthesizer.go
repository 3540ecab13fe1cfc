package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/risk"
	"github.com/wonny/swingtrader/pkg/logger"
)

const (
	// MinTargetHistory is the bar count needed for volatility-scaled targets
	MinTargetHistory = 21

	weeksPerYear = 52.0
)

// Input is everything the synthesizer blends
type Input struct {
	Symbol           string
	CurrentPrice     float64
	TimeHorizonWeeks int
	Technical        contracts.TechnicalSignals
	Indicators       contracts.IndicatorSet
	Fundamental      contracts.FundamentalAssessment
	Sentiment        contracts.SentimentAggregate
	History          []contracts.PriceBar
}

// Synthesizer produces the final recommendation
// ⭐ SSOT: 매수/매도/보유 결정은 여기서만 (순수 함수, 네트워크 없음)
type Synthesizer struct {
	weights    Weights
	thresholds Thresholds
	logger     *logger.Logger

	// stageHook runs before each step; tests use it to inject failures
	stageHook func(stage string)
}

// NewSynthesizer creates a synthesizer with the default weights
func NewSynthesizer(log *logger.Logger) *Synthesizer {
	return NewSynthesizerWith(DefaultWeights(), DefaultThresholds(), log)
}

// NewSynthesizerWith creates a synthesizer with custom weights and thresholds
func NewSynthesizerWith(w Weights, th Thresholds, log *logger.Logger) *Synthesizer {
	return &Synthesizer{
		weights:    w,
		thresholds: th,
		logger:     log,
		stageHook:  func(string) {},
	}
}

// Synthesize blends the analyses into a recommendation.
// It never panics: any failure degrades to HOLD with zero confidence.
func (s *Synthesizer) Synthesize(in Input) (rec contracts.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			rec = s.failed(in, fmt.Errorf("%v", r))
		}
	}()

	s.stageHook("score")
	breakdown := s.contributions(in)
	ws := breakdown.Technical + breakdown.Fundamental + breakdown.Sentiment
	if math.IsNaN(ws) || math.IsInf(ws, 0) {
		return s.failed(in, fmt.Errorf("non-finite weighted score"))
	}
	if math.IsNaN(in.CurrentPrice) || math.IsInf(in.CurrentPrice, 0) {
		return s.failed(in, fmt.Errorf("non-finite current price"))
	}

	s.stageHook("decision")
	action, confidence := s.decide(ws)

	target, stop := s.priceTargets(in.CurrentPrice, ws, in.TimeHorizonWeeks, in.History)
	level := s.assessRisk(in)

	s.stageHook("reasoning")
	reasoning := s.reasoning(in, ws)

	rec = contracts.Recommendation{
		Symbol:           in.Symbol,
		Action:           action,
		Confidence:       round(confidence, 1),
		TargetPrice:      round(target, 2),
		StopLoss:         round(stop, 2),
		RiskLevel:        level,
		Reasoning:        reasoning,
		PositionSize:     s.positionSize(confidence, level),
		TimeHorizonWeeks: in.TimeHorizonWeeks,
		WeightedScore:    round(ws, 2),
		ScoreBreakdown: contracts.ScoreBreakdown{
			Technical:   round(breakdown.Technical, 2),
			Fundamental: round(breakdown.Fundamental, 2),
			Sentiment:   round(breakdown.Sentiment, 2),
		},
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol":     in.Symbol,
		"action":     rec.Action,
		"confidence": rec.Confidence,
		"score":      rec.WeightedScore,
		"risk":       rec.RiskLevel,
	}).Info("Recommendation generated")

	return rec
}

func (s *Synthesizer) failed(in Input, err error) contracts.Recommendation {
	s.logger.WithError(err).WithField("symbol", in.Symbol).Error("Error generating recommendation")
	return contracts.Recommendation{
		Symbol:     in.Symbol,
		Action:     contracts.ActionHold,
		Confidence: 0,
		Error:      err.Error(),
	}
}

// contributions returns each analysis' weighted share, unrounded
func (s *Synthesizer) contributions(in Input) contracts.ScoreBreakdown {
	w := s.weights
	return contracts.ScoreBreakdown{
		Technical:   in.Technical.SignalStrength * w.Technical,
		Fundamental: (in.Fundamental.Score - 50) * w.FundamentalDamping * w.Fundamental,
		Sentiment:   in.Sentiment.Overall * 100 * w.Sentiment,
	}
}

// decide maps the weighted score to an action; both thresholds are inclusive
func (s *Synthesizer) decide(ws float64) (contracts.Action, float64) {
	switch {
	case ws >= s.thresholds.Buy:
		return contracts.ActionBuy, math.Min(95, 50+math.Abs(ws)*0.9)
	case ws <= s.thresholds.Sell:
		return contracts.ActionSell, math.Min(95, 50+math.Abs(ws)*0.9)
	default:
		return contracts.ActionHold, math.Max(30, 50-math.Abs(ws)*0.5)
	}
}

// priceTargets scales the expected move by annualized volatility when
// enough history exists, otherwise uses fixed bands.
func (s *Synthesizer) priceTargets(price, ws float64, weeks int, history []contracts.PriceBar) (target, stop float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Error calculating price targets")
			target, stop = price*1.05, price*0.97
		}
	}()

	s.stageHook("targets")

	if len(history) < MinTargetHistory {
		switch {
		case ws > 0:
			return price * 1.05, price * 0.97
		case ws < 0:
			return price * 0.95, price * 1.03
		default:
			return price, price * 0.98
		}
	}

	vol, ok := risk.AnnualizedVolatility(risk.PctReturns(contracts.Closes(history)))
	if !ok {
		panic("not enough returns for volatility")
	}

	change := ws / 100 * vol * (float64(weeks) / weeksPerYear) * 2
	target = price * (1 + change)
	if math.IsNaN(target) || math.IsInf(target, 0) {
		panic("non-finite target price")
	}

	if ws > 0 {
		stop = price * 0.97
	} else {
		stop = price * 1.03
	}
	return target, stop
}

// assessRisk counts independent risk factors; a failure reads as MEDIUM
func (s *Synthesizer) assessRisk(in Input) (level contracts.RiskLevel) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Error assessing risk")
			level = contracts.RiskMedium
		}
	}()

	s.stageHook("risk")

	factors := 0

	if ratio, ok := in.Indicators.VolatilityRatio(); ok && ratio > s.thresholds.HighATRRatio {
		factors++
	}
	if in.Fundamental.Score < s.thresholds.WeakFundamental {
		factors++
	}
	// extreme sentiment tends to reverse
	if math.Abs(in.Sentiment.Overall) > s.thresholds.ExtremeSentiment {
		factors++
	}
	if daily, ok := risk.DailyVolatility(risk.PctReturns(contracts.Closes(in.History))); ok && daily > s.thresholds.HighDailyVolatile {
		factors++
	}

	switch {
	case factors >= 3:
		return contracts.RiskHigh
	case factors >= 2:
		return contracts.RiskMedium
	default:
		return contracts.RiskLow
	}
}

func (s *Synthesizer) reasoning(in Input, ws float64) string {
	parts := make([]string, 0, 4)

	if reasons := in.Technical.TopReasons(3); len(reasons) > 0 {
		parts = append(parts, "Technical: "+strings.Join(reasons, ", "))
	}

	assessment := in.Fundamental.OverallAssessment
	if assessment == "" {
		assessment = contracts.AssessmentNeutral
	}
	parts = append(parts, fmt.Sprintf("Fundamental: %s assessment", assessment))
	parts = append(parts, fmt.Sprintf("Sentiment: %s", in.Sentiment.LabelOrNeutral()))

	switch {
	case ws > s.thresholds.Buy:
		parts = append(parts, "Strong bullish signals across all analyses")
	case ws < s.thresholds.Sell:
		parts = append(parts, "Strong bearish signals across all analyses")
	default:
		parts = append(parts, "Mixed signals, suggesting cautious approach")
	}

	return strings.Join(parts, ". ") + "."
}

func (s *Synthesizer) positionSize(confidence float64, level contracts.RiskLevel) string {
	confident := confidence > s.thresholds.ConfidentAbove

	switch level {
	case contracts.RiskHigh:
		if confident {
			return "Small position (1-2% of portfolio)"
		}
		return "Very small position (<1% of portfolio)"
	case contracts.RiskMedium:
		if confident {
			return "Moderate position (2-3% of portfolio)"
		}
		return "Small position (1-2% of portfolio)"
	default:
		if confident {
			return "Normal position (3-5% of portfolio)"
		}
		return "Moderate position (2-3% of portfolio)"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
