package contracts

// Action is the trading decision
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel classifies how many risk factors fired
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ScoreBreakdown is each analysis' weighted contribution
type ScoreBreakdown struct {
	Technical   float64 `json:"technical_contribution"`
	Fundamental float64 `json:"fundamental_contribution"`
	Sentiment   float64 `json:"sentiment_contribution"`
}

// Recommendation is the synthesized swing-trading decision
// ⭐ SSOT: 최종 추천 결과
type Recommendation struct {
	Symbol           string         `json:"symbol,omitempty"`
	Action           Action         `json:"action"`
	Confidence       float64        `json:"confidence"` // 0 ~ 100
	TargetPrice      float64        `json:"target_price,omitempty"`
	StopLoss         float64        `json:"stop_loss,omitempty"`
	RiskLevel        RiskLevel      `json:"risk_level,omitempty"`
	Reasoning        string         `json:"reasoning,omitempty"`
	PositionSize     string         `json:"position_size,omitempty"`
	TimeHorizonWeeks int            `json:"time_horizon_weeks,omitempty"`
	WeightedScore    float64        `json:"weighted_score"`
	ScoreBreakdown   ScoreBreakdown `json:"score_breakdown"`
	Error            string         `json:"error,omitempty"`
}

// Failed reports whether synthesis degraded to the safe HOLD
func (r Recommendation) Failed() bool {
	return r.Error != ""
}

// IsActionable reports whether the recommendation is a BUY or SELL
func (r Recommendation) IsActionable() bool {
	return !r.Failed() && (r.Action == ActionBuy || r.Action == ActionSell)
}
