package contracts

// TechnicalSignals summarizes indicator votes into a directional strength
// ⭐ SSOT: 기술적 분석 → 합성기 전달
type TechnicalSignals struct {
	BuySignals     int      `json:"buy_signals"`
	SellSignals    int      `json:"sell_signals"`
	NeutralSignals int      `json:"neutral_signals"`
	SignalStrength float64  `json:"signal_strength"` // -100 ~ +100
	Reasoning      []string `json:"reasoning"`
}

// Total returns the number of tallied votes
func (t TechnicalSignals) Total() int {
	return t.BuySignals + t.SellSignals + t.NeutralSignals
}

// Strength computes (buy-sell)/total*100, 0 when nothing was tallied
func (t TechnicalSignals) Strength() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.BuySignals-t.SellSignals) / float64(total) * 100
}

// TopReasons returns at most n rationale strings
func (t TechnicalSignals) TopReasons(n int) []string {
	if len(t.Reasoning) <= n {
		return t.Reasoning
	}
	return t.Reasoning[:n]
}

// TechnicalAnalysis bundles indicators with the signals derived from them
type TechnicalAnalysis struct {
	Indicators IndicatorSet     `json:"indicators"`
	Signals    TechnicalSignals `json:"signals"`
}
