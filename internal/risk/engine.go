package risk

// Engine 리스크 엔진 (순수 계산기)
// ⭐ SSOT: 데이터 수집은 상위 레이어에서, 여기서는 순수 계산만
type Engine struct {
	confidence float64
}

// NewEngine creates an engine reporting VaR at 95%
func NewEngine() *Engine {
	return &Engine{confidence: 0.95}
}

// Assess computes volatility and VaR from a close series
func (e *Engine) Assess(closes []float64) Metrics {
	returns := PctReturns(closes)
	m := Metrics{Samples: len(returns)}

	daily, ok := DailyVolatility(returns)
	if !ok {
		return m
	}

	m.DailyVolatility = daily
	m.AnnualizedVolatility, _ = AnnualizedVolatility(returns)
	m.Historical = CalculateVaR(returns, e.confidence)
	m.Parametric = CalculateParametricVaR(daily, e.confidence)
	return m
}
