package risk

// VaRResult VaR 계산 결과
// ⭐ SSOT: VaR/CVaR는 손실을 양수로 표현
// - VaR=0.05 → 95% 신뢰수준에서 최대 5% 손실 가능
// - CVaR=0.07 → 5% tail에서 평균 7% 손실 예상
type VaRResult struct {
	Confidence float64 `json:"confidence"`
	VaR        float64 `json:"var"`
	CVaR       float64 `json:"cvar"`
}

// Metrics summarizes the return distribution of one symbol
type Metrics struct {
	Samples              int       `json:"samples"`
	DailyVolatility      float64   `json:"daily_volatility"`
	AnnualizedVolatility float64   `json:"annualized_volatility"`
	Historical           VaRResult `json:"historical_var_95"`
	Parametric           VaRResult `json:"parametric_var_95"`
}
