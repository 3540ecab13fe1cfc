package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// CalculateVaR 과거 수익률 기반 VaR 계산 (Historical Simulation)
// returns: 일별 수익률 배열 (양수=이익, 음수=손실)
// confidence: 신뢰수준 (예: 0.95, 0.99)
// 반환값: VaR는 손실을 양수로 표현 (예: 0.05 = 5% 손실 가능)
func CalculateVaR(returns []float64, confidence float64) VaRResult {
	if len(returns) == 0 {
		return VaRResult{Confidence: confidence}
	}

	// 수익률 정렬 (오름차순: 손실이 앞에)
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int(math.Floor((1.0 - confidence) * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	var varValue float64
	if sorted[idx] < 0 {
		varValue = -sorted[idx]
	}

	return VaRResult{
		Confidence: confidence,
		VaR:        varValue,
		CVaR:       tailLoss(sorted, idx),
	}
}

// tailLoss is the mean of sorted[0..varIdx] expressed as a positive loss
func tailLoss(sorted []float64, varIdx int) float64 {
	if len(sorted) == 0 || varIdx < 0 {
		return 0
	}

	var sum float64
	for i := 0; i <= varIdx && i < len(sorted); i++ {
		sum += sorted[i]
	}

	avg := sum / float64(varIdx+1)
	if avg < 0 {
		return -avg
	}
	return 0
}

// CalculateParametricVaR 정규분포 가정 VaR 계산
func CalculateParametricVaR(stdDev, confidence float64) VaRResult {
	if confidence <= 0 || confidence >= 1 {
		return VaRResult{Confidence: confidence}
	}

	z := distuv.UnitNormal.Quantile(confidence)

	varValue := z * stdDev
	if varValue < 0 {
		varValue = 0
	}

	// CVaR = σ·φ(z)/(1-c)
	cvar := stdDev * distuv.UnitNormal.Prob(z) / (1 - confidence)

	return VaRResult{
		Confidence: confidence,
		VaR:        varValue,
		CVaR:       cvar,
	}
}
