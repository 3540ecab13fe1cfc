package risk

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily statistics
const TradingDaysPerYear = 252

// PctReturns converts closes to simple daily returns (P1-P0)/P0.
// Pairs with a zero or non-finite base are dropped.
func PctReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		r := (closes[i] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		returns = append(returns, r)
	}
	return returns
}

// DailyVolatility is the sample standard deviation (n-1) of daily returns.
// Returns false with fewer than two returns.
func DailyVolatility(returns []float64) (float64, bool) {
	if len(returns) < 2 {
		return 0, false
	}
	return stat.StdDev(returns, nil), true
}

// AnnualizedVolatility scales daily volatility by √252
func AnnualizedVolatility(returns []float64) (float64, bool) {
	daily, ok := DailyVolatility(returns)
	if !ok {
		return 0, false
	}
	return daily * math.Sqrt(TradingDaysPerYear), true
}
