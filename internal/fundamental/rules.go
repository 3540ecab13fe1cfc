package fundamental

import (
	"fmt"

	"github.com/wonny/swingtrader/internal/contracts"
)

// band is the outcome of scoring one metric
type band struct {
	points   float64
	note     string
	strength bool // note goes to strengths, otherwise weaknesses
}

// metricRule scores one ratio
type metricRule struct {
	key       string
	maxPoints float64
	extract   func(r contracts.FundamentalRatios) *float64
	scale     func(v float64) float64
	score     func(v float64) band
	good      func(v float64) bool
}

func percent(v float64) float64 { return v * 100 }

// yields above 1 are already reported as a percentage
func yieldPercent(v float64) float64 {
	if v < 1 {
		return v * 100
	}
	return v
}

func strong(points float64, note string) band { return band{points: points, note: note, strength: true} }
func weak(points float64, note string) band   { return band{points: points, note: note} }
func silent(points float64) band              { return band{points: points} }

// defaultRules is the scoring table, evaluated in order
var defaultRules = []metricRule{
	{
		key:       "pe_ratio",
		maxPoints: 15,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.PERatio },
		score: func(v float64) band {
			switch {
			case v >= 10 && v <= 25:
				return strong(15, "Reasonable P/E ratio")
			case v < 10:
				return strong(10, "Low P/E ratio (potentially undervalued)")
			case v > 25 && v <= 35:
				return weak(8, "High P/E ratio")
			default:
				return weak(3, "Very high P/E ratio")
			}
		},
		good: func(v float64) bool { return v >= 10 && v <= 25 },
	},
	{
		key:       "pb_ratio",
		maxPoints: 10,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.PBRatio },
		score: func(v float64) band {
			switch {
			case v >= 1 && v <= 3:
				return strong(10, "Reasonable P/B ratio")
			case v < 1:
				return strong(8, "Low P/B ratio (potentially undervalued)")
			case v > 3 && v <= 5:
				return weak(5, "High P/B ratio")
			default:
				return weak(2, "Very high P/B ratio")
			}
		},
		good: func(v float64) bool { return v >= 1 && v <= 3 },
	},
	{
		key:       "debt_to_equity",
		maxPoints: 15,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.DebtToEquity },
		score: func(v float64) band {
			switch {
			case v < 1:
				return strong(15, "Low debt-to-equity ratio (strong financial position)")
			case v < 2:
				return strong(12, "Moderate debt-to-equity ratio")
			case v < 3:
				return weak(7, "High debt-to-equity ratio")
			default:
				return weak(2, "Very high debt-to-equity ratio (high risk)")
			}
		},
		good: func(v float64) bool { return v < 2 },
	},
	{
		key:       "roe",
		maxPoints: 15,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.ROE },
		scale:     percent,
		score: func(v float64) band {
			switch {
			case v > 15:
				return strong(15, fmt.Sprintf("Strong ROE (%.2f%%)", v))
			case v > 10:
				return strong(12, fmt.Sprintf("Good ROE (%.2f%%)", v))
			case v > 5:
				return weak(8, fmt.Sprintf("Moderate ROE (%.2f%%)", v))
			default:
				return weak(3, fmt.Sprintf("Low ROE (%.2f%%)", v))
			}
		},
		good: func(v float64) bool { return v > 10 },
	},
	{
		key:       "roa",
		maxPoints: 10,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.ROA },
		scale:     percent,
		score: func(v float64) band {
			switch {
			case v > 5:
				return strong(10, fmt.Sprintf("Strong ROA (%.2f%%)", v))
			case v > 3:
				return strong(8, fmt.Sprintf("Good ROA (%.2f%%)", v))
			default:
				return weak(4, fmt.Sprintf("Low ROA (%.2f%%)", v))
			}
		},
		// status follows ROA itself, not ROE
		good: func(v float64) bool { return v > 3 },
	},
	{
		key:       "profit_margin",
		maxPoints: 10,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.ProfitMargin },
		scale:     percent,
		score: func(v float64) band {
			switch {
			case v > 15:
				return strong(10, fmt.Sprintf("High profit margin (%.2f%%)", v))
			case v > 10:
				return strong(8, fmt.Sprintf("Good profit margin (%.2f%%)", v))
			case v > 5:
				return weak(5, fmt.Sprintf("Moderate profit margin (%.2f%%)", v))
			default:
				return weak(2, fmt.Sprintf("Low profit margin (%.2f%%)", v))
			}
		},
		good: func(v float64) bool { return v > 10 },
	},
	{
		key:       "revenue_growth",
		maxPoints: 10,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.RevenueGrowth },
		scale:     percent,
		score:     growthBands("revenue", 15),
		good:      func(v float64) bool { return v > 10 },
	},
	{
		key:       "earnings_growth",
		maxPoints: 10,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.EarningsGrowth },
		scale:     percent,
		score:     growthBands("earnings", 20),
		good:      func(v float64) bool { return v > 10 },
	},
	{
		key:       "current_ratio",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.CurrentRatio },
		score: func(v float64) band {
			switch {
			case v > 2:
				return strong(5, "Strong liquidity (high current ratio)")
			case v > 1:
				return strong(4, "Adequate liquidity")
			default:
				return weak(1, "Low current ratio (liquidity concerns)")
			}
		},
		good: func(v float64) bool { return v > 1 },
	},
	{
		key:       "quick_ratio",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.QuickRatio },
		score: func(v float64) band {
			switch {
			case v > 1.5:
				return strong(5, "Strong quick ratio (good short-term liquidity)")
			case v > 1:
				return strong(4, "Adequate quick ratio")
			default:
				return weak(2, "Low quick ratio")
			}
		},
		good: func(v float64) bool { return v > 1 },
	},
	{
		key:       "peg_ratio",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.PEGRatio },
		score: func(v float64) band {
			switch {
			case v > 0 && v < 1:
				return strong(5, "Low PEG ratio (potentially undervalued)")
			case v >= 1 && v <= 2:
				return strong(4, "Reasonable PEG ratio")
			case v > 2:
				return weak(2, "High PEG ratio")
			default:
				return silent(1)
			}
		},
		good: func(v float64) bool { return v > 0 && v < 2 },
	},
	{
		key:       "operating_margin",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.OperatingMargin },
		scale:     percent,
		score: func(v float64) band {
			switch {
			case v > 20:
				return strong(5, fmt.Sprintf("High operating margin (%.2f%%)", v))
			case v > 15:
				return strong(4, fmt.Sprintf("Good operating margin (%.2f%%)", v))
			case v > 10:
				return weak(3, fmt.Sprintf("Moderate operating margin (%.2f%%)", v))
			default:
				return weak(1, fmt.Sprintf("Low operating margin (%.2f%%)", v))
			}
		},
		good: func(v float64) bool { return v > 15 },
	},
	{
		key:       "dividend_yield",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.DividendYield },
		scale:     yieldPercent,
		score: func(v float64) band {
			switch {
			case v > 3:
				return strong(5, fmt.Sprintf("Good dividend yield (%.2f%%)", v))
			case v > 1.5:
				return strong(4, fmt.Sprintf("Moderate dividend yield (%.2f%%)", v))
			case v > 0:
				return weak(2, fmt.Sprintf("Low dividend yield (%.2f%%)", v))
			default:
				return silent(0)
			}
		},
		good: func(v float64) bool { return v > 1.5 },
	},
	{
		key:       "beta",
		maxPoints: 5,
		extract:   func(r contracts.FundamentalRatios) *float64 { return r.Beta },
		score: func(v float64) band {
			switch {
			case v >= 0.8 && v <= 1.2:
				return strong(5, "Moderate volatility (beta close to market)")
			case v < 0.8:
				return strong(4, "Low volatility (defensive stock)")
			case v > 1.5:
				return weak(2, "High volatility (aggressive stock)")
			default:
				return silent(3)
			}
		},
		good: func(v float64) bool { return v >= 0.8 && v <= 1.2 },
	},
}

// growthBands shares the revenue/earnings growth table; only the top cut differs
func growthBands(what string, top float64) func(v float64) band {
	return func(v float64) band {
		switch {
		case v > top:
			return strong(10, fmt.Sprintf("Strong %s growth (%.2f%%)", what, v))
		case v > 10:
			return strong(8, fmt.Sprintf("Good %s growth (%.2f%%)", what, v))
		case v > 5:
			return weak(5, fmt.Sprintf("Moderate %s growth (%.2f%%)", what, v))
		default:
			return weak(2, fmt.Sprintf("Low/negative %s growth (%.2f%%)", what, v))
		}
	}
}
