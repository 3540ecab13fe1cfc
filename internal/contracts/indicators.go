package contracts

// Trend is the price-vs-moving-average trend label
type Trend string

const (
	TrendUp       Trend = "UPTREND"
	TrendDown     Trend = "DOWNTREND"
	TrendSideways Trend = "SIDEWAYS"
	TrendNeutral  Trend = "NEUTRAL"
)

// IndicatorSet holds the latest value of every computed indicator.
// ⭐ SSOT: 지표 값은 nil = 미계산 (데이터 길이 부족 등)
// Consumers must handle absence explicitly.
type IndicatorSet struct {
	CurrentPrice *float64 `json:"current_price,omitempty"`

	// Moving averages
	SMA20  *float64 `json:"sma_20,omitempty"`
	SMA50  *float64 `json:"sma_50,omitempty"`
	SMA200 *float64 `json:"sma_200,omitempty"`
	EMA12  *float64 `json:"ema_12,omitempty"`
	EMA26  *float64 `json:"ema_26,omitempty"`

	// Momentum
	RSI        *float64 `json:"rsi,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDDiff   *float64 `json:"macd_diff,omitempty"` // histogram
	StochK     *float64 `json:"stoch_k,omitempty"`
	StochD     *float64 `json:"stoch_d,omitempty"`
	Momentum   *float64 `json:"momentum,omitempty"` // 10-period % change

	// Volatility
	BBUpper  *float64 `json:"bb_upper,omitempty"`
	BBMiddle *float64 `json:"bb_middle,omitempty"`
	BBLower  *float64 `json:"bb_lower,omitempty"`
	ATR      *float64 `json:"atr,omitempty"`

	// Volume / levels
	VolumeRatio  *float64 `json:"volume_ratio,omitempty"`
	PriceVsSMA20 *float64 `json:"price_vs_sma20,omitempty"` // %
	Support      *float64 `json:"support,omitempty"`
	Resistance   *float64 `json:"resistance,omitempty"`

	Trend Trend `json:"trend,omitempty"`
}

// Float returns a pointer to v, for building optional fields
func Float(v float64) *float64 {
	return &v
}

// ValueOr returns *p, or def when p is nil
func ValueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// IsEmpty reports whether nothing was computed
func (s IndicatorSet) IsEmpty() bool {
	return s.CurrentPrice == nil && s.SMA20 == nil && s.RSI == nil && s.MACDDiff == nil && s.Trend == ""
}

// VolatilityRatio returns ATR / price, or false when either is unavailable
func (s IndicatorSet) VolatilityRatio() (float64, bool) {
	if s.ATR == nil || *s.ATR == 0 {
		return 0, false
	}
	price := ValueOr(s.CurrentPrice, 1)
	if price == 0 {
		return 0, false
	}
	return *s.ATR / price, true
}
