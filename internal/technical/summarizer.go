package technical

import (
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/logger"
)

// Thresholds holds the indicator trigger levels
type Thresholds struct {
	RSIOversold    float64 `yaml:"rsi_oversold" json:"rsi_oversold"`
	RSIOverbought  float64 `yaml:"rsi_overbought" json:"rsi_overbought"`
	SMA20BandPct   float64 `yaml:"sma20_band_pct" json:"sma20_band_pct"` // |price vs SMA20| beyond this votes
	HighVolumeRate float64 `yaml:"high_volume_ratio" json:"high_volume_ratio"`
}

// DefaultThresholds are the standard swing-trading trigger levels
func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIOversold:    30,
		RSIOverbought:  70,
		SMA20BandPct:   2,
		HighVolumeRate: 1.5,
	}
}

// Summarizer turns an IndicatorSet into buy/sell/neutral votes
// ⭐ SSOT: 기술적 시그널 판정은 여기서만
type Summarizer struct {
	thresholds Thresholds
	logger     *logger.Logger
}

// NewSummarizer creates a summarizer with the default thresholds
func NewSummarizer(log *logger.Logger) *Summarizer {
	return NewSummarizerWithThresholds(DefaultThresholds(), log)
}

// NewSummarizerWithThresholds creates a summarizer with custom thresholds
func NewSummarizerWithThresholds(th Thresholds, log *logger.Logger) *Summarizer {
	return &Summarizer{thresholds: th, logger: log}
}

// Summarize applies each rule independently. Missing indicators fall back
// to neutral values (RSI 50, MACD diff 0) and never abort the summary.
func (s *Summarizer) Summarize(ind contracts.IndicatorSet) contracts.TechnicalSignals {
	signals := contracts.TechnicalSignals{Reasoning: []string{}}

	buy := func(reason string) {
		signals.BuySignals++
		signals.Reasoning = append(signals.Reasoning, reason)
	}
	sell := func(reason string) {
		signals.SellSignals++
		signals.Reasoning = append(signals.Reasoning, reason)
	}

	// RSI
	rsi := contracts.ValueOr(ind.RSI, 50)
	switch {
	case rsi < s.thresholds.RSIOversold:
		buy("RSI indicates oversold condition")
	case rsi > s.thresholds.RSIOverbought:
		sell("RSI indicates overbought condition")
	default:
		signals.NeutralSignals++
	}

	// MACD histogram (no neutral vote)
	macdDiff := contracts.ValueOr(ind.MACDDiff, 0)
	if macdDiff > 0 {
		buy("MACD shows bullish momentum")
	} else if macdDiff < 0 {
		sell("MACD shows bearish momentum")
	}

	// Trend
	switch ind.Trend {
	case contracts.TrendUp:
		buy("Price is in uptrend")
	case contracts.TrendDown:
		sell("Price is in downtrend")
	}

	// Price vs SMA20
	vsSMA := contracts.ValueOr(ind.PriceVsSMA20, 0)
	if vsSMA > s.thresholds.SMA20BandPct {
		buy("Price is above 20-day SMA")
	} else if vsSMA < -s.thresholds.SMA20BandPct {
		sell("Price is below 20-day SMA")
	}

	// Volume annotates only
	if contracts.ValueOr(ind.VolumeRatio, 1.0) > s.thresholds.HighVolumeRate {
		signals.Reasoning = append(signals.Reasoning, "High volume confirms price movement")
	}

	// Bollinger bands: evaluated only against bands that were computed
	if ind.CurrentPrice != nil {
		price := *ind.CurrentPrice
		if ind.BBLower != nil && price < *ind.BBLower {
			buy("Price near lower Bollinger Band (potential bounce)")
		} else if ind.BBUpper != nil && price > *ind.BBUpper {
			sell("Price near upper Bollinger Band (potential reversal)")
		}
	}

	signals.SignalStrength = signals.Strength()

	s.logger.WithFields(map[string]interface{}{
		"buy":      signals.BuySignals,
		"sell":     signals.SellSignals,
		"neutral":  signals.NeutralSignals,
		"strength": signals.SignalStrength,
	}).Debug("Summarized technical signals")

	return signals
}
