package indicators

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/logger"
)

// MinBars is the shortest history for which indicators are computed
const MinBars = 20

// Calculator computes the IndicatorSet from daily OHLCV bars
// ⭐ SSOT: 지표 계산은 여기서만 (talib 래핑)
type Calculator struct {
	logger *logger.Logger
}

// NewCalculator creates a new indicator calculator
func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{logger: log}
}

// Calculate computes every indicator the history supports.
// Fewer than MinBars bars yields an empty set; each indicator is
// computed independently so one short series never blanks the rest.
func (c *Calculator) Calculate(symbol string, bars []contracts.PriceBar) contracts.IndicatorSet {
	set := contracts.IndicatorSet{}

	if len(bars) < MinBars {
		c.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"bars":   len(bars),
			"need":   MinBars,
		}).Warn("Insufficient data for technical analysis")
		return set
	}

	closes, highs, lows, volumes := split(bars)
	price := closes[len(closes)-1]
	set.CurrentPrice = contracts.Float(price)

	// Moving averages
	set.SMA20 = last(talib.Sma(closes, 20))
	if n := len(closes); n >= 50 {
		set.SMA50 = last(talib.Sma(closes, 50))
		if n >= 200 {
			set.SMA200 = last(talib.Sma(closes, 200))
		}
	}
	set.EMA12 = last(talib.Ema(closes, 12))
	if len(closes) >= 26 {
		set.EMA26 = last(talib.Ema(closes, 26))
	}

	// Momentum
	set.RSI = last(talib.Rsi(closes, 14))
	if len(closes) >= 34 {
		macd, signal, hist := talib.Macd(closes, 12, 26, 9)
		set.MACD = last(macd)
		set.MACDSignal = last(signal)
		set.MACDDiff = last(hist)
	}
	// fast %K(14) unsmoothed, %D = SMA3(%K)
	k, d := talib.Stoch(highs, lows, closes, 14, 1, talib.SMA, 3, talib.SMA)
	set.StochK = last(k)
	set.StochD = last(d)
	set.Momentum = momentum(closes, 10)

	// Volatility
	upper, middle, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)
	set.BBUpper = last(upper)
	set.BBMiddle = last(middle)
	set.BBLower = last(lower)
	set.ATR = last(talib.Atr(highs, lows, closes, 14))

	// Volume / levels
	set.VolumeRatio = volumeRatio(volumes, 20)
	if set.SMA20 != nil && *set.SMA20 != 0 {
		set.PriceVsSMA20 = contracts.Float((price - *set.SMA20) / *set.SMA20 * 100)
	}
	set.Support = contracts.Float(minOf(lows[len(lows)-20:]))
	set.Resistance = contracts.Float(maxOf(highs[len(highs)-20:]))
	set.Trend = DetermineTrend(price, set.SMA20, set.SMA50)

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(bars),
		"rsi":    contracts.ValueOr(set.RSI, math.NaN()),
		"trend":  set.Trend,
	}).Debug("Calculated indicators")

	return set
}

// DetermineTrend classifies price against SMA20/SMA50.
// price > sma20 > sma50 → UPTREND, price < sma20 < sma50 → DOWNTREND,
// otherwise SIDEWAYS; with only SMA20 the side of price decides.
func DetermineTrend(price float64, sma20, sma50 *float64) contracts.Trend {
	switch {
	case sma20 != nil && sma50 != nil && *sma20 != 0 && *sma50 != 0:
		if price > *sma20 && *sma20 > *sma50 {
			return contracts.TrendUp
		}
		if price < *sma20 && *sma20 < *sma50 {
			return contracts.TrendDown
		}
		return contracts.TrendSideways
	case sma20 != nil && *sma20 != 0:
		if price > *sma20 {
			return contracts.TrendUp
		}
		return contracts.TrendDown
	default:
		return contracts.TrendNeutral
	}
}

func split(bars []contracts.PriceBar) (closes, highs, lows, volumes []float64) {
	n := len(bars)
	closes = make([]float64, n)
	highs = make([]float64, n)
	lows = make([]float64, n)
	volumes = make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = float64(b.Volume)
	}
	return
}

// last returns the final element when present and finite
func last(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// momentum is the percent change over period bars
func momentum(closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return contracts.Float(0)
	}
	past := closes[len(closes)-(period+1)]
	if past == 0 {
		return contracts.Float(0)
	}
	return contracts.Float((closes[len(closes)-1] - past) / past * 100)
}

// volumeRatio is the last volume over its trailing window mean
func volumeRatio(volumes []float64, window int) *float64 {
	if len(volumes) < window {
		return nil
	}
	tail := volumes[len(volumes)-window:]
	var sum float64
	for _, v := range tail {
		sum += v
	}
	avg := sum / float64(window)
	if avg == 0 {
		return nil
	}
	return contracts.Float(volumes[len(volumes)-1] / avg)
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
