package contracts

import "time"

// PriceBar is one daily OHLCV bar
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// StockInfo is descriptive company data
type StockInfo struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
	MarketCap float64 `json:"market_cap"`
	Currency  string  `json:"currency"`
	Exchange  string  `json:"exchange"`
}

// StockDataBundle is everything the market-data provider supplies for one symbol
// ⭐ SSOT: 시장 데이터 → 분석기 전달
type StockDataBundle struct {
	Info         StockInfo         `json:"info"`
	CurrentPrice *float64          `json:"current_price,omitempty"`
	History      []PriceBar        `json:"historical_ohlc"`
	Ratios       FundamentalRatios `json:"fundamental_ratios"`
}

// Closes extracts close prices in bar order
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// CompanyName returns the display name, falling back to the symbol
func (b *StockDataBundle) CompanyName() string {
	if b.Info.Name != "" && b.Info.Name != "N/A" {
		return b.Info.Name
	}
	return b.Info.Symbol
}
