package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		score float64
		want  SentimentLabel
	}{
		{0.9, SentimentVeryPositive},
		{0.5, SentimentVeryPositive},
		{0.49, SentimentPositive},
		{0.1, SentimentPositive},
		{0.0, SentimentNeutral},
		{-0.1, SentimentNeutral},
		{-0.11, SentimentNegative},
		{-0.5, SentimentNegative},
		{-0.51, SentimentVeryNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySentiment(tt.score), "score %v", tt.score)
	}
}

func TestTechnicalSignals_Strength(t *testing.T) {
	tests := []struct {
		name    string
		signals TechnicalSignals
		want    float64
	}{
		{"empty", TechnicalSignals{}, 0},
		{"all buy", TechnicalSignals{BuySignals: 4}, 100},
		{"all sell", TechnicalSignals{SellSignals: 3}, -100},
		{"balanced", TechnicalSignals{BuySignals: 2, SellSignals: 2, NeutralSignals: 1}, 0},
		{"mixed", TechnicalSignals{BuySignals: 3, SellSignals: 1, NeutralSignals: 1}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.signals.Strength(), 1e-9)
		})
	}
}

func TestTechnicalSignals_TopReasons(t *testing.T) {
	s := TechnicalSignals{Reasoning: []string{"a", "b", "c", "d"}}
	assert.Equal(t, []string{"a", "b", "c"}, s.TopReasons(3))
	assert.Equal(t, []string{"a"}, TechnicalSignals{Reasoning: []string{"a"}}.TopReasons(3))
}

func TestIndicatorSet_VolatilityRatio(t *testing.T) {
	_, ok := IndicatorSet{}.VolatilityRatio()
	assert.False(t, ok, "no ATR")

	_, ok = IndicatorSet{ATR: Float(0)}.VolatilityRatio()
	assert.False(t, ok, "zero ATR counts as absent")

	ratio, ok := IndicatorSet{ATR: Float(6), CurrentPrice: Float(100)}.VolatilityRatio()
	require.True(t, ok)
	assert.InDelta(t, 0.06, ratio, 1e-12)

	// price defaults to 1 when missing
	ratio, ok = IndicatorSet{ATR: Float(0.02)}.VolatilityRatio()
	require.True(t, ok)
	assert.InDelta(t, 0.02, ratio, 1e-12)
}

func TestIndicatorSet_JSONOmitsAbsent(t *testing.T) {
	data, err := json.Marshal(IndicatorSet{RSI: Float(42), Trend: TrendUp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rsi":42,"trend":"UPTREND"}`, string(data))
}

func TestNewsCollection_Summary(t *testing.T) {
	news := NewsCollection{
		CategoryGlobal:       make([]Article, 3),
		CategoryIndianMarket: make([]Article, 5),
	}

	assert.Equal(t, NewsSummary{GlobalNewsCount: 3, IndianNewsCount: 5}, news.Summary())
	assert.Equal(t, "INDIAN MARKET NEWS", CategoryIndianMarket.Title())
}

func TestSentimentAggregate_LabelOrNeutral(t *testing.T) {
	assert.Equal(t, SentimentNeutral, SentimentAggregate{}.LabelOrNeutral())
	assert.False(t, SentimentAggregate{}.HasData())

	agg := SentimentAggregate{OverallLabel: SentimentNegative, TotalCount: 2}
	assert.Equal(t, SentimentNegative, agg.LabelOrNeutral())
	assert.True(t, agg.HasData())
}

func TestRecommendation_Flags(t *testing.T) {
	assert.True(t, Recommendation{Action: ActionBuy}.IsActionable())
	assert.False(t, Recommendation{Action: ActionHold}.IsActionable())

	failed := Recommendation{Action: ActionHold, Error: "boom"}
	assert.True(t, failed.Failed())
	assert.False(t, failed.IsActionable())
}

func TestStockDataBundle_CompanyName(t *testing.T) {
	b := &StockDataBundle{Info: StockInfo{Symbol: "TCS", Name: "N/A"}}
	assert.Equal(t, "TCS", b.CompanyName())

	b.Info.Name = "Tata Consultancy Services"
	assert.Equal(t, "Tata Consultancy Services", b.CompanyName())
	assert.Equal(t, []float64{1, 2}, Closes([]PriceBar{{Close: 1}, {Close: 2}}))
}

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"reliance", "RELIANCE.NS", false},
		{"  tcs ", "TCS.NS", false},
		{"INFY.NS", "INFY.NS", false},
		{"infy.ns", "INFY.NS", false},
		{"", "", true},
		{"BAD SYMBOL", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FormatSymbol(tt.in, ".NS")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSymbol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "RELIANCE", BareSymbol("RELIANCE.NS"))
	assert.Equal(t, "RELIANCE", BareSymbol("RELIANCE"))
}
