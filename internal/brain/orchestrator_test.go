package brain

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/fundamental"
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/internal/sentiment"
	"github.com/wonny/swingtrader/internal/technical"
	"github.com/wonny/swingtrader/pkg/logger"
)

type fakeMarket struct {
	mu      sync.Mutex
	bundles map[string]*contracts.StockDataBundle
	err     error
}

func (f *fakeMarket) Fetch(_ context.Context, symbol string) (*contracts.StockDataBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bundles[symbol]
	if !ok {
		return nil, contracts.ErrNoPriceData
	}
	return b, nil
}

type fakeNews struct {
	news    contracts.NewsCollection
	err     error
	company string
}

func (f *fakeNews) FetchAll(_ context.Context, companyName, _ string) (contracts.NewsCollection, error) {
	f.company = companyName
	return f.news, f.err
}

func uptrend(n int) []contracts.PriceBar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]contracts.PriceBar, n)
	for i := range bars {
		c := 100 + float64(i)*0.5 + math.Sin(float64(i))
		bars[i] = contracts.PriceBar{
			Date: start.AddDate(0, 0, i), Open: c - 0.3, High: c + 1, Low: c - 1, Close: c, Volume: 1000 + int64(i*10),
		}
	}
	return bars
}

func bundle(symbol string) *contracts.StockDataBundle {
	history := uptrend(60)
	price := history[len(history)-1].Close
	return &contracts.StockDataBundle{
		Info:         contracts.StockInfo{Symbol: symbol, Name: "Tata Consultancy Services"},
		CurrentPrice: &price,
		History:      history,
		Ratios: contracts.FundamentalRatios{
			PERatio: contracts.Float(14),
			ROE:     contracts.Float(0.22),
		},
	}
}

func goodNews() contracts.NewsCollection {
	return contracts.NewsCollection{
		contracts.CategoryGlobal:       {{Title: "Markets rally on strong growth", Description: "Excellent gains"}},
		contracts.CategoryIndianMarket: {},
		contracts.CategoryCompany: {
			{Title: "TCS beats estimates", Description: "Profit surges"},
			{Title: "TCS wins large deal", Description: "Good momentum"},
		},
	}
}

func newOrchestrator(market contracts.MarketDataProvider, news contracts.NewsProvider) *Orchestrator {
	log := logger.NewNop()
	return NewOrchestrator(
		market,
		news,
		technical.NewSummarizer(log),
		fundamental.NewScorer(log),
		sentiment.NewAnalyzer(log),
		recommend.NewSynthesizer(log),
		2,
		log,
	)
}

func TestAnalyzeStock(t *testing.T) {
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": bundle("TCS.NS")}}
	news := &fakeNews{news: goodNews()}
	o := newOrchestrator(market, news)

	report, err := o.AnalyzeStock(context.Background(), "TCS.NS", 3)
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "TCS.NS", report.Symbol)
	assert.Equal(t, "Tata Consultancy Services", news.company)
	assert.Equal(t, contracts.NewsSummary{GlobalNewsCount: 1, IndianNewsCount: 0, CompanyNewsCount: 2}, report.NewsSummary)

	last := market.bundles["TCS.NS"].History[59].Close
	assert.Equal(t, last, report.CurrentPrice)
	require.NotNil(t, report.Technical.Indicators.CurrentPrice)
	assert.Equal(t, last, *report.Technical.Indicators.CurrentPrice)
	assert.NotZero(t, report.Technical.Signals.Total())

	assert.Equal(t, 2, report.Fundamental.MetricsPresent)
	assert.Equal(t, 3, report.Sentiment.TotalCount)
	assert.Equal(t, 59, report.Risk.Samples)

	rec := report.Recommendation
	assert.False(t, rec.Failed())
	assert.Equal(t, "TCS.NS", rec.Symbol)
	assert.Equal(t, 3, rec.TimeHorizonWeeks)
	sum := rec.ScoreBreakdown.Technical + rec.ScoreBreakdown.Fundamental + rec.ScoreBreakdown.Sentiment
	assert.InDelta(t, rec.WeightedScore, sum, 0.02)
}

func TestAnalyzeStock_MatchesDirectSynthesis(t *testing.T) {
	b := bundle("INFY.NS")
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"INFY.NS": b}}
	o := newOrchestrator(market, &fakeNews{news: goodNews()})

	report, err := o.AnalyzeStock(context.Background(), "INFY.NS", 2)
	require.NoError(t, err)

	direct := o.Synthesizer().Synthesize(recommend.Input{
		Symbol:           "INFY.NS",
		CurrentPrice:     report.CurrentPrice,
		TimeHorizonWeeks: 2,
		Technical:        report.Technical.Signals,
		Indicators:       report.Technical.Indicators,
		Fundamental:      report.Fundamental,
		Sentiment:        report.Sentiment,
		History:          b.History,
	})
	assert.Equal(t, direct, report.Recommendation)
}

func TestAnalyzeStock_DefaultHorizon(t *testing.T) {
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": bundle("TCS.NS")}}
	o := newOrchestrator(market, nil)

	report, err := o.AnalyzeStock(context.Background(), "TCS.NS", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Recommendation.TimeHorizonWeeks)
	assert.Equal(t, 0, report.Sentiment.TotalCount)
}

func TestAnalyzeStock_NoPrice(t *testing.T) {
	b := bundle("TCS.NS")
	b.CurrentPrice = nil
	o := newOrchestrator(&fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": b}}, &fakeNews{})

	report, err := o.AnalyzeStock(context.Background(), "TCS.NS", 2)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, contracts.ErrNoPriceData)
	assert.Contains(t, err.Error(), "could not fetch data")
}

func TestAnalyzeStock_MarketError(t *testing.T) {
	o := newOrchestrator(&fakeMarket{err: errors.New("upstream 500")}, &fakeNews{})

	_, err := o.AnalyzeStock(context.Background(), "TCS.NS", 2)
	assert.ErrorContains(t, err, "upstream 500")
}

func TestAnalyzeStock_NewsFailureIsSoft(t *testing.T) {
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": bundle("TCS.NS")}}
	o := newOrchestrator(market, &fakeNews{err: errors.New("feeds down")})

	report, err := o.AnalyzeStock(context.Background(), "TCS.NS", 2)
	require.NoError(t, err)
	assert.Equal(t, contracts.NewsSummary{}, report.NewsSummary)
	assert.Equal(t, 0.0, report.Recommendation.ScoreBreakdown.Sentiment)
}

func TestAnalyzeStock_ShortHistory(t *testing.T) {
	b := bundle("TCS.NS")
	b.History = b.History[:5]
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": b}}
	o := newOrchestrator(market, nil)

	report, err := o.AnalyzeStock(context.Background(), "TCS.NS", 2)
	require.NoError(t, err)
	assert.True(t, report.Technical.Indicators.IsEmpty())
	assert.Equal(t, 0.0, report.Technical.Signals.SignalStrength)
	assert.False(t, report.Recommendation.Failed())
}

func TestAnalyzeStock_Cancelled(t *testing.T) {
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{"TCS.NS": bundle("TCS.NS")}}
	o := newOrchestrator(market, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.AnalyzeStock(ctx, "TCS.NS", 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatch(t *testing.T) {
	market := &fakeMarket{bundles: map[string]*contracts.StockDataBundle{
		"TCS.NS":  bundle("TCS.NS"),
		"INFY.NS": bundle("INFY.NS"),
	}}
	o := newOrchestrator(market, nil)

	results := o.AnalyzeBatch(context.Background(), []string{"TCS.NS", "MISSING.NS", "INFY.NS"}, 2, 2)
	require.Len(t, results, 3)

	assert.Equal(t, "TCS.NS", results[0].Symbol)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Report)

	assert.ErrorIs(t, results[1].Err, contracts.ErrNoPriceData)
	assert.Nil(t, results[1].Report)

	assert.Equal(t, "INFY.NS", results[2].Report.Symbol)
}
