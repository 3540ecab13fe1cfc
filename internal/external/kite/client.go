package kite

import (
	"context"
	"fmt"
	"sort"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"
	"golang.org/x/time/rate"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/logger"
)

const (
	exchangeNSE   = "NSE"
	dailyInterval = "day"
)

// kiteAPI is the subset of the Kite Connect client used here
type kiteAPI interface {
	GetQuote(instruments ...string) (kiteconnect.Quote, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

// RatioSource supplies company info and ratios Kite does not carry
type RatioSource interface {
	FetchRatios(ctx context.Context, symbol string) (contracts.StockInfo, contracts.FundamentalRatios, error)
}

// Client fetches quotes and daily candles from Zerodha Kite Connect
// ⭐ SSOT: Kite Connect 호출은 이 클라이언트에서만
type Client struct {
	api         kiteAPI
	ratios      RatioSource
	limiter     *rate.Limiter
	logger      *logger.Logger
	historyDays int
	now         func() time.Time
}

// NewClient creates a Kite client from configured credentials.
// Kite allows ~3 requests/second on quote and history endpoints.
func NewClient(cfg *config.Config, ratios RatioSource, log *logger.Logger) *Client {
	kc := kiteconnect.New(cfg.Kite.APIKey)
	kc.SetAccessToken(cfg.Kite.AccessToken)

	return newClient(kc, ratios, cfg.Market.HistoryDays, log)
}

func newClient(api kiteAPI, ratios RatioSource, historyDays int, log *logger.Logger) *Client {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Client{
		api:         api,
		ratios:      ratios,
		limiter:     rate.NewLimiter(rate.Limit(3), 1),
		logger:      log,
		historyDays: historyDays,
		now:         time.Now,
	}
}

// Fetch implements contracts.MarketDataProvider
func (c *Client) Fetch(ctx context.Context, symbol string) (*contracts.StockDataBundle, error) {
	formatted, err := contracts.FormatSymbol(symbol, "")
	if err != nil {
		return nil, err
	}
	tradingSymbol := contracts.BareSymbol(formatted)
	instrument := fmt.Sprintf("%s:%s", exchangeNSE, tradingSymbol)

	bundle := &contracts.StockDataBundle{
		Info: contracts.StockInfo{
			Symbol:   tradingSymbol,
			Name:     "N/A",
			Sector:   "N/A",
			Industry: "N/A",
			Currency: "INR",
			Exchange: exchangeNSE,
		},
		History: []contracts.PriceBar{},
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("kite rate limit: %w", err)
	}
	quotes, err := c.api.GetQuote(instrument)
	if err != nil {
		return nil, fmt.Errorf("kite quote %s: %w", instrument, err)
	}
	q, ok := quotes[instrument]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contracts.ErrNoPriceData, instrument)
	}
	if q.LastPrice > 0 {
		bundle.CurrentPrice = contracts.Float(q.LastPrice)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("kite rate limit: %w", err)
	}
	to := c.now()
	from := to.AddDate(0, 0, -c.historyDays)
	candles, err := c.api.GetHistoricalData(q.InstrumentToken, dailyInterval, from, to, false, false)
	if err != nil {
		c.logger.WithError(err).WithField("instrument", instrument).Warn("Kite history unavailable")
	} else {
		bundle.History = toBars(candles)
	}

	if c.ratios != nil {
		info, ratios, err := c.ratios.FetchRatios(ctx, formatted)
		if err != nil {
			c.logger.WithError(err).WithField("symbol", formatted).Warn("Ratios unavailable")
		} else {
			bundle.Info = info
			bundle.Ratios = ratios
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"instrument": instrument,
		"bars":       len(bundle.History),
		"price":      q.LastPrice,
	}).Debug("Fetched Kite data")

	return bundle, nil
}

func toBars(candles []kiteconnect.HistoricalData) []contracts.PriceBar {
	bars := make([]contracts.PriceBar, 0, len(candles))
	for _, c := range candles {
		bars = append(bars, contracts.PriceBar{
			Date:   c.Date.Time,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: int64(c.Volume),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}
