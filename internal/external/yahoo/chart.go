package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wonny/swingtrader/internal/contracts"
)

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol             string   `json:"symbol"`
		Currency           string   `json:"currency"`
		ExchangeName       string   `json:"exchangeName"`
		RegularMarketPrice *float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []quoteSeries `json:"quote"`
	} `json:"indicators"`
}

// quoteSeries holds parallel OHLCV arrays; nulls mark halted sessions
type quoteSeries struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// Chart is the parsed daily history plus the live quote
type Chart struct {
	Symbol       string
	Currency     string
	Exchange     string
	CurrentPrice *float64
	Bars         []contracts.PriceBar
}

// FetchChart fetches daily OHLCV bars for a formatted symbol
func (c *Client) FetchChart(ctx context.Context, symbol string) (*Chart, error) {
	params := url.Values{}
	params.Set("range", rangeParam(c.historyDays))
	params.Set("interval", "1d")
	fullURL := fmt.Sprintf("%s/%s?%s", c.chartURL, url.PathEscape(symbol), params.Encode())

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", symbol, err)
	}

	chart, err := parseChart(resp)
	if err != nil {
		return nil, fmt.Errorf("parse chart %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(chart.Bars),
	}).Debug("Fetched chart")

	return chart, nil
}

func parseChart(resp chartResponse) (*Chart, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, contracts.ErrNoPriceData
	}

	r := resp.Chart.Result[0]
	chart := &Chart{
		Symbol:   r.Meta.Symbol,
		Currency: r.Meta.Currency,
		Exchange: r.Meta.ExchangeName,
		Bars:     []contracts.PriceBar{},
	}

	if len(r.Indicators.Quote) > 0 {
		q := r.Indicators.Quote[0]
		for i, ts := range r.Timestamp {
			cl := at(q.Close, i)
			if cl == nil {
				continue
			}
			bar := contracts.PriceBar{
				Date:  time.Unix(ts, 0).UTC(),
				Open:  valueOr(at(q.Open, i), *cl),
				High:  valueOr(at(q.High, i), *cl),
				Low:   valueOr(at(q.Low, i), *cl),
				Close: *cl,
			}
			if i < len(q.Volume) && q.Volume[i] != nil {
				bar.Volume = *q.Volume[i]
			}
			chart.Bars = append(chart.Bars, bar)
		}
	}

	switch {
	case r.Meta.RegularMarketPrice != nil:
		chart.CurrentPrice = r.Meta.RegularMarketPrice
	case len(chart.Bars) > 0:
		chart.CurrentPrice = contracts.Float(chart.Bars[len(chart.Bars)-1].Close)
	}

	return chart, nil
}

func at(series []*float64, i int) *float64 {
	if i < len(series) {
		return series[i]
	}
	return nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
