package yahoo

import (
	"context"

	"github.com/wonny/swingtrader/internal/contracts"
)

// Fetch implements contracts.MarketDataProvider.
// Chart and summary failures are soft: the bundle comes back with whatever
// was available and the caller decides whether a missing price is fatal.
func (c *Client) Fetch(ctx context.Context, symbol string) (*contracts.StockDataBundle, error) {
	formatted, err := contracts.FormatSymbol(symbol, c.suffix)
	if err != nil {
		return nil, err
	}

	bundle := &contracts.StockDataBundle{
		Info:    defaultInfo(formatted),
		History: []contracts.PriceBar{},
	}

	chart, err := c.FetchChart(ctx, formatted)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", formatted).Warn("Chart unavailable")
	} else {
		bundle.History = chart.Bars
		bundle.CurrentPrice = chart.CurrentPrice
	}

	summary, err := c.FetchSummary(ctx, formatted)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", formatted).Warn("Summary unavailable")
	} else {
		bundle.Info = summary.Info
		bundle.Ratios = summary.Ratios
	}

	return bundle, nil
}

// FetchRatios returns only company info and ratios
func (c *Client) FetchRatios(ctx context.Context, symbol string) (contracts.StockInfo, contracts.FundamentalRatios, error) {
	formatted, err := contracts.FormatSymbol(symbol, c.suffix)
	if err != nil {
		return contracts.StockInfo{}, contracts.FundamentalRatios{}, err
	}
	summary, err := c.FetchSummary(ctx, formatted)
	if err != nil {
		return defaultInfo(formatted), contracts.FundamentalRatios{}, err
	}
	return summary.Info, summary.Ratios, nil
}

func defaultInfo(symbol string) contracts.StockInfo {
	return contracts.StockInfo{
		Symbol:   symbol,
		Name:     "N/A",
		Sector:   "N/A",
		Industry: "N/A",
		Currency: "INR",
		Exchange: "NSE",
	}
}
