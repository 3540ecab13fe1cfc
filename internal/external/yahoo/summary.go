package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/redis"
)

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} envelope
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price struct {
		LongName     string   `json:"longName"`
		ShortName    string   `json:"shortName"`
		ExchangeName string   `json:"exchangeName"`
		Currency     string   `json:"currency"`
		MarketCap    rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE       rawValue `json:"trailingPE"`
		ForwardPE        rawValue `json:"forwardPE"`
		DividendYield    rawValue `json:"dividendYield"`
		Beta             rawValue `json:"beta"`
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		PriceToBook     rawValue `json:"priceToBook"`
		PegRatio        rawValue `json:"pegRatio"`
		BookValue       rawValue `json:"bookValue"`
		EnterpriseValue rawValue `json:"enterpriseValue"`
		ForwardPE       rawValue `json:"forwardPE"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		DebtToEquity     rawValue `json:"debtToEquity"`
		CurrentRatio     rawValue `json:"currentRatio"`
		QuickRatio       rawValue `json:"quickRatio"`
		ReturnOnEquity   rawValue `json:"returnOnEquity"`
		ReturnOnAssets   rawValue `json:"returnOnAssets"`
		ProfitMargins    rawValue `json:"profitMargins"`
		OperatingMargins rawValue `json:"operatingMargins"`
		RevenueGrowth    rawValue `json:"revenueGrowth"`
		EarningsGrowth   rawValue `json:"earningsGrowth"`
	} `json:"financialData"`
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
}

// Summary is company info plus the raw fundamental ratios
type Summary struct {
	Info   contracts.StockInfo
	Ratios contracts.FundamentalRatios
}

// FetchSummary fetches company profile and ratios for a formatted symbol
func (c *Client) FetchSummary(ctx context.Context, symbol string) (*Summary, error) {
	if c.cache == nil {
		return c.fetchSummary(ctx, symbol)
	}

	var summary Summary
	err := c.cache.GetOrSet(ctx, redis.FundamentalsKey(symbol), &summary, redis.TTLFundamentals, func() (interface{}, error) {
		return c.fetchSummary(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) fetchSummary(ctx context.Context, symbol string) (*Summary, error) {
	params := url.Values{}
	params.Set("modules", summaryModules)
	fullURL := fmt.Sprintf("%s/%s?%s", c.summaryURL, url.PathEscape(symbol), params.Encode())

	var resp summaryResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch summary %s: %w", symbol, err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("summary %s: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("summary %s: empty result", symbol)
	}

	return parseSummary(symbol, resp.QuoteSummary.Result[0]), nil
}

func parseSummary(symbol string, r summaryResult) *Summary {
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	info := contracts.StockInfo{
		Symbol:    symbol,
		Name:      orNA(name),
		Sector:    orNA(r.AssetProfile.Sector),
		Industry:  orNA(r.AssetProfile.Industry),
		Currency:  orDefault(r.Price.Currency, "INR"),
		Exchange:  orDefault(r.Price.ExchangeName, "NSE"),
		MarketCap: valueOr(r.Price.MarketCap.Raw, 0),
	}

	forwardPE := r.SummaryDetail.ForwardPE.Raw
	if forwardPE == nil {
		forwardPE = r.DefaultKeyStatistics.ForwardPE.Raw
	}

	ratios := contracts.FundamentalRatios{
		PERatio:          r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:        forwardPE,
		PBRatio:          r.DefaultKeyStatistics.PriceToBook.Raw,
		PEGRatio:         r.DefaultKeyStatistics.PegRatio.Raw,
		DebtToEquity:     r.FinancialData.DebtToEquity.Raw,
		CurrentRatio:     r.FinancialData.CurrentRatio.Raw,
		QuickRatio:       r.FinancialData.QuickRatio.Raw,
		ROE:              r.FinancialData.ReturnOnEquity.Raw,
		ROA:              r.FinancialData.ReturnOnAssets.Raw,
		ProfitMargin:     r.FinancialData.ProfitMargins.Raw,
		OperatingMargin:  r.FinancialData.OperatingMargins.Raw,
		RevenueGrowth:    r.FinancialData.RevenueGrowth.Raw,
		EarningsGrowth:   r.FinancialData.EarningsGrowth.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		Beta:             r.SummaryDetail.Beta.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,
		BookValue:        r.DefaultKeyStatistics.BookValue.Raw,
		EnterpriseValue:  r.DefaultKeyStatistics.EnterpriseValue.Raw,
	}

	return &Summary{Info: info, Ratios: ratios}
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
