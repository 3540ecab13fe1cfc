package yahoo

import (
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

// summaryModules are the quoteSummary sections the ratios come from
const summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"

// Client handles communication with Yahoo Finance
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient  *httputil.Client
	cache       *redis.Cache
	logger      *logger.Logger
	chartURL    string
	summaryURL  string
	suffix      string
	historyDays int
}

// NewClient creates a new Yahoo Finance client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	days := cfg.Market.HistoryDays
	if days <= 0 {
		days = 365
	}

	return &Client{
		httpClient:  httpClient,
		logger:      log,
		chartURL:    cfg.Yahoo.ChartURL,
		summaryURL:  cfg.Yahoo.SummaryURL,
		suffix:      cfg.Market.ExchangeSuffix,
		historyDays: days,
	}
}

// WithCache keeps quoteSummary results for TTLFundamentals
func (c *Client) WithCache(cache *redis.Cache) *Client {
	c.cache = cache
	return c
}

// rangeParam maps history days to a chart range
func rangeParam(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	default:
		return "5y"
	}
}
