package marketdata

import (
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/external/kite"
	"github.com/wonny/swingtrader/internal/external/yahoo"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

// NewProvider picks the market data source.
// Yahoo is the default; with Kite credentials prices come from Kite and
// company info and ratios still come from Yahoo. cache may be nil.
func NewProvider(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) contracts.MarketDataProvider {
	yc := yahoo.NewClient(cfg, httpClient, log)
	if cache != nil {
		yc.WithCache(cache)
	}

	if cfg.Kite.Enabled() {
		log.Info("Using Kite Connect for prices")
		return kite.NewClient(cfg, yc, log)
	}

	log.Debug("Using Yahoo Finance for prices")
	return yc
}
