package marketdata

import (
	"context"
	"time"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
)

// Service fronts a provider with the Redis cache and the bar store.
// Cache and store are both optional.
type Service struct {
	provider    contracts.MarketDataProvider
	cache       *redis.Cache
	bars        BarStore
	suffix      string
	historyDays int
	ttl         time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

// NewService creates a market data service
func NewService(provider contracts.MarketDataProvider, cache *redis.Cache, bars BarStore, suffix string, historyDays int, log *logger.Logger) *Service {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Service{
		provider:    provider,
		cache:       cache,
		bars:        bars,
		suffix:      suffix,
		historyDays: historyDays,
		ttl:         redis.TTLQuote,
		now:         time.Now,
		logger:      log,
	}
}

// Fetch implements contracts.MarketDataProvider.
//
// Order: cache → provider → bar store. Fresh history is written back to the
// store; when the provider returns no bars the stored ones are used.
func (s *Service) Fetch(ctx context.Context, symbol string) (*contracts.StockDataBundle, error) {
	formatted, err := contracts.FormatSymbol(symbol, s.suffix)
	if err != nil {
		return nil, err
	}
	key := redis.HistoryKey(formatted, s.historyDays)

	if s.cache != nil {
		var cached contracts.StockDataBundle
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Market data cache read failed")
		}
		if found {
			s.logger.WithField("symbol", formatted).Debug("Market data cache hit")
			return &cached, nil
		}
	}

	bundle, err := s.provider.Fetch(ctx, formatted)
	if err != nil {
		return nil, err
	}

	s.syncBars(ctx, formatted, bundle)

	if s.cache != nil && bundle.CurrentPrice != nil {
		if err := s.cache.Set(ctx, key, bundle, s.ttl); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Market data cache write failed")
		}
	}

	return bundle, nil
}

func (s *Service) syncBars(ctx context.Context, symbol string, bundle *contracts.StockDataBundle) {
	if s.bars == nil {
		return
	}

	if len(bundle.History) > 0 {
		if err := s.bars.SaveBars(ctx, symbol, bundle.History); err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Could not store bars")
		}
		return
	}

	from := s.now().AddDate(0, 0, -s.historyDays)
	stored, err := s.bars.LoadBars(ctx, symbol, from)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Could not load stored bars")
		return
	}
	if len(stored) == 0 {
		return
	}

	bundle.History = stored
	if bundle.CurrentPrice == nil {
		last := stored[len(stored)-1].Close
		bundle.CurrentPrice = &last
	}
	s.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(stored),
	}).Info("Using stored bars")
}
