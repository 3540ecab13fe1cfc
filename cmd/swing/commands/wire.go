package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/swingtrader/internal/brain"
	"github.com/wonny/swingtrader/internal/external/news"
	"github.com/wonny/swingtrader/internal/fundamental"
	"github.com/wonny/swingtrader/internal/marketdata"
	"github.com/wonny/swingtrader/internal/notify"
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/internal/scheduler"
	"github.com/wonny/swingtrader/internal/scheduler/jobs"
	"github.com/wonny/swingtrader/internal/sentiment"
	"github.com/wonny/swingtrader/internal/strategyconfig"
	"github.com/wonny/swingtrader/internal/technical"
	"github.com/wonny/swingtrader/pkg/config"
	"github.com/wonny/swingtrader/pkg/database"
	"github.com/wonny/swingtrader/pkg/httputil"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/redis"
	"github.com/wonny/swingtrader/pkg/tracing"
)

// app holds the analysis stack shared by every command
// ⭐ SSOT: 의존성 조립은 여기서만
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	strategy     *strategyconfig.Config
	location     *time.Location
	fetcher      *news.Fetcher
	orchestrator *brain.Orchestrator
	closers      []func()
}

// newApp loads config and wires every component.
// Redis and Postgres are optional; when unreachable the stack runs without them.
func newApp(ctx context.Context) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if strategyFile != "" {
		cfg.StrategyPath = strategyFile
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	// 3. Tracing
	shutdownTracing, err := tracing.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.closers = append(a.closers, func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.WithError(err).Warn("Tracer shutdown failed")
		}
	})

	// 4. Strategy
	strategy, err := strategyconfig.Load(cfg.StrategyPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load strategy %q: %w", cfg.StrategyPath, err)
	}
	for _, w := range strategyconfig.Warn(strategy) {
		log.WithField("code", w.Code).Warn(w.Message)
	}
	a.strategy = strategy

	loc, err := time.LoadLocation(strategy.Meta.Timezone)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load timezone %q: %w", strategy.Meta.Timezone, err)
	}
	a.location = loc

	// 5. Redis cache + shared rate limits
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache")
		rdb = redis.Disabled()
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	cache := redis.NewCache(rdb, "swing")
	limiter := redis.NewRateLimiter(rdb, "swing:ratelimit")

	// 6. Price-bar store
	var bars marketdata.BarStore
	if cfg.Database.Enabled() {
		db, err := database.New(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, running without bar store")
		} else {
			a.closers = append(a.closers, db.Close)
			repo := marketdata.NewPriceRepository(db.Pool)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.WithError(err).Warn("Could not prepare bar store schema")
			} else {
				bars = repo
				log.Info("Connected to bar store")
			}
		}
	}

	// 7. HTTP clients
	marketHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.YahooRateLimit)
	feedHTTP := httputil.New(cfg, log)
	newsAPIHTTP := httputil.New(cfg, log).WithRateLimiter(limiter, redis.NewsAPIRateLimit)

	// 8. Sources
	provider := marketdata.NewProvider(cfg, marketHTTP, cache, log)
	market := marketdata.NewService(provider, cache, bars, cfg.Market.ExchangeSuffix, cfg.Market.HistoryDays, log)

	if strategy.News.PerSource > 0 {
		cfg.Market.NewsPerSource = strategy.News.PerSource
	}
	a.fetcher = news.NewFetcher(cfg, feedHTTP, cache, log).
		WithNewsAPIClient(newsAPIHTTP).
		WithFeeds(strategy.News.GlobalFeeds, strategy.News.IndianFeeds)

	// 9. Analysis pipeline
	a.orchestrator = brain.NewOrchestrator(
		market,
		a.fetcher,
		technical.NewSummarizerWithThresholds(strategy.Technical, log),
		fundamental.NewScorer(log),
		sentiment.NewAnalyzer(log),
		recommend.NewSynthesizerWith(strategy.Synthesis.Weights, strategy.Synthesis.Thresholds, log),
		cfg.Market.DefaultHorizon,
		log,
	)

	log.WithFields(map[string]interface{}{
		"strategy": strategy.Meta.StrategyID,
		"kite":     cfg.Kite.Enabled(),
		"redis":    rdb.Enabled(),
		"bars":     bars != nil,
	}).Debug("Analysis stack ready")

	return a, nil
}

// newScheduler registers the watchlist job; publisher may be nil
func (a *app) newScheduler(publisher jobs.Publisher) (*scheduler.Scheduler, error) {
	notifier, err := notify.New(a.cfg, a.log)
	if err != nil {
		a.log.WithError(err).Warn("Telegram unavailable, alerts disabled")
		notifier = notify.Nop{}
	}

	sched := scheduler.New(a.location, a.log)
	job := jobs.NewWatchlistJob(a.orchestrator, publisher, notifier, a.strategy.Watchlist, a.log)
	if err := sched.AddJob(job); err != nil {
		return nil, fmt.Errorf("add job %s: %w", job.Name(), err)
	}
	a.closers = append(a.closers, sched.Stop)
	return sched, nil
}

// Close releases resources in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
