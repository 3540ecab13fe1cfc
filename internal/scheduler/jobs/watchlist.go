package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/swingtrader/internal/brain"
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/notify"
	"github.com/wonny/swingtrader/internal/strategyconfig"
	"github.com/wonny/swingtrader/pkg/logger"
)

// BatchAnalyzer analyzes a list of symbols
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, symbols []string, weeks, parallel int) []brain.BatchResult
}

// Publisher receives every finished report (websocket hub)
type Publisher interface {
	Publish(report *contracts.AnalysisReport)
}

// WatchlistJob analyzes the configured watchlist after market close
// ⭐ SSOT: 관심종목 정기 분석은 이 Job에서만
type WatchlistJob struct {
	analyzer  BatchAnalyzer
	publisher Publisher
	notifier  notify.Notifier
	watchlist strategyconfig.Watchlist
	logger    *logger.Logger
}

// NewWatchlistJob creates a watchlist job; publisher and notifier may be nil
func NewWatchlistJob(analyzer BatchAnalyzer, publisher Publisher, notifier notify.Notifier, watchlist strategyconfig.Watchlist, log *logger.Logger) *WatchlistJob {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &WatchlistJob{
		analyzer:  analyzer,
		publisher: publisher,
		notifier:  notifier,
		watchlist: watchlist,
		logger:    log,
	}
}

// Name returns the job name
func (j *WatchlistJob) Name() string {
	return "watchlist_analysis"
}

// Schedule returns the configured cron spec
func (j *WatchlistJob) Schedule() string {
	return j.watchlist.Schedule
}

// Run analyzes every symbol. It fails only when no symbol could be analyzed,
// so a partial outage does not trigger a full retry.
func (j *WatchlistJob) Run(ctx context.Context) error {
	if len(j.watchlist.Symbols) == 0 {
		j.logger.Debug("Watchlist empty, nothing to analyze")
		return nil
	}

	j.logger.WithField("symbols", len(j.watchlist.Symbols)).Info("Starting watchlist analysis")

	results := j.analyzer.AnalyzeBatch(ctx, j.watchlist.Symbols, j.watchlist.HorizonWeeks, j.watchlist.Parallel)

	actions := map[contracts.Action]int{}
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Symbol, r.Err))
			continue
		}
		actions[r.Report.Recommendation.Action]++

		if j.publisher != nil {
			j.publisher.Publish(r.Report)
		}
		if j.watchlist.Alerts {
			if err := j.notifier.Notify(ctx, r.Report); err != nil {
				j.logger.WithError(err).WithField("symbol", r.Symbol).Warn("Alert not delivered")
			}
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"buy":    actions[contracts.ActionBuy],
		"sell":   actions[contracts.ActionSell],
		"hold":   actions[contracts.ActionHold],
		"failed": len(errs),
	}).Info("Watchlist analysis completed")

	if len(errs) == len(results) {
		return fmt.Errorf("watchlist analysis failed for every symbol: %w", errors.Join(errs...))
	}
	return nil
}
