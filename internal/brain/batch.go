package brain

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/swingtrader/internal/contracts"
)

// BatchResult is the outcome for one symbol of a batch run
type BatchResult struct {
	Symbol string
	Report *contracts.AnalysisReport
	Err    error
}

// AnalyzeBatch analyzes symbols with at most parallel in flight.
// Per-symbol failures are reported in the results, never returned.
// Results keep the input order.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, symbols []string, weeks, parallel int) []BatchResult {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]BatchResult, len(symbols))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			report, err := o.AnalyzeStock(gctx, symbol, weeks)
			results[i] = BatchResult{Symbol: symbol, Report: report, Err: err}
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				o.logger.WithError(err).WithField("symbol", symbol).Warn("Batch analysis failed for symbol")
			}
			return nil
		})
	}
	_ = g.Wait()

	o.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"failed":  failed,
	}).Info("Batch analysis completed")

	return results
}
