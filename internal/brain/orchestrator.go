package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/fundamental"
	"github.com/wonny/swingtrader/internal/indicators"
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/internal/risk"
	"github.com/wonny/swingtrader/internal/sentiment"
	"github.com/wonny/swingtrader/internal/technical"
	"github.com/wonny/swingtrader/pkg/logger"
	"github.com/wonny/swingtrader/pkg/tracing"
)

// Orchestrator runs one symbol through fetch → analyze → synthesize
// ⭐ SSOT: 분석 파이프라인 조율은 여기서만
type Orchestrator struct {
	// Sources
	market contracts.MarketDataProvider
	news   contracts.NewsProvider

	// Stage components
	calculator  *indicators.Calculator
	summarizer  *technical.Summarizer
	scorer      *fundamental.Scorer
	analyzer    *sentiment.Analyzer
	riskEngine  *risk.Engine
	synthesizer *recommend.Synthesizer

	defaultWeeks int
	logger       *logger.Logger
	now          func() time.Time
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	market contracts.MarketDataProvider,
	news contracts.NewsProvider,
	summarizer *technical.Summarizer,
	scorer *fundamental.Scorer,
	analyzer *sentiment.Analyzer,
	synthesizer *recommend.Synthesizer,
	defaultWeeks int,
	logger *logger.Logger,
) *Orchestrator {
	if defaultWeeks < 1 {
		defaultWeeks = 2
	}
	return &Orchestrator{
		market:       market,
		news:         news,
		calculator:   indicators.NewCalculator(logger),
		summarizer:   summarizer,
		scorer:       scorer,
		analyzer:     analyzer,
		riskEngine:   risk.NewEngine(),
		synthesizer:  synthesizer,
		defaultWeeks: defaultWeeks,
		logger:       logger,
		now:          time.Now,
	}
}

// Synthesizer exposes the synthesizer for callers that bring their own analyses
func (o *Orchestrator) Synthesizer() *recommend.Synthesizer {
	return o.synthesizer
}

// AnalyzeStock fetches data for symbol, runs the three analyses
// concurrently and synthesizes a recommendation.
// A missing current price is terminal (ErrNoPriceData); missing news is not.
func (o *Orchestrator) AnalyzeStock(ctx context.Context, symbol string, weeks int) (*contracts.AnalysisReport, error) {
	start := o.now()
	if weeks < 1 {
		weeks = o.defaultWeeks
	}

	ctx, span := tracing.Start(ctx, "brain.AnalyzeStock")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol), attribute.Int("weeks", weeks))

	runID := uuid.NewString()
	log := o.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"run_id": runID,
		"symbol": symbol,
	})
	log.WithField("weeks", weeks).Info("Starting analysis")

	// 1. Market data
	bundle, err := o.fetchMarket(ctx, symbol)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 2. News (needs the company name from step 1)
	news := o.fetchNews(ctx, bundle, log)

	// 3. Analyses
	report := &contracts.AnalysisReport{
		RunID:        runID,
		Symbol:       bundle.Info.Symbol,
		GeneratedAt:  start,
		StockInfo:    bundle.Info,
		CurrentPrice: *bundle.CurrentPrice,
		NewsSummary:  news.Summary(),
	}
	if err := o.analyze(ctx, bundle, news, report); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 4. Recommendation
	_, synthSpan := tracing.Start(ctx, "brain.synthesize")
	report.Recommendation = o.synthesizer.Synthesize(recommend.Input{
		Symbol:           report.Symbol,
		CurrentPrice:     report.CurrentPrice,
		TimeHorizonWeeks: weeks,
		Technical:        report.Technical.Signals,
		Indicators:       report.Technical.Indicators,
		Fundamental:      report.Fundamental,
		Sentiment:        report.Sentiment,
		History:          bundle.History,
	})
	synthSpan.End()

	report.Duration = o.now().Sub(start)
	span.SetAttributes(attribute.String("action", string(report.Recommendation.Action)))

	log.WithFields(map[string]interface{}{
		"action":     report.Recommendation.Action,
		"confidence": report.Recommendation.Confidence,
		"duration":   report.Duration.String(),
	}).Info("Analysis completed")

	return report, nil
}

func (o *Orchestrator) fetchMarket(ctx context.Context, symbol string) (*contracts.StockDataBundle, error) {
	ctx, span := tracing.Start(ctx, "brain.fetchMarket")
	defer span.End()

	bundle, err := o.market.Fetch(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if bundle == nil || bundle.CurrentPrice == nil {
		return nil, fmt.Errorf("%s: %w", symbol, contracts.ErrNoPriceData)
	}
	if bundle.Info.Symbol == "" {
		bundle.Info.Symbol = symbol
	}
	return bundle, nil
}

func (o *Orchestrator) fetchNews(ctx context.Context, bundle *contracts.StockDataBundle, log *logger.Logger) contracts.NewsCollection {
	ctx, span := tracing.Start(ctx, "brain.fetchNews")
	defer span.End()

	empty := contracts.NewsCollection{}
	if o.news == nil {
		return empty
	}

	news, err := o.news.FetchAll(ctx, bundle.CompanyName(), bundle.Info.Symbol)
	if err != nil {
		log.WithError(err).Warn("News unavailable, continuing without sentiment")
		return empty
	}
	return news
}

// analyze runs the technical, fundamental, sentiment and risk stages
// concurrently and writes their results into report
func (o *Orchestrator) analyze(ctx context.Context, bundle *contracts.StockDataBundle, news contracts.NewsCollection, report *contracts.AnalysisReport) error {
	ctx, span := tracing.Start(ctx, "brain.analyze")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ind := o.calculator.Calculate(report.Symbol, bundle.History)
		report.Technical = contracts.TechnicalAnalysis{
			Indicators: ind,
			Signals:    o.summarizer.Summarize(ind),
		}
		return gctx.Err()
	})

	g.Go(func() error {
		report.Fundamental = o.scorer.Score(bundle.Ratios)
		return gctx.Err()
	})

	g.Go(func() error {
		report.Sentiment = o.analyzer.Aggregate(news)
		return gctx.Err()
	})

	g.Go(func() error {
		report.Risk = o.riskEngine.Assess(contracts.Closes(bundle.History))
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("analyze %s: %w", report.Symbol, err)
	}
	return nil
}
