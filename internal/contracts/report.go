package contracts

import (
	"time"

	"github.com/wonny/swingtrader/internal/risk"
)

// AnalysisReport is the complete per-symbol analysis
// ⭐ SSOT: 분석 결과 → CLI/API/알림 전달
type AnalysisReport struct {
	RunID          string                `json:"run_id"`
	Symbol         string                `json:"symbol"`
	GeneratedAt    time.Time             `json:"generated_at"`
	StockInfo      StockInfo             `json:"stock_info"`
	CurrentPrice   float64               `json:"current_price"`
	Technical      TechnicalAnalysis     `json:"technical_analysis"`
	Fundamental    FundamentalAssessment `json:"fundamental_analysis"`
	Sentiment      SentimentAggregate    `json:"sentiment_analysis"`
	Risk           risk.Metrics          `json:"risk_metrics"`
	Recommendation Recommendation        `json:"recommendation"`
	NewsSummary    NewsSummary           `json:"news_summary"`
	Duration       time.Duration         `json:"duration_ns"`
}
