package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/pkg/logger"
)

const maxHorizonWeeks = 52

// StockAnalyzer runs the full analysis for one symbol
type StockAnalyzer interface {
	AnalyzeStock(ctx context.Context, symbol string, weeks int) (*contracts.AnalysisReport, error)
}

// Publisher receives reports produced through the API
type Publisher interface {
	Publish(report *contracts.AnalysisReport)
}

// AnalysisHandler handles analysis and recommendation endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	analyzer     StockAnalyzer
	synthesizer  *recommend.Synthesizer
	publisher    Publisher
	defaultWeeks int
	timeout      time.Duration
	logger       *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler; publisher may be nil
func NewAnalysisHandler(analyzer StockAnalyzer, synthesizer *recommend.Synthesizer, publisher Publisher, defaultWeeks int, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:     analyzer,
		synthesizer:  synthesizer,
		publisher:    publisher,
		defaultWeeks: defaultWeeks,
		timeout:      90 * time.Second,
		logger:       log,
	}
}

// GetAnalysis runs a full analysis
// GET /api/analysis/{symbol}?weeks=2
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	weeks, err := h.parseWeeks(r.URL.Query().Get("weeks"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	report, err := h.analyzer.AnalyzeStock(ctx, symbol, weeks)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.WithError(err).WithField("symbol", symbol).Error("Analysis failed")
		}
		respondError(w, status, err.Error())
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(report)
	}
	respondJSON(w, http.StatusOK, report)
}

// RecommendationRequest carries analyses computed elsewhere
type RecommendationRequest struct {
	Symbol           string                          `json:"symbol"`
	CurrentPrice     float64                         `json:"current_price"`
	TimeHorizonWeeks int                             `json:"time_horizon_weeks"`
	Technical        contracts.TechnicalAnalysis     `json:"technical_analysis"`
	Fundamental      contracts.FundamentalAssessment `json:"fundamental_analysis"`
	Sentiment        contracts.SentimentAggregate    `json:"sentiment_analysis"`
	History          []contracts.PriceBar            `json:"historical_ohlc"`
}

// PostRecommendation synthesizes a recommendation from supplied analyses.
// Synthesis failures come back as 200 with a HOLD and the error field set.
// POST /api/recommendation
func (h *AnalysisHandler) PostRecommendation(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.CurrentPrice <= 0 {
		respondError(w, http.StatusBadRequest, "current_price must be > 0")
		return
	}
	if req.TimeHorizonWeeks == 0 {
		req.TimeHorizonWeeks = h.defaultWeeks
	}
	if req.TimeHorizonWeeks < 1 || req.TimeHorizonWeeks > maxHorizonWeeks {
		respondError(w, http.StatusBadRequest, "time_horizon_weeks must be between 1 and 52")
		return
	}

	rec := h.synthesizer.Synthesize(recommend.Input{
		Symbol:           req.Symbol,
		CurrentPrice:     req.CurrentPrice,
		TimeHorizonWeeks: req.TimeHorizonWeeks,
		Technical:        req.Technical.Signals,
		Indicators:       req.Technical.Indicators,
		Fundamental:      req.Fundamental,
		Sentiment:        req.Sentiment,
		History:          req.History,
	})

	respondJSON(w, http.StatusOK, rec)
}

func (h *AnalysisHandler) parseWeeks(raw string) (int, error) {
	if raw == "" {
		return h.defaultWeeks, nil
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil || weeks < 1 || weeks > maxHorizonWeeks {
		return 0, errors.New("weeks must be an integer between 1 and 52")
	}
	return weeks, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrNoPriceData):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
