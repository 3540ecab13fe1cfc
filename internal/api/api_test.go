package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/internal/api/handlers"
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/recommend"
	"github.com/wonny/swingtrader/internal/scheduler"
	"github.com/wonny/swingtrader/pkg/logger"
)

type fakeAnalyzer struct {
	weeks int
}

func (f *fakeAnalyzer) AnalyzeStock(_ context.Context, symbol string, weeks int) (*contracts.AnalysisReport, error) {
	f.weeks = weeks
	switch symbol {
	case "NOPRICE":
		return nil, fmt.Errorf("%s: %w", symbol, contracts.ErrNoPriceData)
	case "UPSTREAM":
		return nil, fmt.Errorf("yahoo: 503")
	}
	return &contracts.AnalysisReport{
		Symbol:         symbol + ".NS",
		CurrentPrice:   100,
		Recommendation: contracts.Recommendation{Action: contracts.ActionBuy, Confidence: 85},
	}, nil
}

type fakeStats struct{}

func (fakeStats) GetJobStats() map[string]scheduler.JobStats {
	return map[string]scheduler.JobStats{"watchlist_analysis": {JobName: "watchlist_analysis", TotalRuns: 3}}
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeAnalyzer, *Hub) {
	t.Helper()
	log := logger.NewNop()

	analyzer := &fakeAnalyzer{}
	hub := NewHub(log)
	analysis := handlers.NewAnalysisHandler(analyzer, recommend.NewSynthesizer(log), hub, 2, log)

	srv := httptest.NewServer(NewRouter(analysis, handlers.NewJobsHandler(fakeStats{}), hub, log))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, analyzer, hub
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetAnalysis(t *testing.T) {
	srv, analyzer, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		weeks  int
	}{
		{"default horizon", "/api/analysis/TCS", http.StatusOK, 2},
		{"explicit horizon", "/api/analysis/TCS?weeks=4", http.StatusOK, 4},
		{"bad weeks", "/api/analysis/TCS?weeks=abc", http.StatusBadRequest, 0},
		{"weeks too large", "/api/analysis/TCS?weeks=53", http.StatusBadRequest, 0},
		{"no price", "/api/analysis/NOPRICE", http.StatusNotFound, 2},
		{"upstream failure", "/api/analysis/UPSTREAM", http.StatusBadGateway, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer.weeks = 0

			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.weeks, analyzer.weeks)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestGetAnalysis_ErrorBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/analysis/NOPRICE")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOPRICE: could not fetch data", body["error"])
}

func TestPostRecommendation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	payload := `{
		"symbol": "TCS.NS",
		"current_price": 100,
		"time_horizon_weeks": 2,
		"technical_analysis": {"signals": {"signal_strength": 60, "reasoning": []}},
		"fundamental_analysis": {"score": 80, "overall_assessment": "STRONG"},
		"sentiment_analysis": {"overall_sentiment": 0.3, "overall_sentiment_label": "POSITIVE"}
	}`

	resp, err := http.Post(srv.URL+"/api/recommendation", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec contracts.Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, contracts.ActionBuy, rec.Action)
	assert.Equal(t, 38.85, rec.WeightedScore)
	assert.Equal(t, 85.0, rec.Confidence)
	assert.Equal(t, 105.0, rec.TargetPrice)
	assert.Equal(t, 97.0, rec.StopLoss)
	assert.Equal(t, contracts.RiskLow, rec.RiskLevel)
}

func TestPostRecommendation_BadRequests(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for name, body := range map[string]string{
		"not json":        `{`,
		"no price":        `{"symbol": "TCS"}`,
		"horizon too big": `{"current_price": 10, "time_horizon_weeks": 100}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/recommendation", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetJobs(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/jobs")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats map[string]scheduler.JobStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 3, stats["watchlist_analysis"].TotalRuns)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/recommendation", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebsocketReceivesPublishedReports(t *testing.T) {
	srv, _, hub := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	// a successful API analysis is pushed to stream clients
	resp, err := http.Get(srv.URL + "/api/analysis/TCS")
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "recommendation", msg.Type)
	require.NotNil(t, msg.Data)
	assert.Equal(t, "TCS.NS", msg.Data.Symbol)
	assert.Equal(t, contracts.ActionBuy, msg.Data.Recommendation.Action)
}

func TestHub_DropsClosedClients(t *testing.T) {
	srv, _, hub := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)

	// publishing with no clients is a no-op
	hub.Publish(&contracts.AnalysisReport{Symbol: "X"})
}
