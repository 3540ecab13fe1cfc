package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/swingtrader/internal/brain"
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/scheduler"
)

func sampleReport() *contracts.AnalysisReport {
	return &contracts.AnalysisReport{
		Symbol:       "TCS.NS",
		GeneratedAt:  time.Date(2025, 3, 7, 16, 30, 0, 0, time.UTC),
		StockInfo:    contracts.StockInfo{Symbol: "TCS.NS", Name: "Tata Consultancy Services", Currency: "INR"},
		CurrentPrice: 100,
		Recommendation: contracts.Recommendation{
			Action:           contracts.ActionBuy,
			Confidence:       85,
			TargetPrice:      105,
			StopLoss:         97,
			RiskLevel:        contracts.RiskLow,
			PositionSize:     "Normal position (3-5% of portfolio)",
			TimeHorizonWeeks: 2,
			WeightedScore:    38.85,
			Reasoning:        "Strong bullish signals across all analyses.",
		},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "Tata Consultancy Services (TCS.NS)")
	assert.Contains(t, out, "BUY  (confidence 85.0%)")
	assert.Contains(t, out, "Target       : 105.00")
	assert.Contains(t, out, "Stop-loss    : 97.00")
	assert.Contains(t, out, "NO DATA")
	assert.Contains(t, out, "Strong bullish signals")
	assert.NotContains(t, out, "Volatility")
}

func TestPrintReport_Failed(t *testing.T) {
	r := sampleReport()
	r.Recommendation = contracts.Recommendation{Action: contracts.ActionHold, Error: "bad input"}

	var buf bytes.Buffer
	printReport(&buf, r)

	assert.Contains(t, buf.String(), "❌ bad input")
	assert.NotContains(t, buf.String(), "Target")
}

func TestPrintBatch(t *testing.T) {
	results := []brain.BatchResult{
		{Symbol: "TCS", Report: sampleReport()},
		{Symbol: "NOPE", Err: contracts.ErrNoPriceData},
	}

	var buf bytes.Buffer
	printBatch(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "TCS.NS")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "❌ NOPE:")
}

func TestToBatchEntries(t *testing.T) {
	entries := toBatchEntries([]brain.BatchResult{
		{Symbol: "TCS", Report: sampleReport()},
		{Symbol: "NOPE", Err: errors.New("boom")},
	})

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Contains(t, decoded[0], "report")
	assert.NotContains(t, decoded[0], "error")
	assert.Equal(t, "boom", decoded[1]["error"])
}

func TestBatchError(t *testing.T) {
	ok := brain.BatchResult{Symbol: "A", Report: sampleReport()}
	bad := brain.BatchResult{Symbol: "B", Err: errors.New("x")}

	assert.NoError(t, batchError(context.Background(), []brain.BatchResult{ok, bad}))
	assert.Error(t, batchError(context.Background(), []brain.BatchResult{bad}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, batchError(ctx, []brain.BatchResult{ok}), context.Canceled)
}

func TestPrintJobStats(t *testing.T) {
	last := time.Date(2025, 3, 7, 16, 30, 0, 0, time.UTC)
	stats := map[string]scheduler.JobStats{
		"watchlist_analysis": {Schedule: "0 30 16 * * 1-5", TotalRuns: 4, SuccessCount: 3, FailureCount: 1, SuccessRate: 0.75, LastRun: &last},
		"another":            {Schedule: "@daily"},
	}

	var buf bytes.Buffer
	printJobStats(&buf, stats)

	out := buf.String()
	assert.Contains(t, out, "3 (75.0%)")
	assert.Contains(t, out, "2025-03-07 16:30:00")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("another")), bytes.Index(buf.Bytes(), []byte("watchlist_analysis")))
}
