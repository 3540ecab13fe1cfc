package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wonny/swingtrader/internal/brain"
	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/scheduler"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	doubleLine = "═══════════════════════════════════════════════════════════"
	singleLine = "───────────────────────────────────────────────────────────"
)

var actionIcon = map[contracts.Action]string{
	contracts.ActionBuy:  "🟢",
	contracts.ActionSell: "🔴",
	contracts.ActionHold: "⚪",
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport renders one analysis for the terminal
func printReport(w io.Writer, r *contracts.AnalysisReport) {
	rec := r.Recommendation

	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleLine)
	name := r.StockInfo.Name
	if name == "" {
		name = r.Symbol
	}
	fmt.Fprintf(w, "  %s (%s)\n", name, r.Symbol)
	fmt.Fprintln(w, singleLine)
	printKeyValue(w, "Price", fmt.Sprintf("%.2f %s", r.CurrentPrice, r.StockInfo.Currency))
	if r.StockInfo.Sector != "" {
		printKeyValue(w, "Sector", r.StockInfo.Sector)
	}
	printKeyValue(w, "Generated", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, singleLine)

	fmt.Fprintf(w, "  %s %s  (confidence %.1f%%)\n", actionIcon[rec.Action], rec.Action, rec.Confidence)
	if rec.Failed() {
		fmt.Fprintf(w, "  ❌ %s\n", rec.Error)
	} else {
		printKeyValue(w, "Target", fmt.Sprintf("%.2f", rec.TargetPrice))
		printKeyValue(w, "Stop-loss", fmt.Sprintf("%.2f", rec.StopLoss))
		printKeyValue(w, "Risk", string(rec.RiskLevel))
		printKeyValue(w, "Horizon", fmt.Sprintf("%d weeks", rec.TimeHorizonWeeks))
		printKeyValue(w, "Position", rec.PositionSize)
		printKeyValue(w, "Score", fmt.Sprintf("%.2f (T %.2f / F %.2f / S %.2f)",
			rec.WeightedScore,
			rec.ScoreBreakdown.Technical,
			rec.ScoreBreakdown.Fundamental,
			rec.ScoreBreakdown.Sentiment,
		))
	}
	fmt.Fprintln(w, singleLine)

	sig := r.Technical.Signals
	fmt.Fprintf(w, "  Technical    : strength %.1f (buy %d / sell %d / neutral %d)\n",
		sig.SignalStrength, sig.BuySignals, sig.SellSignals, sig.NeutralSignals)
	printList(w, sig.Reasoning)

	fmt.Fprintf(w, "  Fundamental  : %.1f/100 %s (%d metrics)\n",
		r.Fundamental.Score, r.Fundamental.OverallAssessment, r.Fundamental.MetricsPresent)
	printList(w, r.Fundamental.Strengths)
	printList(w, r.Fundamental.Weaknesses)

	label := r.Sentiment.OverallLabel
	if label == "" {
		label = "NO DATA"
	}
	fmt.Fprintf(w, "  Sentiment    : %+.3f %s (%d articles: global %d / india %d / company %d)\n",
		r.Sentiment.Overall, label, r.Sentiment.TotalCount,
		r.NewsSummary.GlobalNewsCount, r.NewsSummary.IndianNewsCount, r.NewsSummary.CompanyNewsCount)

	if r.Risk.Samples > 0 {
		fmt.Fprintf(w, "  Volatility   : %.2f%% daily, %.1f%% annualized, VaR95 %.2f%%\n",
			r.Risk.DailyVolatility*100, r.Risk.AnnualizedVolatility*100, r.Risk.Historical.VaR*100)
	}

	if rec.Reasoning != "" {
		fmt.Fprintln(w, singleLine)
		fmt.Fprintf(w, "  %s\n", rec.Reasoning)
	}
	fmt.Fprintln(w, doubleLine)
}

// printBatch renders a one-line-per-symbol summary table
func printBatch(w io.Writer, results []brain.BatchResult) {
	widths := []int{14, 6, 8, 10, 10, 8}
	printTableHeader(w, []string{"SYMBOL", "ACTION", "CONF", "TARGET", "STOP", "RISK"}, widths)
	for _, res := range results {
		if res.Err != nil {
			printTableRow(w, []string{res.Symbol, "ERROR", "-", "-", "-", "-"}, widths)
			continue
		}
		rec := res.Report.Recommendation
		printTableRow(w, []string{
			res.Report.Symbol,
			string(rec.Action),
			fmt.Sprintf("%.1f", rec.Confidence),
			fmt.Sprintf("%.2f", rec.TargetPrice),
			fmt.Sprintf("%.2f", rec.StopLoss),
			string(rec.RiskLevel),
		}, widths)
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "❌ %s: %v\n", res.Symbol, res.Err)
		}
	}
}

// printJobStats renders scheduler statistics sorted by job name
func printJobStats(w io.Writer, stats map[string]scheduler.JobStats) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		stat := stats[name]
		fmt.Fprintf(w, "📊 %s\n", name)
		printKeyValue(w, "Schedule", stat.Schedule)
		printKeyValue(w, "Total Runs", fmt.Sprintf("%d", stat.TotalRuns))
		printKeyValue(w, "Success", fmt.Sprintf("%d (%.1f%%)", stat.SuccessCount, stat.SuccessRate*100))
		printKeyValue(w, "Failures", fmt.Sprintf("%d", stat.FailureCount))
		if stat.LastRun != nil {
			printKeyValue(w, "Last Run", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(w)
	}
}

func printTableHeader(w io.Writer, columns []string, widths []int) {
	printTableRow(w, columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", total))
}

func printTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

func printList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "     • %s\n", item)
	}
}

func printKeyValue(w io.Writer, key string, value string) {
	fmt.Fprintf(w, "  %-12s : %s\n", key, value)
}
