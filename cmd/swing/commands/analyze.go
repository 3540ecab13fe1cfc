package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/swingtrader/internal/brain"
	"github.com/wonny/swingtrader/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol...]",
	Short: "종목 분석 및 스윙 추천",
	Long: `한 개 이상의 종목을 분석하고 스윙 추천을 출력합니다.

분석 단계:
- 시세/재무 조회 (Kite 또는 Yahoo Finance)
- 뉴스 수집 (RSS, NewsAPI, Moneycontrol)
- 기술적 / 펀더멘털 / 감성 분석 (병렬)
- 가중 합산 → BUY / SELL / HOLD

심볼에 거래소 접미사가 없으면 .NS가 붙습니다.

Example:
  go run ./cmd/swing analyze RELIANCE
  go run ./cmd/swing analyze TCS INFY HDFCBANK --weeks 3
  go run ./cmd/swing analyze RELIANCE.NS --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeWeeks    int
	analyzeJSON     bool
	analyzeParallel int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeWeeks, "weeks", "w", 0, "time horizon in weeks (default: MARKET_DEFAULT_HORIZON_WEEKS)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().IntVarP(&analyzeParallel, "parallel", "p", 2, "symbols analyzed at once")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeWeeks < 0 || analyzeWeeks > 52 {
		return fmt.Errorf("--weeks must be between 1 and 52")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		report, err := a.orchestrator.AnalyzeStock(ctx, args[0], analyzeWeeks)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", args[0], err)
		}
		if analyzeJSON {
			return printJSON(out, report)
		}
		printReport(out, report)
		return nil
	}

	results := a.orchestrator.AnalyzeBatch(ctx, args, analyzeWeeks, analyzeParallel)
	if analyzeJSON {
		if err := printJSON(out, toBatchEntries(results)); err != nil {
			return err
		}
		return batchError(ctx, results)
	}
	printBatch(out, results)
	return batchError(ctx, results)
}

type batchEntry struct {
	Symbol string                    `json:"symbol"`
	Report *contracts.AnalysisReport `json:"report,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

func toBatchEntries(results []brain.BatchResult) []batchEntry {
	entries := make([]batchEntry, len(results))
	for i, r := range results {
		entries[i] = batchEntry{Symbol: r.Symbol, Report: r.Report}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
		}
	}
	return entries
}

// batchError fails the command only when nothing could be analyzed
func batchError(ctx context.Context, results []brain.BatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err == nil {
			return nil
		}
	}
	return fmt.Errorf("no symbol could be analyzed")
}
