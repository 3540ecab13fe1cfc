package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/swingtrader/internal/contracts"
	"github.com/wonny/swingtrader/internal/external/news"
	"github.com/wonny/swingtrader/internal/sentiment"
)

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news [company name]",
	Short: "뉴스 수집 결과 확인",
	Long: `글로벌/인도 시장/기업 뉴스를 수집해 분석용 텍스트로 출력합니다.
--sentiment를 주면 카테고리별 감성 점수를 함께 출력합니다.

Example:
  go run ./cmd/swing news "Tata Motors"
  go run ./cmd/swing news Infosys --sentiment`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNews,
}

var newsSentiment bool

func init() {
	rootCmd.AddCommand(newsCmd)

	newsCmd.Flags().BoolVar(&newsSentiment, "sentiment", false, "score the collected articles")
}

func runNews(cmd *cobra.Command, args []string) error {
	company := strings.Join(args, " ")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	collection, err := a.fetcher.FetchAll(ctx, company, "")
	if err != nil {
		return fmt.Errorf("fetch news: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, news.FormatForAnalysis(collection))

	if newsSentiment {
		agg := sentiment.NewAnalyzer(a.log).Aggregate(collection)
		fmt.Fprintln(out, doubleLine)
		fmt.Fprintf(out, "  Overall: %+.3f %s (%d articles)\n", agg.Overall, agg.OverallLabel, agg.TotalCount)
		for _, c := range contracts.AllCategories {
			cs := agg.Categories[c]
			fmt.Fprintf(out, "  %-22s %+.3f %s (%d)\n", c.Title(), cs.AverageSentiment, cs.Label, cs.Count)
		}
		fmt.Fprintln(out, doubleLine)
	}
	return nil
}
