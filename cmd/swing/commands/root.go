package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swing",
	Short: "Swing trading recommendation engine",
	Long: `Swing Trader CLI

NSE 종목의 기술적/펀더멘털/뉴스 감성 분석을 합쳐
BUY / SELL / HOLD 스윙 추천을 생성합니다.

Usage:
  go run ./cmd/swing [command]

Examples:
  go run ./cmd/swing analyze RELIANCE
  go run ./cmd/swing analyze TCS --weeks 4 --json
  go run ./cmd/swing api --port 8089
  go run ./cmd/swing scheduler start
  go run ./cmd/swing news "Tata Motors"`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML (default: STRATEGY_PATH or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
