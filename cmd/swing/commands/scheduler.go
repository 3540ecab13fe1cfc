package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `관심종목 정기 분석 스케줄러를 시작하거나 작업을 실행합니다.

관심종목, 주기, 알림 여부는 전략 YAML의 watchlist 섹션에서 읽습니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/swing scheduler start
  go run ./cmd/swing scheduler list
  go run ./cmd/swing scheduler run watchlist_analysis`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- watchlist_analysis: 기본 평일 16:30 (Asia/Kolkata), BUY/SELL은 Telegram 알림

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Swing Trader Scheduler ===")

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler(nil)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Printf("\nWatchlist: %v\n", a.strategy.Watchlist.Symbols)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler(nil)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	printJobStats(cmd.OutOrStdout(), sched.GetJobStats())
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := a.newScheduler(nil)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	result, err := sched.RunNow(ctx, jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	printJobStats(cmd.OutOrStdout(), sched.GetJobStats())
	if !result.Success {
		return fmt.Errorf("job %s failed: %s", jobName, result.Error)
	}
	fmt.Printf("✅ Job %s completed in %s\n", jobName, result.Duration)
	return nil
}
