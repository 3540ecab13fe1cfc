package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/swingtrader/internal/api"
	"github.com/wonny/swingtrader/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 관심종목 정기 분석 스케줄러 실행 (--no-scheduler로 끌 수 있음)
- 새 추천을 websocket으로 스트리밍

Endpoints:
  GET  /health                   - Health check
  GET  /api/analysis/{symbol}    - 종목 분석 (?weeks=N)
  POST /api/recommendation       - 직접 전달한 분석으로 추천 생성
  GET  /api/jobs                 - 스케줄러 작업 통계
  GET  /ws                       - 추천 스트림 (websocket)

Example:
  go run ./cmd/swing api
  go run ./cmd/swing api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort        string
	apiNoScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
	apiCmd.Flags().BoolVar(&apiNoScheduler, "no-scheduler", false, "관심종목 스케줄러 비활성화")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Swing Trader API Server ===")

	// 1. Wire components
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.log
	log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	// 2. Websocket hub
	hub := api.NewHub(log)
	defer hub.Close()

	// 3. Scheduler
	sched, err := a.newScheduler(hub)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if !apiNoScheduler {
		sched.Start()
	}

	// 4. Handlers + router
	analysisHandler := handlers.NewAnalysisHandler(
		a.orchestrator,
		a.orchestrator.Synthesizer(),
		hub,
		a.cfg.Market.DefaultHorizon,
		log,
	)
	jobsHandler := handlers.NewJobsHandler(sched)
	router := api.NewRouter(analysisHandler, jobsHandler, hub, log)

	// 5. Create server
	server := api.New(a.cfg, log, router)

	// 6. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/analysis/{symbol}")
	fmt.Println("  POST /api/recommendation")
	fmt.Println("  GET  /api/jobs")
	fmt.Println("  GET  /ws")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
