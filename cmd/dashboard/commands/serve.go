package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kotraore/stock-forecast-dashboard/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "대시보드 API 서버 실행",
	Long: `생성된 스냅샷 문서를 제공하는 HTTP 서버를 실행합니다.

Endpoints:
  GET  /health       헬스 체크
  GET  /api/summary  마지막 스냅샷 문서
  POST /api/refresh  스냅샷 재생성

Example:
  go run ./cmd/dashboard serve
  PORT=9090 go run ./cmd/dashboard serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Dashboard API Server ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tickers, err := resolveTickers(cfg)
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	service, err := newService(cfg, log, tickers)
	if err != nil {
		return err
	}

	handler := api.NewSummaryHandler(service, log)
	router := api.NewRouter(handler, log)
	server := api.New(cfg, log, router)

	// Graceful shutdown on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
