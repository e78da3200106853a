package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kotraore/stock-forecast-dashboard/internal/scheduler"
	"github.com/kotraore/stock-forecast-dashboard/internal/scheduler/jobs"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러 실행 (주기적 스냅샷 갱신)",
	Long: `cron 스케줄에 따라 스냅샷 문서를 주기적으로 재생성합니다.

스케줄 표현식은 초 필드를 포함합니다 (초 분 시 일 월 요일).
기본: "0 30 21 * * MON-FRI" — 평일 21:30 (장 마감 후).

Example:
  go run ./cmd/dashboard schedule
  SCHEDULE_SPEC="0 0 */6 * * *" go run ./cmd/dashboard schedule
  go run ./cmd/dashboard schedule --now`,
	RunE: runSchedule,
}

var scheduleRunNow bool

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "now", false, "시작하면서 즉시 1회 실행")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Snapshot Scheduler ===")

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

	sched := scheduler.New(log)
	job := jobs.NewSnapshotJob(service, cfg.ScheduleSpec, log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if scheduleRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
