package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "스냅샷 1회 생성",
	Long: `워치리스트의 각 종목에 대해 시세 수집 → 예측 → 신호 계산을
순차 실행하고 결과 문서를 JSON으로 기록합니다.

한 종목의 실패는 해당 종목만 건너뛰며 런 전체는 계속됩니다.

Example:
  go run ./cmd/dashboard run
  go run ./cmd/dashboard run --tickers AAPL,MSFT,TSLA --days 14
  go run ./cmd/dashboard run --model holt --out data/summary.json`,
	RunE: runSnapshot,
}

var (
	// run 플래그
	runTickers []string
	runDays    int
	runPeriod  string
	runModel   string
	runOut     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVar(&runTickers, "tickers", nil, "쉼표 구분 종목 목록 (기본: 내장 워치리스트)")
	runCmd.Flags().IntVar(&runDays, "days", 0, "예측 기간 (일, 기본 7)")
	runCmd.Flags().StringVar(&runPeriod, "period", "", "시세 조회 구간 (예: 6mo)")
	runCmd.Flags().StringVar(&runModel, "model", "", "예측 모델 (linear|holt)")
	runCmd.Flags().StringVar(&runOut, "out", "", "출력 파일 경로")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Stock Forecast Snapshot ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tickers, err := resolveTickers(cfg)
	if err != nil {
		return err
	}

	// Flags win over watchlist and env
	if len(runTickers) > 0 {
		tickers = runTickers
	}
	if runDays > 0 {
		cfg.Forecast.HorizonDays = runDays
	}
	if runPeriod != "" {
		cfg.Forecast.Period = runPeriod
	}
	if runModel != "" {
		cfg.Forecast.Model = runModel
	}
	if runOut != "" {
		cfg.OutputPath = runOut
	}

	log := newLogger(cfg)

	service, err := newService(cfg, log, tickers)
	if err != nil {
		return err
	}

	doc, results, err := service.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	printResults(results)
	printSummaryTable(doc.Snapshots)

	fmt.Printf("\nWrote %s (%d/%d tickers)\n", cfg.OutputPath, len(doc.Snapshots), len(tickers))
	return nil
}

// printResults prints one diagnostic line per ticker.
func printResults(results []contracts.TickerResult) {
	fmt.Println()
	for _, res := range results {
		if res.OK() {
			horizonEnd := res.Snapshot.LatestPrice
			if len(res.Snapshot.Forecast) > 0 {
				horizonEnd = res.Snapshot.Forecast[len(res.Snapshot.Forecast)-1]
			}
			fmt.Printf("✔ %s: latest %.2f → %.2f (%.2f%%)\n",
				res.Ticker, res.Snapshot.LatestPrice, horizonEnd, res.Snapshot.PctChange7D)
		} else {
			fmt.Printf("✖ %s: %v\n", res.Ticker, res.Err)
		}
	}
}

// printSummaryTable renders the per-ticker metrics as a console table.
func printSummaryTable(snapshots []contracts.Snapshot) {
	if len(snapshots) == 0 {
		return
	}

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Ticker", "Latest", "Next day", "Horizon %", "Mom 5d %", "Vol %", "Signal")

	for _, s := range snapshots {
		table.Append(
			s.Ticker,
			fmt.Sprintf("%.2f", s.LatestPrice),
			fmt.Sprintf("%.2f", s.NextDayPrice),
			fmt.Sprintf("%+.2f", s.PctChange7D),
			fmt.Sprintf("%+.2f", s.Momentum5D),
			fmt.Sprintf("%.2f", s.AnnualizedVol),
			string(s.Signal),
		)
	}

	table.Render()
}
