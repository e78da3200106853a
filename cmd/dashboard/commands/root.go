package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	watchlistFile string
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "주가 예측 대시보드 데이터 파이프라인",
	Long: `Stock Forecast Dashboard CLI

일별 종가를 수집하고 단기 예측과 매매 신호를 계산해
대시보드용 JSON 스냅샷 문서를 생성합니다.

Usage:
  go run ./cmd/dashboard [command]

Examples:
  go run ./cmd/dashboard run
  go run ./cmd/dashboard run --tickers AAPL,MSFT --days 7
  go run ./cmd/dashboard serve
  go run ./cmd/dashboard schedule`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&watchlistFile, "watchlist", "", "watchlist YAML file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
