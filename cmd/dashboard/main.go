package main

import (
	"os"

	"github.com/kotraore/stock-forecast-dashboard/cmd/dashboard/commands"
)

// main is the entry point for the dashboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dashboard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
