package commands

import (
	"fmt"

	"github.com/kotraore/stock-forecast-dashboard/internal/external/yahoo"
	"github.com/kotraore/stock-forecast-dashboard/internal/forecaster"
	"github.com/kotraore/stock-forecast-dashboard/internal/snapshot"
	"github.com/kotraore/stock-forecast-dashboard/pkg/config"
	"github.com/kotraore/stock-forecast-dashboard/pkg/httputil"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

// loadConfig loads the env config and applies global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newLogger creates the CLI logger from the resolved config.
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(cfg)
}

// resolveTickers applies the watchlist file over the env config and
// returns the symbols to process. 플래그 > 워치리스트 파일 > 기본 목록
func resolveTickers(cfg *config.Config) ([]string, error) {
	tickers := config.DefaultTickers

	if watchlistFile != "" {
		wl, err := config.LoadWatchlist(watchlistFile)
		if err != nil {
			return nil, err
		}

		if len(wl.Tickers) > 0 {
			tickers = wl.Tickers
		}
		if wl.HorizonDays > 0 {
			cfg.Forecast.HorizonDays = wl.HorizonDays
		}
		if wl.Period != "" {
			cfg.Forecast.Period = wl.Period
		}
		if wl.Model != "" {
			cfg.Forecast.Model = wl.Model
		}
	}

	return tickers, nil
}

// newService wires provider → forecaster → aggregator → writer.
func newService(cfg *config.Config, log *logger.Logger, tickers []string) (*snapshot.Service, error) {
	httpClient := httputil.New(cfg, log)
	provider := yahoo.NewClient(cfg.Provider.BaseURL, httpClient, log)

	model, err := forecaster.New(cfg.Forecast.Model)
	if err != nil {
		return nil, fmt.Errorf("create forecaster: %w", err)
	}

	agg := snapshot.NewAggregator(provider, model, cfg.Forecast.Period, log.Zerolog())
	writer := snapshot.NewWriter(log.Zerolog())

	return snapshot.NewService(agg, writer, tickers, cfg.Forecast.HorizonDays, cfg.OutputPath), nil
}
