package snapshot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
	"github.com/kotraore/stock-forecast-dashboard/internal/insight"
)

// Aggregator drives the per-symbol pipeline and assembles the final
// document. 한 종목의 실패는 런 전체를 중단시키지 않는다: partial failure
// is normal operation, captured per symbol in TickerResult.
type Aggregator struct {
	provider   contracts.SeriesProvider
	forecaster contracts.Forecaster
	deriver    *insight.Deriver
	period     string
	log        zerolog.Logger
}

// NewAggregator creates a new snapshot aggregator.
func NewAggregator(provider contracts.SeriesProvider, forecaster contracts.Forecaster, period string, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		provider:   provider,
		forecaster: forecaster,
		deriver:    insight.NewDeriver(),
		period:     period,
		log:        log.With().Str("component", "snapshot.aggregator").Logger(),
	}
}

// Run processes the symbols in order and returns the document plus the
// per-symbol results. An empty symbol list is legal and produces a
// document with zero snapshots.
func (a *Aggregator) Run(ctx context.Context, tickers []string, horizonDays int) (*contracts.SnapshotDocument, []contracts.TickerResult) {
	results := make([]contracts.TickerResult, 0, len(tickers))
	snapshots := make([]contracts.Snapshot, 0, len(tickers))

	for _, ticker := range tickers {
		select {
		case <-ctx.Done():
			a.log.Warn().Msg("context cancelled during snapshot run")
			return a.document(tickers, snapshots), results
		default:
		}

		snap, err := a.process(ctx, ticker, horizonDays)
		if err != nil {
			a.log.Error().Err(err).
				Str("ticker", ticker).
				Msg("ticker skipped")
			results = append(results, contracts.TickerResult{Ticker: ticker, Err: err})
			continue
		}

		snapshots = append(snapshots, *snap)
		results = append(results, contracts.TickerResult{Ticker: ticker, Snapshot: snap})

		horizonEnd := snap.LatestPrice
		if len(snap.Forecast) > 0 {
			horizonEnd = snap.Forecast[len(snap.Forecast)-1]
		}
		a.log.Info().
			Str("ticker", ticker).
			Float64("latest", snap.LatestPrice).
			Float64("horizon_end", horizonEnd).
			Float64("pct_change", snap.PctChange7D).
			Str("signal", string(snap.Signal)).
			Msg("ticker snapshot ready")
	}

	a.log.Info().
		Int("requested", len(tickers)).
		Int("succeeded", len(snapshots)).
		Int("failed", len(tickers)-len(snapshots)).
		Msg("snapshot run completed")

	return a.document(tickers, snapshots), results
}

// process runs fetch → forecast → derive for one symbol.
func (a *Aggregator) process(ctx context.Context, ticker string, horizonDays int) (*contracts.Snapshot, error) {
	history, err := a.provider.FetchDaily(ctx, ticker, a.period)
	if err != nil {
		return nil, err
	}

	forecast, err := a.forecaster.FitPredict(history, horizonDays)
	if err != nil {
		return nil, err
	}

	snap := a.deriver.Derive(ticker, history, forecast, horizonDays)
	return &snap, nil
}

func (a *Aggregator) document(tickers []string, snapshots []contracts.Snapshot) *contracts.SnapshotDocument {
	// Requested list is preserved verbatim, failures included.
	requested := make([]string, len(tickers))
	copy(requested, tickers)

	return &contracts.SnapshotDocument{
		GeneratedAt: time.Now().UTC(),
		Tickers:     requested,
		Snapshots:   snapshots,
	}
}
