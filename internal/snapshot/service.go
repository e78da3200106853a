package snapshot

import (
	"context"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

// Service binds the aggregator and writer to a fixed watchlist so the
// CLI, API server and scheduler all regenerate the document the same way.
type Service struct {
	agg        *Aggregator
	writer     *Writer
	tickers    []string
	horizon    int
	outputPath string
}

// NewService creates a snapshot service.
func NewService(agg *Aggregator, writer *Writer, tickers []string, horizonDays int, outputPath string) *Service {
	return &Service{
		agg:        agg,
		writer:     writer,
		tickers:    tickers,
		horizon:    horizonDays,
		outputPath: outputPath,
	}
}

// Refresh runs the full pipeline and writes the artifact. Per-symbol
// failures are reported in the results, not as the returned error; only
// a write failure is fatal.
func (s *Service) Refresh(ctx context.Context) (*contracts.SnapshotDocument, []contracts.TickerResult, error) {
	doc, results := s.agg.Run(ctx, s.tickers, s.horizon)
	if err := s.writer.Write(doc, s.outputPath); err != nil {
		return nil, results, err
	}
	return doc, results, nil
}

// OutputPath returns the artifact location.
func (s *Service) OutputPath() string {
	return s.outputPath
}
