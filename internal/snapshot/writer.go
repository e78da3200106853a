package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

// Writer serializes a SnapshotDocument to the output artifact.
// ⭐ SSOT: 결과 문서 쓰기는 여기서만
type Writer struct {
	log zerolog.Logger
}

// NewWriter creates a new document writer.
func NewWriter(log zerolog.Logger) *Writer {
	return &Writer{log: log.With().Str("component", "snapshot.writer").Logger()}
}

// Write renders the document as indented JSON at path, creating parent
// directories as needed. Failure here is fatal to the run, unlike
// per-symbol failures.
func (w *Writer) Write(doc *contracts.SnapshotDocument, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", path, err)
	}

	w.log.Info().
		Str("path", path).
		Int("snapshots", len(doc.Snapshots)).
		Msg("document written")

	return nil
}
