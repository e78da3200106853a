package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
	"github.com/kotraore/stock-forecast-dashboard/pkg/logger"
)

// Refresher regenerates the snapshot document on demand.
type Refresher interface {
	Refresh(ctx context.Context) (*contracts.SnapshotDocument, []contracts.TickerResult, error)
	OutputPath() string
}

// SummaryHandler serves the generated document and triggers refreshes.
type SummaryHandler struct {
	refresher Refresher
	logger    *logger.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(refresher Refresher, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{refresher: refresher, logger: log}
}

// GetSummary serves the last written document verbatim.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.refresher.OutputPath())
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "no summary generated yet")
			return
		}
		h.logger.WithError(err).Error("Failed to read summary document")
		writeError(w, http.StatusInternalServerError, "failed to read summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Refresh runs the pipeline and reports the outcome per ticker.
func (h *SummaryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	doc, results, err := h.refresher.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	failed := make(map[string]string)
	for _, res := range results {
		if !res.OK() {
			failed[res.Ticker] = res.Err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": doc.GeneratedAt,
		"requested":    len(doc.Tickers),
		"succeeded":    len(doc.Snapshots),
		"failed":       failed,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
