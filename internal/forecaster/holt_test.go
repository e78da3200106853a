package forecaster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

func TestHolt_FitPredict_PerfectTrend(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	history := mkSeries(start, 100, 102, 104, 106, 108)

	points, err := NewHolt().FitPredict(history, 4)
	require.NoError(t, err)
	require.Len(t, points, len(history)+4)

	// On a noiseless linear series level+trend track it exactly, so the
	// extension keeps the same step.
	for k := 1; k <= 4; k++ {
		p := points[len(history)+k-1]
		assert.InDelta(t, 108+2*float64(k), p.Yhat, 1e-9, "step %d", k)
		assert.Equal(t, start.AddDate(0, 0, len(history)-1+k), p.Date)
	}
}

func TestHolt_FitPredict_FlatSeries(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	history := mkSeries(start, 50, 50, 50, 50)

	points, err := NewHolt().FitPredict(history, 2)
	require.NoError(t, err)

	for _, p := range points {
		assert.InDelta(t, 50, p.Yhat, 1e-9)
	}
}

func TestHolt_FitPredict_InsufficientData(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := NewHolt().FitPredict(mkSeries(start, 42), 3)
	require.Error(t, err)

	var fcErr *contracts.ForecastError
	assert.ErrorAs(t, err, &fcErr)
}

func TestNewHoltWithFactors(t *testing.T) {
	f := NewHoltWithFactors(0.9, 0.1)
	assert.Equal(t, 0.9, f.alpha)
	assert.Equal(t, 0.1, f.beta)
}
