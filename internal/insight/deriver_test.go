package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

var baseDate = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// mkHistory builds consecutive daily closes starting at baseDate.
func mkHistory(closes ...float64) []contracts.PricePoint {
	points := make([]contracts.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = contracts.PricePoint{Date: baseDate.AddDate(0, 0, i), Close: c}
	}
	return points
}

// mkTail builds a forecast tail starting the day after the last of n
// history points.
func mkTail(historyLen int, yhats ...float64) []contracts.ForecastPoint {
	points := make([]contracts.ForecastPoint, len(yhats))
	for i, y := range yhats {
		points[i] = contracts.ForecastPoint{
			Date: baseDate.AddDate(0, 0, historyLen+i),
			Yhat: y,
		}
	}
	return points
}

func TestDerive_EmptyForecastTail(t *testing.T) {
	d := NewDeriver()
	history := mkHistory(100, 101, 102)

	snap := d.Derive("AAPL", history, nil, 7)

	assert.Equal(t, 102.0, snap.LatestPrice)
	assert.Equal(t, 102.0, snap.NextDayPrice, "next day price falls back to latest")
	assert.Equal(t, 0.0, snap.NextDayPct)
	assert.Equal(t, 0.0, snap.PctChange7D)
	assert.Empty(t, snap.Forecast)
	assert.Empty(t, snap.ForecastDates)
	assert.Equal(t, contracts.SignalWatch, snap.Signal)
}

func TestDerive_ZeroLatestPrice(t *testing.T) {
	d := NewDeriver()
	history := mkHistory(10, 5, 0)
	forecast := mkTail(len(history), 1, 2, 3)

	snap := d.Derive("XYZ", history, forecast, 3)

	assert.Equal(t, 0.0, snap.NextDayPct, "zero guard must not divide")
	assert.Equal(t, 0.0, snap.PctChange7D)
	assert.Equal(t, 1.0, snap.NextDayPrice)
}

func TestDerive_FutureBlockIsPositional(t *testing.T) {
	d := NewDeriver()
	history := mkHistory(100, 101, 102, 103, 104)

	// Full-span forecast: 5 fitted values plus 3 future ones. Only the
	// last 3 belong to the horizon block.
	forecast := append(
		mkTail(0, 100.5, 101.5, 102.5, 103.5, 104.5),
		mkTail(len(history), 105, 106, 107)...,
	)

	snap := d.Derive("MSFT", history, forecast, 3)

	require.Len(t, snap.Forecast, 3)
	assert.Equal(t, []float64{105, 106, 107}, snap.Forecast)
	assert.Equal(t, 105.0, snap.NextDayPrice)
	require.Len(t, snap.ForecastDates, 3)
	assert.Equal(t, "2026-01-10", snap.ForecastDates[0])
}

func TestDerive_ShortForecastTail(t *testing.T) {
	d := NewDeriver()
	history := mkHistory(100, 102)
	forecast := mkTail(len(history), 103, 104)

	// Horizon asks for 7 but only 2 entries exist: use what is there.
	snap := d.Derive("NET", history, forecast, 7)

	assert.Equal(t, []float64{103, 104}, snap.Forecast)
	assert.InDelta(t, 1.96, snap.PctChange7D, 0.001) // (104-102)/102
}

func TestDerive_SignalQuadrants(t *testing.T) {
	d := NewDeriver()

	tests := []struct {
		name    string
		history []contracts.PricePoint
		yhat    float64
		want    contracts.Signal
	}{
		{
			name:    "up forecast, up momentum -> bullish",
			history: mkHistory(95, 96, 97, 98, 100),
			yhat:    106, // +6%
			want:    contracts.SignalBullish,
		},
		{
			name:    "up forecast, down momentum -> watch",
			history: mkHistory(105, 104, 103, 102, 100),
			yhat:    106,
			want:    contracts.SignalWatch,
		},
		{
			name:    "down forecast, down momentum -> bearish",
			history: mkHistory(105, 104, 103, 102, 100),
			yhat:    94, // -6%
			want:    contracts.SignalBearish,
		},
		{
			name:    "down forecast, up momentum -> watch",
			history: mkHistory(95, 96, 97, 98, 100),
			yhat:    94,
			want:    contracts.SignalWatch,
		},
		{
			name:    "exactly +5% is not bullish",
			history: mkHistory(95, 96, 97, 98, 100),
			yhat:    105,
			want:    contracts.SignalWatch,
		},
		{
			name:    "+5.01% is bullish",
			history: mkHistory(95, 96, 97, 98, 100),
			yhat:    105.01,
			want:    contracts.SignalBullish,
		},
		{
			name:    "exactly -5% is not bearish",
			history: mkHistory(105, 104, 103, 102, 100),
			yhat:    95,
			want:    contracts.SignalWatch,
		},
		{
			name:    "-5.01% is bearish",
			history: mkHistory(105, 104, 103, 102, 100),
			yhat:    94.99,
			want:    contracts.SignalBearish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := mkTail(len(tt.history), tt.yhat)
			snap := d.Derive("T", tt.history, forecast, 1)
			assert.Equal(t, tt.want, snap.Signal)
		})
	}
}

func TestDerive_MomentumShortWindow(t *testing.T) {
	d := NewDeriver()

	// Single observation: start equals end, momentum 0
	snap := d.Derive("T", mkHistory(100), nil, 1)
	assert.Equal(t, 0.0, snap.Momentum5D)

	// Three observations: whole available window
	snap = d.Derive("T", mkHistory(100, 105, 110), nil, 1)
	assert.InDelta(t, 10.0, snap.Momentum5D, 0.001)
}

func TestDerive_AnnualizedVol(t *testing.T) {
	d := NewDeriver()

	// Fewer than 2 daily returns: reported as 0, not NaN
	snap := d.Derive("T", mkHistory(100), nil, 1)
	assert.Equal(t, 0.0, snap.AnnualizedVol)

	snap = d.Derive("T", mkHistory(100, 110), nil, 1)
	assert.Equal(t, 0.0, snap.AnnualizedVol)

	// Returns +10%, -10%: sample stddev √0.02, annualized ×√252, ×100
	snap = d.Derive("T", mkHistory(100, 110, 99), nil, 1)
	assert.InDelta(t, 224.50, snap.AnnualizedVol, 0.01)
}

func TestDerive_HistoryWindowCap(t *testing.T) {
	d := NewDeriver()

	for _, n := range []int{3, 60, 200} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		snap := d.Derive("T", mkHistory(closes...), nil, 1)

		wantLen := n
		if wantLen > 60 {
			wantLen = 60
		}
		assert.Len(t, snap.History, wantLen, "history length %d", n)

		// Window is the trailing one
		assert.Equal(t, closes[n-1], snap.History[len(snap.History)-1].Y)
	}
}

func TestDerive_HistoryDateFormat(t *testing.T) {
	d := NewDeriver()
	snap := d.Derive("T", mkHistory(100, 101), nil, 1)

	require.Len(t, snap.History, 2)
	assert.Equal(t, "2026-01-05", snap.History[0].DS)
	assert.Equal(t, "2026-01-06", snap.History[1].DS)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.345, 12.35},
		{12.344, 12.34},
		{-12.345, -12.35},
		{0, 0},
		{6.422018, 6.42},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, round2(tt.in), "round2(%v)", tt.in)
	}
}

func TestDerive_LinearRiseEndToEnd(t *testing.T) {
	d := NewDeriver()

	// 10 consecutive closes rising 100 → 109, 7-day tail continuing to 116
	history := mkHistory(100, 101, 102, 103, 104, 105, 106, 107, 108, 109)
	forecast := mkTail(len(history), 110, 111, 112, 113, 114, 115, 116)

	snap := d.Derive("TSLA", history, forecast, 7)

	assert.Equal(t, 109.0, snap.LatestPrice)
	assert.Equal(t, 110.0, snap.NextDayPrice)
	assert.InDelta(t, 6.42, snap.PctChange7D, 0.001) // (116-109)/109
	assert.Greater(t, snap.Momentum5D, 0.0)
	assert.Equal(t, contracts.SignalBullish, snap.Signal)
	assert.Equal(t, []float64{110, 111, 112, 113, 114, 115, 116}, snap.Forecast)
	assert.Equal(t, "2026-01-15", snap.ForecastDates[0])
	assert.Equal(t, "2026-01-21", snap.ForecastDates[6])
}

func TestDerive_Idempotent(t *testing.T) {
	d := NewDeriver()
	history := mkHistory(100, 102, 101, 104, 103, 107)
	forecast := mkTail(len(history), 108, 109, 110)

	first := d.Derive("COIN", history, forecast, 3)
	second := d.Derive("COIN", history, forecast, 3)

	assert.Equal(t, first, second, "pure function must be deterministic")
}
