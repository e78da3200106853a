package forecaster

import (
	"math"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

// Default smoothing factors. Level reacts fast, trend slowly.
const (
	defaultAlpha = 0.5
	defaultBeta  = 0.3
)

// Holt implements double exponential smoothing (Holt's linear trend
// method): a smoothed level plus a smoothed trend, extrapolated linearly
// across the horizon.
type Holt struct {
	alpha float64
	beta  float64
}

// NewHolt creates a Holt forecaster with default smoothing factors.
func NewHolt() *Holt {
	return &Holt{alpha: defaultAlpha, beta: defaultBeta}
}

// NewHoltWithFactors creates a Holt forecaster with custom factors.
// Both must lie in (0, 1].
func NewHoltWithFactors(alpha, beta float64) *Holt {
	return &Holt{alpha: alpha, beta: beta}
}

// FitPredict implements contracts.Forecaster.
func (f *Holt) FitPredict(history []contracts.PricePoint, horizonDays int) ([]contracts.ForecastPoint, error) {
	if len(history) < 2 {
		return nil, &contracts.ForecastError{Reason: "need at least 2 observations for smoothing"}
	}

	points := make([]contracts.ForecastPoint, 0, len(history)+horizonDays)

	// Initialize from the first two observations
	level := history[0].Close
	trend := history[1].Close - history[0].Close

	fitted := make([]float64, len(history))
	fitted[0] = history[0].Close

	for i := 1; i < len(history); i++ {
		// One-step-ahead forecast before updating
		fitted[i] = level + trend

		y := history[i].Close
		prevLevel := level
		level = f.alpha*y + (1-f.alpha)*(level+trend)
		trend = f.beta*(level-prevLevel) + (1-f.beta)*trend
	}

	// Residual sample stddev of the one-step-ahead errors
	var sq float64
	for i := 1; i < len(history); i++ {
		r := history[i].Close - fitted[i]
		sq += r * r
	}
	sigma := 0.0
	if len(history) > 2 {
		sigma = math.Sqrt(sq / float64(len(history)-2))
	}

	for i, p := range history {
		points = append(points, forecastPoint(p.Date, fitted[i], sigma))
	}

	lastDate := history[len(history)-1].Date
	for k := 1; k <= horizonDays; k++ {
		yhat := level + float64(k)*trend
		points = append(points, forecastPoint(lastDate.AddDate(0, 0, k), yhat, sigma))
	}

	return points, nil
}
