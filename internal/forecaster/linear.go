package forecaster

import (
	"math"
	"time"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

// confidenceZ 95% 구간용 z-값
const confidenceZ = 1.96

// Linear fits an ordinary least squares trend line over the time index
// and extrapolates it across the horizon. Uncertainty bounds come from
// the sample standard deviation of the fit residuals.
type Linear struct{}

// NewLinear creates a new linear trend forecaster.
func NewLinear() *Linear {
	return &Linear{}
}

// FitPredict implements contracts.Forecaster.
func (f *Linear) FitPredict(history []contracts.PricePoint, horizonDays int) ([]contracts.ForecastPoint, error) {
	if len(history) < 2 {
		return nil, &contracts.ForecastError{Reason: "need at least 2 observations to fit a trend"}
	}

	n := float64(len(history))

	// OLS on (index, close)
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Close
		sumXY += x * p.Close
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil, &contracts.ForecastError{Reason: "degenerate series: cannot fit a trend"}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// Residual sample stddev for the uncertainty band
	var sq float64
	for i, p := range history {
		r := p.Close - (intercept + slope*float64(i))
		sq += r * r
	}
	sigma := 0.0
	if len(history) > 2 {
		sigma = math.Sqrt(sq / (n - 2))
	}

	points := make([]contracts.ForecastPoint, 0, len(history)+horizonDays)

	// Fitted values over the historical span
	for i, p := range history {
		yhat := intercept + slope*float64(i)
		points = append(points, forecastPoint(p.Date, yhat, sigma))
	}

	// Horizon extension: calendar days after the last observation
	lastDate := history[len(history)-1].Date
	for k := 1; k <= horizonDays; k++ {
		yhat := intercept + slope*(n-1+float64(k))
		points = append(points, forecastPoint(lastDate.AddDate(0, 0, k), yhat, sigma))
	}

	return points, nil
}

// forecastPoint builds a point with a symmetric 95% band around yhat.
func forecastPoint(date time.Time, yhat, sigma float64) contracts.ForecastPoint {
	return contracts.ForecastPoint{
		Date:  date,
		Yhat:  yhat,
		Lower: yhat - confidenceZ*sigma,
		Upper: yhat + confidenceZ*sigma,
	}
}
