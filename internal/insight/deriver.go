package insight

import (
	"math"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

const (
	// historyWindow 스냅샷에 붙이는 과거 관측치 최대 개수
	historyWindow = 60
	// momentumWindow 모멘텀 계산용 후행 윈도우
	momentumWindow = 5
	// tradingDaysPerYear 연율화 계수 (관례적 252 거래일)
	tradingDaysPerYear = 252
	// signalThreshold 시그널 분류 임계값 (분수 기준 ±5%)
	signalThreshold = 0.05
)

// Deriver turns a price history and its forecast into a Snapshot.
// ⭐ SSOT: 인사이트 지표 계산은 여기서만
//
// Derive is a pure function of its inputs: no I/O, no clock, no state.
// Arithmetic degeneracies (zero latest price, short history, empty
// forecast tail) are absorbed by guarded divisions and fallbacks so the
// deriver itself never fails; validating the inputs is the caller's job.
type Deriver struct{}

// NewDeriver creates a new insight deriver.
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive computes the snapshot for one symbol.
// history must be non-empty and ordered by date ascending; forecast covers
// the historical span plus up to horizonDays future entries.
func (d *Deriver) Derive(symbol string, history []contracts.PricePoint, forecast []contracts.ForecastPoint, horizonDays int) contracts.Snapshot {
	latest := history[len(history)-1].Close

	// Future block is taken by position, not by date filtering: the last
	// horizonDays forecast entries, or fewer if the forecast is shorter.
	// An empty block means "no future prediction available".
	start := len(forecast) - horizonDays
	if start < 0 {
		start = 0
	}
	futureBlock := forecast[start:]

	predicted := make([]float64, len(futureBlock))
	forecastDates := make([]string, len(futureBlock))
	for i, fp := range futureBlock {
		predicted[i] = fp.Yhat
		forecastDates[i] = fp.Date.Format("2006-01-02")
	}

	// Degenerate fallback: with no predictions the next-day price carries
	// the latest observed close forward.
	nextDay := latest
	if len(predicted) > 0 {
		nextDay = predicted[0]
	}

	nextDayPct := 0.0
	if latest != 0 {
		nextDayPct = (nextDay - latest) / latest
	}

	// Horizon-end change falls back to nextDay when the block is empty,
	// which degenerates to 0 under the same zero-guard.
	horizonEnd := nextDay
	if len(predicted) > 0 {
		horizonEnd = predicted[len(predicted)-1]
	}

	pctChange := 0.0
	if latest != 0 {
		pctChange = (horizonEnd - latest) / latest
	}

	momentum := d.momentum(history)
	vol := d.annualizedVol(history)
	signal := classify(pctChange, momentum)

	return contracts.Snapshot{
		Ticker:        symbol,
		LatestPrice:   round2(latest),
		Forecast:      roundAll(predicted),
		NextDayPrice:  round2(nextDay),
		NextDayPct:    round2(nextDayPct * 100),
		PctChange7D:   round2(pctChange * 100),
		Momentum5D:    round2(momentum * 100),
		AnnualizedVol: round2(vol * 100),
		Signal:        signal,
		History:       trailingHistory(history),
		ForecastDates: forecastDates,
	}
}

// momentum computes the relative change across the trailing 5-point
// window, or whatever shorter window exists. A single-point window
// yields 0 (start equals end).
func (d *Deriver) momentum(history []contracts.PricePoint) float64 {
	start := len(history) - momentumWindow
	if start < 0 {
		start = 0
	}
	window := history[start:]

	first := window[0].Close
	if first == 0 {
		return 0.0
	}

	return (window[len(window)-1].Close - first) / first
}

// annualizedVol computes the sample standard deviation of day-over-day
// percent changes across the whole history, scaled by √252. Fewer than
// two returns yields 0 rather than NaN: downstream consumers expect an
// always-present numeric field.
func (d *Deriver) annualizedVol(history []contracts.PricePoint) float64 {
	returns := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev := history[i-1].Close
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (history[i].Close-prev)/prev)
	}

	if len(returns) < 2 {
		return 0.0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var sq float64
	for _, r := range returns {
		sq += (r - mean) * (r - mean)
	}
	// Sample variance (n-1 denominator)
	std := math.Sqrt(sq / float64(len(returns)-1))

	return std * math.Sqrt(tradingDaysPerYear)
}

// classify evaluates the signal rules in order on the fractional
// (unrounded) values. Exactly +5% does not trigger bullish.
func classify(pctChange, momentum float64) contracts.Signal {
	switch {
	case pctChange > signalThreshold && momentum > 0:
		return contracts.SignalBullish
	case pctChange < -signalThreshold && momentum < 0:
		return contracts.SignalBearish
	default:
		return contracts.SignalWatch
	}
}

// trailingHistory renders the last 60 observations as date/close pairs.
func trailingHistory(history []contracts.PricePoint) []contracts.HistoryPoint {
	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}

	points := make([]contracts.HistoryPoint, 0, len(history)-start)
	for _, p := range history[start:] {
		points = append(points, contracts.HistoryPoint{
			DS: p.Date.Format("2006-01-02"),
			Y:  p.Close,
		})
	}
	return points
}

// round2 rounds half away from zero to 2 decimal places. Presentation
// rounding only: internal computation stays at full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundAll(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = round2(v)
	}
	return out
}
