package contracts

import "time"

// Signal 히유리스틱 매매 신호
type Signal string

const (
	// SignalBullish 호라이즌 변동 > +5% 이고 모멘텀 양수
	SignalBullish Signal = "bullish"
	// SignalBearish 호라이즌 변동 < -5% 이고 모멘텀 음수
	SignalBearish Signal = "bearish"
	// SignalWatch 그 외 전부
	SignalWatch Signal = "watch"
)

// HistoryPoint is one trailing observation attached to a snapshot.
// Field names (ds/y) match the dashboard artifact format.
type HistoryPoint struct {
	DS string  `json:"ds"` // YYYY-MM-DD
	Y  float64 `json:"y"`
}

// Snapshot 종목 하나에 대한 파생 결과 (런당 1회 생성, 생성 후 불변)
// Percentages are already scaled by 100 and rounded to 2 decimals;
// pct_change_7d / momentum_5d keep their names regardless of the
// configured horizon, matching the published artifact.
type Snapshot struct {
	Ticker        string         `json:"ticker"`
	LatestPrice   float64        `json:"latest_price"`
	Forecast      []float64      `json:"forecast"`
	NextDayPrice  float64        `json:"next_day_price"`
	NextDayPct    float64        `json:"next_day_pct"`
	PctChange7D   float64        `json:"pct_change_7d"`
	Momentum5D    float64        `json:"momentum_5d"`
	AnnualizedVol float64        `json:"annualized_vol"`
	Signal        Signal         `json:"signal"`
	History       []HistoryPoint `json:"history"`
	ForecastDates []string       `json:"forecast_dates"`
}

// SnapshotDocument 런 하나의 최종 산출물
// Tickers keeps every requested symbol, including the ones that failed;
// Snapshots holds only the successes, in processing order.
type SnapshotDocument struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Tickers     []string   `json:"tickers"`
	Snapshots   []Snapshot `json:"snapshots"`
}

// TickerResult is the per-symbol outcome of an aggregation run.
// The aggregator never aborts on a single symbol: failures are carried
// here instead of propagating as errors.
type TickerResult struct {
	Ticker   string
	Snapshot *Snapshot // nil on failure
	Err      error     // nil on success
}

// OK reports whether the symbol produced a snapshot.
func (r TickerResult) OK() bool {
	return r.Err == nil && r.Snapshot != nil
}
