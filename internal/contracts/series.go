package contracts

import (
	"context"
	"fmt"
	"time"
)

// PricePoint 일별 종가 관측치
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// ForecastPoint 예측 포인트 (과거 구간 적합치 + 미래 구간 예측치)
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Yhat  float64   `json:"yhat"`
	Lower float64   `json:"yhat_lower"` // 불확실성 하한
	Upper float64   `json:"yhat_upper"` // 불확실성 상한
}

// SeriesProvider fetches daily price history for a symbol.
// ⭐ SSOT: 가격 데이터 조회는 이 인터페이스를 통해서만
type SeriesProvider interface {
	// FetchDaily returns daily closes for the lookback period (e.g. "6mo"),
	// ordered by date ascending. Returns NoDataError when the provider has
	// nothing for the symbol.
	FetchDaily(ctx context.Context, symbol, period string) ([]PricePoint, error)
}

// Forecaster fits a model to a price history and predicts forward.
// Implementations are interchangeable (linear trend, Holt smoothing, ...);
// the insight deriver only sees the resulting points.
type Forecaster interface {
	// FitPredict returns fitted values for the full historical span plus
	// horizonDays future calendar days, ordered by date ascending.
	FitPredict(history []PricePoint, horizonDays int) ([]ForecastPoint, error)
}

// NoDataError 프로바이더가 해당 심볼의 데이터를 전혀 반환하지 못한 경우
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data returned for %s", e.Symbol)
}

// ForecastError 모델 적합 또는 예측 실패
type ForecastError struct {
	Symbol string
	Reason string
}

func (e *ForecastError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("forecast failed: %s", e.Reason)
	}
	return fmt.Sprintf("forecast failed for %s: %s", e.Symbol, e.Reason)
}
