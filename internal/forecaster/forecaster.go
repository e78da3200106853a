// Package forecaster provides interchangeable implementations of the
// contracts.Forecaster interface. Each model fits the full historical
// span and extends it by the requested horizon in calendar days, so the
// insight deriver never needs to know which model produced the points.
package forecaster

import (
	"fmt"

	"github.com/kotraore/stock-forecast-dashboard/internal/contracts"
)

const (
	// ModelLinear 최소제곱 선형 추세
	ModelLinear = "linear"
	// ModelHolt 이중 지수평활 (수준 + 추세)
	ModelHolt = "holt"
)

// New returns the forecaster for the given model name.
func New(model string) (contracts.Forecaster, error) {
	switch model {
	case ModelLinear:
		return NewLinear(), nil
	case ModelHolt:
		return NewHolt(), nil
	default:
		return nil, fmt.Errorf("unknown forecast model: %s (valid: %s, %s)", model, ModelLinear, ModelHolt)
	}
}
