package calculator

import (
	"fmt"

	"TickerReport/internal/model"
)

// CalculateStochasticK returns where the latest close sits inside the high-low
// range of the last period bars, as a percentage. A flat range has no
// defined %K and is reported as ErrZeroDivisor.
func CalculateStochasticK(bars []model.OHLCV, period int) (float64, error) {
	high, low, err := CalculateRange(bars, period)
	if err != nil {
		return 0, fmt.Errorf("stochastic: %w", err)
	}
	if high == low {
		return 0, fmt.Errorf("stochastic: flat range %.4f: %w", high, ErrZeroDivisor)
	}
	last := bars[len(bars)-1].Close
	return (last - low) / (high - low) * 100, nil
}
