package calculator

import (
	"errors"
	"fmt"

	"TickerReport/internal/model"
)

// CalculateRSI computes RSI from the simple average gain and average loss of
// the last period close-to-close changes, so it needs period+1 bars.
// When the window has no losses the RSI is exactly 100.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("RSI(%d) over %d bars: %w", period, len(bars), ErrInsufficientData)
	}

	closes := extractCloses(bars[len(bars)-period-1:])

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
