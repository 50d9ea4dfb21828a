package calculator

import (
	"errors"
	"fmt"
	"math"

	"TickerReport/internal/model"
)

// CalculateRange scans the most recent window bars and returns the highest
// high and the lowest low. Fewer than window bars is an error; the range is
// never taken over a shorter window.
func CalculateRange(bars []model.OHLCV, window int) (high, low float64, err error) {
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	n := len(bars)
	if n < window {
		return 0, 0, fmt.Errorf("range(%d) over %d bars: %w", window, n, ErrInsufficientData)
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := n - window; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}
