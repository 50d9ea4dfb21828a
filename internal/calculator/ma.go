package calculator

import (
	"errors"
	"fmt"

	"TickerReport/internal/model"
)

var (
	// ErrInsufficientData means the series is shorter than the metric's window.
	ErrInsufficientData = errors.New("not enough data")
	// ErrZeroDivisor means the metric's denominator is zero.
	ErrZeroDivisor = errors.New("zero divisor")
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("SMA(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA returns the exponential moving average at the last price.
// The average is seeded with the SMA of the first period prices and then
// smoothed with multiplier 2/(period+1) across the rest of the series.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("EMA(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}
	seed, err := CalculateSMA(prices[:period], period)
	if err != nil {
		return 0, err
	}
	k := 2.0 / float64(period+1)
	ema := seed
	for _, p := range prices[period:] {
		ema = p*k + ema*(1-k)
	}
	return ema, nil
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
