package calculator

import (
	"fmt"

	"TickerReport/internal/model"
)

const (
	MACDFastPeriod = 12
	MACDSlowPeriod = 26
)

// CalculateMACD returns EMA12 - EMA26 of the closing prices at the latest bar.
// At least 26 bars are required.
func CalculateMACD(bars []model.OHLCV) (float64, error) {
	if len(bars) < MACDSlowPeriod {
		return 0, fmt.Errorf("MACD over %d bars: %w", len(bars), ErrInsufficientData)
	}
	closes := extractCloses(bars)
	fast, err := CalculateEMA(closes, MACDFastPeriod)
	if err != nil {
		return 0, err
	}
	slow, err := CalculateEMA(closes, MACDSlowPeriod)
	if err != nil {
		return 0, err
	}
	return fast - slow, nil
}
