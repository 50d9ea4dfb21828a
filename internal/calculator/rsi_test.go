package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRSI_HandComputed(t *testing.T) {
	// Changes: +1, -1, +2 -> avgGain = 1, avgLoss = 1/3 -> RS = 3 -> RSI = 75
	rsi, err := CalculateRSI(barsFromCloses(10, 11, 10, 12), 3)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, rsi, tolerance)
}

func TestCalculateRSI_UsesTrailingWindowOnly(t *testing.T) {
	// The early crash is outside the 3-change window and must not count.
	rsi, err := CalculateRSI(barsFromCloses(50, 10, 11, 10, 12), 3)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, rsi, tolerance)
}

func TestCalculateRSI_NoLossesIsExactly100(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)

	// A completely flat window has no losses either.
	flat, err := CalculateRSI(barsFromCloses(5, 5, 5, 5), 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, flat)
}

func TestCalculateRSI_AllLosses(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses(10, 9, 8, 7), 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, tolerance)
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	// 14 bars only give 13 changes.
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	_, err := CalculateRSI(barsFromCloses(closes...), 14)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCalculateRSI_InvalidPeriod(t *testing.T) {
	_, err := CalculateRSI(barsFromCloses(1, 2, 3), 0)
	assert.Error(t, err)
}

func TestCalculateRSI_SyntheticSeriesMatchesReference(t *testing.T) {
	bars := syntheticSeries()
	rsi, err := CalculateRSI(bars, 14)
	require.NoError(t, err)
	assert.InDelta(t, referenceRSI(bars, 14), rsi, tolerance)
	assert.True(t, rsi >= 0 && rsi <= 100)
}
