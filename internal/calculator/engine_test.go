package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TickerReport/internal/model"
)

func TestCompute_FullHistory(t *testing.T) {
	rec := model.NewTickerRecord("TEST")
	rec.History = syntheticSeries()
	rec.Quote = model.Quote{CurrentPrice: 105, PrevClose: 100, Bid: 104.9, Ask: 105.1, PEGRatio: 1.7}

	ind, missing := Compute(rec, DefaultPeriods)
	assert.Empty(t, missing)
	assert.True(t, ind.RSI.Valid)
	assert.True(t, ind.MACD.Valid)
	assert.True(t, ind.StochasticK.Valid)
	assert.InDelta(t, 5.0, ind.PercentChange.Float64, tolerance)
	assert.InDelta(t, 5.0, ind.AbsChange.Float64, tolerance)
	assert.InDelta(t, 1.7, ind.PEG.Float64, tolerance)
	assert.InDelta(t, 0.2, ind.BidAskSpread.Float64, tolerance)
}

func TestCompute_ShortHistoryMarksUnavailable(t *testing.T) {
	rec := model.NewTickerRecord("NEW")
	rec.History = barsFromCloses(10, 11, 12, 13, 12, 11, 12, 13, 14, 15) // 10 bars
	rec.Quote = model.Quote{
		CurrentPrice: 15,
		PrevClose:    0,
		Bid:          model.SentinelMissingBid,
		Ask:          model.SentinelMissingAsk,
		PEGRatio:     model.SentinelMissingPEG,
	}

	ind, missing := Compute(rec, DefaultPeriods)
	assert.False(t, ind.RSI.Valid)
	assert.False(t, ind.MACD.Valid)
	assert.False(t, ind.StochasticK.Valid)
	assert.False(t, ind.PercentChange.Valid)
	assert.False(t, ind.AbsChange.Valid)
	assert.False(t, ind.PEG.Valid)
	assert.False(t, ind.BidAskSpread.Valid)

	for _, key := range []string{"rsi", "macd", "stochastic_k", "day_change", "bid_ask_spread"} {
		assert.Contains(t, missing, key)
	}
	assert.ErrorIs(t, missing["macd"], ErrInsufficientData)
	assert.ErrorIs(t, missing["day_change"], ErrZeroDivisor)
}

func TestCompute_MACDNeedsTwentySixBars(t *testing.T) {
	for n := 1; n < MACDSlowPeriod; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = float64(10 + i%5)
		}
		rec := &model.TickerRecord{Symbol: "X", History: barsFromCloses(closes...)}
		ind, _ := Compute(rec, DefaultPeriods)
		assert.False(t, ind.MACD.Valid, "MACD must be unavailable with %d bars", n)
	}
}
