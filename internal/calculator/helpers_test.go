package calculator

import (
	"math"
	"time"

	"TickerReport/internal/model"
)

const tolerance = 1e-6

func barsFromCloses(closes ...float64) []model.OHLCV {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// syntheticSeries builds a 30-bar series with a trend, an oscillation and
// uneven high/low wicks.
func syntheticSeries() []model.OHLCV {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, 30)
	for i := range bars {
		c := 100 + 5*math.Sin(float64(i)*0.7) + float64(i)*0.3
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.2,
			High:   c + 1 + float64(i%3)*0.5,
			Low:    c - 1 - float64(i%4)*0.25,
			Close:  c,
			Volume: float64(1_000_000 + i*1000),
		}
	}
	return bars
}

// referenceRSI uses the G/(G+L) form of the RSI formula.
func referenceRSI(bars []model.OHLCV, period int) float64 {
	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		d := bars[i].Close - bars[i-1].Close
		gains += math.Max(d, 0)
		losses += math.Max(-d, 0)
	}
	return 100 * gains / (gains + losses)
}

// referenceEMA expands the recursive EMA into explicit weights.
func referenceEMA(prices []float64, period int) float64 {
	k := 2.0 / float64(period+1)
	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	seed /= float64(period)

	n := len(prices)
	steps := n - period
	ema := seed * math.Pow(1-k, float64(steps))
	for j := period; j < n; j++ {
		ema += k * math.Pow(1-k, float64(n-1-j)) * prices[j]
	}
	return ema
}

func referenceStochasticK(bars []model.OHLCV, period int) float64 {
	window := bars[len(bars)-period:]
	hh, ll := window[0].High, window[0].Low
	for _, b := range window[1:] {
		hh = math.Max(hh, b.High)
		ll = math.Min(ll, b.Low)
	}
	return 100 * (bars[len(bars)-1].Close - ll) / (hh - ll)
}
