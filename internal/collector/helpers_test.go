package collector

import (
	"time"

	"TickerReport/internal/model"
)

func fullSnapshot(except ...string) *model.Snapshot {
	skip := make(map[string]bool, len(except))
	for _, k := range except {
		skip[k] = true
	}
	snap := model.NewSnapshot()
	numbers := map[string]float64{
		"currentPrice":         190.5,
		"regularMarketOpen":    188.0,
		"previousClose":        187.25,
		"open":                 188.1,
		"dayLow":               186.9,
		"dayHigh":              191.2,
		"volume":               52_000_000,
		"trailingPE":           31.2,
		"forwardPE":            28.4,
		"bid":                  190.4,
		"ask":                  190.6,
		"fiftyTwoWeekLow":      124.2,
		"fiftyTwoWeekHigh":     199.6,
		"fiftyDayAverage":      182.3,
		"twoHundredDayAverage": 171.9,
		"averageVolume":        58_000_000,
		"pegRatio":             2.1,
	}
	for k, v := range numbers {
		if !skip[k] {
			snap.SetNumber(k, v)
		}
	}
	if !skip["shortName"] {
		snap.SetString("shortName", "Test Corp")
	}
	return snap
}

func dailyBars(n int) []model.OHLCV {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + float64(i%7) - float64(i%3)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}
