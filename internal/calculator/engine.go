package calculator

import (
	"github.com/guregu/null/v5"

	"TickerReport/internal/model"
)

// Periods configures the trailing windows of the window-based metrics.
type Periods struct {
	RSI        int
	Stochastic int
}

// DefaultPeriods are the windows most providers quote.
var DefaultPeriods = Periods{RSI: 14, Stochastic: 14}

// Unavailable lists, per metric, why Compute could not produce a value.
type Unavailable map[string]error

// Compute derives all indicators for a populated record. It never fails: a
// metric whose preconditions are not met is left invalid and its reason is
// returned in the Unavailable map.
func Compute(rec *model.TickerRecord, p Periods) (model.Indicators, Unavailable) {
	var ind model.Indicators
	missing := Unavailable{}

	if v, err := CalculateRSI(rec.History, p.RSI); err != nil {
		missing["rsi"] = err
	} else {
		ind.RSI = null.FloatFrom(v)
	}

	if v, err := CalculateMACD(rec.History); err != nil {
		missing["macd"] = err
	} else {
		ind.MACD = null.FloatFrom(v)
	}

	if v, err := CalculateStochasticK(rec.History, p.Stochastic); err != nil {
		missing["stochastic_k"] = err
	} else {
		ind.StochasticK = null.FloatFrom(v)
	}

	if pct, abs, err := CalculateDayChange(rec.Quote.CurrentPrice, rec.Quote.PrevClose); err != nil {
		missing["day_change"] = err
	} else {
		ind.PercentChange = null.FloatFrom(pct)
		ind.AbsChange = null.FloatFrom(abs)
	}

	if spread, pct, err := CalculateBidAskSpread(rec.Quote.Bid, rec.Quote.Ask); err != nil {
		missing["bid_ask_spread"] = err
	} else {
		ind.BidAskSpread = null.FloatFrom(spread)
		ind.SpreadPercent = null.FloatFrom(pct)
	}

	// PEG is passed through; the 0 sentinel means the provider had none.
	if rec.Quote.PEGRatio != model.SentinelMissingPEG {
		ind.PEG = null.FloatFrom(rec.Quote.PEGRatio)
	}

	return ind, missing
}
