package signal

import (
	"github.com/guregu/null/v5"

	"TickerReport/internal/model"
)

// Columns is the display order of classified metrics.
var Columns = []model.MetricName{
	model.MetricPrice,
	model.MetricChange,
	model.MetricRSI,
	model.MetricStochasticK,
	model.MetricMACD,
	model.MetricPEG,
}

func newSignal(metric model.MetricName, v null.Float, tone model.Tone) model.Signal {
	return model.Signal{Metric: metric, Value: v.Float64, Valid: v.Valid, Tone: tone}
}

// Classify returns one signal per entry of Columns for rec. The record's
// indicators must already be computed.
func Classify(rec *model.TickerRecord) []model.Signal {
	ind := rec.Indicators

	// Price is always present; its color follows the absolute day change.
	priceTone := ChangeRule.Tone(ind.AbsChange)
	if priceTone == model.ToneNoData {
		priceTone = model.ToneNeutral
	}

	return []model.Signal{
		newSignal(model.MetricPrice, null.FloatFrom(rec.Quote.CurrentPrice), priceTone),
		newSignal(model.MetricChange, ind.PercentChange, ChangeRule.Tone(ind.PercentChange)),
		newSignal(model.MetricRSI, ind.RSI, RSIRule.Tone(ind.RSI)),
		newSignal(model.MetricStochasticK, ind.StochasticK, StochasticRule.Tone(ind.StochasticK)),
		newSignal(model.MetricMACD, ind.MACD, MACDRule.Tone(ind.MACD)),
		newSignal(model.MetricPEG, ind.PEG, PEGRule.Tone(ind.PEG)),
	}
}

// Summary counts bullish and bearish columns across a signal set.
func Summary(signals []model.Signal) (bullish, bearish int) {
	for _, s := range signals {
		switch s.Tone {
		case model.ToneBullish:
			bullish++
		case model.ToneBearish:
			bearish++
		}
	}
	return bullish, bearish
}
