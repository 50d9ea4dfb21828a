package signal

import (
	"github.com/guregu/null/v5"

	"TickerReport/internal/model"
)

// Comparison is a one-sided threshold test.
type Comparison int

const (
	LessThan Comparison = iota
	GreaterThan
)

func (c Comparison) holds(v, threshold float64) bool {
	if c == LessThan {
		return v < threshold
	}
	return v > threshold
}

// Rule colors a metric: bullish when the first test holds, bearish when the
// second does, neutral otherwise. The bullish test is checked first.
type Rule struct {
	Metric       model.MetricName
	BullishOp    Comparison
	BullishLevel float64
	BearishOp    Comparison
	BearishLevel float64
}

// Tone classifies v. An unavailable value is always ToneNoData.
func (r Rule) Tone(v null.Float) model.Tone {
	switch {
	case !v.Valid:
		return model.ToneNoData
	case r.BullishOp.holds(v.Float64, r.BullishLevel):
		return model.ToneBullish
	case r.BearishOp.holds(v.Float64, r.BearishLevel):
		return model.ToneBearish
	default:
		return model.ToneNeutral
	}
}

// Rules hold the report thresholds per column.
var (
	// Price and change are colored by the direction of the day move.
	ChangeRule = Rule{model.MetricChange, GreaterThan, 0, LessThan, 0}
	// RSI below 30 is oversold, above 70 overbought.
	RSIRule = Rule{model.MetricRSI, LessThan, 30, GreaterThan, 70}
	// %K below 20 is oversold, above 80 overbought.
	StochasticRule = Rule{model.MetricStochasticK, LessThan, 20, GreaterThan, 80}
	MACDRule       = Rule{model.MetricMACD, GreaterThan, 0, LessThan, 0}
	// PEG under 1 means growth is cheap relative to earnings.
	PEGRule = Rule{model.MetricPEG, LessThan, 1, GreaterThan, 1}
)
