package model

// Tone is how a metric should read on the report.
type Tone string

const (
	ToneBullish Tone = "BULLISH"
	ToneBearish Tone = "BEARISH"
	ToneNeutral Tone = "NEUTRAL"
	ToneNoData  Tone = "NO_DATA"
)

// MetricName identifies a displayed column.
type MetricName string

const (
	MetricPrice       MetricName = "Price"
	MetricChange      MetricName = "PriceChange"
	MetricRSI         MetricName = "RSI"
	MetricStochasticK MetricName = "Stochastic"
	MetricMACD        MetricName = "MACD"
	MetricPEG         MetricName = "PEG"
)

// Signal is the classification of a single metric for one ticker.
type Signal struct {
	Metric MetricName
	Value  float64
	Valid  bool
	Tone   Tone
}
