package model

import (
	"time"

	"github.com/guregu/null/v5"
)

// Sentinels substituted for optional quote fields the provider omitted.
const (
	SentinelMissingPE  = -1.0
	SentinelMissingBid = -1.0
	SentinelMissingAsk = -1.0
	SentinelMissingPEG = 0.0
)

// Quote holds the extracted snapshot fields of a ticker.
type Quote struct {
	CompanyName          string
	CurrentPrice         float64
	PrevClose            float64
	Open                 float64
	DayLow               float64
	DayHigh              float64
	Volume               float64
	TrailingPE           float64 // -1 when absent
	ForwardPE            float64 // -1 when absent
	Bid                  float64 // -1 when absent
	Ask                  float64 // -1 when absent
	FiftyTwoWeekLow      float64
	FiftyTwoWeekHigh     float64
	FiftyDayAverage      float64
	TwoHundredDayAverage float64
	AvgVolume            float64
	PEGRatio             float64 // 0 when absent
}

// Indicators are the metrics derived once per run. An invalid value means
// the metric is unavailable for this ticker and must be shown as no data.
type Indicators struct {
	RSI           null.Float `json:"rsi"`
	MACD          null.Float `json:"macd"`
	StochasticK   null.Float `json:"stochastic_k"`
	PercentChange null.Float `json:"percent_change"`
	AbsChange     null.Float `json:"abs_change"`
	PEG           null.Float `json:"peg"`
	BidAskSpread  null.Float `json:"bid_ask_spread"`
	SpreadPercent null.Float `json:"spread_percent"`
}

// TickerRecord is everything known about one symbol during a run.
type TickerRecord struct {
	Symbol     string
	Quote      Quote
	History    []OHLCV
	Indicators Indicators
}

// NewTickerRecord creates an empty record for symbol.
func NewTickerRecord(symbol string) *TickerRecord {
	return &TickerRecord{Symbol: symbol}
}

// DroppedSymbol records why a symbol is missing from a run's results.
type DroppedSymbol struct {
	Symbol   string
	Attempts int
	Reason   string
}

// RunResult is the output of one collection pass.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Order     []string
	Records   map[string]*TickerRecord
	Dropped   []DroppedSymbol
}

// NewRunResult creates an empty result.
func NewRunResult(runID string, startedAt time.Time) *RunResult {
	return &RunResult{
		RunID:     runID,
		StartedAt: startedAt,
		Records:   make(map[string]*TickerRecord),
	}
}

// Add stores a record, keeping first-insertion order.
func (r *RunResult) Add(rec *TickerRecord) {
	if _, ok := r.Records[rec.Symbol]; !ok {
		r.Order = append(r.Order, rec.Symbol)
	}
	r.Records[rec.Symbol] = rec
}

// Each calls fn for every record in insertion order.
func (r *RunResult) Each(fn func(rec *TickerRecord)) {
	for _, sym := range r.Order {
		if rec, ok := r.Records[sym]; ok {
			fn(rec)
		}
	}
}
