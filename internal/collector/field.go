package collector

import (
	"github.com/guregu/null/v5"

	"TickerReport/internal/model"
)

// Chain is an ordered list of snapshot field names tried until one is present.
type Chain []string

// Extract evaluates the chain against snap; the first present field wins.
func (c Chain) Extract(snap *model.Snapshot) null.Float {
	for _, name := range c {
		if v := snap.Number(name); v.Valid {
			return v
		}
	}
	return null.Float{}
}

// RequiredField is a snapshot value whose absence discards the record.
type RequiredField struct {
	Label string
	Chain Chain
	Set   func(q *model.Quote, v float64)
}

// OptionalField is a snapshot value replaced by a sentinel when absent.
type OptionalField struct {
	Label    string
	Chain    Chain
	Sentinel float64
	Set      func(q *model.Quote, v float64)
}

// RequiredFields are extracted in order. Only the current price has a
// fallback; it deliberately tries regularMarketOpen rather than open.
var RequiredFields = []RequiredField{
	{"current price", Chain{"currentPrice", "regularMarketOpen", "previousClose"}, func(q *model.Quote, v float64) { q.CurrentPrice = v }},
	{"previous close", Chain{"previousClose"}, func(q *model.Quote, v float64) { q.PrevClose = v }},
	{"open", Chain{"open"}, func(q *model.Quote, v float64) { q.Open = v }},
	{"day low", Chain{"dayLow"}, func(q *model.Quote, v float64) { q.DayLow = v }},
	{"day high", Chain{"dayHigh"}, func(q *model.Quote, v float64) { q.DayHigh = v }},
	{"volume", Chain{"volume"}, func(q *model.Quote, v float64) { q.Volume = v }},
}

// OptionalFields never fail the record.
var OptionalFields = []OptionalField{
	{"trailing P/E", Chain{"trailingPE"}, model.SentinelMissingPE, func(q *model.Quote, v float64) { q.TrailingPE = v }},
	{"forward P/E", Chain{"forwardPE"}, model.SentinelMissingPE, func(q *model.Quote, v float64) { q.ForwardPE = v }},
	{"bid", Chain{"bid"}, model.SentinelMissingBid, func(q *model.Quote, v float64) { q.Bid = v }},
	{"ask", Chain{"ask"}, model.SentinelMissingAsk, func(q *model.Quote, v float64) { q.Ask = v }},
	{"52-week low", Chain{"fiftyTwoWeekLow"}, 0, func(q *model.Quote, v float64) { q.FiftyTwoWeekLow = v }},
	{"52-week high", Chain{"fiftyTwoWeekHigh"}, 0, func(q *model.Quote, v float64) { q.FiftyTwoWeekHigh = v }},
	{"50-day average", Chain{"fiftyDayAverage"}, 0, func(q *model.Quote, v float64) { q.FiftyDayAverage = v }},
	{"200-day average", Chain{"twoHundredDayAverage"}, 0, func(q *model.Quote, v float64) { q.TwoHundredDayAverage = v }},
	{"average volume", Chain{"averageVolume"}, 0, func(q *model.Quote, v float64) { q.AvgVolume = v }},
	{"PEG ratio", Chain{"pegRatio"}, model.SentinelMissingPEG, func(q *model.Quote, v float64) { q.PEGRatio = v }},
}

// nameChain is tried for the company name before falling back to the symbol.
var nameChain = []string{"shortName", "longName"}

func companyName(snap *model.Snapshot, symbol string) string {
	for _, key := range nameChain {
		if v, ok := snap.String(key); ok {
			return v
		}
	}
	return symbol
}
