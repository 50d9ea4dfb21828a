package model

import "time"

// OHLCV represents a single daily bar. Time holds the calendar date at
// midnight UTC; time of day is not meaningful.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Window is the lookback period requested from a provider's history query.
type Window string

const (
	Window1d  Window = "1d"
	Window5d  Window = "5d"
	Window1mo Window = "1mo"
	Window3mo Window = "3mo"
	Window6mo Window = "6mo"
	Window1y  Window = "1y"
	Window2y  Window = "2y"
	Window5y  Window = "5y"
	Window10y Window = "10y"
	WindowYTD Window = "ytd"
	WindowMax Window = "max"
)

// Valid reports whether w is one of the known windows.
func (w Window) Valid() bool {
	switch w {
	case Window1d, Window5d, Window1mo, Window3mo, Window6mo, Window1y,
		Window2y, Window5y, Window10y, WindowYTD, WindowMax:
		return true
	}
	return false
}

// CalendarDate truncates t to its calendar date in loc and returns it as
// midnight UTC so bars from different exchanges compare by date only.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
