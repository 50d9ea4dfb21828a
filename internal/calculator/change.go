package calculator

import "fmt"

// CalculateDayChange returns the percent and absolute change from the
// previous close to the current price.
func CalculateDayChange(current, prevClose float64) (percent, abs float64, err error) {
	if prevClose == 0 {
		return 0, 0, fmt.Errorf("day change: previous close is zero: %w", ErrZeroDivisor)
	}
	abs = current - prevClose
	return abs / prevClose * 100, abs, nil
}

// CalculateBidAskSpread returns ask-bid and the spread as a percentage of the
// ask. Bid and ask must both be present and the ask positive.
func CalculateBidAskSpread(bid, ask float64) (spread, percent float64, err error) {
	if bid < 0 || ask < 0 {
		return 0, 0, fmt.Errorf("bid/ask spread: missing quote (bid=%.4f ask=%.4f): %w", bid, ask, ErrInsufficientData)
	}
	if ask == 0 {
		return 0, 0, fmt.Errorf("bid/ask spread: ask is zero: %w", ErrZeroDivisor)
	}
	spread = ask - bid
	return spread, spread / ask * 100, nil
}
