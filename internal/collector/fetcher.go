package collector

import (
	"context"

	"TickerReport/internal/model"
)

// Provider is the upstream market-data source. FetchSnapshot returns the
// quote fields it knows by name; FetchHistory returns daily bars for the
// requested window in chronological order.
type Provider interface {
	FetchSnapshot(ctx context.Context, symbol string) (*model.Snapshot, error)
	FetchHistory(ctx context.Context, symbol string, window model.Window) ([]model.OHLCV, error)
	Name() string
}
