package collector

import (
	"context"
	"sync"
	"time"

	"TickerReport/internal/model"
)

// MockResponse is one scripted reply of the MockProvider.
type MockResponse struct {
	Snapshot    *model.Snapshot
	SnapshotErr error
	History     []model.OHLCV
	HistoryErr  error
}

// MockProvider returns controllable fixed data for development and testing.
// Scripted symbols replay their responses in order, one per acquisition
// attempt, repeating the last one; other symbols get generated data around
// Price.
type MockProvider struct {
	Price     float64
	Responses map[string][]MockResponse

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockProvider) Name() string { return "mock" }

// Calls returns how many snapshot requests were made for symbol.
func (m *MockProvider) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func (m *MockProvider) FetchSnapshot(ctx context.Context, symbol string) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	resp, ok := m.current(symbol)
	if !ok {
		return generateMockSnapshot(symbol, m.price()), nil
	}
	return resp.Snapshot, resp.SnapshotErr
}

func (m *MockProvider) FetchHistory(ctx context.Context, symbol string, _ model.Window) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, ok := m.current(symbol)
	if !ok {
		return generateMockBars(m.price(), 300), nil
	}
	return resp.History, resp.HistoryErr
}

func (m *MockProvider) current(symbol string) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	script := m.Responses[symbol]
	if len(script) == 0 {
		return MockResponse{}, false
	}
	i := m.calls[symbol] - 1
	if i < 0 {
		i = 0
	}
	if i >= len(script) {
		i = len(script) - 1
	}
	return script[i], true
}

func (m *MockProvider) price() float64 {
	if m.Price <= 0 {
		return 100
	}
	return m.Price
}

func generateMockSnapshot(symbol string, price float64) *model.Snapshot {
	snap := model.NewSnapshot()
	snap.SetString("shortName", symbol)
	snap.SetNumber("currentPrice", price)
	snap.SetNumber("previousClose", price*0.99)
	snap.SetNumber("open", price*0.995)
	snap.SetNumber("dayLow", price*0.98)
	snap.SetNumber("dayHigh", price*1.01)
	snap.SetNumber("volume", 1000000)
	snap.SetNumber("bid", price*0.999)
	snap.SetNumber("ask", price*1.001)
	snap.SetNumber("trailingPE", 25)
	snap.SetNumber("forwardPE", 22)
	snap.SetNumber("pegRatio", 1.4)
	return snap
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	today := model.CalendarDate(time.Now(), time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   today.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
