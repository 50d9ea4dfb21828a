package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerReport/internal/metrics"
)

func TestCollect_RetrySucceedsWithinBound(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"FLAKY": {
			{Snapshot: nil},
			{Snapshot: nil},
			{Snapshot: fullSnapshot(), History: dailyBars(40)},
		},
	}}
	m := metrics.New()
	c := NewCollector(p, nil, m)

	result, err := c.Collect(context.Background(), []string{"FLAKY"})
	require.NoError(t, err)
	require.Contains(t, result.Records, "FLAKY")
	assert.Empty(t, result.Dropped)
	assert.Equal(t, 3, p.Calls("FLAKY"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AcquireAttempts.WithLabelValues("retryable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AcquireAttempts.WithLabelValues("success")))
}

func TestCollect_DropsAfterExhaustingAttempts(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"DOWN": {{SnapshotErr: errors.New("503")}},
	}}
	c := NewCollector(p, nil, nil)

	result, err := c.Collect(context.Background(), []string{"DOWN"})
	require.NoError(t, err)
	assert.NotContains(t, result.Records, "DOWN")
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, "DOWN", result.Dropped[0].Symbol)
	assert.Equal(t, DefaultMaxAttempts, result.Dropped[0].Attempts)
	assert.Equal(t, DefaultMaxAttempts, p.Calls("DOWN"))
}

func TestCollect_FatalStopsImmediately(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"NOPRICE": {{
			Snapshot: fullSnapshot("currentPrice", "regularMarketOpen", "previousClose"),
			History:  dailyBars(30),
		}},
	}}
	c := NewCollector(p, nil, nil)

	result, err := c.Collect(context.Background(), []string{"NOPRICE"})
	require.NoError(t, err)
	assert.NotContains(t, result.Records, "NOPRICE")
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, 1, result.Dropped[0].Attempts)
	assert.Equal(t, 1, p.Calls("NOPRICE"))
}

func TestCollect_OneBadSymbolDoesNotAbortRun(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"AAA": {{Snapshot: fullSnapshot(), History: dailyBars(40)}},
		"BAD": {{Snapshot: fullSnapshot("volume"), History: dailyBars(40)}},
		"CCC": {{Snapshot: fullSnapshot(), History: dailyBars(10)}},
	}}
	c := NewCollector(p, nil, nil)

	result, err := c.Collect(context.Background(), []string{"AAA", "BAD", "CCC", "AAA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "CCC"}, result.Order)
	assert.Len(t, result.Dropped, 1)
	assert.NotEmpty(t, result.RunID)

	// Indicators are computed for kept records.
	assert.True(t, result.Records["AAA"].Indicators.MACD.Valid)
	assert.False(t, result.Records["CCC"].Indicators.MACD.Valid)
	assert.Equal(t, 1, p.Calls("AAA"), "duplicate symbols are fetched once")
}

func TestCollect_EmptyProviderYieldsEmptyResult(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"A": {{Snapshot: nil}},
		"B": {{Snapshot: nil}},
	}}
	c := NewCollector(p, nil, nil)

	result, err := c.Collect(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Len(t, result.Dropped, 2)
}

func TestCollect_ContextCancelled(t *testing.T) {
	p := &MockProvider{Price: 50}
	c := NewCollector(p, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Collect(ctx, []string{"X"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_RetryDelayHonoursContext(t *testing.T) {
	p := &MockProvider{Responses: map[string][]MockResponse{
		"SLOW": {{Snapshot: nil}},
	}}
	c := NewCollector(p, nil, nil)
	c.RetryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Collect(ctx, []string{"SLOW"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, p.Calls("SLOW"))
}

func TestCollect_GeneratedMockData(t *testing.T) {
	c := NewCollector(&MockProvider{Price: 250}, nil, nil)
	result, err := c.Collect(context.Background(), []string{"DEMO"})
	require.NoError(t, err)
	rec := result.Records["DEMO"]
	require.NotNil(t, rec)
	assert.Len(t, rec.History, 300)
	assert.True(t, rec.Indicators.RSI.Valid)
	assert.True(t, rec.Indicators.PercentChange.Valid)
}
