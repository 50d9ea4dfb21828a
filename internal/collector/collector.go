package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TickerReport/internal/calculator"
	"TickerReport/internal/metrics"
	"TickerReport/internal/model"
)

// DefaultMaxAttempts bounds the acquisition attempts per symbol.
const DefaultMaxAttempts = 5

// Collector orchestrates data acquisition and indicator computation.
type Collector struct {
	Acquirer    *Acquirer
	Periods     calculator.Periods
	MaxAttempts int
	RetryDelay  time.Duration
	Log         *zap.Logger
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// NewCollector creates a new Collector with the default retry bound.
func NewCollector(p Provider, log *zap.Logger, m *metrics.Metrics) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		Acquirer:    NewAcquirer(p, log, m),
		Periods:     calculator.DefaultPeriods,
		MaxAttempts: DefaultMaxAttempts,
		Log:         log,
		Metrics:     m,
		Now:         time.Now,
	}
}

// Collect processes symbols one at a time in list order. A symbol that
// cannot be acquired is dropped and recorded; it never aborts the run.
// The only error returned is the context's.
func (c *Collector) Collect(ctx context.Context, symbols []string) (*model.RunResult, error) {
	result := model.NewRunResult(uuid.NewString(), c.Now())
	log := c.Log.With(zap.String("run_id", result.RunID))
	log.Info("collection started", zap.Int("symbols", len(symbols)))

	seen := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true

		rec, attempts, err := c.acquireWithRetry(ctx, log, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			log.Error("ticker dropped",
				zap.String("symbol", symbol),
				zap.Int("attempts", attempts),
				zap.Error(err))
			result.Dropped = append(result.Dropped, model.DroppedSymbol{
				Symbol:   symbol,
				Attempts: attempts,
				Reason:   err.Error(),
			})
			c.Metrics.ObserveSymbol(false)
			continue
		}

		ind, missing := calculator.Compute(rec, c.Periods)
		rec.Indicators = ind
		for metric, reason := range missing {
			log.Debug("indicator unavailable",
				zap.String("symbol", symbol),
				zap.String("metric", metric),
				zap.Error(reason))
			c.Metrics.ObserveUnavailable(metric)
		}
		result.Add(rec)
		c.Metrics.ObserveSymbol(true)
	}

	log.Info("collection finished",
		zap.Int("kept", len(result.Records)),
		zap.Int("dropped", len(result.Dropped)))
	return result, nil
}

func (c *Collector) acquireWithRetry(ctx context.Context, log *zap.Logger, symbol string) (*model.TickerRecord, int, error) {
	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rec, outcome, err := c.Acquirer.Acquire(ctx, symbol)
		c.Metrics.ObserveAttempt(outcome.String())
		switch outcome {
		case OutcomeSuccess:
			return rec, attempt, nil
		case OutcomeFatal:
			return nil, attempt, fmt.Errorf("not retryable: %w", err)
		}

		lastErr = err
		log.Warn("acquire failed, retrying",
			zap.String("symbol", symbol),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err))

		if attempt < maxAttempts && c.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		} else if ctx.Err() != nil {
			return nil, attempt, ctx.Err()
		}
	}
	return nil, maxAttempts, fmt.Errorf("all %d attempts exhausted: %w", maxAttempts, lastErr)
}
