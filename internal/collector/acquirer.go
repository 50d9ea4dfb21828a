package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TickerReport/internal/metrics"
	"TickerReport/internal/model"
)

// Outcome is the terminal state of one acquisition attempt.
type Outcome int

const (
	// OutcomeSuccess means every required field and the history were loaded.
	OutcomeSuccess Outcome = iota
	// OutcomeRetryable means the provider returned nothing usable this time.
	OutcomeRetryable
	// OutcomeFatal means a required field is permanently absent.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetryable:
		return "retryable"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

var (
	ErrNoSnapshot   = errors.New("no snapshot returned")
	ErrNoHistory    = errors.New("no history returned")
	ErrMissingField = errors.New("required field missing")
)

// Acquirer loads one ticker's snapshot and history from a Provider.
type Acquirer struct {
	Provider Provider
	Window   model.Window
	Log      *zap.Logger
	Metrics  *metrics.Metrics
}

// NewAcquirer creates an Acquirer requesting the maximum history window.
func NewAcquirer(p Provider, log *zap.Logger, m *metrics.Metrics) *Acquirer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Acquirer{Provider: p, Window: model.WindowMax, Log: log, Metrics: m}
}

// Acquire fetches symbol and returns a populated record on OutcomeSuccess.
// On any other outcome the record is nil and err explains why.
func (a *Acquirer) Acquire(ctx context.Context, symbol string) (*model.TickerRecord, Outcome, error) {
	log := a.Log.With(zap.String("symbol", symbol), zap.String("provider", a.Provider.Name()))

	started := time.Now()
	snap, err := a.Provider.FetchSnapshot(ctx, symbol)
	a.Metrics.ObserveFetch("snapshot", time.Since(started))
	if err != nil {
		log.Warn("snapshot fetch failed", zap.Error(err))
		return nil, OutcomeRetryable, fmt.Errorf("fetch snapshot %s: %w", symbol, err)
	}
	if snap.Empty() {
		log.Warn("snapshot is empty")
		return nil, OutcomeRetryable, fmt.Errorf("%s: %w", symbol, ErrNoSnapshot)
	}

	rec := model.NewTickerRecord(symbol)
	rec.Quote.CompanyName = companyName(snap, symbol)

	for _, f := range RequiredFields {
		v := f.Chain.Extract(snap)
		if !v.Valid {
			log.Warn("required field missing",
				zap.String("field", f.Label),
				zap.Strings("tried", f.Chain),
				zap.Int("fields_present", len(snap.Numbers)))
			return nil, OutcomeFatal, fmt.Errorf("%s %s: %w", symbol, f.Label, ErrMissingField)
		}
		f.Set(&rec.Quote, v.Float64)
	}

	for _, f := range OptionalFields {
		v := f.Chain.Extract(snap)
		if !v.Valid {
			log.Debug("optional field missing, using sentinel",
				zap.String("field", f.Label), zap.Float64("sentinel", f.Sentinel))
			f.Set(&rec.Quote, f.Sentinel)
			continue
		}
		f.Set(&rec.Quote, v.Float64)
	}

	started = time.Now()
	bars, err := a.Provider.FetchHistory(ctx, symbol, a.Window)
	a.Metrics.ObserveFetch("history", time.Since(started))
	if err != nil {
		log.Warn("history fetch failed", zap.Error(err))
		return nil, OutcomeRetryable, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		log.Warn("history is empty")
		return nil, OutcomeRetryable, fmt.Errorf("%s: %w", symbol, ErrNoHistory)
	}
	rec.History = append(rec.History, bars...)

	log.Debug("ticker acquired", zap.Int("bars", len(rec.History)))
	return rec, OutcomeSuccess, nil
}
