package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TickerReport/internal/collector"
	"TickerReport/internal/config"
	"TickerReport/internal/metrics"
	"TickerReport/internal/model"
	"TickerReport/internal/notifier"
	"TickerReport/internal/report"
)

// ErrPassRunning is returned by RunReport when another pass is in progress.
var ErrPassRunning = errors.New("report pass already running")

// Notifier delivers the run summary. *notifier.TelegramNotifier satisfies it.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs report passes once or on a cron schedule.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Tickers     []string
	OutputPath  string
	Notifier    Notifier // nil disables notifications
	Metrics     *metrics.Metrics
	MetricsPath string
	Log         *zap.Logger
	Ctx         context.Context
	Now         func() time.Time

	running sync.Mutex
	wg      sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Overlapping passes are skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, tickers []string, outputPath string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithParser(config.CronParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Collector:  col,
		Tickers:    tickers,
		OutputPath: outputPath,
		Log:        log,
		Ctx:        ctx,
		Now:        time.Now,
	}
}

// Register schedules a report pass on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	s.Log.Info("report task registered", zap.String("cron", spec))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running passes to finish,
// including ones started with RunAsync.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	s.Log.Info("scheduler stopped")
}

// RunAsync starts a pass in the background. Stop waits for it.
func (s *Scheduler) RunAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.reportTask()
	}()
}

func (s *Scheduler) reportTask() {
	_, err := s.RunReport()
	switch {
	case errors.Is(err, ErrPassRunning):
		s.Log.Info("report pass skipped, previous pass still running")
	case err != nil:
		s.Log.Error("report pass failed", zap.Error(err))
	}
}

// RunReport executes one full pass: collect, render, export metrics and
// notify. Only collection cancellation and report write failures are
// returned; metrics and notification failures are logged. Passes never
// overlap: a call made while another pass runs returns ErrPassRunning.
func (s *Scheduler) RunReport() (*model.RunResult, error) {
	if !s.running.TryLock() {
		return nil, ErrPassRunning
	}
	defer s.running.Unlock()

	started := s.Now()
	result, err := s.Collector.Collect(s.Ctx, s.Tickers)
	if err != nil {
		return result, fmt.Errorf("collect: %w", err)
	}
	log := s.Log.With(zap.String("run_id", result.RunID))

	written, err := report.WriteFile(s.OutputPath, result, s.Now())
	if err != nil {
		return result, fmt.Errorf("write report: %w", err)
	}
	log.Info("report written",
		zap.String("path", written.Path),
		zap.Int("bytes", written.Bytes),
		zap.Uint64("checksum", written.Checksum),
		zap.Bool("unchanged", written.Skipped))

	s.Metrics.ObserveRun(started, s.Now())
	if err := s.Metrics.WriteTextfile(s.MetricsPath); err != nil {
		log.Warn("metrics export failed", zap.Error(err))
	}

	if s.Notifier != nil {
		msg := notifier.FormatRunSummary(result, s.OutputPath)
		if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
			log.Error("send notification", zap.Error(err))
		}
	}
	return result, nil
}

// cronLogger routes cron's internal logging to zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
