package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"TickerReport/internal/calculator"
	"TickerReport/internal/collector"
	"TickerReport/internal/config"
	"TickerReport/internal/metrics"
	"TickerReport/internal/notifier"
	"TickerReport/internal/scheduler"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = level
	return zc.Build()
}

func newProvider(cfg *config.Config) collector.Provider {
	switch cfg.DataSource.Provider {
	case "mock":
		return &collector.MockProvider{}
	case "rest":
		return collector.NewRESTProvider(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	default:
		return collector.NewYahooProvider(cfg.Proxy, cfg.DataSource.Timeout)
	}
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	logger.Info("TickerReport starting",
		zap.String("config", cfgPath),
		zap.Int("tickers", len(cfg.Tickers)),
		zap.String("output", cfg.OutputPath))

	provider := newProvider(cfg)
	logger.Info("data source selected", zap.String("provider", provider.Name()))

	m := metrics.New()
	col := collector.NewCollector(provider, logger, m)
	col.MaxAttempts = cfg.Retry.MaxAttempts
	col.RetryDelay = cfg.Retry.Delay
	col.Periods = calculator.Periods{RSI: cfg.Periods.RSI, Stochastic: cfg.Periods.Stochastic}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, col, cfg.Tickers, cfg.OutputPath, logger)
	sched.Metrics = m
	sched.MetricsPath = cfg.Metrics.Textfile
	if cfg.NotifierEnabled() {
		sched.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
	}

	if cfg.Schedule.Cron == "" {
		result, err := sched.RunReport()
		if err != nil {
			logger.Error("report pass failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("TickerReport finished",
			zap.Int("kept", len(result.Records)),
			zap.Int("dropped", len(result.Dropped)))
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		logger.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if cfg.Schedule.RunOnStart {
		logger.Info("run_on_start enabled, executing report pass now")
		sched.RunAsync()
	}

	logger.Info("TickerReport is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping...")
}
