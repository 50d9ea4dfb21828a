package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultTickers is the watch list used when none is configured.
var DefaultTickers = []string{
	// Semiconductors
	"NVDA", "INTC", "AMD", "TSM", "QCOM", "ARM", "AMAT", "ASML",
	// Software
	"GOOG", "MSFT", "AAPL", "META", "PLTR", "ORCL", "CRM", "ADBE", "INTU", "SMCI",
	// Control
	"^GSPC",
}

// CronParser accepts five-field specs, six-field specs with a leading
// seconds field, and descriptors such as @daily.
var CronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all application configuration.
type Config struct {
	Tickers    []string `yaml:"tickers"`
	OutputPath string   `yaml:"output_path"`
	DataSource struct {
		Provider string        `yaml:"provider"` // yahoo, rest or mock
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Retry struct {
		MaxAttempts int           `yaml:"max_attempts"`
		Delay       time.Duration `yaml:"delay"`
	} `yaml:"retry"`
	Periods struct {
		RSI        int `yaml:"rsi"`
		Stochastic int `yaml:"stochastic"`
	} `yaml:"periods"`
	Schedule struct {
		Cron       string `yaml:"cron"` // empty runs once and exits
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json or console
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Tickers = splitList(v)
	} else {
		cfg.Tickers = normalizeTickers(cfg.Tickers)
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true" || v == "1"
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = append([]string(nil), DefaultTickers...)
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "reports/stockReport.htm"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
		if cfg.DataSource.BaseURL != "" {
			cfg.DataSource.Provider = "rest"
		}
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 5
	}
	if cfg.Periods.RSI == 0 {
		cfg.Periods.RSI = 14
	}
	if cfg.Periods.Stochastic == 0 {
		cfg.Periods.Stochastic = 14
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

func splitList(s string) []string {
	return normalizeTickers(strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }))
}

// normalizeTickers trims and upper-cases symbols and drops empty entries.
func normalizeTickers(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NotifierEnabled reports whether Telegram credentials are configured.
func (c *Config) NotifierEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be positive")
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative")
	}
	if c.Periods.RSI < 1 || c.Periods.Stochastic < 1 {
		return fmt.Errorf("periods must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Schedule.Cron != "" {
		if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is not supported", c.Log.Format)
	}
	return nil
}
