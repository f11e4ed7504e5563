// Package config loads the watcher configuration from YAML or TOML files and
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Bar source providers.
const (
	ProviderYahoo   = "yahoo"
	ProviderBinance = "binance"
	ProviderBybit   = "bybit"
	ProviderFile    = "file"
)

// Environment variables holding secrets.
const (
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvBinanceAPIKey  = "BINANCE_API_KEY"
	EnvBinanceSecret  = "BINANCE_API_SECRET"
	EnvBybitAPIKey    = "BYBIT_API_KEY"
	EnvBybitAPISecret = "BYBIT_API_SECRET"
)

const (
	defaultRunHour      = 0
	defaultRunMinute    = 20
	defaultRetries      = 3
	defaultFetchTimeout = 60 * time.Second
)

// Config immutable watcher configuration.
type Config struct {
	// Ticker instrument symbol, e.g. "SPY" for yahoo or "BTC_USDT" for the exchanges.
	Ticker string
	// Provider bar source name.
	Provider string
	// Period history window like "2y"; ignored when Start is set.
	Period string
	// Start optional explicit inclusive start date.
	Start time.Time
	// End optional explicit exclusive end date; zero means through today.
	End time.Time
	// Interval bar size, "1d" for daily bars.
	Interval string
	// DataFile CSV or Parquet path for the file provider.
	DataFile string

	RunHour      int
	RunMinute    int
	RunOnStart   bool
	FetchRetries int
	FetchTimeout time.Duration
	LogLevel     string

	Telegram  TelegramConfig
	Binance   Credentials
	Bybit     Credentials
	Chart     ChartConfig
	Dashboard DashboardConfig
}

// TelegramConfig notification destination.
type TelegramConfig struct {
	// Token bot token, from TELEGRAM_BOT_TOKEN only.
	Token  string
	ChatID int64
	// Endpoint Bot API URL format, empty for the public API.
	Endpoint string
}

// Enabled reports whether messages can be delivered to Telegram.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Credentials exchange API key pair.
type Credentials struct {
	APIKey    string
	APISecret string
}

// ChartConfig chart snapshot settings.
type ChartConfig struct {
	// Snapshot enables the headless Chrome JPEG capture.
	Snapshot   bool
	ChromePath string
}

// DashboardConfig read-only HTTP dashboard.
type DashboardConfig struct {
	// Addr listen address; empty disables the dashboard.
	Addr string
	// Domains enables automatic TLS certificates for these hosts.
	Domains      []string
	CertCacheDir string
}

// Enabled reports whether the dashboard should be served.
func (d DashboardConfig) Enabled() bool {
	return d.Addr != "" || len(d.Domains) > 0
}

// configFile raw file layout shared by YAML and TOML.
type configFile struct {
	Ticker       string `yaml:"ticker" toml:"ticker"`
	Provider     string `yaml:"provider,omitempty" toml:"provider,omitempty"`
	Period       string `yaml:"period,omitempty" toml:"period,omitempty"`
	Start        string `yaml:"start,omitempty" toml:"start,omitempty"`
	End          string `yaml:"end,omitempty" toml:"end,omitempty"`
	Interval     string `yaml:"interval,omitempty" toml:"interval,omitempty"`
	DataFile     string `yaml:"data_file,omitempty" toml:"data_file,omitempty"`
	Schedule     string `yaml:"schedule,omitempty" toml:"schedule,omitempty"`
	RunOnStart   *bool  `yaml:"run_on_start,omitempty" toml:"run_on_start,omitempty"`
	FetchRetries *int   `yaml:"fetch_retries,omitempty" toml:"fetch_retries,omitempty"`
	FetchTimeout string `yaml:"fetch_timeout,omitempty" toml:"fetch_timeout,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	Telegram struct {
		ChatID   int64  `yaml:"chat_id,omitempty" toml:"chat_id,omitempty"`
		Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	} `yaml:"telegram" toml:"telegram"`

	Chart struct {
		Snapshot   *bool  `yaml:"snapshot,omitempty" toml:"snapshot,omitempty"`
		ChromePath string `yaml:"chrome_path,omitempty" toml:"chrome_path,omitempty"`
	} `yaml:"chart" toml:"chart"`

	Dashboard struct {
		Addr         string   `yaml:"addr,omitempty" toml:"addr,omitempty"`
		Domains      []string `yaml:"domains,omitempty" toml:"domains,omitempty"`
		CertCacheDir string   `yaml:"cert_cache_dir,omitempty" toml:"cert_cache_dir,omitempty"`
	} `yaml:"dashboard" toml:"dashboard"`
}

// Default returns the configuration used when a file leaves a field empty.
func Default() Config {
	return Config{
		Ticker:       "SPY",
		Provider:     ProviderYahoo,
		Period:       "2y",
		Interval:     "1d",
		RunHour:      defaultRunHour,
		RunMinute:    defaultRunMinute,
		RunOnStart:   true,
		FetchRetries: defaultRetries,
		FetchTimeout: defaultFetchTimeout,
		LogLevel:     "info",
		Chart:        ChartConfig{Snapshot: true},
	}
}

// Load reads path (.yaml, .yml or .toml), applies defaults and environment
// secrets, and validates the result.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

// FromEnv returns the defaults plus environment secrets, for runs without a file.
func FromEnv() (Config, error) {
	cfg := Default()
	applyEnv(&cfg, os.Getenv)
	return cfg, cfg.Validate()
}

func load(path string, getenv func(string) string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}

	var raw configFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return Config{}, errors.Errorf("unsupported config format %q, use .yaml or .toml", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	applyEnv(&cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (f configFile) toConfig() (Config, error) {
	cfg := Default()

	cfg.Ticker = strings.TrimSpace(f.Ticker)
	if f.Provider != "" {
		cfg.Provider = strings.ToLower(f.Provider)
	}
	if f.Period != "" {
		cfg.Period = strings.ToLower(f.Period)
	}
	if f.Interval != "" {
		cfg.Interval = f.Interval
	}
	cfg.DataFile = f.DataFile
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}

	var err error
	if f.Start != "" {
		if cfg.Start, err = time.Parse(time.DateOnly, f.Start); err != nil {
			return Config{}, errors.Errorf("incorrect 'start' param (want YYYY-MM-DD): %s", f.Start)
		}
	}
	if f.End != "" {
		if cfg.End, err = time.Parse(time.DateOnly, f.End); err != nil {
			return Config{}, errors.Errorf("incorrect 'end' param (want YYYY-MM-DD): %s", f.End)
		}
	}

	if f.Schedule != "" {
		if cfg.RunHour, cfg.RunMinute, err = ParseSchedule(f.Schedule); err != nil {
			return Config{}, err
		}
	}
	if f.RunOnStart != nil {
		cfg.RunOnStart = *f.RunOnStart
	}
	if f.FetchRetries != nil {
		cfg.FetchRetries = *f.FetchRetries
	}
	if f.FetchTimeout != "" {
		if cfg.FetchTimeout, err = time.ParseDuration(f.FetchTimeout); err != nil {
			return Config{}, errors.Errorf("incorrect 'fetch_timeout' param: %s", f.FetchTimeout)
		}
	}

	cfg.Telegram.ChatID = f.Telegram.ChatID
	cfg.Telegram.Endpoint = f.Telegram.Endpoint

	if f.Chart.Snapshot != nil {
		cfg.Chart.Snapshot = *f.Chart.Snapshot
	}
	cfg.Chart.ChromePath = f.Chart.ChromePath

	cfg.Dashboard = DashboardConfig{
		Addr:         f.Dashboard.Addr,
		Domains:      f.Dashboard.Domains,
		CertCacheDir: f.Dashboard.CertCacheDir,
	}

	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	cfg.Telegram.Token = getenv(EnvTelegramToken)
	cfg.Binance = Credentials{APIKey: getenv(EnvBinanceAPIKey), APISecret: getenv(EnvBinanceSecret)}
	cfg.Bybit = Credentials{APIKey: getenv(EnvBybitAPIKey), APISecret: getenv(EnvBybitAPISecret)}
}

// Validate checks that the configuration can drive a reporting cycle.
func (c Config) Validate() error {
	if c.Ticker == "" {
		return errors.New("'ticker' is required")
	}

	switch c.Provider {
	case ProviderYahoo, ProviderBinance, ProviderBybit:
	case ProviderFile:
		if c.DataFile == "" {
			return errors.New("'data_file' is required for the file provider")
		}
	default:
		return errors.Errorf("unsupported provider %q", c.Provider)
	}

	if c.Start.IsZero() {
		if _, err := ParsePeriod(c.Period); err != nil {
			return err
		}
	}
	if !c.Start.IsZero() && !c.End.IsZero() && !c.Start.Before(c.End) {
		return errors.Errorf("'start' %s must be before 'end' %s", c.Start.Format(time.DateOnly), c.End.Format(time.DateOnly))
	}
	if c.Interval == "" {
		return errors.New("'interval' is required")
	}

	if c.RunHour < 0 || c.RunHour > 23 || c.RunMinute < 0 || c.RunMinute > 59 {
		return errors.Errorf("invalid schedule %02d:%02d", c.RunHour, c.RunMinute)
	}
	if c.FetchRetries < 0 {
		return errors.Errorf("'fetch_retries' must be >= 0, got %d", c.FetchRetries)
	}
	if c.FetchTimeout <= 0 {
		return errors.Errorf("'fetch_timeout' must be positive, got %s", c.FetchTimeout)
	}

	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return errors.Errorf("'telegram.chat_id' is required when %s is set", EnvTelegramToken)
	}

	return nil
}

// Schedule returns the daily trigger as HH:MM.
func (c Config) Schedule() string {
	return fmt.Sprintf("%02d:%02d", c.RunHour, c.RunMinute)
}

// ParseSchedule parses an "HH:MM" UTC time of day.
func ParseSchedule(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, errors.Errorf("incorrect 'schedule' param (want HH:MM): %s", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Save writes the non-secret part of cfg to path as YAML or TOML, by extension.
func Save(path string, cfg Config) error {
	raw := fromConfig(cfg)

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(raw)
	case ".toml":
		data, err = toml.Marshal(raw)
	default:
		return errors.Errorf("unsupported config format %q, use .yaml or .toml", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}

func fromConfig(cfg Config) configFile {
	var raw configFile
	raw.Ticker = cfg.Ticker
	raw.Provider = cfg.Provider
	raw.Period = cfg.Period
	if !cfg.Start.IsZero() {
		raw.Start = cfg.Start.Format(time.DateOnly)
	}
	if !cfg.End.IsZero() {
		raw.End = cfg.End.Format(time.DateOnly)
	}
	raw.Interval = cfg.Interval
	raw.DataFile = cfg.DataFile
	raw.Schedule = cfg.Schedule()
	raw.RunOnStart = &cfg.RunOnStart
	raw.FetchRetries = &cfg.FetchRetries
	raw.FetchTimeout = cfg.FetchTimeout.String()
	raw.LogLevel = cfg.LogLevel
	raw.Telegram.ChatID = cfg.Telegram.ChatID
	raw.Telegram.Endpoint = cfg.Telegram.Endpoint
	raw.Chart.Snapshot = &cfg.Chart.Snapshot
	raw.Chart.ChromePath = cfg.Chart.ChromePath
	raw.Dashboard.Addr = cfg.Dashboard.Addr
	raw.Dashboard.Domains = cfg.Dashboard.Domains
	raw.Dashboard.CertCacheDir = cfg.Dashboard.CertCacheDir
	return raw
}
