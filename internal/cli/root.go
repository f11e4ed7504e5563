// Package cli implements the hawkeye command line.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

var nowFunc = time.Now

// rootOptions flags shared by every subcommand.
type rootOptions struct {
	ConfigPath string
	LogLevel   string
	Overrides  config.Overrides
}

// NewRootCmd builds the hawkeye command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "hawkeye",
		Short:         "Hawkeye - daily volume spike watcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to a .yaml or .toml config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	cmd.AddCommand(
		newRunCmd(opts),
		newOnceCmd(opts),
		newFeaturesCmd(opts),
		newSetupCmd(opts),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hawkeye %s\n", Version)
		},
	})

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addOverrideFlags binds the instrument and window overrides to cmd.
func addOverrideFlags(cmd *cobra.Command, o *config.Overrides) {
	f := cmd.Flags()
	f.StringVar(&o.Ticker, "ticker", "", "Instrument symbol, e.g. SPY or BTC_USDT")
	f.StringVar(&o.Provider, "provider", "", "Bar source: yahoo|binance|bybit|file")
	f.StringVar(&o.Period, "period", "", "History period, e.g. 2y, 6mo, ytd, max")
	f.StringVar(&o.Start, "start", "", "Explicit start date YYYY-MM-DD")
	f.StringVar(&o.End, "end", "", "Explicit end date YYYY-MM-DD (exclusive)")
	f.StringVar(&o.DataFile, "data-file", "", "CSV or Parquet bars file, implies --provider=file")
}

// loadConfig reads the config file, or the defaults when none is given, and
// applies the command-line overrides.
func (o *rootOptions) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return config.Config{}, err
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return o.Overrides.Apply(cfg)
}

// newLogger builds the production logger at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger, nil
}
