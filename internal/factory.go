package internal

import (
	"fmt"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/berkayda/hawkeye-public/internal/clients"
	"github.com/berkayda/hawkeye-public/internal/services/detector"
	"github.com/berkayda/hawkeye-public/internal/services/market/analysis"
	"github.com/berkayda/hawkeye-public/internal/services/market/collector"
	"github.com/berkayda/hawkeye-public/internal/services/report"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewBarSource creates the bar source named by cfg.Provider.
// This is the single point of truth for dispatching to provider-specific implementations.
func NewBarSource(cfg config.Config) (collector.BarSource, error) {
	switch cfg.Provider {
	case config.ProviderYahoo:
		return collector.NewYahooBarSource(), nil
	case config.ProviderBinance:
		return collector.NewBinanceBarSource(clients.NewBinanceClient(cfg.Binance.APIKey, cfg.Binance.APISecret)), nil
	case config.ProviderBybit:
		return collector.NewBybitBarSource(clients.NewBybitClient(cfg.Bybit.APIKey, cfg.Bybit.APISecret)), nil
	case config.ProviderFile:
		if cfg.DataFile == "" {
			return nil, errors.New("file provider requires a data file")
		}
		return collector.NewFileBarSource(cfg.DataFile), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// NewCollector wraps the configured bar source with the configured retry policy.
func NewCollector(cfg config.Config, logger *zap.Logger) (*collector.Collector, error) {
	source, err := NewBarSource(cfg)
	if err != nil {
		return nil, err
	}

	return collector.NewCollector(source, logger,
		collector.WithRetries(cfg.FetchRetries),
		collector.WithTimeout(cfg.FetchTimeout),
	), nil
}

// NewNotifier returns a Telegram notifier when a bot token and chat are
// configured, and a logging notifier otherwise.
func NewNotifier(cfg config.Config, logger *zap.Logger) (clients.Notifier, error) {
	if !cfg.Telegram.Enabled() {
		logger.Warn("telegram is not configured, notifications go to the log",
			zap.String("token_env", config.EnvTelegramToken))
		return clients.NewLogNotifier(logger), nil
	}

	tg, err := clients.NewTelegramClient(cfg.Telegram.Token, cfg.Telegram.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram notifier")
	}
	return tg, nil
}

// NewWatcherFromConfig wires every collaborator of a Watcher from cfg.
// publisher may be nil.
func NewWatcherFromConfig(cfg config.Config, publisher ReportPublisher, logger *zap.Logger) (*Watcher, error) {
	coll, err := NewCollector(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bar collector")
	}

	notifier, err := NewNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := WatcherDeps{
		Collector: coll,
		Engine:    analysis.NewFeatureEngine(logger),
		Detector:  detector.NewSpikeDetector(),
		Chart:     report.NewChartRenderer(),
		Notifier:  notifier,
		Publisher: publisher,
	}
	if cfg.Chart.Snapshot {
		opts := []report.SnapshotOption{}
		if cfg.Chart.ChromePath != "" {
			opts = append(opts, report.WithExecPath(cfg.Chart.ChromePath))
		}
		deps.Snapshotter = report.NewSnapshotter(opts...)
	}

	return NewWatcher(cfg, deps, logger)
}
