// Package collector provides bar sources for historical OHLCV data and a
// validating collector that turns their output into a BarSeries.
package collector

import (
	"context"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/pkg/retrier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 60 * time.Second
	defaultFetchRetries = 3
)

// BarSource defines the interface for fetching historical bars
type BarSource interface {
	// Name returns the provider name used in logs and config, e.g. "yahoo".
	Name() string
	// FetchBars returns the bars inside req's window in any order.
	FetchBars(ctx context.Context, req domain.HistoryRequest) ([]domain.Bar, error)
}

// Collector fetches bars from a source with retries and validates the result.
type Collector struct {
	source  BarSource
	retrier *retrier.Retrier
	retries int
	timeout time.Duration
	logger  *zap.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithRetrier replaces the default retry policy.
func WithRetrier(r *retrier.Retrier) CollectorOption {
	return func(c *Collector) {
		c.retrier = r
	}
}

// WithRetries sets the retry count of the default retry policy.
func WithRetries(n int) CollectorOption {
	return func(c *Collector) {
		c.retries = n
	}
}

// WithTimeout bounds every fetch attempt.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) {
		c.timeout = d
	}
}

// NewCollector creates a new collector for source.
func NewCollector(source BarSource, logger *zap.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		source:  source,
		retries: defaultFetchRetries,
		timeout: defaultFetchTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retrier == nil {
		c.retrier = retrier.New(
			retrier.WithMaxRetries(c.retries),
			retrier.WithOnRetry(c.logRetry),
		)
	}
	return c
}

// Source returns the underlying bar source.
func (c *Collector) Source() BarSource {
	return c.source
}

// Collect fetches, sorts and validates the bars for req.
// Every failure is reported as domain.ErrDataUnavailable.
func (c *Collector) Collect(ctx context.Context, req domain.HistoryRequest) (domain.BarSeries, error) {
	bars, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) ([]domain.Bar, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		return c.source.FetchBars(attemptCtx, req)
	})
	if err != nil {
		return nil, domain.WithKind(domain.ErrDataUnavailable,
			errors.Wrapf(err, "failed to fetch %s bars from %s", req.Ticker, c.source.Name()))
	}

	series := domain.BarSeries(bars)
	series.Sort()
	if err := series.Validate(); err != nil {
		return nil, domain.WithKind(domain.ErrDataUnavailable,
			errors.Wrapf(err, "malformed %s bars from %s", req.Ticker, c.source.Name()))
	}

	c.logger.Info("bars collected",
		zap.String("source", c.source.Name()),
		zap.String("ticker", req.Ticker),
		zap.Int("bars", series.Len()),
		zap.Time("first", series[0].Timestamp),
		zap.Time("last", series[series.Len()-1].Timestamp))

	return series, nil
}

func (c *Collector) logRetry(attempt int, err error) {
	c.logger.Warn("retrying bar fetch",
		zap.String("source", c.source.Name()),
		zap.Int("attempt", attempt),
		zap.Error(err))
}
