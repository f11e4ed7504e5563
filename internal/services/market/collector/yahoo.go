package collector

import (
	"context"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/pkg/retrier"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// earliest date requested when the history window is unbounded
var yahooEpoch = time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)

// YahooBarSource implements BarSource over the Yahoo Finance chart API.
// Tickers are passed through unchanged, e.g. "SPY", "^GSPC" or "BTC-USD".
type YahooBarSource struct{}

// NewYahooBarSource creates a new Yahoo Finance bar source.
func NewYahooBarSource() *YahooBarSource {
	return &YahooBarSource{}
}

// Name returns the provider name.
func (s *YahooBarSource) Name() string { return "yahoo" }

// FetchBars downloads the chart for req's window.
func (s *YahooBarSource) FetchBars(ctx context.Context, req domain.HistoryRequest) ([]domain.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interval, err := yahooInterval(req.Interval)
	if err != nil {
		return nil, retrier.Permanent(err)
	}

	start := req.Start
	if start.IsZero() {
		start = yahooEpoch
	}
	end := req.End

	params := &chart.Params{
		Symbol:   req.Ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: interval,
	}

	iter := chart.Get(params)

	var bars []domain.Bar
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar, ok := chartBarToBar(iter.Bar())
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch chart from Yahoo for %s", req.Ticker)
	}

	return bars, nil
}

// chartBarToBar converts a chart bar. ok is false for rows Yahoo reports
// without quotes (holidays, halts, the unfinished session), which the client
// decodes as zero prices.
func chartBarToBar(b *finance.ChartBar) (bar domain.Bar, ok bool) {
	if b == nil || !b.Open.IsPositive() || !b.High.IsPositive() || !b.Low.IsPositive() || !b.Close.IsPositive() {
		return domain.Bar{}, false
	}
	return domain.Bar{
		Timestamp: time.Unix(int64(b.Timestamp), 0).UTC(),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    decimal.NewFromInt(int64(b.Volume)),
	}, true
}

func yahooInterval(interval string) (datetime.Interval, error) {
	switch interval {
	case "1d", "":
		return datetime.OneDay, nil
	case "1h":
		return datetime.OneHour, nil
	case "1wk", "1mo", "3mo":
		return datetime.Interval(interval), nil
	default:
		return "", errors.Errorf("unsupported Yahoo interval %q", interval)
	}
}
