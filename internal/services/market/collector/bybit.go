package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/pkg/retrier"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const bybitMaxKlines = 1000

// BybitBarSource implements BarSource over Bybit V5 spot klines.
type BybitBarSource struct {
	client *bybit.Client
	// pause between pages to stay under the public rate limit
	pause time.Duration
}

// NewBybitBarSource creates a new Bybit bar source.
func NewBybitBarSource(client *bybit.Client) *BybitBarSource {
	return &BybitBarSource{client: client, pause: 100 * time.Millisecond}
}

// Name returns the provider name.
func (s *BybitBarSource) Name() string { return "bybit" }

// FetchBars pages backwards from req.End, since Bybit lists klines newest first.
func (s *BybitBarSource) FetchBars(ctx context.Context, req domain.HistoryRequest) ([]domain.Bar, error) {
	pair, err := domain.ParsePair(req.Ticker)
	if err != nil {
		return nil, retrier.Permanent(err)
	}

	bybitInterval, err := convertIntervalToBybit(req.Interval)
	if err != nil {
		return nil, retrier.Permanent(errors.Wrapf(err, "invalid interval: %s", req.Interval))
	}

	var startMs int
	if !req.Start.IsZero() {
		startMs = int(req.Start.UnixMilli())
	}
	endMs := int(req.End.UnixMilli()) - 1

	var all []bybit.V5GetKlineItem
	for endMs >= startMs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start, end, limit := int64(startMs), int64(endMs), bybitMaxKlines
		param := bybit.V5GetKlineParam{
			Category: bybit.CategoryV5Spot,
			Symbol:   bybit.SymbolV5(pair.Symbol()),
			Interval: bybit.Interval(bybitInterval),
			Start:    &start,
			End:      &end,
			Limit:    &limit,
		}

		result, err := s.client.V5().Market().GetKline(param)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", pair.String())
		}
		if result == nil {
			return nil, errors.Errorf("empty result from Bybit API for %s", pair.String())
		}

		klines := result.Result.List
		all = append(all, klines...)

		// if we got fewer results than requested, we've reached the start
		if len(klines) < bybitMaxKlines {
			break
		}

		oldest, err := parseTimestamp(klines[len(klines)-1].StartTime)
		if err != nil {
			return nil, retrier.Permanent(err)
		}
		endMs = int(oldest.UnixMilli()) - 1

		time.Sleep(s.pause)
	}

	bars := make([]domain.Bar, len(all))
	for i, k := range all {
		bar, err := bybitKlineToBar(k)
		if err != nil {
			return nil, retrier.Permanent(errors.Wrapf(err, "kline %d", i))
		}
		bars[i] = bar
	}

	return bars, nil
}

func bybitKlineToBar(k bybit.V5GetKlineItem) (domain.Bar, error) {
	openTime, err := parseTimestamp(k.StartTime)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse start time")
	}
	open, err := decimal.NewFromString(k.Open)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse open price")
	}
	high, err := decimal.NewFromString(k.High)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse high price")
	}
	low, err := decimal.NewFromString(k.Low)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse low price")
	}
	close, err := decimal.NewFromString(k.Close)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse close price")
	}
	volume, err := decimal.NewFromString(k.Volume)
	if err != nil {
		return domain.Bar{}, errors.Wrap(err, "failed to parse volume")
	}

	return domain.Bar{
		Timestamp: openTime,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}, nil
}

// convertIntervalToBybit converts standard interval format to Bybit format.
// Standard format: "1m", "5m", "15m", "1h", "4h", "1d", etc.
// Bybit format: "1", "5", "15", "60", "240", "D", etc.
func convertIntervalToBybit(interval string) (string, error) {
	if len(interval) < 2 {
		return "", fmt.Errorf("invalid interval format: %s", interval)
	}

	unit := interval[len(interval)-1]
	numberPart := interval[:len(interval)-1]

	switch unit {
	case 'm':
		return numberPart, nil
	case 'h':
		// hours to minutes: 1h -> 60, 4h -> 240
		var n int64
		for _, r := range numberPart {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("invalid interval number: %s", interval)
			}
			n = n*10 + int64(r-'0')
		}
		return fmt.Sprintf("%d", n*60), nil
	case 'd':
		return "D", nil
	case 'w':
		return "W", nil
	default:
		return "", fmt.Errorf("unsupported interval unit: %c", unit)
	}
}

// parseTimestamp converts Bybit timestamp string (milliseconds) to UTC time.
func parseTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	var msec int64
	_, err := fmt.Sscanf(ts, "%d", &msec)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse timestamp: %s", ts)
	}

	return time.UnixMilli(msec).UTC(), nil
}
