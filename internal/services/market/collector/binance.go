package collector

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/pkg/retrier"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const binanceMaxKlines = 1000

// BinanceBarSource implements BarSource over Binance spot klines.
type BinanceBarSource struct {
	client *binance.Client
}

// NewBinanceBarSource creates a new Binance bar source.
func NewBinanceBarSource(client *binance.Client) *BinanceBarSource {
	return &BinanceBarSource{client: client}
}

// Name returns the provider name.
func (s *BinanceBarSource) Name() string { return "binance" }

// FetchBars pages through klines forward from req.Start until req.End.
func (s *BinanceBarSource) FetchBars(ctx context.Context, req domain.HistoryRequest) ([]domain.Bar, error) {
	pair, err := domain.ParsePair(req.Ticker)
	if err != nil {
		return nil, retrier.Permanent(err)
	}
	symbol := pair.Symbol()

	var startMs int64
	if !req.Start.IsZero() {
		startMs = req.Start.UnixMilli()
	}
	endMs := req.End.UnixMilli() - 1

	var bars []domain.Bar
	for startMs <= endMs {
		klines, err := s.client.NewKlinesService().
			Symbol(symbol).
			Interval(req.Interval).
			StartTime(startMs).
			EndTime(endMs).
			Limit(binanceMaxKlines).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch klines from Binance for %s", pair.String())
		}

		for i, k := range klines {
			bar, err := binanceKlineToBar(k)
			if err != nil {
				return nil, retrier.Permanent(errors.Wrapf(err, "kline %d", len(bars)+i))
			}
			bars = append(bars, bar)
		}

		if len(klines) < binanceMaxKlines {
			break
		}
		startMs = klines[len(klines)-1].OpenTime + 1
	}

	return bars, nil
}

func binanceKlineToBar(k *binance.Kline) (domain.Bar, error) {
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
		Timestamp: time.UnixMilli(k.OpenTime).UTC(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}, nil
}
