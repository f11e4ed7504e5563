// Package analysis derives per-bar volume and range features from a bar series.
package analysis

import (
	"math"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/internal/services/market/indicators"
	"github.com/guregu/null/v6"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FeatureEngine computes feature rows for a bar series.
// Compute is a pure function of its input; the logger is only used for diagnostics.
type FeatureEngine struct {
	logger *zap.Logger
}

// NewFeatureEngine creates a new FeatureEngine instance
func NewFeatureEngine(logger *zap.Logger) *FeatureEngine {
	return &FeatureEngine{
		logger: logger,
	}
}

// Compute produces one FeatureRow per bar, preserving order and count.
// A series shorter than domain.RangeWindow is not an error: the result is
// marked InsufficientHistory and every 200-window dependent field stays undefined.
// Non-finite intermediates abort with domain.ErrComputation.
func (e *FeatureEngine) Compute(series domain.BarSeries) (domain.FeatureSet, error) {
	n := len(series)
	set := domain.FeatureSet{
		Rows:                make([]domain.FeatureRow, n),
		InsufficientHistory: n < domain.RangeWindow,
	}
	if n == 0 {
		return set, nil
	}

	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	ranges := make([]float64, n)
	for i, bar := range series {
		highs[i], _ = bar.High.Float64()
		lows[i], _ = bar.Low.Float64()
		closes[i], _ = bar.Close.Float64()
		volumes[i], _ = bar.Volume.Float64()
		ranges[i] = highs[i] - lows[i]

		if err := finite(i, highs[i], lows[i], closes[i], volumes[i], ranges[i]); err != nil {
			return domain.FeatureSet{}, err
		}
	}

	rangeAvg, err := indicators.SMA(ranges, domain.RangeWindow)
	if err != nil {
		return domain.FeatureSet{}, domain.WithKind(domain.ErrComputation, errors.Wrap(err, "range average"))
	}
	volumeAvg20, err := indicators.SMA(volumes, domain.ShortVolumeWindow)
	if err != nil {
		return domain.FeatureSet{}, domain.WithKind(domain.ErrComputation, errors.Wrap(err, "short volume average"))
	}
	volumeAvg200, err := indicators.SMA(volumes, domain.RangeWindow)
	if err != nil {
		return domain.FeatureSet{}, domain.WithKind(domain.ErrComputation, errors.Wrap(err, "long volume average"))
	}
	volumeSpikeAvg, err := indicators.SMA(volumes, domain.SpikeWindow)
	if err != nil {
		return domain.FeatureSet{}, domain.WithKind(domain.ErrComputation, errors.Wrap(err, "spike baseline average"))
	}
	prevHighs := indicators.Shift(highs, 1)
	prevLows := indicators.Shift(lows, 1)

	for i, bar := range series {
		row := domain.FeatureRow{
			Bar:            bar,
			Range:          ranges[i],
			Midpoint:       (highs[i] + lows[i]) / 2,
			RangeAvg:       rangeAvg[i],
			VolumeAvg20:    volumeAvg20[i],
			VolumeAvg200:   volumeAvg200[i],
			VolumeSpikeAvg: volumeSpikeAvg[i],
			PrevHigh:       prevHighs[i],
			PrevLow:        prevLows[i],
		}

		if row.PrevHigh.Valid && row.PrevLow.Valid {
			offset := (row.PrevHigh.Float64 - row.PrevLow.Float64) / domain.BandDivisor
			row.UpperBand = null.FloatFrom(row.Midpoint + offset)
			row.LowerBand = null.FloatFrom(row.Midpoint - offset)
		}

		if err := finite(i, row.Midpoint, row.UpperBand.Float64, row.LowerBand.Float64); err != nil {
			return domain.FeatureSet{}, err
		}

		v := featureValues{
			high:   highs[i],
			low:    lows[i],
			close:  closes[i],
			volume: volumes[i],
			row:    &row,
		}
		row.Bearish = v.bearish()
		row.Bullish = v.bullish()
		row.NeutralRange = v.neutralRange()
		row.Color = colorClass(row.NeutralRange, row.Bullish, row.Bearish)

		if row.VolumeSpikeAvg.Valid {
			row.VolumeSpike = null.BoolFrom(volumes[i] > row.VolumeSpikeAvg.Float64*domain.SpikeMultiplier)
		}

		set.Rows[i] = row
	}

	if set.InsufficientHistory {
		e.logger.Debug("series shorter than range window, classification undefined",
			zap.Int("bars", n),
			zap.Int("window", domain.RangeWindow))
	}

	return set, nil
}

// featureValues evaluates the classification rules of one row.
// Each rule is defined only when every operand it references is defined.
type featureValues struct {
	high, low, close, volume float64
	row                      *domain.FeatureRow
}

func (v featureValues) bearish() null.Bool {
	r := v.row
	if !defined(r.RangeAvg, r.LowerBand, r.VolumeAvg200) {
		return null.Bool{}
	}
	expansion := r.Range > r.RangeAvg.Float64 && v.close < r.LowerBand.Float64 && v.volume > r.VolumeAvg200.Float64
	belowMid := v.close < r.Midpoint
	return null.BoolFrom(expansion || belowMid)
}

func (v featureValues) bullish() null.Bool {
	r := v.row
	if !defined(r.RangeAvg, r.UpperBand, r.VolumeAvg200, r.PrevHigh, r.PrevLow) {
		return null.Bool{}
	}
	contracted := r.Range < r.RangeAvg.Float64/domain.ContractionDivisor

	aboveMid := v.close > r.Midpoint
	expansion := r.Range > r.RangeAvg.Float64 && v.close > r.UpperBand.Float64 && v.volume > r.VolumeAvg200.Float64
	higherHigh := v.high > r.PrevHigh.Float64 && contracted && v.volume < r.VolumeAvg200.Float64
	lowerLow := v.low < r.PrevLow.Float64 && contracted && v.volume > r.VolumeAvg200.Float64
	return null.BoolFrom(aboveMid || expansion || higherHigh || lowerLow)
}

func (v featureValues) neutralRange() null.Bool {
	r := v.row
	if !defined(r.RangeAvg, r.LowerBand, r.UpperBand, r.VolumeAvg200, r.VolumeAvg20) {
		return null.Bool{}
	}
	insideBands := v.close > r.LowerBand.Float64 && v.close < r.UpperBand.Float64

	elevated := r.Range > r.RangeAvg.Float64 &&
		insideBands &&
		v.volume > r.VolumeAvg200.Float64 &&
		v.volume < r.VolumeAvg200.Float64*domain.VolumeCeilingMultiplier &&
		v.volume > r.VolumeAvg20.Float64
	quiet := r.Range < r.RangeAvg.Float64/domain.ContractionDivisor && v.volume < r.VolumeAvg200.Float64/domain.ContractionDivisor
	return null.BoolFrom(elevated || quiet || insideBands)
}

// colorClass applies the fixed priority neutral, bullish, bearish, default.
func colorClass(neutral, bullish, bearish null.Bool) domain.ColorClass {
	if !neutral.Valid || !bullish.Valid || !bearish.Valid {
		return domain.ColorUndefined
	}
	switch {
	case neutral.Bool:
		return domain.ColorNeutralGray
	case bullish.Bool:
		return domain.ColorBullishGreen
	case bearish.Bool:
		return domain.ColorBearishRed
	default:
		return domain.ColorDefaultBlue
	}
}

func defined(values ...null.Float) bool {
	for _, v := range values {
		if !v.Valid {
			return false
		}
	}
	return true
}

func finite(index int, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.WithKind(domain.ErrComputation, errors.Errorf("non-finite value at bar %d", index))
		}
	}
	return nil
}
