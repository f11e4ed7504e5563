package domain

import (
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumeRow(volume int64, avg20, spikeAvg null.Float) FeatureRow {
	return FeatureRow{
		Bar: Bar{
			Timestamp: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			Volume:    decimal.NewFromInt(volume),
		},
		VolumeAvg20:    avg20,
		VolumeSpikeAvg: spikeAvg,
		Color:          ColorBullishGreen,
	}
}

func TestNewVolumeAnalysis(t *testing.T) {
	_, ok := NewVolumeAnalysis(FeatureSet{})
	require.False(t, ok)

	tests := []struct {
		name      string
		row       FeatureRow
		relative  string
		spike     string
		level     string
		high      bool
		veryHigh  bool
		lowVolume bool
	}{
		{
			name:     "very high",
			row:      volumeRow(5000, null.FloatFrom(2000), null.FloatFrom(2000)),
			relative: "2.5",
			spike:    "2.5",
			level:    "very high",
			high:     true,
			veryHigh: true,
		},
		{
			name:     "high",
			row:      volumeRow(3200, null.FloatFrom(2000), null.FloatFrom(4000)),
			relative: "1.6",
			spike:    "0.8",
			level:    "high",
			high:     true,
		},
		{
			name:     "normal",
			row:      volumeRow(2000, null.FloatFrom(2000), null.FloatFrom(2000)),
			relative: "1",
			spike:    "1",
			level:    "normal",
		},
		{
			name:      "low",
			row:       volumeRow(1000, null.FloatFrom(2000), null.FloatFrom(1000)),
			relative:  "0.5",
			spike:     "1",
			level:     "low",
			lowVolume: true,
		},
		{
			name:     "warm-up",
			row:      volumeRow(1000, null.Float{}, null.Float{}),
			relative: "0",
			spike:    "0",
			level:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			va, ok := NewVolumeAnalysis(FeatureSet{Rows: []FeatureRow{tt.row}})
			require.True(t, ok)
			assert.Equal(t, "2024-06-07", va.Date)
			assert.Equal(t, tt.relative, va.RelativeVolume.String())
			assert.Equal(t, tt.spike, va.SpikeRatio.String())
			assert.Equal(t, tt.level, va.Level())
			assert.Equal(t, tt.high, va.IsHighVolume())
			assert.Equal(t, tt.veryHigh, va.IsVeryHighVolume())
			assert.Equal(t, tt.lowVolume, va.IsLowVolume())
			assert.Equal(t, ColorBullishGreen, va.Color)
		})
	}
}
