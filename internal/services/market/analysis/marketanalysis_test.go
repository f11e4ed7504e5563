package analysis

import (
	"testing"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var seriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// flatSeries returns n daily bars with high 101, low 99, close 100 and volume 1000.
func flatSeries(n int) domain.BarSeries {
	series := make(domain.BarSeries, n)
	for i := range series {
		series[i] = domain.Bar{
			Timestamp: seriesStart.AddDate(0, 0, i),
			Open:      decimal.NewFromInt(100),
			High:      decimal.NewFromInt(101),
			Low:       decimal.NewFromInt(99),
			Close:     decimal.NewFromInt(100),
			Volume:    decimal.NewFromInt(1000),
		}
	}
	return series
}

func compute(t *testing.T, series domain.BarSeries) domain.FeatureSet {
	t.Helper()
	set, err := NewFeatureEngine(zap.NewNop()).Compute(series)
	require.NoError(t, err)
	require.Len(t, set.Rows, len(series))
	return set
}

func TestCompute_ShortSeriesIsUndefined(t *testing.T) {
	for _, n := range []int{1, 5, 150, 199} {
		set := compute(t, flatSeries(n))

		require.True(t, set.InsufficientHistory, "n=%d", n)
		for i, row := range set.Rows {
			assert.False(t, row.RangeAvg.Valid, "n=%d row=%d rangeAvg", n, i)
			assert.False(t, row.VolumeAvg200.Valid, "n=%d row=%d volumeAvg200", n, i)
			assert.False(t, row.Bearish.Valid, "n=%d row=%d bearish", n, i)
			assert.False(t, row.Bullish.Valid, "n=%d row=%d bullish", n, i)
			assert.False(t, row.NeutralRange.Valid, "n=%d row=%d neutralRange", n, i)
			assert.Equal(t, domain.ColorUndefined, row.Color)
		}
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	set := compute(t, domain.BarSeries{})
	require.True(t, set.InsufficientHistory)
	require.Empty(t, set.Rows)
}

func TestCompute_ExactWindowBoundary(t *testing.T) {
	set := compute(t, flatSeries(domain.RangeWindow))
	require.False(t, set.InsufficientHistory)

	first := set.Rows[0]
	require.False(t, first.PrevHigh.Valid)
	require.False(t, first.PrevLow.Valid)
	require.False(t, first.UpperBand.Valid)
	require.False(t, first.LowerBand.Valid)
	require.InDelta(t, 100.0, first.Midpoint, 1e-9)
	require.InDelta(t, 2.0, first.Range, 1e-9)

	second := set.Rows[1]
	require.True(t, second.UpperBand.Valid)
	require.InDelta(t, 100+2/domain.BandDivisor, second.UpperBand.Float64, 1e-9)
	require.InDelta(t, 100-2/domain.BandDivisor, second.LowerBand.Float64, 1e-9)

	for i := 0; i < domain.RangeWindow-1; i++ {
		row := set.Rows[i]
		assert.False(t, row.RangeAvg.Valid, "row %d", i)
		assert.False(t, row.VolumeAvg200.Valid, "row %d", i)
		assert.False(t, row.IsClassified(), "row %d", i)
	}

	last := set.Rows[domain.RangeWindow-1]
	require.True(t, last.RangeAvg.Valid)
	require.True(t, last.VolumeAvg200.Valid)
	require.True(t, last.VolumeAvg20.Valid)
	require.True(t, last.IsClassified())
	require.InDelta(t, 2.0, last.RangeAvg.Float64, 1e-9)
	require.InDelta(t, 1000.0, last.VolumeAvg200.Float64, 1e-9)
	require.NotEqual(t, domain.ColorUndefined, last.Color)
}

func TestCompute_ShortVolumeAverageWarmUp(t *testing.T) {
	set := compute(t, flatSeries(30))

	for i := 0; i < domain.ShortVolumeWindow-1; i++ {
		require.False(t, set.Rows[i].VolumeAvg20.Valid, "row %d", i)
	}
	require.True(t, set.Rows[domain.ShortVolumeWindow-1].VolumeAvg20.Valid)
	require.InDelta(t, 1000.0, set.Rows[29].VolumeAvg20.Float64, 1e-9)
}

func TestCompute_ColorClass(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(series domain.BarSeries)
		color   domain.ColorClass
		neutral bool
		bullish bool
		bearish bool
	}{
		{
			// close above midpoint and inside the bands: both neutral and bullish hold
			name: "neutral wins over bullish",
			mutate: func(s domain.BarSeries) {
				s[len(s)-1].Close = decimal.RequireFromString("100.3")
			},
			color:   domain.ColorNeutralGray,
			neutral: true,
			bullish: true,
		},
		{
			name: "bullish above upper band",
			mutate: func(s domain.BarSeries) {
				s[len(s)-1].Close = decimal.RequireFromString("100.8")
			},
			color:   domain.ColorBullishGreen,
			bullish: true,
		},
		{
			name: "bearish below lower band",
			mutate: func(s domain.BarSeries) {
				s[len(s)-1].Close = decimal.RequireFromString("99.2")
			},
			color:   domain.ColorBearishRed,
			bearish: true,
		},
		{
			// zero-width prior bar collapses the bands onto the midpoint
			name: "default when no rule fires",
			mutate: func(s domain.BarSeries) {
				prev := &s[len(s)-2]
				prev.High = decimal.NewFromInt(100)
				prev.Low = decimal.NewFromInt(100)
			},
			color: domain.ColorDefaultBlue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := flatSeries(220)
			tt.mutate(series)

			set := compute(t, series)
			last := set.Rows[len(set.Rows)-1]

			require.True(t, last.IsClassified())
			assert.Equal(t, tt.neutral, last.NeutralRange.Bool, "neutralRange")
			assert.Equal(t, tt.bullish, last.Bullish.Bool, "bullish")
			assert.Equal(t, tt.bearish, last.Bearish.Bool, "bearish")
			assert.Equal(t, tt.color, last.Color)
		})
	}
}

func TestCompute_VolumeSpike(t *testing.T) {
	series := flatSeries(250)
	series[249].Volume = decimal.NewFromInt(5000)

	set := compute(t, series)

	for i := 0; i < domain.SpikeWindow-1; i++ {
		require.False(t, set.Rows[i].VolumeSpike.Valid, "row %d", i)
	}
	for i := domain.SpikeWindow - 1; i < 249; i++ {
		require.True(t, set.Rows[i].VolumeSpike.Valid, "row %d", i)
		require.False(t, set.Rows[i].VolumeSpike.Bool, "row %d", i)
	}

	last := set.Rows[249]
	require.True(t, last.IsSpike())
	require.InDelta(t, 2000.0, last.VolumeSpikeAvg.Float64, 1e-9)
	require.Len(t, set.Spikes(), 1)
}

func TestCompute_VolumeSpikeUsesTrailingWindowOnly(t *testing.T) {
	base := flatSeries(250)
	base[240].Volume = decimal.NewFromInt(2600)

	mutated := flatSeries(250)
	mutated[240].Volume = decimal.NewFromInt(2600)
	// everything more than four bars before row 240 changes
	for i := 0; i <= 236; i++ {
		mutated[i].Volume = decimal.NewFromInt(int64(50 + i*37))
	}
	mutated[3].Volume = decimal.NewFromInt(100_000_000_000_000_000)

	want := compute(t, base).Rows[240].VolumeSpike
	got := compute(t, mutated).Rows[240].VolumeSpike

	require.True(t, want.Valid)
	require.True(t, want.Bool)
	require.Equal(t, want, got)
}

func TestCompute_VolumeSpikeIgnoresDistantOutlier(t *testing.T) {
	plain := flatSeries(12)
	outlier := flatSeries(12)
	outlier[0].Volume = decimal.NewFromInt(100_000_000_000_000_000)

	want := compute(t, plain)
	got := compute(t, outlier)

	for i := domain.SpikeWindow; i < len(plain); i++ {
		require.True(t, want.Rows[i].VolumeSpikeAvg.Valid, "row %d", i)
		assert.Equal(t, want.Rows[i].VolumeSpikeAvg, got.Rows[i].VolumeSpikeAvg, "row %d", i)
		assert.Equal(t, want.Rows[i].VolumeSpike, got.Rows[i].VolumeSpike, "row %d", i)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	series := flatSeries(260)
	for i := range series {
		series[i].Volume = decimal.NewFromInt(int64(900 + (i*131)%700))
		series[i].Close = decimal.NewFromFloat(99.5 + float64(i%10)/10)
	}

	engine := NewFeatureEngine(zap.NewNop())
	first, err := engine.Compute(series)
	require.NoError(t, err)
	second, err := engine.Compute(series)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCompute_NonFiniteInput(t *testing.T) {
	series := flatSeries(10)
	series[5].Volume = decimal.RequireFromString("1e400")

	_, err := NewFeatureEngine(zap.NewNop()).Compute(series)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrComputation)
}
