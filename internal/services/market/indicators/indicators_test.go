package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.False(t, got[0].Valid)
	for i, want := range []float64{1.5, 2.5, 3.5, 4.5} {
		require.True(t, got[i+1].Valid, "index %d", i+1)
		assert.InDelta(t, want, got[i+1].Float64, 1e-9)
	}
}

func TestSMA_WindowIsolated(t *testing.T) {
	small := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	large := append([]float64{1e17}, small[1:]...)

	want, err := SMA(small, 4)
	require.NoError(t, err)
	got, err := SMA(large, 4)
	require.NoError(t, err)

	// rows 4.. no longer contain the first value
	for i := 4; i < len(small); i++ {
		require.True(t, got[i].Valid, "index %d", i)
		assert.Equal(t, want[i], got[i], "index %d", i)
		assert.Equal(t, 1.0, got[i].Float64, "index %d", i)
	}
}

func TestSMA_ShortSeries(t *testing.T) {
	got, err := SMA([]float64{10, 20, 30}, 4)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.False(t, v.Valid)
	}
}

func TestSMA_InvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1, 2}, 0)
	require.Error(t, err)
}

func TestShift(t *testing.T) {
	got := Shift([]float64{1, 2, 3}, 1)
	require.Len(t, got, 3)
	assert.False(t, got[0].Valid)
	assert.Equal(t, 1.0, got[1].Float64)
	assert.Equal(t, 2.0, got[2].Float64)

	assert.Len(t, Shift([]float64{1}, 3), 1)
}

func TestDecimalsToFloat64(t *testing.T) {
	got := DecimalsToFloat64([]decimal.Decimal{decimal.RequireFromString("1.25"), decimal.NewFromInt(7)})
	assert.Equal(t, []float64{1.25, 7}, got)
}
