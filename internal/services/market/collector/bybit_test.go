package collector

import (
	"testing"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertIntervalToBybit(t *testing.T) {
	tests := []struct {
		interval string
		want     string
		wantErr  bool
	}{
		{interval: "1d", want: "D"},
		{interval: "1w", want: "W"},
		{interval: "1h", want: "60"},
		{interval: "4h", want: "240"},
		{interval: "15m", want: "15"},
		{interval: "", wantErr: true},
		{interval: "d", wantErr: true},
		{interval: "1y", wantErr: true},
		{interval: "xh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			got, err := convertIntervalToBybit(tt.interval)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("1717977600000")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, domain.TruncateToDate(got).Equal(got), "daily kline starts at midnight UTC")

	for _, bad := range []string{"", "abc"} {
		_, err := parseTimestamp(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestBybitKlineToBar(t *testing.T) {
	bar, err := bybitKlineToBar(bybit.V5GetKlineItem{
		StartTime: "1672531200000",
		Open:      "16500.5",
		High:      "16620",
		Low:       "16490.1",
		Close:     "16610",
		Volume:    "1250.75",
		Turnover:  "20700000",
	})
	require.NoError(t, err)

	require.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), bar.Timestamp)
	require.Equal(t, "16500.5", bar.Open.String())
	require.Equal(t, "16620", bar.High.String())
	require.Equal(t, "16490.1", bar.Low.String())
	require.Equal(t, "16610", bar.Close.String())
	require.Equal(t, "1250.75", bar.Volume.String())
	require.NoError(t, bar.Validate())

	_, err = bybitKlineToBar(bybit.V5GetKlineItem{StartTime: "1672531200000", Open: "x"})
	require.Error(t, err)
}
