package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleBars(n int) []domain.Bar {
	first := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, n)
	for i := range bars {
		bars[i] = domain.Bar{
			Timestamp: first.AddDate(0, 0, i),
			Open:      decimal.RequireFromString("100.5"),
			High:      decimal.NewFromInt(int64(102 + i)),
			Low:       decimal.RequireFromString("99.25"),
			Close:     decimal.NewFromInt(101),
			Volume:    decimal.NewFromInt(int64(1000 * (i + 1))),
		}
	}
	return bars
}

func requireSameBars(t *testing.T, want, got []domain.Bar) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "bar %d timestamp", i)
		require.True(t, want[i].Open.Equal(got[i].Open), "bar %d open", i)
		require.True(t, want[i].High.Equal(got[i].High), "bar %d high", i)
		require.True(t, want[i].Low.Equal(got[i].Low), "bar %d low", i)
		require.True(t, want[i].Close.Equal(got[i].Close), "bar %d close", i)
		require.True(t, want[i].Volume.Equal(got[i].Volume), "bar %d volume", i)
	}
}

func TestWriteReadBars_RoundTrip(t *testing.T) {
	for _, ext := range []string{".csv", ".parquet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bars"+ext)
			want := sampleBars(25)

			require.NoError(t, WriteBars(path, want))
			got, err := ReadBars(path)
			require.NoError(t, err)

			requireSameBars(t, want, got)
		})
	}
}

func TestReadBars_CSVWithDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spy.csv")
	content := "t,o,h,l,c,v\n" +
		"2024-01-02,472.16,473.67,470.49,472.65,123623700\n" +
		"2024-01-03,470.43,471.19,468.17,468.79,103585900\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	bars, err := ReadBars(path)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Timestamp)
	require.Equal(t, "468.79", bars[1].Close.String())
	require.Equal(t, "103585900", bars[1].Volume.String())
}

func TestReadBars_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad header", "a.csv", "time,open,high,low,close,volume\n1,1,1,1,1,1\n"},
		{"bad number", "b.csv", "t,o,h,l,c,v\n1700000000000,abc,1,1,1,1\n"},
		{"bad time", "c.csv", "t,o,h,l,c,v\nyesterday,1,1,1,1,1\n"},
		{"missing column", "d.csv", "t,o,h,l,c,v\n1700000000000,1,1,1,1\n"},
		{"unknown extension", "e.json", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := ReadBars(path)
			require.Error(t, err)
		})
	}

	_, err := ReadBars(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func TestFileBarSource_FetchBarsFiltersWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.parquet")
	bars := sampleBars(30)
	require.NoError(t, WriteBars(path, bars))

	source := NewFileBarSource(path)
	require.Equal(t, "file", source.Name())

	got, err := source.FetchBars(context.Background(), domain.HistoryRequest{
		Ticker: "SPY",
		Start:  bars[5].Timestamp,
		End:    bars[15].Timestamp,
	})
	require.NoError(t, err)
	requireSameBars(t, bars[5:15], got)

	all, err := source.FetchBars(context.Background(), domain.HistoryRequest{Ticker: "SPY"})
	require.NoError(t, err)
	require.Len(t, all, 30)
}
