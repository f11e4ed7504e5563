package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/berkayda/hawkeye-public/internal/clients"
	"github.com/berkayda/hawkeye-public/internal/services/market/collector"
	"github.com/berkayda/hawkeye-public/internal/storage/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewBarSource(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		dataFile    string
		wantName    string
		expectError bool
	}{
		{name: "Yahoo", provider: config.ProviderYahoo, wantName: "yahoo"},
		{name: "Binance", provider: config.ProviderBinance, wantName: "binance"},
		{name: "Bybit", provider: config.ProviderBybit, wantName: "bybit"},
		{name: "File", provider: config.ProviderFile, dataFile: "bars.csv", wantName: "file"},
		{name: "File without path", provider: config.ProviderFile, expectError: true},
		{name: "Unsupported", provider: "kraken", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Provider = tt.provider
			cfg.DataFile = tt.dataFile

			source, err := NewBarSource(cfg)
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, source)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, source.Name())
		})
	}
}

func TestNewCollector(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = config.ProviderFile
	cfg.DataFile = "bars.parquet"

	coll, err := NewCollector(cfg, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &collector.FileBarSource{}, coll.Source())
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier(config.Default(), zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &clients.LogNotifier{}, n)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bottok/getMe" {
			_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"hawkeye"}}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Telegram.Token = "tok"
	cfg.Telegram.ChatID = 7
	cfg.Telegram.Endpoint = srv.URL + "/bot%s/%s"

	n, err = NewNotifier(cfg, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &clients.TelegramClient{}, n)

	cfg.Telegram.Token = "wrong"
	_, err = NewNotifier(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestNewWatcherFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = config.ProviderFile
	cfg.DataFile = "bars.csv"
	cfg.Chart.Snapshot = false

	w, err := NewWatcherFromConfig(cfg, reports.NewStore(), zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, w.deps.Snapshotter)
	require.NotNil(t, w.deps.Publisher)

	cfg.Chart.Snapshot = true
	w, err = NewWatcherFromConfig(cfg, nil, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, w.deps.Snapshotter)
	require.Nil(t, w.deps.Publisher)

	cfg.Provider = "kraken"
	_, err = NewWatcherFromConfig(cfg, nil, zap.NewNop())
	require.Error(t, err)
}
