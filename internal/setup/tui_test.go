package setup

import (
	"testing"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		provider string
		ticker   string
		wantErr  bool
	}{
		{config.ProviderYahoo, "SPY", false},
		{config.ProviderYahoo, "^GSPC", false},
		{config.ProviderYahoo, "  ", true},
		{config.ProviderBinance, "BTC_USDT", false},
		{config.ProviderBybit, "eth/usdt", false},
		{config.ProviderBinance, "BTCUSDT", true},
		{config.ProviderBybit, "A_B_C", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.ticker, func(t *testing.T) {
			err := validateTicker(tt.provider, tt.ticker)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateDataFile(t *testing.T) {
	require.NoError(t, validateDataFile("bars.csv"))
	require.NoError(t, validateDataFile("data/SPY.PARQUET"))
	require.Error(t, validateDataFile("bars.json"))
	require.Error(t, validateDataFile(""))
}

func TestValidateChatID(t *testing.T) {
	require.NoError(t, validateChatID(""))
	require.NoError(t, validateChatID("-1001234567890"))
	require.Error(t, validateChatID("@channel"))
}

func TestAnswers_ToConfig(t *testing.T) {
	a := defaultAnswers()
	a.ticker = " QQQ "
	a.period = "5Y"
	a.schedule = "06:45"
	a.chatID = "-42"
	a.dashboard = ":8080"
	a.runOnStart = false

	cfg, err := a.toConfig()
	require.NoError(t, err)
	assert.Equal(t, "QQQ", cfg.Ticker)
	assert.Equal(t, config.ProviderYahoo, cfg.Provider)
	assert.Equal(t, "5y", cfg.Period)
	assert.Equal(t, 6, cfg.RunHour)
	assert.Equal(t, 45, cfg.RunMinute)
	assert.Equal(t, int64(-42), cfg.Telegram.ChatID)
	assert.Equal(t, ":8080", cfg.Dashboard.Addr)
	assert.False(t, cfg.RunOnStart)

	text := summary(cfg)
	assert.Contains(t, text, "Ticker: QQQ")
	assert.Contains(t, text, "Schedule: 06:45 UTC")
	assert.Contains(t, text, "Telegram chat: -42")

	a.provider = config.ProviderFile
	_, err = a.toConfig()
	require.Error(t, err, "file provider needs a data file")

	a.dataFile = "bars.csv"
	cfg, err = a.toConfig()
	require.NoError(t, err)
	assert.Equal(t, "bars.csv", cfg.DataFile)

	a.schedule = "7pm"
	_, err = a.toConfig()
	require.Error(t, err)
}

func TestSummary_Defaults(t *testing.T) {
	text := summary(config.Default())
	assert.Contains(t, text, "Telegram chat: log only")
	assert.Contains(t, text, "Dashboard: disabled")
}
