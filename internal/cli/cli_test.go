package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/internal/services/market/collector"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBarsFile writes n flat daily bars ending yesterday, with a volume
// burst on the last bar.
func writeBarsFile(t *testing.T, n int) string {
	t.Helper()

	today := domain.TruncateToDate(time.Now())
	bars := make([]domain.Bar, 0, n)
	for i := 0; i < n; i++ {
		volume := decimal.NewFromInt(1000)
		if i == n-1 {
			volume = decimal.NewFromInt(5000)
		}
		bars = append(bars, domain.Bar{
			Timestamp: today.AddDate(0, 0, i-n),
			Open:      decimal.NewFromInt(100),
			High:      decimal.NewFromInt(101),
			Low:       decimal.NewFromInt(99),
			Close:     decimal.NewFromInt(100),
			Volume:    volume,
		})
	}

	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, collector.WriteBars(path, bars))
	return path
}

func writeConfig(t *testing.T, dataFile string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawkeye.yaml")
	content := "ticker: TEST\nprovider: file\ndata_file: " + dataFile + "\nlog_level: error\nchart:\n  snapshot: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hawkeye dev\n", out)
}

func TestFeaturesCmd(t *testing.T) {
	bars := writeBarsFile(t, 250)
	saved := filepath.Join(t.TempDir(), "saved.parquet")

	out, err := execute(t, "features",
		"--config", writeConfig(t, bars),
		"--rows", "3",
		"--save-bars", saved)
	require.NoError(t, err)

	assert.Contains(t, out, "TEST")
	assert.Contains(t, out, "verdict: fresh spike on")
	assert.Contains(t, out, "very high (4.17 x SMA20, 2.50 x spike baseline)")

	reread, err := collector.ReadBars(saved)
	require.NoError(t, err)
	assert.Len(t, reread, 250)
}

func TestFeaturesCmd_DataFileOverride(t *testing.T) {
	bars := writeBarsFile(t, 50)

	out, err := execute(t, "features", "--ticker", "SHORT", "--data-file", bars, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "insufficient history")
	assert.Contains(t, out, "verdict: no active spike")
}

func TestOnceCmd(t *testing.T) {
	bars := writeBarsFile(t, 250)
	chart := filepath.Join(t.TempDir(), "chart.html")

	out, err := execute(t, "once", "--config", writeConfig(t, bars), "--chart", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "cycle ")
	assert.Contains(t, out, "fresh volume spike on")

	page, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(page), "TEST Price and Volume")
}

func TestOnceCmd_DownloadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, err := execute(t, "once", "--config", writeConfig(t, missing))
	require.Error(t, err)

	stage, ok := domain.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.StageDownload, stage)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := execute(t, "features", "--provider", "kraken")
	require.Error(t, err)

	_, err = execute(t, "once", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = newLogger("loud")
	require.Error(t, err)
}
