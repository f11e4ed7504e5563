package report

import (
	"testing"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func chartRows() domain.FeatureSet {
	first := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	colors := []domain.ColorClass{
		domain.ColorUndefined,
		domain.ColorNeutralGray,
		domain.ColorBullishGreen,
		domain.ColorBearishRed,
	}

	set := domain.FeatureSet{}
	for i, color := range colors {
		row := domain.FeatureRow{
			Bar: domain.Bar{
				Timestamp: first.AddDate(0, 0, i),
				Close:     decimal.NewFromInt(int64(100 + i)),
				Volume:    decimal.NewFromInt(int64(1000 * (i + 1))),
			},
			Color:       color,
			VolumeSpike: null.BoolFrom(i == 3),
		}
		if i > 0 {
			row.VolumeAvg20 = null.FloatFrom(1500)
		}
		set.Rows = append(set.Rows, row)
	}
	return set
}

func TestChartRenderer_Render(t *testing.T) {
	html, err := NewChartRenderer().Render("SPY", chartRows())
	require.NoError(t, err)

	page := string(html)
	require.Contains(t, page, "SPY Price and Volume")
	require.Contains(t, page, "2024-05-01")
	require.Contains(t, page, "2024-05-04")
	require.Contains(t, page, "Volume spike")
	require.Contains(t, page, "Volume SMA 20")

	for _, hex := range []string{"#0000FF", "#696b70", "#026b07", "#d81515"} {
		require.Contains(t, page, hex)
	}
	require.Contains(t, page, spikeColor)
	require.Contains(t, page, averageColor)
}

func TestChartRenderer_RenderEmpty(t *testing.T) {
	_, err := NewChartRenderer().Render("SPY", domain.FeatureSet{})
	require.Error(t, err)
}
