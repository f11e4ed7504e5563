// Package report turns a computed feature set into operator-facing artifacts:
// an HTML chart, a JPEG snapshot of it, Telegram messages and a text table.
package report

import (
	"bytes"
	"fmt"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

const (
	closeColor   = "black"
	averageColor = "orange"
	spikeColor   = "purple"

	chartWidth  = "1400px"
	chartHeight = "700px"
)

// ChartRenderer renders the price and volume chart of a feature set.
type ChartRenderer struct {
	width  string
	height string
}

// NewChartRenderer creates a renderer with the default 1400x700 canvas.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{width: chartWidth, height: chartHeight}
}

// Render returns a self-contained HTML page with the close price line,
// color coded volume bars on a secondary axis, the short volume average
// and a marker on every spike bar.
func (r *ChartRenderer) Render(ticker string, set domain.FeatureSet) ([]byte, error) {
	if set.Len() == 0 {
		return nil, errors.New("nothing to chart: feature set is empty")
	}

	dates := make([]string, set.Len())
	closes := make([]opts.LineData, set.Len())
	volumes := make([]opts.BarData, set.Len())
	averages := make([]opts.LineData, set.Len())
	spikes := make([]opts.ScatterData, set.Len())

	for i, row := range set.Rows {
		dates[i] = row.Date().Format("2006-01-02")

		closes[i] = opts.LineData{Value: row.Close.InexactFloat64()}

		volumes[i] = opts.BarData{
			Value:     row.Volume.InexactFloat64(),
			ItemStyle: &opts.ItemStyle{Color: row.Color.Hex()},
		}

		averages[i] = opts.LineData{Value: "-"}
		if row.VolumeAvg20.Valid {
			averages[i] = opts.LineData{Value: row.VolumeAvg20.Float64}
		}

		spikes[i] = opts.ScatterData{Value: "-"}
		if row.IsSpike() {
			spikes[i] = opts.ScatterData{Value: row.Close.InexactFloat64(), SymbolSize: 10}
		}
	}

	price := charts.NewLine()
	price.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s Price and Volume", ticker),
			Width:     r.width,
			Height:    r.height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Price and Volume", ticker),
			Subtitle: fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1]),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "5%"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Close", Scale: opts.Bool(true)}),
	)
	price.ExtendYAxis(opts.YAxis{Name: "Volume"})

	price.SetXAxis(dates).
		AddSeries("Close", closes,
			charts.WithLineStyleOpts(opts.LineStyle{Color: closeColor, Width: 1.5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: closeColor}),
		)

	volume := charts.NewBar()
	volume.SetXAxis(dates).
		AddSeries("Volume", volumes,
			charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
		)

	average := charts.NewLine()
	average.SetXAxis(dates).
		AddSeries(fmt.Sprintf("Volume SMA %d", domain.ShortVolumeWindow), averages,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: averageColor, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: averageColor}),
		)

	spike := charts.NewScatter()
	spike.SetXAxis(dates).
		AddSeries("Volume spike", spikes,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: spikeColor}),
		)

	price.Overlap(volume, average, spike)

	var buf bytes.Buffer
	if err := price.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render chart")
	}
	return buf.Bytes(), nil
}
