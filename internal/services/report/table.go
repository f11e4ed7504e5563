package report

import (
	"io"
	"strconv"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/guregu/null/v6"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const undefinedCell = "-"

// WriteFeatureTable renders the last n feature rows as a text table.
// Undefined values are shown as "-".
func WriteFeatureTable(w io.Writer, ticker string, set domain.FeatureSet, n int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(ticker)
	t.AppendHeader(table.Row{
		"Date", "Close", "Volume", "Range", "Range SMA200",
		"Vol SMA20", "Vol SMA200", "Bear", "Bull", "Neutral", "Color", "Spike",
	})

	for _, row := range set.Tail(n) {
		t.AppendRow(table.Row{
			row.Date().Format("2006-01-02"),
			row.Close.StringFixed(2),
			row.Volume.String(),
			formatFloat(row.Range),
			formatNull(row.RangeAvg),
			formatNull(row.VolumeAvg20),
			formatNull(row.VolumeAvg200),
			formatFlag(row.Bearish),
			formatFlag(row.Bullish),
			formatFlag(row.NeutralRange),
			string(row.Color),
			formatFlag(row.VolumeSpike),
		})
	}

	if set.InsufficientHistory {
		t.AppendFooter(table.Row{"insufficient history"})
	}

	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNull(v null.Float) string {
	if !v.Valid {
		return undefinedCell
	}
	return formatFloat(v.Float64)
}

func formatFlag(v null.Bool) string {
	if !v.Valid {
		return undefinedCell
	}
	if v.Bool {
		return "yes"
	}
	return "no"
}
