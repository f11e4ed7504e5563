package cli

import (
	"fmt"

	"github.com/berkayda/hawkeye-public/internal"
	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/internal/services/detector"
	"github.com/berkayda/hawkeye-public/internal/services/market/analysis"
	"github.com/berkayda/hawkeye-public/internal/services/market/collector"
	"github.com/berkayda/hawkeye-public/internal/services/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFeaturesCmd(opts *rootOptions) *cobra.Command {
	var (
		rows     int
		saveBars string
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the latest feature rows and the spike verdict without notifying",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			coll, err := internal.NewCollector(cfg, logger)
			if err != nil {
				return err
			}

			start, end, err := cfg.HistoryWindow(nowFunc())
			if err != nil {
				return err
			}
			series, err := coll.Collect(cmd.Context(), domain.HistoryRequest{
				Ticker:   cfg.Ticker,
				Interval: cfg.Interval,
				Start:    start,
				End:      end,
			})
			if err != nil {
				return err
			}

			if saveBars != "" {
				if err := collector.WriteBars(saveBars, series); err != nil {
					return err
				}
				logger.Info("bars saved", zap.String("path", saveBars), zap.Int("bars", series.Len()))
			}

			set, err := analysis.NewFeatureEngine(logger).Compute(series)
			if err != nil {
				return err
			}
			verdict := detector.NewSpikeDetector(detector.WithClock(nowFunc)).Detect(set)

			out := cmd.OutOrStdout()
			report.WriteFeatureTable(out, cfg.Ticker, set, rows)
			if volume, ok := domain.NewVolumeAnalysis(set); ok {
				fmt.Fprintf(out, "volume on %s: %s (%s x SMA20, %s x spike baseline)\n",
					volume.Date, volume.Level(),
					volume.RelativeVolume.StringFixed(2), volume.SpikeRatio.StringFixed(2))
			}
			fmt.Fprintln(out, verdictLine(verdict))
			return nil
		},
	}

	addOverrideFlags(cmd, &opts.Overrides)
	cmd.Flags().IntVar(&rows, "rows", 20, "Number of most recent rows to print, 0 for all")
	cmd.Flags().StringVar(&saveBars, "save-bars", "", "Also save the fetched bars to this .csv or .parquet file")
	return cmd
}

func verdictLine(v domain.SpikeVerdict) string {
	switch {
	case v.HasFreshSpike:
		return fmt.Sprintf("verdict: fresh spike on %s", v.SpikeDate.Time.Format("2006-01-02"))
	case v.HasSpike():
		return fmt.Sprintf("verdict: stale spike on %s", v.SpikeDate.Time.Format("2006-01-02"))
	default:
		return "verdict: no active spike"
	}
}
