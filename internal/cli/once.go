package cli

import (
	"fmt"
	"os"

	"github.com/berkayda/hawkeye-public/internal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newOnceCmd(opts *rootOptions) *cobra.Command {
	var chartPath string

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single reporting cycle now and exit",
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

			watcher, err := internal.NewWatcherFromConfig(cfg, nil, logger)
			if err != nil {
				return err
			}

			rep, cycleErr := watcher.RunCycle(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cycle %s for %s (%s)\n", rep.ID, rep.Ticker, rep.Period)
			switch {
			case rep.Verdict.HasFreshSpike:
				fmt.Fprintf(out, "fresh volume spike on %s\n", rep.Verdict.SpikeDate.Time.Format("2006-01-02"))
			case rep.Verdict.HasSpike():
				fmt.Fprintf(out, "last volume spike on %s is stale\n", rep.Verdict.SpikeDate.Time.Format("2006-01-02"))
			case rep.HasFeatures():
				fmt.Fprintln(out, "no volume spike")
			}

			if chartPath != "" && len(rep.ChartHTML) > 0 {
				if err := os.WriteFile(chartPath, rep.ChartHTML, 0o644); err != nil {
					return errors.Wrapf(err, "failed to write chart %s", chartPath)
				}
				fmt.Fprintf(out, "chart written to %s\n", chartPath)
			}

			return cycleErr
		},
	}

	addOverrideFlags(cmd, &opts.Overrides)
	cmd.Flags().StringVar(&chartPath, "chart", "", "Also write the chart HTML to this path")
	return cmd
}
