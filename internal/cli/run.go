package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/berkayda/hawkeye-public/internal"
	"github.com/berkayda/hawkeye-public/internal/scheduler"
	"github.com/berkayda/hawkeye-public/internal/storage/reports"
	"github.com/berkayda/hawkeye-public/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the ticker and report once a day at the configured UTC time",
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

			store := reports.NewStore()
			watcher, err := internal.NewWatcherFromConfig(cfg, store, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			daily := scheduler.Daily{Hour: cfg.RunHour, Minute: cfg.RunMinute}
			sched := scheduler.New(daily, logger,
				scheduler.WithRunOnStart(cfg.RunOnStart),
				scheduler.WithErrorHandler(watcher.ReportScheduleFailure),
			)

			logger.Info("hawkeye started",
				zap.String("version", Version),
				zap.String("ticker", cfg.Ticker),
				zap.String("provider", cfg.Provider),
				zap.Stringer("schedule", daily))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return sched.Run(ctx, func(ctx context.Context) error {
					_, err := watcher.RunCycle(ctx)
					return err
				})
			})

			if cfg.Dashboard.Enabled() {
				server := web.NewServer(cfg.Dashboard.Addr, store, logger)
				g.Go(func() error {
					if len(cfg.Dashboard.Domains) > 0 {
						return server.StartWithAutoTLS(ctx, cfg.Dashboard.Domains, cfg.Dashboard.CertCacheDir)
					}
					return server.Start(ctx)
				})
			}

			return g.Wait()
		},
	}

	addOverrideFlags(cmd, &opts.Overrides)
	return cmd
}
