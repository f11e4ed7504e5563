package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/berkayda/hawkeye-public/internal/clients"
	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/berkayda/hawkeye-public/internal/services/detector"
	"github.com/berkayda/hawkeye-public/internal/services/report"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BarCollector fetches a validated bar series.
type BarCollector interface {
	Collect(ctx context.Context, req domain.HistoryRequest) (domain.BarSeries, error)
}

// FeatureEngine derives feature rows from a bar series.
type FeatureEngine interface {
	Compute(series domain.BarSeries) (domain.FeatureSet, error)
}

// ChartRenderer renders the chart page for a feature set.
type ChartRenderer interface {
	Render(ticker string, set domain.FeatureSet) ([]byte, error)
}

// ChartSnapshotter turns a chart page into an image.
type ChartSnapshotter interface {
	Capture(ctx context.Context, html []byte) ([]byte, error)
}

// ReportPublisher receives every finished report.
type ReportPublisher interface {
	Publish(r *domain.Report)
}

// WatcherDeps collaborators of a Watcher. Snapshotter and Publisher are optional.
type WatcherDeps struct {
	Collector   BarCollector
	Engine      FeatureEngine
	Detector    detector.Detector
	Chart       ChartRenderer
	Snapshotter ChartSnapshotter
	Notifier    clients.Notifier
	Publisher   ReportPublisher
}

// Watcher runs the fetch, compute, detect and report cycle for one ticker.
type Watcher struct {
	cfg    config.Config
	deps   WatcherDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewWatcher creates a watcher for cfg.Ticker.
func NewWatcher(cfg config.Config, deps WatcherDeps, logger *zap.Logger) (*Watcher, error) {
	switch {
	case deps.Collector == nil:
		return nil, errors.New("watcher requires a bar collector")
	case deps.Engine == nil:
		return nil, errors.New("watcher requires a feature engine")
	case deps.Detector == nil:
		return nil, errors.New("watcher requires a spike detector")
	case deps.Chart == nil:
		return nil, errors.New("watcher requires a chart renderer")
	case deps.Notifier == nil:
		return nil, errors.New("watcher requires a notifier")
	}

	return &Watcher{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With(zap.String("ticker", cfg.Ticker)),
		now:    time.Now,
	}, nil
}

// RunCycle runs one reporting cycle. The returned report is never nil; on a
// failed stage it carries everything computed before the failure and the
// error is a *domain.StageError.
func (w *Watcher) RunCycle(ctx context.Context) (*domain.Report, error) {
	rep := &domain.Report{
		ID:        uuid.New(),
		Ticker:    w.cfg.Ticker,
		Period:    w.periodLabel(),
		StartedAt: w.now().UTC(),
	}
	logger := w.logger.With(zap.String("cycle_id", rep.ID.String()))
	logger.Info("cycle started", zap.String("period", rep.Period))

	err := w.runStages(ctx, rep, logger)
	rep.CompletedAt = w.now().UTC()

	if err != nil {
		w.handleFailure(ctx, rep, err, logger)
	} else {
		logger.Info("cycle completed",
			zap.Bool("fresh_spike", rep.Verdict.HasFreshSpike),
			zap.Duration("took", rep.CompletedAt.Sub(rep.StartedAt)))
	}

	if w.deps.Publisher != nil {
		w.deps.Publisher.Publish(rep)
	}
	return rep, err
}

func (w *Watcher) runStages(ctx context.Context, rep *domain.Report, logger *zap.Logger) error {
	start, end, err := w.cfg.HistoryWindow(rep.StartedAt)
	if err != nil {
		return domain.NewStageError(domain.StageDownload, domain.WithKind(domain.ErrDataUnavailable, err))
	}

	series, err := w.deps.Collector.Collect(ctx, domain.HistoryRequest{
		Ticker:   w.cfg.Ticker,
		Interval: w.cfg.Interval,
		Start:    start,
		End:      end,
	})
	if err != nil {
		return domain.NewStageError(domain.StageDownload, domain.WithKind(domain.ErrDataUnavailable, err))
	}

	features, err := w.computeFeatures(series)
	if err != nil {
		return domain.NewStageError(domain.StageFeatures, domain.WithKind(domain.ErrComputation, err))
	}
	rep.Features = features

	if features.InsufficientHistory {
		logger.Warn("classification unavailable",
			zap.Error(domain.ErrInsufficientHistory),
			zap.Int("bars", features.Len()),
			zap.Int("required", domain.RangeWindow))
	}

	verdict, err := w.detect(features)
	if err != nil {
		return domain.NewStageError(domain.StageDetect, domain.WithKind(domain.ErrComputation, err))
	}
	rep.Verdict = verdict

	if verdict.HasFreshSpike {
		logger.Info("fresh volume spike", zap.Time("spike_date", verdict.SpikeDate.Time))
		w.deliver(ctx, logger, "spike alert", func(ctx context.Context) error {
			return w.deps.Notifier.SendText(ctx, w.cfg.Telegram.ChatID, report.SpikeAlert(rep.Ticker, rep.Period, verdict))
		})
	} else if verdict.HasSpike() {
		logger.Info("stale volume spike suppressed", zap.Time("spike_date", verdict.SpikeDate.Time))
	}

	if err := w.chart(ctx, rep, logger); err != nil {
		return domain.NewStageError(domain.StageChart, domain.WithKind(domain.ErrComputation, err))
	}

	return nil
}

func (w *Watcher) computeFeatures(series domain.BarSeries) (set domain.FeatureSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("feature engine panic: %v", r)
		}
	}()
	return w.deps.Engine.Compute(series)
}

func (w *Watcher) detect(features domain.FeatureSet) (verdict domain.SpikeVerdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("spike detector panic: %v", r)
		}
	}()
	return w.deps.Detector.Detect(features), nil
}

// chart renders the chart page and sends it as an image, or as the HTML page
// itself when no snapshot could be taken.
func (w *Watcher) chart(ctx context.Context, rep *domain.Report, logger *zap.Logger) error {
	html, err := w.deps.Chart.Render(rep.Ticker, rep.Features)
	if err != nil {
		return errors.Wrap(err, "failed to render chart")
	}
	rep.ChartHTML = html

	base := strings.ToLower(strings.NewReplacer("/", "_", " ", "_").Replace(rep.Ticker))

	if w.deps.Snapshotter != nil {
		image, err := w.deps.Snapshotter.Capture(ctx, html)
		if err == nil {
			rep.ChartImage = image
			w.deliver(ctx, logger, "chart image", func(ctx context.Context) error {
				return w.deps.Notifier.SendImage(ctx, w.cfg.Telegram.ChatID, base+"_chart.jpg", image)
			})
			return nil
		}
		logger.Warn("chart snapshot unavailable, sending html", zap.Error(err))
	}

	w.deliver(ctx, logger, "chart page", func(ctx context.Context) error {
		return w.deps.Notifier.SendDocument(ctx, w.cfg.Telegram.ChatID, base+"_chart.html", html)
	})
	return nil
}

func (w *Watcher) handleFailure(ctx context.Context, rep *domain.Report, err error, logger *zap.Logger) {
	stage, ok := domain.StageOf(err)
	if !ok {
		stage = domain.StageSchedule
	}
	rep.FailedStage = stage
	rep.Err = err.Error()

	logger.Error("cycle stage failed", zap.String("stage", stage), zap.Error(err))

	cause := err
	var se *domain.StageError
	if errors.As(err, &se) {
		cause = se.Err
	}
	w.deliver(ctx, logger, "stage failure", func(ctx context.Context) error {
		return w.deps.Notifier.SendText(ctx, w.cfg.Telegram.ChatID, report.StageFailure(stage, cause))
	})
}

// ReportScheduleFailure notifies about a failure that happened outside any
// cycle stage, e.g. a panic in the scheduled job. Stage failures are skipped
// since RunCycle already reported them.
func (w *Watcher) ReportScheduleFailure(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if _, ok := domain.StageOf(err); ok {
		return
	}

	w.deliver(ctx, w.logger, "schedule failure", func(ctx context.Context) error {
		return w.deps.Notifier.SendText(ctx, w.cfg.Telegram.ChatID, report.StageFailure(domain.StageSchedule, err))
	})
}

// deliver runs send and swallows delivery failures.
func (w *Watcher) deliver(ctx context.Context, logger *zap.Logger, what string, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		logger.Warn("notification failed", zap.String("notification", what), zap.Error(err))
	}
}

func (w *Watcher) periodLabel() string {
	if w.cfg.Start.IsZero() {
		return w.cfg.Period
	}
	end := "today"
	if !w.cfg.End.IsZero() {
		end = w.cfg.End.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s..%s", w.cfg.Start.Format(time.DateOnly), end)
}
