package report

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

const (
	defaultSnapshotTimeout = 45 * time.Second
	defaultRenderDelay     = 2 * time.Second
	snapshotQuality        = 90
)

// Snapshotter captures a JPEG image of a rendered chart page with headless Chrome.
type Snapshotter struct {
	execPath    string
	timeout     time.Duration
	renderDelay time.Duration
	width       int64
	height      int64
}

// SnapshotOption configures a Snapshotter.
type SnapshotOption func(*Snapshotter)

// WithExecPath points chromedp at a specific Chrome or Chromium binary.
func WithExecPath(path string) SnapshotOption {
	return func(s *Snapshotter) {
		s.execPath = path
	}
}

// WithSnapshotTimeout bounds one capture, browser start included.
func WithSnapshotTimeout(d time.Duration) SnapshotOption {
	return func(s *Snapshotter) {
		s.timeout = d
	}
}

// NewSnapshotter creates a snapshotter sized for the default chart canvas.
func NewSnapshotter(opts ...SnapshotOption) *Snapshotter {
	s := &Snapshotter{
		timeout:     defaultSnapshotTimeout,
		renderDelay: defaultRenderDelay,
		width:       1440,
		height:      760,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture loads html in a fresh headless browser and returns a JPEG screenshot.
func (s *Snapshotter) Capture(ctx context.Context, html []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "hawkeye-chart-")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create snapshot dir")
	}
	defer os.RemoveAll(dir)

	page := filepath.Join(dir, "chart.html")
	if err := os.WriteFile(page, html, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write chart page")
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(int(s.width), int(s.height)),
	)
	if s.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.execPath))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var image []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(s.width, s.height),
		chromedp.Navigate("file://"+page),
		chromedp.WaitReady("body"),
		chromedp.Sleep(s.renderDelay),
		chromedp.FullScreenshot(&image, snapshotQuality),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture chart snapshot")
	}

	return image, nil
}
