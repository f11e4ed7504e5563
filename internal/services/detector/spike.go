package detector

import (
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/guregu/null/v6"
)

// SpikeDetector finds the most recent volume spike and decides whether it is
// fresh, i.e. dated today or yesterday in UTC.
type SpikeDetector struct {
	now func() time.Time
}

// Option configures a SpikeDetector.
type Option func(*SpikeDetector)

// WithClock overrides the wall clock used for the freshness check.
func WithClock(now func() time.Time) Option {
	return func(d *SpikeDetector) {
		d.now = now
	}
}

// NewSpikeDetector creates a detector using time.Now unless overridden.
func NewSpikeDetector(opts ...Option) *SpikeDetector {
	d := &SpikeDetector{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect reports the most recent spike row and its freshness.
// A set with insufficient history never has an active spike.
func (d *SpikeDetector) Detect(features domain.FeatureSet) domain.SpikeVerdict {
	checkedAt := d.now().UTC()
	if features.InsufficientHistory {
		return domain.NoSpike(checkedAt)
	}

	var (
		latest domain.FeatureRow
		found  bool
	)
	for _, row := range features.Rows {
		if !row.IsSpike() {
			continue
		}
		// ties on the latest timestamp resolve to the last row seen
		if !found || !row.Timestamp.Before(latest.Timestamp) {
			latest = row
			found = true
		}
	}
	if !found {
		return domain.NoSpike(checkedAt)
	}

	spikeDate := latest.Date()
	today := domain.TruncateToDate(checkedAt)
	yesterday := today.AddDate(0, 0, -1)

	return domain.SpikeVerdict{
		HasFreshSpike:  spikeDate.Equal(today) || spikeDate.Equal(yesterday),
		SpikeDate:      null.TimeFrom(spikeDate),
		SpikeTimestamp: null.TimeFrom(latest.Timestamp),
		CheckedAt:      checkedAt,
	}
}
