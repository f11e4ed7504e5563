package domain

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Bar single OHLCV record for one trading period.
type Bar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    decimal.Decimal
}

// Date returns the UTC calendar date of the bar.
func (b Bar) Date() time.Time {
	return TruncateToDate(b.Timestamp)
}

// Validate checks price and volume sanity of a single bar.
func (b Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return errors.New("bar timestamp is zero")
	}
	prices := []struct {
		name  string
		value decimal.Decimal
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	}
	for _, p := range prices {
		if !p.value.IsPositive() {
			return errors.Errorf("bar %s price must be positive, got %s", p.name, p.value.String())
		}
	}
	if b.High.LessThan(b.Low) {
		return errors.Errorf("bar high %s is below low %s", b.High.String(), b.Low.String())
	}
	if b.Volume.IsNegative() {
		return errors.Errorf("bar volume must be non-negative, got %s", b.Volume.String())
	}
	return nil
}

// BarSeries ordered sequence of bars, oldest first.
type BarSeries []Bar

// Len returns the number of bars.
func (s BarSeries) Len() int { return len(s) }

// Sort orders bars by timestamp ascending.
func (s BarSeries) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Validate checks the series invariants: non-empty, strictly increasing
// timestamps and sane bars.
func (s BarSeries) Validate() error {
	if len(s) == 0 {
		return errors.New("bar series is empty")
	}
	for i, b := range s {
		if err := b.Validate(); err != nil {
			return errors.Wrapf(err, "invalid bar at index %d", i)
		}
		if i > 0 && !b.Timestamp.After(s[i-1].Timestamp) {
			return errors.Errorf("bar timestamps are not strictly increasing at index %d (%s after %s)",
				i, b.Timestamp.Format(time.RFC3339), s[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Last returns the most recent bar.
func (s BarSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// HistoryRequest describes which bars a source should return.
type HistoryRequest struct {
	// Ticker instrument symbol as understood by the provider.
	Ticker string
	// Interval bar size, e.g. "1d".
	Interval string
	// Start inclusive lower bound; zero means as far back as the provider allows.
	Start time.Time
	// End exclusive upper bound.
	End time.Time
}

// TruncateToDate drops the time of day in UTC.
func TruncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
