package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Period relative history window such as "2y".
type Period struct {
	Years, Months, Days int
	// YearToDate starts the window on January 1st of the current year.
	YearToDate bool
	// Max requests everything the provider has.
	Max bool
}

// ParsePeriod accepts Nd, Nwk, Nmo, Ny, ytd and max, e.g. "5d", "3mo", "2y".
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return Period{}, errors.New("'period' is required when 'start' is not set")
	case "ytd":
		return Period{YearToDate: true}, nil
	case "max":
		return Period{Max: true}, nil
	}

	units := []struct {
		suffix string
		build  func(n int) Period
	}{
		{"wk", func(n int) Period { return Period{Days: 7 * n} }},
		{"mo", func(n int) Period { return Period{Months: n} }},
		{"d", func(n int) Period { return Period{Days: n} }},
		{"y", func(n int) Period { return Period{Years: n} }},
	}
	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(s, u.suffix))
		if err != nil || n <= 0 {
			return Period{}, errors.Errorf("incorrect 'period' param: %s", s)
		}
		return u.build(n), nil
	}

	return Period{}, errors.Errorf("incorrect 'period' param (use d, wk, mo, y, ytd or max): %s", s)
}

// Start returns the first date of the window ending at end.
// A zero time means unbounded.
func (p Period) Start(end time.Time) time.Time {
	switch {
	case p.Max:
		return time.Time{}
	case p.YearToDate:
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return end.AddDate(-p.Years, -p.Months, -p.Days)
	}
}

// HistoryWindow resolves the [start, end) window to fetch at now.
// Explicit Start and End win over Period; the default end is tomorrow's
// UTC midnight so that today's bar is included.
func (c Config) HistoryWindow(now time.Time) (start, end time.Time, err error) {
	u := now.UTC()
	today := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	end = c.End
	if end.IsZero() {
		end = today.AddDate(0, 0, 1)
	}

	if !c.Start.IsZero() {
		return c.Start, end, nil
	}

	period, err := ParsePeriod(c.Period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return period.Start(today), end, nil
}
