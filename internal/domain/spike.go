package domain

import (
	"time"

	"github.com/guregu/null/v6"
)

// SpikeVerdict outcome of the spike detector for one cycle.
type SpikeVerdict struct {
	// HasFreshSpike is true when the most recent spike is dated today or yesterday (UTC).
	HasFreshSpike bool `json:"has_fresh_spike"`
	// SpikeDate UTC calendar date of the most recent spike, null when none.
	SpikeDate null.Time `json:"spike_date"`
	// SpikeTimestamp timestamp of the most recent spike bar, null when none.
	SpikeTimestamp null.Time `json:"spike_timestamp"`
	// CheckedAt clock reading the freshness was evaluated against.
	CheckedAt time.Time `json:"checked_at"`
}

// HasSpike reports whether any spike was found, fresh or stale.
func (v SpikeVerdict) HasSpike() bool {
	return v.SpikeTimestamp.Valid
}

// NoSpike verdict without an active spike.
func NoSpike(checkedAt time.Time) SpikeVerdict {
	return SpikeVerdict{CheckedAt: checkedAt}
}
