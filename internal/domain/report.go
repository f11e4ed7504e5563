package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report outcome of one reporting cycle.
type Report struct {
	ID     uuid.UUID
	Ticker string
	Period string

	Features FeatureSet
	Verdict  SpikeVerdict

	// ChartHTML rendered chart page, empty when charting failed.
	ChartHTML []byte
	// ChartImage JPEG snapshot of the chart, empty when no browser was available.
	ChartImage []byte

	StartedAt   time.Time
	CompletedAt time.Time

	// FailedStage stage tag of the failure, empty on success.
	FailedStage string
	// Err failure message, empty on success.
	Err string
}

// Failed reports whether any stage of the cycle failed.
func (r *Report) Failed() bool {
	return r.FailedStage != ""
}

// HasFeatures reports whether the cycle got as far as computing features.
func (r *Report) HasFeatures() bool {
	return r.Features.Len() > 0
}
