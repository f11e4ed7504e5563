package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDataUnavailable bar source failed or returned an empty or malformed series.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientHistory series shorter than the largest rolling window.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrComputation arithmetic or logic failure inside the feature pipeline.
	ErrComputation = errors.New("computation error")
	// ErrDelivery reporting transport failure.
	ErrDelivery = errors.New("delivery error")
)

// Stage names, as reported to the operator.
const (
	StageDownload = "download_data"
	StageFeatures = "calculate_features"
	StageDetect   = "detect_spike_signals"
	StageChart    = "plot_and_save_fig"
	StageSchedule = "time_condition"
)

// kindError attaches a taxonomy sentinel to a cause while keeping both
// reachable through errors.Is.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.cause.Error())
}

func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }

// WithKind marks err with one of the taxonomy sentinels.
func WithKind(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &kindError{kind: kind, cause: err}
}

// StageError failure of one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError wraps err with the stage it happened in.
func NewStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the failing stage recorded in err, if any.
func StageOf(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
