package domain

import (
	"github.com/guregu/null/v6"
)

// Fixed feature engine constants.
const (
	// RangeWindow is the longest rolling window; a series shorter than this
	// has no defined classification.
	RangeWindow = 200
	// ShortVolumeWindow is the window of the short volume average ("durchschnitt").
	ShortVolumeWindow = 20
	// BandDivisor scales the prior bar's range into the band offset.
	BandDivisor = 3.6
	// SpikeWindow is the trailing window of the spike baseline average.
	SpikeWindow = 4
	// SpikeMultiplier is how far volume must exceed its baseline to count as a spike.
	SpikeMultiplier = 1.5
	// ContractionDivisor marks a range as contracted when below rangeAvg/ContractionDivisor.
	ContractionDivisor = 1.5
	// VolumeCeilingMultiplier bounds "moderately elevated" volume in the neutral regime.
	VolumeCeilingMultiplier = 1.5
)

// ColorClass volume bar regime.
type ColorClass string

const (
	// ColorUndefined is assigned while the classification flags are not yet available.
	ColorUndefined    ColorClass = "undefined"
	ColorNeutralGray  ColorClass = "neutral-gray"
	ColorBullishGreen ColorClass = "bullish-green"
	ColorBearishRed   ColorClass = "bearish-red"
	ColorDefaultBlue  ColorClass = "default-blue"
)

// Hex returns the chart color for the class. Undefined renders as default blue.
func (c ColorClass) Hex() string {
	switch c {
	case ColorNeutralGray:
		return "#696b70"
	case ColorBullishGreen:
		return "#026b07"
	case ColorBearishRed:
		return "#d81515"
	default:
		return "#0000FF"
	}
}

// IsDefined reports whether the class was derived from defined flags.
func (c ColorClass) IsDefined() bool {
	return c != ColorUndefined && c != ""
}

// FeatureRow one bar plus everything derived from it and its trailing window.
// Optional values are invalid (undefined) until their window has warmed up.
type FeatureRow struct {
	Bar

	Range    float64
	Midpoint float64

	RangeAvg       null.Float
	VolumeAvg20    null.Float
	VolumeAvg200   null.Float
	VolumeSpikeAvg null.Float

	PrevHigh  null.Float
	PrevLow   null.Float
	UpperBand null.Float
	LowerBand null.Float

	Bearish      null.Bool
	Bullish      null.Bool
	NeutralRange null.Bool
	VolumeSpike  null.Bool

	Color ColorClass
}

// IsSpike reports a defined, positive spike flag.
func (r FeatureRow) IsSpike() bool {
	return r.VolumeSpike.Valid && r.VolumeSpike.Bool
}

// IsClassified reports whether all classification flags are defined.
func (r FeatureRow) IsClassified() bool {
	return r.Bearish.Valid && r.Bullish.Valid && r.NeutralRange.Valid
}

// FeatureSet feature rows for a whole series.
type FeatureSet struct {
	Rows []FeatureRow
	// InsufficientHistory is set when the series is shorter than RangeWindow.
	InsufficientHistory bool
}

// Len returns the number of rows.
func (s FeatureSet) Len() int { return len(s.Rows) }

// Spikes returns the rows flagged as volume spikes, oldest first.
func (s FeatureSet) Spikes() []FeatureRow {
	var out []FeatureRow
	for _, r := range s.Rows {
		if r.IsSpike() {
			out = append(out, r)
		}
	}
	return out
}

// Tail returns at most n most recent rows.
func (s FeatureSet) Tail(n int) []FeatureRow {
	if n <= 0 || n >= len(s.Rows) {
		return s.Rows
	}
	return s.Rows[len(s.Rows)-n:]
}
