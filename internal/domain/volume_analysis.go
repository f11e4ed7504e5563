package domain

import "github.com/shopspring/decimal"

const (
	highVolumeThreshold     = 1.5
	veryHighVolumeThreshold = 2.0
)

// VolumeAnalysis volume metrics of the most recent feature row.
// This is a value object derived from a FeatureSet for display.
type VolumeAnalysis struct {
	Date string `json:"date"`
	// CurrentVolume is the volume of the most recent bar
	CurrentVolume decimal.Decimal `json:"current_volume"`
	// AverageVolume is the 20-period simple moving average of volume, zero while undefined
	AverageVolume decimal.Decimal `json:"average_volume"`
	// RelativeVolume is CurrentVolume / AverageVolume, zero while the average is undefined
	RelativeVolume decimal.Decimal `json:"relative_volume"`
	// SpikeRatio is CurrentVolume over the trailing 4-bar spike baseline
	SpikeRatio decimal.Decimal `json:"spike_ratio"`
	Color      ColorClass      `json:"color_class"`
}

// NewVolumeAnalysis summarizes the last row of set. ok is false for an empty set.
func NewVolumeAnalysis(set FeatureSet) (analysis VolumeAnalysis, ok bool) {
	if set.Len() == 0 {
		return VolumeAnalysis{}, false
	}
	last := set.Rows[set.Len()-1]

	analysis = VolumeAnalysis{
		Date:           last.Date().Format("2006-01-02"),
		CurrentVolume:  last.Volume,
		AverageVolume:  decimal.Zero,
		RelativeVolume: decimal.Zero,
		SpikeRatio:     decimal.Zero,
		Color:          last.Color,
	}

	if last.VolumeAvg20.Valid && last.VolumeAvg20.Float64 > 0 {
		avg := decimal.NewFromFloat(last.VolumeAvg20.Float64)
		analysis.AverageVolume = avg
		analysis.RelativeVolume = last.Volume.Div(avg)
	}
	if last.VolumeSpikeAvg.Valid && last.VolumeSpikeAvg.Float64 > 0 {
		analysis.SpikeRatio = last.Volume.Div(decimal.NewFromFloat(last.VolumeSpikeAvg.Float64))
	}

	return analysis, true
}

// IsHighVolume returns true if volume is notably elevated (>1.5x average).
func (v VolumeAnalysis) IsHighVolume() bool {
	return v.RelativeVolume.GreaterThan(decimal.NewFromFloat(highVolumeThreshold))
}

// IsVeryHighVolume returns true if volume is exceptionally high (>2x average).
func (v VolumeAnalysis) IsVeryHighVolume() bool {
	return v.RelativeVolume.GreaterThan(decimal.NewFromFloat(veryHighVolumeThreshold))
}

// IsLowVolume returns true if volume is below a defined average.
func (v VolumeAnalysis) IsLowVolume() bool {
	return v.AverageVolume.IsPositive() && v.RelativeVolume.LessThan(decimal.NewFromInt(1))
}

// Level returns a one-word description of the relative volume.
func (v VolumeAnalysis) Level() string {
	switch {
	case v.AverageVolume.IsZero():
		return "unknown"
	case v.IsVeryHighVolume():
		return "very high"
	case v.IsHighVolume():
		return "high"
	case v.IsLowVolume():
		return "low"
	default:
		return "normal"
	}
}
