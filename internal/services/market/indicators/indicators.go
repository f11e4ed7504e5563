// Package indicators provides rolling technical indicators over bar series.
// Moving averages are computed with the cinar/indicator library and
// re-aligned to the input so that every input point has exactly one output
// value, undefined while the window is still warming up.
package indicators

import (
	"fmt"
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// SMA calculates the simple moving average of values over period.
// The result has the same length as values; the first period-1 entries are
// undefined. A series shorter than period yields an all-undefined result.
// Each output depends only on its own trailing window.
func SMA(values []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}

	result := make([]null.Float, len(values))
	for i := period - 1; i < len(values); i++ {
		v, err := windowMean(values[i-period+1:i+1], period)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("SMA(%d) produced non-finite value at index %d", period, i)
		}
		result[i] = null.FloatFrom(v)
	}

	return result, nil
}

// windowMean averages exactly one window. The library keeps a running sum
// across its input, so every window gets a fresh pipeline.
func windowMean(window []float64, period int) (float64, error) {
	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(window)))
	if len(out) != 1 {
		return 0, fmt.Errorf("unexpected SMA(%d) output length %d for one window", period, len(out))
	}
	return out[0], nil
}

// Shift returns values delayed by n positions; the first n entries are undefined.
func Shift(values []float64, n int) []null.Float {
	result := make([]null.Float, len(values))
	for i := n; i < len(values); i++ {
		result[i] = null.FloatFrom(values[i-n])
	}
	return result
}

// DecimalsToFloat64 converts a slice of decimal.Decimal to []float64.
func DecimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}
