package engine

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// ============================================================================
// RANGES: Axis padding and bubble size reference
// ============================================================================

// Default axis padding. Linear axes are padded multiplicatively around the
// data bounds; log axes are padded in log10 units.
const (
	linearLowPad  = 0.7
	linearHighPad = 1.4
	logLowPad     = 0.97
	logHighPad    = 1.04
)

// bubbleDiameter is the reference marker diameter in pixels at scale 1.
const bubbleDiameter = 80

// SizeRef is the plotly sizeref for area-sized markers: the largest value
// maps to a bubble of area (scale*80)^2/2 square pixels.
func SizeRef(maxSize, scale float64) float64 {
	return 2 * maxSize / (scale * bubbleDiameter * bubbleDiameter)
}

// bounds returns the min and max of a numeric column, ignoring NaN cells.
// With positive set, cells <= 0 are ignored too; a log axis cannot show them.
func bounds(ds *Dataset, column string, positive bool) (float64, float64, error) {
	all, err := ds.Floats(column)
	if err != nil {
		return 0, 0, err
	}
	xs := all[:0:0]
	for _, x := range all {
		if math.IsNaN(x) || (positive && x <= 0) {
			continue
		}
		xs = append(xs, x)
	}
	if len(xs) == 0 {
		if positive && len(all) > 0 {
			return 0, 0, errors.Wrapf(ErrNoPositiveValues, "column %q", column)
		}
		return 0, 0, errors.Wrapf(ErrEmptyDataset, "column %q", column)
	}
	lo, hi := stats.Bounds(xs)
	return lo, hi, nil
}

// axisRange derives a padded default range for column.
func axisRange(ds *Dataset, column string, logscale bool) ([]float64, error) {
	lo, hi, err := bounds(ds, column, logscale)
	if err != nil {
		return nil, err
	}
	if logscale {
		return []float64{math.Log10(lo) * logLowPad, math.Log10(hi) * logHighPad}, nil
	}
	return []float64{lo * linearLowPad, hi * linearHighPad}, nil
}

// sizeRef computes SizeRef from the maximum of the size column.
func sizeRef(ds *Dataset, column string, scale float64) (float64, error) {
	_, hi, err := bounds(ds, column, false)
	if err != nil {
		return 0, err
	}
	return SizeRef(hi, scale), nil
}
