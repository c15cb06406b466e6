// Package metrics reduces intensity grids to flux and power scalars, and
// scores how alike two such scalars are.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/lightflux/pkg/emath"
)

var (
	ErrShapeMismatch = errors.New("grids have different shapes")
	ErrZeroScalars   = errors.New("both scalars are zero")
)

// CalculateFlux returns the sum of the elementwise product of the two
// grids.
func CalculateFlux(intensity, quantity emath.FloatGrid) (float64, error) {
	if !intensity.SameShape(quantity) {
		return 0, fmt.Errorf("flux of %dx%d and %dx%d: %w", intensity.Dx(), intensity.Dy(),
			quantity.Dx(), quantity.Dy(), ErrShapeMismatch)
	}
	return floats.Dot(intensity.Values(), quantity.Values()), nil
}

// CalculatePower returns the sum of squares of the grid. It is the same
// reduction as CalculateFlux(g, g), so the two agree exactly.
func CalculatePower(intensity emath.FloatGrid) float64 {
	v := intensity.Values()
	return floats.Dot(v, v)
}

// Similarity scores two scalars as 1 - |a-b|/max(a,b). Equal, non-zero
// inputs score 1, and the score is symmetric. Inputs are expected to be
// non-negative; a negative max still gives a number, just not a
// meaningful one.
func Similarity(a, b float64) (float64, error) {
	if a == 0 && b == 0 {
		return 0, ErrZeroScalars
	}
	return 1 - math.Abs(a-b)/math.Max(a, b), nil
}
