// Package field builds sampling probability fields from cover rasters.
//
// A field is the flattened cover raster raised to a sharpness exponent and
// renormalized to sum 1. Larger exponents concentrate probability mass on
// cells near 1.0; exponent 0 degenerates to the uniform field.
package field

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"

	"github.com/sells-group/spatial-sim/internal/raster"
)

// ErrInvalidProbabilityField is returned when the normalization denominator
// is zero or non-finite, i.e. no cell can ever be drawn.
var ErrInvalidProbabilityField = eris.New("field: invalid probability field: normalization denominator is zero or non-finite")

// Field is an immutable probability vector over the cells of a source raster.
// Entries are non-negative and sum to 1.
type Field struct {
	probs  []float64
	width  int
	height int
}

// Build derives a field from a cover raster: p[i] = cover[i]^k for valid
// cells, 0 for NoData, renormalized. Cover values must be non-negative
// (negative bases with fractional exponents have no real power).
func Build(g *raster.Grid, k float64) (*Field, error) {
	if g == nil {
		return nil, eris.New("field: nil raster")
	}
	if k < 0 {
		return nil, eris.Errorf("field: exponent must be non-negative, got %g", k)
	}

	flat := g.Flatten()
	probs := make([]float64, len(flat))
	for i, v := range flat {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			probs[i] = 0
			continue
		}
		if v < 0 {
			return nil, eris.Errorf("field: cover value %g at index %d is negative", v, i)
		}
		probs[i] = math.Pow(v, k)
	}

	sum := floats.Sum(probs)
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrInvalidProbabilityField
	}
	floats.Scale(1/sum, probs)

	return &Field{probs: probs, width: g.Width(), height: g.Height()}, nil
}

// Uniform builds a field assigning probability 1/cells to every cell of a
// width x height grid. This is the control case for random placement.
func Uniform(width, height int) (*Field, error) {
	n := width * height
	if width <= 0 || height <= 0 {
		return nil, eris.Errorf("field: invalid dimensions %dx%d", width, height)
	}
	probs := make([]float64, n)
	p := 1 / float64(n)
	for i := range probs {
		probs[i] = p
	}
	return &Field{probs: probs, width: width, height: height}, nil
}

// Len returns the number of cells the field covers.
func (f *Field) Len() int { return len(f.probs) }

// Width returns the source raster width.
func (f *Field) Width() int { return f.width }

// Height returns the source raster height.
func (f *Field) Height() int { return f.height }

// Prob returns the probability of cell i.
func (f *Field) Prob(i int) float64 { return f.probs[i] }

// Probs returns a copy of the probability vector.
func (f *Field) Probs() []float64 {
	out := make([]float64, len(f.probs))
	copy(out, f.probs)
	return out
}
