// Package zonal computes area-weighted zonal means of raster values inside
// circular buffers around sampled points.
package zonal

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/spatial-sim/internal/raster"
)

// ErrIndexOutOfRange reports a supplied flat index outside the raster. The
// samplers never produce one; this guards hand-supplied index lists.
var ErrIndexOutOfRange = eris.New("zonal: index out of range")

// Result is the zonal statistic for one sampled point. Results are emitted in
// input order, one per index. Valid is false when the buffer intersects no
// valid cell (wholly outside the extent, or covering only NoData); Mean is
// meaningless in that case.
type Result struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Mean  float64 `json:"mean"`
	Valid bool    `json:"valid"`
}

// Extractor is the overlay engine contract: exact-overlap aggregation of a
// value raster inside a buffer of the given radius around each index.
type Extractor interface {
	Extract(values *raster.Grid, indices []int, radius float64) ([]Result, error)
}

// MeanExtractor computes buffer means by clipping the buffer polygon against
// every candidate cell and weighting cell values by the fractional
// intersection area. Cells partially covered contribute proportionally;
// NoData cells are excluded from both numerator and denominator.
type MeanExtractor struct {
	segments int
}

// NewMeanExtractor returns an extractor polygonizing buffers with the given
// segment count; values below 8 fall back to DefaultSegments.
func NewMeanExtractor(segments int) *MeanExtractor {
	if segments < 8 {
		segments = DefaultSegments
	}
	return &MeanExtractor{segments: segments}
}

// Extract implements Extractor.
func (e *MeanExtractor) Extract(values *raster.Grid, indices []int, radius float64) ([]Result, error) {
	if values == nil {
		return nil, eris.New("zonal: nil value raster")
	}
	if radius <= 0 {
		return nil, eris.Errorf("zonal: radius must be positive, got %g", radius)
	}

	log := zap.L().With(zap.String("component", "zonal"))

	out := make([]Result, len(indices))
	missing := 0
	for i, idx := range indices {
		if idx < 0 || idx >= values.Cells() {
			return nil, eris.Wrapf(ErrIndexOutOfRange, "zonal: index %d outside [0,%d)", idx, values.Cells())
		}
		x, y, err := values.CellCenter(idx)
		if err != nil {
			return nil, err
		}
		mean, ok := e.MeanAt(values, x, y, radius)
		out[i] = Result{Index: idx, X: x, Y: y, Mean: mean, Valid: ok}
		if !ok {
			missing++
		}
	}

	if missing > 0 {
		log.Debug("buffers with no valid coverage",
			zap.Int("missing", missing),
			zap.Int("total", len(indices)),
		)
	}
	return out, nil
}

// MeanAt returns the area-weighted mean of valid cells under a buffer
// centered at arbitrary native-unit coordinates (x, y), and whether any valid
// coverage was found. A buffer wholly outside the extent, or covering only
// NoData, reports no coverage.
func (e *MeanExtractor) MeanAt(g *raster.Grid, x, y, radius float64) (float64, bool) {
	poly := Buffer(x, y, radius, e.segments, g.SRID())
	ring := poly.LinearRing(0).Coords()
	// Drop the closing vertex; paths are implicitly closed in the overlay.
	buf := ringPolygonal(ring[:len(ring)-1])

	cs := g.CellSize()
	colMin := int(math.Floor((x - radius) / cs))
	colMax := int(math.Floor((x + radius) / cs))
	rowMin := int(math.Floor((y - radius) / cs))
	rowMax := int(math.Floor((y + radius) / cs))
	colMin = max(colMin, 0)
	rowMin = max(rowMin, 0)
	colMax = min(colMax, g.Width()-1)
	rowMax = min(rowMax, g.Height()-1)

	var sum, weight float64
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			if !g.IsValid(col, row) {
				continue
			}
			minX, minY, maxX, maxY := g.CellBounds(col, row)
			area := overlapArea(buf, minX, minY, maxX, maxY)
			if area <= 0 {
				continue
			}
			sum += area * g.At(col, row)
			weight += area
		}
	}
	if weight <= 0 {
		return 0, false
	}
	return sum / weight, true
}
