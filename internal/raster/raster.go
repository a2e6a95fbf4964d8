// Package raster provides an in-memory dense grid with NoData handling and
// the index/coordinate conventions used by the sampling pipeline.
package raster

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/mat"
)

// DefaultSRID is the spatial reference assigned to synthetic grids. The
// simulated rasters live in an arbitrary planar coordinate system, so this is
// a tag carried through to exports, not a real projection.
const DefaultSRID = 0

// Grid is a dense 2D raster of float64 cells. Flattened indices are
// row-major: idx = row*width + col. Cell (0,0) has its lower-left corner at
// the origin and coordinates grow with column (x) and row (y).
//
// Invalid cells are represented as NaN and are excluded from aggregates.
type Grid struct {
	width    int
	height   int
	cellSize float64
	srid     int
	values   *mat.Dense
}

// New allocates a grid of the given dimensions with every cell set to zero.
func New(width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, eris.Errorf("raster: invalid dimensions %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, eris.Errorf("raster: cell size must be positive, got %g", cellSize)
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		srid:     DefaultSRID,
		values:   mat.NewDense(height, width, nil),
	}, nil
}

// NewFromValues builds a grid from a row-major flat slice of length
// width*height. The slice is copied.
func NewFromValues(width, height int, cellSize float64, values []float64) (*Grid, error) {
	g, err := New(width, height, cellSize)
	if err != nil {
		return nil, err
	}
	if len(values) != width*height {
		return nil, eris.Errorf("raster: expected %d values, got %d", width*height, len(values))
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			g.values.Set(r, c, values[r*width+c])
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the edge length of a cell in native units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// SRID returns the spatial reference identifier.
func (g *Grid) SRID() int { return g.srid }

// Cells returns the total cell count.
func (g *Grid) Cells() int { return g.width * g.height }

// At returns the value at (col, row).
func (g *Grid) At(col, row int) float64 { return g.values.At(row, col) }

// Set writes the value at (col, row).
func (g *Grid) Set(col, row int, v float64) { g.values.Set(row, col, v) }

// SetNoData marks the cell at (col, row) invalid.
func (g *Grid) SetNoData(col, row int) { g.values.Set(row, col, math.NaN()) }

// IsValid reports whether the cell at (col, row) holds a usable value.
func (g *Grid) IsValid(col, row int) bool {
	v := g.values.At(row, col)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Index converts (col, row) to a row-major flat index.
func (g *Grid) Index(col, row int) (int, error) {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return 0, eris.Errorf("raster: cell (%d,%d) outside %dx%d grid", col, row, g.width, g.height)
	}
	return row*g.width + col, nil
}

// Cell converts a flat index back to (col, row).
func (g *Grid) Cell(idx int) (col, row int, err error) {
	if idx < 0 || idx >= g.Cells() {
		return 0, 0, eris.Errorf("raster: index %d outside [0,%d)", idx, g.Cells())
	}
	return idx % g.width, idx / g.width, nil
}

// CellCenter returns the native-unit coordinates of the center of the cell at
// the given flat index.
func (g *Grid) CellCenter(idx int) (x, y float64, err error) {
	col, row, err := g.Cell(idx)
	if err != nil {
		return 0, 0, err
	}
	return (float64(col) + 0.5) * g.cellSize, (float64(row) + 0.5) * g.cellSize, nil
}

// CellBounds returns the native-unit bounding box of the cell at (col, row).
func (g *Grid) CellBounds(col, row int) (minX, minY, maxX, maxY float64) {
	minX = float64(col) * g.cellSize
	minY = float64(row) * g.cellSize
	return minX, minY, minX + g.cellSize, minY + g.cellSize
}

// Extent returns the native-unit bounding box of the whole grid.
func (g *Grid) Extent() (minX, minY, maxX, maxY float64) {
	return 0, 0, float64(g.width) * g.cellSize, float64(g.height) * g.cellSize
}

// Flatten returns a copy of the grid values as a row-major flat slice.
func (g *Grid) Flatten() []float64 {
	out := make([]float64, g.Cells())
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			out[r*g.width+c] = g.values.At(r, c)
		}
	}
	return out
}

// Map returns a new grid with f applied to every valid cell. NoData cells
// stay NoData; f never sees them.
func (g *Grid) Map(f func(float64) float64) *Grid {
	out := g.clone()
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			v := g.values.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			out.values.Set(r, c, f(v))
		}
	}
	return out
}

// Normalize returns a new grid with all valid cells rescaled to [0, 1].
// A grid whose valid cells share a single value cannot be rescaled.
func (g *Grid) Normalize() (*Grid, error) {
	min, max := math.Inf(1), math.Inf(-1)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			v := g.values.At(r, c)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return nil, eris.New("raster: normalize: no valid cells")
	}
	if min == max {
		return nil, eris.Errorf("raster: normalize: degenerate value range [%g,%g]", min, max)
	}
	span := max - min
	return g.Map(func(v float64) float64 { return (v - min) / span }), nil
}

func (g *Grid) clone() *Grid {
	out := &Grid{
		width:    g.width,
		height:   g.height,
		cellSize: g.cellSize,
		srid:     g.srid,
		values:   mat.NewDense(g.height, g.width, nil),
	}
	out.values.Copy(g.values)
	return out
}
