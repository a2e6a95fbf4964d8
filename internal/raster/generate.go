package raster

import (
	"math"

	"github.com/rotisserie/eris"
)

// NoiseSource supplies the random variates used by the synthetic generators.
// *math/rand/v2.Rand satisfies it.
type NoiseSource interface {
	Float64() float64
	NormFloat64() float64
}

// GenerateElevation builds a synthetic elevation surface: a SW-to-NE ramp up
// to relief native units, perturbed by smoothed noise so the surface has
// local structure rather than a flat gradient.
func GenerateElevation(width, height int, cellSize, relief float64, src NoiseSource) (*Grid, error) {
	if src == nil {
		return nil, eris.New("raster: elevation generator needs a noise source")
	}
	if relief <= 0 {
		return nil, eris.Errorf("raster: relief must be positive, got %g", relief)
	}
	g, err := New(width, height, cellSize)
	if err != nil {
		return nil, err
	}

	noise, err := noiseField(width, height, cellSize, 3, src)
	if err != nil {
		return nil, err
	}

	span := float64(width + height - 2)
	if span == 0 {
		span = 1
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			ramp := float64(c+r) / span
			g.Set(c, r, relief*ramp+0.3*relief*noise.At(c, r))
		}
	}
	return g, nil
}

// GeneratePrecipitation derives a precipitation surface from elevation via a
// linear response plus Gaussian noise: p = intercept + slope*elev + N(0, sd).
// Negative totals are clamped to zero; NoData elevation stays NoData.
func GeneratePrecipitation(elev *Grid, slope, intercept, noiseSD float64, src NoiseSource) (*Grid, error) {
	if elev == nil {
		return nil, eris.New("raster: precipitation generator needs an elevation grid")
	}
	if src == nil {
		return nil, eris.New("raster: precipitation generator needs a noise source")
	}
	if noiseSD < 0 {
		return nil, eris.Errorf("raster: noise sd must be non-negative, got %g", noiseSD)
	}
	return elev.Map(func(v float64) float64 {
		p := intercept + slope*v + noiseSD*src.NormFloat64()
		return math.Max(p, 0)
	}), nil
}

// GenerateCover builds a clumped cover surface in [0, 1]: uniform noise run
// through repeated box smoothing, then rescaled. More passes give larger,
// smoother patches.
func GenerateCover(width, height int, cellSize float64, passes int, src NoiseSource) (*Grid, error) {
	if src == nil {
		return nil, eris.New("raster: cover generator needs a noise source")
	}
	if passes < 1 {
		return nil, eris.Errorf("raster: smoothing passes must be at least 1, got %d", passes)
	}
	g, err := noiseField(width, height, cellSize, passes, src)
	if err != nil {
		return nil, err
	}
	return g.Normalize()
}

// noiseField fills a grid with uniform noise and applies the given number of
// 3x3 box smoothing passes.
func noiseField(width, height int, cellSize float64, passes int, src NoiseSource) (*Grid, error) {
	g, err := New(width, height, cellSize)
	if err != nil {
		return nil, err
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			g.Set(c, r, src.Float64())
		}
	}
	for i := 0; i < passes; i++ {
		g = boxSmooth(g)
	}
	return g, nil
}

// boxSmooth replaces each cell with the mean of its 3x3 neighbourhood,
// truncated at the grid edge.
func boxSmooth(g *Grid) *Grid {
	out := g.clone()
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			var sum float64
			var n int
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					rr, cc := r+dr, c+dc
					if rr < 0 || rr >= g.height || cc < 0 || cc >= g.width {
						continue
					}
					v := g.At(cc, rr)
					if math.IsNaN(v) {
						continue
					}
					sum += v
					n++
				}
			}
			if n > 0 {
				out.Set(c, r, sum/float64(n))
			}
		}
	}
	return out
}
