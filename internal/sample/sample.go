// Package sample draws cell indices from probability fields.
//
// Both samplers draw with replacement: duplicate indices model independent
// individuals that may occupy the same cell. Randomness always comes from an
// injected source so runs are reproducible from a seed.
package sample

import (
	"math/rand/v2"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"

	"github.com/sells-group/spatial-sim/internal/field"
)

// Source supplies the uniform variates behind every draw.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a seeded PCG-backed source. The same seed reproduces the same
// draw sequence.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weighted draws n indices with replacement according to f, via inverse-CDF
// lookup on the prefix-sum table. Every returned index i satisfies
// 0 <= i < f.Len() and Prob(i) > 0.
func Weighted(f *field.Field, n int, src Source) ([]int, error) {
	if f == nil {
		return nil, eris.New("sample: nil field")
	}
	if n <= 0 {
		return nil, eris.Errorf("sample: draw count must be positive, got %d", n)
	}
	if src == nil {
		return nil, eris.New("sample: nil random source")
	}

	cum := make([]float64, f.Len())
	floats.CumSum(cum, f.Probs())
	total := cum[len(cum)-1]

	// Last index with positive mass, for the roundoff fallback below.
	last := len(cum) - 1
	for last > 0 && f.Prob(last) == 0 {
		last--
	}

	out := make([]int, n)
	for i := range out {
		u := src.Float64() * total
		// First index with cum > u. Strict comparison skips leading
		// zero-probability cells when u == 0.
		idx := sort.Search(len(cum), func(j int) bool { return cum[j] > u })
		if idx >= len(cum) {
			// Float roundoff put u at or above the last prefix sum; fall
			// back to the last cell that can legitimately be drawn.
			idx = last
		}
		out[i] = idx
	}
	return out, nil
}

// Uniform draws n indices with replacement, each cell equally likely.
func Uniform(n, cells int, src Source) ([]int, error) {
	if n <= 0 {
		return nil, eris.Errorf("sample: draw count must be positive, got %d", n)
	}
	if cells <= 0 {
		return nil, eris.Errorf("sample: cell count must be positive, got %d", cells)
	}
	if src == nil {
		return nil, eris.New("sample: nil random source")
	}
	out := make([]int, n)
	for i := range out {
		out[i] = src.IntN(cells)
	}
	return out, nil
}
