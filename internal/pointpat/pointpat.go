// Package pointpat summarizes point patterns so clumped and random
// placements can be compared numerically.
package pointpat

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/stat"
)

// Result holds the Clark-Evans nearest-neighbour statistics for a point set.
// R well below 1 indicates clustering, R near 1 complete spatial randomness,
// R above 1 dispersion.
type Result struct {
	N            int     `json:"n"`
	MeanObserved float64 `json:"mean_observed"`
	MeanExpected float64 `json:"mean_expected"`
	R            float64 `json:"r"`
}

// NearestNeighborIndex computes the Clark-Evans R for points observed over a
// study region of the given area: the ratio of the observed mean
// nearest-neighbour distance to the mean expected under complete spatial
// randomness, 1/(2*sqrt(n/area)).
//
// Co-located points (the same cell drawn twice) have nearest-neighbour
// distance zero; the query excludes only a point's own tree entry.
func NearestNeighborIndex(points []geom.Coord, area float64) (*Result, error) {
	if len(points) < 2 {
		return nil, eris.Errorf("pointpat: need at least 2 points, got %d", len(points))
	}
	if area <= 0 {
		return nil, eris.Errorf("pointpat: area must be positive, got %g", area)
	}

	data := make(kdtree.Points, len(points))
	mult := make(map[[2]float64]int, len(points))
	for i, p := range points {
		data[i] = kdtree.Point{p[0], p[1]}
		mult[[2]float64{p[0], p[1]}]++
	}
	tree := kdtree.New(data, false)

	dists := make([]float64, len(points))
	for i, p := range points {
		if mult[[2]float64{p[0], p[1]}] > 1 {
			// Another sample occupies the same location.
			dists[i] = 0
			continue
		}
		keep := kdtree.NewNKeeper(2)
		tree.NearestSet(keep, kdtree.Point{p[0], p[1]})
		nearest := math.Inf(1)
		for _, cd := range keep.Heap {
			if cd.Comparable == nil || cd.Dist == 0 {
				continue
			}
			// Dist is the squared Euclidean distance.
			nearest = math.Min(nearest, math.Sqrt(cd.Dist))
		}
		if math.IsInf(nearest, 1) {
			return nil, eris.Errorf("pointpat: no neighbour found for point %d", i)
		}
		dists[i] = nearest
	}

	observed := stat.Mean(dists, nil)
	expected := 1 / (2 * math.Sqrt(float64(len(points))/area))

	return &Result{
		N:            len(points),
		MeanObserved: observed,
		MeanExpected: expected,
		R:            observed / expected,
	}, nil
}
