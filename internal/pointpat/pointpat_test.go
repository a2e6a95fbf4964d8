package pointpat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestNearestNeighborIndexLattice(t *testing.T) {
	t.Parallel()

	// A 5x5 unit lattice over a 5x5 region: every nearest-neighbour distance
	// is exactly 1 and density is 1, so expected distance is 0.5 and R = 2
	// (maximally dispersed).
	var pts []geom.Coord
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			pts = append(pts, geom.Coord{float64(x), float64(y)})
		}
	}

	res, err := NearestNeighborIndex(pts, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, res.N)
	assert.InDelta(t, 1.0, res.MeanObserved, 1e-9)
	assert.InDelta(t, 0.5, res.MeanExpected, 1e-9)
	assert.InDelta(t, 2.0, res.R, 1e-9)
}

func TestNearestNeighborIndexClustered(t *testing.T) {
	t.Parallel()

	// Two tight clumps in a large region: observed distances are tiny
	// relative to the CSR expectation.
	pts := []geom.Coord{
		{1, 1}, {1.1, 1}, {1, 1.1}, {1.1, 1.1},
		{90, 90}, {90.1, 90}, {90, 90.1}, {90.1, 90.1},
	}

	res, err := NearestNeighborIndex(pts, 100*100)
	require.NoError(t, err)
	assert.Less(t, res.R, 0.1)
}

func TestNearestNeighborIndexCoLocated(t *testing.T) {
	t.Parallel()

	// Duplicated sample locations have nearest-neighbour distance zero; a
	// fully duplicated set is maximal clustering.
	pts := []geom.Coord{{5, 5}, {5, 5}, {5, 5}, {5, 5}}

	res, err := NearestNeighborIndex(pts, 100)
	require.NoError(t, err)
	assert.Zero(t, res.MeanObserved)
	assert.Zero(t, res.R)
}

func TestNearestNeighborIndexMixedDuplicates(t *testing.T) {
	t.Parallel()

	pts := []geom.Coord{{0, 0}, {0, 0}, {3, 4}}
	res, err := NearestNeighborIndex(pts, 100)
	require.NoError(t, err)

	// Distances: 0, 0 for the pair and 5 for the lone point.
	assert.InDelta(t, 5.0/3, res.MeanObserved, 1e-9)
}

func TestNearestNeighborIndexValidation(t *testing.T) {
	t.Parallel()

	_, err := NearestNeighborIndex([]geom.Coord{{0, 0}}, 10)
	require.Error(t, err)

	_, err = NearestNeighborIndex([]geom.Coord{{0, 0}, {1, 1}}, 0)
	require.Error(t, err)

	_, err = NearestNeighborIndex(nil, 10)
	require.Error(t, err)
}
