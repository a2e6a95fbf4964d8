package zonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPolygon(t *testing.T) {
	t.Parallel()
	p := Buffer(3, 4, 2, 32, 4326)

	require.Equal(t, 4326, p.SRID())
	require.Equal(t, 1, p.NumLinearRings())

	coords := p.LinearRing(0).Coords()
	// Closed ring: first and last vertices coincide.
	require.GreaterOrEqual(t, len(coords), 33)
	assert.Equal(t, coords[0], coords[len(coords)-1])

	// Every vertex sits on the circle.
	for _, c := range coords {
		d := math.Hypot(c[0]-3, c[1]-4)
		assert.InDelta(t, 2.0, d, 1e-9)
	}
}

func TestBufferSegmentFloor(t *testing.T) {
	t.Parallel()
	p := Buffer(0, 0, 1, 2, 0)
	// Degenerate segment counts are bumped to the minimum of 8.
	coords := p.LinearRing(0).Coords()
	assert.Equal(t, 9, len(coords))
}

func TestRingPolygonalAreaApproximatesCircle(t *testing.T) {
	t.Parallel()
	const r = 3.0
	buf := ringPolygonal(bufferRing(0, 0, r, 64))

	// A regular 64-gon underestimates the disc by sin(x)/x, x = 2*pi/64.
	want := math.Pi * r * r
	assert.InDelta(t, want, buf.Area(), want*0.005)
}

func TestCellPolygonalArea(t *testing.T) {
	t.Parallel()
	cell := cellPolygonal(1, 1, 3, 3)
	assert.InDelta(t, 4.0, cell.Area(), 1e-12)
}

func TestOverlapAreaContained(t *testing.T) {
	t.Parallel()
	buf := ringPolygonal(bufferRing(5, 5, 1, 32))

	// A cell covering the whole buffer keeps its full area.
	assert.InDelta(t, buf.Area(), overlapArea(buf, 0, 0, 10, 10), 1e-9)
}

func TestOverlapAreaDisjoint(t *testing.T) {
	t.Parallel()
	buf := ringPolygonal(bufferRing(5, 5, 1, 32))

	assert.Zero(t, overlapArea(buf, 20, 20, 30, 30))
}

func TestOverlapAreaHalfDisc(t *testing.T) {
	t.Parallel()
	buf := ringPolygonal(bufferRing(0, 0, 2, 128))

	// A cell bounded by the centerline keeps exactly half the polygon.
	assert.InDelta(t, buf.Area()/2, overlapArea(buf, 0, -5, 5, 5), 1e-9)
}

func TestOverlapAreaQuarter(t *testing.T) {
	t.Parallel()
	buf := ringPolygonal(bufferRing(0, 0, 2, 128))

	// A corner cell at the center keeps a quadrant.
	assert.InDelta(t, buf.Area()/4, overlapArea(buf, 0, 0, 5, 5), 1e-9)
}
