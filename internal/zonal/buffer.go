package zonal

import (
	"math"

	"github.com/twpayne/go-geom"
)

// DefaultSegments is the number of edges used to polygonize a circular
// buffer. Buffers are regular polygons, the usual approximation for circular
// geometries; more segments trade speed for accuracy.
const DefaultSegments = 64

// Buffer builds a circular buffer polygon of the given radius centered at
// (x, y), polygonized with the given segment count.
func Buffer(x, y, radius float64, segments int, srid int) *geom.Polygon {
	ring := bufferRing(x, y, radius, segments)
	flat := make([]float64, 0, (len(ring)+1)*2)
	for _, c := range ring {
		flat = append(flat, c[0], c[1])
	}
	// Close the ring.
	flat = append(flat, ring[0][0], ring[0][1])
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(srid)
}

// bufferRing returns the open (unclosed) counter-clockwise vertex ring of a
// polygonized circle.
func bufferRing(x, y, radius float64, segments int) []geom.Coord {
	if segments < 8 {
		segments = 8
	}
	ring := make([]geom.Coord, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = geom.Coord{x + radius*math.Cos(theta), y + radius*math.Sin(theta)}
	}
	return ring
}
