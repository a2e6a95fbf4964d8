package zonal

import (
	cgeom "github.com/ctessum/geom"
	"github.com/twpayne/go-geom"
)

// ringPolygonal converts an open buffer ring into a polygon suitable for
// overlay operations.
func ringPolygonal(ring []geom.Coord) cgeom.Polygon {
	path := make([]cgeom.Point, len(ring))
	for i, c := range ring {
		path[i] = cgeom.Point{X: c[0], Y: c[1]}
	}
	return cgeom.Polygon{path}
}

// cellPolygonal builds the rectangle polygon of one raster cell.
func cellPolygonal(minX, minY, maxX, maxY float64) cgeom.Polygon {
	return cgeom.Polygon{{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}}
}

// overlapArea returns the intersection area between the buffer polygon and a
// cell rectangle, 0 when they are disjoint.
func overlapArea(buf cgeom.Polygonal, minX, minY, maxX, maxY float64) float64 {
	isect := cellPolygonal(minX, minY, maxX, maxY).Intersection(buf)
	if isect == nil {
		return 0
	}
	return isect.Area()
}
