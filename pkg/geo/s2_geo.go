package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.GetLat(), c.GetLon()))
}

// ProjectPointToLineCoord closest point to snap on the great circle segment (a, b).
func ProjectPointToLineCoord(a, b, snap datastructure.Coordinate) datastructure.Coordinate {
	projection := s2.Project(toS2Point(snap), toS2Point(a), toS2Point(b))
	projectLatLng := s2.LatLngFromPoint(projection)
	return datastructure.NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance return in meter
func PointLinePerpendicularDistance(a, b, snap datastructure.Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(a, b, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}
