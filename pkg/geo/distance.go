package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = 6371007
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// DistanceMeters great circle distance between two coordinates.
func DistanceMeters(a, b datastructure.Coordinate) float64 {
	angle := s2.LatLngFromDegrees(a.GetLat(), a.GetLon()).Distance(s2.LatLngFromDegrees(b.GetLat(), b.GetLon()))
	return angle.Radians() * earthRadiusM
}

// PolylineLengthMeters sum of the distances between consecutive coordinates.
func PolylineLengthMeters(coords []datastructure.Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += DistanceMeters(coords[i-1], coords[i])
	}
	return length
}
