package geo

import (
	"container/list"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

const (
	DOUGLAS_PEUCKER_THRESHOLDS = 1.0 // 1.0 meter
)

// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/

func RamerDouglasPeucker(coords []datastructure.Coordinate) []datastructure.Coordinate {
	size := len(coords)
	if size < 3 {
		return coords
	}

	kepts := make([]bool, size)
	kepts[0] = true
	kepts[size-1] = true

	stack := list.New()
	stack.PushBack([2]int{0, size - 1})

	threshold := DOUGLAS_PEUCKER_THRESHOLDS
	for stack.Len() > 0 {
		pair := stack.Remove(stack.Back()).([2]int)
		left, right := pair[0], pair[1]
		var maxDist float64
		farthestIndex := left

		// farthest point from the segment (left,right)
		for i := left + 1; i < right; i++ {
			dist := PointLinePerpendicularDistance(coords[left], coords[right], coords[i])
			if dist > maxDist && dist > threshold {
				maxDist = dist
				farthestIndex = i
			}
		}

		if maxDist > threshold {
			kepts[farthestIndex] = true
			stack.PushBack([2]int{left, farthestIndex})
			stack.PushBack([2]int{farthestIndex, right})
		}
	}

	simplifiedGeometry := make([]datastructure.Coordinate, 0)
	for i, necessary := range kepts {
		if necessary {
			simplifiedGeometry = append(simplifiedGeometry, coords[i])
		}
	}
	return simplifiedGeometry
}

func PolylineFromCoords(path []datastructure.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.GetLat(), p.GetLon()})
	}
	return string(polyline.EncodeCoords(coords))
}

// CoordsFromPolyline decodes an encoded polyline back to coordinates.
func CoordsFromPolyline(encoded string) ([]datastructure.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]datastructure.Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, datastructure.NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
