package datastructure

type Coordinate struct {
	lat float64
	lon float64
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		lat: lat,
		lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

func (c Coordinate) GetLat() float64 {
	return c.lat
}

func (c Coordinate) GetLon() float64 {
	return c.lon
}

// ReverseCoordinates returns a reversed copy, the input is left untouched.
func ReverseCoordinates(coords []Coordinate) []Coordinate {
	reversed := make([]Coordinate, len(coords))
	for i, c := range coords {
		reversed[len(coords)-1-i] = c
	}
	return reversed
}
