package osmparser

import (
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/mincostflow"
	"github.com/paulmach/osm"
)

// RoadNetwork instance built from an OSM extract plus what is needed to draw its routes.
// Edge i of the instance has geometries[i], ordered from its From to its To vertex.
type RoadNetwork struct {
	instance   *da.Instance
	osmNodeIDs []osm.NodeID
	geometries [][]da.Coordinate
	wayIDs     []osm.WayID
}

func (rn *RoadNetwork) GetInstance() *da.Instance {
	return rn.instance
}

func (rn *RoadNetwork) GetOsmNodeID(v da.Index) osm.NodeID {
	return rn.osmNodeIDs[v]
}

func (rn *RoadNetwork) GetWayID(edgeID int) osm.WayID {
	return rn.wayIDs[edgeID]
}

func (rn *RoadNetwork) GetEdgeGeometry(edgeID int) []da.Coordinate {
	return rn.geometries[edgeID]
}

// PathGeometry coordinates of a route in travel direction. Undirected edges traversed from
// To to From are reversed.
func (rn *RoadNetwork) PathGeometry(p mincostflow.Path) []da.Coordinate {
	vertices := p.GetVertices()
	coords := make([]da.Coordinate, 0)
	for i, edgeID := range p.GetEdgeIDs() {
		edgeGeometry := rn.geometries[edgeID]
		if rn.instance.Edges[edgeID].From != vertices[i] {
			edgeGeometry = da.ReverseCoordinates(edgeGeometry)
		}
		if len(coords) > 0 && len(edgeGeometry) > 0 {
			// shared junction
			edgeGeometry = edgeGeometry[1:]
		}
		coords = append(coords, edgeGeometry...)
	}
	return coords
}

// PathWays osm way ids of a route, consecutive edges of the same way collapse to one entry.
func (rn *RoadNetwork) PathWays(p mincostflow.Path) []osm.WayID {
	ways := make([]osm.WayID, 0)
	for _, edgeID := range p.GetEdgeIDs() {
		wayID := rn.wayIDs[edgeID]
		if len(ways) == 0 || ways[len(ways)-1] != wayID {
			ways = append(ways, wayID)
		}
	}
	return ways
}
