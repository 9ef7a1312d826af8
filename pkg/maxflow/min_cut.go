package maxflow

import da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"

type MinCut struct {
	flags               []bool // true if the vertex is reachable from source in the residual graph
	numSourceSideNodes  int
	numberOfMinCutEdges int
	cutEdgeIDs          []int // input edges crossing from the source side to the sink side
}

func NewMinCut(numberOfVertices int) *MinCut {
	return &MinCut{
		flags: make([]bool, numberOfVertices),
	}
}

func (mc *MinCut) SetFlag(u da.Index, flag bool) {
	mc.flags[u] = flag
}

// GetFlag true for source side vertices.
func (mc *MinCut) GetFlag(u da.Index) bool {
	return mc.flags[u]
}

func (mc *MinCut) GetNumSourceSideNodes() int {
	return mc.numSourceSideNodes
}

func (mc *MinCut) GetNumberOfMinCutEdges() int {
	return mc.numberOfMinCutEdges
}

func (mc *MinCut) GetCutEdgeIDs() []int {
	return mc.cutEdgeIDs
}
