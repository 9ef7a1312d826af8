package mincostflow

import (
	"errors"
	"fmt"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

var ErrFlowConservation = errors.New("flow conservation violated during decomposition")

// Path one unit of flow from source to sink as the ordered input edge ids it traverses.
type Path struct {
	edgeIDs  []int
	vertices []da.Index
	cost     int64
}

func NewPath(edgeIDs []int, vertices []da.Index, cost int64) Path {
	return Path{edgeIDs: edgeIDs, vertices: vertices, cost: cost}
}

func (p Path) GetEdgeIDs() []int {
	return p.edgeIDs
}

// GetVertices visited vertices, source first and sink last.
func (p Path) GetVertices() []da.Index {
	return p.vertices
}

func (p Path) GetCost() int64 {
	return p.cost
}

func (p Path) Len() int {
	return len(p.edgeIDs)
}

// DecomposeOnePath walks arcs carrying flow from source until sink, clearing the flow of
// every arc it takes so later walks cannot reuse it.
func DecomposeOnePath(graph *da.FlowGraph, source, sink da.Index) (Path, error) {
	edgeIDs := make([]int, 0)
	vertices := []da.Index{source}
	cost := int64(0)

	// every step clears one arc, a longer walk means the flow is not acyclic and finite
	maxSteps := graph.NumberOfArcs()
	for cur := source; cur != sink; {
		if len(edgeIDs) > maxSteps {
			return Path{}, fmt.Errorf("%w: walk from %d exceeded %d arcs", ErrFlowConservation, source, maxSteps)
		}

		next := -1
		for pos := 0; pos < graph.GetVertexArcsSize(cur); pos++ {
			if graph.GetArcOfVertex(cur, pos).GetFlow() > 0 {
				next = pos
				break
			}
		}
		if next < 0 {
			return Path{}, fmt.Errorf("%w: no outgoing flow at vertex %d after %d edges",
				ErrFlowConservation, cur, len(edgeIDs))
		}

		arc := graph.GetArcOfVertex(cur, next)
		arc.ClearFlow()
		edgeIDs = append(edgeIDs, arc.GetID())
		cost += arc.GetCost()
		cur = arc.GetTo()
		vertices = append(vertices, cur)
	}

	return NewPath(edgeIDs, vertices, cost), nil
}

// Decompose extracts k unit paths from a flow of value k.
func Decompose(graph *da.FlowGraph, source, sink da.Index, k int) ([]Path, error) {
	paths := make([]Path, 0, k)
	for i := 0; i < k; i++ {
		path, err := DecomposeOnePath(graph, source, sink)
		if err != nil {
			return nil, fmt.Errorf("path %d of %d: %w", i+1, k, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
