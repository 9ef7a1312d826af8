package mincostflow

import (
	"errors"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

var ErrNegativeCycle = errors.New("residual graph contains a negative cost cycle reachable from source")

func hasNegativeResidualArc(graph *da.FlowGraph) bool {
	found := false
	graph.ForEachArc(func(_ da.ArcRef, a *da.Arc) {
		if a.GetCapacity() > 0 && a.GetCost() < 0 {
			found = true
		}
	})
	return found
}

// InitialPotentials returns potentials that make every residual reduced cost reachable from
// source non-negative. Zero potentials already do when no residual arc has a negative cost;
// otherwise they are the Bellman-Ford distances from source (unreached vertices get 0).
func InitialPotentials(graph *da.FlowGraph, source da.Index) ([]int64, error) {
	n := graph.NumberOfVertices()
	potentials := make([]int64, n)
	if !hasNegativeResidualArc(graph) {
		return potentials, nil
	}

	dist := make([]int64, n)
	for v := range dist {
		dist[v] = pkg.INF_DISTANCE
	}
	dist[source] = 0

	// after n-1 rounds distances are final unless a negative cycle is reachable
	changed := true
	for round := 0; round < n && changed; round++ {
		changed = false
		graph.ForEachArc(func(_ da.ArcRef, a *da.Arc) {
			u := a.GetFrom()
			if a.GetCapacity() <= 0 || dist[u] >= pkg.INF_DISTANCE {
				return
			}
			if nd := dist[u] + a.GetCost(); nd < dist[a.GetTo()] {
				dist[a.GetTo()] = nd
				changed = true
			}
		})
	}
	if changed {
		return nil, ErrNegativeCycle
	}

	for v := range dist {
		if dist[v] < pkg.INF_DISTANCE {
			potentials[v] = dist[v]
		}
	}
	return potentials, nil
}
