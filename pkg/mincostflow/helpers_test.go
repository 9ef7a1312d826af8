package mincostflow

import (
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

// newTestInstance builds an undirected instance from 1-based (a, b, cost) triples.
func newTestInstance(n, k int, triples [][3]int64) *da.Instance {
	edges := make([]da.InputEdge, 0, len(triples))
	for _, tr := range triples {
		edges = append(edges, da.NewInputEdge(da.Index(tr[0]-1), da.Index(tr[1]-1), tr[2]))
	}
	return da.NewInstance(n, k, edges)
}

func newDirectedTestInstance(n, k int, triples [][3]int64) *da.Instance {
	in := newTestInstance(n, k, triples)
	in.Directed = true
	return in
}

// oneBasedIDs converts path edge ids to the 1-based ids used by the text format.
func oneBasedIDs(p Path) []int {
	ids := make([]int, 0, p.Len())
	for _, id := range p.GetEdgeIDs() {
		ids = append(ids, id+1)
	}
	return ids
}

// flowCarryingArcs number of arcs with positive flow reachable from source over such arcs.
func flowCarryingArcs(graph *da.FlowGraph, source da.Index) int {
	visited := make([]bool, graph.NumberOfVertices())
	stack := []da.Index{source}
	visited[source] = true
	count := 0
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		graph.ForEachVertexArcs(u, func(_ int, a *da.Arc) {
			if a.GetFlow() <= 0 {
				return
			}
			count++
			if !visited[a.GetTo()] {
				visited[a.GetTo()] = true
				stack = append(stack, a.GetTo())
			}
		})
	}
	return count
}
