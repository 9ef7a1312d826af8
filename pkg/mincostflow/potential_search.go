package mincostflow

import (
	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

// ShortestPathTree result of one potential search. The slices are owned by the search
// and overwritten by its next Run.
type ShortestPathTree struct {
	source    da.Index
	distances []int64 // real path cost from source, INF_DISTANCE if unreached
	previous  []da.ArcRef
}

func (t *ShortestPathTree) GetSource() da.Index {
	return t.source
}

func (t *ShortestPathTree) GetDistance(v da.Index) int64 {
	return t.distances[v]
}

func (t *ShortestPathTree) GetPrevious(v da.Index) da.ArcRef {
	return t.previous[v]
}

func (t *ShortestPathTree) Reached(v da.Index) bool {
	return t.distances[v] < pkg.INF_DISTANCE
}

// PotentialSearch single source shortest paths over the residual graph using reduced costs
// cost + p[from] - p[to]. Only arcs with positive residual capacity are relaxed.
//
// The search is label correcting: a vertex that already left the queue is queued again if
// its label improves, so a stale potential degrades running time instead of correctness.
// With potentials taken from the previous search every reduced cost is >= 0 and each
// vertex is settled once, as in Dijkstra.
type PotentialSearch struct {
	graph    *da.FlowGraph
	reduced  []int64
	tree     *ShortestPathTree
	pq       *da.MinHeap[da.Index]
	settles  int
	relaxing int
}

func NewPotentialSearch(graph *da.FlowGraph) *PotentialSearch {
	n := graph.NumberOfVertices()
	return &PotentialSearch{
		graph:   graph,
		reduced: make([]int64, n),
		tree: &ShortestPathTree{
			distances: make([]int64, n),
			previous:  make([]da.ArcRef, n),
		},
		pq: da.NewMinHeap[da.Index](),
	}
}

// Run computes the shortest path tree from source and refreshes potentials in place:
// every reached vertex gets its real distance as new potential, unreached vertices keep theirs.
func (ps *PotentialSearch) Run(source da.Index, potentials []int64) *ShortestPathTree {
	for v := range ps.reduced {
		ps.reduced[v] = pkg.INF_DISTANCE
		ps.tree.previous[v] = da.NoArc
	}
	ps.tree.source = source
	ps.settles = 0
	ps.relaxing = 0
	ps.pq.Clear()

	ps.reduced[source] = 0
	ps.pq.Insert(da.NewPriorityQueueNode(int64(0), source))

	for ps.pq.Size() > 0 {
		node, _ := ps.pq.ExtractMin()
		u := node.GetItem()
		d := node.GetRank()
		if d > ps.reduced[u] {
			continue
		}
		ps.settles++

		ps.graph.ForEachVertexArcs(u, func(pos int, a *da.Arc) {
			if a.GetCapacity() <= 0 {
				return
			}
			v := a.GetTo()
			newDist := d + a.GetCost() + potentials[u] - potentials[v]
			if newDist < ps.reduced[v] {
				ps.reduced[v] = newDist
				ps.tree.previous[v] = da.NewArcRef(u, pos)
				ps.pq.InsertOrDecrease(da.NewPriorityQueueNode(newDist, v))
				ps.relaxing++
			}
		})
	}

	for v := range ps.reduced {
		if ps.reduced[v] >= pkg.INF_DISTANCE {
			ps.tree.distances[v] = pkg.INF_DISTANCE
			continue
		}
		ps.tree.distances[v] = ps.reduced[v] + potentials[v] - potentials[source]
	}
	for v := range potentials {
		if ps.tree.distances[v] < pkg.INF_DISTANCE {
			potentials[v] = ps.tree.distances[v]
		}
	}

	return ps.tree
}

// GetSettledCount number of queue pops of the last Run, including re-settled vertices.
func (ps *PotentialSearch) GetSettledCount() int {
	return ps.settles
}

func (ps *PotentialSearch) GetRelaxedCount() int {
	return ps.relaxing
}
