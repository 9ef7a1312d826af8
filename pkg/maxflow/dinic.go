package maxflow

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/util"
)

const INVALID_LEVEL = math.MaxInt32

var ErrInvalidMinCut = errors.New("invalid max flow result")

// DinicMaxFlow maximum flow over the residual capacities of a FlowGraph, costs are ignored.
// With unit capacities the flow value is the number of edge-disjoint source-sink paths.
type DinicMaxFlow struct {
	graph       *da.FlowGraph
	level       []int
	currentArcs []int
	debug       bool
}

func NewDinicMaxFlow(graph *da.FlowGraph, debug bool) *DinicMaxFlow {
	return &DinicMaxFlow{
		graph:       graph,
		level:       make([]int, graph.NumberOfVertices()),
		currentArcs: make([]int, graph.NumberOfVertices()),
		debug:       debug,
	}
}

func (dmf *DinicMaxFlow) bfsComputeLevelGraph(source, sink da.Index) {
	for i := range dmf.level {
		dmf.level[i] = INVALID_LEVEL
	}

	dmf.level[source] = 0
	queue := []da.Index{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if u == sink {
			// dont relax the sink
			continue
		}

		level := dmf.level[u] + 1
		dmf.graph.ForEachVertexArcs(u, func(_ int, arc *da.Arc) {
			target := arc.GetTo()
			if arc.GetCapacity() > 0 && dmf.level[target] > level {
				dmf.level[target] = level
				queue = append(queue, target)
			}
		})
	}
}

// dfsAugmentingPath. perform dfs from u along the level graph to find an augmenting path
func (dmf *DinicMaxFlow) dfsAugmentingPath(u, sink da.Index, maxFlow int64) int64 {
	if u == sink || maxFlow == 0 {
		return maxFlow
	}

	for ; dmf.currentArcs[u] < dmf.graph.GetVertexArcsSize(u); dmf.currentArcs[u]++ {
		pos := dmf.currentArcs[u]
		arc := dmf.graph.GetArcOfVertex(u, pos)
		v := arc.GetTo()
		if arc.GetCapacity() <= 0 || dmf.level[v] != dmf.level[u]+1 {
			continue
		}

		if flow := dmf.dfsAugmentingPath(v, sink, util.MinInt(arc.GetCapacity(), maxFlow)); flow > 0 {
			dmf.graph.PushFlow(da.NewArcRef(u, pos), flow)
			return flow
		}
	}
	dmf.level[u] = INVALID_LEVEL

	return 0
}

func (dmf *DinicMaxFlow) blockingFlow(source, sink da.Index, limit int64) int64 {
	flowIncrease := int64(0)
	dmf.resetCurrentArcs()
	for flowIncrease < limit {
		flow := dmf.dfsAugmentingPath(source, sink, limit-flowIncrease)
		if flow == 0 {
			break
		}
		flowIncrease += flow
	}
	return flowIncrease
}

func (dmf *DinicMaxFlow) resetCurrentArcs() {
	for i := range dmf.currentArcs {
		dmf.currentArcs[i] = 0
	}
}

// ComputeMaxFlow pushes flow from source to sink until limit is reached or no augmenting
// path is left, and returns the flow pushed. The graph keeps the flow.
func (dmf *DinicMaxFlow) ComputeMaxFlow(source, sink da.Index, limit int64) int64 {
	maxFlow := int64(0)
	for maxFlow < limit {
		dmf.bfsComputeLevelGraph(source, sink)
		if dmf.isSeparated(sink) {
			break
		}
		maxFlow += dmf.blockingFlow(source, sink, limit-maxFlow)
	}
	return maxFlow
}

// ComputeMinCut runs a full max flow and returns the cut between the vertices still reachable
// from source in the residual graph and the rest. Its size equals the max flow value.
func (dmf *DinicMaxFlow) ComputeMinCut(source, sink da.Index) (*MinCut, error) {
	maxFlow := dmf.ComputeMaxFlow(source, sink, math.MaxInt64)

	// the last level graph did not reach sink, its reached set is the source side
	dmf.bfsComputeLevelGraph(source, sink)
	minCut := NewMinCut(dmf.graph.NumberOfVertices())
	dmf.makeMinCutFlags(minCut, maxFlow)

	if dmf.debug {
		if err := dmf.validateResult(minCut, source, sink, maxFlow); err != nil {
			return nil, err
		}
	}
	return minCut, nil
}

func (dmf *DinicMaxFlow) makeMinCutFlags(minCut *MinCut, maxFlow int64) {
	for u := range dmf.level {
		if dmf.level[u] != INVALID_LEVEL {
			minCut.SetFlag(da.Index(u), true)
			minCut.numSourceSideNodes++
		}
	}

	dmf.graph.ForEachArc(func(_ da.ArcRef, arc *da.Arc) {
		if arc.GetOriginalCapacity() > 0 && minCut.GetFlag(arc.GetFrom()) && !minCut.GetFlag(arc.GetTo()) {
			minCut.cutEdgeIDs = append(minCut.cutEdgeIDs, arc.GetID())
		}
	})
	minCut.numberOfMinCutEdges = int(maxFlow)
}

func (dmf *DinicMaxFlow) isSeparated(sink da.Index) bool {
	return dmf.level[sink] == INVALID_LEVEL
}

// validateResult capacity constraint, flow conservation and the max-flow min-cut theorem
// (see CLRS section 26.1 & 26.2).
func (dmf *DinicMaxFlow) validateResult(minCut *MinCut, source, sink da.Index, maxFlow int64) error {
	netOutflow := make([]int64, dmf.graph.NumberOfVertices())
	var err error
	dmf.graph.ForEachArc(func(_ da.ArcRef, arc *da.Arc) {
		if arc.GetCapacity() < 0 && err == nil {
			err = fmt.Errorf("%w: arc %d->%d over capacity", ErrInvalidMinCut, arc.GetFrom(), arc.GetTo())
		}
		netOutflow[arc.GetFrom()] += arc.GetFlow()
	})
	if err != nil {
		return err
	}

	for u, net := range netOutflow {
		v := da.Index(u)
		if v != source && v != sink && net != 0 {
			return fmt.Errorf("%w: flow conservation violated at vertex %d", ErrInvalidMinCut, v)
		}
	}
	if netOutflow[source] != maxFlow || netOutflow[sink] != -maxFlow {
		return fmt.Errorf("%w: source sends %d, sink receives %d, max flow %d",
			ErrInvalidMinCut, netOutflow[source], -netOutflow[sink], maxFlow)
	}
	if minCut.GetFlag(sink) {
		return fmt.Errorf("%w: sink reachable after max flow", ErrInvalidMinCut)
	}

	cutCapacity := int64(0)
	dmf.graph.ForEachArc(func(_ da.ArcRef, arc *da.Arc) {
		if minCut.GetFlag(arc.GetFrom()) && !minCut.GetFlag(arc.GetTo()) {
			cutCapacity += arc.GetOriginalCapacity()
		}
	})
	if cutCapacity != maxFlow {
		return fmt.Errorf("%w: cut capacity %d, max flow %d", ErrInvalidMinCut, cutCapacity, maxFlow)
	}
	return nil
}
