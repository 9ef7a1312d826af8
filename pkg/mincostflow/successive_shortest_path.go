package mincostflow

import (
	"fmt"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/util"
	"go.uber.org/zap"
)

// SuccessiveShortestPath min cost flow by repeatedly augmenting along a cheapest residual
// source->sink path (see Ahuja, Magnanti, Orlin, Network Flows, section 9.7).
// Potentials are carried between searches so reduced costs stay non-negative.
type SuccessiveShortestPath struct {
	graph         *da.FlowGraph
	search        *PotentialSearch
	potentials    []int64
	totalCost     int64
	augmentations int
	debug         bool
	logger        *zap.Logger
}

func NewSuccessiveShortestPath(graph *da.FlowGraph, debug bool, logger *zap.Logger) *SuccessiveShortestPath {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuccessiveShortestPath{
		graph:  graph,
		search: NewPotentialSearch(graph),
		debug:  debug,
		logger: logger,
	}
}

// FindMinCostFlow pushes up to targetFlow units from source to sink and returns the amount
// pushed. A result below targetFlow means no augmenting path is left, it is not an error.
// Errors come from a negative cycle in the input or, in debug mode, from a broken invariant.
func (ssp *SuccessiveShortestPath) FindMinCostFlow(source, sink da.Index, targetFlow int64) (int64, error) {
	potentials, err := InitialPotentials(ssp.graph, source)
	if err != nil {
		return 0, err
	}
	ssp.potentials = potentials

	flow := int64(0)
	for flow < targetFlow {
		tree := ssp.search.Run(source, ssp.potentials)
		if ssp.debug {
			if err := checkReducedCosts(ssp.graph, tree, ssp.potentials); err != nil {
				return flow, err
			}
		}

		if !tree.GetPrevious(sink).Valid() {
			ssp.logger.Sugar().Debugf("sink %d unreachable after %d units of flow", sink, flow)
			break
		}

		bottleneck := ssp.bottleneck(tree, source, sink, targetFlow-flow)
		if bottleneck == 0 {
			break
		}

		ssp.augment(tree, source, sink, bottleneck)
		ssp.totalCost += bottleneck * tree.GetDistance(sink)
		flow += bottleneck
		ssp.augmentations++

		if ssp.augmentations%pkg.DEFAULT_LOG_EVERY == 0 {
			ssp.logger.Sugar().Infof("augmentations: %d, flow: %d/%d, cost: %d",
				ssp.augmentations, flow, targetFlow, ssp.totalCost)
		}

		if ssp.debug {
			if err := validateFlow(ssp.graph, source, sink, flow); err != nil {
				ssp.logger.Error("invalid flow after augmentation",
					zap.Int("augmentation", ssp.augmentations), zap.Error(err))
				return flow, err
			}
		}
	}

	return flow, nil
}

// bottleneck minimum residual capacity on the tree path to sink, capped by limit.
func (ssp *SuccessiveShortestPath) bottleneck(tree *ShortestPathTree, source, sink da.Index, limit int64) int64 {
	bottleneck := limit
	steps := 0
	for v := sink; v != source; steps++ {
		ref := tree.GetPrevious(v)
		if !ref.Valid() || steps > ssp.graph.NumberOfVertices() {
			return 0
		}
		arc := ssp.graph.GetArc(ref)
		bottleneck = util.MinInt(bottleneck, arc.GetCapacity())
		v = arc.GetFrom()
	}
	return bottleneck
}

func (ssp *SuccessiveShortestPath) augment(tree *ShortestPathTree, source, sink da.Index, flow int64) {
	for v := sink; v != source; {
		ref := tree.GetPrevious(v)
		ssp.graph.PushFlow(ref, flow)
		v = ref.Node
	}
}

func (ssp *SuccessiveShortestPath) GetTotalCost() int64 {
	return ssp.totalCost
}

func (ssp *SuccessiveShortestPath) GetAugmentations() int {
	return ssp.augmentations
}

// GetPotentials potentials after the last search, one per vertex.
func (ssp *SuccessiveShortestPath) GetPotentials() []int64 {
	return ssp.potentials
}

func (ssp *SuccessiveShortestPath) String() string {
	return fmt.Sprintf("ssp{vertices: %d, arcs: %d, augmentations: %d, cost: %d}",
		ssp.graph.NumberOfVertices(), ssp.graph.NumberOfArcs(), ssp.augmentations, ssp.totalCost)
}
