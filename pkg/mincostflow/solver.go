package mincostflow

import (
	"fmt"
	"time"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/maxflow"
	"go.uber.org/zap"
)

// Result outcome of a solve. An infeasible result carries the maximum number of disjoint
// paths in Flow, no paths, and in CutEdgeIDs the edges of a minimum source-sink cut.
type Result struct {
	Feasible      bool
	K             int
	Flow          int64
	TotalCost     int64
	Paths         []Path
	Augmentations int
	CutEdgeIDs    []int
}

// AverageCost total cost over k paths, zero when k is zero.
func (r *Result) AverageCost() float64 {
	if r.K == 0 {
		return 0
	}
	return float64(r.TotalCost) / float64(r.K)
}

// Solver runs the whole pipeline: validation, graph build, feasibility check, min cost flow, decomposition.
// A Solver keeps no per-instance state and may be shared between goroutines.
type Solver struct {
	debug  bool
	logger *zap.Logger
}

func NewSolver(debug bool, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{debug: debug, logger: logger}
}

func (s *Solver) Solve(in *da.Instance) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	graph := in.BuildFlowGraph()

	// cost blind max flow on a copy, an infeasible instance never reaches the cost search
	minCut, err := maxflow.NewDinicMaxFlow(graph.Clone(), s.debug).ComputeMinCut(in.Source, in.Sink)
	if err != nil {
		return nil, err
	}
	if maxPaths := int64(minCut.GetNumberOfMinCutEdges()); maxPaths < int64(in.K) {
		s.logger.Sugar().Infof("infeasible: only %d of %d disjoint paths exist", maxPaths, in.K)
		return &Result{
			K:          in.K,
			Flow:       maxPaths,
			CutEdgeIDs: minCut.GetCutEdgeIDs(),
		}, nil
	}

	engine := NewSuccessiveShortestPath(graph, s.debug, s.logger)
	flow, err := engine.FindMinCostFlow(in.Source, in.Sink, int64(in.K))
	if err != nil {
		return nil, err
	}

	result := &Result{
		K:             in.K,
		Flow:          flow,
		Augmentations: engine.GetAugmentations(),
	}
	if flow < int64(in.K) {
		// max flow said k paths exist, the engine must find them
		return nil, fmt.Errorf("%w: pushed %d of %d units", ErrInvalidFlow, flow, in.K)
	}

	paths, err := Decompose(graph, in.Source, in.Sink, in.K)
	if err != nil {
		s.logger.Error("flow decomposition failed", zap.Error(err))
		return nil, err
	}

	result.Feasible = true
	result.Paths = paths
	for _, p := range paths {
		result.TotalCost += p.GetCost()
	}
	if result.TotalCost != engine.GetTotalCost() {
		// equal for a min cost flow, a difference means a cycle with non-zero cost survived
		s.logger.Warn("decomposed cost differs from augmented cost",
			zap.Int64("decomposed", result.TotalCost), zap.Int64("augmented", engine.GetTotalCost()))
	}

	s.logger.Debug("solved instance",
		zap.Int("vertices", in.NumVertices),
		zap.Int("edges", in.NumEdges()),
		zap.Int("k", in.K),
		zap.Int64("totalCost", result.TotalCost),
		zap.Int("augmentations", result.Augmentations),
		zap.Duration("took", time.Since(start)))
	return result, nil
}
