package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/util"
)

var (
	ErrTooFewVertices         = errors.New("instance must have at least 2 vertices")
	ErrNegativePathCount      = errors.New("required path count must be non-negative")
	ErrSourceEqualsSink       = errors.New("source and sink must differ")
	ErrNegativeUndirectedCost = errors.New("undirected edge with negative cost forms a negative cycle")
	ErrCostTooLarge           = errors.New("sum of absolute edge costs reaches the infinite distance sentinel")
)

// InputEdge edge as read from the instance, endpoints are 0-based.
type InputEdge struct {
	From Index
	To   Index
	Cost int64
}

func NewInputEdge(from, to Index, cost int64) InputEdge {
	return InputEdge{From: from, To: to, Cost: cost}
}

// Instance a request for K edge-disjoint Source->Sink paths of minimum average cost.
type Instance struct {
	NumVertices int
	Edges       []InputEdge
	K           int
	Source      Index
	Sink        Index
	Directed    bool
}

// NewInstance routes from the first to the last vertex over undirected edges.
func NewInstance(numVertices, k int, edges []InputEdge) *Instance {
	sink := Index(0)
	if numVertices > 0 {
		sink = Index(numVertices - 1)
	}
	return &Instance{
		NumVertices: numVertices,
		Edges:       edges,
		K:           k,
		Source:      0,
		Sink:        sink,
	}
}

func (in *Instance) NumEdges() int {
	return len(in.Edges)
}

func (in *Instance) Validate() error {
	if in.NumVertices < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewVertices, in.NumVertices)
	}
	if in.K < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativePathCount, in.K)
	}
	n := Index(in.NumVertices)
	if in.Source >= n || in.Sink >= n {
		return fmt.Errorf("source %d or sink %d out of range [0, %d)", in.Source, in.Sink, n)
	}
	if in.Source == in.Sink {
		return ErrSourceEqualsSink
	}

	var totalAbsCost int64
	for i, e := range in.Edges {
		if e.From >= n || e.To >= n {
			return fmt.Errorf("edge %d: endpoint out of range [1, %d]: %d %d", i+1, n, e.From+1, e.To+1)
		}
		if !in.Directed && e.Cost < 0 {
			return fmt.Errorf("%w: edge %d cost %d", ErrNegativeUndirectedCost, i+1, e.Cost)
		}
		totalAbsCost += util.AbsInt(e.Cost)
		if totalAbsCost < 0 || totalAbsCost >= pkg.INF_DISTANCE {
			return fmt.Errorf("%w: edge %d", ErrCostTooLarge, i+1)
		}
	}
	return nil
}

// BuildFlowGraph expands every edge into arc pairs, the arc ids are the edge positions.
func (in *Instance) BuildFlowGraph() *FlowGraph {
	g := NewFlowGraph(in.NumVertices)
	for i, e := range in.Edges {
		if in.Directed {
			g.AddDirectedEdge(e.From, e.To, e.Cost, i)
		} else {
			g.AddUndirectedEdge(e.From, e.To, e.Cost, i)
		}
	}
	return g
}
