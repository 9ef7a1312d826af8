package datastructure

import (
	"math"

	"github.com/lintang-b-s/osm-disjoint-paths/pkg"
)

// ArcRef addresses an arc by its tail vertex and its position in the tail's adjacency list.
// Arcs are never removed, so a ref stays valid for the lifetime of the graph.
type ArcRef struct {
	Node Index
	Pos  int
}

var NoArc = ArcRef{Node: math.MaxUint32, Pos: -1}

func NewArcRef(node Index, pos int) ArcRef {
	return ArcRef{Node: node, Pos: pos}
}

func (r ArcRef) Valid() bool {
	return r.Pos >= 0
}

// Arc is one direction of an arc pair. capacity is the remaining residual capacity,
// so capacity+flow is the capacity the arc was created with.
type Arc struct {
	from      Index
	to        Index
	cost      int64
	flow      int64
	capacity  int64
	pairIndex int // position of the twin in adjacencyList[to]
	id        int // input edge index, shared by every arc derived from that edge
}

func (a *Arc) GetFrom() Index {
	return a.from
}

func (a *Arc) GetTo() Index {
	return a.to
}

func (a *Arc) GetCost() int64 {
	return a.cost
}

func (a *Arc) GetFlow() int64 {
	return a.flow
}

func (a *Arc) GetCapacity() int64 {
	return a.capacity
}

func (a *Arc) GetOriginalCapacity() int64 {
	return a.capacity + a.flow
}

func (a *Arc) GetPairIndex() int {
	return a.pairIndex
}

func (a *Arc) GetID() int {
	return a.id
}

// AddFlow pushes f units through the arc, negative f cancels flow.
func (a *Arc) AddFlow(f int64) {
	a.flow += f
	a.capacity -= f
}

// ClearFlow drops the flow marker without touching the residual capacity, used while
// peeling paths off a finished flow.
func (a *Arc) ClearFlow() {
	a.flow = 0
}

// FlowGraph is the residual network of a disjoint paths instance.
// Every input edge becomes one (directed) or two (undirected) arc pairs;
// a pair is a forward arc with capacity and a zero capacity twin with negated cost.
type FlowGraph struct {
	adjacencyList [][]Arc
	numberOfEdges int
	numberOfArcs  int
}

func NewFlowGraph(numberOfVertices int) *FlowGraph {
	adjacencyList := make([][]Arc, numberOfVertices)
	for i := range adjacencyList {
		adjacencyList[i] = make([]Arc, 0)
	}
	return &FlowGraph{
		adjacencyList: adjacencyList,
	}
}

func (g *FlowGraph) NumberOfVertices() int {
	return len(g.adjacencyList)
}

// NumberOfEdges number of input edges added to the graph (self loops excluded).
func (g *FlowGraph) NumberOfEdges() int {
	return g.numberOfEdges
}

func (g *FlowGraph) NumberOfArcs() int {
	return g.numberOfArcs
}

// AddArcPair appends u->v with the given capacity and cost and its twin v->u with
// capacity 0 and cost -cost. Returns the ref of the forward arc.
func (g *FlowGraph) AddArcPair(u, v Index, cost, capacity int64, id int) ArcRef {
	forwardPos := len(g.adjacencyList[u])
	twinPos := len(g.adjacencyList[v])

	g.adjacencyList[u] = append(g.adjacencyList[u], Arc{
		from:      u,
		to:        v,
		cost:      cost,
		capacity:  capacity,
		pairIndex: twinPos,
		id:        id,
	})
	g.adjacencyList[v] = append(g.adjacencyList[v], Arc{
		from:      v,
		to:        u,
		cost:      -cost,
		capacity:  0,
		pairIndex: forwardPos,
		id:        id,
	})
	g.numberOfArcs += 2
	return NewArcRef(u, forwardPos)
}

// AddUndirectedEdge edge usable once in each direction at the same cost:
// pair one carries u->v, pair two carries v->u.
func (g *FlowGraph) AddUndirectedEdge(u, v Index, cost int64, id int) {
	if u == v {
		return
	}
	g.AddArcPair(u, v, cost, pkg.UNIT_CAPACITY, id)
	g.AddArcPair(v, u, cost, pkg.UNIT_CAPACITY, id)
	g.numberOfEdges++
}

func (g *FlowGraph) AddDirectedEdge(u, v Index, cost int64, id int) {
	if u == v {
		return
	}
	g.AddArcPair(u, v, cost, pkg.UNIT_CAPACITY, id)
	g.numberOfEdges++
}

func (g *FlowGraph) GetVertexArcsSize(u Index) int {
	return len(g.adjacencyList[u])
}

func (g *FlowGraph) GetArcOfVertex(u Index, pos int) *Arc {
	return &g.adjacencyList[u][pos]
}

func (g *FlowGraph) GetArc(ref ArcRef) *Arc {
	return &g.adjacencyList[ref.Node][ref.Pos]
}

func (g *FlowGraph) GetPairedArc(ref ArcRef) *Arc {
	a := g.GetArc(ref)
	return &g.adjacencyList[a.to][a.pairIndex]
}

func (g *FlowGraph) GetPairedRef(ref ArcRef) ArcRef {
	a := g.GetArc(ref)
	return NewArcRef(a.to, a.pairIndex)
}

func (g *FlowGraph) ForEachVertexArcs(u Index, handle func(pos int, a *Arc)) {
	for pos := range g.adjacencyList[u] {
		handle(pos, &g.adjacencyList[u][pos])
	}
}

func (g *FlowGraph) ForEachArc(handle func(ref ArcRef, a *Arc)) {
	for u := range g.adjacencyList {
		for pos := range g.adjacencyList[u] {
			handle(NewArcRef(Index(u), pos), &g.adjacencyList[u][pos])
		}
	}
}

// PushFlow sends f units along ref and cancels f units on its twin.
func (g *FlowGraph) PushFlow(ref ArcRef, f int64) {
	g.GetArc(ref).AddFlow(f)
	g.GetPairedArc(ref).AddFlow(-f)
}

// ResetFlow restores every arc to its initial capacity with zero flow.
func (g *FlowGraph) ResetFlow() {
	for u := range g.adjacencyList {
		for pos := range g.adjacencyList[u] {
			a := &g.adjacencyList[u][pos]
			a.capacity += a.flow
			a.flow = 0
		}
	}
}

func (g *FlowGraph) Clone() *FlowGraph {
	newG := &FlowGraph{
		adjacencyList: make([][]Arc, len(g.adjacencyList)),
		numberOfEdges: g.numberOfEdges,
		numberOfArcs:  g.numberOfArcs,
	}
	for i, arcs := range g.adjacencyList {
		newArcs := make([]Arc, len(arcs))
		copy(newArcs, arcs)
		newG.adjacencyList[i] = newArcs
	}
	return newG
}
