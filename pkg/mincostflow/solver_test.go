package mincostflow

import (
	"math"
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type SolverSuite struct {
	suite.Suite
	solver *Solver
}

func (s *SolverSuite) SetupTest() {
	s.solver = NewSolver(true, zaptest.NewLogger(s.T()))
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func (s *SolverSuite) TestSingleEdge() {
	res, err := s.solver.Solve(newTestInstance(2, 1, [][3]int64{{1, 2, 5}}))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(5.0, res.AverageCost())
	s.Require().Len(res.Paths, 1)
	s.Equal([]int{1}, oneBasedIDs(res.Paths[0]))
}

func (s *SolverSuite) TestChainIsInfeasibleForTwoPaths() {
	res, err := s.solver.Solve(newTestInstance(3, 2, [][3]int64{{1, 2, 1}, {2, 3, 1}}))
	s.Require().NoError(err)
	s.False(res.Feasible)
	s.Equal(int64(1), res.Flow)
	s.Empty(res.Paths)
	// the first edge is the unique minimum cut
	s.Equal([]int{0}, res.CutEdgeIDs)
}

func (s *SolverSuite) TestTwoParallelRoutes() {
	res, err := s.solver.Solve(newTestInstance(4, 2, [][3]int64{
		{1, 2, 2}, {2, 4, 3}, {1, 3, 1}, {3, 4, 4},
	}))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(int64(10), res.TotalCost)
	s.Equal(5.0, res.AverageCost())
	s.ElementsMatch([][]int{{1, 2}, {3, 4}}, [][]int{oneBasedIDs(res.Paths[0]), oneBasedIDs(res.Paths[1])})
}

func (s *SolverSuite) TestOptimumNeedsCancellation() {
	res, err := s.solver.Solve(newTestInstance(4, 2, cancellationTriples))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(int64(8), res.TotalCost)
	s.Equal(4.0, res.AverageCost())
	s.Equal(2, res.Augmentations)
	for _, p := range res.Paths {
		s.NotContains(p.GetEdgeIDs(), 1)
	}
}

func (s *SolverSuite) TestZeroPaths() {
	res, err := s.solver.Solve(newTestInstance(3, 0, [][3]int64{{1, 2, 1}, {2, 3, 1}}))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Zero(res.AverageCost())
	s.Empty(res.Paths)
}

func (s *SolverSuite) TestNoEdges() {
	res, err := s.solver.Solve(newTestInstance(2, 1, nil))
	s.Require().NoError(err)
	s.False(res.Feasible)
	s.Zero(res.Flow)
}

func (s *SolverSuite) TestSelfLoopsAreIgnored() {
	res, err := s.solver.Solve(newTestInstance(2, 1, [][3]int64{{1, 1, 1}, {1, 2, 7}}))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal([]int{2}, oneBasedIDs(res.Paths[0]))
}

func (s *SolverSuite) TestDirectedNegativeCost() {
	triples := [][3]int64{{1, 2, 4}, {1, 3, 1}, {3, 2, -3}, {2, 4, 1}, {3, 4, 5}}

	res, err := s.solver.Solve(newDirectedTestInstance(4, 1, triples))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(int64(-1), res.TotalCost)
	s.Equal([]int{2, 3, 4}, oneBasedIDs(res.Paths[0]))

	res, err = s.solver.Solve(newDirectedTestInstance(4, 2, triples))
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(int64(11), res.TotalCost)
	s.Equal(5.5, res.AverageCost())
}

func (s *SolverSuite) TestDirectedNegativeCycle() {
	_, err := s.solver.Solve(newDirectedTestInstance(3, 1, [][3]int64{{1, 2, -1}, {2, 1, -1}, {2, 3, 1}}))
	s.ErrorIs(err, ErrNegativeCycle)
}

func (s *SolverSuite) TestDirectedRespectsOrientation() {
	res, err := s.solver.Solve(newDirectedTestInstance(3, 1, [][3]int64{{2, 1, 1}, {2, 3, 1}}))
	s.Require().NoError(err)
	s.False(res.Feasible)
}

func (s *SolverSuite) TestInvalidInstances() {
	_, err := s.solver.Solve(newTestInstance(1, 1, nil))
	s.ErrorIs(err, da.ErrTooFewVertices)

	_, err = s.solver.Solve(newTestInstance(3, -1, nil))
	s.ErrorIs(err, da.ErrNegativePathCount)

	_, err = s.solver.Solve(newTestInstance(3, 1, [][3]int64{{1, 2, -4}}))
	s.ErrorIs(err, da.ErrNegativeUndirectedCost)

	in := newTestInstance(3, 1, nil)
	in.Sink = in.Source
	_, err = s.solver.Solve(in)
	s.ErrorIs(err, da.ErrSourceEqualsSink)
}

func (s *SolverSuite) TestCustomSourceAndSink() {
	in := newTestInstance(4, 1, [][3]int64{{1, 2, 1}, {2, 3, 1}, {3, 4, 1}})
	in.Source, in.Sink = 3, 1
	res, err := s.solver.Solve(in)
	s.Require().NoError(err)
	s.True(res.Feasible)
	s.Equal(int64(2), res.TotalCost)
	s.Equal([]da.Index{3, 2, 1}, res.Paths[0].GetVertices())
}

type randomEdge struct {
	a, b int
	cost int64
}

// randomGraph undirected simple graph without parallel edges or self loops, costs in [minCost, maxCost].
func randomGraph(rng *rand.Rand, n, m int, minCost, maxCost int64) []randomEdge {
	seen := make(map[[2]int]bool)
	edges := make([]randomEdge, 0, m)
	for len(edges) < m {
		a, b := rng.Intn(n), rng.Intn(n)
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			continue
		}
		seen[[2]int{a, b}] = true
		edges = append(edges, randomEdge{a: a, b: b, cost: minCost + rng.Int63n(maxCost-minCost+1)})
	}
	return edges
}

func instanceFromRandom(n, k int, edges []randomEdge) *da.Instance {
	input := make([]da.InputEdge, 0, len(edges))
	for _, e := range edges {
		input = append(input, da.NewInputEdge(da.Index(e.a), da.Index(e.b), e.cost))
	}
	return da.NewInstance(n, k, input)
}

func TestSolveSinglePathMatchesDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	solver := NewSolver(true, nil)

	for iter := 0; iter < 50; iter++ {
		n := 2 + rng.Intn(15)
		maxEdges := n * (n - 1) / 2
		edges := randomGraph(rng, n, rng.Intn(maxEdges+1), 0, 20)

		g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
		for i := 0; i < n; i++ {
			g.AddNode(simple.Node(i))
		}
		for _, e := range edges {
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(e.a), simple.Node(e.b), float64(e.cost)))
		}
		want := path.DijkstraFrom(simple.Node(0), g).WeightTo(int64(n - 1))

		res, err := solver.Solve(instanceFromRandom(n, 1, edges))
		require.NoError(t, err)
		if math.IsInf(want, 1) {
			require.False(t, res.Feasible, "iteration %d", iter)
			continue
		}
		require.True(t, res.Feasible, "iteration %d", iter)
		require.Equal(t, int64(want), res.TotalCost, "iteration %d", iter)
	}
}

func TestSolveMatchesReferenceMinCostFlow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	solver := NewSolver(true, nil)

	for iter := 0; iter < 100; iter++ {
		n := 2 + rng.Intn(10)
		maxEdges := n * (n - 1) / 2
		// positive costs keep flow cycles out of an optimal flow, so paths never repeat an edge
		edges := randomGraph(rng, n, rng.Intn(maxEdges+1), 1, 30)
		k := rng.Intn(5)

		wantFlow, wantCost := referenceMinCostFlow(n, edges, 0, n-1, k)

		res, err := solver.Solve(instanceFromRandom(n, k, edges))
		require.NoError(t, err, "iteration %d", iter)
		require.Equal(t, wantFlow == k, res.Feasible, "iteration %d", iter)
		if !res.Feasible {
			require.Equal(t, int64(wantFlow), res.Flow, "iteration %d", iter)
			continue
		}
		require.Equal(t, wantCost, res.TotalCost, "iteration %d", iter)
		require.Len(t, res.Paths, k)

		used := make(map[int]bool)
		for _, p := range res.Paths {
			vertices := p.GetVertices()
			require.Equal(t, da.Index(0), vertices[0])
			require.Equal(t, da.Index(n-1), vertices[len(vertices)-1])
			for _, id := range p.GetEdgeIDs() {
				require.False(t, used[id], "iteration %d: edge %d reused", iter, id)
				used[id] = true
			}
		}
	}
}

// referenceMinCostFlow plain SPFA min cost flow on a textbook residual graph, every
// undirected edge becomes two opposite unit arcs.
func referenceMinCostFlow(n int, edges []randomEdge, source, sink, limit int) (int, int64) {
	type arc struct {
		to, rev int
		cap     int
		cost    int64
	}
	adj := make([][]arc, n)
	addArc := func(u, v int, cost int64) {
		adj[u] = append(adj[u], arc{to: v, rev: len(adj[v]), cap: 1, cost: cost})
		adj[v] = append(adj[v], arc{to: u, rev: len(adj[u]) - 1, cap: 0, cost: -cost})
	}
	for _, e := range edges {
		addArc(e.a, e.b, e.cost)
		addArc(e.b, e.a, e.cost)
	}

	flow, cost := 0, int64(0)
	for flow < limit {
		dist := make([]int64, n)
		inQueue := make([]bool, n)
		prevNode := make([]int, n)
		prevArc := make([]int, n)
		for i := range dist {
			dist[i] = math.MaxInt64
		}
		dist[source] = 0
		queue := []int{source}
		inQueue[source] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			inQueue[u] = false
			for i, a := range adj[u] {
				if a.cap > 0 && dist[u]+a.cost < dist[a.to] {
					dist[a.to] = dist[u] + a.cost
					prevNode[a.to], prevArc[a.to] = u, i
					if !inQueue[a.to] {
						inQueue[a.to] = true
						queue = append(queue, a.to)
					}
				}
			}
		}
		if dist[sink] == math.MaxInt64 {
			break
		}
		for v := sink; v != source; v = prevNode[v] {
			a := &adj[prevNode[v]][prevArc[v]]
			a.cap--
			adj[v][a.rev].cap++
		}
		flow++
		cost += dist[sink]
	}
	return flow, cost
}
