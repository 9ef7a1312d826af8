package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceValidate(t *testing.T) {
	edges := []InputEdge{NewInputEdge(0, 1, 3), NewInputEdge(1, 2, 4)}

	cases := []struct {
		name    string
		mutate  func(in *Instance)
		wantErr error
	}{
		{"valid", func(in *Instance) {}, nil},
		{"too few vertices", func(in *Instance) { in.NumVertices = 1 }, ErrTooFewVertices},
		{"negative k", func(in *Instance) { in.K = -1 }, ErrNegativePathCount},
		{"source equals sink", func(in *Instance) { in.Sink = in.Source }, ErrSourceEqualsSink},
		{"negative undirected", func(in *Instance) { in.Edges = []InputEdge{NewInputEdge(0, 2, -1)} }, ErrNegativeUndirectedCost},
		{"negative directed ok", func(in *Instance) {
			in.Directed = true
			in.Edges = []InputEdge{NewInputEdge(0, 2, -1)}
		}, nil},
		{"huge costs", func(in *Instance) {
			in.Edges = []InputEdge{NewInputEdge(0, 1, 6e16), NewInputEdge(1, 2, 6e16)}
		}, ErrCostTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInstance(3, 1, edges)
			tc.mutate(in)
			err := in.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestInstanceEndpointOutOfRange(t *testing.T) {
	in := NewInstance(2, 1, []InputEdge{NewInputEdge(0, 5, 1)})
	require.Error(t, in.Validate())
}

func TestInstanceBuildFlowGraph(t *testing.T) {
	in := NewInstance(3, 1, []InputEdge{NewInputEdge(0, 1, 3), NewInputEdge(1, 2, 4)})
	assert.Equal(t, Index(2), in.Sink)

	g := in.BuildFlowGraph()
	assert.Equal(t, 2, g.NumberOfEdges())
	assert.Equal(t, 8, g.NumberOfArcs())
	assert.Equal(t, 1, g.GetArcOfVertex(2, 0).GetID())

	in.Directed = true
	g = in.BuildFlowGraph()
	assert.Equal(t, 4, g.NumberOfArcs())
}
