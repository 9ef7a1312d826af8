package mincostflow

import (
	"errors"
	"fmt"

	da "github.com/lintang-b-s/osm-disjoint-paths/pkg/datastructure"
)

var ErrInvalidFlow = errors.New("invalid flow")

// validateFlow checks the flow invariants of the residual graph (see CLRS section 26.1 & 26.2):
// capacity constraint, skew symmetry of every arc pair and flow conservation.
func validateFlow(graph *da.FlowGraph, source, sink da.Index, flowValue int64) error {
	var err error
	netOutflow := make([]int64, graph.NumberOfVertices())

	graph.ForEachArc(func(ref da.ArcRef, a *da.Arc) {
		if err != nil {
			return
		}
		twin := graph.GetPairedArc(ref)
		switch {
		case a.GetCapacity() < 0:
			err = fmt.Errorf("%w: arc %d->%d (edge %d) has negative residual capacity %d",
				ErrInvalidFlow, a.GetFrom(), a.GetTo(), a.GetID(), a.GetCapacity())
		case a.GetFlow() != -twin.GetFlow():
			err = fmt.Errorf("%w: arc %d->%d (edge %d) flow %d, twin flow %d",
				ErrInvalidFlow, a.GetFrom(), a.GetTo(), a.GetID(), a.GetFlow(), twin.GetFlow())
		case a.GetCost() != -twin.GetCost():
			err = fmt.Errorf("%w: arc %d->%d (edge %d) cost %d, twin cost %d",
				ErrInvalidFlow, a.GetFrom(), a.GetTo(), a.GetID(), a.GetCost(), twin.GetCost())
		}
		// twins carry the negated flow, so summing every arc gives outgoing minus incoming
		netOutflow[a.GetFrom()] += a.GetFlow()
	})
	if err != nil {
		return err
	}

	for u, net := range netOutflow {
		v := da.Index(u)
		switch {
		case v == source && net != flowValue:
			return fmt.Errorf("%w: source sends %d, expected %d", ErrInvalidFlow, net, flowValue)
		case v == sink && net != -flowValue:
			return fmt.Errorf("%w: sink receives %d, expected %d", ErrInvalidFlow, -net, flowValue)
		case v != source && v != sink && net != 0:
			return fmt.Errorf("%w: flow conservation violated at vertex %d, net outflow %d", ErrInvalidFlow, v, net)
		}
	}
	return nil
}

// checkReducedCosts every residual arc leaving a reached vertex must have a non-negative
// reduced cost under the refreshed potentials, otherwise the potentials are not valid.
func checkReducedCosts(graph *da.FlowGraph, tree *ShortestPathTree, potentials []int64) error {
	var err error
	graph.ForEachArc(func(_ da.ArcRef, a *da.Arc) {
		if err != nil || a.GetCapacity() <= 0 || !tree.Reached(a.GetFrom()) {
			return
		}
		reduced := a.GetCost() + potentials[a.GetFrom()] - potentials[a.GetTo()]
		if reduced < 0 {
			err = fmt.Errorf("%w: negative reduced cost %d on arc %d->%d (edge %d)",
				ErrInvalidFlow, reduced, a.GetFrom(), a.GetTo(), a.GetID())
		}
	})
	return err
}
