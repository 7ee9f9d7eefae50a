package plan

import (
	"fmt"
	"sort"
)

// scheduleEdges performs the final planning pass: a total order over the edge
// set. The order is a stable topological sort of the prerequisite relation
// where, among ready edges, the lowest (tier, instance pair, id) key is
// emitted first. A prerequisite can therefore pull an edge behind a higher
// tier, but never the reverse.
func scheduleEdges(edges []*IntegrationEdge) ([]*IntegrationEdge, error) {
	byID := make(map[string]*IntegrationEdge, len(edges))
	for _, e := range edges {
		byID[e.ID()] = e
	}

	indegree := make(map[string]int, len(edges))
	dependents := make(map[string][]string)
	for _, e := range edges {
		for _, pre := range e.Prerequisites {
			if _, ok := byID[pre]; !ok {
				return nil, &SpecValidationError{Reason: fmt.Sprintf("edge %q declares unknown prerequisite %q", e.ID(), pre)}
			}
			indegree[e.ID()]++
			dependents[pre] = append(dependents[pre], e.ID())
		}
	}

	var ready []*IntegrationEdge
	for _, e := range edges {
		if indegree[e.ID()] == 0 {
			ready = append(ready, e)
		}
	}

	less := func(a, b *IntegrationEdge) bool {
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.pairKey() != b.pairKey() {
			return a.pairKey() < b.pairKey()
		}
		return a.ID() < b.ID()
	}

	ordered := make([]*IntegrationEdge, 0, len(edges))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, next)

		for _, depID := range dependents[next.ID()] {
			indegree[depID]--
			if indegree[depID] == 0 {
				ready = append(ready, byID[depID])
			}
		}
	}

	if len(ordered) != len(edges) {
		// Every unscheduled edge sits on a prerequisite cycle; report the
		// lexically smallest for a deterministic message.
		var stuck string
		for id, deg := range indegree {
			if deg > 0 && (stuck == "" || id < stuck) {
				stuck = id
			}
		}
		return nil, &CyclicDependencyError{EdgeID: stuck}
	}
	return ordered, nil
}
