package plan

import (
	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
)

// RolePair identifies integration edges by the unordered pair of roles they
// connect.
type RolePair struct {
	A, B catalog.Role
}

func (p RolePair) matches(e *IntegrationEdge) bool {
	return (e.ProviderRole == p.A && e.ConsumerRole == p.B) ||
		(e.ProviderRole == p.B && e.ConsumerRole == p.A)
}

// OrderingRule declares that every edge connecting the Edge role pair must be
// scheduled after every edge connecting the After role pair. Rules whose
// pairs match no edge in the plan are inert.
type OrderingRule struct {
	Edge  RolePair
	After RolePair
}

// DefaultOrderingRules is the engine's standing ordering policy: the
// router-to-coordinator edge waits until the access broker holds the router's
// identity, so the router is not reconciled twice. Callers with different
// executor semantics may supply their own rule set.
func DefaultOrderingRules() []OrderingRule {
	return []OrderingRule{{
		Edge:  RolePair{A: catalog.RoleCoordinator, B: catalog.RoleRouter},
		After: RolePair{A: catalog.RoleAccessBroker, B: catalog.RoleRouter},
	}}
}

// applyOrderingRules records each rule as explicit prerequisite edge IDs, the
// inspectable form the scheduler consumes.
func applyOrderingRules(edges []*IntegrationEdge, rules []OrderingRule) {
	for _, rule := range rules {
		var required []string
		for _, e := range edges {
			if rule.After.matches(e) {
				required = append(required, e.ID())
			}
		}
		if len(required) == 0 {
			continue
		}
		for _, e := range edges {
			if !rule.Edge.matches(e) {
				continue
			}
			for _, id := range required {
				if id != e.ID() {
					e.Prerequisites = append(e.Prerequisites, id)
				}
			}
		}
	}
}
