package plan

import (
	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
)

// auxiliaryRoles is the fixed fan-out order of the auxiliary integrations.
var auxiliaryRoles = []catalog.Role{
	catalog.RoleCertAuthority,
	catalog.RoleAccessBroker,
	catalog.RoleBackupTarget,
	catalog.RoleObservability,
}

// buildEdges performs the second planning pass: the integration edges required
// between the expanded instances. The pass is pure; an identical instance set
// always yields an identical edge set.
func buildEdges(instances []*ApplicationInstance) ([]*IntegrationEdge, error) {
	var coordinator, router *ApplicationInstance
	byRole := make(map[catalog.Role]*ApplicationInstance)
	for _, inst := range instances {
		switch inst.Role {
		case catalog.RoleCoordinator:
			coordinator = inst
		case catalog.RoleRouter:
			router = inst
		case catalog.RoleShard:
			// handled via sortedShardInstances below
		default:
			byRole[inst.Role] = inst
		}
	}
	if coordinator == nil {
		return nil, &SpecValidationError{Reason: "topology has no coordinator instance"}
	}
	shards := sortedShardInstances(instances)

	var edges []*IntegrationEdge

	// Structural tier: every shard joins the coordinator's membership, and
	// the router (when present) attaches to the coordinator's routing
	// metadata.
	for _, shard := range shards {
		e, err := edgeBetween(coordinator, shard)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if router != nil {
		e, err := edgeBetween(coordinator, router)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	// Auxiliary fan-out is total: each auxiliary role present integrates with
	// every data-bearing instance.
	dataInstances := make([]*ApplicationInstance, 0, len(shards)+2)
	dataInstances = append(dataInstances, coordinator)
	dataInstances = append(dataInstances, shards...)
	if router != nil {
		dataInstances = append(dataInstances, router)
	}
	for _, role := range auxiliaryRoles {
		aux, ok := byRole[role]
		if !ok {
			continue
		}
		for _, data := range dataInstances {
			e, err := edgeBetween(aux, data)
			if err != nil {
				return nil, err
			}
			edges = append(edges, e)
		}
	}
	return edges, nil
}

// edgeBetween resolves the role-correct endpoint pair for two instances. The
// endpoint table decides which side provides; argument order is irrelevant.
func edgeBetween(a, b *ApplicationInstance) (*IntegrationEdge, error) {
	pair, ok := catalog.ResolveEndpoints(a.Role, b.Role)
	if !ok {
		return nil, &EndpointResolutionError{A: a.Role, B: b.Role}
	}
	provider, consumer := a, b
	if pair.ProviderRole == b.Role {
		provider, consumer = b, a
	}
	return &IntegrationEdge{
		Provider:         provider.InstanceName,
		ProviderRole:     provider.Role,
		ProviderEndpoint: pair.ProviderEndpoint,
		Consumer:         consumer.InstanceName,
		ConsumerRole:     consumer.Role,
		ConsumerEndpoint: pair.ConsumerEndpoint,
		Tier:             pair.Tier,
	}, nil
}
