package catalog

// Tier classifies an integration edge for scheduling. Lower tiers are applied
// first: the cluster must be structurally assembled before trust material is
// exchanged, trust before data-plane access, and observability last.
type Tier int

const (
	TierStructural Tier = iota
	TierTrust
	TierDataPlane
	TierObservability
)

func (t Tier) String() string {
	switch t {
	case TierStructural:
		return "structural"
	case TierTrust:
		return "trust"
	case TierDataPlane:
		return "data-plane"
	case TierObservability:
		return "observability"
	}
	return "unknown"
}

// EndpointPair names the two role-specific endpoints an integration edge
// connects, together with the tier the edge belongs to. Direction is fixed by
// the table: ResolveEndpoints returns the same pair regardless of argument
// order.
type EndpointPair struct {
	ProviderRole     Role
	ProviderEndpoint string
	ConsumerRole     Role
	ConsumerEndpoint string
	Tier             Tier
}

// endpointTable is the fixed role×role endpoint mapping. Structural endpoint
// names are part of the engine's contract; auxiliary names follow the
// upstream operator's relation names.
var endpointTable = buildEndpointTable()

func buildEndpointTable() []EndpointPair {
	table := []EndpointPair{
		{RoleCoordinator, "cluster-membership", RoleShard, "sharding", TierStructural},
		{RoleCoordinator, "routing", RoleRouter, "cluster", TierStructural},
	}

	// Auxiliary fan-out rows are identical for every data-bearing role.
	for _, data := range []Role{RoleCoordinator, RoleShard, RoleRouter} {
		table = append(table,
			EndpointPair{RoleCertAuthority, "certificates", data, "certificates", TierTrust},
			EndpointPair{data, "database", RoleAccessBroker, "mongodb-client", TierDataPlane},
			EndpointPair{RoleBackupTarget, "s3-credentials", data, "s3-credentials", TierDataPlane},
			EndpointPair{data, "metrics", RoleObservability, "cos-agent", TierObservability},
		)
	}
	return table
}

// ResolveEndpoints looks up the endpoint pair connecting two roles. The
// second return value is false when the table defines no mapping for the
// pair.
func ResolveEndpoints(a, b Role) (EndpointPair, bool) {
	for _, p := range endpointTable {
		if (p.ProviderRole == a && p.ConsumerRole == b) || (p.ProviderRole == b && p.ConsumerRole == a) {
			return p, true
		}
	}
	return EndpointPair{}, false
}
