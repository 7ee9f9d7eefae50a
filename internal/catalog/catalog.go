// Package catalog holds the static description of every application role a
// topology can contain: its default spec, its cardinality, and the endpoint
// pairs it integrates over. The catalog is populated once at startup and
// read-only afterwards, the same way module definitions are registered before
// a run begins.
package catalog

// Role identifies one application role within a topology.
type Role string

const (
	// RoleCoordinator is the instance holding cluster-wide membership and
	// routing metadata. In a non-sharded deployment it is the single
	// replicated group itself.
	RoleCoordinator Role = "coordinator"
	// RoleShard is an independently replicated data partition.
	RoleShard Role = "shard"
	// RoleRouter is the stateless tier routing client operations to shards.
	RoleRouter Role = "router"
	// RoleCertAuthority issues the TLS material every instance trusts.
	RoleCertAuthority Role = "certificate-authority"
	// RoleAccessBroker mediates client credentials for the cluster.
	RoleAccessBroker Role = "access-broker"
	// RoleBackupTarget provides object-storage credentials for backups.
	RoleBackupTarget Role = "backup-target"
	// RoleObservability collects metrics and logs from every instance.
	RoleObservability Role = "observability-agent"
)

// DataBearing reports whether the role carries or routes cluster data and is
// therefore the target of auxiliary fan-out edges.
func (r Role) DataBearing() bool {
	switch r {
	case RoleCoordinator, RoleShard, RoleRouter:
		return true
	}
	return false
}

// ApplicationSpec is one catalog entry: the defaults an instance of the role
// is resolved from. Specs are immutable once the catalog is built.
type ApplicationSpec struct {
	Role           Role
	BaseName       string
	SourceRef      string
	Channel        string
	ReplicaCount   int
	ConfigDefaults map[string]string
	Constraints    string
}

// Catalog is an ordered collection of role specs. Order matters: instance
// expansion walks entries in catalog order so plans are reproducible.
type Catalog struct {
	entries []ApplicationSpec
}

// Default returns the built-in catalog for a MongoDB-style deployment. Base
// names follow the upstream operator ecosystem so that descriptions read the
// same as a live deployment would.
func Default() *Catalog {
	return &Catalog{entries: []ApplicationSpec{
		{
			Role:         RoleCoordinator,
			BaseName:     "config-server",
			SourceRef:    "ch:mongodb",
			Channel:      "6/stable",
			ReplicaCount: 1,
			ConfigDefaults: map[string]string{
				"role": "replication",
			},
		},
		{
			Role:         RoleShard,
			BaseName:     "shard",
			SourceRef:    "ch:mongodb",
			Channel:      "6/stable",
			ReplicaCount: 1,
			ConfigDefaults: map[string]string{
				"role": "shard",
			},
		},
		{
			Role:         RoleRouter,
			BaseName:     "mongos",
			SourceRef:    "ch:mongos",
			Channel:      "6/stable",
			ReplicaCount: 1,
		},
		{
			Role:         RoleCertAuthority,
			BaseName:     "self-signed-certificates",
			SourceRef:    "ch:self-signed-certificates",
			Channel:      "latest/stable",
			ReplicaCount: 1,
		},
		{
			Role:         RoleAccessBroker,
			BaseName:     "data-integrator",
			SourceRef:    "ch:data-integrator",
			Channel:      "latest/stable",
			ReplicaCount: 1,
			ConfigDefaults: map[string]string{
				"database-name": "admin",
			},
		},
		{
			Role:         RoleBackupTarget,
			BaseName:     "s3-integrator",
			SourceRef:    "ch:s3-integrator",
			Channel:      "latest/stable",
			ReplicaCount: 1,
			ConfigDefaults: map[string]string{
				"bucket": "mongodb-backups",
			},
		},
		{
			Role:         RoleObservability,
			BaseName:     "grafana-agent",
			SourceRef:    "ch:grafana-agent",
			Channel:      "latest/stable",
			ReplicaCount: 1,
		},
	}}
}

// Entries returns the catalog entries in expansion order. The slice is a copy;
// callers cannot mutate the catalog through it.
func (c *Catalog) Entries() []ApplicationSpec {
	out := make([]ApplicationSpec, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the spec for the given role.
func (c *Catalog) Entry(role Role) (ApplicationSpec, bool) {
	for _, e := range c.entries {
		if e.Role == role {
			return e, true
		}
	}
	return ApplicationSpec{}, false
}
