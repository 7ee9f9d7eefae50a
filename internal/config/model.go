package config

// Topology is the unified, format-agnostic description of one database
// deployment: a single replicated group or a sharded cluster, plus the
// auxiliary integrations planned around it. Loaders for each supported
// descriptor format translate into this model; nothing downstream of a
// Loader ever sees format-specific types.
type Topology struct {
	// ModelName scopes every instance name produced from this descriptor.
	ModelName string
	// AppName overrides the catalog base name of the coordinator. Optional.
	AppName string
	// SourceRef and Channel override the catalog source for the data-bearing
	// roles, e.g. "ch:mongodb" / "6/stable". Optional.
	SourceRef string
	Channel   string
	// Revision pins an exact source revision. Zero means "track the channel".
	Revision int
	// Base is the machine base the data-bearing instances run on. Optional.
	Base string
	// Units is the replica count of the coordinator group.
	Units int
	// Config holds role-level configuration overrides for the data-bearing
	// roles. Keys replace catalog defaults wholesale; there is no deep merge.
	Config map[string]string
	// Constraints is an opaque placement constraint string. Optional.
	Constraints string
	// Storage maps storage names to their directives for data-bearing
	// instances. Optional.
	Storage map[string]string
	// Routers is the replica count of the stateless routing tier. Zero means
	// no router is deployed.
	Routers int
	// Shards lists the shard groups of a sharded topology. Empty means the
	// coordinator group serves as a single replicated deployment.
	Shards []*ShardDefinition
}

// ShardDefinition describes one shard group requested by the caller.
type ShardDefinition struct {
	// Name must be unique within the topology; the shard's instance is named
	// after it so plans stay stable when shards are added or removed.
	Name string
	// Replicas is the shard's replica count.
	Replicas int
	// Config holds per-shard configuration overrides. They are applied after
	// role-level overrides, later values replacing earlier keys.
	Config map[string]string
}
