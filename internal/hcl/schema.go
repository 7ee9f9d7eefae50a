package hcl

// shardBlock is a `shard "<name>" { ... }` block inside a topology.
type shardBlock struct {
	Name     string            `hcl:"name,label"`
	Replicas int               `hcl:"replicas"`
	Config   map[string]string `hcl:"config,optional"`
}

// topologyBlock is the HCL-specific schema of a `topology "<model>"` block.
// Pointer fields distinguish "omitted" from an explicit zero so defaults can
// be applied during translation.
type topologyBlock struct {
	ModelName   string            `hcl:"model_name,label"`
	App         string            `hcl:"app,optional"`
	Source      string            `hcl:"source,optional"`
	Channel     string            `hcl:"channel,optional"`
	Revision    int               `hcl:"revision,optional"`
	Base        string            `hcl:"base,optional"`
	Units       *int              `hcl:"units,optional"`
	Config      map[string]string `hcl:"config,optional"`
	Constraints string            `hcl:"constraints,optional"`
	Storage     map[string]string `hcl:"storage,optional"`
	Routers     int               `hcl:"routers,optional"`
	Shards      []*shardBlock     `hcl:"shard,block"`
}

// document is the top-level structure of a topology descriptor file.
type document struct {
	Topology *topologyBlock `hcl:"topology,block"`
}
