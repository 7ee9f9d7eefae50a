package plan

import (
	"fmt"
	"sort"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
	"github.com/MiaAltieri/mongodb-operator/internal/config"
)

// expandInstances performs the first planning pass: one concrete instance per
// catalog entry, fanned out over the caller's shard definitions. Expansion is
// keyed by shard name, never by list position, so re-plans stay stable when
// shards are added or removed.
func expandInstances(cat *catalog.Catalog, topo *config.Topology) ([]*ApplicationInstance, error) {
	if err := validateTopology(topo); err != nil {
		return nil, err
	}

	// The presence of shards or routers makes this a sharded topology; the
	// coordinator then runs as a config server instead of a plain replicated
	// group.
	sharded := len(topo.Shards) > 0 || topo.Routers > 0

	var instances []*ApplicationInstance
	for _, spec := range cat.Entries() {
		switch spec.Role {
		case catalog.RoleShard:
			for _, sd := range topo.Shards {
				inst := newDataInstance(spec, topo)
				inst.InstanceName = sd.Name
				inst.ShardName = sd.Name
				inst.ReplicaCount = sd.Replicas
				inst.Config = mergeConfig(spec.ConfigDefaults, topo.Config, sd.Config)
				instances = append(instances, inst)
			}

		case catalog.RoleCoordinator:
			inst := newDataInstance(spec, topo)
			if topo.AppName != "" {
				inst.InstanceName = topo.AppName
			}
			inst.ReplicaCount = topo.Units
			defaults := spec.ConfigDefaults
			if sharded {
				defaults = mergeConfig(defaults, map[string]string{"role": "config-server"})
			}
			inst.Config = mergeConfig(defaults, topo.Config)
			instances = append(instances, inst)

		case catalog.RoleRouter:
			if topo.Routers == 0 {
				continue
			}
			inst := newInstance(spec)
			inst.ReplicaCount = topo.Routers
			instances = append(instances, inst)

		default:
			instances = append(instances, newInstance(spec))
		}
	}

	if err := validateInstances(instances); err != nil {
		return nil, err
	}
	return instances, nil
}

// newInstance resolves an instance straight from a catalog spec.
func newInstance(spec catalog.ApplicationSpec) *ApplicationInstance {
	return &ApplicationInstance{
		InstanceName: spec.BaseName,
		Role:         spec.Role,
		SourceRef:    spec.SourceRef,
		Channel:      spec.Channel,
		ReplicaCount: spec.ReplicaCount,
		Config:       mergeConfig(spec.ConfigDefaults),
		Constraints:  spec.Constraints,
	}
}

// newDataInstance additionally applies the descriptor's source, base and
// storage overrides, which target the data-bearing database roles.
func newDataInstance(spec catalog.ApplicationSpec, topo *config.Topology) *ApplicationInstance {
	inst := newInstance(spec)
	if topo.SourceRef != "" {
		inst.SourceRef = topo.SourceRef
	}
	if topo.Channel != "" {
		inst.Channel = topo.Channel
	}
	inst.Revision = topo.Revision
	inst.Base = topo.Base
	if topo.Constraints != "" {
		inst.Constraints = topo.Constraints
	}
	if len(topo.Storage) > 0 {
		inst.Storage = mergeConfig(topo.Storage)
	}
	return inst
}

// mergeConfig flattens configuration layers left to right, later keys
// replacing earlier ones wholesale. There is no recursive merge: an override
// replaces the whole key.
func mergeConfig(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

func validateTopology(topo *config.Topology) error {
	if topo.Units <= 0 {
		return &SpecValidationError{Reason: fmt.Sprintf("coordinator replica count must be positive, got %d", topo.Units)}
	}
	if topo.Routers < 0 {
		return &SpecValidationError{Reason: fmt.Sprintf("router replica count must not be negative, got %d", topo.Routers)}
	}

	seen := make(map[string]bool, len(topo.Shards))
	for _, sd := range topo.Shards {
		if sd.Name == "" {
			return &SpecValidationError{Reason: "shard with empty name"}
		}
		if seen[sd.Name] {
			return &SpecValidationError{Reason: fmt.Sprintf("duplicate shard name %q", sd.Name)}
		}
		seen[sd.Name] = true
		if sd.Replicas <= 0 {
			return &SpecValidationError{Reason: fmt.Sprintf("shard %q replica count must be positive, got %d", sd.Name, sd.Replicas)}
		}
	}
	return nil
}

func validateInstances(instances []*ApplicationInstance) error {
	names := make(map[string]bool, len(instances))
	coordinators := 0
	for _, inst := range instances {
		if names[inst.InstanceName] {
			return &SpecValidationError{Reason: fmt.Sprintf("instance name %q is not unique within the topology", inst.InstanceName)}
		}
		names[inst.InstanceName] = true
		if inst.ReplicaCount <= 0 {
			return &SpecValidationError{Reason: fmt.Sprintf("instance %q replica count must be positive, got %d", inst.InstanceName, inst.ReplicaCount)}
		}
		if inst.Role == catalog.RoleCoordinator {
			coordinators++
		}
	}
	if coordinators != 1 {
		return &SpecValidationError{Reason: fmt.Sprintf("topology must contain exactly one coordinator, got %d", coordinators)}
	}
	return nil
}

// sortedShardInstances returns the shard instances ordered by name, the
// stable order every shard fan-out uses.
func sortedShardInstances(instances []*ApplicationInstance) []*ApplicationInstance {
	var shards []*ApplicationInstance
	for _, inst := range instances {
		if inst.Role == catalog.RoleShard {
			shards = append(shards, inst)
		}
	}
	sort.Slice(shards, func(i, j int) bool { return shards[i].InstanceName < shards[j].InstanceName })
	return shards
}
