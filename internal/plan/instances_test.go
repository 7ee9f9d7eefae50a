package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
	"github.com/MiaAltieri/mongodb-operator/internal/config"
)

func replicatedTopology() *config.Topology {
	return &config.Topology{
		ModelName: "dev",
		Units:     1,
	}
}

func shardedTopology() *config.Topology {
	return &config.Topology{
		ModelName: "prod",
		Units:     3,
		Routers:   1,
		Shards: []*config.ShardDefinition{
			{Name: "shard0", Replicas: 2},
			{Name: "shard1", Replicas: 1},
		},
	}
}

func instanceByName(t *testing.T, instances []*ApplicationInstance, name string) *ApplicationInstance {
	t.Helper()
	for _, inst := range instances {
		if inst.InstanceName == name {
			return inst
		}
	}
	t.Fatalf("instance %q not found", name)
	return nil
}

func TestExpandReplicatedGroup(t *testing.T) {
	instances, err := expandInstances(catalog.Default(), replicatedTopology())
	require.NoError(t, err)

	// One primary group plus the four auxiliary roles, no shards, no router.
	require.Len(t, instances, 5)

	primary := instanceByName(t, instances, "config-server")
	assert.Equal(t, catalog.RoleCoordinator, primary.Role)
	assert.Equal(t, 1, primary.ReplicaCount)
	assert.Equal(t, "replication", primary.Config["role"])

	for _, inst := range instances {
		assert.NotEqual(t, catalog.RoleShard, inst.Role)
		assert.NotEqual(t, catalog.RoleRouter, inst.Role)
	}
}

func TestExpandShardedCluster(t *testing.T) {
	instances, err := expandInstances(catalog.Default(), shardedTopology())
	require.NoError(t, err)
	require.Len(t, instances, 8)

	coordinator := instanceByName(t, instances, "config-server")
	assert.Equal(t, 3, coordinator.ReplicaCount)
	assert.Equal(t, "config-server", coordinator.Config["role"],
		"coordinator must run as a config server in a sharded topology")

	shard0 := instanceByName(t, instances, "shard0")
	assert.Equal(t, catalog.RoleShard, shard0.Role)
	assert.Equal(t, "shard0", shard0.ShardName)
	assert.Equal(t, 2, shard0.ReplicaCount)
	assert.Equal(t, "shard", shard0.Config["role"])

	router := instanceByName(t, instances, "mongos")
	assert.Equal(t, catalog.RoleRouter, router.Role)
	assert.Equal(t, 1, router.ReplicaCount)
}

func TestExpandConfigMergePrecedence(t *testing.T) {
	topo := shardedTopology()
	topo.Config = map[string]string{"profile": "testing", "auto-delete": "true"}
	topo.Shards[0].Config = map[string]string{"profile": "production"}

	instances, err := expandInstances(catalog.Default(), topo)
	require.NoError(t, err)

	shard0 := instanceByName(t, instances, "shard0")
	shard1 := instanceByName(t, instances, "shard1")

	// Per-shard overrides win over role-level overrides, which win over
	// catalog defaults. Untouched keys survive each layer.
	assert.Equal(t, "production", shard0.Config["profile"])
	assert.Equal(t, "testing", shard1.Config["profile"])
	assert.Equal(t, "true", shard0.Config["auto-delete"])
	assert.Equal(t, "shard", shard0.Config["role"])
}

func TestExpandDescriptorOverrides(t *testing.T) {
	topo := shardedTopology()
	topo.AppName = "cluster-meta"
	topo.SourceRef = "ch:mongodb"
	topo.Channel = "6/edge"
	topo.Revision = 42
	topo.Base = "ubuntu@22.04"
	topo.Storage = map[string]string{"mongodb": "10G"}

	instances, err := expandInstances(catalog.Default(), topo)
	require.NoError(t, err)

	coordinator := instanceByName(t, instances, "cluster-meta")
	assert.Equal(t, "6/edge", coordinator.Channel)
	assert.Equal(t, 42, coordinator.Revision)
	assert.Equal(t, "ubuntu@22.04", coordinator.Base)
	assert.Equal(t, "10G", coordinator.Storage["mongodb"])

	shard0 := instanceByName(t, instances, "shard0")
	assert.Equal(t, "6/edge", shard0.Channel)

	// Auxiliary roles keep their own catalog sources.
	agent := instanceByName(t, instances, "grafana-agent")
	assert.Equal(t, "latest/stable", agent.Channel)
	assert.Zero(t, agent.Revision)
}

func TestExpandValidation(t *testing.T) {
	t.Run("duplicate shard name", func(t *testing.T) {
		topo := replicatedTopology()
		topo.Shards = []*config.ShardDefinition{
			{Name: "s", Replicas: 1},
			{Name: "s", Replicas: 2},
		}
		instances, err := expandInstances(catalog.Default(), topo)
		assert.Nil(t, instances)
		var specErr *SpecValidationError
		require.ErrorAs(t, err, &specErr)
		assert.Contains(t, specErr.Error(), "duplicate shard name")
	})

	t.Run("non-positive coordinator units", func(t *testing.T) {
		topo := replicatedTopology()
		topo.Units = 0
		_, err := expandInstances(catalog.Default(), topo)
		var specErr *SpecValidationError
		require.ErrorAs(t, err, &specErr)
	})

	t.Run("negative router count", func(t *testing.T) {
		topo := replicatedTopology()
		topo.Routers = -1
		_, err := expandInstances(catalog.Default(), topo)
		var specErr *SpecValidationError
		require.ErrorAs(t, err, &specErr)
	})

	t.Run("non-positive shard replicas", func(t *testing.T) {
		topo := replicatedTopology()
		topo.Shards = []*config.ShardDefinition{{Name: "s", Replicas: 0}}
		_, err := expandInstances(catalog.Default(), topo)
		var specErr *SpecValidationError
		require.ErrorAs(t, err, &specErr)
	})

	t.Run("shard name colliding with a singleton", func(t *testing.T) {
		topo := shardedTopology()
		topo.Shards = append(topo.Shards, &config.ShardDefinition{Name: "mongos", Replicas: 1})
		_, err := expandInstances(catalog.Default(), topo)
		var specErr *SpecValidationError
		require.ErrorAs(t, err, &specErr)
		assert.Contains(t, specErr.Error(), "not unique")
	})
}

func TestMergeConfig(t *testing.T) {
	merged := mergeConfig(
		map[string]string{"a": "1", "b": "1"},
		map[string]string{"b": "2", "c": "2"},
		nil,
		map[string]string{"c": "3"},
	)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, merged)
}
