package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	t.Run("contains every role exactly once", func(t *testing.T) {
		seen := map[Role]int{}
		for _, e := range c.Entries() {
			seen[e.Role]++
		}
		for _, role := range []Role{
			RoleCoordinator, RoleShard, RoleRouter,
			RoleCertAuthority, RoleAccessBroker, RoleBackupTarget, RoleObservability,
		} {
			assert.Equal(t, 1, seen[role], "role %s", role)
		}
	})

	t.Run("entry lookup", func(t *testing.T) {
		spec, ok := c.Entry(RoleCoordinator)
		require.True(t, ok)
		assert.Equal(t, "config-server", spec.BaseName)
		assert.Equal(t, "replication", spec.ConfigDefaults["role"])

		_, ok = c.Entry(Role("nope"))
		assert.False(t, ok)
	})

	t.Run("entries are a copy", func(t *testing.T) {
		entries := c.Entries()
		entries[0].BaseName = "mutated"
		spec, ok := c.Entry(entries[0].Role)
		require.True(t, ok)
		assert.NotEqual(t, "mutated", spec.BaseName)
	})
}

func TestDataBearing(t *testing.T) {
	assert.True(t, RoleCoordinator.DataBearing())
	assert.True(t, RoleShard.DataBearing())
	assert.True(t, RoleRouter.DataBearing())
	assert.False(t, RoleCertAuthority.DataBearing())
	assert.False(t, RoleAccessBroker.DataBearing())
	assert.False(t, RoleBackupTarget.DataBearing())
	assert.False(t, RoleObservability.DataBearing())
}

func TestResolveEndpoints(t *testing.T) {
	t.Run("structural pairs", func(t *testing.T) {
		p, ok := ResolveEndpoints(RoleCoordinator, RoleShard)
		require.True(t, ok)
		assert.Equal(t, "cluster-membership", p.ProviderEndpoint)
		assert.Equal(t, "sharding", p.ConsumerEndpoint)
		assert.Equal(t, TierStructural, p.Tier)

		p, ok = ResolveEndpoints(RoleCoordinator, RoleRouter)
		require.True(t, ok)
		assert.Equal(t, "routing", p.ProviderEndpoint)
		assert.Equal(t, "cluster", p.ConsumerEndpoint)
	})

	t.Run("order independent", func(t *testing.T) {
		a, ok := ResolveEndpoints(RoleCertAuthority, RoleShard)
		require.True(t, ok)
		b, ok := ResolveEndpoints(RoleShard, RoleCertAuthority)
		require.True(t, ok)
		assert.Equal(t, a, b)
	})

	t.Run("auxiliary tiers", func(t *testing.T) {
		cases := []struct {
			aux  Role
			tier Tier
		}{
			{RoleCertAuthority, TierTrust},
			{RoleAccessBroker, TierDataPlane},
			{RoleBackupTarget, TierDataPlane},
			{RoleObservability, TierObservability},
		}
		for _, tc := range cases {
			for _, data := range []Role{RoleCoordinator, RoleShard, RoleRouter} {
				p, ok := ResolveEndpoints(tc.aux, data)
				require.True(t, ok, "%s <-> %s", tc.aux, data)
				assert.Equal(t, tc.tier, p.Tier, "%s <-> %s", tc.aux, data)
			}
		}
	})

	t.Run("broker consumes, instances provide", func(t *testing.T) {
		p, ok := ResolveEndpoints(RoleAccessBroker, RoleRouter)
		require.True(t, ok)
		assert.Equal(t, RoleRouter, p.ProviderRole)
		assert.Equal(t, "database", p.ProviderEndpoint)
		assert.Equal(t, RoleAccessBroker, p.ConsumerRole)
		assert.Equal(t, "mongodb-client", p.ConsumerEndpoint)
	})

	t.Run("unmapped pair", func(t *testing.T) {
		_, ok := ResolveEndpoints(RoleCertAuthority, RoleAccessBroker)
		assert.False(t, ok)

		_, ok = ResolveEndpoints(RoleShard, RoleShard)
		assert.False(t, ok)
	})
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "structural", TierStructural.String())
	assert.Equal(t, "trust", TierTrust.String())
	assert.Equal(t, "data-plane", TierDataPlane.String())
	assert.Equal(t, "observability", TierObservability.String())
	assert.Equal(t, "unknown", Tier(9).String())
}
