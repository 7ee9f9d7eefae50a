package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
)

func testEdge(provider, pep, consumer, cep string, tier catalog.Tier, prereqs ...string) *IntegrationEdge {
	return &IntegrationEdge{
		Provider:         provider,
		ProviderEndpoint: pep,
		Consumer:         consumer,
		ConsumerEndpoint: cep,
		Tier:             tier,
		Prerequisites:    prereqs,
	}
}

func orderedIDs(edges []*IntegrationEdge) []string {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.ID()
	}
	return ids
}

func TestScheduleOrdersByTier(t *testing.T) {
	edges := []*IntegrationEdge{
		testEdge("agent", "metrics", "a", "cos-agent", catalog.TierObservability),
		testEdge("ca", "certificates", "a", "certificates", catalog.TierTrust),
		testEdge("coord", "cluster-membership", "a", "sharding", catalog.TierStructural),
		testEdge("broker", "s3-credentials", "a", "s3-credentials", catalog.TierDataPlane),
	}

	ordered, err := scheduleEdges(edges)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"coord:cluster-membership->a:sharding",
		"ca:certificates->a:certificates",
		"broker:s3-credentials->a:s3-credentials",
		"agent:metrics->a:cos-agent",
	}, orderedIDs(ordered))
}

func TestScheduleBreaksTiesLexically(t *testing.T) {
	edges := []*IntegrationEdge{
		testEdge("coord", "cluster-membership", "zeta", "sharding", catalog.TierStructural),
		testEdge("coord", "cluster-membership", "alpha", "sharding", catalog.TierStructural),
		testEdge("coord", "cluster-membership", "mid", "sharding", catalog.TierStructural),
	}

	ordered, err := scheduleEdges(edges)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"coord:cluster-membership->alpha:sharding",
		"coord:cluster-membership->mid:sharding",
		"coord:cluster-membership->zeta:sharding",
	}, orderedIDs(ordered))
}

func TestSchedulePrerequisiteOverridesTier(t *testing.T) {
	// A structural edge declared dependent on a data-plane edge must wait for
	// it, even though its tier would sort it first.
	structural := testEdge("coord", "routing", "router", "cluster", catalog.TierStructural,
		"router:database->broker:mongodb-client")
	dataPlane := testEdge("router", "database", "broker", "mongodb-client", catalog.TierDataPlane)

	ordered, err := scheduleEdges([]*IntegrationEdge{structural, dataPlane})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"router:database->broker:mongodb-client",
		"coord:routing->router:cluster",
	}, orderedIDs(ordered))
}

func TestScheduleDetectsCycle(t *testing.T) {
	a := testEdge("x", "p", "y", "c", catalog.TierTrust, "y:p->z:c")
	b := testEdge("y", "p", "z", "c", catalog.TierTrust, "x:p->y:c")

	ordered, err := scheduleEdges([]*IntegrationEdge{a, b})
	assert.Nil(t, ordered)
	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "x:p->y:c", cycleErr.EdgeID)
}

func TestScheduleRejectsUnknownPrerequisite(t *testing.T) {
	e := testEdge("x", "p", "y", "c", catalog.TierTrust, "ghost:p->nowhere:c")

	_, err := scheduleEdges([]*IntegrationEdge{e})
	var specErr *SpecValidationError
	require.ErrorAs(t, err, &specErr)
	assert.Contains(t, specErr.Error(), "unknown prerequisite")
}

func TestScheduleEmptyEdgeSet(t *testing.T) {
	ordered, err := scheduleEdges(nil)
	require.NoError(t, err)
	assert.Empty(t, ordered)
}
