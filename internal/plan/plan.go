// Package plan turns a topology descriptor into an ordered application plan:
// it expands the role catalog into concrete application instances, derives the
// integration edges between them, and computes a prerequisite-respecting total
// order for an external executor to realize. Planning is synchronous, pure and
// all-or-nothing; a plan that fails to build hands nothing to an executor.
package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
	"github.com/MiaAltieri/mongodb-operator/internal/config"
	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
)

// ApplicationInstance is one concrete application resolved from a catalog
// entry, with its configuration fully merged.
type ApplicationInstance struct {
	InstanceName string
	Role         catalog.Role
	// ShardName is the originating shard definition name. Empty for every
	// role other than shard.
	ShardName    string
	SourceRef    string
	Channel      string
	Revision     int
	Base         string
	ReplicaCount int
	Config       map[string]string
	Constraints  string
	Storage      map[string]string
}

// IntegrationEdge declares that two instances must exchange connection or
// trust information through the named endpoints.
type IntegrationEdge struct {
	Provider         string
	ProviderRole     catalog.Role
	ProviderEndpoint string
	Consumer         string
	ConsumerRole     catalog.Role
	ConsumerEndpoint string
	Tier             catalog.Tier
	// Prerequisites lists edge IDs that must be scheduled before this edge.
	Prerequisites []string
}

// ID returns the canonical identifier of the edge, stable across re-plans.
func (e *IntegrationEdge) ID() string {
	return fmt.Sprintf("%s:%s->%s:%s", e.Provider, e.ProviderEndpoint, e.Consumer, e.ConsumerEndpoint)
}

// pairKey is the lexical instance-pair tie-breaker used by the scheduler.
func (e *IntegrationEdge) pairKey() string {
	if e.Provider < e.Consumer {
		return e.Provider + "/" + e.Consumer
	}
	return e.Consumer + "/" + e.Provider
}

// TopologyPlan is the output of one planning invocation: instances in catalog
// expansion order, edges in scheduled order. A plan is built fresh per
// invocation and never mutated in place.
type TopologyPlan struct {
	// ID distinguishes plan generations for convergence tracking. It is
	// excluded from structural comparison between re-plans.
	ID        string
	Model     string
	Instances []*ApplicationInstance
	Edges     []*IntegrationEdge
}

// EdgeIDs returns the plan's edge identifiers in scheduled order.
func (p *TopologyPlan) EdgeIDs() []string {
	ids := make([]string, len(p.Edges))
	for i, e := range p.Edges {
		ids[i] = e.ID()
	}
	return ids
}

// Build runs the full planning pipeline over a descriptor. Any validation,
// endpoint resolution or scheduling failure aborts the build before a single
// instance or edge is exposed.
func Build(ctx context.Context, cat *catalog.Catalog, topo *config.Topology, rules []OrderingRule) (*TopologyPlan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: expanding catalog into application instances.")

	instances, err := expandInstances(cat, topo)
	if err != nil {
		return nil, fmt.Errorf("failed to expand topology: %w", err)
	}
	logger.Debug("Build: instance expansion complete.", "instance_count", len(instances))

	edges, err := buildEdges(instances)
	if err != nil {
		return nil, fmt.Errorf("failed to derive integration edges: %w", err)
	}
	logger.Debug("Build: integration edges derived.", "edge_count", len(edges))

	applyOrderingRules(edges, rules)
	logger.Debug("Build: ordering rules applied.", "rule_count", len(rules))

	scheduled, err := scheduleEdges(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule integration edges: %w", err)
	}
	logger.Debug("Build: scheduling complete.")

	return &TopologyPlan{
		ID:        uuid.NewString(),
		Model:     topo.ModelName,
		Instances: instances,
		Edges:     scheduled,
	}, nil
}

// InstanceDescription is the per-instance endpoint summary exposed to
// callers, keyed endpoint name to the peer instances connected through it.
type InstanceDescription struct {
	InstanceName      string            `json:"instanceName"`
	ProvidesEndpoints map[string]string `json:"providesEndpoints"`
	RequiresEndpoints map[string]string `json:"requiresEndpoints"`
}

// Describe summarizes which endpoints every instance provides and requires
// once the plan's edges are realized.
func (p *TopologyPlan) Describe() []InstanceDescription {
	provides := make(map[string]map[string][]string)
	requires := make(map[string]map[string][]string)
	for _, inst := range p.Instances {
		provides[inst.InstanceName] = make(map[string][]string)
		requires[inst.InstanceName] = make(map[string][]string)
	}

	for _, e := range p.Edges {
		if m, ok := provides[e.Provider]; ok {
			m[e.ProviderEndpoint] = append(m[e.ProviderEndpoint], e.Consumer)
		}
		if m, ok := requires[e.Consumer]; ok {
			m[e.ConsumerEndpoint] = append(m[e.ConsumerEndpoint], e.Provider)
		}
	}

	join := func(peersByEndpoint map[string][]string) map[string]string {
		out := make(map[string]string, len(peersByEndpoint))
		for endpoint, peers := range peersByEndpoint {
			sort.Strings(peers)
			out[endpoint] = strings.Join(peers, ",")
		}
		return out
	}

	descs := make([]InstanceDescription, 0, len(p.Instances))
	for _, inst := range p.Instances {
		descs = append(descs, InstanceDescription{
			InstanceName:      inst.InstanceName,
			ProvidesEndpoints: join(provides[inst.InstanceName]),
			RequiresEndpoints: join(requires[inst.InstanceName]),
		})
	}
	return descs
}
