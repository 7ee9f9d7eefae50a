// Package localexecutor provides an in-process executor.Executor used to
// exercise the planning boundary and drive the convergence barrier without a
// real provisioning runtime behind it.
package localexecutor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
	"github.com/MiaAltieri/mongodb-operator/internal/edgestore"
	"github.com/MiaAltieri/mongodb-operator/internal/plan"
)

// Executor realizes a plan in-process, recording every realized edge in the
// shared edge status store.
type Executor struct {
	store   *edgestore.Store
	workers int
}

// New creates a local executor writing realization state into store. workers
// bounds the number of concurrently realized items; values below one are
// treated as one.
func New(store *edgestore.Store, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{store: store, workers: workers}
}

// RealizeInstance implements executor.Executor. Locally an instance has no
// substance to materialize, so this only traces the call.
func (e *Executor) RealizeInstance(ctx context.Context, inst *plan.ApplicationInstance) error {
	ctxlog.FromContext(ctx).Debug("Realizing application instance.",
		"instance", inst.InstanceName, "role", string(inst.Role), "replicas", inst.ReplicaCount)
	return nil
}

// RealizeEdge implements executor.Executor, marking the edge realized.
func (e *Executor) RealizeEdge(ctx context.Context, edge *plan.IntegrationEdge) error {
	ctxlog.FromContext(ctx).Debug("Realizing integration edge.",
		"edge", edge.ID(), "tier", edge.Tier.String())
	e.store.MarkRealized(edge.ID())
	return nil
}

// Apply walks a plan: all instances first, then the edges in scheduled order.
// Work is handed to a bounded worker group; the schedule determines submission
// order only, so same-tier edges realize in parallel.
func (e *Executor) Apply(ctx context.Context, p *plan.TopologyPlan) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Local executor starting.", "plan_id", p.ID, "workers", e.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, inst := range p.Instances {
		inst := inst
		g.Go(func() error {
			if err := e.RealizeInstance(gctx, inst); err != nil {
				return fmt.Errorf("failed to realize instance %q: %w", inst.InstanceName, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, edge := range p.Edges {
		edge := edge
		g.Go(func() error {
			if err := e.RealizeEdge(gctx, edge); err != nil {
				e.store.MarkFailed(edge.ID(), err.Error())
				return fmt.Errorf("failed to realize edge %q: %w", edge.ID(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug("Local executor finished.", "plan_id", p.ID)
	return nil
}
