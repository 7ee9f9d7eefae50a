package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MiaAltieri/mongodb-operator/internal/converge"
	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
	"github.com/MiaAltieri/mongodb-operator/internal/edgestore"
	"github.com/MiaAltieri/mongodb-operator/internal/localexecutor"
	"github.com/MiaAltieri/mongodb-operator/internal/plan"
)

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		go a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	topo, err := a.loader.Load(ctx, a.config.TopologyPath)
	if err != nil {
		return fmt.Errorf("failed to load topology descriptor: %w", err)
	}
	a.logger.Debug("Topology descriptor loaded into unified model.", "model", topo.ModelName)

	a.logger.Info("📐 Building topology plan...", "model", topo.ModelName)
	p, err := plan.Build(ctx, a.catalog, topo, a.rules)
	if err != nil {
		return fmt.Errorf("failed to build topology plan: %w", err)
	}
	a.logger.Info("Topology plan built.",
		"plan_id", p.ID, "instance_count", len(p.Instances), "edge_count", len(p.Edges))

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.Describe()); err != nil {
		return fmt.Errorf("failed to encode plan description: %w", err)
	}

	if !a.config.Apply {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	return a.apply(ctx, p)
}

// apply realizes the plan with the local executor and blocks on the
// convergence barrier until every edge is realized or the deadline passes.
func (a *App) apply(ctx context.Context, p *plan.TopologyPlan) error {
	a.logger.Info("🚀 Starting local plan realization...", "workers", a.config.WorkerCount)

	store := edgestore.New()
	exec := localexecutor.New(store, a.config.WorkerCount)
	barrier := converge.NewBarrier(p, store)

	applyErr := make(chan error, 1)
	go func() {
		applyErr <- exec.Apply(ctx, p)
	}()

	state, err := barrier.Wait(ctx, a.config.Timeout, a.config.PollInterval)
	if err != nil {
		return fmt.Errorf("plan did not converge: %w", err)
	}
	if err := <-applyErr; err != nil {
		return fmt.Errorf("plan realization failed: %w", err)
	}

	a.logger.Info("🏁 Plan converged.", "plan_id", p.ID, "phase", state.Phase.String())
	return nil
}
