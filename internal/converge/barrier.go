// Package converge implements the readiness barrier over a plan's integration
// edges: a blocking, cancellable wait that resolves once the external executor
// has realized every edge, or the deadline passes first.
package converge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
	"github.com/MiaAltieri/mongodb-operator/internal/plan"
)

// Phase is the lifecycle position of a convergence check.
type Phase int

const (
	// PhasePending means polling has not started yet.
	PhasePending Phase = iota
	// PhaseWaiting means polling is underway and edges remain unrealized.
	PhaseWaiting
	// PhaseConverged means every edge in the plan was observed realized.
	PhaseConverged
	// PhaseTimedOut means the deadline elapsed with edges still pending.
	PhaseTimedOut
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseWaiting:
		return "waiting"
	case PhaseConverged:
		return "converged"
	case PhaseTimedOut:
		return "timed-out"
	}
	return "unknown"
}

// State is a snapshot of a convergence check: its phase and the edges still
// awaiting realization.
type State struct {
	Phase          Phase
	PendingEdgeIDs []string
}

// StatusSource reports per-edge realization as observed from the executor.
// *edgestore.Store satisfies it.
type StatusSource interface {
	Realized(edgeID string) bool
}

// FailureSource is optionally implemented by status sources that retain
// executor-reported failure reasons, e.g. *edgestore.Store.
type FailureSource interface {
	Failure(edgeID string) (string, bool)
}

// ConvergenceTimeoutError reports that the barrier deadline elapsed. It
// carries the still-pending edge IDs, and any executor-reported failure
// reasons for them, for diagnostics.
type ConvergenceTimeoutError struct {
	PendingEdgeIDs []string
	Failures       map[string]string
}

func (e *ConvergenceTimeoutError) Error() string {
	msg := fmt.Sprintf("convergence timed out with %d integration edges pending: %v",
		len(e.PendingEdgeIDs), e.PendingEdgeIDs)
	if len(e.Failures) > 0 {
		msg += fmt.Sprintf(" (%d reported failures: %v)", len(e.Failures), e.Failures)
	}
	return msg
}

// Barrier tracks convergence of one plan generation. It only observes
// externally reported edge state; the plan is never mutated. One barrier
// exists per plan and is discarded when the plan is torn down.
type Barrier struct {
	edgeIDs []string
	source  StatusSource

	mu    sync.Mutex
	state State
}

// NewBarrier creates a barrier over the plan's edge set, starting in the
// pending phase with every edge outstanding.
func NewBarrier(p *plan.TopologyPlan, source StatusSource) *Barrier {
	ids := p.EdgeIDs()
	pending := make([]string, len(ids))
	copy(pending, ids)
	return &Barrier{
		edgeIDs: ids,
		source:  source,
		state:   State{Phase: PhasePending, PendingEdgeIDs: pending},
	}
}

// State returns a copy of the current convergence state.
func (b *Barrier) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Barrier) snapshotLocked() State {
	pending := make([]string, len(b.state.PendingEdgeIDs))
	copy(pending, b.state.PendingEdgeIDs)
	return State{Phase: b.state.Phase, PendingEdgeIDs: pending}
}

// poll observes the source once and advances the phase to waiting or
// converged. It never regresses a terminal phase.
func (b *Barrier) poll() State {
	var pending []string
	for _, id := range b.edgeIDs {
		if !b.source.Realized(id) {
			pending = append(pending, id)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.PendingEdgeIDs = pending
	if len(pending) == 0 {
		b.state.Phase = PhaseConverged
	} else if b.state.Phase != PhaseTimedOut {
		b.state.Phase = PhaseWaiting
	}
	return b.snapshotLocked()
}

// Wait blocks until every edge is observed realized, the timeout elapses, or
// ctx is cancelled. Polling happens at the fixed pollInterval. A cancelled
// context stops polling immediately and leaves the state at its last
// observed value; an elapsed timeout transitions to timed-out and returns a
// ConvergenceTimeoutError listing the pending edges. Waiting on an already
// converged barrier returns immediately.
func (b *Barrier) Wait(ctx context.Context, timeout, pollInterval time.Duration) (State, error) {
	b.mu.Lock()
	if b.state.Phase == PhaseConverged {
		s := b.snapshotLocked()
		b.mu.Unlock()
		return s, nil
	}
	b.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Convergence wait starting.",
		"edge_count", len(b.edgeIDs), "timeout", timeout, "poll_interval", pollInterval)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	operation := func() error {
		s := b.poll()
		if s.Phase == PhaseConverged {
			return nil
		}
		return fmt.Errorf("%d integration edges pending", len(s.PendingEdgeIDs))
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(pollInterval), waitCtx))
	if err == nil {
		logger.Debug("Convergence reached.")
		return b.State(), nil
	}

	// The caller cancelling outranks the deadline: stop without declaring a
	// timeout and keep the last observed state.
	if ctx.Err() != nil {
		logger.Debug("Convergence wait cancelled.", "error", ctx.Err())
		return b.State(), ctx.Err()
	}

	b.mu.Lock()
	b.state.Phase = PhaseTimedOut
	s := b.snapshotLocked()
	b.mu.Unlock()

	logger.Debug("Convergence wait timed out.", "pending_count", len(s.PendingEdgeIDs))
	return s, &ConvergenceTimeoutError{
		PendingEdgeIDs: s.PendingEdgeIDs,
		Failures:       b.pendingFailures(s.PendingEdgeIDs),
	}
}

// pendingFailures collects executor-reported failure reasons for the pending
// edges, when the source retains them.
func (b *Barrier) pendingFailures(pending []string) map[string]string {
	fs, ok := b.source.(FailureSource)
	if !ok {
		return nil
	}
	var failures map[string]string
	for _, id := range pending {
		if reason, failed := fs.Failure(id); failed {
			if failures == nil {
				failures = make(map[string]string)
			}
			failures[id] = reason
		}
	}
	return failures
}
