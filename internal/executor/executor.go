// Package executor defines the boundary to the runtime that realizes planned
// instances and integration edges. The planning engine never provisions
// anything itself; it hands a scheduled plan to an Executor and observes the
// outcome through the edge status store.
package executor

import (
	"context"

	"github.com/MiaAltieri/mongodb-operator/internal/plan"
)

// Executor is the abstract realize capability supplied by the caller.
// Implementations are assumed idempotent and eventually consistent: realizing
// the same instance or edge twice must be safe. The scheduled order of a plan
// is a priority hint, not a serialization requirement; implementations may
// realize independent work concurrently.
type Executor interface {
	// RealizeInstance materializes one application instance.
	RealizeInstance(ctx context.Context, inst *plan.ApplicationInstance) error

	// RealizeEdge establishes one integration edge between two already
	// materialized instances.
	RealizeEdge(ctx context.Context, edge *plan.IntegrationEdge) error
}
