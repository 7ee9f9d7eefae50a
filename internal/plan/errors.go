package plan

import (
	"fmt"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
)

// SpecValidationError reports a topology descriptor the catalog cannot be
// expanded against, e.g. a duplicate shard name or a non-positive replica
// count.
type SpecValidationError struct {
	Reason string
}

func (e *SpecValidationError) Error() string {
	return "invalid topology: " + e.Reason
}

// EndpointResolutionError reports a role pair with no entry in the endpoint
// table.
type EndpointResolutionError struct {
	A, B catalog.Role
}

func (e *EndpointResolutionError) Error() string {
	return fmt.Sprintf("no endpoint mapping between roles %q and %q", e.A, e.B)
}

// CyclicDependencyError reports that the prerequisite relation over the edge
// set is not a DAG.
type CyclicDependencyError struct {
	EdgeID string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected involving edge %q", e.EdgeID)
}
