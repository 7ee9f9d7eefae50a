package config

import "context"

// Loader is the interface for a format-specific topology descriptor loader.
type Loader interface {
	// Load reads a descriptor from the given path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Topology, error)
}
