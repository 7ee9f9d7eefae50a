// Package hcl loads topology descriptors written in HCL and translates them
// into the format-agnostic configuration model.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/MiaAltieri/mongodb-operator/internal/config"
	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
)

// Loader implements config.Loader for HCL descriptors.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates an HCL descriptor loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads one topology descriptor file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Topology, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL topology descriptor.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %q: %w", path, diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %q: %w", path, diags)
	}
	if doc.Topology == nil {
		return nil, fmt.Errorf("descriptor %q contains no topology block", path)
	}

	topo := translate(doc.Topology)
	logger.Debug("Topology descriptor loaded.",
		"model", topo.ModelName, "shard_count", len(topo.Shards), "routers", topo.Routers)
	return topo, nil
}

// translate converts the HCL-specific schema into the agnostic model,
// applying the single-unit default for an omitted units attribute.
func translate(b *topologyBlock) *config.Topology {
	units := 1
	if b.Units != nil {
		units = *b.Units
	}

	topo := &config.Topology{
		ModelName:   b.ModelName,
		AppName:     b.App,
		SourceRef:   b.Source,
		Channel:     b.Channel,
		Revision:    b.Revision,
		Base:        b.Base,
		Units:       units,
		Config:      b.Config,
		Constraints: b.Constraints,
		Storage:     b.Storage,
		Routers:     b.Routers,
	}
	for _, s := range b.Shards {
		topo.Shards = append(topo.Shards, &config.ShardDefinition{
			Name:     s.Name,
			Replicas: s.Replicas,
			Config:   s.Config,
		})
	}
	return topo
}
