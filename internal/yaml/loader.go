// Package yaml loads topology descriptors written in YAML, translating them
// into the same format-agnostic model as the HCL loader.
package yaml

import (
	"bytes"
	"context"
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/MiaAltieri/mongodb-operator/internal/config"
	"github.com/MiaAltieri/mongodb-operator/internal/ctxlog"
)

// shardDoc mirrors one entry of the descriptor's shards list.
type shardDoc struct {
	Name     string            `yaml:"name"`
	Replicas int               `yaml:"replicas"`
	Config   map[string]string `yaml:"config"`
}

// topologyDoc is the YAML-specific schema of a topology descriptor.
type topologyDoc struct {
	ModelName   string            `yaml:"model_name"`
	App         string            `yaml:"app"`
	Source      string            `yaml:"source"`
	Channel     string            `yaml:"channel"`
	Revision    int               `yaml:"revision"`
	Base        string            `yaml:"base"`
	Units       *int              `yaml:"units"`
	Config      map[string]string `yaml:"config"`
	Constraints string            `yaml:"constraints"`
	Storage     map[string]string `yaml:"storage"`
	Routers     int               `yaml:"routers"`
	Shards      []*shardDoc       `yaml:"shards"`
}

// Loader implements config.Loader for YAML descriptors.
type Loader struct{}

// NewLoader creates a YAML descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads one topology descriptor file. Unknown fields are rejected so
// typos in descriptors fail loudly instead of silently planning defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Topology, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing YAML topology descriptor.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	dec := yamlv3.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var doc topologyDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	if doc.ModelName == "" {
		return nil, fmt.Errorf("descriptor %q is missing model_name", path)
	}

	units := 1
	if doc.Units != nil {
		units = *doc.Units
	}
	topo := &config.Topology{
		ModelName:   doc.ModelName,
		AppName:     doc.App,
		SourceRef:   doc.Source,
		Channel:     doc.Channel,
		Revision:    doc.Revision,
		Base:        doc.Base,
		Units:       units,
		Config:      doc.Config,
		Constraints: doc.Constraints,
		Storage:     doc.Storage,
		Routers:     doc.Routers,
	}
	for _, s := range doc.Shards {
		topo.Shards = append(topo.Shards, &config.ShardDefinition{
			Name:     s.Name,
			Replicas: s.Replicas,
			Config:   s.Config,
		})
	}

	logger.Debug("Topology descriptor loaded.",
		"model", topo.ModelName, "shard_count", len(topo.Shards), "routers", topo.Routers)
	return topo, nil
}
