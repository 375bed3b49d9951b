// Package loader reads and writes graph topology files in YAML.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GraphYAML is the topology file structure.
type GraphYAML struct {
	Version string     `yaml:"version,omitempty"`
	Nodes   []NodeYAML `yaml:"nodes,omitempty"`
	Edges   []EdgeYAML `yaml:"edges,omitempty"`
}

// NodeYAML declares a node. Nodes referenced only by edges do not need an
// entry; they are created as free nodes.
type NodeYAML struct {
	Label string `yaml:"label"`
	Fixed bool   `yaml:"fixed,omitempty"`
}

// EdgeYAML declares an edge between two node labels.
type EdgeYAML struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Label  string `yaml:"label,omitempty"`
}

// LoadYAML reads a topology file from disk.
func LoadYAML(path string) (*GraphYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses topology YAML and validates edge endpoints.
func ParseYAML(data []byte) (*GraphYAML, error) {
	var g GraphYAML
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph yaml: %w", err)
	}

	for i, n := range g.Nodes {
		if n.Label == "" {
			return nil, fmt.Errorf("node %d has no label", i)
		}
	}
	for i, e := range g.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("edge %d is missing an endpoint", i)
		}
	}
	return &g, nil
}

// ExportYAML serializes a topology back to YAML.
func ExportYAML(g *GraphYAML) ([]byte, error) {
	data, err := yaml.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph yaml: %w", err)
	}
	return data, nil
}
