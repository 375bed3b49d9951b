package loader

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleGraph = `
version: "1"
nodes:
  - label: sun
    fixed: true
  - label: earth
edges:
  - source: sun
    target: earth
    label: orbit
  - source: earth
    target: moon
`

func TestParseYAML(t *testing.T) {
	t.Run("parses nodes and edges", func(t *testing.T) {
		g, err := ParseYAML([]byte(sampleGraph))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		if len(g.Nodes) != 2 || len(g.Edges) != 2 {
			t.Fatalf("got %d nodes, %d edges; want 2 and 2", len(g.Nodes), len(g.Edges))
		}
		if !g.Nodes[0].Fixed || g.Nodes[0].Label != "sun" {
			t.Fatalf("first node = %+v, want fixed sun", g.Nodes[0])
		}
		if e := g.Edges[0]; e.Source != "sun" || e.Target != "earth" || e.Label != "orbit" {
			t.Fatalf("first edge = %+v", e)
		}
	})

	t.Run("rejects a node without a label", func(t *testing.T) {
		_, err := ParseYAML([]byte("nodes:\n  - fixed: true\n"))
		if err == nil {
			t.Fatal("want error for unlabeled node")
		}
	})

	t.Run("rejects an edge missing an endpoint", func(t *testing.T) {
		_, err := ParseYAML([]byte("edges:\n  - source: a\n"))
		if err == nil {
			t.Fatal("want error for half an edge")
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := ParseYAML([]byte("nodes: [unclosed"))
		if err == nil {
			t.Fatal("want parse error")
		}
	})
}

func TestLoadYAML(t *testing.T) {
	t.Run("round trips through a file", func(t *testing.T) {
		g, err := ParseYAML([]byte(sampleGraph))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		data, err := ExportYAML(g)
		if err != nil {
			t.Fatalf("export: %v", err)
		}

		path := filepath.Join(t.TempDir(), "graph.yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		loaded, err := LoadYAML(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(loaded.Nodes) != len(g.Nodes) || len(loaded.Edges) != len(g.Edges) {
			t.Fatalf("round trip lost entries: %+v", loaded)
		}
	})

	t.Run("missing file reports the path", func(t *testing.T) {
		if _, err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("want error for missing file")
		}
	})
}
