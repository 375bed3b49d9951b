package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"orrery/internal/domain"
	"orrery/internal/render"
)

func TestNew(t *testing.T) {
	t.Run("unknown surface id fails with the sentinel", func(t *testing.T) {
		surfaces := render.NewRegistry()
		_, err := New("nope", surfaces, Options{})
		if !errors.Is(err, render.ErrSurfaceNotFound) {
			t.Fatalf("err = %v, want render.ErrSurfaceNotFound", err)
		}
	})

	t.Run("viewport comes from the surface", func(t *testing.T) {
		surfaces := render.NewRegistry()
		surfaces.Register("main", render.NewRaster(1024, 768))

		eng, err := New("main", surfaces, Options{})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}
		if w, h := eng.Viewport(); w != 1024 || h != 768 {
			t.Fatalf("viewport = %vx%v, want 1024x768", w, h)
		}
	})

	t.Run("zero options fall back to defaults", func(t *testing.T) {
		eng := newTestEngine(t)
		if eng.opts.DesiredDistance != 150 || eng.opts.NodeRadius != 15 {
			t.Fatalf("defaults not applied: %+v", eng.opts)
		}
	})

	t.Run("explicit options survive defaulting", func(t *testing.T) {
		surfaces := render.NewRegistry()
		surfaces.Register("main", render.NewRaster(800, 600))

		eng, err := New("main", surfaces, Options{NodeRadius: 30, MaxNodeSpeed: 2})
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}
		if eng.opts.NodeRadius != 30 || eng.opts.MaxNodeSpeed != 2 {
			t.Fatalf("overrides lost: %+v", eng.opts)
		}
		// Untouched fields still default.
		if eng.opts.SpringConstant != 0.1 {
			t.Fatalf("SpringConstant = %v, want 0.1", eng.opts.SpringConstant)
		}
	})
}

func TestSearchAndHighlight(t *testing.T) {
	setup := func(t *testing.T) *Engine {
		t.Helper()
		eng := newTestEngine(t)
		eng.AddNode("Alpha", false)
		eng.AddNode("Beta", false)
		eng.AddNode("gamma", false)
		return eng
	}

	t.Run("matches are case-insensitive and announce the first", func(t *testing.T) {
		eng := setup(t)

		var selected *domain.Node
		eng.OnNodeSelect(func(n *domain.Node) { selected = n })

		matches := eng.SearchAndHighlight("A")
		if len(matches) != 3 {
			t.Fatalf("got %d matches, want 3", len(matches))
		}
		if selected == nil || selected.Label != "Alpha" {
			t.Fatalf("announced %v, want Alpha", selected)
		}
		for _, n := range matches {
			if !n.SearchHighlighted {
				t.Fatalf("match %q not highlighted", n.Label)
			}
		}
	})

	t.Run("a new query clears the previous one", func(t *testing.T) {
		eng := setup(t)
		eng.SearchAndHighlight("Alpha")
		eng.SearchAndHighlight("Beta")

		alpha, _ := eng.Node("Alpha")
		beta, _ := eng.Node("Beta")
		if alpha.SearchHighlighted {
			t.Fatal("stale highlight survived the next query")
		}
		if !beta.SearchHighlighted {
			t.Fatal("current match not highlighted")
		}
	})

	t.Run("no match reports a canvas click at the origin", func(t *testing.T) {
		eng := setup(t)
		eng.SearchAndHighlight("Alpha")

		var clicks int
		var cx, cy float64
		eng.OnCanvasClick(func(x, y float64) { clicks++; cx, cy = x, y })

		if got := eng.SearchAndHighlight("zzz"); got != nil {
			t.Fatalf("got %d matches, want none", len(got))
		}
		if clicks != 1 || cx != 0 || cy != 0 {
			t.Fatalf("canvas click %d times at (%v, %v), want once at origin", clicks, cx, cy)
		}

		alpha, _ := eng.Node("Alpha")
		if alpha.SearchHighlighted {
			t.Fatal("failed query left the previous highlight in place")
		}
	})

	t.Run("empty query only clears", func(t *testing.T) {
		eng := setup(t)
		eng.SearchAndHighlight("a")

		if got := eng.SearchAndHighlight(""); got != nil {
			t.Fatalf("empty query matched %d nodes", len(got))
		}
		for _, n := range eng.Nodes() {
			if n.SearchHighlighted {
				t.Fatalf("node %q still highlighted after empty query", n.Label)
			}
		}
	})
}

func TestHighlightLabel(t *testing.T) {
	t.Run("exact label only", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.AddNode("Alpha", false)

		var selected *domain.Node
		eng.OnNodeSelect(func(n *domain.Node) { selected = n })

		if n := eng.HighlightLabel("Alp"); n != nil {
			t.Fatalf("prefix matched %q", n.Label)
		}
		if selected != nil {
			t.Fatal("miss announced a selection")
		}

		n := eng.HighlightLabel("Alpha")
		if n == nil || !n.SearchHighlighted {
			t.Fatalf("exact match not highlighted: %v", n)
		}
		if selected != n {
			t.Fatal("hit not announced")
		}
	})
}

func TestClearGraph(t *testing.T) {
	t.Run("aborts an in-flight drag", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos.X, n.Pos.Y, n.Pos.Z = 0, 0, 0

		eng.PointerDown(400, 300, ButtonPrimary)
		eng.ClearGraph()

		if eng.Mode() != Idle {
			t.Fatalf("mode = %v after clear, want %v", eng.Mode(), Idle)
		}
		if len(eng.Nodes()) != 0 {
			t.Fatal("nodes survived clear")
		}

		// A fresh graph is immediately usable.
		eng.AddEdge("x", "y", "")
		eng.Step()
	})
}

func TestRun(t *testing.T) {
	t.Run("stops on context cancellation", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.AddEdge("a", "b", "")

		var ticks atomic.Int64
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- eng.Run(ctx, time.Millisecond, func() { ticks.Add(1) })
		}()

		for ticks.Load() < 3 {
			time.Sleep(time.Millisecond)
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("run returned %v, want context.Canceled", err)
			}
		case <-time.After(time.Second):
			t.Fatal("run did not stop after cancellation")
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("carries projected positions and flags", func(t *testing.T) {
		eng := newTestEngine(t)
		e := eng.AddEdge("a", "b", "link")
		e.Source.Pos.X, e.Source.Pos.Y, e.Source.Pos.Z = 0, 0, 0
		e.Source.Fixed = true

		f := eng.Snapshot()

		if f.NodeRadius != eng.NodeRadius() {
			t.Fatalf("NodeRadius = %v, want %v", f.NodeRadius, eng.NodeRadius())
		}
		if len(f.Nodes) != 2 || len(f.Edges) != 1 {
			t.Fatalf("snapshot has %d nodes, %d edges", len(f.Nodes), len(f.Edges))
		}
		if n := f.Nodes[0]; n.Label != "a" || n.X != 400 || n.Y != 300 || !n.Fixed {
			t.Fatalf("first sprite = %+v", n)
		}
		if ed := f.Edges[0]; ed.Source != "a" || ed.Target != "b" || ed.Label != "link" {
			t.Fatalf("edge sprite = %+v", ed)
		}
		if f.Edges[0].X1 != 400 || f.Edges[0].Y1 != 300 {
			t.Fatalf("edge endpoint not projected: %+v", f.Edges[0])
		}
	})

	t.Run("is decoupled from later mutations", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos.X, n.Pos.Y, n.Pos.Z = 0, 0, 0

		before := eng.Snapshot()
		eng.PointerDown(400, 300, ButtonPrimary) // pins the node

		if before.Nodes[0].Fixed {
			t.Fatal("earlier snapshot saw a later mutation")
		}
		if !eng.Snapshot().Nodes[0].Fixed {
			t.Fatal("new snapshot missed the mutation")
		}
	})
}

func TestResize(t *testing.T) {
	t.Run("projection recenters on the new viewport", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos.X, n.Pos.Y, n.Pos.Z = 0, 0, 0

		eng.Resize(400, 200)

		sx, sy, _ := eng.ProjectNode(n)
		if sx != 200 || sy != 100 {
			t.Fatalf("origin at (%v, %v) after resize, want (200, 100)", sx, sy)
		}
	})
}
