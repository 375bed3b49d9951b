package engine

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"orrery/internal/domain"
	"orrery/internal/render"
)

// newTestEngine builds an engine over an 800x600 raster surface, so the
// viewport center is (400, 300).
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	surfaces := render.NewRegistry()
	surfaces.Register("main", render.NewRaster(800, 600))

	eng, err := New("main", surfaces, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func TestPointerDown(t *testing.T) {
	t.Run("hitting a node starts a drag and pins it", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos = r3.Vec{}

		var selected *domain.Node
		eng.OnNodeSelect(func(n *domain.Node) { selected = n })

		eng.PointerDown(400, 300, ButtonPrimary)

		if eng.Mode() != DraggingNode {
			t.Fatalf("mode = %v, want %v", eng.Mode(), DraggingNode)
		}
		if !n.Fixed {
			t.Fatal("dragged node was not pinned")
		}
		if selected != n {
			t.Fatalf("selection notified %v, want the hit node", selected)
		}
	})

	t.Run("the first inserted node wins a contested hit", func(t *testing.T) {
		eng := newTestEngine(t)
		behind := eng.AddNode("behind", false)
		front := eng.AddNode("front", false)
		behind.Pos = r3.Vec{Z: 100} // farther from the camera
		front.Pos = r3.Vec{Z: -100}

		var selected *domain.Node
		eng.OnNodeSelect(func(n *domain.Node) { selected = n })

		eng.PointerDown(400, 300, ButtonPrimary)

		if selected != behind {
			t.Fatalf("picked %q, want the first-inserted node", selected.Label)
		}
	})

	t.Run("the hit test boundary is exclusive", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos = r3.Vec{}

		radius := eng.NodeRadius() // scale is 1 at z=0

		eng.PointerDown(400+radius, 300, ButtonPrimary)
		if eng.Mode() != Rotating {
			t.Fatalf("pointer exactly on the rim picked the node; mode = %v", eng.Mode())
		}
		eng.PointerUp()

		eng.PointerDown(400+radius-0.001, 300, ButtonPrimary)
		if eng.Mode() != DraggingNode {
			t.Fatal("pointer just inside the rim missed the node")
		}
	})

	t.Run("a miss starts rotating or panning by button", func(t *testing.T) {
		tests := []struct {
			name   string
			button Button
			want   Mode
		}{
			{"primary button rotates", ButtonPrimary, Rotating},
			{"secondary button pans", ButtonSecondary, Panning},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				eng := newTestEngine(t)

				var clicks int
				var cx, cy float64
				eng.OnCanvasClick(func(x, y float64) { clicks++; cx, cy = x, y })

				eng.PointerDown(10, 20, tt.button)

				if eng.Mode() != tt.want {
					t.Fatalf("mode = %v, want %v", eng.Mode(), tt.want)
				}
				if clicks != 1 || cx != 10 || cy != 20 {
					t.Fatalf("canvas click notified %d times at (%v, %v)", clicks, cx, cy)
				}
			})
		}
	})
}

func TestPointerMove(t *testing.T) {
	t.Run("dragging repositions within the node's depth plane", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos = r3.Vec{Z: 25}

		sx, sy, _ := eng.ProjectNode(n)
		eng.PointerDown(sx, sy, ButtonPrimary)
		if eng.Mode() != DraggingNode {
			t.Fatalf("setup failed to hit the node; mode = %v", eng.Mode())
		}

		eng.PointerMove(450, 330)

		if n.Pos.Z != 25 {
			t.Fatalf("drag changed depth to %v", n.Pos.Z)
		}
		if n.Pos.X != 50 || n.Pos.Y != 30 {
			t.Fatalf("dragged to (%v, %v), want (50, 30)", n.Pos.X, n.Pos.Y)
		}
	})

	t.Run("rotation accumulates angle per pixel", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.PointerDown(100, 100, ButtonPrimary)
		eng.PointerMove(140, 70)
		eng.PointerMove(160, 90)

		// 60px right, -10px net vertical, at 0.01 rad per pixel.
		if math.Abs(eng.cam.AngleY-0.6) > eps {
			t.Fatalf("AngleY = %v, want 0.6", eng.cam.AngleY)
		}
		if math.Abs(eng.cam.AngleX-(-0.1)) > eps {
			t.Fatalf("AngleX = %v, want -0.1", eng.cam.AngleX)
		}
	})

	t.Run("panning divides the pixel delta by zoom", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.cam.Zoom = 2

		eng.PointerDown(100, 100, ButtonSecondary)
		eng.PointerMove(140, 60)

		if eng.cam.PanX != 20 || eng.cam.PanY != -20 {
			t.Fatalf("pan = (%v, %v), want (20, -20)", eng.cam.PanX, eng.cam.PanY)
		}
	})

	t.Run("movement while idle does nothing", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		before := n.Pos

		eng.PointerMove(400, 300)

		if n.Pos != before || eng.cam.AngleX != 0 || eng.cam.PanX != 0 {
			t.Fatal("idle movement mutated state")
		}
	})
}

func TestPointerUp(t *testing.T) {
	t.Run("release frees the node even if it was pinned before", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", true)
		n.Pos = r3.Vec{}

		eng.PointerDown(400, 300, ButtonPrimary)
		eng.Step()
		eng.Step()
		eng.PointerUp()

		if n.Fixed {
			t.Fatal("node still pinned after release")
		}
		if eng.Mode() != Idle {
			t.Fatalf("mode = %v, want %v", eng.Mode(), Idle)
		}
	})

	t.Run("release ends camera gestures too", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.PointerDown(10, 10, ButtonSecondary)
		eng.PointerUp()
		if eng.Mode() != Idle {
			t.Fatalf("mode = %v, want %v", eng.Mode(), Idle)
		}
	})

	t.Run("leaving the surface behaves like a release", func(t *testing.T) {
		eng := newTestEngine(t)
		n := eng.AddNode("a", false)
		n.Pos = r3.Vec{}

		eng.PointerDown(400, 300, ButtonPrimary)
		eng.PointerLeave()

		if n.Fixed || eng.Mode() != Idle {
			t.Fatalf("leave left fixed=%v mode=%v", n.Fixed, eng.Mode())
		}
	})
}

func TestWheel(t *testing.T) {
	t.Run("scroll direction maps to zoom direction", func(t *testing.T) {
		eng := newTestEngine(t)

		eng.Wheel(-1)
		if want := math.Exp(0.1); math.Abs(eng.cam.Zoom-want) > eps {
			t.Fatalf("zoom after scroll up = %v, want %v", eng.cam.Zoom, want)
		}

		eng.Wheel(1)
		if math.Abs(eng.cam.Zoom-1) > eps {
			t.Fatalf("zoom did not return to 1, got %v", eng.cam.Zoom)
		}
	})

	t.Run("only the sign of the delta matters", func(t *testing.T) {
		a := newTestEngine(t)
		b := newTestEngine(t)
		a.Wheel(-1)
		b.Wheel(-250)
		if a.cam.Zoom != b.cam.Zoom {
			t.Fatalf("delta magnitude leaked into zoom: %v vs %v", a.cam.Zoom, b.cam.Zoom)
		}
	})

	t.Run("zoom stays within bounds after many notches", func(t *testing.T) {
		eng := newTestEngine(t)
		for i := 0; i < 300; i++ {
			eng.Wheel(-1)
		}
		if eng.cam.Zoom != maxZoom {
			t.Fatalf("zoom = %v, want pinned at %v", eng.cam.Zoom, maxZoom)
		}
		for i := 0; i < 600; i++ {
			eng.Wheel(1)
		}
		if eng.cam.Zoom != minZoom {
			t.Fatalf("zoom = %v, want pinned at %v", eng.cam.Zoom, minZoom)
		}
	})

	t.Run("wheel leaves pan and rotation alone", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.cam.PanX = 5
		eng.cam.AngleY = 1
		eng.Wheel(-1)
		if eng.cam.PanX != 5 || eng.cam.AngleY != 1 {
			t.Fatal("wheel touched pan or rotation")
		}
	})
}
