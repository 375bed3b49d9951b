package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// axisLength is the world-space length of each guide-axis arm.
const axisLength = 50.0

// Frame is one drawn state: every node and edge projected and copied out of
// the scene in a single consistent pass. A frame shares nothing with the
// scene, so it can be drawn or serialized while the scene keeps moving.
type Frame struct {
	NodeRadius float64
	Nodes      []NodeSprite
	Edges      []EdgeSprite
}

// NodeSprite is a node's drawable state. Scale is the depth scale factor
// applied to anything drawn at the node's depth.
type NodeSprite struct {
	Label             string
	X, Y, Scale       float64
	Fixed             bool
	Highlighted       bool
	SearchHighlighted bool
}

// EdgeSprite is an edge's drawable state with both endpoints projected.
type EdgeSprite struct {
	Source, Target string
	Label          string
	X1, Y1, X2, Y2 float64
	Highlighted    bool
}

// Scene is the engine-side state the driver pulls each pass. Snapshot
// returns a consistent copy; ProjectAxis maps guide-axis endpoints through
// the current view. The driver never mutates the scene.
type Scene interface {
	Snapshot() Frame
	ProjectAxis(p r3.Vec) (x, y float64)
}

// Driver issues draw calls for the scene's current state. It holds no state
// of its own beyond the resolved style, so one driver can serve any number
// of surfaces.
type Driver struct {
	scene Scene
	style Style

	background      color.RGBA
	nodeColor       color.RGBA
	edgeColor       color.RGBA
	textColor       color.RGBA
	highlight       color.RGBA
	searchHighlight color.RGBA
	axisColor       color.RGBA
}

// NewDriver creates a driver for the given scene. Zero style fields fall back
// to the default palette.
func NewDriver(scene Scene, style Style) *Driver {
	st := style.withDefaults()
	return &Driver{
		scene:           scene,
		style:           st,
		background:      parseHexColor(st.Background),
		nodeColor:       parseHexColor(st.Node),
		edgeColor:       parseHexColor(st.Edge),
		textColor:       parseHexColor(st.Text),
		highlight:       parseHexColor(st.Highlight),
		searchHighlight: parseHexColor(st.SearchHighlight),
		axisColor:       parseHexColor(st.Axis),
	}
}

// Draw renders one full pass onto c: background, edges, nodes, labels, and
// the guide axes when enabled. Edges go first so nodes paint over them. The
// whole pass works on one snapshot, so a frame is internally consistent even
// while the simulation keeps ticking.
func (d *Driver) Draw(c Canvas) {
	f := d.scene.Snapshot()

	c.Clear(d.background)

	for _, e := range f.Edges {
		col := d.edgeColor
		if e.Highlighted {
			col = d.highlight
		}
		c.Line(e.X1, e.Y1, e.X2, e.Y2, 1, col)
		if e.Label != "" {
			c.Text(e.Label, (e.X1+e.X2)/2, (e.Y1+e.Y2)/2, d.textColor)
		}
	}

	for _, n := range f.Nodes {
		r := f.NodeRadius * n.Scale

		// Precedence: search highlight over manual highlight over base.
		col := d.nodeColor
		switch {
		case n.SearchHighlighted:
			col = d.searchHighlight
		case n.Highlighted:
			col = d.highlight
		}
		c.Circle(n.X, n.Y, r, col)
		if n.Fixed {
			c.Ring(n.X, n.Y, r+2, 1.5, d.textColor)
		}
		c.Text(n.Label, n.X, n.Y-r-8, d.textColor)
	}

	if d.style.ShowAxes {
		d.drawAxes(c)
	}
}

// drawAxes paints the orientation gizmo: three world axes projected without
// the zoom multiplier so the gizmo keeps its screen size.
func (d *Driver) drawAxes(c Canvas) {
	ox, oy := d.scene.ProjectAxis(r3.Vec{})
	arms := []struct {
		label string
		tip   r3.Vec
	}{
		{"x", r3.Vec{X: axisLength}},
		{"y", r3.Vec{Y: axisLength}},
		{"z", r3.Vec{Z: axisLength}},
	}
	for _, arm := range arms {
		x, y := d.scene.ProjectAxis(arm.tip)
		c.Line(ox, oy, x, y, 1, d.axisColor)
		c.Text(arm.label, x, y, d.axisColor)
	}
}
