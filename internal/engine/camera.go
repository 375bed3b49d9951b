package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Zoom bounds; wheel input can never push the scale outside these.
const (
	minZoom = 0.1
	maxZoom = 5.0
)

// Guide-axis gizmo anchor in screen space.
const (
	axisOriginX = 70.0
	axisOriginY = 70.0
)

// Camera holds the view state: rotation about two axes, a 2D pan offset, the
// zoom scale, and the cached viewport dimensions. It is owned by the engine
// and mutated only by the interaction handlers.
type Camera struct {
	// AngleX and AngleY are rotation angles in radians. They accumulate
	// without bound; nothing ever normalizes them.
	AngleX float64
	AngleY float64

	PanX float64
	PanY float64

	// Zoom is clamped to [minZoom, maxZoom].
	Zoom float64

	Width  float64
	Height float64

	projectionDistance float64
	minDenominator     float64
}

func newCamera(o Options, width, height float64) *Camera {
	return &Camera{
		Zoom:               1,
		Width:              width,
		Height:             height,
		projectionDistance: o.ProjectionDistance,
		minDenominator:     o.MinProjectionDenominator,
	}
}

// Rotate applies the camera rotation to a copy of p: first about the X axis,
// then (on the once-rotated coordinates) about the Y axis. The stored layout
// position is never touched; view space and physics space stay decoupled.
func (c *Camera) Rotate(p r3.Vec) r3.Vec {
	sinX, cosX := math.Sincos(c.AngleX)
	p = r3.Vec{
		X: p.X,
		Y: p.Y*cosX - p.Z*sinX,
		Z: p.Y*sinX + p.Z*cosX,
	}

	sinY, cosY := math.Sincos(c.AngleY)
	return r3.Vec{
		X: p.X*cosY + p.Z*sinY,
		Y: p.Y,
		Z: -p.X*sinY + p.Z*cosY,
	}
}

// Project maps a view-space position to screen coordinates via the
// perspective divide. The returned scale is the effective on-screen size
// multiplier for a unit radius (perspective scale times zoom).
func (c *Camera) Project(p r3.Vec) (sx, sy, scale float64) {
	denom := c.projectionDistance + p.Z
	if denom < c.minDenominator {
		denom = c.minDenominator
	}
	s := c.projectionDistance / denom

	sx = (p.X*s+c.PanX)*c.Zoom + c.Width/2
	sy = (p.Y*s+c.PanY)*c.Zoom + c.Height/2
	return sx, sy, s * c.Zoom
}

// ProjectAxis is the guide-axis variant of Project: same perspective math but
// without the zoom multiplier, anchored at a fixed screen origin instead of
// the viewport center, so the gizmo keeps its size and corner position.
func (c *Camera) ProjectAxis(p r3.Vec) (sx, sy float64) {
	denom := c.projectionDistance + p.Z
	if denom < c.minDenominator {
		denom = c.minDenominator
	}
	s := c.projectionDistance / denom

	return p.X*s + c.PanX + axisOriginX, p.Y*s + c.PanY + axisOriginY
}

// Unproject inverts the linear terms of Project, mapping screen coordinates
// back into layout-space x and y. The perspective scale is deliberately not
// inverted: dragging moves a node within its current depth plane.
func (c *Camera) Unproject(sx, sy float64) (x, y float64) {
	x = (sx-c.Width/2)/c.Zoom - c.PanX/c.Zoom
	y = (sy-c.Height/2)/c.Zoom - c.PanY/c.Zoom
	return x, y
}

// ZoomBy multiplies the zoom scale by factor and clamps the result.
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}
}

// Resize updates the cached viewport dimensions. Projection is
// center-relative, so the host must forward surface size changes.
func (c *Camera) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}
