// Package engine runs the force-directed layout and owns the camera and the
// pointer interaction state machine. All exported methods are safe for
// concurrent use; the engine serializes layout ticks, pointer events, and
// scene reads behind one mutex.
package engine

import (
	"context"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"orrery/internal/domain"
	"orrery/internal/render"
)

// Engine binds a graph store to a camera over a registered render surface
// and advances the layout one tick at a time.
type Engine struct {
	mu      sync.Mutex
	opts    Options
	store   *domain.Store
	cam     *Camera
	pointer pointerState
	notify  notifier
}

// New builds an engine sized to the named surface. The surface must already
// be registered; an unknown name fails with render.ErrSurfaceNotFound.
func New(surfaceID string, surfaces *render.Registry, opts Options) (*Engine, error) {
	canvas, err := surfaces.Get(surfaceID)
	if err != nil {
		return nil, err
	}

	o := opts.withDefaults()
	w, h := canvas.Size()

	return &Engine{
		opts:  o,
		store: domain.NewStore(),
		cam:   newCamera(o, w, h),
	}, nil
}

// AddNode inserts a node by label; adding an existing label is a no-op.
func (e *Engine) AddNode(label string, fixed bool) *domain.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AddNode(label, fixed)
}

// AddEdge inserts an edge, creating missing endpoints as free nodes.
func (e *Engine) AddEdge(source, target, label string) *domain.Edge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AddEdge(source, target, label)
}

// ClearGraph drops every node and edge. The camera is left alone.
func (e *Engine) ClearGraph() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	if e.pointer.mode == DraggingNode {
		e.pointer.dragged = nil
		e.pointer.mode = Idle
	}
}

// Step advances the layout by one tick.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()
	step(e.store, e.opts)
}

// Run steps the layout on a fixed interval until ctx is done, invoking
// onTick (which may be nil) after each step. It returns ctx.Err().
func (e *Engine) Run(ctx context.Context, interval time.Duration, onTick func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Step()
			if onTick != nil {
				onTick()
			}
		}
	}
}

// SearchAndHighlight marks every node whose label contains query, case
// insensitively. The first match is announced as a node selection; an empty
// query or no match clears the previous search and announces a canvas click
// at the origin.
func (e *Engine) SearchAndHighlight(query string) []*domain.Node {
	e.mu.Lock()
	matches := e.store.MatchSubstring(query)
	e.mu.Unlock()

	if len(matches) == 0 {
		e.emitCanvasClicked(0, 0)
		return nil
	}
	e.emitNodeSelected(matches[0])
	return matches
}

// HighlightLabel marks the node with exactly this label, clearing any
// previous search highlight. A hit is announced as a node selection.
func (e *Engine) HighlightLabel(label string) *domain.Node {
	e.mu.Lock()
	n := e.store.MatchExact(label)
	e.mu.Unlock()

	if n != nil {
		e.emitNodeSelected(n)
	}
	return n
}

// ClearSearchHighlights clears search highlights only.
func (e *Engine) ClearSearchHighlights() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ClearSearchHighlights()
}

// ClearAllHighlights clears manual and search highlights on nodes and edges.
func (e *Engine) ClearAllHighlights() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ClearHighlights()
}

// Resize updates the projection viewport, typically after the host surface
// changes size.
func (e *Engine) Resize(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cam.Resize(width, height)
}

// Viewport reports the current projection viewport size.
func (e *Engine) Viewport() (width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cam.Width, e.cam.Height
}

// Rotate maps a layout-space point through the camera's current rotation
// without touching the stored position.
func (e *Engine) Rotate(p r3.Vec) r3.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cam.Rotate(p)
}

// Snapshot projects the whole graph under the lock and returns copies.
// Concurrent readers (the frame broadcaster, the render endpoints) consume
// the snapshot, never the live nodes, so pointer and search mutations can't
// race them.
func (e *Engine) Snapshot() render.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	f := render.Frame{NodeRadius: e.opts.NodeRadius}
	for _, n := range e.store.Nodes() {
		x, y, scale := e.cam.Project(e.cam.Rotate(n.Pos))
		f.Nodes = append(f.Nodes, render.NodeSprite{
			Label:             n.Label,
			X:                 x,
			Y:                 y,
			Scale:             scale,
			Fixed:             n.Fixed,
			Highlighted:       n.Highlighted,
			SearchHighlighted: n.SearchHighlighted,
		})
	}
	for _, ed := range e.store.Edges() {
		x1, y1, _ := e.cam.Project(e.cam.Rotate(ed.Source.Pos))
		x2, y2, _ := e.cam.Project(e.cam.Rotate(ed.Target.Pos))
		f.Edges = append(f.Edges, render.EdgeSprite{
			Source:      ed.Source.Label,
			Target:      ed.Target.Label,
			Label:       ed.Label,
			X1:          x1,
			Y1:          y1,
			X2:          x2,
			Y2:          y2,
			Highlighted: ed.Highlighted,
		})
	}
	return f
}

// Nodes returns the graph's nodes in insertion order. The pointers are live:
// reading their mutable flags is only safe while nothing else drives the
// engine. Concurrent readers use Snapshot.
func (e *Engine) Nodes() []*domain.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Nodes()
}

// Edges returns the graph's edges in insertion order.
func (e *Engine) Edges() []*domain.Edge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Edges()
}

// Node looks a node up by label.
func (e *Engine) Node(label string) (*domain.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Node(label)
}

// ProjectNode rotates and projects a node, returning its screen position
// and the depth scale factor applied to anything drawn at that depth.
func (e *Engine) ProjectNode(n *domain.Node) (x, y, scale float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cam.Project(e.cam.Rotate(n.Pos))
}

// ProjectAxis rotates and projects a guide-axis endpoint into the fixed
// axis-indicator corner.
func (e *Engine) ProjectAxis(p r3.Vec) (x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cam.ProjectAxis(e.cam.Rotate(p))
}

// NodeRadius reports the unscaled node disc radius in screen units.
func (e *Engine) NodeRadius() float64 {
	return e.opts.NodeRadius
}
