package engine

import (
	"math"

	"orrery/internal/domain"
)

// Mode is the interaction state machine's current state.
type Mode int

const (
	Idle Mode = iota
	DraggingNode
	Rotating
	Panning
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case DraggingNode:
		return "dragging"
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	}
	return "unknown"
}

// Button identifies which pointer button went down.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// pointerState is the interaction state machine's mutable state: the current
// mode, the dragged node (valid only in DraggingNode), and the last pointer
// position used to compute deltas. At most one node is dragged at a time.
type pointerState struct {
	mode    Mode
	dragged *domain.Node
	lastX   float64
	lastY   float64
}

// PointerDown resolves the pointer against the graph. A hit starts a node
// drag and fixes the node so the layout leaves it alone; a miss starts
// camera rotation (primary button) or panning (secondary button).
func (e *Engine) PointerDown(x, y float64, button Button) {
	e.mu.Lock()

	e.pointer.lastX = x
	e.pointer.lastY = y

	if hit := e.pick(x, y); hit != nil {
		e.pointer.mode = DraggingNode
		e.pointer.dragged = hit
		hit.Fixed = true
		e.mu.Unlock()

		e.emitNodeSelected(hit)
		return
	}

	if button == ButtonSecondary {
		e.pointer.mode = Panning
	} else {
		e.pointer.mode = Rotating
	}
	e.mu.Unlock()

	e.emitCanvasClicked(x, y)
}

// PointerMove applies the pointer delta according to the current mode:
// dragging repositions the node in its depth plane, rotating accumulates the
// two camera angles, panning shifts the pan offset in layout units.
func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dx := x - e.pointer.lastX
	dy := y - e.pointer.lastY

	switch e.pointer.mode {
	case DraggingNode:
		nx, ny := e.cam.Unproject(x, y)
		e.pointer.dragged.Pos.X = nx
		e.pointer.dragged.Pos.Y = ny
	case Rotating:
		e.cam.AngleY += dx * e.opts.RotateSensitivity
		e.cam.AngleX += dy * e.opts.RotateSensitivity
	case Panning:
		e.cam.PanX += dx / e.cam.Zoom
		e.cam.PanY += dy / e.cam.Zoom
	}

	e.pointer.lastX = x
	e.pointer.lastY = y
}

// PointerUp ends the current gesture. A drag release always clears the
// node's fixed flag, even if the node was fixed before the drag started.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pointer.mode == DraggingNode && e.pointer.dragged != nil {
		e.pointer.dragged.Fixed = false
		e.pointer.dragged = nil
	}
	e.pointer.mode = Idle
}

// PointerLeave is treated exactly like a pointer release.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Wheel zooms by exp(±ZoomIntensity); only the sign of delta matters.
// Negative delta (wheel away from the user) zooms in. Pan and rotation are
// untouched.
func (e *Engine) Wheel(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exponent := e.opts.ZoomIntensity
	if delta > 0 {
		exponent = -exponent
	}
	e.cam.ZoomBy(math.Exp(exponent))
}

// Mode returns the interaction state machine's current mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pointer.mode
}

// pick returns the first node (in store insertion order) whose projected
// disc contains the pointer. There is no depth resolution: with overlapping
// projections the first-inserted node wins, not the nearest to the camera.
// Callers hold the engine lock.
func (e *Engine) pick(x, y float64) *domain.Node {
	for _, n := range e.store.Nodes() {
		sx, sy, scale := e.cam.Project(e.cam.Rotate(n.Pos))
		r := e.opts.NodeRadius * scale

		dx := x - sx
		dy := y - sy
		if dx*dx+dy*dy < r*r {
			return n
		}
	}
	return nil
}
