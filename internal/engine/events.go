package engine

import "orrery/internal/domain"

// NodeSelectHandler receives the node that was picked or matched.
type NodeSelectHandler func(n *domain.Node)

// CanvasClickHandler receives the raw screen coordinates of a click that hit
// no node. Search misses report (0, 0).
type CanvasClickHandler func(x, y float64)

// notifier is one callback registry per notification name. Fan-out is
// synchronous and in registration order. The slices are read without the
// engine lock during emission, so registration is setup-time only: register
// every handler before pointer events or searches start flowing.
type notifier struct {
	nodeSelect  []NodeSelectHandler
	canvasClick []CanvasClickHandler
}

// OnNodeSelect registers a callback for node selection notifications.
// Call during setup, before the engine starts handling input.
func (e *Engine) OnNodeSelect(fn NodeSelectHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notify.nodeSelect = append(e.notify.nodeSelect, fn)
}

// OnCanvasClick registers a callback for canvas click notifications.
// Call during setup, before the engine starts handling input.
func (e *Engine) OnCanvasClick(fn CanvasClickHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notify.canvasClick = append(e.notify.canvasClick, fn)
}

// emitNodeSelected must be called without holding the engine lock; handlers
// may call back into the engine.
func (e *Engine) emitNodeSelected(n *domain.Node) {
	for _, fn := range e.notify.nodeSelect {
		fn(n)
	}
}

func (e *Engine) emitCanvasClicked(x, y float64) {
	for _, fn := range e.notify.canvasClick {
		fn(x, y)
	}
}
