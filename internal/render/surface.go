// Package render contains the drawing surfaces and the render driver that
// consumes the engine's projected state. The engine core never issues draw
// calls itself; everything visual lives here.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
)

// ErrSurfaceNotFound is returned when a named drawing surface has not been
// registered. Engine construction treats this as fatal.
var ErrSurfaceNotFound = errors.New("render: surface not found")

// Canvas is the minimal drawing surface the driver needs. Coordinates are
// screen-space pixels with the origin at the top-left.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height float64)
	// Clear fills the whole surface.
	Clear(c color.RGBA)
	// Line draws a stroked segment.
	Line(x1, y1, x2, y2, width float64, c color.RGBA)
	// Circle draws a filled disc.
	Circle(x, y, r float64, c color.RGBA)
	// Ring draws a stroked circle outline.
	Ring(x, y, r, width float64, c color.RGBA)
	// Text draws a string centered on (x, y).
	Text(s string, x, y float64, c color.RGBA)
}

// Registry holds named drawing surfaces. The host registers surfaces before
// constructing an engine against one of them.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Canvas
}

// NewRegistry creates an empty surface registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Canvas)}
}

// Register adds or replaces a surface under the given name.
func (r *Registry) Register(name string, c Canvas) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[name] = c
}

// Get returns the surface registered under name.
func (r *Registry) Get(name string) (Canvas, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, name)
	}
	return c, nil
}
