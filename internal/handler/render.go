package handler

import (
	"log"
	"net/http"

	"orrery/internal/render"
)

// SetStyle overrides the palette used by the render endpoints.
func (h *GraphHandler) SetStyle(style render.Style) {
	h.style = style
}

// RenderSVG draws the current frame as an SVG document.
func (h *GraphHandler) RenderSVG(w http.ResponseWriter, r *http.Request) {
	width, height := h.svc.Engine().Viewport()

	w.Header().Set("Content-Type", "image/svg+xml")
	canvas := render.NewSVG(w, int(width), int(height))
	render.NewDriver(h.svc.Engine(), h.style).Draw(canvas)
	canvas.Finish()
}

// RenderPNG draws the current frame as a PNG image.
func (h *GraphHandler) RenderPNG(w http.ResponseWriter, r *http.Request) {
	width, height := h.svc.Engine().Viewport()

	canvas := render.NewRaster(int(width), int(height))
	render.NewDriver(h.svc.Engine(), h.style).Draw(canvas)

	w.Header().Set("Content-Type", "image/png")
	if err := canvas.EncodePNG(w); err != nil {
		log.Printf("Failed to encode PNG: %v", err)
	}
}
