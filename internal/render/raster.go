package render

import (
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
)

// Raster is a pixel-buffer Canvas backed by a gg drawing context. It is the
// default surface the server registers, and it backs the PNG endpoint.
type Raster struct {
	dc *gg.Context
}

// NewRaster creates a raster surface of the given pixel dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

// Size returns the surface dimensions in pixels.
func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

// Clear fills the whole surface.
func (r *Raster) Clear(c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

// Line draws a stroked segment.
func (r *Raster) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// Circle draws a filled disc.
func (r *Raster) Circle(x, y, radius float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(x, y, radius)
	r.dc.Fill()
}

// Ring draws a stroked circle outline.
func (r *Raster) Ring(x, y, radius, width float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawCircle(x, y, radius)
	r.dc.Stroke()
}

// Text draws a string centered on (x, y) using the context's default face.
func (r *Raster) Text(s string, x, y float64, c color.RGBA) {
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// EncodePNG writes the current surface contents as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}
