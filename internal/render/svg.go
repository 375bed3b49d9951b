package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG is a Canvas that streams SVG markup to a writer. It backs the SVG
// export endpoint; callers must call Finish once drawing is complete.
type SVG struct {
	canvas *svg.SVG
	width  int
	height int
}

// NewSVG starts an SVG document of the given pixel dimensions on w.
func NewSVG(w io.Writer, width, height int) *SVG {
	s := svg.New(w)
	s.Start(width, height)
	return &SVG{canvas: s, width: width, height: height}
}

// Finish closes the SVG document.
func (s *SVG) Finish() {
	s.canvas.End()
}

// Size returns the surface dimensions in pixels.
func (s *SVG) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// Clear fills the whole surface.
func (s *SVG) Clear(c color.RGBA) {
	s.canvas.Rect(0, 0, s.width, s.height, "fill:"+rgb(c))
}

// Line draws a stroked segment.
func (s *SVG) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%.1f", rgb(c), width)
	s.canvas.Line(px(x1), px(y1), px(x2), px(y2), style)
}

// Circle draws a filled disc.
func (s *SVG) Circle(x, y, radius float64, c color.RGBA) {
	s.canvas.Circle(px(x), px(y), px(radius), "fill:"+rgb(c))
}

// Ring draws a stroked circle outline.
func (s *SVG) Ring(x, y, radius, width float64, c color.RGBA) {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", rgb(c), width)
	s.canvas.Circle(px(x), px(y), px(radius), style)
}

// Text draws a string centered on (x, y).
func (s *SVG) Text(t string, x, y float64, c color.RGBA) {
	style := fmt.Sprintf("fill:%s;text-anchor:middle;dominant-baseline:middle", rgb(c))
	s.canvas.Text(px(x), px(y), t, style)
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func px(v float64) int {
	return int(math.Round(v))
}
