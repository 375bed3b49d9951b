package render

import "image/color"

// Style holds the cosmetic knobs the driver consumes: colors as hex strings,
// label text, and the guide-axis toggle. The engine core never reads these.
type Style struct {
	Background      string
	Node            string
	Edge            string
	Text            string
	Highlight       string
	SearchHighlight string
	Axis            string
	ShowAxes        bool
}

// withDefaults fills zero values with the default palette.
func (s *Style) withDefaults() Style {
	d := Style{
		Background:      "#10141c",
		Node:            "#6ea8fe",
		Edge:            "#39424e",
		Text:            "#e6ebf2",
		Highlight:       "#f4b942",
		SearchHighlight: "#ff5d5d",
		Axis:            "#55616e",
	}
	if s == nil {
		return d
	}

	out := *s
	if out.Background == "" {
		out.Background = d.Background
	}
	if out.Node == "" {
		out.Node = d.Node
	}
	if out.Edge == "" {
		out.Edge = d.Edge
	}
	if out.Text == "" {
		out.Text = d.Text
	}
	if out.Highlight == "" {
		out.Highlight = d.Highlight
	}
	if out.SearchHighlight == "" {
		out.SearchHighlight = d.SearchHighlight
	}
	if out.Axis == "" {
		out.Axis = d.Axis
	}
	return out
}

// parseHexColor parses #rgb and #rrggbb notations. Unparseable input yields
// opaque black rather than an error; styling is never a hard failure.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 0xff}

	hexVal := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}

	if len(s) == 0 || s[0] != '#' {
		return c
	}
	switch len(s) {
	case 4: // #rgb
		r, ok1 := hexVal(s[1])
		g, ok2 := hexVal(s[2])
		b, ok3 := hexVal(s[3])
		if ok1 && ok2 && ok3 {
			c.R, c.G, c.B = r*17, g*17, b*17
		}
	case 7: // #rrggbb
		var v [6]uint8
		ok := true
		for i := 0; i < 6; i++ {
			h, hok := hexVal(s[i+1])
			v[i] = h
			ok = ok && hok
		}
		if ok {
			c.R = v[0]<<4 | v[1]
			c.G = v[2]<<4 | v[3]
			c.B = v[4]<<4 | v[5]
		}
	}
	return c
}
