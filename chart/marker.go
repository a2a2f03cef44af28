// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Marker describes how the point estimates of a series are drawn.
type Marker struct {
	Shape draw.GlyphDrawer // nil draws no glyphs
	Line  bool             // connect the points
	Dash  []vg.Length      // dash pattern of the line; nil is solid
}

var shapes = map[byte]draw.GlyphDrawer{
	'o': draw.CircleGlyph{},
	's': draw.BoxGlyph{},
	'^': draw.PyramidGlyph{},
	'+': draw.PlusGlyph{},
	'x': CrossGlyph{},
	'D': polygonGlyph{n: 4, rot: math.Pi / 2},
	'v': polygonGlyph{n: 3, rot: -math.Pi / 2},
	'>': polygonGlyph{n: 3, rot: 0},
	'<': polygonGlyph{n: 3, rot: math.Pi},
	'p': polygonGlyph{n: 5, rot: math.Pi / 2},
	'*': polygonGlyph{n: 5, rot: math.Pi / 2, star: true},
}

// ParseMarker parses a format string of the form used by the
// benchmark scripts: an optional shape character followed by an
// optional line style. Shapes are o s ^ v < > D p * + x. Line styles
// are "-" (solid), "--" (dashed) and ":" (dotted).
//
// For example, "D-" draws diamonds joined by a solid line.
func ParseMarker(style string) (Marker, error) {
	var m Marker
	rest := style
	if rest != "" && rest[0] != '-' && rest[0] != ':' {
		shape, ok := shapes[rest[0]]
		if !ok {
			return Marker{}, fmt.Errorf("marker %q: unknown shape %q", style, rest[0])
		}
		m.Shape = shape
		rest = rest[1:]
	}
	switch rest {
	case "":
	case "-":
		m.Line = true
	case "--":
		m.Line = true
		m.Dash = []vg.Length{vg.Points(6), vg.Points(3)}
	case ":":
		m.Line = true
		m.Dash = []vg.Length{vg.Points(1), vg.Points(2)}
	default:
		return Marker{}, fmt.Errorf("marker %q: unknown line style %q", style, rest)
	}
	if m.Shape == nil && !m.Line {
		return Marker{}, fmt.Errorf("marker %q draws nothing", style)
	}
	return m, nil
}

const cosπover4 = vg.Length(.707106781202420)

// CrossGlyph is a glyph that draws a big X.
// this version draws a heavier X.
type CrossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// polygonGlyph fills a regular polygon with n vertices, the first at
// angle rot. If star is set, the polygon is drawn as an n-pointed star.
type polygonGlyph struct {
	n    int
	rot  float64
	star bool
}

// DrawGlyph implements the Glyph interface.
func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	k := g.n
	if g.star {
		k *= 2
	}
	p := make(vg.Path, 0, k+2)
	for i := 0; i < k; i++ {
		r := sty.Radius
		if g.star && i%2 == 1 {
			r *= 0.4
		}
		a := g.rot + 2*math.Pi*float64(i)/float64(k)
		v := vg.Point{X: pt.X + r*vg.Length(math.Cos(a)), Y: pt.Y + r*vg.Length(math.Sin(a))}
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	c.SetColor(sty.Color)
	c.Fill(p)
}
