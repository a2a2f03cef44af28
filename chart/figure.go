// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws scaling charts: violin distributions and point
// estimate lines over thread counts, encoded as PDF.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Font sizes of figure text.
const (
	TitleSize = 14
	LabelSize = 12
)

// LegendPos selects the corner holding a figure's legend.
type LegendPos int

const (
	UpperLeft LegendPos = iota
	UpperRight
)

// A Figure is a single chart under construction. A Figure is not
// safe for concurrent use.
type Figure struct {
	plot *plot.Plot

	// Width and Height are the page dimensions used by WriteTo.
	Width, Height vg.Length

	series int // violins, lines and swatches drawn
}

// NewFigure returns an empty figure titled title, with subtitle on a
// second line if it is not empty.
func NewFigure(title, subtitle string, legend LegendPos) *Figure {
	p := plot.New()
	p.Title.Text = title
	if subtitle != "" {
		p.Title.Text += "\n" + subtitle
	}
	p.Title.TextStyle.Font.Size = vg.Points(TitleSize)
	p.X.Label.TextStyle.Font.Size = vg.Points(LabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(LabelSize)

	p.Legend.Top = true
	p.Legend.Left = legend == UpperLeft
	p.Legend.TextStyle.Font.Size = vg.Points(LabelSize - 2)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	return &Figure{plot: p, Width: 8 * vg.Inch, Height: 6 * vg.Inch}
}

// SetLabels sets the axis labels.
func (f *Figure) SetLabels(x, y string) {
	f.plot.X.Label.Text = x
	f.plot.Y.Label.Text = y
}

// AddViolin draws the distribution of values at horizontal position x.
func (f *Figure) AddViolin(x float64, values []float64, fill color.Color) error {
	v, err := NewViolin(x, values)
	if err != nil {
		return err
	}
	v.FillColor = withAlpha(fill, 0x80)
	v.LineStyle.Color = fill
	f.plot.Add(v)
	f.series++
	return nil
}

// AddLine draws the points pts with marker m in color c and lists
// them in the legend under label, if label is not empty.
func (f *Figure) AddLine(pts plotter.XYs, c color.Color, m Marker, label string) error {
	var thumbs []plot.Thumbnailer
	if m.Line {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line %q: %v", label, err)
		}
		l.LineStyle.Color = c
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Dashes = m.Dash
		f.plot.Add(l)
		thumbs = append(thumbs, l)
	}
	if m.Shape != nil {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("line %q: %v", label, err)
		}
		s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: m.Shape}
		f.plot.Add(s)
		thumbs = append(thumbs, s)
	}
	if label != "" {
		f.plot.Legend.Add(label, thumbs...)
	}
	f.series++
	return nil
}

// AddReference draws a dashed line through pts in color c. Reference
// lines are not data: they do not appear in the legend and a figure
// holding only reference lines is still Empty.
func (f *Figure) AddReference(pts plotter.XYs, c color.Color) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("reference line: %v", err)
	}
	l.LineStyle = draw.LineStyle{
		Color:  c,
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(6), vg.Points(3)},
	}
	f.plot.Add(l)
	return nil
}

// AddSwatches draws every color of p as a unit square, foreground
// colors along the bottom row and their background colors above, and
// hides the axes.
func (f *Figure) AddSwatches(p Palette) error {
	for i := 0; i < p.Len(); i++ {
		for row, c := range []color.Color{p.FG(i), p.BG(i)} {
			x, y := float64(i), float64(row)
			sq, err := plotter.NewPolygon(plotter.XYs{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x + 1, Y: y + 1}, {X: x, Y: y + 1}})
			if err != nil {
				return err
			}
			sq.Color = c
			sq.LineStyle.Width = 0
			f.plot.Add(sq)
		}
	}
	f.plot.HideAxes()
	f.series++
	return nil
}

// Empty reports whether no data has been drawn on f.
func (f *Figure) Empty() bool {
	return f.series == 0
}

// WriteTo encodes f as PDF to w.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	wt, err := f.plot.WriterTo(f.Width, f.Height, "pdf")
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), a}
}
