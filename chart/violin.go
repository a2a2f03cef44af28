// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// violinSamples is the number of points at which the density of a
// violin is sampled.
const violinSamples = 100

// A Violin draws the distribution of a sample as a mirrored kernel
// density estimate centered on a horizontal position. It implements
// plot.Plotter and plot.DataRanger.
type Violin struct {
	// Location is the horizontal center of the violin in data
	// coordinates.
	Location float64

	// HalfWidth is the horizontal extent, in data units, of the
	// widest part of the violin on each side of Location.
	HalfWidth float64

	// FillColor fills the body of the violin. If nil, the body
	// is not filled.
	FillColor color.Color

	// LineStyle outlines the violin.
	LineStyle draw.LineStyle

	min, max float64
	ys, pdf  []float64 // density, sampled across [min, max]
}

// NewViolin returns a violin of values at location x.
// values must be non-empty and free of NaNs; it is not modified.
func NewViolin(x float64, values []float64) (*Violin, error) {
	if len(values) == 0 {
		return nil, errors.New("violin of empty sample")
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	for _, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("violin sample is not finite")
		}
	}
	v := &Violin{
		Location:  x,
		HalfWidth: 0.4,
		LineStyle: draw.LineStyle{Width: vg.Points(0.5)},
		min:       sorted[0],
		max:       sorted[len(sorted)-1],
	}
	if v.min == v.max {
		return v, nil
	}

	tab := new(table.Builder).Add("v", sorted).Done()
	kde := ggstat.Density{
		X:      "v",
		N:      violinSamples,
		Domain: ggstat.DomainFixed{Min: v.min, Max: v.max},
	}.F(tab)
	t := table.Flatten(kde)
	v.ys = t.MustColumn("v").([]float64)
	v.pdf = t.MustColumn("probability density").([]float64)
	return v, nil
}

// Plot implements the plot.Plotter interface.
func (v *Violin) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := v.LineStyle
	if sty.Color == nil {
		sty.Color = v.FillColor
	}

	if len(v.ys) == 0 {
		// Every value is equal; there is no shape to draw.
		y := trY(v.min)
		tick := []vg.Point{
			{X: trX(v.Location - v.HalfWidth), Y: y},
			{X: trX(v.Location + v.HalfWidth), Y: y},
		}
		tickSty := sty
		tickSty.Width = vg.Points(1.5)
		c.StrokeLines(tickSty, c.ClipLinesXY(tick)...)
		return
	}

	maxPDF := 0.0
	for _, d := range v.pdf {
		maxPDF = math.Max(maxPDF, d)
	}
	if maxPDF == 0 {
		return
	}

	// Walk up the right side of the violin and back down the left.
	n := len(v.ys)
	pts := make([]vg.Point, 2*n)
	for i, y := range v.ys {
		w := v.HalfWidth * v.pdf[i] / maxPDF
		pts[i] = vg.Point{X: trX(v.Location + w), Y: trY(y)}
		pts[2*n-1-i] = vg.Point{X: trX(v.Location - w), Y: trY(y)}
	}
	if v.FillColor != nil {
		c.FillPolygon(v.FillColor, c.ClipPolygonXY(pts))
	}
	outline := append(pts, pts[0])
	c.StrokeLines(sty, c.ClipLinesXY(outline)...)

	// Extrema bars.
	bar := func(y float64) []vg.Point {
		return []vg.Point{
			{X: trX(v.Location - v.HalfWidth/4), Y: trY(y)},
			{X: trX(v.Location + v.HalfWidth/4), Y: trY(y)},
		}
	}
	c.StrokeLines(sty, c.ClipLinesXY(bar(v.min), bar(v.max))...)
}

// DataRange implements the plot.DataRanger interface.
func (v *Violin) DataRange() (xmin, xmax, ymin, ymax float64) {
	return v.Location - v.HalfWidth, v.Location + v.HalfWidth, v.min, v.max
}

// Extent returns the minimum and maximum of the sample.
func (v *Violin) Extent() (min, max float64) {
	return v.min, v.max
}
