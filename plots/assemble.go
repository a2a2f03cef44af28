// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"context"
	"image/color"
	"strconv"

	"github.com/graphsort/scalingplot/chart"
	"github.com/graphsort/scalingplot/scaling"
	"gonum.org/v1/plot/plotter"
)

// referenceColor draws the ideal-scaling lines.
var referenceColor = color.NRGBA{R: 0xFF, A: 0xFF}

// maxThreads is the thread count of the largest benchmark machine.
const maxThreads = 24

// AbsTiming draws the mean time of the four insertion variants of
// the bitset algorithm, each with its ideal curve m0/t.
func (e Env) AbsTiming(ctx context.Context, o Options) (Result, error) {
	o = o.withDefaults()
	return e.render(ctx, figureSpec{
		kind:     scaling.AbsTiming,
		file:     Filename(scaling.AbsTiming, o.GraphType, o.Size, o.Suffix),
		title:    Title(scaling.AbsTiming, o.GraphType, o.Size, o.Suffix, o.Title),
		subtitle: timeSubtitle,
		xlabel:   threadsLabel,
		ylabel:   "Time [sec]",
		legend:   chart.UpperLeft,
		opts:     o,
		series: []SeriesSpec{
			{Algorithm: "bitset_global", Optimistic: false, Color: 0, Label: "Single insertion, Lock"},
			{Algorithm: "bitset", Optimistic: false, Color: 1, Label: "Batch insertion, Lock"},
			{Algorithm: "bitset_global", Optimistic: true, Color: 2, Label: "Single insertion, Atomic"},
			{Algorithm: "bitset", Optimistic: true, Color: 3, Label: "Batch insertion, Atomic"},
		},
	})
}

// scalingSeries are the three parallel algorithms compared by the
// scaling charts.
var scalingSeries = []SeriesSpec{
	{Algorithm: "bitset", Optimistic: true, Color: 0, Label: "Node-Lookup"},
	{Algorithm: "worksteal", Optimistic: true, Color: 1, Label: "Worksteal"},
	{Algorithm: "locallist", Optimistic: true, Color: 2, Label: "Scatter-Gather"},
}

// idealSpeedup is the line y = x over the thread counts.
func idealSpeedup() plotter.XYs {
	var xys plotter.XYs
	for t := 1; t < maxThreads; t++ {
		xys = append(xys, plotter.XY{X: float64(t), Y: float64(t)})
	}
	return xys
}

// StrongScaling draws the speedup of the parallel algorithms on a
// graph of fixed size, against the ideal y = x.
func (e Env) StrongScaling(ctx context.Context, o Options) (Result, error) {
	o = o.withDefaults()
	return e.render(ctx, figureSpec{
		kind:      scaling.StrongScaling,
		file:      Filename(scaling.StrongScaling, o.GraphType, o.Size, o.Suffix),
		title:     Title(scaling.StrongScaling, o.GraphType, o.Size, o.Suffix, o.Title),
		subtitle:  speedupSubtitle,
		xlabel:    threadsLabel,
		ylabel:    "Speedup",
		legend:    chart.UpperLeft,
		opts:      o,
		series:    scalingSeries,
		reference: idealSpeedup(),
	})
}

// WeakScaling draws the speedup of the parallel algorithms on graphs
// of o.BaseSize nodes per thread, against the ideal y = 1.
// The file name and title use o.Size.
func (e Env) WeakScaling(ctx context.Context, o Options) (Result, error) {
	o = o.withDefaults()
	return e.render(ctx, figureSpec{
		kind:      scaling.WeakScaling,
		file:      Filename(scaling.WeakScaling, o.GraphType, o.Size, o.Suffix),
		title:     Title(scaling.WeakScaling, o.GraphType, o.Size, o.Suffix, o.Title),
		subtitle:  speedupSubtitle,
		xlabel:    threadsLabel,
		ylabel:    "Speedup",
		legend:    chart.UpperRight,
		opts:      o,
		series:    scalingSeries,
		reference: plotter.XYs{{X: 1, Y: 1}, {X: maxThreads, Y: 1}},
	})
}

// ComparisonTitle is the title of the graph type comparison chart.
const ComparisonTitle = "Strong Scaling for different graph types"

// GraphTypeComparison draws the strong scaling of one algorithm on
// several graphs, one series per spec. Specs set the graph type and
// extra filter of their series. Only o.Size, o.Extra and o.Title are
// used from o.
func (e Env) GraphTypeComparison(ctx context.Context, o Options, specs []SeriesSpec) (Result, error) {
	o = o.withDefaults()
	title := o.Title
	if title == "" {
		title = ComparisonTitle
	}
	return e.render(ctx, figureSpec{
		kind:      scaling.StrongScaling,
		file:      "strongscaling_gtALL_n" + strconv.FormatInt(o.Size, 10) + ".pdf",
		title:     title,
		subtitle:  speedupSubtitle,
		xlabel:    threadsLabel,
		ylabel:    "Speedup",
		legend:    chart.UpperLeft,
		opts:      o,
		series:    specs,
		reference: idealSpeedup(),
	})
}

// ColorsFile is the name of the palette preview.
const ColorsFile = "colors.pdf"

// Colors writes a preview of the palette: each foreground color under
// its background color.
func (e Env) Colors(ctx context.Context) (Result, error) {
	const title = "Colors"
	fig := chart.NewFigure(title, "", chart.UpperLeft)
	fig.Height = fig.Width / 4
	if err := fig.AddSwatches(e.palette()); err != nil {
		return Result{}, err
	}
	if err := e.write(ctx, ColorsFile, fig, map[string]string{"kind": "colors"}); err != nil {
		return Result{}, err
	}
	return Result{File: ColorsFile, Title: title}, nil
}
