// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots assembles complete scaling charts: it overlays the
// series of several algorithm configurations on one figure, titles
// and names the figure, and writes it as a PDF file.
package plots

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/graphsort/scalingplot/chart"
	"github.com/graphsort/scalingplot/query"
	"github.com/graphsort/scalingplot/scaling"
	"github.com/graphsort/scalingplot/storage/fs"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Env is the environment charts are produced in. An Env is a value:
// assemblers never modify it, and independent charts share nothing
// beyond it.
type Env struct {
	// Store holds the measurements.
	Store scaling.Store

	// Out receives the rendered files.
	Out fs.FS

	// Palette assigns series colors. The zero Palette means
	// chart.DefaultPalette.
	Palette chart.Palette

	// Diag receives one summary line per series. It may be nil.
	Diag io.Writer

	// Log, if non-nil, reports each file written.
	Log *log.Logger

	// Hostname is the LIKE pattern selecting benchmark machines.
	// If empty, DefaultHostname is used.
	Hostname string

	// Width and Height override the page size if non-zero.
	Width, Height vg.Length
}

// DefaultHostname matches the cluster the benchmarks ran on.
const DefaultHostname = "e%"

func (e Env) palette() chart.Palette {
	if e.Palette.Len() == 0 {
		return chart.DefaultPalette
	}
	return e.Palette
}

func (e Env) hostname() string {
	if e.Hostname == "" {
		return DefaultHostname
	}
	return e.Hostname
}

// A Result describes one assembled chart.
type Result struct {
	// File is the name of the written file, or "" if no series
	// had data and nothing was written.
	File  string
	Title string

	// Series lists the series drawn, in drawing order.
	Series []SeriesResult
}

// A SeriesResult is one series of a chart.
type SeriesResult struct {
	Label  string
	Series *scaling.Series
}

// Options are the parameters of a single-graph chart.
type Options struct {
	// Size is the graph node count. For weak scaling it only
	// names the file and title.
	Size int64

	GraphType string

	// Extra is ANDed onto every series' filter.
	Extra query.Filter

	// Suffix distinguishes charts of the same kind, graph type
	// and size. It is appended to the file name and the title.
	Suffix string

	// Title, if set, replaces the derived title.
	Title string

	// BaseSize is the per-thread node count for weak scaling.
	BaseSize int64
}

// Defaults for zero Options fields.
const (
	DefaultSize      = 1000000
	DefaultGraphType = "SOFTWARE"
	DefaultBaseSize  = 100000
)

func (o Options) withDefaults() Options {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.GraphType == "" {
		o.GraphType = DefaultGraphType
	}
	if o.BaseSize == 0 {
		o.BaseSize = DefaultBaseSize
	}
	return o
}

// Filename returns the file name of a chart:
// <kind>_gt<graphtype>_n<size>[_<suffix>].pdf.
func Filename(k scaling.Kind, graphType string, size int64, suffix string) string {
	name := k.String() + "_gt" + graphType + "_n" + strconv.FormatInt(size, 10)
	if suffix != "" {
		name += "_" + suffix
	}
	return name + ".pdf"
}

// Title returns the title of a chart: override if it is set, and
// otherwise "<Kind> for <graphtype> Graph (<size>nodes[, <suffix>])".
func Title(k scaling.Kind, graphType string, size int64, suffix, override string) string {
	if override != "" {
		return override
	}
	detail := strconv.FormatInt(size, 10) + "nodes"
	if suffix != "" {
		detail += ", " + suffix
	}
	return fmt.Sprintf("%s for %s Graph (%s)", k.Title(), graphType, detail)
}

// A SeriesSpec selects and styles one series of a chart.
type SeriesSpec struct {
	Algorithm  string
	Optimistic bool

	// GraphType and Extra, if set, override the chart's graph
	// type and extend its extra filter for this series.
	GraphType string
	Extra     query.Filter

	Color  int    // palette index
	Marker string // marker style, as for chart.ParseMarker; "" means "D-"
	Label  string
}

// DefaultMarker is the marker of series that do not set one.
const DefaultMarker = "D-"

// A figureSpec is a fully resolved chart description.
type figureSpec struct {
	kind      scaling.Kind
	file      string
	title     string
	subtitle  string
	xlabel    string
	ylabel    string
	legend    chart.LegendPos
	opts      Options
	series    []SeriesSpec
	reference plotter.XYs
}

// Subtitles and axis labels.
const (
	timeSubtitle    = "Time [sec] vs. Number of threads"
	speedupSubtitle = "Speedup vs. Number of Threads"
	threadsLabel    = "Number of threads"
)

// render builds every series of s onto a new figure and writes it,
// unless no series had data.
func (e Env) render(ctx context.Context, s figureSpec) (Result, error) {
	pal := e.palette()
	fig := chart.NewFigure(s.title, s.subtitle, s.legend)
	fig.SetLabels(s.xlabel, s.ylabel)
	if e.Width != 0 {
		fig.Width = e.Width
	}
	if e.Height != 0 {
		fig.Height = e.Height
	}

	res := Result{Title: s.title}
	for _, ss := range s.series {
		mstyle := ss.Marker
		if mstyle == "" {
			mstyle = DefaultMarker
		}
		marker, err := chart.ParseMarker(mstyle)
		if err != nil {
			return Result{}, err
		}
		gt := s.opts.GraphType
		if ss.GraphType != "" {
			gt = ss.GraphType
		}
		cfg := scaling.Config{
			Algorithm:  ss.Algorithm,
			Optimistic: ss.Optimistic,
			GraphType:  gt,
			Hostname:   e.hostname(),
			Size:       s.opts.Size,
			BaseSize:   s.opts.BaseSize,
			Extra:      s.opts.Extra.Merge(ss.Extra),
		}
		style := scaling.Style{Color: ss.Color, Marker: marker, Label: ss.Label}
		ser, err := scaling.Add(ctx, e.Store, fig, pal, e.Diag, s.kind, cfg, style)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %s: %v", s.file, ss.Label, err)
		}
		if ser != nil {
			res.Series = append(res.Series, SeriesResult{Label: ss.Label, Series: ser})
		}
	}
	if fig.Empty() {
		return res, nil
	}
	if s.reference != nil {
		if err := fig.AddReference(s.reference, referenceColor); err != nil {
			return Result{}, err
		}
	}
	meta := map[string]string{"kind": s.kind.String(), "title": s.title}
	if err := e.write(ctx, s.file, fig, meta); err != nil {
		return Result{}, err
	}
	res.File = s.file
	return res, nil
}

// write encodes fig to the named file in e.Out.
func (e Env) write(ctx context.Context, name string, fig *chart.Figure, meta map[string]string) error {
	w, err := e.Out.NewWriter(ctx, name, meta)
	if err != nil {
		return fmt.Errorf("%s: %v", name, err)
	}
	if _, err := fig.WriteTo(w); err != nil {
		w.CloseWithError(err)
		return fmt.Errorf("%s: %v", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %v", name, err)
	}
	if e.Log != nil {
		e.Log.Printf("File written to:\t%s", name)
	}
	return nil
}
