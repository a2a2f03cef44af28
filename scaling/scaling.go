// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaling builds the series of a scaling chart: for one
// algorithm configuration it groups the stored runs by thread count,
// derives mean times or speedups relative to the smallest thread
// count, and draws the result onto a chart.Figure.
package scaling

import (
	"context"
	"fmt"
	"io"

	"github.com/graphsort/scalingplot/chart"
	"github.com/graphsort/scalingplot/query"
	"github.com/graphsort/scalingplot/scalestat"
	"gonum.org/v1/plot/plotter"
)

// Kind is the metric a series plots.
type Kind int

const (
	// AbsTiming plots mean elapsed time per thread count along with
	// the ideal curve m0/t.
	AbsTiming Kind = iota
	// StrongScaling plots speedup over the baseline at a fixed
	// problem size.
	StrongScaling
	// WeakScaling plots speedup over the baseline with the problem
	// size growing in proportion to the thread count.
	WeakScaling
)

var kindNames = [...]struct{ file, title string }{
	AbsTiming:     {"abstiming", "Absolute Timing"},
	StrongScaling: {"strongscaling", "Strong Scaling"},
	WeakScaling:   {"weakscaling", "Weak Scaling"},
}

// String returns the lower-case name of k, as used in file names.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k].file
}

// Title returns the display name of k.
func (k Kind) Title() string {
	if k < 0 || int(k) >= len(kindNames) {
		return k.String()
	}
	return kindNames[k].title
}

// Column names of the measurements table used by the builders.
const (
	colThreads = "number_of_threads"
	colTime    = "total_time"
	colNodes   = "graph_num_nodes"
)

// A Config selects the runs of one series.
type Config struct {
	Algorithm  string
	Optimistic bool
	GraphType  string

	// Hostname is a LIKE pattern for the machines whose runs are
	// included.
	Hostname string

	// Size is the node count of the graph for AbsTiming and
	// StrongScaling. For WeakScaling it is ignored.
	Size int64

	// BaseSize is the node count per thread for WeakScaling: the
	// run with t threads must have exactly BaseSize*t nodes.
	BaseSize int64

	// Extra is ANDed onto the filter.
	Extra query.Filter
}

// common returns the part of the filter shared by every kind.
func (c Config) common() query.Filter {
	return query.And(
		query.Eq("enable_analysis", false),
		query.Eq("debug", false),
		query.Eq("verbose", false),
		query.Ge("processors", query.Column(colThreads)),
		query.Eq("algorithm", c.Algorithm),
		query.Eq("optimistic", c.Optimistic),
		query.Eq("graph_type", c.GraphType),
		query.Like("hostname", c.Hostname),
	)
}

// Filter returns the criterion selecting every run of c for a chart
// of kind k. Its distinct thread counts are the groups of the series.
func (c Config) Filter(k Kind) query.Filter {
	f := c.common()
	if k == WeakScaling {
		f = f.And(query.Eq(colNodes, query.Scaled{Factor: c.BaseSize, Column: colThreads}))
	} else {
		f = f.And(query.Eq(colNodes, c.Size))
	}
	return f.Merge(c.Extra)
}

// ThreadFilter returns the criterion selecting the runs of c with
// exactly threads threads. For WeakScaling the size constraint is
// the literal BaseSize*threads.
func (c Config) ThreadFilter(k Kind, threads int) query.Filter {
	f := c.common()
	if k == WeakScaling {
		f = f.And(query.Eq(colNodes, c.BaseSize*int64(threads)))
	} else {
		f = f.And(query.Eq(colNodes, c.Size))
	}
	return f.Merge(c.Extra).And(query.Eq(colThreads, threads))
}

// A Store is the read side of the measurement store.
type Store interface {
	// Column returns the values of column in the runs matching f.
	Column(ctx context.Context, column string, f query.Filter) ([]float64, error)
	// Groups returns the distinct values of column in the runs
	// matching f, in ascending order.
	Groups(ctx context.Context, column string, f query.Filter) ([]int, error)
}

// A Point is the aggregate of the runs at one thread count.
type Point struct {
	Threads int
	Times   []float64 // elapsed times of the runs, in store order
	Mean    float64   // mean of Times

	// Values is the distribution drawn at Threads: Times for
	// AbsTiming, or the per-run speedups Baseline/Times otherwise.
	Values []float64

	// Estimate is the plotted point: Mean for AbsTiming, or the
	// speedup Baseline/Mean otherwise.
	Estimate float64

	// Ideal is Baseline/Threads for AbsTiming and zero otherwise.
	Ideal float64
}

// A Series is one configuration's points in ascending thread order.
type Series struct {
	Kind   Kind
	Config Config

	// Summary holds the quartiles of the runs at the smallest
	// thread count.
	Summary scalestat.Summary

	// Baseline is the mean time at the smallest thread count.
	Baseline float64

	Points []Point
}

// Build queries the runs of c and derives the series of kind k.
//
// The smallest thread count is the baseline. If the configuration
// has no runs, or none at the baseline, Build returns a nil Series
// and writes nothing. Otherwise it writes the baseline summary line
// to diag, if diag is non-nil.
func Build(ctx context.Context, s Store, k Kind, c Config, diag io.Writer) (*Series, error) {
	groups, err := s.Groups(ctx, colThreads, c.Filter(k))
	if err != nil {
		return nil, err
	}

	var (
		threads []int
		times   []float64
		samples = make(map[int][]float64)
	)
	for i, t := range groups {
		xs, err := s.Column(ctx, colTime, c.ThreadFilter(k, t))
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			if i == 0 {
				return nil, nil
			}
			continue
		}
		samples[t] = xs
		for _, x := range xs {
			threads = append(threads, t)
			times = append(times, x)
		}
	}
	if len(threads) == 0 {
		return nil, nil
	}

	means := scalestat.GroupMeans(threads, times)
	ser := &Series{
		Kind:     k,
		Config:   c,
		Summary:  scalestat.Summarize(samples[means[0].Threads]),
		Baseline: means[0].Mean,
	}
	for _, g := range means {
		p := Point{
			Threads: g.Threads,
			Times:   samples[g.Threads],
			Mean:    g.Mean,
		}
		switch k {
		case AbsTiming:
			p.Values = p.Times
			p.Estimate = p.Mean
			p.Ideal = ser.Baseline / float64(p.Threads)
		default:
			p.Values = scalestat.Speedups(ser.Baseline, p.Times)
			p.Estimate = ser.Baseline / p.Mean
		}
		ser.Points = append(ser.Points, p)
	}

	if diag != nil {
		if err := ser.Summary.WriteDiag(diag, c.Algorithm); err != nil {
			return nil, err
		}
	}
	return ser, nil
}

// A Style is the appearance of a series on a figure.
type Style struct {
	Color  int // palette index
	Marker chart.Marker
	Label  string
}

// Draw draws s onto f: a violin per thread count, the ideal curve for
// AbsTiming, and a line through the point estimates.
func (s *Series) Draw(f *chart.Figure, pal chart.Palette, st Style) error {
	fg := pal.FG(st.Color)
	var est, ideal plotter.XYs
	for _, p := range s.Points {
		if err := f.AddViolin(float64(p.Threads), p.Values, fg); err != nil {
			return fmt.Errorf("%s at %d threads: %v", s.Config.Algorithm, p.Threads, err)
		}
		est = append(est, plotter.XY{X: float64(p.Threads), Y: p.Estimate})
		ideal = append(ideal, plotter.XY{X: float64(p.Threads), Y: p.Ideal})
	}
	if s.Kind == AbsTiming {
		if err := f.AddReference(ideal, pal.BG(st.Color)); err != nil {
			return err
		}
	}
	return f.AddLine(est, fg, st.Marker, st.Label)
}

// Add builds the series of kind k for c and, if it has data, draws it
// onto f. It returns the series, or nil if there was no data.
func Add(ctx context.Context, s Store, f *chart.Figure, pal chart.Palette, diag io.Writer, k Kind, c Config, st Style) (*Series, error) {
	ser, err := Build(ctx, s, k, c, diag)
	if err != nil || ser == nil {
		return nil, err
	}
	if err := ser.Draw(f, pal, st); err != nil {
		return nil, err
	}
	return ser, nil
}
