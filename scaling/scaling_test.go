// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaling

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/graphsort/scalingplot/chart"
	"github.com/graphsort/scalingplot/measure"
	"github.com/graphsort/scalingplot/query"
	"github.com/graphsort/scalingplot/storage/db/dbtest"
)

var plain = Config{
	Algorithm:  "X",
	Optimistic: true,
	GraphType:  "SOFTWARE",
	Hostname:   "e%",
	Size:       1000000,
}

func runs(alg string, times map[int][]float64) []*measure.Measurement {
	var ms []*measure.Measurement
	for threads, ts := range times {
		for _, x := range ts {
			ms = append(ms, dbtest.Run(alg, threads, x))
		}
	}
	return ms
}

func estimates(s *Series) map[int]float64 {
	m := make(map[int]float64)
	for _, p := range s.Points {
		m[p.Threads] = p.Estimate
	}
	return m
}

func TestStrongScaling(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	dbtest.Populate(t, db, runs("X", map[int][]float64{1: {10, 10}, 2: {6, 6}, 4: {3, 3}})...)
	// Runs that the fixed filter must exclude.
	noisy := dbtest.Run("X", 2, 100)
	noisy.Debug = true
	other := dbtest.Run("X", 1, 100)
	other.Hostname = "laptop"
	over := dbtest.Run("X", 48, 100)
	dbtest.Populate(t, db, noisy, other, over, dbtest.Run("Y", 1, 100))

	var diag bytes.Buffer
	s, err := Build(ctx, db, StrongScaling, plain, &diag)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("Build returned no series")
	}
	want := map[int]float64{1: 1, 2: 10.0 / 6, 4: 10.0 / 3}
	if diff := cmp.Diff(want, estimates(s), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("speedups mismatch (-want +got):\n%s", diff)
	}
	if s.Points[0].Estimate != 1 {
		t.Errorf("baseline speedup = %v, want exactly 1", s.Points[0].Estimate)
	}
	if diff := cmp.Diff([]float64{10.0 / 3, 10.0 / 3}, s.Points[2].Values, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("per-run speedups at 4 threads (-want +got):\n%s", diff)
	}
	if got, want := diag.String(), "X  :  10 , [10 , 10]\n"; got != want {
		t.Errorf("diagnostic = %q, want %q", got, want)
	}
}

func TestAbsTimingIdeal(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	dbtest.Populate(t, db, runs("X", map[int][]float64{1: {9, 11}, 2: {6, 6}, 3: {4}, 4: {3, 3}})...)
	s, err := Build(context.Background(), db, AbsTiming, plain, nil)
	if err != nil || s == nil {
		t.Fatalf("Build = %v, %v", s, err)
	}
	m0 := s.Baseline
	if m0 != 10 {
		t.Fatalf("baseline = %v, want 10", m0)
	}
	for _, p := range s.Points {
		if p.Ideal != m0/float64(p.Threads) {
			t.Errorf("ideal at %d threads = %v, want %v", p.Threads, p.Ideal, m0/float64(p.Threads))
		}
		if p.Estimate != p.Mean {
			t.Errorf("estimate at %d threads = %v, want mean %v", p.Threads, p.Estimate, p.Mean)
		}
	}
}

func TestNoData(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	dbtest.Populate(t, db, dbtest.Run("Y", 1, 10))
	f := chart.NewFigure("t", "", chart.UpperLeft)
	var diag bytes.Buffer
	for _, k := range []Kind{AbsTiming, StrongScaling, WeakScaling} {
		c := plain
		c.BaseSize = 100000
		s, err := Add(context.Background(), db, f, chart.DefaultPalette, &diag, k, c, Style{Label: "X"})
		if err != nil {
			t.Errorf("%v: %v", k, err)
		}
		if s != nil {
			t.Errorf("%v: got series %+v, want none", k, s)
		}
	}
	if diag.Len() != 0 {
		t.Errorf("diagnostics written: %q", diag.String())
	}
	if !f.Empty() {
		t.Error("figure has series")
	}
}

// recorder is a Store that records the filters it is asked for.
type recorder struct {
	groups  []int
	filters []query.Filter
}

func (r *recorder) Groups(ctx context.Context, column string, f query.Filter) ([]int, error) {
	return r.groups, nil
}

func (r *recorder) Column(ctx context.Context, column string, f query.Filter) ([]float64, error) {
	r.filters = append(r.filters, f)
	return []float64{1}, nil
}

func TestWeakScalingFilter(t *testing.T) {
	c := plain
	c.BaseSize = 100000
	r := &recorder{groups: []int{1, 2, 8, 24}}
	if _, err := Build(context.Background(), r, WeakScaling, c, nil); err != nil {
		t.Fatal(err)
	}
	if len(r.filters) != len(r.groups) {
		t.Fatalf("%d queries for %d groups", len(r.filters), len(r.groups))
	}
	for i, f := range r.filters {
		threads := r.groups[i]
		nodes, ok := f.Lookup("graph_num_nodes")
		if !ok || nodes.Value != int64(100000*threads) {
			t.Errorf("threads %d: size constraint %v, want %d", threads, nodes, 100000*threads)
		}
		tc, ok := f.Lookup("number_of_threads")
		if !ok || tc.Value != int64(threads) {
			t.Errorf("threads %d: thread constraint %v", threads, tc)
		}
	}

	grouping := c.Filter(WeakScaling)
	nodes, _ := grouping.Lookup("graph_num_nodes")
	if want := (query.Scaled{Factor: 100000, Column: "number_of_threads"}); nodes.Value != want {
		t.Errorf("grouping size constraint = %v, want %v", nodes.Value, want)
	}
}

func TestWeakScaling(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	var ms []*measure.Measurement
	for _, r := range []struct {
		threads int
		nodes   int64
		time    float64
	}{
		{1, 100000, 2}, {2, 200000, 2.5}, {4, 400000, 4}, {4, 1000000, 40}, {3, 250000, 1},
	} {
		m := dbtest.Run("X", r.threads, r.time)
		m.GraphNodes = r.nodes
		ms = append(ms, m)
	}
	dbtest.Populate(t, db, ms...)

	c := plain
	c.BaseSize = 100000
	s, err := Build(context.Background(), db, WeakScaling, c, nil)
	if err != nil || s == nil {
		t.Fatalf("Build = %v, %v", s, err)
	}
	want := map[int]float64{1: 1, 2: 0.8, 4: 0.5}
	if diff := cmp.Diff(want, estimates(s), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("weak speedups mismatch (-want +got):\n%s", diff)
	}
}

func TestDraw(t *testing.T) {
	s := &Series{
		Kind:     AbsTiming,
		Baseline: 10,
		Points: []Point{
			{Threads: 1, Values: []float64{9, 11}, Estimate: 10, Ideal: 10},
			{Threads: 2, Values: []float64{5}, Estimate: 5, Ideal: 5},
		},
	}
	f := chart.NewFigure("t", "", chart.UpperLeft)
	m, _ := chart.ParseMarker("o-")
	if err := s.Draw(f, chart.DefaultPalette, Style{Color: 16, Marker: m, Label: "bitset"}); err != nil {
		t.Fatal(err)
	}
	if f.Empty() {
		t.Error("Draw added nothing")
	}

	s.Points[1].Values = []float64{math.NaN()}
	if err := s.Draw(chart.NewFigure("t", "", chart.UpperLeft), chart.DefaultPalette, Style{Marker: m}); err == nil {
		t.Error("Draw of NaN sample succeeded")
	}
}

func TestKind(t *testing.T) {
	for k, want := range map[Kind][2]string{
		AbsTiming:     {"abstiming", "Absolute Timing"},
		StrongScaling: {"strongscaling", "Strong Scaling"},
		WeakScaling:   {"weakscaling", "Weak Scaling"},
	} {
		if k.String() != want[0] || k.Title() != want[1] {
			t.Errorf("%d: got %q, %q", int(k), k.String(), k.Title())
		}
	}
}
