// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/graphsort/scalingplot/plots"
	"github.com/graphsort/scalingplot/scalestat"
	"github.com/graphsort/scalingplot/scaling"
)

func TestNewEntry(t *testing.T) {
	ser := &scaling.Series{
		Kind:     scaling.StrongScaling,
		Config:   scaling.Config{Algorithm: "bitset"},
		Summary:  scalestat.Summary{N: 3, Q25: 9.5, Median: 10, Q75: 10.5},
		Baseline: 10.25,
		Points:   []scaling.Point{{Threads: 1}, {Threads: 2}},
	}
	got := NewEntry(plots.Result{
		File:   "strongscaling_gtSOFTWARE_n1000000.pdf",
		Title:  "Strong Scaling for SOFTWARE Graph (1000000nodes)",
		Series: []plots.SeriesResult{{Label: "Node-Lookup", Series: ser}},
	})
	want := Entry{
		Title: "Strong Scaling for SOFTWARE Graph (1000000nodes)",
		File:  "strongscaling_gtSOFTWARE_n1000000.pdf",
		Series: []Series{{
			Label: "Node-Lookup", Algorithm: "bitset", Threads: 1, Runs: 3,
			Median: 10, Q25: 9.5, Q75: 10.5, Mean: 10.25,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewEntry mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, []Entry{
		{
			Title:  "Strong <scaling>",
			File:   "strongscaling_gtSOFTWARE_n1000000.pdf",
			Series: []Series{{Label: "Node-Lookup", Algorithm: "bitset", Threads: 1, Runs: 2, Median: 10, Q25: 10, Q75: 10, Mean: 10}},
		},
		{Title: "Weak Scaling for RANDOMLIN8 Graph (1000000nodes, deg8)"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<a href="strongscaling_gtSOFTWARE_n1000000.pdf">Strong &lt;scaling&gt;</a>`,
		`<td>Node-Lookup</td><td>bitset</td><td>1</td><td>2</td><td>10s</td>`,
		`Weak Scaling for RANDOMLIN8 Graph (1000000nodes, deg8) (no data)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	abs := &scaling.Series{
		Kind:   scaling.AbsTiming,
		Config: scaling.Config{Algorithm: "bitset"},
		Points: []scaling.Point{
			{Threads: 1, Times: []float64{9, 11}, Mean: 10, Estimate: 10, Ideal: 10},
			{Threads: 4, Times: []float64{3}, Mean: 3, Estimate: 3, Ideal: 2.5},
		},
	}
	strong := &scaling.Series{
		Kind:   scaling.StrongScaling,
		Config: scaling.Config{Algorithm: "worksteal"},
		Points: []scaling.Point{{Threads: 2, Times: []float64{5, 5}, Mean: 5, Estimate: 1}},
	}
	var buf bytes.Buffer
	err := WriteCSV(&buf, []plots.Result{
		{File: "abs.pdf", Series: []plots.SeriesResult{{Label: "Batch insertion, Atomic", Series: abs}}},
		{File: "", Title: "no data"},
		{File: "strong.pdf", Series: []plots.SeriesResult{{Label: "Worksteal", Series: strong}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `file,series,algorithm,threads,runs,mean,estimate,ideal
abs.pdf,"Batch insertion, Atomic",bitset,1,2,10,10,10
abs.pdf,"Batch insertion, Atomic",bitset,4,1,3,3,2.5
strong.pdf,Worksteal,worksteal,2,2,5,1,
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteCSV mismatch (-want +got):\n%s", diff)
	}
}
