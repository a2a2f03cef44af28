// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalestat computes the summary statistics behind scaling
// charts: quartile summaries of timing samples, means, speedup ratios
// and per-thread-count aggregation.
package scalestat

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Summary is the quartile summary of a sample.
type Summary struct {
	N      int
	Q25    float64
	Median float64
	Q75    float64
}

// Summarize computes the quartile summary of xs. xs must be non-empty;
// Summarize panics otherwise. xs is not modified.
//
// Q25 and Q75 interpolate linearly between closest ranks (Hyndman and
// Fan's R7, the numpy default). For any sample Q25 <= Median <= Q75,
// and all three equal the sample value when every sample is equal.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		panic("scalestat: Summarize of empty sample")
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s := stats.Sample{Xs: sorted, Sorted: true}
	return Summary{
		N:      len(xs),
		Q25:    linearQuantile(sorted, 0.25),
		Median: s.Quantile(0.5),
		Q75:    linearQuantile(sorted, 0.75),
	}
}

// linearQuantile returns the p-quantile of the sorted, non-empty xs by
// linear interpolation at rank (n-1)p.
func linearQuantile(xs []float64, p float64) float64 {
	h := float64(len(xs)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return xs[int(lo)] + (h-lo)*(xs[int(hi)]-xs[int(lo)])
}

// WriteDiag writes the one-line diagnostic record for a series whose
// baseline summary is s.
func (s Summary) WriteDiag(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "%s  :  %v , [%v , %v]\n", name, s.Median, s.Q25, s.Q75)
	return err
}

// Mean returns the arithmetic mean of xs, or NaN if xs is empty.
func Mean(xs []float64) float64 {
	return stats.Mean(xs)
}

// Speedups returns base/x for each x in xs.
func Speedups(base float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = base / x
	}
	return out
}

// A GroupMean is the mean elapsed time of the runs at one thread count.
type GroupMean struct {
	Threads int
	Mean    float64
}

// GroupMeans groups the runs (threads[i], times[i]) by thread count
// and returns the mean time of each group, in ascending thread order.
// threads and times must have the same length.
func GroupMeans(threads []int, times []float64) []GroupMean {
	if len(threads) != len(times) {
		panic(fmt.Sprintf("scalestat: %d thread counts for %d times", len(threads), len(times)))
	}
	if len(threads) == 0 {
		return nil
	}
	tab := new(table.Builder).Add("threads", threads).Add("time", times).Done()
	g := ggstat.Agg("threads")(ggstat.AggMean("time")).F(tab)
	t := table.Flatten(table.SortBy(g, "threads"))

	ts := t.MustColumn("threads").([]int)
	means := t.MustColumn("mean time").([]float64)
	out := make([]GroupMean, len(ts))
	for i := range ts {
		out[i] = GroupMean{ts[i], means[i]}
	}
	return out
}
