// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/graphsort/scalingplot/plots"
)

var csvHeader = []string{"file", "series", "algorithm", "threads", "runs", "mean", "estimate", "ideal"}

// WriteCSV writes one row per thread count of every series drawn in
// results: the mean time of the runs and the plotted estimate, which
// is the mean time itself or a speedup depending on the chart. The
// ideal column holds the ideal time for absolute timing charts and is
// empty otherwise. Charts without a file are skipped.
func WriteCSV(out io.Writer, results []plots.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if r.File == "" {
			continue
		}
		for _, sr := range r.Series {
			for _, p := range sr.Series.Points {
				ideal := ""
				if p.Ideal != 0 {
					ideal = strof(p.Ideal)
				}
				row := []string{
					r.File,
					sr.Label,
					sr.Series.Config.Algorithm,
					strconv.Itoa(p.Threads),
					strconv.Itoa(len(p.Times)),
					strof(p.Mean),
					strof(p.Estimate),
					ideal,
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	w.Flush()
	return w.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
