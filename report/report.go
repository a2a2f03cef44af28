// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes an HTML index of the charts produced by a
// batch run, with the baseline statistics of every series.
package report

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/graphsort/scalingplot/plots"
)

// An Entry is one chart of the index.
type Entry struct {
	Title  string
	File   string // "" if the chart had no data
	Series []Series
}

// A Series is the baseline summary of one series of a chart.
type Series struct {
	Label     string
	Algorithm string
	Threads   int // baseline thread count
	Runs      int
	Median    float64
	Q25, Q75  float64
	Mean      float64
}

// NewEntry summarizes the result of assembling a chart.
func NewEntry(r plots.Result) Entry {
	e := Entry{Title: r.Title, File: r.File}
	for _, sr := range r.Series {
		s := sr.Series
		rs := Series{
			Label:     sr.Label,
			Algorithm: s.Config.Algorithm,
			Runs:      s.Summary.N,
			Median:    s.Summary.Median,
			Q25:       s.Summary.Q25,
			Q75:       s.Summary.Q75,
			Mean:      s.Baseline,
		}
		if len(s.Points) > 0 {
			rs.Threads = s.Points[0].Threads
		}
		e.Series = append(e.Series, rs)
	}
	return e
}

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Scaling charts</title>
<style>
table.stats { border-collapse: collapse; margin-bottom: 1em; }
table.stats td, table.stats th { padding: 0 0.5em; text-align: right; }
table.stats td:first-child, table.stats th:first-child { text-align: left; }
.nodata { color: #888; }
</style>
</head>
<body>
<h1>Scaling charts</h1>
{{range .}}
<h2>{{if .File}}<a href="{{.File}}">{{.Title}}</a>{{else}}<span class="nodata">{{.Title}} (no data)</span>{{end}}</h2>
{{if .Series}}
<table class="stats">
<tr><th>series</th><th>algorithm</th><th>threads</th><th>runs</th><th>median</th><th>q25</th><th>q75</th><th>mean</th></tr>
{{range .Series}}<tr><td>{{.Label}}</td><td>{{.Algorithm}}</td><td>{{.Threads}}</td><td>{{.Runs}}</td><td>{{sec .Median}}</td><td>{{sec .Q25}}</td><td>{{sec .Q75}}</td><td>{{sec .Mean}}</td></tr>
{{end}}</table>
{{end}}
{{end}}
</body>
</html>
`))

var htmlFuncs = template.FuncMap{
	"sec": func(x float64) string {
		return formatSec(x)
	},
}

// WriteHTML writes the index of entries to w.
func WriteHTML(w io.Writer, entries []Entry) error {
	return htmlTemplate.Execute(w, entries)
}
