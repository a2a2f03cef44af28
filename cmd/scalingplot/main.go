// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Scalingplot draws the scaling charts of the graph sorting
// benchmarks from a database of measurements.
//
// Usage:
//
//	scalingplot [flags] [kind...]
//
// Scalingplot runs a batch of charts, by default the standard report:
// absolute timings, strong scaling per graph, a comparison of graph
// types, weak scaling per graph and a preview of the color palette.
// If kinds are given, only charts of those kinds are drawn. Kinds are
// abstiming, strongscaling, weakscaling, compare and colors; abs,
// strong and weak are accepted as abbreviations.
//
// Each chart is written as a PDF file to the -o directory, or to the
// Google Cloud Storage bucket given by -gcs. For every series,
// scalingplot prints the algorithm and the median and quartiles of its
// runs at the smallest thread count:
//
//	bitset  :  1.25 , [1.2 , 1.3]
//
// Charts whose series have no runs in the database are skipped.
// The -report flag adds an index.html listing the charts with the
// baseline statistics of each series, and -csv adds data.csv with the
// charted value at every thread count.
//
// The -batch flag reads the charts from a YAML file instead:
//
//	charts:
//	  - kind: strongscaling
//	    graphtype: RANDOMLIN
//	    where: graph_num_edges=7999910
//	    suffix: deg8
//
// The -driver flag selects the database: sqlite3 (the default, where
// -db names the database file) or mysql (where -db is a MySQL data
// source name, such as "user:password@cloudsql(project:region:instance)/db").
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/graphsort/scalingplot/plots"
	"github.com/graphsort/scalingplot/report"
	"github.com/graphsort/scalingplot/storage/db"
	_ "github.com/graphsort/scalingplot/storage/db/sqlite3"
	"github.com/graphsort/scalingplot/storage/fs"
	"github.com/graphsort/scalingplot/storage/fs/gcs"
	"github.com/graphsort/scalingplot/storage/fs/local"
)

var (
	flagDB        = flag.String("db", "measurements.db", "read measurements from database `dsn`")
	flagDriver    = flag.String("driver", "sqlite3", "database `driver` (sqlite3 or mysql)")
	flagOut       = flag.String("o", "plots", "write charts to `dir`")
	flagGCS       = flag.String("gcs", "", "write charts to Google Cloud Storage `bucket` instead of -o")
	flagGCSPrefix = flag.String("gcsprefix", "", "prefix `path` of chart objects in -gcs")
	flagBatch     = flag.String("batch", "", "read the charts to draw from YAML `file`")
	flagHost      = flag.String("host", plots.DefaultHostname, "include runs from hosts matching LIKE `pattern`")
	flagReport    = flag.Bool("report", false, "also write an index.html of the charts")
	flagCSV       = flag.Bool("csv", false, "also write the charted data to data.csv")
)

var kindAlias = map[string]string{
	"abs":    plots.KindAbsTiming,
	"strong": plots.KindStrongScaling,
	"weak":   plots.KindWeakScaling,
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scalingplot [flags] [kind...]
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("scalingplot: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	batch := plots.DefaultBatch()
	if *flagBatch != "" {
		var err error
		batch, err = plots.ReadBatchFile(*flagBatch)
		if err != nil {
			log.Fatal(err)
		}
	}
	if flag.NArg() > 0 {
		var kinds []string
		for _, k := range flag.Args() {
			if a, ok := kindAlias[k]; ok {
				k = a
			}
			kinds = append(kinds, k)
		}
		batch = batch.Select(kinds...)
		if len(batch.Charts) == 0 {
			log.Fatalf("no charts of kind %v", flag.Args())
		}
	}

	ctx := context.Background()

	d, err := db.OpenSQL(*flagDriver, *flagDB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	var out fs.FS
	if *flagGCS != "" {
		out, err = gcs.NewFS(ctx, *flagGCS, *flagGCSPrefix)
		if err != nil {
			log.Fatalf("open bucket: %v", err)
		}
	} else {
		out = local.NewFS(*flagOut)
	}

	env := plots.Env{
		Store:    d,
		Out:      out,
		Diag:     os.Stdout,
		Log:      log.New(os.Stdout, "", 0),
		Hostname: *flagHost,
	}
	results, err := env.Run(ctx, batch)
	if err != nil {
		log.Fatal(err)
	}

	if *flagReport {
		var entries []report.Entry
		for _, r := range results {
			entries = append(entries, report.NewEntry(r))
		}
		var buf bytes.Buffer
		if err := report.WriteHTML(&buf, entries); err != nil {
			log.Fatal(err)
		}
		if err := writeFile(ctx, out, "index.html", buf.Bytes()); err != nil {
			log.Fatal(err)
		}
	}
	if *flagCSV {
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, results); err != nil {
			log.Fatal(err)
		}
		if err := writeFile(ctx, out, "data.csv", buf.Bytes()); err != nil {
			log.Fatal(err)
		}
	}
}

// writeFile stores data as the named file of out.
func writeFile(ctx context.Context, out fs.FS, name string, data []byte) error {
	w, err := out.NewWriter(ctx, name, nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.CloseWithError(err)
		return fmt.Errorf("%s: %v", name, err)
	}
	return w.Close()
}
