// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Measimport loads the XML result files written by the graph sorting
// benchmark into a measurements database.
//
// Usage:
//
//	measimport [-db dsn] [-driver name] [-debug] [-verbose] file...
//
// Each file holds a <measurements> document with one or more
// <measurement> elements. All measurements of all files are inserted
// in a single transaction; if any file cannot be read, nothing is
// inserted.
//
// The XML does not record how the benchmark was built. Use -debug and
// -verbose to mark measurements of debug or verbose builds, which the
// scaling charts exclude.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/graphsort/scalingplot/measure"
	"github.com/graphsort/scalingplot/storage/db"
	_ "github.com/graphsort/scalingplot/storage/db/sqlite3"
)

var (
	flagDB      = flag.String("db", "measurements.db", "write measurements to database `dsn`")
	flagDriver  = flag.String("driver", "sqlite3", "database `driver` (sqlite3 or mysql)")
	flagDebug   = flag.Bool("debug", false, "mark measurements as from a debug build")
	flagVerbose = flag.Bool("verbose", false, "mark measurements as from a verbose build")
	flagV       = flag.Bool("v", false, "print the number of measurements imported")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: measimport [flags] file...
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("measimport: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no files to import")
	}

	var all []*measure.Measurement
	for _, name := range files {
		ms, err := measure.ReadFile(name)
		if err != nil {
			log.Fatal(err)
		}
		for _, m := range ms {
			m.Debug = *flagDebug
			m.Verbose = *flagVerbose
		}
		all = append(all, ms...)
	}

	d, err := db.OpenSQL(*flagDriver, *flagDB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	if err := d.InsertMeasurements(context.Background(), all); err != nil {
		log.Fatal(err)
	}
	if *flagV {
		log.Printf("%d measurements from %d files imported", len(all), len(files))
	}
}
