// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/graphsort/scalingplot/query"
	. "github.com/graphsort/scalingplot/storage/db"
	"github.com/graphsort/scalingplot/storage/db/dbtest"
	"golang.org/x/net/context"
)

// TestInsertMeasurement verifies that every field lands in its column.
func TestInsertMeasurement(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	m := dbtest.Run("worksteal", 8, 1.5)
	m.Date = 1469023100
	m.GraphType = "RANDOMLIN"
	m.GraphEdges = 7999910
	m.GraphDepth = 17
	m.Verbose = true
	if err := db.InsertMeasurement(ctx, m); err != nil {
		t.Fatalf("InsertMeasurement: %v", err)
	}

	var (
		date, nodes, edges, depth    int64
		host, alg, gt                string
		opt, threads, procs, errCode int
		analysis, debug, verbose     int
		total                        float64
	)
	row := DBSQL(db).QueryRow(`SELECT date, error_code, hostname, algorithm, optimistic,
		graph_type, graph_num_nodes, graph_num_edges, graph_depth,
		number_of_threads, processors, total_time, enable_analysis, debug, verbose
		FROM measurements`)
	if err := row.Scan(&date, &errCode, &host, &alg, &opt, &gt, &nodes, &edges, &depth,
		&threads, &procs, &total, &analysis, &debug, &verbose); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	got := []interface{}{date, errCode, host, alg, opt, gt, nodes, edges, depth, threads, procs, total, analysis, debug, verbose}
	want := []interface{}{int64(1469023100), 0, "euler01", "worksteal", 1, "RANDOMLIN", int64(1000000), int64(7999910), int64(17), 8, 24, 1.5, 0, 0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored row mismatch (-want +got):\n%s", diff)
	}

	n, err := db.CountMeasurements(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("CountMeasurements = %d, want 1", n)
	}
}

func TestColumnAndGroups(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	dbtest.Populate(t, db,
		dbtest.Run("bitset", 4, 3),
		dbtest.Run("bitset", 1, 10),
		dbtest.Run("bitset", 2, 6),
		dbtest.Run("bitset", 1, 11),
		dbtest.Run("bitset", 48, 1), // more threads than processors
		dbtest.Run("worksteal", 2, 5),
	)

	base := query.And(
		query.Eq("algorithm", "bitset"),
		query.Ge("processors", query.Column("number_of_threads")),
		query.Like("hostname", "e%"),
	)

	groups, err := db.Groups(ctx, "number_of_threads", base)
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 4}, groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}

	times, err := db.Column(ctx, "total_time", base.And(query.Eq("number_of_threads", 1)))
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if diff := cmp.Diff([]float64{10, 11}, times); diff != "" {
		t.Errorf("Column mismatch (-want +got):\n%s", diff)
	}

	none, err := db.Column(ctx, "total_time", base.And(query.Eq("number_of_threads", 3)))
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Column with no match = %#v, want empty slice", none)
	}

	noGroups, err := db.Groups(ctx, "number_of_threads", query.And(query.Eq("algorithm", "locallist")))
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if len(noGroups) != 0 {
		t.Errorf("Groups with no match = %v, want none", noGroups)
	}
}

func TestScaledFilter(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, run := range []struct {
		threads int
		nodes   int64
	}{
		{1, 100000}, {2, 200000}, {4, 400000}, {4, 1000000}, {8, 100000},
	} {
		m := dbtest.Run("bitset", run.threads, 1)
		m.GraphNodes = run.nodes
		dbtest.Populate(t, db, m)
	}

	f := query.And(query.Eq("graph_num_nodes", query.Scaled{Factor: 100000, Column: "number_of_threads"}))
	groups, err := db.Groups(ctx, "number_of_threads", f)
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 4}, groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
}

func TestBadColumn(t *testing.T) {
	db, cleanup := dbtest.NewDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Column(ctx, "total_time; DROP TABLE measurements", query.Filter{}); err == nil {
		t.Error("Column accepted a non-identifier column")
	}
	// Unknown columns surface as the database's error.
	if _, err := db.Column(ctx, "no_such_column", query.Filter{}); err == nil {
		t.Error("Column(no_such_column) succeeded")
	}
	if _, err := db.Groups(ctx, "number_of_threads", query.And(query.Eq("no_such_column", 1))); err == nil {
		t.Error("Groups with unknown filter column succeeded")
	}
}
