// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides the high-level database interface to the
// benchmark measurement store.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/graphsort/scalingplot/measure"
	"github.com/graphsort/scalingplot/query"
	"golang.org/x/net/context"
)

// DB is a high-level interface to a database holding benchmark
// measurements. It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
//
// The measurements table is created if it does not already exist.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// columns lists the measurements table columns in insertion order.
var columns = []string{
	"date", "error_code", "hostname", "algorithm", "optimistic",
	"graph_type", "graph_num_nodes", "graph_num_edges", "graph_depth",
	"number_of_threads", "processors", "total_time",
	"enable_analysis", "debug", "verbose",
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS measurements (
	id {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}BIGINT UNSIGNED NOT NULL PRIMARY KEY AUTO_INCREMENT{{end}},
	date BIGINT,
	error_code INTEGER,
	hostname VARCHAR(255),
	algorithm VARCHAR(255),
	optimistic INTEGER,
	graph_type VARCHAR(255),
	graph_num_nodes BIGINT,
	graph_num_edges BIGINT,
	graph_depth BIGINT,
	number_of_threads INTEGER,
	processors INTEGER,
	total_time DOUBLE,
	enable_analysis INTEGER,
	debug INTEGER,
	verbose INTEGER
{{- if not .sqlite3}},
	Index (algorithm(100), graph_type(100), graph_num_nodes)
{{- end}}
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MeasurementsSeries ON measurements(algorithm, graph_type, graph_num_nodes);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	q := "INSERT INTO measurements(" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	db.insertMeasurement, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertMeasurement stores a single measurement.
func (db *DB) InsertMeasurement(ctx context.Context, m *measure.Measurement) error {
	_, err := db.insertMeasurement.ExecContext(ctx,
		m.Date, m.ErrorCode, m.Hostname, m.Algorithm, boolInt(m.Optimistic),
		m.GraphType, m.GraphNodes, m.GraphEdges, m.GraphDepth,
		m.Threads, m.Processors, m.TotalTime,
		boolInt(m.EnableAnalysis), boolInt(m.Debug), boolInt(m.Verbose))
	if err != nil {
		return fmt.Errorf("insert measurement: %v", err)
	}
	return nil
}

// InsertMeasurements stores ms in a single transaction.
func (db *DB) InsertMeasurements(ctx context.Context, ms []*measure.Measurement) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, db.insertMeasurement)
	for _, m := range ms {
		if _, err = stmt.ExecContext(ctx,
			m.Date, m.ErrorCode, m.Hostname, m.Algorithm, boolInt(m.Optimistic),
			m.GraphType, m.GraphNodes, m.GraphEdges, m.GraphDepth,
			m.Threads, m.Processors, m.TotalTime,
			boolInt(m.EnableAnalysis), boolInt(m.Debug), boolInt(m.Verbose)); err != nil {
			return fmt.Errorf("insert measurement: %v", err)
		}
	}
	return nil
}

// Column returns the values of column in every measurement matching
// f, in the database's native order. It returns an empty slice, not
// an error, if nothing matches.
//
// Beyond requiring column to be an identifier, Column does not check
// column or f against the schema; a bad name surfaces as the
// database's own error.
func (db *DB) Column(ctx context.Context, column string, f query.Filter) ([]float64, error) {
	if !query.ValidField(column) {
		return nil, fmt.Errorf("invalid column name %q", column)
	}
	where, args := f.SQL()
	rows, err := db.sql.QueryContext(ctx, "SELECT "+column+" FROM measurements WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	vals := []float64{}
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, rows.Err()
}

// Groups returns the distinct values of the integer column over the
// measurements matching f, in ascending order.
func (db *DB) Groups(ctx context.Context, column string, f query.Filter) ([]int, error) {
	if !query.ValidField(column) {
		return nil, fmt.Errorf("invalid column name %q", column)
	}
	where, args := f.SQL()
	q := "SELECT " + column + " FROM measurements WHERE " + where + " GROUP BY " + column + " ORDER BY " + column
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	keys := []int{}
	for rows.Next() {
		var k int
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Callers treat keys[0] as the baseline.
	sort.Ints(keys)
	return keys, nil
}

// CountMeasurements returns the number of stored measurements.
func (db *DB) CountMeasurements(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
