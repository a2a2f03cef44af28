// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// github.com/graphsort/scalingplot/storage/db. It must be imported
// instead of go-sqlite3 so that every connection is configured the
// same way.
package sqlite3

import (
	"database/sql"

	"github.com/graphsort/scalingplot/storage/db"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// Each connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		db.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			_, err := c.Exec("PRAGMA busy_timeout = 5000;", nil)
			return err
		}
		return nil
	})
}
