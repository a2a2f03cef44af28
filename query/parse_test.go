// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "testing"

func TestParse(t *testing.T) {
	check := func(q, want string) {
		t.Helper()
		f, err := Parse(q)
		if err != nil {
			t.Errorf("%s: unexpected error %s", q, err)
		} else if got := f.String(); got != want {
			t.Errorf("%s: got %s, want %s", q, got, want)
		}
	}
	checkErr := func(q, msg string, off int) {
		t.Helper()
		_, err := Parse(q)
		if se, _ := err.(*SyntaxError); se == nil || se.Msg != msg || se.Off != off {
			t.Errorf("%s: want error %s at %d; got %v", q, msg, off, err)
		}
	}

	check(``, `*`)
	check(`   `, `*`)
	check(`graph_num_edges=29999064`, `graph_num_edges = 29999064`)
	check(` AND total_time>0 `, `total_time > 0`)
	check(`total_time > 0.5 AND graph_num_edges = 7999910`, `total_time > 0.5 AND graph_num_edges = 7999910`)
	check(`a=1 b<>2 c!=3 d<=4 e>=5 f<6`, `a = 1 AND b != 2 AND c != 3 AND d <= 4 AND e >= 5 AND f < 6`)
	check(`hostname LIKE 'e%'`, `hostname LIKE 'e%'`)
	check(`hostname like "e%"`, `hostname LIKE 'e%'`)
	check(`graph_type='RAND''LIN'`, `graph_type = 'RAND''LIN'`)
	check(`processors>=number_of_threads`, `processors >= number_of_threads`)
	check(`graph_num_nodes = 100000*number_of_threads`, `graph_num_nodes = 100000 * number_of_threads`)
	check(`x=-1.5e-3`, `x = -0.0015`)

	checkErr(`=1`, "expected column name", 0)
	checkErr(`a 1`, "expected operator after a", 2)
	checkErr(`a=`, "expected value", 2)
	checkErr(`a='x`, "missing end quote", 2)
	checkErr(`a=1 b!1`, "unexpected \"!\"", 5)
	checkErr(`a LIKE 3`, "LIKE requires a quoted pattern", 7)
	checkErr(`a=1.5*b`, "expected integer * column", 2)
	checkErr(`a=1 ; b=2`, "unexpected ';'", 4)
	checkErr(`é = 1`, "unexpected 'é'", 0)
	checkErr(`graph_type = é`, "unexpected 'é'", 13)
	checkErr(`a=1 nodesé=2`, "unexpected 'é'", 9)
	checkErr("a=1\u00a0b=2", "unexpected '\\u00a0'", 3)
}

func TestParseSQL(t *testing.T) {
	f, err := Parse(`graph_num_edges=7999910 hostname LIKE 'e%'`)
	if err != nil {
		t.Fatal(err)
	}
	sql, args := f.SQL()
	if want := "graph_num_edges = ? AND hostname LIKE ?"; sql != want {
		t.Errorf("SQL = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != int64(7999910) || args[1] != "e%" {
		t.Errorf("args = %#v", args)
	}
}
