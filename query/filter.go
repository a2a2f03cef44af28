// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query builds the filter criteria used to select
// measurement records.
//
// A Filter is a conjunction of constraints on the columns of a
// measurement record. Filters are values: And and Merge return new
// filters and never modify their receiver. A Filter is only turned
// into query text at the storage boundary, by SQL, which renders the
// constraints with placeholders and returns the bound arguments
// separately.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// An Op is a comparison operator in a Cond.
type Op int

const (
	OpEq Op = 1 + iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
)

var opText = map[Op]string{
	OpEq:   "=",
	OpNe:   "!=",
	OpLt:   "<",
	OpLe:   "<=",
	OpGt:   ">",
	OpGe:   ">=",
	OpLike: "LIKE",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// A Column is an operand that refers to another column of the same
// record, as in "processors >= number_of_threads".
type Column string

// A Scaled operand is the value of Column multiplied by Factor, as in
// "graph_num_nodes = 100000 * number_of_threads".
type Scaled struct {
	Factor int64
	Column Column
}

// A Cond constrains a single column.
//
// Value is one of string, int64, float64, Column or Scaled.
type Cond struct {
	Field string
	Op    Op
	Value interface{}
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidField reports whether name can be used as a column name.
func ValidField(name string) bool {
	return identRE.MatchString(name)
}

func mustField(name string) {
	if !ValidField(name) {
		panic(fmt.Sprintf("query: invalid column name %q", name))
	}
}

// normalize converts v to one of the operand types permitted in a
// Cond. It panics on anything else.
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case string, int64, float64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case Column:
		mustField(string(v))
		return v
	case Scaled:
		mustField(string(v.Column))
		return v
	}
	panic(fmt.Sprintf("query: unsupported operand %#v", v))
}

// NewCond returns the constraint "field op v".
// It panics if field is not a valid column name or v is not a
// supported operand.
func NewCond(field string, op Op, v interface{}) Cond {
	mustField(field)
	if _, ok := opText[op]; !ok {
		panic(fmt.Sprintf("query: invalid operator %d", int(op)))
	}
	return Cond{Field: field, Op: op, Value: normalize(v)}
}

// Eq returns the constraint "field = v".
func Eq(field string, v interface{}) Cond { return NewCond(field, OpEq, v) }

// Ne returns the constraint "field != v".
func Ne(field string, v interface{}) Cond { return NewCond(field, OpNe, v) }

// Lt returns the constraint "field < v".
func Lt(field string, v interface{}) Cond { return NewCond(field, OpLt, v) }

// Le returns the constraint "field <= v".
func Le(field string, v interface{}) Cond { return NewCond(field, OpLe, v) }

// Gt returns the constraint "field > v".
func Gt(field string, v interface{}) Cond { return NewCond(field, OpGt, v) }

// Ge returns the constraint "field >= v".
func Ge(field string, v interface{}) Cond { return NewCond(field, OpGe, v) }

// Like returns the constraint "field LIKE pattern".
func Like(field, pattern string) Cond { return NewCond(field, OpLike, pattern) }

func (c Cond) sql() (string, []interface{}) {
	switch v := c.Value.(type) {
	case Column:
		return fmt.Sprintf("%s %s %s", c.Field, c.Op, v), nil
	case Scaled:
		return fmt.Sprintf("%s %s ? * %s", c.Field, c.Op, v.Column), []interface{}{v.Factor}
	}
	return fmt.Sprintf("%s %s ?", c.Field, c.Op), []interface{}{c.Value}
}

func (c Cond) String() string {
	return c.Field + " " + c.Op.String() + " " + formatValue(c.Value)
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Column:
		return string(v)
	case Scaled:
		return strconv.FormatInt(v.Factor, 10) + " * " + string(v.Column)
	}
	return fmt.Sprint(v)
}

// A Filter is a conjunction of Conds. The zero Filter matches every
// record.
type Filter struct {
	conds []Cond
}

// And returns a Filter requiring all of cs.
func And(cs ...Cond) Filter {
	return Filter{}.And(cs...)
}

// And returns a new Filter requiring f and all of cs.
func (f Filter) And(cs ...Cond) Filter {
	if len(cs) == 0 {
		return f
	}
	conds := make([]Cond, 0, len(f.conds)+len(cs))
	conds = append(conds, f.conds...)
	conds = append(conds, cs...)
	return Filter{conds}
}

// Merge returns a new Filter requiring both f and g.
func (f Filter) Merge(g Filter) Filter {
	return f.And(g.conds...)
}

// Conds returns a copy of the constraints in f, in the order they
// were added.
func (f Filter) Conds() []Cond {
	return append([]Cond(nil), f.conds...)
}

// Len returns the number of constraints in f.
func (f Filter) Len() int {
	return len(f.conds)
}

// Lookup returns the last constraint on field, if any.
func (f Filter) Lookup(field string) (Cond, bool) {
	for i := len(f.conds) - 1; i >= 0; i-- {
		if f.conds[i].Field == field {
			return f.conds[i], true
		}
	}
	return Cond{}, false
}

// SQL renders f as the body of a WHERE clause using "?" placeholders
// and returns the arguments to bind to them. An empty Filter renders
// as a tautology.
func (f Filter) SQL() (string, []interface{}) {
	if len(f.conds) == 0 {
		return "1 = 1", nil
	}
	var (
		buf  strings.Builder
		args []interface{}
	)
	for i, c := range f.conds {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		s, a := c.sql()
		buf.WriteString(s)
		args = append(args, a...)
	}
	return buf.String(), args
}

// String returns a human-readable form of f with literal values
// inlined. It is not meant to be sent to a database.
func (f Filter) String() string {
	if len(f.conds) == 0 {
		return "*"
	}
	parts := make([]string, len(f.conds))
	for i, c := range f.conds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}
