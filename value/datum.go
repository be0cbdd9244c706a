// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package value

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Datum is a single value.
//
// A Datum should be one of
//
//	Empty, Null, Bool, Int, Float, String, *List, *Table
type Datum interface {
	Type() Type
	String() string

	equal(Datum) bool
	encode(dst []byte) []byte
}

var (
	// all of these types must be datums
	_ Datum = Empty{}
	_ Datum = Null{}
	_ Datum = Bool(false)
	_ Datum = Int(0)
	_ Datum = Float(0)
	_ Datum = String("")
	_ Datum = &List{}
	_ Datum = &Table{}
)

// Empty is the value of a variable
// that has never been assigned.
// Empty is only equal to itself.
type Empty struct{}

func (Empty) Type() Type     { return EmptyType }
func (Empty) String() string { return "__EMPTY__" }

func (Empty) equal(x Datum) bool {
	_, ok := x.(Empty)
	return ok
}

// Null is the NULL value.
type Null struct{}

func (Null) Type() Type     { return NullType }
func (Null) String() string { return "NULL" }

func (Null) equal(x Datum) bool {
	_, ok := x.(Null)
	return ok
}

type Bool bool

func (b Bool) Type() Type { return BoolType }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) equal(x Datum) bool {
	xb, ok := x.(Bool)
	return ok && xb == b
}

type Int int64

func (i Int) Type() Type     { return IntType }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (i Int) equal(x Datum) bool {
	switch x := x.(type) {
	case Int:
		return x == i
	case Float:
		return float64(x) == float64(i)
	}
	return false
}

type Float float64

func (f Float) Type() Type { return FloatType }

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

func (f Float) equal(x Datum) bool {
	switch x := x.(type) {
	case Float:
		return x == f
	case Int:
		return float64(x) == float64(f)
	}
	return false
}

type String string

func (s String) Type() Type     { return StringType }
func (s String) String() string { return strconv.Quote(string(s)) }

func (s String) equal(x Datum) bool {
	xs, ok := x.(String)
	return ok && xs == s
}

// List is an ordered list of datums.
type List struct {
	Items []Datum
}

// NewList constructs a List from items.
func NewList(items ...Datum) *List {
	return &List{Items: items}
}

func (l *List) Type() Type { return ListType }

// Len returns the number of items in the list.
func (l *List) Len() int { return len(l.Items) }

func (l *List) String() string {
	var out strings.Builder
	out.WriteByte('[')
	for i := range l.Items {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(l.Items[i].String())
	}
	out.WriteByte(']')
	return out.String()
}

func (l *List) equal(x Datum) bool {
	xl, ok := x.(*List)
	return ok && slices.EqualFunc(l.Items, xl.Items, Equal)
}

// Table is a set of rows that share
// a list of column names.
type Table struct {
	Columns []string
	Rows    [][]Datum
}

// NewTable constructs an empty Table
// with the given column names.
func NewTable(cols ...string) *Table {
	return &Table{Columns: cols}
}

func (t *Table) Type() Type { return TableType }

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.Rows) }

// Append appends a row to the table.
// The row must have one datum per column.
func (t *Table) Append(row ...Datum) {
	if len(row) != len(t.Columns) {
		panic("value: row width does not match column count")
	}
	t.Rows = append(t.Rows, row)
}

// Column returns the index of the named
// column, or -1 if it is not present.
func (t *Table) Column(name string) int {
	return slices.Index(t.Columns, name)
}

// Get returns the datum in row i
// of the named column.
func (t *Table) Get(i int, col string) (Datum, bool) {
	j := t.Column(col)
	if j < 0 || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i][j], true
}

func (t *Table) String() string {
	var out strings.Builder
	out.WriteString(strings.Join(t.Columns, "|"))
	for i := range t.Rows {
		out.WriteByte('\n')
		for j := range t.Rows[i] {
			if j > 0 {
				out.WriteByte('|')
			}
			out.WriteString(t.Rows[i][j].String())
		}
	}
	return out.String()
}

func (t *Table) equal(x Datum) bool {
	xt, ok := x.(*Table)
	return ok && slices.Equal(t.Columns, xt.Columns) &&
		slices.EqualFunc(t.Rows, xt.Rows, func(a, b []Datum) bool {
			return slices.EqualFunc(a, b, Equal)
		})
}

// Equal returns whether a and b are
// the same value. Integers and floats
// compare equal when they are numerically equal.
func Equal(a, b Datum) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

// Size returns the number of items in a
// List or rows in a Table, and false for
// any other datum.
func Size(d Datum) (int, bool) {
	switch d := d.(type) {
	case *List:
		return d.Len(), true
	case *Table:
		return d.Len(), true
	case String:
		return len(d), true
	}
	return 0, false
}
