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

// Package value implements the datum model
// used for constant folding and for the
// intermediate results bound into the
// execution context of a compiling query.
package value

// Type is the type of a Datum.
type Type uint8

const (
	// EmptyType is the type of the Empty sentinel,
	// i.e. a variable that has not been assigned yet.
	EmptyType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	StringType
	ListType
	// TableType is a set of named columns
	// and zero or more rows.
	TableType
)

func (t Type) String() string {
	switch t {
	case EmptyType:
		return "__EMPTY__"
	case NullType:
		return "NULL"
	case BoolType:
		return "BOOL"
	case IntType:
		return "INT"
	case FloatType:
		return "FLOAT"
	case StringType:
		return "STRING"
	case ListType:
		return "LIST"
	case TableType:
		return "DATASET"
	default:
		return "<unknown type>"
	}
}

// Scalar returns whether values of
// type t hold exactly one item.
func (t Type) Scalar() bool {
	return t >= BoolType && t <= StringType
}
