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

// Package catalog describes the schema
// information that traversal validation
// needs from a graph space: the declared
// vertex-id type and the edge types.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SnellerInc/traverse/value"
)

var (
	// ErrSpaceNotFound is returned when
	// a space is not present in the catalog.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrEdgeNotFound is returned when an
	// edge name does not resolve in a space.
	ErrEdgeNotFound = errors.New("edge not found")
)

// EdgeType is the internal identifier
// of an edge type within a space.
type EdgeType int32

// Catalog is the read-only view of the
// schema used during validation.
//
// Implementations must be safe for
// concurrent use by multiple compiling queries.
type Catalog interface {
	// VidType returns the declared
	// vertex-id type of space.
	VidType(space string) (VidType, error)
	// EdgeNames returns the names of
	// all the edge types in space.
	EdgeNames(space string) ([]string, error)
	// EdgeType resolves an edge name
	// to its internal identifier.
	EdgeType(space, name string) (EdgeType, error)
}

// VidKind is the scalar kind of a vertex id.
type VidKind uint8

const (
	VidInt64 VidKind = iota
	VidFixedString
)

// VidType is the schema-declared type
// of every vertex id in a space.
type VidType struct {
	Kind VidKind
	// Len is the maximum length
	// in bytes of a VidFixedString.
	Len int
}

// String returns the schema name
// of the type without its length,
// i.e. INT64 or FIXED_STRING.
func (v VidType) String() string {
	switch v.Kind {
	case VidInt64:
		return "INT64"
	case VidFixedString:
		return "FIXED_STRING"
	default:
		return "<unknown vid type>"
	}
}

// Decl returns the type as it
// is written in a definition.
func (v VidType) Decl() string {
	if v.Kind == VidFixedString {
		return fmt.Sprintf("FIXED_STRING(%d)", v.Len)
	}
	return v.String()
}

// ValueType returns the type of
// the datums that hold vertex ids.
func (v VidType) ValueType() value.Type {
	if v.Kind == VidFixedString {
		return value.StringType
	}
	return value.IntType
}

// Valid returns whether d is a legal vertex id:
// an integer for INT64, or a valid UTF-8
// string of at most Len bytes for FIXED_STRING.
func (v VidType) Valid(d value.Datum) bool {
	switch v.Kind {
	case VidInt64:
		_, ok := d.(value.Int)
		return ok
	case VidFixedString:
		s, ok := d.(value.String)
		return ok && len(s) <= v.Len && utf8.ValidString(string(s))
	}
	return false
}

// ParseVidType parses INT64 or FIXED_STRING(n).
func ParseVidType(s string) (VidType, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "INT64" || str == "INT" {
		return VidType{Kind: VidInt64}, nil
	}
	rest, ok := strings.CutPrefix(str, "FIXED_STRING(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return VidType{}, fmt.Errorf("catalog: invalid vid type %q", s)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(rest, ")"))
	if err != nil || n <= 0 {
		return VidType{}, fmt.Errorf("catalog: invalid FIXED_STRING length in %q", s)
	}
	return VidType{Kind: VidFixedString, Len: n}, nil
}
