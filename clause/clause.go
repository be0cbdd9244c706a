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

// Package clause defines the parsed form
// of the clauses that make up a traversal:
// where it starts, which edges it follows,
// and how many steps it takes.
package clause

import (
	"strconv"
	"strings"

	"github.com/SnellerInc/traverse/expr"
)

// Direction is the direction in
// which edges are traversed.
type Direction uint8

const (
	// Forward follows edges from
	// their source to their destination.
	Forward Direction = iota
	// Reverse follows edges from their
	// destination to their source.
	Reverse
	// Bidirectional follows edges both ways.
	Bidirectional
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "OUT_EDGE"
	case Reverse:
		return "IN_EDGE"
	case Bidirectional:
		return "BOTH"
	default:
		return "<unknown direction>"
	}
}

// VerticesClause is the FROM part of
// a traversal. Exactly one of Vids
// and Ref is set.
type VerticesClause struct {
	// Vids is a list of vertex id
	// expressions known at compile time.
	Vids []expr.Node
	// Ref is a reference to the ids
	// produced by an earlier statement.
	Ref expr.Node
}

// IsRef returns whether the starting
// vertices are evaluated at run time.
func (v *VerticesClause) IsRef() bool { return v.Ref != nil }

func (v *VerticesClause) String() string {
	var out strings.Builder
	out.WriteString("FROM ")
	if v.IsRef() {
		out.WriteString(expr.ToString(v.Ref))
		return out.String()
	}
	for i := range v.Vids {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(expr.ToString(v.Vids[i]))
	}
	return out.String()
}

// OverEdge is one named edge in an OverClause.
type OverEdge struct {
	Name  string
	Alias string
}

// OverClause is the OVER part of a traversal.
type OverClause struct {
	// All is set for OVER *
	All       bool
	Edges     []OverEdge
	Direction Direction
}

// Over returns an OverClause naming
// the given edges in the forward direction.
func Over(edges ...string) *OverClause {
	oc := &OverClause{Direction: Forward}
	for _, e := range edges {
		oc.Edges = append(oc.Edges, OverEdge{Name: e})
	}
	return oc
}

// OverAll returns an OverClause for OVER *
func OverAll(dir Direction) *OverClause {
	return &OverClause{All: true, Direction: dir}
}

func (o *OverClause) String() string {
	var out strings.Builder
	out.WriteString("OVER ")
	if o.All {
		out.WriteByte('*')
	} else {
		for i := range o.Edges {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(o.Edges[i].Name)
			if o.Edges[i].Alias != "" {
				out.WriteString(" AS ")
				out.WriteString(o.Edges[i].Alias)
			}
		}
	}
	switch o.Direction {
	case Reverse:
		out.WriteString(" REVERSELY")
	case Bidirectional:
		out.WriteString(" BIDIRECT")
	}
	return out.String()
}

// StepClause is the number of hops
// taken by a traversal: either an exact
// count N, or a range M TO N.
type StepClause struct {
	M, N uint32
	// MToN is set for the range form.
	MToN bool
}

// Steps returns a StepClause for exactly n hops.
func Steps(n uint32) *StepClause {
	return &StepClause{M: n, N: n}
}

// StepRange returns a StepClause for m TO n hops.
func StepRange(m, n uint32) *StepClause {
	return &StepClause{M: m, N: n, MToN: true}
}

func (s *StepClause) String() string {
	if s.MToN {
		return strconv.FormatUint(uint64(s.M), 10) + " TO " +
			strconv.FormatUint(uint64(s.N), 10) + " STEPS"
	}
	return strconv.FormatUint(uint64(s.N), 10) + " STEPS"
}

// TraversalClause is a complete traversal:
//
//	GO <step> FROM <vertices> OVER <edges>
type TraversalClause struct {
	Step *StepClause
	From *VerticesClause
	Over *OverClause
}

func (t *TraversalClause) String() string {
	var parts []string
	parts = append(parts, "GO")
	if t.Step != nil {
		parts = append(parts, t.Step.String())
	}
	if t.From != nil {
		parts = append(parts, t.From.String())
	}
	if t.Over != nil {
		parts = append(parts, t.Over.String())
	}
	return strings.Join(parts, " ")
}
