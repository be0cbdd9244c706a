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

package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/clause"
	"github.com/SnellerInc/traverse/expr"
)

// NodeID is a handle to a Node
// within the Arena that allocated it.
type NodeID int32

// NoNode is the NodeID of a missing dependency.
const NoNode NodeID = -1

// Kind is the type of a plan Node.
type Kind uint8

const (
	KindStart Kind = iota
	KindGetNeighbors
	KindProject
	KindDedup
	KindLoop
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindGetNeighbors:
		return "GetNeighbors"
	case KindProject:
		return "Project"
	case KindDedup:
		return "Dedup"
	case KindLoop:
		return "Loop"
	default:
		return "<unknown node>"
	}
}

// Node is a node in the plan graph.
//
// Each node reads rows from its input
// variable and writes its result to its
// output variable; the executor connects
// nodes through those variables.
type Node interface {
	ID() NodeID
	Kind() Kind
	// Dep returns the node that this
	// node reads from, or NoNode.
	Dep() NodeID

	OutputVar() string
	SetOutputVar(string)
	// InputVar is the variable this node
	// reads from. The empty string means the
	// pipe input of the enclosing statement.
	InputVar() string
	SetInputVar(string)
	ColNames() []string
	SetColNames([]string)

	describe(dst io.Writer)
}

type base struct {
	id       NodeID
	dep      NodeID
	output   string
	input    string
	colNames []string
}

func (b *base) ID() NodeID                { return b.id }
func (b *base) Dep() NodeID               { return b.dep }
func (b *base) OutputVar() string         { return b.output }
func (b *base) SetOutputVar(v string)     { b.output = v }
func (b *base) InputVar() string          { return b.input }
func (b *base) SetInputVar(v string)      { b.input = v }
func (b *base) ColNames() []string        { return b.colNames }
func (b *base) SetColNames(cols []string) { b.colNames = cols }

func (b *base) vars(dst io.Writer) {
	fmt.Fprintf(dst, " -> %s", b.output)
	if b.input != "" {
		fmt.Fprintf(dst, " (input %s)", b.input)
	}
}

// Start is a leaf of the plan. It produces
// no rows unless its input variable is set,
// in which case it passes that (already bound)
// variable through.
type Start struct {
	base
}

func (s *Start) Kind() Kind { return KindStart }

func (s *Start) describe(dst io.Writer) {
	io.WriteString(dst, "START")
	s.vars(dst)
}

// GetNeighbors expands the vertices
// produced by Src over a set of edge types.
type GetNeighbors struct {
	base
	// Src produces the ids of
	// the vertices to expand.
	Src       expr.Node
	Direction clause.Direction
	EdgeTypes []catalog.EdgeType
	// EdgeNames, if set, are the
	// names the edge types were resolved
	// from; they are only used for display.
	EdgeNames []string
}

func (g *GetNeighbors) Kind() Kind { return KindGetNeighbors }

func (g *GetNeighbors) describe(dst io.Writer) {
	fmt.Fprintf(dst, "GET NEIGHBORS %s %s", expr.ToString(g.Src), g.Direction)
	if len(g.EdgeNames) > 0 {
		fmt.Fprintf(dst, " [%s]", strings.Join(g.EdgeNames, ", "))
	} else {
		fmt.Fprintf(dst, " %v", g.EdgeTypes)
	}
	g.vars(dst)
}

// Dedup removes duplicate rows from
// the output of its dependency, preserving
// the order of first occurrence.
type Dedup struct {
	base
}

func (d *Dedup) Kind() Kind { return KindDedup }

func (d *Dedup) describe(dst io.Writer) {
	io.WriteString(dst, "DEDUP")
	d.vars(dst)
}

// Describe returns a one-line
// description of a node.
func Describe(n Node) string {
	var out strings.Builder
	n.describe(&out)
	return out.String()
}
