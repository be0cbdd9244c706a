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

	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/clause"
	"github.com/SnellerInc/traverse/expr"

	"golang.org/x/exp/slices"
)

// Arena owns the nodes of the plan
// for one compiling query.
//
// An Arena is not safe for concurrent use;
// each query compiles into its own Arena.
type Arena struct {
	nodes []Node
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Node returns the node with the given id.
// Node panics if id was not allocated by a.
func (a *Arena) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(a.nodes) {
		panic(fmt.Sprintf("plan: node %d not in arena of %d nodes", id, len(a.nodes)))
	}
	return a.nodes[id]
}

// Each calls fn for every node in
// the order the nodes were allocated.
func (a *Arena) Each(fn func(Node)) {
	for _, n := range a.nodes {
		fn(n)
	}
}

// setup assigns b its id and default
// output variable, and wires its input
// to the output of dep
func (a *Arena) setup(b *base, kind Kind, dep NodeID) {
	id := NodeID(len(a.nodes))
	b.id = id
	b.dep = dep
	b.output = fmt.Sprintf("__%s_%d", kind, id)
	if dep != NoNode {
		d := a.Node(dep)
		b.input = d.OutputVar()
	}
}

func (a *Arena) add(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return n.ID()
}

// MakeStart allocates a Start node.
func (a *Arena) MakeStart() NodeID {
	s := &Start{}
	a.setup(&s.base, KindStart, NoNode)
	return a.add(s)
}

// MakeGetNeighbors allocates a GetNeighbors node
// that expands the ids produced by src.
func (a *Arena) MakeGetNeighbors(dep NodeID, src expr.Node, dir clause.Direction, types []catalog.EdgeType) NodeID {
	g := &GetNeighbors{
		Src:       src,
		Direction: dir,
		EdgeTypes: slices.Clone(types),
	}
	a.setup(&g.base, KindGetNeighbors, dep)
	return a.add(g)
}

// MakeProject allocates a Project node
// over dep, which may be NoNode when the
// input is bound with SetInputVar or comes
// from the pipe input. The column names
// of the node are the column aliases.
func (a *Arena) MakeProject(dep NodeID, cols []Column) NodeID {
	p := &Project{Columns: cols}
	a.setup(&p.base, KindProject, dep)
	names := make([]string, len(cols))
	for i := range cols {
		names[i] = cols[i].Alias
	}
	p.colNames = names
	return a.add(p)
}

// MakeDedup allocates a Dedup node over dep.
// The node inherits the column names of dep.
func (a *Arena) MakeDedup(dep NodeID) NodeID {
	d := &Dedup{}
	a.setup(&d.base, KindDedup, dep)
	d.colNames = slices.Clone(a.Node(dep).ColNames())
	return a.add(d)
}
