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

	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/value"

	"golang.org/x/exp/slices"
)

// Context is the execution context that
// evaluation reads its inputs from and
// binds each node's output into.
type Context interface {
	Value(name string) value.Datum
	SetValue(name string, d value.Datum)
}

// Eval evaluates the chain of nodes that
// ends at id, binding the result of each
// node to its output variable in ctx, and
// returns the result of the last node.
//
// Eval is a reference implementation for
// checking how fragments are wired together.
// GetNeighbors is evaluated by ctx if it
// implements Expander; otherwise its output
// variable must already be bound.
func Eval(a *Arena, id NodeID, ctx Context) (*value.Table, error) {
	return eval(a, id, NoNode, ctx)
}

// Expander expands the source ids of a
// GetNeighbors node into a table of edges.
type Expander interface {
	Expand(g *GetNeighbors, srcs []value.Datum) (*value.Table, error)
}

// eval evaluates id and its dependencies,
// stopping before stop (which has already
// been evaluated).
func eval(a *Arena, id, stop NodeID, ctx Context) (*value.Table, error) {
	n := a.Node(id)
	if dep := n.Dep(); dep != NoNode && dep != stop {
		if _, err := eval(a, dep, stop, ctx); err != nil {
			return nil, err
		}
	}
	var out *value.Table
	switch n := n.(type) {
	case *Start:
		if n.InputVar() == "" {
			out = value.NewTable()
			break
		}
		in, err := input(n, ctx)
		if err != nil {
			return nil, err
		}
		out = in
	case *GetNeighbors:
		ex, ok := ctx.(Expander)
		if !ok {
			t, ok := ctx.Value(n.OutputVar()).(*value.Table)
			if !ok {
				return nil, fmt.Errorf("plan: no result bound for %s", n.OutputVar())
			}
			return t, nil
		}
		srcs, err := sources(n, ctx)
		if err != nil {
			return nil, err
		}
		out, err = ex.Expand(n, srcs)
		if err != nil {
			return nil, err
		}
	case *Project:
		in, err := input(n, ctx)
		if err != nil {
			return nil, err
		}
		out, err = project(n, in, ctx)
		if err != nil {
			return nil, err
		}
	case *Dedup:
		in, err := input(n, ctx)
		if err != nil {
			return nil, err
		}
		out = dedup(in, n.ColNames())
	case *Loop:
		iters, err := loop(a, n, ctx)
		if err != nil {
			return nil, err
		}
		body := a.Node(n.Body)
		t, ok := ctx.Value(body.OutputVar()).(*value.Table)
		if !ok || iters == 0 {
			t = value.NewTable(slices.Clone(body.ColNames())...)
		}
		out = t
	default:
		return nil, fmt.Errorf("plan: cannot evaluate %s", n.Kind())
	}
	ctx.SetValue(n.OutputVar(), out)
	return out, nil
}

func input(n Node, ctx Context) (*value.Table, error) {
	name := n.InputVar()
	if name == "" {
		return nil, fmt.Errorf("plan: %s %s has no input bound", n.Kind(), n.OutputVar())
	}
	t, ok := ctx.Value(name).(*value.Table)
	if !ok {
		return nil, fmt.Errorf("plan: input %q of %s is %s, not a table", name, n.OutputVar(), ctx.Value(name).Type())
	}
	return t, nil
}

// rowEnv evaluates expressions
// against one row of a table
// sources evaluates the source expression
// of g for each row of the table it reads:
// the variable named by a $var.prop source,
// or the input of g for a $-.prop source.
func sources(g *GetNeighbors, ctx Context) ([]value.Datum, error) {
	var tbl *value.Table
	switch src := g.Src.(type) {
	case *expr.VarProperty:
		t, ok := ctx.Value(src.Sym).(*value.Table)
		if !ok {
			return nil, fmt.Errorf("plan: source %q of %s is not a table", src.Sym, g.OutputVar())
		}
		tbl = t
	case *expr.InputProperty:
		t, err := input(g, ctx)
		if err != nil {
			return nil, err
		}
		tbl = t
	default:
		return nil, fmt.Errorf("plan: cannot read sources of %s from %s", g.OutputVar(), expr.ToString(g.Src))
	}
	env := &rowEnv{Context: ctx, tbl: tbl}
	out := make([]value.Datum, 0, tbl.Len())
	for i := range tbl.Rows {
		env.row = i
		d, err := expr.Eval(g.Src, env)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

type rowEnv struct {
	Context
	tbl *value.Table
	row int
}

func (r *rowEnv) Column(_, prop string) (value.Datum, bool) {
	return r.tbl.Get(r.row, prop)
}

func project(p *Project, in *value.Table, ctx Context) (*value.Table, error) {
	out := value.NewTable(slices.Clone(p.ColNames())...)
	env := &rowEnv{Context: ctx, tbl: in}
	for i := range in.Rows {
		env.row = i
		row := make([]value.Datum, len(p.Columns))
		for j := range p.Columns {
			d, err := expr.Eval(p.Columns[j].Expr, env)
			if err != nil {
				return nil, err
			}
			row[j] = d
		}
		out.Append(row...)
	}
	return out, nil
}

func dedup(in *value.Table, cols []string) *value.Table {
	if len(cols) != len(in.Columns) {
		cols = in.Columns
	}
	out := value.NewTable(slices.Clone(cols)...)
	seen := make(map[uint64][]int, len(in.Rows))
	var scratch []byte
	var h uint64
outer:
	for _, row := range in.Rows {
		h, scratch = value.HashRow(scratch, row)
		for _, j := range seen[h] {
			if slices.EqualFunc(out.Rows[j], row, value.Equal) {
				continue outer
			}
		}
		seen[h] = append(seen[h], len(out.Rows))
		out.Append(row...)
	}
	return out
}
