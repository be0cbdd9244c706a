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

package validator

import (
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/plan"
	"github.com/SnellerInc/traverse/value"

	"golang.org/x/exp/slices"
)

// ProjectDstVids appends to gn a projection of
// the destination ids of the expanded edges
// followed by a Dedup. The Dedup produces
// outputVar, with the same column names as the
// projection.
func (v *Validator) ProjectDstVids(gn plan.NodeID, outputVar string) plan.NodeID {
	a := v.qctx.Arena
	project := a.MakeProject(gn, []plan.Column{{
		Expr:  expr.EdgeProp("*", DstProp),
		Alias: VidCol,
	}})
	v.logf("project output var %s", a.Node(project).OutputVar())
	dedup := a.MakeDedup(project)
	dn := a.Node(dedup)
	dn.SetOutputVar(outputVar)
	dn.SetColNames(slices.Clone(a.Node(project).ColNames()))
	v.conf.Metrics.fragment("dst")
	return dedup
}

// BuildConstantInput materializes the literal
// start ids of s into a fresh anonymous
// variable holding a single VidCol column,
// and points s.Src at that column.
// It returns the name of the variable.
func (v *Validator) BuildConstantInput(s *Starts) string {
	name := v.qctx.Vctx.AnonVarGen().Next()
	tbl := value.NewTable(VidCol)
	for _, vid := range s.Vids {
		tbl.Append(vid)
	}
	v.qctx.Ectx.SetResult(name, tbl)
	s.Src = expr.VarProp(name, VidCol)
	v.logf("constant input %s: %d rows", name, tbl.Len())
	v.conf.Metrics.fragment("constant")
	return name
}

// BuildRuntimeInput builds the projection of
// the start ids of s that are only known at
// runtime, followed by a Dedup of those ids.
// s.Src is pointed at the pipe input column
// VidCol, since the projection renames the ids.
//
// The returned tail is the Dedup and the
// returned project is the head of the fragment;
// callers that need to feed the fragment
// from somewhere else rewire project.
func (v *Validator) BuildRuntimeInput(s *Starts) (tail, project plan.NodeID) {
	a := v.qctx.Arena
	project = a.MakeProject(plan.NoNode, []plan.Column{{
		Expr:  expr.Clone(s.OriginalSrc),
		Alias: VidCol,
	}})
	if s.FromType == FromVariable {
		a.Node(project).SetInputVar(s.UserDefinedVarName)
	}
	v.logf("runtime input project output var %s", a.Node(project).OutputVar())
	s.Src = expr.Input(VidCol)
	tail = a.MakeDedup(project)
	v.conf.Metrics.fragment("runtime")
	return tail, project
}

// BuildStartInput builds the fragment that
// produces the start ids of s, using
// BuildConstantInput for literal ids and
// BuildRuntimeInput otherwise.
func (v *Validator) BuildStartInput(s *Starts) plan.Fragment {
	if s.FromType == FromLiteral {
		name := v.BuildConstantInput(s)
		start := v.qctx.Arena.MakeStart()
		v.qctx.Arena.Node(start).SetInputVar(name)
		return plan.Fragment{Head: start, Tail: start}
	}
	tail, head := v.BuildRuntimeInput(s)
	return plan.Fragment{Head: head, Tail: tail}
}

// BuildGetNeighbors adds a GetNeighbors node
// that expands s.Src over the edges of o.
// The source of s must already have been
// built with BuildStartInput.
func (v *Validator) BuildGetNeighbors(dep plan.NodeID, s *Starts, o *Over) (plan.NodeID, error) {
	if s.Src == nil {
		return plan.NoNode, errorf("", "start vertices have no source")
	}
	a := v.qctx.Arena
	gn := a.MakeGetNeighbors(dep, s.Src, o.Direction, o.EdgeTypes)
	if o.IsOverAll {
		a.Node(gn).(*plan.GetNeighbors).EdgeNames = slices.Clone(o.AllEdges)
	}
	v.conf.Metrics.fragment("neighbors")
	return gn, nil
}
