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
	"github.com/SnellerInc/traverse/clause"
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/plan"
)

// Traversal is a validated traversal clause.
type Traversal struct {
	Starts *Starts
	Over   *Over
	Steps  *Steps
}

// ValidateTraversal validates each part of a
// traversal clause, returning the first error
// encountered.
func (v *Validator) ValidateTraversal(c *clause.TraversalClause) (*Traversal, error) {
	if c == nil {
		return nil, errorf("", "missing traversal clause")
	}
	starts, err := v.ValidateStarts(c.From)
	if err != nil {
		return nil, err
	}
	over, err := v.ValidateOver(c.Over)
	if err != nil {
		return nil, err
	}
	steps, err := v.ValidateStep(c.Step)
	if err != nil {
		return nil, err
	}
	return &Traversal{Starts: starts, Over: over, Steps: steps}, nil
}

// Build builds the plan fragment that
// expands t and binds outputVar to the
// destination ids of the last hop.
//
// A single fixed hop is expanded directly and
// the fragment ends in the Dedup of its
// destination ids. Otherwise the expansion is
// wrapped in a Loop bounded by the upper step
// count: each iteration writes its destination
// ids to the variable that the next iteration
// expands, and the Loop binds outputVar.
//
// Only the last hop is produced. For M TO N
// steps, collecting hops M through N is left
// to the executor; Steps.Lower does not
// appear in the plan.
func (v *Validator) Build(t *Traversal, outputVar string) (plan.Fragment, error) {
	a := v.qctx.Arena
	in := v.BuildStartInput(t.Starts)
	if !t.Steps.IsMToN && t.Steps.Upper == 1 {
		gn, err := v.BuildGetNeighbors(in.Tail, t.Starts, t.Over)
		if err != nil {
			return plan.Fragment{}, err
		}
		return plan.Fragment{Head: in.Head, Tail: v.ProjectDstVids(gn, outputVar)}, nil
	}
	// frontier holds the ids expanded by
	// the next iteration
	var frontier string
	if t.Starts.FromType == FromLiteral {
		frontier = a.Node(in.Tail).InputVar()
	} else {
		frontier = v.qctx.Vctx.AnonVarGen().Next()
		a.Node(in.Tail).SetOutputVar(frontier)
		t.Starts.Src = expr.VarProp(frontier, VidCol)
	}
	gn, err := v.BuildGetNeighbors(in.Tail, t.Starts, t.Over)
	if err != nil {
		return plan.Fragment{}, err
	}
	dst := v.ProjectDstVids(gn, frontier)
	cond := v.BuildNStepLoopCondition(t.Steps.Upper)
	loop := a.MakeLoop(in.Tail, dst, cond)
	a.Node(loop).SetOutputVar(outputVar)
	v.conf.Metrics.fragment("loop")
	return plan.Fragment{Head: in.Head, Tail: loop}, nil
}
