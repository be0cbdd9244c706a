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
	"github.com/SnellerInc/traverse/value"
)

// FromType is where the starting
// vertices of a traversal come from.
type FromType uint8

const (
	// FromLiteral is a list of ids
	// known at compile time.
	FromLiteral FromType = iota
	// FromPipe reads ids from the pipe input.
	FromPipe
	// FromVariable reads ids from
	// a user-defined variable.
	FromVariable
)

func (f FromType) String() string {
	switch f {
	case FromLiteral:
		return "literal"
	case FromPipe:
		return "pipe"
	case FromVariable:
		return "variable"
	default:
		return "<unknown from type>"
	}
}

// Starts describes how a traversal begins.
type Starts struct {
	FromType FromType
	// Vids are the literal ids, in
	// clause order (FromLiteral only).
	Vids []value.Datum
	// OriginalSrc is the reference
	// expression from the clause
	// (FromPipe and FromVariable only).
	OriginalSrc expr.Node
	// UserDefinedVarName is the variable
	// read from (FromVariable only).
	UserDefinedVarName string
	// FirstBeginningSrcVidColName is the
	// column that holds the ids in the
	// originating stream.
	FirstBeginningSrcVidColName string
	// Src is the expression that the rest
	// of the plan reads start ids from.
	// It is set by BuildConstantInput or
	// BuildRuntimeInput.
	Src expr.Node
}

// startRef is the classification
// of a runtime start expression
type startRef struct {
	from      FromType
	sym, prop string
	ok        bool
}

// refCases accepts only property references
// to the pipe input or to a variable
type refCases struct{}

func (refCases) Constant(*expr.Constant) startRef { return startRef{} }

func (refCases) InputProperty(e *expr.InputProperty) startRef {
	return startRef{from: FromPipe, prop: e.Prop, ok: true}
}

func (refCases) VarProperty(e *expr.VarProperty) startRef {
	return startRef{from: FromVariable, sym: e.Sym, prop: e.Prop, ok: true}
}

func (refCases) EdgeProperty(*expr.EdgeProperty) startRef { return startRef{} }
func (refCases) Variable(*expr.Variable) startRef         { return startRef{} }
func (refCases) Unary(*expr.Unary) startRef               { return startRef{} }
func (refCases) Relational(*expr.Relational) startRef     { return startRef{} }
func (refCases) Logical(*expr.Logical) startRef           { return startRef{} }
func (refCases) Arithmetic(*expr.Arithmetic) startRef     { return startRef{} }
func (refCases) Call(*expr.Call) startRef                 { return startRef{} }
func (refCases) List(*expr.List) startRef                 { return startRef{} }

// ValidateStarts validates the FROM clause
// of a traversal and resolves where its
// starting vertices come from.
func (v *Validator) ValidateStarts(c *clause.VerticesClause) (*Starts, error) {
	starts, err := v.validateStarts(c)
	v.conf.Metrics.clause("from", err)
	if err != nil {
		return nil, err
	}
	return starts, nil
}

func (v *Validator) validateStarts(c *clause.VerticesClause) (*Starts, error) {
	if c == nil {
		return nil, errorf("", "missing FROM clause")
	}
	if c.IsRef() {
		return v.runtimeStarts(c.Ref)
	}
	if len(c.Vids) == 0 {
		return nil, errorf(c.String(), "no starting vertices")
	}
	starts := &Starts{FromType: FromLiteral}
	for _, e := range c.Vids {
		text := expr.ToString(e)
		if !expr.Evaluable(e) {
			return nil, errorf(text, "is not an evaluable expression")
		}
		vid, err := expr.Fold(e)
		if err != nil {
			return nil, newError(text, "cannot be evaluated: "+err.Error(), "", "", err)
		}
		if !v.vid.Valid(vid) {
			return nil, newError(text, "Vid should be a", v.vid.String(), vid.Type().String(), nil)
		}
		starts.Vids = append(starts.Vids, vid)
	}
	return starts, nil
}

func (v *Validator) runtimeStarts(src expr.Node) (*Starts, error) {
	text := expr.ToString(src)
	ref := expr.Match[startRef](src, refCases{})
	if !ref.ok {
		return nil, errorf(text, "Only input and variable expression is acceptable when starts are evaluated at runtime.")
	}
	typ, err := expr.Deduce(src, v)
	if err != nil {
		return nil, newError(text, "cannot deduce type of start vertices: "+err.Error(), "", "", err)
	}
	if want := v.vid.ValueType(); typ != want {
		return nil, newError(text, "the srcs should be type of", v.vid.String(), typ.String(), nil)
	}
	starts := &Starts{
		FromType:                    ref.from,
		OriginalSrc:                 src,
		FirstBeginningSrcVidColName: ref.prop,
	}
	if ref.from == FromVariable {
		starts.UserDefinedVarName = ref.sym
		v.qctx.Vctx.Reference(ref.sym)
	}
	return starts, nil
}
