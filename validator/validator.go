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

// Package validator checks the clauses of
// a graph traversal against the schema catalog
// and builds the plan fragments that start,
// expand and terminate the traversal.
//
// A Validator belongs to one compiling query
// and records its side effects (anonymous
// variables, compile-time bindings, plan nodes,
// referenced variables) in that query's qctx.Context.
package validator

import (
	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/qctx"
	"github.com/SnellerInc/traverse/value"
)

const (
	// VidCol is the reserved name of the
	// column that holds vertex ids.
	VidCol = "_vid"
	// DstProp is the reserved edge property
	// holding the destination vertex id.
	DstProp = "_dst"
)

// Config configures a Validator.
type Config struct {
	// Logf, if non-nil, is a callback
	// used for verbose logging.
	Logf func(f string, args ...interface{})
	// Metrics, if non-nil, receives counts
	// of validated clauses and built fragments.
	Metrics *Metrics
}

// Validator validates the traversal
// clauses of one statement in a space.
type Validator struct {
	qctx  *qctx.Context
	space string
	vid   catalog.VidType
	// inputs are the columns
	// of the pipe input
	inputs    qctx.ColsDef
	loopSteps string
	conf      Config
}

// New returns a Validator for statements
// in the given space. New fails if the
// space is not in the query's catalog.
func New(qc *qctx.Context, space string, conf *Config) (*Validator, error) {
	vid, err := qc.Catalog.VidType(space)
	if err != nil {
		return nil, newError("", "space `"+space+"' not found", "", "", err)
	}
	v := &Validator{
		qctx:      qc,
		space:     space,
		vid:       vid,
		loopSteps: qc.Vctx.AnonVarGen().Next(),
	}
	if conf != nil {
		v.conf = *conf
	}
	return v, nil
}

func (v *Validator) logf(f string, args ...interface{}) {
	if v.conf.Logf != nil {
		v.conf.Logf(f, args...)
	}
}

// SetInputs sets the columns produced by
// the statement piped into this one.
func (v *Validator) SetInputs(cols qctx.ColsDef) { v.inputs = cols }

// Space returns the name of the space.
func (v *Validator) Space() string { return v.space }

// VidType returns the vertex-id type of the space.
func (v *Validator) VidType() catalog.VidType { return v.vid }

// LoopSteps returns the name of the variable
// that counts the iterations of a bounded loop.
func (v *Validator) LoopSteps() string { return v.loopSteps }

// TypeOf implements expr.Hint using the
// pipe input columns and the columns of
// the variables registered with the query.
func (v *Validator) TypeOf(e expr.Node) (value.Type, bool) {
	ref := expr.Match[startRef](e, refCases{})
	if !ref.ok {
		return 0, false
	}
	var cols qctx.ColsDef
	if ref.from == FromPipe {
		cols = v.inputs
	} else {
		var ok bool
		cols, ok = v.qctx.Vctx.Columns(ref.sym)
		if !ok {
			return 0, false
		}
	}
	cd, ok := cols.Find(ref.prop)
	return cd.Type, ok
}
