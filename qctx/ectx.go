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

package qctx

import (
	"fmt"

	"github.com/SnellerInc/traverse/value"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// AnonVarGen produces variable names
// that cannot collide with user variables.
type AnonVarGen struct {
	n int
}

// Next returns a fresh variable name.
func (g *AnonVarGen) Next() string {
	name := fmt.Sprintf("__VAR_%d", g.n)
	g.n++
	return name
}

// ExecutionContext maps variable
// names to their bound values.
type ExecutionContext struct {
	values map[string]value.Datum
}

// NewExecutionContext returns an
// empty ExecutionContext.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{values: make(map[string]value.Datum)}
}

// Value returns the value bound to name,
// or value.Empty{} if nothing is bound.
func (e *ExecutionContext) Value(name string) value.Datum {
	if d, ok := e.values[name]; ok {
		return d
	}
	return value.Empty{}
}

// SetValue binds name to d,
// replacing any previous binding.
func (e *ExecutionContext) SetValue(name string, d value.Datum) {
	e.values[name] = d
}

// SetResult binds name to a table of rows.
func (e *ExecutionContext) SetResult(name string, t *value.Table) {
	e.SetValue(name, t)
}

// Result returns the table bound to name.
func (e *ExecutionContext) Result(name string) (*value.Table, bool) {
	t, ok := e.values[name].(*value.Table)
	return t, ok
}

// Exists returns whether name is bound.
func (e *ExecutionContext) Exists(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the sorted list of bound names.
func (e *ExecutionContext) Names() []string {
	names := maps.Keys(e.values)
	slices.Sort(names)
	return names
}
