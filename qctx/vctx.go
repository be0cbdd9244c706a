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
	"github.com/SnellerInc/traverse/value"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ColDef is the name and type of a column.
type ColDef struct {
	Name string
	Type value.Type
}

// ColsDef is an ordered list of columns.
type ColsDef []ColDef

// Find returns the column with the given name.
func (c ColsDef) Find(name string) (ColDef, bool) {
	i := slices.IndexFunc(c, func(cd ColDef) bool { return cd.Name == name })
	if i < 0 {
		return ColDef{}, false
	}
	return c[i], true
}

// ValidateContext records the variables
// that statements of a query define and
// reference while they are validated.
type ValidateContext struct {
	vars       map[string]ColsDef
	referenced map[string]struct{}
	anon       AnonVarGen
}

// NewValidateContext returns an
// empty ValidateContext.
func NewValidateContext() *ValidateContext {
	return &ValidateContext{
		vars:       make(map[string]ColsDef),
		referenced: make(map[string]struct{}),
	}
}

// Register declares that a statement
// produces variable name with the given columns.
func (v *ValidateContext) Register(name string, cols ColsDef) {
	v.vars[name] = cols
}

// Columns returns the columns of a
// registered variable.
func (v *ValidateContext) Columns(name string) (ColsDef, bool) {
	cols, ok := v.vars[name]
	return cols, ok
}

// Reference records that name is read
// by a statement of the query.
func (v *ValidateContext) Reference(name string) {
	v.referenced[name] = struct{}{}
}

// Referenced returns the sorted list
// of referenced variable names.
func (v *ValidateContext) Referenced() []string {
	names := maps.Keys(v.referenced)
	slices.Sort(names)
	return names
}

// Unresolved returns the referenced variables
// that no statement has registered, in sorted order.
func (v *ValidateContext) Unresolved() []string {
	var out []string
	for _, name := range v.Referenced() {
		if _, ok := v.vars[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// AnonVarGen returns the generator
// for anonymous variable names.
func (v *ValidateContext) AnonVarGen() *AnonVarGen { return &v.anon }
