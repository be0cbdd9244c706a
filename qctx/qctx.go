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

// Package qctx holds the state that belongs
// to one compiling query: the plan arena,
// the execution context that constant data
// is bound into, and the symbols seen
// during validation.
//
// None of the types in this package are
// safe for concurrent use; a Context must
// not be shared between queries.
package qctx

import (
	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/plan"

	"github.com/google/uuid"
)

// Context is the compile-time
// context of a single query.
type Context struct {
	// ID uniquely identifies the query.
	ID uuid.UUID
	// Catalog is the (shared, read-only)
	// schema catalog.
	Catalog catalog.Catalog
	// Arena owns the plan nodes
	// allocated for the query.
	Arena *plan.Arena
	// Ectx holds the values bound
	// to variables at compile time.
	Ectx *ExecutionContext
	// Vctx holds the symbols
	// seen during validation.
	Vctx *ValidateContext
}

// New returns a fresh Context for
// a query compiled against cat.
func New(cat catalog.Catalog) *Context {
	return &Context{
		ID:      uuid.New(),
		Catalog: cat,
		Arena:   new(plan.Arena),
		Ectx:    NewExecutionContext(),
		Vctx:    NewValidateContext(),
	}
}
