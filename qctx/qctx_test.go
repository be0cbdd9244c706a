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
	"testing"

	"github.com/SnellerInc/traverse/plan"
	"github.com/SnellerInc/traverse/value"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

var _ plan.Context = &ExecutionContext{}

func TestExecutionContext(t *testing.T) {
	e := NewExecutionContext()
	if _, ok := e.Value("x").(value.Empty); !ok {
		t.Fatal("unbound variable should be empty")
	}
	if e.Exists("x") {
		t.Fatal("x should not exist")
	}
	e.SetValue("x", value.Int(1))
	tbl := value.NewTable("_vid")
	e.SetResult("t", tbl)
	if got := e.Value("x"); got != value.Int(1) {
		t.Errorf("x = %s", got)
	}
	got, ok := e.Result("t")
	if !ok || got != tbl {
		t.Error("result not bound")
	}
	if _, ok := e.Result("x"); ok {
		t.Error("x is not a table")
	}
	if diff := cmp.Diff([]string{"t", "x"}, e.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestValidateContext(t *testing.T) {
	v := NewValidateContext()
	v.Register("a", ColsDef{{Name: "id", Type: value.IntType}})
	v.Reference("b")
	v.Reference("a")
	v.Reference("b")
	if diff := cmp.Diff([]string{"a", "b"}, v.Referenced()); diff != "" {
		t.Errorf("referenced (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, v.Unresolved()); diff != "" {
		t.Errorf("unresolved (-want +got):\n%s", diff)
	}
	cols, ok := v.Columns("a")
	if !ok {
		t.Fatal("a not registered")
	}
	if cd, ok := cols.Find("id"); !ok || cd.Type != value.IntType {
		t.Errorf("Find(id) = %+v, %v", cd, ok)
	}
	if _, ok := cols.Find("name"); ok {
		t.Error("found a missing column")
	}
	g := v.AnonVarGen()
	if a, b := g.Next(), v.AnonVarGen().Next(); a != "__VAR_0" || b != "__VAR_1" {
		t.Errorf("got %q, %q", a, b)
	}
}

func TestNew(t *testing.T) {
	a, b := New(nil), New(nil)
	if a.ID == uuid.Nil || a.ID == b.ID {
		t.Errorf("query ids %s and %s", a.ID, b.ID)
	}
	if a.Arena == b.Arena || a.Ectx == b.Ectx || a.Vctx == b.Vctx {
		t.Error("contexts share state")
	}
}
