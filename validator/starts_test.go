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
	"errors"
	"strings"
	"testing"

	"github.com/SnellerInc/traverse/clause"
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/qctx"
	"github.com/SnellerInc/traverse/value"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"
)

func TestStartsLiteral(t *testing.T) {
	v, _, _ := testValidator(t, testCatalog(t), "nba")
	c := &clause.VerticesClause{
		Vids: []expr.Node{
			expr.String("Tim"),
			expr.String("Tony"),
			expr.String("Tim"),
			expr.CallFn("lower", expr.String("KOBE")),
		},
	}
	s, err := v.ValidateStarts(c)
	if err != nil {
		t.Fatal(err)
	}
	if s.FromType != FromLiteral || s.OriginalSrc != nil || s.Src != nil {
		t.Errorf("unexpected starts %+v", s)
	}
	// order and duplicates are kept
	want := []value.Datum{value.String("Tim"), value.String("Tony"), value.String("Tim"), value.String("kobe")}
	if !slices.EqualFunc(want, s.Vids, value.Equal) {
		t.Errorf("got vids %v", s.Vids)
	}

	iv, _, _ := testValidator(t, testCatalog(t), "ids")
	s, err = iv.ValidateStarts(&clause.VerticesClause{
		Vids: []expr.Node{expr.Integer(1), expr.Add(expr.Integer(1), expr.Integer(2))},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.EqualFunc([]value.Datum{value.Int(1), value.Int(3)}, s.Vids, value.Equal) {
		t.Errorf("got vids %v", s.Vids)
	}
}

func TestStartsLiteralErrors(t *testing.T) {
	v, _, _ := testValidator(t, testCatalog(t), "nba")
	run := []struct {
		vids []expr.Node
		want string
	}{
		{
			vids: []expr.Node{expr.String("Tim"), expr.Integer(1)},
			want: "`1', Vid should be a FIXED_STRING, but was `INT'",
		},
		{
			// longer than FIXED_STRING(8)
			vids: []expr.Node{expr.String("Manu Ginobili")},
			want: "`\"Manu Ginobili\"', Vid should be a FIXED_STRING, but was `STRING'",
		},
		{
			vids: []expr.Node{expr.Input("id")},
			want: "`$-.id', is not an evaluable expression",
		},
		{
			vids: []expr.Node{expr.Var("v")},
			want: "`$v', is not an evaluable expression",
		},
		{
			vids: nil,
			want: "no starting vertices",
		},
	}
	for i := range run {
		_, err := v.ValidateStarts(&clause.VerticesClause{Vids: run[i].vids})
		if err == nil {
			t.Errorf("case %d: no error", i)
			continue
		}
		var se *SemanticError
		if !errors.As(err, &se) {
			t.Errorf("case %d: error %T is not a *SemanticError", i, err)
		}
		if got := err.Error(); !strings.HasSuffix(got, run[i].want) {
			t.Errorf("case %d: got %q, want %q", i, got, run[i].want)
		}
	}
	if _, err := v.ValidateStarts(nil); err == nil {
		t.Error("nil clause accepted")
	}

	// a literal whose evaluation fails
	iv, _, _ := testValidator(t, testCatalog(t), "ids")
	_, err := iv.ValidateStarts(&clause.VerticesClause{
		Vids: []expr.Node{&expr.Arithmetic{Op: expr.DivOp, Left: expr.Integer(1), Right: expr.Integer(0)}},
	})
	var te *expr.TypeError
	if !errors.As(err, &te) {
		t.Errorf("got error %v, want one wrapping a *expr.TypeError", err)
	}
}

func TestStartsRuntime(t *testing.T) {
	v, qc, _ := testValidator(t, testCatalog(t), "nba")
	v.SetInputs(qctx.ColsDef{{Name: "id", Type: value.StringType}})
	qc.Vctx.Register("friends", qctx.ColsDef{{Name: "dst", Type: value.StringType}})

	src := expr.Input("id")
	s, err := v.ValidateStarts(&clause.VerticesClause{Ref: src})
	if err != nil {
		t.Fatal(err)
	}
	if s.FromType != FromPipe || s.FirstBeginningSrcVidColName != "id" || s.UserDefinedVarName != "" {
		t.Errorf("unexpected starts %+v", s)
	}
	if !expr.Equal(s.OriginalSrc, src) || len(s.Vids) != 0 {
		t.Errorf("unexpected starts %+v", s)
	}
	if len(qc.Vctx.Referenced()) != 0 {
		t.Errorf("pipe input referenced variables %v", qc.Vctx.Referenced())
	}

	s, err = v.ValidateStarts(&clause.VerticesClause{Ref: expr.VarProp("friends", "dst")})
	if err != nil {
		t.Fatal(err)
	}
	if s.FromType != FromVariable || s.UserDefinedVarName != "friends" || s.FirstBeginningSrcVidColName != "dst" {
		t.Errorf("unexpected starts %+v", s)
	}
	if diff := cmp.Diff([]string{"friends"}, qc.Vctx.Referenced()); diff != "" {
		t.Errorf("referenced variables (-want +got):\n%s", diff)
	}
}

func TestStartsRuntimeErrors(t *testing.T) {
	v, qc, _ := testValidator(t, testCatalog(t), "nba")
	v.SetInputs(qctx.ColsDef{
		{Name: "id", Type: value.StringType},
		{Name: "age", Type: value.IntType},
	})
	run := []struct {
		ref  expr.Node
		want string
	}{
		{
			ref:  expr.Integer(1),
			want: "`1', Only input and variable expression is acceptable when starts are evaluated at runtime.",
		},
		{
			ref:  expr.Add(expr.Input("id"), expr.String("x")),
			want: "`($-.id+\"x\")', Only input and variable expression is acceptable when starts are evaluated at runtime.",
		},
		{
			ref:  expr.Input("age"),
			want: "`$-.age', the srcs should be type of FIXED_STRING, but was `INT'",
		},
	}
	for i := range run {
		_, err := v.ValidateStarts(&clause.VerticesClause{Ref: run[i].ref})
		if err == nil {
			t.Errorf("case %d: no error", i)
			continue
		}
		if got := err.Error(); got != run[i].want {
			t.Errorf("case %d: got %q, want %q", i, got, run[i].want)
		}
	}

	// unknown columns fail type deduction
	for _, ref := range []expr.Node{expr.Input("name"), expr.VarProp("nope", "dst")} {
		_, err := v.ValidateStarts(&clause.VerticesClause{Ref: ref})
		var te *expr.TypeError
		if !errors.As(err, &te) {
			t.Errorf("%s: got error %v", expr.ToString(ref), err)
		}
	}
	// failed validation does not reference the variable
	if len(qc.Vctx.Referenced()) != 0 {
		t.Errorf("referenced variables %v", qc.Vctx.Referenced())
	}
}
