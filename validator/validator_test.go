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
	"fmt"
	"strings"
	"testing"

	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/clause"
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/qctx"
	"github.com/SnellerInc/traverse/value"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testdef = `
spaces:
  - name: nba
    vid_type: FIXED_STRING(8)
    edges:
      - name: serve
        type: 3
      - name: like
        type: 1
      - name: follow
        type: 2
  - name: ids
    vid_type: INT64
`

func testCatalog(t *testing.T) *catalog.Snapshot {
	d, err := catalog.DecodeDefinition(strings.NewReader(testdef))
	if err != nil {
		t.Fatal(err)
	}
	s, err := catalog.NewSnapshot(d)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// testValidator returns a validator for space
// along with the query context it belongs to
// and the lines it logged.
func testValidator(t *testing.T, cat catalog.Catalog, space string) (*Validator, *qctx.Context, *[]string) {
	qc := qctx.New(cat)
	var logged []string
	v, err := New(qc, space, &Config{
		Logf: func(f string, args ...interface{}) {
			logged = append(logged, fmt.Sprintf(f, args...))
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return v, qc, &logged
}

func TestNew(t *testing.T) {
	cat := testCatalog(t)
	v, qc, _ := testValidator(t, cat, "nba")
	if v.Space() != "nba" {
		t.Errorf("space %q", v.Space())
	}
	if got := v.VidType(); got.Kind != catalog.VidFixedString || got.Len != 8 {
		t.Errorf("vid type %+v", got)
	}
	// the loop counter is the first anonymous variable
	if v.LoopSteps() != "__VAR_0" {
		t.Errorf("loop counter %q", v.LoopSteps())
	}
	if next := qc.Vctx.AnonVarGen().Next(); next == v.LoopSteps() {
		t.Errorf("anonymous variable %q reused", next)
	}

	_, err := New(qctx.New(cat), "nope", nil)
	var se *SemanticError
	if !errors.As(err, &se) {
		t.Fatalf("got error %T %v", err, err)
	}
	if !errors.Is(err, catalog.ErrSpaceNotFound) {
		t.Errorf("error %v does not wrap ErrSpaceNotFound", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q does not name the space", err)
	}
}

func TestTypeOf(t *testing.T) {
	v, qc, _ := testValidator(t, testCatalog(t), "nba")
	v.SetInputs(qctx.ColsDef{{Name: "id", Type: value.StringType}})
	qc.Vctx.Register("v", qctx.ColsDef{{Name: "n", Type: value.IntType}})
	run := []struct {
		e   expr.Node
		typ value.Type
		ok  bool
	}{
		{expr.Input("id"), value.StringType, true},
		{expr.Input("n"), 0, false},
		{expr.VarProp("v", "n"), value.IntType, true},
		{expr.VarProp("v", "id"), 0, false},
		{expr.VarProp("w", "n"), 0, false},
		{expr.Var("v"), 0, false},
		{expr.Integer(1), 0, false},
	}
	for i := range run {
		typ, ok := v.TypeOf(run[i].e)
		if ok != run[i].ok || (ok && typ != run[i].typ) {
			t.Errorf("TypeOf(%s) = %s, %v", expr.ToString(run[i].e), typ, ok)
		}
	}
}

func TestSemanticError(t *testing.T) {
	cause := errors.New("cause")
	run := []struct {
		err  *SemanticError
		want string
	}{
		{newError("1", "Vid should be a", "INT64", "STRING", nil), "`1', Vid should be a INT64, but was `STRING'"},
		{errorf("", "missing %s clause", "FROM"), "missing FROM clause"},
		{newError("follow", "not found", "", "", cause), "`follow', not found"},
	}
	for i := range run {
		if got := run[i].err.Error(); got != run[i].want {
			t.Errorf("got %q, want %q", got, run[i].want)
		}
	}
	if !errors.Is(run[2].err, cause) {
		t.Error("cause not unwrapped")
	}
	var out strings.Builder
	if _, err := run[0].err.WriteTo(&out); err != nil {
		t.Fatal(err)
	}
	want := "in clause:\n\t1\n`1', Vid should be a INT64, but was `STRING'\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	qc := qctx.New(testCatalog(t))
	v, err := New(qc, "nba", &Config{Metrics: m})
	if err != nil {
		t.Fatal(err)
	}
	v.ValidateStep(clause.Steps(2))
	v.ValidateStep(clause.StepRange(3, 2))
	v.ValidateStep(nil)
	if got := testutil.ToFloat64(m.clauses.WithLabelValues("step", "ok")); got != 1 {
		t.Errorf("ok steps = %g", got)
	}
	if got := testutil.ToFloat64(m.clauses.WithLabelValues("step", "error")); got != 2 {
		t.Errorf("failed steps = %g", got)
	}
	v.BuildConstantInput(&Starts{FromType: FromLiteral, Vids: []value.Datum{value.String("a")}})
	if got := testutil.ToFloat64(m.fragments.WithLabelValues("constant")); got != 1 {
		t.Errorf("constant fragments = %g", got)
	}
	n, err := testutil.GatherAndCount(reg, "traverse_clauses_validated_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %d clause series, want 2", n)
	}

	// a nil *Metrics is valid
	var nilm *Metrics
	nilm.clause("from", nil)
	nilm.fragment("dst")
}
