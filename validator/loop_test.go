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
	"testing"

	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/plan"
	"github.com/SnellerInc/traverse/value"
)

func TestNStepLoopCondition(t *testing.T) {
	for _, n := range []uint32{0, 1, 3, 10} {
		v, qc, logged := testValidator(t, testCatalog(t), "nba")
		qc.Ectx.SetValue(v.LoopSteps(), value.Int(42))
		cond := v.BuildNStepLoopCondition(n)
		if got := qc.Ectx.Value(v.LoopSteps()); !value.Equal(got, value.Int(0)) {
			t.Fatalf("counter is %s before the loop", got)
		}
		if len(*logged) != 1 {
			t.Errorf("logged %q", *logged)
		}
		for i := uint32(0); i < n; i++ {
			ok, err := plan.EvalCondition(cond, qc.Ectx)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Fatalf("n=%d: condition false at evaluation %d", n, i+1)
			}
		}
		// and it stays false afterwards
		for i := n; i < n+3; i++ {
			ok, err := plan.EvalCondition(cond, qc.Ectx)
			if err != nil {
				t.Fatal(err)
			}
			if ok {
				t.Errorf("n=%d: condition true at evaluation %d", n, i+1)
			}
		}
	}
}

func TestExpandEndCondition(t *testing.T) {
	v, qc, _ := testValidator(t, testCatalog(t), "nba")
	cond := v.BuildExpandEndCondition("last")
	want := expr.Or(
		expr.Eq(expr.Var("last"), expr.Empty()),
		expr.Compare(expr.NotEquals, expr.CallFn("size", expr.Var("last")), expr.Integer(0)),
	)
	if !expr.Equal(want, cond) {
		t.Errorf("got %s", expr.ToString(cond))
	}
	eval := func() bool {
		ok, err := plan.EvalCondition(cond, qc.Ectx)
		if err != nil {
			t.Fatal(err)
		}
		return ok
	}
	// not produced yet
	if !eval() {
		t.Error("false before the variable is bound")
	}
	tbl := value.NewTable(VidCol)
	qc.Ectx.SetResult("last", tbl)
	if eval() {
		t.Error("true for an empty result")
	}
	tbl.Append(value.String("Tim"))
	if !eval() {
		t.Error("false for a non-empty result")
	}
}
