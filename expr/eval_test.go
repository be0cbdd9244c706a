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

package expr

import (
	"testing"

	"github.com/SnellerInc/traverse/value"
)

type mapenv struct {
	row  map[string]value.Datum
	vars map[string]value.Datum
}

func (m *mapenv) Column(sym, prop string) (value.Datum, bool) {
	d, ok := m.row[sym+"."+prop]
	return d, ok
}

func (m *mapenv) Value(name string) value.Datum {
	if d, ok := m.vars[name]; ok {
		return d
	}
	return value.Empty{}
}

func (m *mapenv) SetValue(name string, d value.Datum) {
	if m.vars == nil {
		m.vars = make(map[string]value.Datum)
	}
	m.vars[name] = d
}

func TestEvaluable(t *testing.T) {
	tcs := []struct {
		in   Node
		want bool
	}{
		{Integer(1), true},
		{Add(Integer(1), Integer(2)), true},
		{CallFn("abs", Integer(-1)), true},
		{&List{Items: []Node{String("a"), Integer(1)}}, true},
		{Input("id"), false},
		{VarProp("a", "id"), false},
		{EdgeProp("*", "_dst"), false},
		{Var("x"), false},
		{Add(Integer(1), Input("id")), false},
		{Incr("n"), false},
		{CallFn("rand"), false},
	}
	for i := range tcs {
		if got := Evaluable(tcs[i].in); got != tcs[i].want {
			t.Errorf("Evaluable(%s) = %v", ToString(tcs[i].in), got)
		}
	}
}

func TestFold(t *testing.T) {
	tcs := []struct {
		in   Node
		want value.Datum
	}{
		{Integer(7), value.Int(7)},
		{Add(Integer(1), Integer(2)), value.Int(3)},
		{Add(String("a"), String("b")), value.String("ab")},
		{&Arithmetic{Op: MulOp, Left: Integer(2), Right: &Constant{Value: value.Float(1.5)}}, value.Float(3)},
		{&Arithmetic{Op: ModOp, Left: Integer(7), Right: Integer(4)}, value.Int(3)},
		{&Unary{Op: OpNeg, Operand: Integer(4)}, value.Int(-4)},
		{CallFn("abs", Integer(-4)), value.Int(4)},
		{CallFn("upper", String("vid")), value.String("VID")},
		{CallFn("size", &List{Items: []Node{Integer(1), Integer(2)}}), value.Int(2)},
		{Compare(Less, Integer(1), &Constant{Value: value.Float(1.5)}), value.Bool(true)},
		{Compare(GreaterEquals, String("a"), String("b")), value.Bool(false)},
		{&Logical{Op: OpXor, Left: Eq(Integer(1), Integer(1)), Right: Eq(Integer(1), Integer(2))}, value.Bool(true)},
	}
	for i := range tcs {
		got, err := Fold(tcs[i].in)
		if err != nil {
			t.Errorf("Fold(%s): %s", ToString(tcs[i].in), err)
			continue
		}
		if got.Type() != tcs[i].want.Type() || !value.Equal(got, tcs[i].want) {
			t.Errorf("Fold(%s) = %s, want %s", ToString(tcs[i].in), got, tcs[i].want)
		}
	}
}

func TestFoldErrors(t *testing.T) {
	for _, n := range []Node{
		Input("id"),
		&Arithmetic{Op: DivOp, Left: Integer(1), Right: Integer(0)},
		Add(Integer(1), String("x")),
		Compare(Less, Integer(1), String("x")),
		CallFn("size", Integer(3)),
	} {
		if _, err := Fold(n); err == nil {
			t.Errorf("Fold(%s) should fail", ToString(n))
		}
	}
}

func TestEvalIncrement(t *testing.T) {
	env := &mapenv{}
	env.SetValue("n", value.Int(0))
	cond := Compare(LessEquals, Incr("n"), Integer(2))
	want := []bool{true, true, false, false}
	for i, w := range want {
		got, err := Eval(cond, env)
		if err != nil {
			t.Fatal(err)
		}
		if got != value.Bool(w) {
			t.Errorf("evaluation %d: got %s, want %v", i+1, got, w)
		}
	}
	if got := env.Value("n"); got != value.Int(4) {
		t.Errorf("counter = %s", got)
	}
	// incrementing an unbound variable is an error
	if _, err := Eval(Incr("unbound"), env); err == nil {
		t.Error("expected an error")
	}
}

func TestEvalColumns(t *testing.T) {
	env := &mapenv{row: map[string]value.Datum{
		"-.id":    value.Int(5),
		"a.name":  value.String("x"),
		"*._dst":  value.Int(9),
		"-.empty": value.NewList(),
	}}
	tcs := []struct {
		in   Node
		want value.Datum
	}{
		{Input("id"), value.Int(5)},
		{VarProp("a", "name"), value.String("x")},
		{EdgeProp("*", "_dst"), value.Int(9)},
		{Add(Input("id"), EdgeProp("*", "_dst")), value.Int(14)},
		{CallFn("size", Input("empty")), value.Int(0)},
	}
	for i := range tcs {
		got, err := Eval(tcs[i].in, env)
		if err != nil {
			t.Fatalf("Eval(%s): %s", ToString(tcs[i].in), err)
		}
		if !value.Equal(got, tcs[i].want) {
			t.Errorf("Eval(%s) = %s, want %s", ToString(tcs[i].in), got, tcs[i].want)
		}
	}
	if _, err := Eval(Input("missing"), env); err == nil {
		t.Error("expected an error for a missing column")
	}
}
