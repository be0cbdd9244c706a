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

func TestString(t *testing.T) {
	tcs := []struct {
		in   Node
		want string
	}{
		{Integer(3), "3"},
		{String("foo"), `"foo"`},
		{Empty(), "__EMPTY__"},
		{Input("id"), "$-.id"},
		{VarProp("a", "id"), "$a.id"},
		{EdgeProp("*", "_dst"), "*._dst"},
		{Var("x"), "$x"},
		{Incr("__loop"), "++($__loop)"},
		{Compare(LessEquals, Incr("n"), Integer(3)), "(++($n)<=3)"},
		{
			Or(Eq(Var("v"), Empty()), Compare(NotEquals, CallFn("size", Var("v")), Integer(0))),
			"(($v==__EMPTY__) OR (size($v)!=0))",
		},
		{Add(Integer(1), Integer(2)), "(1+2)"},
		{&List{Items: []Node{Integer(1), String("a")}}, `[1, "a"]`},
		{&Unary{Op: OpNot, Operand: &Constant{Value: value.Bool(true)}}, "!(true)"},
	}
	for i := range tcs {
		if got := ToString(tcs[i].in); got != tcs[i].want {
			t.Errorf("case %d: got %q, want %q", i, got, tcs[i].want)
		}
	}
}

func TestEquals(t *testing.T) {
	a := Or(Eq(Var("v"), Empty()), Compare(NotEquals, CallFn("size", Var("v")), Integer(0)))
	b := Or(Eq(Var("v"), Empty()), Compare(NotEquals, CallFn("size", Var("v")), Integer(0)))
	if !a.Equals(b) {
		t.Error("identical trees are not equal")
	}
	c := Or(Eq(Var("w"), Empty()), Compare(NotEquals, CallFn("size", Var("v")), Integer(0)))
	if a.Equals(c) {
		t.Error("different trees are equal")
	}
	// constants of different types are never equal
	if (&Constant{Value: value.Int(1)}).Equals(&Constant{Value: value.Float(1)}) {
		t.Error("1 and 1.0 constants should differ")
	}
	if !Equal(nil, nil) || Equal(Var("x"), nil) {
		t.Error("Equal with nil arguments")
	}
}

func TestClone(t *testing.T) {
	orig := Compare(LessEquals, Incr("n"), Add(Input("x"), VarProp("a", "b")))
	cp := Clone(orig).(*Relational)
	if !cp.Equals(orig) {
		t.Fatalf("clone %s differs from %s", ToString(cp), ToString(orig))
	}
	cp.Left.(*Unary).Operand.(*Variable).Name = "m"
	cp.Right.(*Arithmetic).Left.(*InputProperty).Prop = "y"
	if got := ToString(orig); got != "(++($n)<=($-.x+$a.b))" {
		t.Errorf("original was modified: %s", got)
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) != nil")
	}
}

// kindcount implements Cases and
// reports the kind it was called for
type kindcount struct{}

func (kindcount) Constant(*Constant) Kind           { return KindConstant }
func (kindcount) InputProperty(*InputProperty) Kind { return KindInputProperty }
func (kindcount) VarProperty(*VarProperty) Kind     { return KindVarProperty }
func (kindcount) EdgeProperty(*EdgeProperty) Kind   { return KindEdgeProperty }
func (kindcount) Variable(*Variable) Kind           { return KindVariable }
func (kindcount) Unary(*Unary) Kind                 { return KindUnary }
func (kindcount) Relational(*Relational) Kind       { return KindRelational }
func (kindcount) Logical(*Logical) Kind             { return KindLogical }
func (kindcount) Arithmetic(*Arithmetic) Kind       { return KindArithmetic }
func (kindcount) Call(*Call) Kind                   { return KindCall }
func (kindcount) List(*List) Kind                   { return KindList }

func TestMatchCoversEveryKind(t *testing.T) {
	nodes := []Node{
		Integer(1),
		Input("a"),
		VarProp("v", "a"),
		EdgeProp("e", "a"),
		Var("v"),
		Incr("v"),
		Eq(Integer(1), Integer(2)),
		Or(Var("a"), Var("b")),
		Add(Integer(1), Integer(2)),
		CallFn("size", Var("v")),
		&List{},
	}
	if len(nodes) != int(maxKind) {
		t.Fatalf("%d sample nodes for %d kinds", len(nodes), maxKind)
	}
	seen := make(map[Kind]bool)
	for _, n := range nodes {
		k := Match[Kind](n, kindcount{})
		if k != n.Kind() {
			t.Errorf("Match(%s) = %s, Kind() = %s", ToString(n), k, n.Kind())
		}
		seen[k] = true
	}
	for k := Kind(0); k < maxKind; k++ {
		if !seen[k] {
			t.Errorf("kind %s never matched", k)
		}
		if k.String() == "<unknown kind>" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
