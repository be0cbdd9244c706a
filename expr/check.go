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
	"fmt"

	"github.com/SnellerInc/traverse/value"
)

// TypeError is the error type returned
// from Deduce and Eval when an expression
// is ill-typed or cannot be evaluated.
type TypeError struct {
	At  Node
	Msg string
}

// Error implements error
func (t *TypeError) Error() string {
	return fmt.Sprintf("%q is ill-typed: %s", ToString(t.At), t.Msg)
}

func errtype(e Node, msg string) *TypeError {
	return &TypeError{At: e, Msg: msg}
}

func errtypef(e Node, f string, args ...interface{}) *TypeError {
	return errtype(e, fmt.Sprintf(f, args...))
}

// Hint is an argument that can be
// supplied to type deduction to provide
// the types of property and variable
// references, which are otherwise unknown.
type Hint interface {
	// TypeOf returns the type of a reference
	// node (InputProperty, VarProperty, EdgeProperty
	// or Variable) and whether it is known.
	TypeOf(e Node) (value.Type, bool)
}

// HintFn is a function that implements Hint
type HintFn func(Node) (value.Type, bool)

func (h HintFn) TypeOf(e Node) (value.Type, bool) {
	return h(e)
}

// NoHint is the empty Hint
func NoHint(Node) (value.Type, bool) {
	return 0, false
}

// Deduce determines the type of the
// value that n produces when it is evaluated.
func Deduce(n Node, h Hint) (value.Type, error) {
	if h == nil {
		h = HintFn(NoHint)
	}
	return n.typeof(h)
}

func numeric(t value.Type) bool {
	return t == value.IntType || t == value.FloatType
}

func (c *Constant) typeof(Hint) (value.Type, error) { return c.Value.Type(), nil }

func (i *InputProperty) typeof(h Hint) (value.Type, error) {
	if t, ok := h.TypeOf(i); ok {
		return t, nil
	}
	return 0, errtypef(i, "column %q does not exist in the input", i.Prop)
}

func (v *VarProperty) typeof(h Hint) (value.Type, error) {
	if t, ok := h.TypeOf(v); ok {
		return t, nil
	}
	return 0, errtypef(v, "column %q does not exist in variable %q", v.Prop, v.Sym)
}

func (e *EdgeProperty) typeof(h Hint) (value.Type, error) {
	if t, ok := h.TypeOf(e); ok {
		return t, nil
	}
	return 0, errtypef(e, "unknown edge property %q", e.Prop)
}

func (v *Variable) typeof(h Hint) (value.Type, error) {
	if t, ok := h.TypeOf(v); ok {
		return t, nil
	}
	return 0, errtypef(v, "undefined variable %q", v.Name)
}

func (u *Unary) typeof(h Hint) (value.Type, error) {
	t, err := u.Operand.typeof(h)
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case OpIncr, OpDecr:
		if _, ok := u.Operand.(*Variable); !ok {
			return 0, errtype(u, "operand of increment/decrement must be a variable")
		}
		if t != value.IntType {
			return 0, errtype(u, "operand is not an integer")
		}
		return t, nil
	case OpNeg:
		if !numeric(t) {
			return 0, errtype(u, "argument is not numeric")
		}
		return t, nil
	case OpNot:
		if t != value.BoolType {
			return 0, errtype(u, "can't compute NOT of non-logical expression")
		}
		return value.BoolType, nil
	}
	return 0, errtypef(u, "unknown unary operator %d", u.Op)
}

func (r *Relational) typeof(h Hint) (value.Type, error) {
	lt, err := r.Left.typeof(h)
	if err != nil {
		return 0, err
	}
	rt, err := r.Right.typeof(h)
	if err != nil {
		return 0, err
	}
	if r.Op.Ordinal() && !(numeric(lt) && numeric(rt)) && !(lt == value.StringType && rt == value.StringType) {
		return 0, errtypef(r, "cannot order %s and %s", lt, rt)
	}
	return value.BoolType, nil
}

func (l *Logical) typeof(h Hint) (value.Type, error) {
	for _, arg := range []Node{l.Left, l.Right} {
		t, err := arg.typeof(h)
		if err != nil {
			return 0, err
		}
		if t != value.BoolType && t != value.NullType {
			return 0, errtypef(l, "%s is not a logical expression", ToString(arg))
		}
	}
	return value.BoolType, nil
}

func (a *Arithmetic) typeof(h Hint) (value.Type, error) {
	lt, err := a.Left.typeof(h)
	if err != nil {
		return 0, err
	}
	rt, err := a.Right.typeof(h)
	if err != nil {
		return 0, err
	}
	switch {
	case a.Op == AddOp && lt == value.StringType && rt == value.StringType:
		return value.StringType, nil
	case lt == value.IntType && rt == value.IntType:
		return value.IntType, nil
	case numeric(lt) && numeric(rt):
		return value.FloatType, nil
	}
	return 0, errtype(a, "arguments are not numeric")
}

func (c *Call) typeof(h Hint) (value.Type, error) {
	b, ok := builtins[lower(c.Func)]
	if !ok {
		return 0, errtypef(c, "unknown function %q", c.Func)
	}
	if len(c.Args) != b.args {
		return 0, errtypef(c, "%s expects %d argument(s), but found %d", c.Func, b.args, len(c.Args))
	}
	args := make([]value.Type, len(c.Args))
	for i := range c.Args {
		t, err := c.Args[i].typeof(h)
		if err != nil {
			return 0, err
		}
		args[i] = t
	}
	ret, ok := b.typeof(args)
	if !ok {
		return 0, errtypef(c, "invalid argument types for %s", c.Func)
	}
	return ret, nil
}

func (l *List) typeof(h Hint) (value.Type, error) {
	for i := range l.Items {
		if _, err := l.Items[i].typeof(h); err != nil {
			return 0, err
		}
	}
	return value.ListType, nil
}
