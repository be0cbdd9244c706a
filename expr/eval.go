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
	"math"

	"github.com/SnellerInc/traverse/value"
)

// Env supplies the row and variable
// bindings used during evaluation.
type Env interface {
	// Column returns the value of prop in
	// the current row; sym is "-" for the pipe
	// input, the variable name for a variable
	// property, or the edge name for an edge property.
	Column(sym, prop string) (value.Datum, bool)
	// Value returns the value bound to
	// name, or value.Empty{} if it is unbound.
	Value(name string) value.Datum
	// SetValue binds name to d.
	SetValue(name string, d value.Datum)
}

// noEnv is the Env used for constant folding;
// any access to it is a bug in Evaluable.
type noEnv struct{}

func (noEnv) Column(string, string) (value.Datum, bool) { return nil, false }
func (noEnv) Value(string) value.Datum                  { return value.Empty{} }
func (noEnv) SetValue(string, value.Datum)              { panic("expr: SetValue during constant folding") }

// Evaluable returns whether n can be evaluated
// without any row or variable context, i.e.
// whether it is a candidate for constant folding.
func Evaluable(n Node) bool {
	ok := true
	Walk(visitfn(func(e Node) bool {
		if !ok {
			return false
		}
		switch e.Kind() {
		case KindInputProperty, KindVarProperty, KindEdgeProperty, KindVariable:
			ok = false
		case KindCall:
			if _, known := builtins[lower(e.(*Call).Func)]; !known {
				ok = false
			}
		}
		return ok
	}), n)
	return ok
}

// Fold evaluates n without any row context.
// The caller should check Evaluable first;
// Fold returns a *TypeError if n is not evaluable.
func Fold(n Node) (value.Datum, error) {
	if !Evaluable(n) {
		return nil, errtype(n, "not an evaluable expression")
	}
	return n.eval(noEnv{})
}

// Eval evaluates n in the given environment.
func Eval(n Node, env Env) (value.Datum, error) {
	return n.eval(env)
}

func (c *Constant) eval(Env) (value.Datum, error) { return c.Value, nil }

func (i *InputProperty) eval(env Env) (value.Datum, error) {
	d, ok := env.Column("-", i.Prop)
	if !ok {
		return nil, errtypef(i, "no column %q in the input", i.Prop)
	}
	return d, nil
}

func (v *VarProperty) eval(env Env) (value.Datum, error) {
	d, ok := env.Column(v.Sym, v.Prop)
	if !ok {
		return nil, errtypef(v, "no column %q in variable %q", v.Prop, v.Sym)
	}
	return d, nil
}

func (e *EdgeProperty) eval(env Env) (value.Datum, error) {
	d, ok := env.Column(e.Edge, e.Prop)
	if !ok {
		return nil, errtypef(e, "no edge property %q", e.Prop)
	}
	return d, nil
}

func (v *Variable) eval(env Env) (value.Datum, error) {
	return env.Value(v.Name), nil
}

func (u *Unary) eval(env Env) (value.Datum, error) {
	switch u.Op {
	case OpIncr, OpDecr:
		v, ok := u.Operand.(*Variable)
		if !ok {
			return nil, errtype(u, "operand of increment/decrement must be a variable")
		}
		i, ok := env.Value(v.Name).(value.Int)
		if !ok {
			return nil, errtypef(u, "variable %q is not an integer", v.Name)
		}
		if u.Op == OpIncr {
			i++
		} else {
			i--
		}
		env.SetValue(v.Name, i)
		return i, nil
	}
	d, err := u.Operand.eval(env)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case OpNeg:
		switch d := d.(type) {
		case value.Int:
			return -d, nil
		case value.Float:
			return -d, nil
		}
		return nil, errtype(u, "argument is not numeric")
	case OpNot:
		b, ok := d.(value.Bool)
		if !ok {
			return nil, errtype(u, "can't compute NOT of non-logical expression")
		}
		return !b, nil
	}
	return nil, errtypef(u, "unknown unary operator %d", u.Op)
}

// ordinal compares two datums of compatible
// types and returns -1, 0, or +1
func ordinal(a, b value.Datum) (int, bool) {
	switch a := a.(type) {
	case value.Int:
		switch b := b.(type) {
		case value.Int:
			return cmp3(a < b, a > b), true
		case value.Float:
			return cmp3(float64(a) < float64(b), float64(a) > float64(b)), true
		}
	case value.Float:
		switch b := b.(type) {
		case value.Int:
			return cmp3(float64(a) < float64(b), float64(a) > float64(b)), true
		case value.Float:
			return cmp3(a < b, a > b), true
		}
	case value.String:
		if b, ok := b.(value.String); ok {
			return cmp3(a < b, a > b), true
		}
	}
	return 0, false
}

func cmp3(lt, gt bool) int {
	if lt {
		return -1
	}
	if gt {
		return 1
	}
	return 0
}

func (r *Relational) eval(env Env) (value.Datum, error) {
	l, err := r.Left.eval(env)
	if err != nil {
		return nil, err
	}
	rv, err := r.Right.eval(env)
	if err != nil {
		return nil, err
	}
	switch r.Op {
	case Equals:
		return value.Bool(value.Equal(l, rv)), nil
	case NotEquals:
		return value.Bool(!value.Equal(l, rv)), nil
	}
	c, ok := ordinal(l, rv)
	if !ok {
		return nil, errtypef(r, "cannot order %s and %s", l.Type(), rv.Type())
	}
	switch r.Op {
	case Less:
		return value.Bool(c < 0), nil
	case LessEquals:
		return value.Bool(c <= 0), nil
	case Greater:
		return value.Bool(c > 0), nil
	case GreaterEquals:
		return value.Bool(c >= 0), nil
	}
	return nil, errtypef(r, "unknown comparison operator %d", r.Op)
}

func (l *Logical) operand(env Env, n Node) (value.Bool, error) {
	d, err := n.eval(env)
	if err != nil {
		return false, err
	}
	b, ok := d.(value.Bool)
	if !ok {
		return false, errtypef(l, "%s is not a logical expression", ToString(n))
	}
	return b, nil
}

func (l *Logical) eval(env Env) (value.Datum, error) {
	left, err := l.operand(env, l.Left)
	if err != nil {
		return nil, err
	}
	// AND and OR short-circuit
	switch {
	case l.Op == OpAnd && !bool(left):
		return value.Bool(false), nil
	case l.Op == OpOr && bool(left):
		return value.Bool(true), nil
	}
	right, err := l.operand(env, l.Right)
	if err != nil {
		return nil, err
	}
	if l.Op == OpXor {
		return value.Bool(left != right), nil
	}
	return right, nil
}

func (a *Arithmetic) eval(env Env) (value.Datum, error) {
	l, err := a.Left.eval(env)
	if err != nil {
		return nil, err
	}
	r, err := a.Right.eval(env)
	if err != nil {
		return nil, err
	}
	if ls, ok := l.(value.String); ok && a.Op == AddOp {
		if rs, ok := r.(value.String); ok {
			return ls + rs, nil
		}
	}
	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if lok && rok {
		switch a.Op {
		case AddOp:
			return li + ri, nil
		case SubOp:
			return li - ri, nil
		case MulOp:
			return li * ri, nil
		case DivOp, ModOp:
			if ri == 0 {
				return nil, errtype(a, "division by zero")
			}
			if a.Op == DivOp {
				return li / ri, nil
			}
			return li % ri, nil
		}
	}
	lf, lok := tofloat(l)
	rf, rok := tofloat(r)
	if !lok || !rok {
		return nil, errtype(a, "arguments are not numeric")
	}
	switch a.Op {
	case AddOp:
		return value.Float(lf + rf), nil
	case SubOp:
		return value.Float(lf - rf), nil
	case MulOp:
		return value.Float(lf * rf), nil
	case DivOp:
		return value.Float(lf / rf), nil
	case ModOp:
		return value.Float(math.Mod(lf, rf)), nil
	}
	return nil, errtypef(a, "unknown arithmetic operator %d", a.Op)
}

func tofloat(d value.Datum) (float64, bool) {
	switch d := d.(type) {
	case value.Int:
		return float64(d), true
	case value.Float:
		return float64(d), true
	}
	return 0, false
}

func (c *Call) eval(env Env) (value.Datum, error) {
	b, ok := builtins[lower(c.Func)]
	if !ok {
		return nil, errtypef(c, "unknown function %q", c.Func)
	}
	if len(c.Args) != b.args {
		return nil, errtypef(c, "%s expects %d argument(s), but found %d", c.Func, b.args, len(c.Args))
	}
	args := make([]value.Datum, len(c.Args))
	for i := range c.Args {
		d, err := c.Args[i].eval(env)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	ret, ok := b.eval(args)
	if !ok {
		return nil, errtypef(c, "invalid arguments to %s", c.Func)
	}
	return ret, nil
}

func (l *List) eval(env Env) (value.Datum, error) {
	items := make([]value.Datum, len(l.Items))
	for i := range l.Items {
		d, err := l.Items[i].eval(env)
		if err != nil {
			return nil, err
		}
		items[i] = d
	}
	return value.NewList(items...), nil
}
