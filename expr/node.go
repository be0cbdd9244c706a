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
	"strings"

	"github.com/SnellerInc/traverse/value"

	"golang.org/x/exp/slices"
)

// Visitor is an interface that must
// be satisfied by the argument to Walk.
//
// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of node
// with the visitor w, followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of node, followed by a call of w.Visit(nil).
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

type visitfn func(Node) bool

func (v visitfn) Visit(n Node) Visitor {
	if n == nil || !v(n) {
		return nil
	}
	return v
}

// Kind identifies the concrete type of a Node.
type Kind uint8

const (
	KindConstant Kind = iota
	// KindInputProperty is a column of the
	// pipe input, i.e. $-.prop
	KindInputProperty
	// KindVarProperty is a column of
	// a named variable, i.e. $var.prop
	KindVarProperty
	// KindEdgeProperty is a property of
	// the edge being expanded, i.e. edge._dst
	KindEdgeProperty
	// KindVariable is a whole variable, i.e. $var
	KindVariable
	KindUnary
	KindRelational
	KindLogical
	KindArithmetic
	KindCall
	KindList

	maxKind
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindInputProperty:
		return "InputProperty"
	case KindVarProperty:
		return "VarProperty"
	case KindEdgeProperty:
		return "EdgeProperty"
	case KindVariable:
		return "Variable"
	case KindUnary:
		return "Unary"
	case KindRelational:
		return "Relational"
	case KindLogical:
		return "Logical"
	case KindArithmetic:
		return "Arithmetic"
	case KindCall:
		return "Call"
	case KindList:
		return "List"
	default:
		return "<unknown kind>"
	}
}

// Node is an expression AST node.
//
// The set of Node implementations is closed;
// see Match for inspecting a Node by kind.
type Node interface {
	Kind() Kind
	// Equals returns whether the receiver
	// is structurally equal to the argument.
	Equals(Node) bool

	text(dst *strings.Builder)
	walk(v Visitor)
	clone() Node
	eval(env Env) (value.Datum, error)
	typeof(h Hint) (value.Type, error)
}

var (
	_ Node = &Constant{}
	_ Node = &InputProperty{}
	_ Node = &VarProperty{}
	_ Node = &EdgeProperty{}
	_ Node = &Variable{}
	_ Node = &Unary{}
	_ Node = &Relational{}
	_ Node = &Logical{}
	_ Node = &Arithmetic{}
	_ Node = &Call{}
	_ Node = &List{}
)

// ToString returns the textual
// representation of n.
func ToString(n Node) string {
	var out strings.Builder
	n.text(&out)
	return out.String()
}

// Equal returns whether a and b are equivalent.
// Either argument may be nil.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// Constant is a literal value.
type Constant struct {
	Value value.Datum
}

// Integer returns an integer constant.
func Integer(i int64) *Constant { return &Constant{Value: value.Int(i)} }

// String returns a string constant.
func String(s string) *Constant { return &Constant{Value: value.String(s)} }

// Empty returns a constant holding
// the unassigned-variable sentinel.
func Empty() *Constant { return &Constant{Value: value.Empty{}} }

func (c *Constant) Kind() Kind { return KindConstant }

func (c *Constant) Equals(x Node) bool {
	xc, ok := x.(*Constant)
	return ok && c.Value.Type() == xc.Value.Type() && value.Equal(c.Value, xc.Value)
}

func (c *Constant) text(dst *strings.Builder) { dst.WriteString(c.Value.String()) }
func (c *Constant) walk(Visitor)              {}

// InputProperty is a reference to
// a column of the pipe input.
type InputProperty struct {
	Prop string
}

// Input returns $-.prop
func Input(prop string) *InputProperty { return &InputProperty{Prop: prop} }

func (i *InputProperty) Kind() Kind { return KindInputProperty }

func (i *InputProperty) Equals(x Node) bool {
	xi, ok := x.(*InputProperty)
	return ok && xi.Prop == i.Prop
}

func (i *InputProperty) text(dst *strings.Builder) {
	dst.WriteString("$-.")
	dst.WriteString(i.Prop)
}

func (i *InputProperty) walk(Visitor) {}

// VarProperty is a reference to
// a column of a named variable.
type VarProperty struct {
	Sym  string
	Prop string
}

// VarProp returns $sym.prop
func VarProp(sym, prop string) *VarProperty { return &VarProperty{Sym: sym, Prop: prop} }

func (v *VarProperty) Kind() Kind { return KindVarProperty }

func (v *VarProperty) Equals(x Node) bool {
	xv, ok := x.(*VarProperty)
	return ok && xv.Sym == v.Sym && xv.Prop == v.Prop
}

func (v *VarProperty) text(dst *strings.Builder) {
	dst.WriteByte('$')
	dst.WriteString(v.Sym)
	dst.WriteByte('.')
	dst.WriteString(v.Prop)
}

func (v *VarProperty) walk(Visitor) {}

// EdgeProperty is a property of the
// edge currently being expanded.
// Edge is "*" when any edge type matches.
type EdgeProperty struct {
	Edge string
	Prop string
}

// EdgeProp returns edge.prop
func EdgeProp(edge, prop string) *EdgeProperty { return &EdgeProperty{Edge: edge, Prop: prop} }

func (e *EdgeProperty) Kind() Kind { return KindEdgeProperty }

func (e *EdgeProperty) Equals(x Node) bool {
	xe, ok := x.(*EdgeProperty)
	return ok && xe.Edge == e.Edge && xe.Prop == e.Prop
}

func (e *EdgeProperty) text(dst *strings.Builder) {
	dst.WriteString(e.Edge)
	dst.WriteByte('.')
	dst.WriteString(e.Prop)
}

func (e *EdgeProperty) walk(Visitor) {}

// Variable is a reference to the
// whole value bound to a variable.
type Variable struct {
	Name string
}

// Var returns $name
func Var(name string) *Variable { return &Variable{Name: name} }

func (v *Variable) Kind() Kind { return KindVariable }

func (v *Variable) Equals(x Node) bool {
	xv, ok := x.(*Variable)
	return ok && xv.Name == v.Name
}

func (v *Variable) text(dst *strings.Builder) {
	dst.WriteByte('$')
	dst.WriteString(v.Name)
}

func (v *Variable) walk(Visitor) {}

// UnaryOp is a unary operator.
type UnaryOp uint8

const (
	// OpIncr is pre-increment; the operand
	// must be a Variable, which is updated
	// in place when the expression is evaluated.
	OpIncr UnaryOp = iota
	// OpDecr is pre-decrement.
	OpDecr
	OpNeg
	OpNot
)

func (u UnaryOp) String() string {
	switch u {
	case OpIncr:
		return "++"
	case OpDecr:
		return "--"
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	default:
		return "<unknown unary op>"
	}
}

// Unary is a unary operation.
type Unary struct {
	Op      UnaryOp
	Operand Node
}

// Incr returns ++$name
func Incr(name string) *Unary { return &Unary{Op: OpIncr, Operand: Var(name)} }

func (u *Unary) Kind() Kind { return KindUnary }

func (u *Unary) Equals(x Node) bool {
	xu, ok := x.(*Unary)
	return ok && xu.Op == u.Op && u.Operand.Equals(xu.Operand)
}

func (u *Unary) text(dst *strings.Builder) {
	dst.WriteString(u.Op.String())
	dst.WriteByte('(')
	u.Operand.text(dst)
	dst.WriteByte(')')
}

func (u *Unary) walk(v Visitor) { Walk(v, u.Operand) }

// RelOp is a comparison operator.
type RelOp uint8

const (
	Equals RelOp = iota
	NotEquals

	// note: keep these in order
	// so that we can determine
	// quickly if we are performing
	// an ordinal comparison:

	Less
	LessEquals
	Greater
	GreaterEquals
)

func (r RelOp) String() string {
	switch r {
	case Equals:
		return "=="
	case NotEquals:
		return "!="
	case Less:
		return "<"
	case LessEquals:
		return "<="
	case Greater:
		return ">"
	case GreaterEquals:
		return ">="
	default:
		return "<unknown rel op>"
	}
}

// Ordinal returns whether r orders its operands.
func (r RelOp) Ordinal() bool {
	return r >= Less && r <= GreaterEquals
}

// Relational is a comparison of two values.
type Relational struct {
	Op          RelOp
	Left, Right Node
}

// Compare returns (left op right)
func Compare(op RelOp, left, right Node) *Relational {
	return &Relational{Op: op, Left: left, Right: right}
}

// Eq returns (left == right)
func Eq(left, right Node) *Relational { return Compare(Equals, left, right) }

func (r *Relational) Kind() Kind { return KindRelational }

func (r *Relational) Equals(x Node) bool {
	xr, ok := x.(*Relational)
	return ok && xr.Op == r.Op && r.Left.Equals(xr.Left) && r.Right.Equals(xr.Right)
}

func (r *Relational) text(dst *strings.Builder) {
	dst.WriteByte('(')
	r.Left.text(dst)
	dst.WriteString(r.Op.String())
	r.Right.text(dst)
	dst.WriteByte(')')
}

func (r *Relational) walk(v Visitor) {
	Walk(v, r.Left)
	Walk(v, r.Right)
}

// LogicalOp is a boolean connective.
type LogicalOp uint8

const (
	OpAnd LogicalOp = iota
	OpOr
	OpXor
)

func (l LogicalOp) String() string {
	switch l {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	default:
		return "<unknown logical op>"
	}
}

// Logical is a boolean connective
// of two boolean-typed expressions.
type Logical struct {
	Op          LogicalOp
	Left, Right Node
}

// And returns (left AND right)
func And(left, right Node) *Logical { return &Logical{Op: OpAnd, Left: left, Right: right} }

// Or returns (left OR right)
func Or(left, right Node) *Logical { return &Logical{Op: OpOr, Left: left, Right: right} }

func (l *Logical) Kind() Kind { return KindLogical }

func (l *Logical) Equals(x Node) bool {
	xl, ok := x.(*Logical)
	return ok && xl.Op == l.Op && l.Left.Equals(xl.Left) && l.Right.Equals(xl.Right)
}

func (l *Logical) text(dst *strings.Builder) {
	dst.WriteByte('(')
	l.Left.text(dst)
	dst.WriteByte(' ')
	dst.WriteString(l.Op.String())
	dst.WriteByte(' ')
	l.Right.text(dst)
	dst.WriteByte(')')
}

func (l *Logical) walk(v Visitor) {
	Walk(v, l.Left)
	Walk(v, l.Right)
}

// ArithOp is an arithmetic operator.
type ArithOp uint8

const (
	AddOp ArithOp = iota
	SubOp
	MulOp
	DivOp
	ModOp
)

func (a ArithOp) String() string {
	switch a {
	case AddOp:
		return "+"
	case SubOp:
		return "-"
	case MulOp:
		return "*"
	case DivOp:
		return "/"
	case ModOp:
		return "%"
	default:
		return "<unknown arith op>"
	}
}

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	Op          ArithOp
	Left, Right Node
}

// Add returns (left+right)
func Add(left, right Node) *Arithmetic { return &Arithmetic{Op: AddOp, Left: left, Right: right} }

func (a *Arithmetic) Kind() Kind { return KindArithmetic }

func (a *Arithmetic) Equals(x Node) bool {
	xa, ok := x.(*Arithmetic)
	return ok && xa.Op == a.Op && a.Left.Equals(xa.Left) && a.Right.Equals(xa.Right)
}

func (a *Arithmetic) text(dst *strings.Builder) {
	dst.WriteByte('(')
	a.Left.text(dst)
	dst.WriteString(a.Op.String())
	a.Right.text(dst)
	dst.WriteByte(')')
}

func (a *Arithmetic) walk(v Visitor) {
	Walk(v, a.Left)
	Walk(v, a.Right)
}

// Call is a call to a builtin function.
type Call struct {
	Func string
	Args []Node
}

// CallFn returns fn(args...)
func CallFn(fn string, args ...Node) *Call { return &Call{Func: fn, Args: args} }

func (c *Call) Kind() Kind { return KindCall }

func (c *Call) Equals(x Node) bool {
	xc, ok := x.(*Call)
	return ok && xc.Func == c.Func && slices.EqualFunc(c.Args, xc.Args, Equal)
}

func (c *Call) text(dst *strings.Builder) {
	dst.WriteString(c.Func)
	dst.WriteByte('(')
	for i := range c.Args {
		if i > 0 {
			dst.WriteString(", ")
		}
		c.Args[i].text(dst)
	}
	dst.WriteByte(')')
}

func (c *Call) walk(v Visitor) {
	for i := range c.Args {
		Walk(v, c.Args[i])
	}
}

// List is a list literal, i.e. [a, b, c]
type List struct {
	Items []Node
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Equals(x Node) bool {
	xl, ok := x.(*List)
	return ok && slices.EqualFunc(l.Items, xl.Items, Equal)
}

func (l *List) text(dst *strings.Builder) {
	dst.WriteByte('[')
	for i := range l.Items {
		if i > 0 {
			dst.WriteString(", ")
		}
		l.Items[i].text(dst)
	}
	dst.WriteByte(']')
}

func (l *List) walk(v Visitor) {
	for i := range l.Items {
		Walk(v, l.Items[i])
	}
}
