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

// Clone returns a deep copy of n.
//
// Constant values are shared between
// the copy and the original; datums are
// never mutated once they are part of an AST.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	return n.clone()
}

func cloneAll(lst []Node) []Node {
	if lst == nil {
		return nil
	}
	out := make([]Node, len(lst))
	for i := range lst {
		out[i] = lst[i].clone()
	}
	return out
}

func (c *Constant) clone() Node      { return &Constant{Value: c.Value} }
func (i *InputProperty) clone() Node { return &InputProperty{Prop: i.Prop} }
func (v *VarProperty) clone() Node   { return &VarProperty{Sym: v.Sym, Prop: v.Prop} }
func (e *EdgeProperty) clone() Node  { return &EdgeProperty{Edge: e.Edge, Prop: e.Prop} }
func (v *Variable) clone() Node      { return &Variable{Name: v.Name} }

func (u *Unary) clone() Node {
	return &Unary{Op: u.Op, Operand: u.Operand.clone()}
}

func (r *Relational) clone() Node {
	return &Relational{Op: r.Op, Left: r.Left.clone(), Right: r.Right.clone()}
}

func (l *Logical) clone() Node {
	return &Logical{Op: l.Op, Left: l.Left.clone(), Right: l.Right.clone()}
}

func (a *Arithmetic) clone() Node {
	return &Arithmetic{Op: a.Op, Left: a.Left.clone(), Right: a.Right.clone()}
}

func (c *Call) clone() Node {
	return &Call{Func: c.Func, Args: cloneAll(c.Args)}
}

func (l *List) clone() Node {
	return &List{Items: cloneAll(l.Items)}
}
