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
)

// Cases has one method per kind of Node.
//
// Code that needs to branch on the kind
// of an expression should implement Cases
// and call Match rather than switching on
// Kind, so that adding a new kind of Node
// breaks the build of every such caller.
type Cases[T any] interface {
	Constant(*Constant) T
	InputProperty(*InputProperty) T
	VarProperty(*VarProperty) T
	EdgeProperty(*EdgeProperty) T
	Variable(*Variable) T
	Unary(*Unary) T
	Relational(*Relational) T
	Logical(*Logical) T
	Arithmetic(*Arithmetic) T
	Call(*Call) T
	List(*List) T
}

// Match calls the method of c
// that corresponds to the kind of n.
func Match[T any](n Node, c Cases[T]) T {
	switch n := n.(type) {
	case *Constant:
		return c.Constant(n)
	case *InputProperty:
		return c.InputProperty(n)
	case *VarProperty:
		return c.VarProperty(n)
	case *EdgeProperty:
		return c.EdgeProperty(n)
	case *Variable:
		return c.Variable(n)
	case *Unary:
		return c.Unary(n)
	case *Relational:
		return c.Relational(n)
	case *Logical:
		return c.Logical(n)
	case *Arithmetic:
		return c.Arithmetic(n)
	case *Call:
		return c.Call(n)
	case *List:
		return c.List(n)
	}
	panic(fmt.Sprintf("expr.Match: unexpected node %T", n))
}
