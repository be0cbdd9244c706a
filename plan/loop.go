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

package plan

import (
	"fmt"
	"io"

	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/value"
)

// Fragment is a connected piece of a plan.
// Head is the node that reads from outside
// the fragment, and Tail is the node whose
// output the fragment produces.
type Fragment struct {
	Head, Tail NodeID
}

// Loop repeatedly evaluates the fragment
// ending at Body for as long as Condition
// evaluates to true.
type Loop struct {
	base
	Body      NodeID
	Condition expr.Node
}

func (l *Loop) Kind() Kind { return KindLoop }

func (l *Loop) describe(dst io.Writer) {
	fmt.Fprintf(dst, "LOOP %s BODY %d", expr.ToString(l.Condition), l.Body)
	l.vars(dst)
}

// MakeLoop adds a Loop that depends on dep
// and iterates the fragment ending at body.
func (a *Arena) MakeLoop(dep, body NodeID, cond expr.Node) NodeID {
	l := &Loop{Body: a.Node(body).ID(), Condition: cond}
	a.setup(&l.base, KindLoop, dep)
	return a.add(l)
}

// maxLoopIterations bounds reference
// evaluation of a Loop whose condition
// never becomes false.
const maxLoopIterations = 1 << 16

type condEnv struct {
	Context
}

func (condEnv) Column(string, string) (value.Datum, bool) { return nil, false }

// EvalCondition evaluates a loop condition
// against the variables bound in ctx.
// Evaluating the condition may update
// variables (for example a loop counter).
func EvalCondition(cond expr.Node, ctx Context) (bool, error) {
	d, err := expr.Eval(cond, condEnv{ctx})
	if err != nil {
		return false, err
	}
	b, ok := d.(value.Bool)
	if !ok {
		return false, fmt.Errorf("plan: loop condition %s produced %s, not BOOL", expr.ToString(cond), d.Type())
	}
	return bool(b), nil
}

// loop runs the body of l until its condition
// fails and returns the number of iterations.
// The body is evaluated down to (but not
// including) the dependency of l.
func loop(a *Arena, l *Loop, ctx Context) (int, error) {
	for i := 0; ; i++ {
		if i == maxLoopIterations {
			return i, fmt.Errorf("plan: loop %s did not terminate after %d iterations", l.OutputVar(), i)
		}
		ok, err := EvalCondition(l.Condition, ctx)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
		if _, err := eval(a, l.Body, l.Dep(), ctx); err != nil {
			return i, err
		}
	}
}
