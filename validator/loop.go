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
	"github.com/SnellerInc/traverse/expr"
	"github.com/SnellerInc/traverse/value"
)

// BuildNStepLoopCondition resets the
// loop counter of the validator to zero and
// returns a condition that increments the
// counter and holds for the first n evaluations.
func (v *Validator) BuildNStepLoopCondition(n uint32) expr.Node {
	v.logf("steps %d", n)
	v.qctx.Ectx.SetValue(v.loopSteps, value.Int(0))
	return expr.Compare(expr.LessEquals, expr.Incr(v.loopSteps), expr.Integer(int64(n)))
}

// BuildExpandEndCondition returns a condition
// that holds while the variable last either
// has not been produced yet or is non-empty.
func (v *Validator) BuildExpandEndCondition(last string) expr.Node {
	return expr.Or(
		expr.Eq(expr.Var(last), expr.Empty()),
		expr.Compare(expr.NotEquals, expr.CallFn("size", expr.Var(last)), expr.Integer(0)),
	)
}
