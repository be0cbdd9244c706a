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
	"github.com/SnellerInc/traverse/clause"
)

// Steps is the validated hop count
// of a traversal.
type Steps struct {
	Lower, Upper uint32
	// IsMToN is set for the range form;
	// otherwise Lower == Upper.
	IsMToN bool
}

// ValidateStep validates the step clause
// of a traversal.
//
// A range with a lower bound of zero is
// treated as starting at one step, since
// a traversal always takes at least one hop.
// A fixed step count is accepted as given,
// including zero.
func (v *Validator) ValidateStep(c *clause.StepClause) (*Steps, error) {
	steps, err := validateStep(c)
	v.conf.Metrics.clause("step", err)
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func validateStep(c *clause.StepClause) (*Steps, error) {
	if c == nil {
		return nil, errorf("", "missing step clause")
	}
	if !c.MToN {
		return &Steps{Lower: c.N, Upper: c.N}, nil
	}
	steps := &Steps{Lower: c.M, Upper: c.N, IsMToN: true}
	if steps.Lower == 0 {
		steps.Lower = 1
	}
	if steps.Upper < steps.Lower {
		return nil, errorf(c.String(), "upper bound steps should be greater than lower bound.")
	}
	return steps, nil
}
