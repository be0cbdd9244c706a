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
	"strings"

	"github.com/SnellerInc/traverse/expr"
)

// Column is one output column of a Project.
type Column struct {
	Expr  expr.Node
	Alias string
}

func (c *Column) String() string {
	return expr.ToString(c.Expr) + " AS " + c.Alias
}

// Project is a plan Node that
// computes one column per expression
// for each row of its input.
type Project struct {
	base
	Columns []Column
}

func (p *Project) Kind() Kind { return KindProject }

func (p *Project) describe(dst io.Writer) {
	var out strings.Builder
	out.WriteString("PROJECT ")
	for i := range p.Columns {
		out.WriteString(p.Columns[i].String())
		if i != len(p.Columns)-1 {
			out.WriteString(", ")
		}
	}
	fmt.Fprint(dst, out.String())
	p.vars(dst)
}
