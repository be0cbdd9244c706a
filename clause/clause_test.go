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

package clause

import (
	"testing"

	"github.com/SnellerInc/traverse/expr"
)

func TestString(t *testing.T) {
	tcs := []struct {
		in   interface{ String() string }
		want string
	}{
		{Steps(2), "2 STEPS"},
		{StepRange(0, 3), "0 TO 3 STEPS"},
		{Over("follow", "like"), "OVER follow, like"},
		{OverAll(Reverse), "OVER * REVERSELY"},
		{&OverClause{Edges: []OverEdge{{Name: "e", Alias: "x"}}, Direction: Bidirectional}, "OVER e AS x BIDIRECT"},
		{&VerticesClause{Vids: []expr.Node{expr.Integer(1), expr.String("a")}}, `FROM 1, "a"`},
		{&VerticesClause{Ref: expr.Input("id")}, "FROM $-.id"},
		{
			&TraversalClause{
				Step: StepRange(1, 2),
				From: &VerticesClause{Ref: expr.VarProp("v", "id")},
				Over: Over("follow"),
			},
			"GO 1 TO 2 STEPS FROM $v.id OVER follow",
		},
	}
	for i := range tcs {
		if got := tcs[i].in.String(); got != tcs[i].want {
			t.Errorf("case %d: got %q, want %q", i, got, tcs[i].want)
		}
	}
}

func TestDirection(t *testing.T) {
	for d := Forward; d <= Bidirectional; d++ {
		if d.String() == "<unknown direction>" {
			t.Errorf("direction %d has no name", d)
		}
	}
}
