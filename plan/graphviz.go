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
)

// Graphviz dumps every node in 'a'
// to 'dst' as dot(1)-compatible text.
// Edges are labeled with the variable
// that carries data between nodes; a dashed
// edge points from a Loop to its body.
func Graphviz(a *Arena, dst io.Writer) error {
	_, err := io.WriteString(dst, "digraph plan {\n")
	if err != nil {
		return err
	}
	for _, n := range a.nodes {
		_, err = fmt.Fprintf(dst, "n%d [label=%q];\n", n.ID(), Describe(n))
		if err != nil {
			return err
		}
		if dep := n.Dep(); dep != NoNode {
			_, err = fmt.Fprintf(dst, "n%d -> n%d [label=%q];\n", dep, n.ID(), n.InputVar())
			if err != nil {
				return err
			}
		}
		if l, ok := n.(*Loop); ok {
			_, err = fmt.Fprintf(dst, "n%d -> n%d [style=dashed label=\"body\"];\n", l.ID(), l.Body)
			if err != nil {
				return err
			}
		}
	}
	_, err = io.WriteString(dst, "}\n")
	return err
}

// Explain writes the chain of nodes
// that ends at tail to dst, one node
// per line, starting from tail.
func Explain(a *Arena, tail NodeID, dst io.Writer) error {
	depth := 0
	for id := tail; id != NoNode; id = a.Node(id).Dep() {
		_, err := fmt.Fprintf(dst, "%s%s\n", strings.Repeat("  ", depth), Describe(a.Node(id)))
		if err != nil {
			return err
		}
		depth++
	}
	return nil
}
