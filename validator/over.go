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
	"fmt"

	"github.com/SnellerInc/traverse/catalog"
	"github.com/SnellerInc/traverse/clause"
)

// Over describes the edges a traversal follows.
type Over struct {
	Direction clause.Direction
	// EdgeTypes are the resolved edge
	// types, in the order they were named
	// (or listed by the catalog for OVER *).
	EdgeTypes []catalog.EdgeType
	// IsOverAll is set for OVER *
	IsOverAll bool
	// AllEdges are the edge names that
	// OVER * expanded to.
	AllEdges []string
}

// ValidateOver validates the OVER clause
// of a traversal and resolves the edge types
// it names in the validator's space.
//
// Resolution stops at the first
// edge name that is not found.
func (v *Validator) ValidateOver(c *clause.OverClause) (*Over, error) {
	over, err := v.validateOver(c)
	v.conf.Metrics.clause("over", err)
	if err != nil {
		return nil, err
	}
	return over, nil
}

func (v *Validator) validateOver(c *clause.OverClause) (*Over, error) {
	if c == nil {
		return nil, errorf("", "missing OVER clause")
	}
	over := &Over{Direction: c.Direction}
	cat := v.qctx.Catalog
	if c.All {
		edges, err := cat.EdgeNames(v.space)
		if err != nil {
			return nil, newError(c.String(), fmt.Sprintf("cannot list edges in space `%s'", v.space), "", "", err)
		}
		if len(edges) == 0 {
			return nil, errorf(c.String(), "No edge type found in space `%s'", v.space)
		}
		for _, edge := range edges {
			et, err := cat.EdgeType(v.space, edge)
			if err != nil {
				return nil, newError(edge, fmt.Sprintf("not found in space [`%s']", v.space), "", "", err)
			}
			over.EdgeTypes = append(over.EdgeTypes, et)
		}
		over.AllEdges = edges
		over.IsOverAll = true
		return over, nil
	}
	if len(c.Edges) == 0 {
		return nil, errorf(c.String(), "no edge named")
	}
	for i := range c.Edges {
		name := c.Edges[i].Name
		et, err := cat.EdgeType(v.space, name)
		if err != nil {
			return nil, newError(name, fmt.Sprintf("not found in space [`%s']", v.space), "", "", err)
		}
		over.EdgeTypes = append(over.EdgeTypes, et)
	}
	return over, nil
}
