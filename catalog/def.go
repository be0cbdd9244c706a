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

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"
)

// EdgeDef is one edge type belonging to a SpaceDef.
type EdgeDef struct {
	// Name is the name used to
	// refer to the edge in queries.
	Name string `json:"name"`
	// Type is the internal edge type id;
	// it must be positive and unique
	// within the space.
	Type EdgeType `json:"type"`
}

// SpaceDef describes a graph space.
type SpaceDef struct {
	Name string `json:"name"`
	// VidType is the declared vertex-id
	// type, i.e. INT64 or FIXED_STRING(n).
	VidType string    `json:"vid_type"`
	Edges   []EdgeDef `json:"edges,omitempty"`
}

// Equal returns whether s and other are equivalent.
func (s *SpaceDef) Equal(other *SpaceDef) bool {
	if s == nil || other == nil {
		return s == nil && other == nil
	}
	return s.Name == other.Name &&
		s.VidType == other.VidType &&
		slices.Equal(s.Edges, other.Edges)
}

// Definition is the set of spaces
// that make up a catalog snapshot.
//
// Definitions are written as YAML (or JSON):
//
//	spaces:
//	  - name: nba
//	    vid_type: FIXED_STRING(32)
//	    edges:
//	      - name: follow
//	        type: 1
type Definition struct {
	Spaces []*SpaceDef `json:"spaces"`
}

// just pick an upper limit to prevent DoS
const maxDefSize = 1024 * 1024

// DecodeDefinition decodes a catalog
// definition from src.
//
// See also: OpenDefinition
func DecodeDefinition(src io.Reader) (*Definition, error) {
	buf, err := io.ReadAll(io.LimitReader(src, maxDefSize+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxDefSize {
		return nil, fmt.Errorf("catalog: definition beyond size limit %d", maxDefSize)
	}
	d := new(Definition)
	if err := yaml.UnmarshalStrict(buf, d); err != nil {
		return nil, fmt.Errorf("catalog: decoding definition: %w", err)
	}
	return d, nil
}

// OpenDefinition opens and decodes the
// definition at path p within s.
func OpenDefinition(s fs.FS, p string) (*Definition, error) {
	f, err := s.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxDefSize {
		return nil, fmt.Errorf("definition of size %d beyond limit %d", info.Size(), maxDefSize)
	}
	return DecodeDefinition(f)
}

// Equal returns whether d and other are equivalent.
func (d *Definition) Equal(other *Definition) bool {
	if d == nil || other == nil {
		return d == nil && other == nil
	}
	return slices.EqualFunc(d.Spaces, other.Spaces, (*SpaceDef).Equal)
}

// Hash returns a hash of the definition
// that can be used to detect changes.
func (d *Definition) Hash() []byte {
	buf, err := json.Marshal(d)
	if err != nil {
		panic("catalog: failed to hash definition: " + err.Error())
	}
	sum := blake2b.Sum256(buf)
	return sum[:]
}
