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
	"encoding/hex"
	"fmt"

	"github.com/tidwall/btree"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type edgeEntry struct {
	name string
	typ  EdgeType
}

func edgeLess(a, b edgeEntry) bool { return a.typ < b.typ }

type spaceInfo struct {
	vid   VidType
	names map[string]EdgeType
	// edges ordered by type id, so that
	// EdgeNames is deterministic
	edges *btree.BTreeG[edgeEntry]
}

// Snapshot is an immutable, in-memory Catalog.
// A Snapshot may be shared by any number
// of concurrently compiling queries.
type Snapshot struct {
	spaces map[string]*spaceInfo
	etag   string
}

var _ Catalog = &Snapshot{}

// NewSnapshot builds a Snapshot from a Definition.
// Space names, edge names and edge type ids must
// be unique, and edge type ids must be positive.
func NewSnapshot(d *Definition) (*Snapshot, error) {
	s := &Snapshot{
		spaces: make(map[string]*spaceInfo, len(d.Spaces)),
		etag:   hex.EncodeToString(d.Hash()),
	}
	for _, sd := range d.Spaces {
		if sd == nil {
			return nil, fmt.Errorf("catalog: empty space definition")
		}
		if sd.Name == "" {
			return nil, fmt.Errorf("catalog: space with no name")
		}
		if _, ok := s.spaces[sd.Name]; ok {
			return nil, fmt.Errorf("catalog: duplicate space %q", sd.Name)
		}
		vid, err := ParseVidType(sd.VidType)
		if err != nil {
			return nil, fmt.Errorf("space %q: %w", sd.Name, err)
		}
		info := &spaceInfo{
			vid:   vid,
			names: make(map[string]EdgeType, len(sd.Edges)),
			// no locking: never written after construction
			edges: btree.NewBTreeGOptions(edgeLess, btree.Options{NoLocks: true}),
		}
		for _, e := range sd.Edges {
			if e.Name == "" || e.Type <= 0 {
				return nil, fmt.Errorf("catalog: space %q: invalid edge %q with type %d", sd.Name, e.Name, e.Type)
			}
			if _, ok := info.names[e.Name]; ok {
				return nil, fmt.Errorf("catalog: space %q: duplicate edge %q", sd.Name, e.Name)
			}
			if prev, ok := info.edges.Get(edgeEntry{typ: e.Type}); ok {
				return nil, fmt.Errorf("catalog: space %q: edges %q and %q share type %d", sd.Name, prev.name, e.Name, e.Type)
			}
			info.names[e.Name] = e.Type
			info.edges.Set(edgeEntry{name: e.Name, typ: e.Type})
		}
		s.spaces[sd.Name] = info
	}
	return s, nil
}

func (s *Snapshot) space(name string) (*spaceInfo, error) {
	info, ok := s.spaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSpaceNotFound, name)
	}
	return info, nil
}

// VidType implements Catalog.VidType
func (s *Snapshot) VidType(space string) (VidType, error) {
	info, err := s.space(space)
	if err != nil {
		return VidType{}, err
	}
	return info.vid, nil
}

// EdgeNames implements Catalog.EdgeNames
//
// The names are returned in ascending
// order of their edge type ids.
func (s *Snapshot) EdgeNames(space string) ([]string, error) {
	info, err := s.space(space)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, info.edges.Len())
	info.edges.Scan(func(e edgeEntry) bool {
		out = append(out, e.name)
		return true
	})
	return out, nil
}

// EdgeType implements Catalog.EdgeType
func (s *Snapshot) EdgeType(space, name string) (EdgeType, error) {
	info, err := s.space(space)
	if err != nil {
		return 0, err
	}
	et, ok := info.names[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q in space %q", ErrEdgeNotFound, name, space)
	}
	return et, nil
}

// Spaces returns the sorted list of space names.
func (s *Snapshot) Spaces() []string {
	names := maps.Keys(s.spaces)
	slices.Sort(names)
	return names
}

// ETag returns a string identifying the
// definition that the snapshot was built from.
func (s *Snapshot) ETag() string { return s.etag }
