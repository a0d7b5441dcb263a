/*
Copyright © 2017 the MapGeom authors.
This file is part of MapGeom.

MapGeom is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MapGeom is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MapGeom.  If not, see <http://www.gnu.org/licenses/>.
*/

package mapgeom

// Iterator walks a geometry tree depth-first and yields its leaf
// (non-multi) geometries in document order. A MultiGeometry is never
// yielded itself; its parts are visited in order. A Polygon is either
// expanded into its outer boundary ring followed by each hole ring, or
// yielded as a single unit, depending on the traverseHoles setting.
//
// An Iterator makes a single pass and is not restartable. Structural
// mutation of the tree during an active traversal is not supported;
// the caller must prevent it.
type Iterator struct {
	// pending is the stack of subtrees still to be visited, with the
	// next subtree at the end.
	pending  []Geometry
	next     Geometry
	holes    bool
	readOnly bool
}

// NewIterator creates an iterator over the leaves of g. The yielded
// geometries are the instances nested in g itself: mutating them
// mutates g. If traverseHoles is true, polygons are expanded into their
// boundary and hole rings; otherwise each polygon is yielded as one
// unit.
func NewIterator(g Geometry, traverseHoles bool) *Iterator {
	it := &Iterator{holes: traverseHoles}
	if g != nil {
		it.pending = append(it.pending, g)
	}
	it.advance()
	return it
}

// NewReadOnlyIterator creates an iterator over the leaves of g that
// yields deep copies, leaving g untouched however the copies are used.
func NewReadOnlyIterator(g Geometry, traverseHoles bool) *Iterator {
	it := NewIterator(g, traverseHoles)
	it.readOnly = true
	return it
}

// HasMore reports whether another leaf remains.
func (it *Iterator) HasMore() bool { return it.next != nil }

// Next returns the next leaf geometry. It panics if the iteration is
// already finished; check HasMore first.
func (it *Iterator) Next() Geometry {
	if it.next == nil {
		panic("tried to advance a finished geometry iterator")
	}
	g := it.next
	it.advance()
	if it.readOnly {
		return g.Clone()
	}
	return g
}

// advance computes the next leaf, expanding container geometries onto
// the pending stack.
func (it *Iterator) advance() {
	it.next = nil
	for len(it.pending) > 0 {
		g := it.pending[len(it.pending)-1]
		it.pending = it.pending[:len(it.pending)-1]
		switch v := g.(type) {
		case *MultiGeometry:
			for i := len(v.Parts) - 1; i >= 0; i-- {
				it.pending = append(it.pending, v.Parts[i])
			}
		case *Polygon:
			if !it.holes {
				it.next = v
				return
			}
			for i := len(v.Holes) - 1; i >= 0; i-- {
				it.pending = append(it.pending, v.Holes[i])
			}
			it.pending = append(it.pending, &v.Ring)
		default:
			it.next = g
			return
		}
	}
}
