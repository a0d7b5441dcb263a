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

// Segment is one edge of a geometry's path: a pair of consecutive
// points.
type Segment struct {
	Start, End Point
}

// SegmentIterator enumerates the consecutive point pairs of a
// geometry's directly held point sequence. Ring and Polygon boundaries
// close implicitly: the pair connecting the last point back to the
// first is always included for them. For the open variants that pair is
// only included when the iterator is created with forceClosedLoop.
//
// A SegmentIterator makes a single pass and is not restartable.
type SegmentIterator struct {
	path Path
	i    int
	wrap bool
}

// NewSegmentIterator creates a segment iterator over the directly held
// points of g. For a Polygon that is the outer boundary; hole segments
// require iterating the holes individually. A MultiGeometry holds no
// points directly and yields no segments; flatten it first. When
// forceClosedLoop is true the final pair connecting the last point back
// to the first is included even for the open variants.
func NewSegmentIterator(g Geometry, forceClosedLoop bool) *SegmentIterator {
	si := &SegmentIterator{path: ownPath(g), i: 1, wrap: forceClosedLoop}
	switch g.(type) {
	case *Ring, *Polygon:
		si.wrap = true
	}
	if len(si.path) > 1 && si.path[0].Equals(si.path[len(si.path)-1]) {
		// An explicitly closed loop needs no wrap pair.
		si.wrap = false
	}
	return si
}

// HasMore reports whether another segment remains.
func (si *SegmentIterator) HasMore() bool {
	if len(si.path) < 2 {
		return false
	}
	if si.i < len(si.path) {
		return true
	}
	return si.wrap && si.i == len(si.path)
}

// Next returns the next segment. It panics if the iteration is already
// finished; check HasMore first.
func (si *SegmentIterator) Next() Segment {
	if !si.HasMore() {
		panic("tried to advance a finished segment iterator")
	}
	var s Segment
	if si.i < len(si.path) {
		s = Segment{Start: si.path[si.i-1], End: si.path[si.i]}
	} else {
		s = Segment{Start: si.path[len(si.path)-1], End: si.path[0]}
	}
	si.i++
	return s
}

// ownPath returns the vertex sequence a geometry holds directly: the
// embedded path of the point-holding variants, the outer boundary of a
// Polygon, and nil for a MultiGeometry.
func ownPath(g Geometry) Path {
	switch v := g.(type) {
	case *PointSet:
		return v.Path
	case *LineString:
		return v.Path
	case *Ring:
		return v.Path
	case *Polygon:
		return v.Ring.Path
	default:
		return nil
	}
}
