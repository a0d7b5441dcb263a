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

import "math"

// Ring is a closed loop. The canonical representation is open: the last
// stored point is logically connected back to the first, and the two
// are never physically duplicated. Close and Open convert between the
// canonical representation and the duplicated-endpoint representation
// some external consumers need.
type Ring struct {
	Path
}

// NewRing creates a Ring from pts, normalized to the canonical open
// representation.
func NewRing(pts ...Point) *Ring {
	r := &Ring{Path: make(Path, len(pts))}
	copy(r.Path, pts)
	r.Open()
	return r
}

// Type returns RingType.
func (r *Ring) Type() Type { return RingType }

// Valid reports whether the ring holds at least three points.
func (r *Ring) Valid() bool { return len(r.Path) >= 3 }

// Length returns the ring's perimeter, including the implicit segment
// closing the loop.
func (r *Ring) Length() float64 { return r.Path.length(!r.isClosed()) }

// Clone returns a deep copy of the ring.
func (r *Ring) Clone() Geometry {
	return &Ring{Path: r.Path.Clone()}
}

// CloneAs converts the ring to the variant t: to the outer boundary of
// a hole-free Polygon, to a LineString holding the open point sequence,
// or dissolved into a PointSet.
func (r *Ring) CloneAs(t Type) (Geometry, bool) {
	switch t {
	case RingType:
		return r.Clone(), true
	case PolygonType:
		return &Polygon{Ring: Ring{Path: r.Path.Clone()}}, true
	case LineStringType:
		return NewLineString(r.Path...), true
	case PointSetType:
		return NewPointSet(r.Path...), true
	}
	return nil, false
}

// isClosed reports whether the ring is currently in the
// duplicated-endpoint representation.
func (r *Ring) isClosed() bool {
	n := len(r.Path)
	return n > 1 && r.Path[0].Equals(r.Path[n-1])
}

// Close converts the ring to the duplicated-endpoint representation by
// appending a copy of the first point. It has no effect on a ring that
// is already closed.
func (r *Ring) Close() {
	if len(r.Path) > 0 && !r.isClosed() {
		r.Path.Append(r.Path[0])
	}
}

// Open converts the ring to the canonical open representation by
// dropping duplicated closing points. It has no effect on a ring that
// is already open.
func (r *Ring) Open() {
	for r.isClosed() {
		r.Path = r.Path[:len(r.Path)-1]
	}
}

// SignedArea2D returns the ring's area in the xy plane: positive for
// counterclockwise winding, negative for clockwise.
// See http://www.mathopenref.com/coordpolygonarea2.html.
func (r *Ring) SignedArea2D() float64 {
	pts := r.Path
	if len(pts) < 2 {
		return 0
	}
	highI := len(pts) - 1
	a := (pts[highI].X + pts[0].X) * (pts[0].Y - pts[highI].Y)
	for i := 0; i < highI; i++ {
		a += (pts[i].X + pts[i+1].X) * (pts[i+1].Y - pts[i].Y)
	}
	return a / 2.
}

// Orientation returns the ring's winding direction, or Degenerate when
// the magnitude of the signed area is too small to tell.
func (r *Ring) Orientation() Orientation {
	a := r.SignedArea2D()
	if math.Abs(a) < orientationEpsilon {
		return Degenerate
	}
	if a > 0 {
		return CCW
	}
	return CW
}

// Rewind reverses the ring's point order in place if its winding
// differs from o. Degenerate rings are left unchanged.
func (r *Ring) Rewind(o Orientation) {
	if o == Degenerate {
		return
	}
	cur := r.Orientation()
	if cur == Degenerate || cur == o {
		return
	}
	r.Path.reverse()
}

// RemoveDuplicates collapses consecutive equal points. The wrap-around
// pair counts as consecutive, so the ring is returned to the canonical
// open representation.
func (r *Ring) RemoveDuplicates() {
	r.Path.removeDuplicates(true)
}

// RemoveColinearPoints drops points that lie within tol of the segment
// connecting their cyclic neighbors. The ring is returned to the
// canonical open representation.
func (r *Ring) RemoveColinearPoints(tol float64) {
	r.Open()
	r.Path.removeColinear(tol, true)
}

// Contains2D classifies the xy point (x, y) against the ring's boundary
// using a crossing-number test over the closed loop. The result for
// points exactly on the boundary is unspecified.
// Adapted from https://rosettacode.org/wiki/Ray-casting_algorithm#Go.
func (r *Ring) Contains2D(x, y float64) bool {
	pts := r.Path
	if len(pts) < 3 {
		return false
	}
	pt := Point{X: x, Y: y}
	in := false
	if !pts[len(pts)-1].Equals(pts[0]) {
		if rayIntersectsSegment(pt, pts[len(pts)-1], pts[0]) {
			in = !in
		}
	}
	for i := 1; i < len(pts); i++ {
		if rayIntersectsSegment(pt, pts[i-1], pts[i]) {
			in = !in
		}
	}
	return in
}

func rayIntersectsSegment(p, a, b Point) bool {
	if a.Y > b.Y {
		a, b = b, a
	}
	for p.Y == a.Y || p.Y == b.Y {
		p.Y = math.Nextafter(p.Y, math.Inf(1))
	}
	if p.Y < a.Y || p.Y > b.Y {
		return false
	}
	if a.X > b.X {
		if p.X >= a.X {
			return false
		}
		if p.X < b.X {
			return true
		}
	} else {
		if p.X > b.X {
			return false
		}
		if p.X < a.X {
			return true
		}
	}
	return (p.Y-a.Y)/(p.X-a.X) >= (b.Y-a.Y)/(b.X-a.X)
}
