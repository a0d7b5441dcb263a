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

// Package mapgeom holds the typed vector geometry model used by the
// spatialmodel mapping tools. Every vector feature (coastline, boundary,
// footprint) is represented as one of a closed set of variants: PointSet,
// LineString, Ring, Polygon, and MultiGeometry. The package also provides
// the algorithms that manipulate the variants: winding and orientation
// analysis, point-in-region testing, vertex cleanup, and flattening
// traversal of nested geometries. Offsetting and boolean combination of
// geometries is in the op subpackage.
package mapgeom

import (
	"fmt"
	"math"
)

// Version gives the version number.
const Version = "0.1.0"

// Type identifies the concrete variant of a Geometry.
type Type int

const (
	// UnknownType is the zero Type. It is also returned by
	// MultiGeometry.ComponentType when the parts are of mixed types.
	UnknownType Type = iota
	PointSetType
	LineStringType
	RingType
	PolygonType
	MultiType
)

func (t Type) String() string {
	switch t {
	case PointSetType:
		return "PointSet"
	case LineStringType:
		return "LineString"
	case RingType:
		return "Ring"
	case PolygonType:
		return "Polygon"
	case MultiType:
		return "MultiGeometry"
	default:
		return "Unknown"
	}
}

// Orientation is the winding direction of a Ring, derived from the sign
// of its area.
type Orientation int

const (
	// Degenerate means the magnitude of the signed area is too small to
	// determine a winding direction (zero-area or collinear ring).
	Degenerate Orientation = iota
	CCW
	CW
)

func (o Orientation) String() string {
	switch o {
	case CCW:
		return "CCW"
	case CW:
		return "CW"
	default:
		return "Degenerate"
	}
}

// orientationEpsilon is the signed-area magnitude below which a ring is
// considered Degenerate.
const orientationEpsilon = 1.e-12

// Point is a single 3-dimensional vertex. Z is zero for 2-dimensional
// data. A point has no identity beyond its position.
type Point struct {
	X, Y, Z float64
}

// Equals returns whether p and p2 have exactly equal coordinates.
func (p Point) Equals(p2 Point) bool {
	return p.X == p2.X && p.Y == p2.Y && p.Z == p2.Z
}

// Geometry is the interface implemented by all of the geometry variants.
// The read-only queries (Type, Valid, NumPoints, NumGeometries, Bounds,
// Length, the clone operations, and the export operations) are safe to
// call concurrently on an instance that is not being mutated at the same
// time. The mutating operations are not internally synchronized; the
// caller must ensure exclusive access while mutating a shared instance.
type Geometry interface {
	// Type returns the variant discriminant.
	Type() Type

	// Valid reports whether the geometry satisfies its variant's minimum
	// point count: one point for a PointSet, two for a LineString, and
	// three for a Ring or a Polygon's outer boundary. A MultiGeometry is
	// valid if every part is valid.
	Valid() bool

	// NumPoints returns the total number of vertices, recursing into
	// holes and parts.
	NumPoints() int

	// NumGeometries returns the number of component geometries: 1 for the
	// simple variants, 1 plus the number of holes for a Polygon, and the
	// recursive component count for a MultiGeometry.
	NumGeometries() int

	// Bounds returns the axis-aligned extent of all vertices, recursing
	// into holes and parts.
	Bounds() *Bounds

	// Length returns the sum of the geometry's consecutive segment
	// lengths. For a Ring or Polygon this includes the implicit segment
	// closing the loop.
	Length() float64

	// Clone returns a deep copy that shares no storage with the receiver.
	Clone() Geometry

	// CloneAs converts the geometry to a different variant, following the
	// variants' natural containment: a Ring may become a Polygon's outer
	// boundary or a LineString; a Polygon's boundary may become a Ring or
	// LineString; a LineString may become a Ring or dissolve into a
	// PointSet. The identity conversion is a deep copy. Conversions with
	// no sensible mapping report false.
	CloneAs(t Type) (Geometry, bool)

	// Rewind makes the winding of the geometry's rings match o where a
	// winding is defined. It has no effect on point sets, line strings,
	// or degenerate rings.
	Rewind(o Orientation)

	// Close converts rings to the duplicated-endpoint closed
	// representation, recursing into holes and parts. It has no effect on
	// variants without a closure concept.
	Close()

	// Open converts rings to the canonical open representation, dropping
	// duplicated closing vertices, recursing into holes and parts.
	Open()

	// RemoveDuplicates collapses consecutive equal points in place. For a
	// ring in the open representation, the wrap-around pair counts as
	// consecutive.
	RemoveDuplicates()

	// RemoveColinearPoints drops points that lie within tol of the
	// straight segment connecting their neighbors.
	RemoveColinearPoints(tol float64)

	// Localize translates the geometry so that its vertex centroid is at
	// the origin and returns the offset that restores the original
	// coordinates. It is used to keep vertex math on large-area
	// geometries numerically stable.
	Localize() Point

	// Delocalize translates the geometry by offset, exactly reversing a
	// previous Localize that returned the same offset.
	Delocalize(offset Point)

	// Float32s returns the geometry's directly held vertices as a flat
	// single-precision x, y, z array.
	Float32s() []float32

	// Float64s returns the geometry's directly held vertices as a flat
	// double-precision x, y, z array.
	Float64s() []float64
}

// Path is an ordered, mutable sequence of vertices. It is the storage
// underlying the point-holding geometry variants, which embed it.
type Path []Point

// NumPoints returns the number of vertices in the path.
func (p Path) NumPoints() int { return len(p) }

// Bounds returns the axis-aligned extent of the path.
func (p Path) Bounds() *Bounds {
	b := NewBounds()
	b.extendPoints(p)
	return b
}

// Append adds points to the end of the path.
func (p *Path) Append(pts ...Point) {
	*p = append(*p, pts...)
}

// Float32s returns the vertices as a flat single-precision x, y, z array.
func (p Path) Float32s() []float32 {
	o := make([]float32, 0, len(p)*3)
	for _, pt := range p {
		o = append(o, float32(pt.X), float32(pt.Y), float32(pt.Z))
	}
	return o
}

// Float64s returns the vertices as a flat double-precision x, y, z array.
func (p Path) Float64s() []float64 {
	o := make([]float64, 0, len(p)*3)
	for _, pt := range p {
		o = append(o, pt.X, pt.Y, pt.Z)
	}
	return o
}

// Localize translates the path so that its vertex centroid is at the
// origin and returns the offset that restores the original coordinates.
func (p Path) Localize() Point {
	c := p.centroid()
	p.translate(Point{X: -c.X, Y: -c.Y, Z: -c.Z})
	return c
}

// Delocalize translates the path by offset, reversing a previous
// Localize that returned the same offset.
func (p Path) Delocalize(offset Point) {
	p.translate(offset)
}

func (p Path) translate(offset Point) {
	for i := range p {
		p[i].X += offset.X
		p[i].Y += offset.Y
		p[i].Z += offset.Z
	}
}

// centroid returns the average of the path's vertices.
func (p Path) centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range p {
		c.X += pt.X
		c.Y += pt.Y
		c.Z += pt.Z
	}
	n := float64(len(p))
	return Point{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// RemoveDuplicates collapses consecutive equal points in place, treating
// the sequence as an open path.
func (p *Path) RemoveDuplicates() {
	p.removeDuplicates(false)
}

// removeDuplicates collapses consecutive equal points. When wrap is true
// the last point is also compared against the first, so that the
// wrap-around pair of an open ring counts as consecutive.
func (p *Path) removeDuplicates(wrap bool) {
	pts := *p
	if len(pts) < 2 {
		return
	}
	out := pts[:1]
	for _, pt := range pts[1:] {
		if !pt.Equals(out[len(out)-1]) {
			out = append(out, pt)
		}
	}
	if wrap {
		for len(out) > 1 && out[len(out)-1].Equals(out[0]) {
			out = out[:len(out)-1]
		}
	}
	*p = out
}

// RemoveColinearPoints drops points that lie within tol of the straight
// segment connecting their neighbors, treating the sequence as an open
// path: the first and last points are always kept.
func (p *Path) RemoveColinearPoints(tol float64) {
	p.removeColinear(tol, false)
}

// removeColinear drops points within tol of the segment between their
// neighbors. When wrap is true the sequence is treated as a closed loop
// and the first and last points are candidates for removal too.
func (p *Path) removeColinear(tol float64, wrap bool) {
	for {
		pts := *p
		n := len(pts)
		if n < 3 {
			return
		}
		removed := false
		out := make(Path, 0, n)
		var start, end int
		if wrap {
			start, end = 0, n
		} else {
			out = append(out, pts[0])
			start, end = 1, n-1
		}
		for i := start; i < end; i++ {
			prev := pts[(i-1+n)%n]
			next := pts[(i+1)%n]
			if distPointToSegment(pts[i], prev, next) <= tol {
				removed = true
				continue
			}
			out = append(out, pts[i])
		}
		if !wrap {
			out = append(out, pts[n-1])
		}
		*p = out
		if !removed {
			return
		}
	}
}

// reverse reverses the order of the path's vertices in place.
func (p Path) reverse() {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// length returns the sum of the path's consecutive segment lengths in
// the xy plane. When closed is true the implicit segment connecting the
// last point back to the first is included.
func (p Path) length(closed bool) float64 {
	if len(p) < 2 {
		return 0
	}
	l := 0.
	for i := 1; i < len(p); i++ {
		l += distance(p[i-1], p[i])
	}
	if closed {
		l += distance(p[len(p)-1], p[0])
	}
	return l
}

// Length returns the sum of the path's consecutive segment lengths.
func (p Path) Length() float64 { return p.length(false) }

// Rewind has no effect: an unclosed vertex sequence has no winding
// orientation.
func (p Path) Rewind(Orientation) {}

// Close has no effect: an unclosed vertex sequence has no closure
// concept.
func (p *Path) Close() {}

// Open has no effect: an unclosed vertex sequence has no closure
// concept.
func (p *Path) Open() {}

// Clone returns a copy of the path that shares no storage with the
// receiver.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// distPointToSegment returns the shortest xy-plane distance from p to
// the finite segment between segStart and segEnd.
// From http://geomalgorithms.com/a02-_lines.html.
func distPointToSegment(p, segStart, segEnd Point) float64 {
	vx, vy := segEnd.X-segStart.X, segEnd.Y-segStart.Y
	wx, wy := p.X-segStart.X, p.Y-segStart.Y

	c1 := wx*vx + wy*vy
	if c1 <= 0 {
		return distance(p, segStart)
	}
	c2 := vx*vx + vy*vy
	if c2 <= c1 {
		return distance(p, segEnd)
	}
	b := c1 / c2
	return distance(p, Point{X: segStart.X + b*vx, Y: segStart.Y + b*vy})
}

// interpolate returns the point a fraction frac of the way from a to b.
func interpolate(a, b Point, frac float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*frac,
		Y: a.Y + (b.Y-a.Y)*frac,
		Z: a.Z + (b.Z-a.Z)*frac,
	}
}

// typeError returns the error reported when a stored geometry or an
// engine result has a variant the caller cannot handle.
func typeError(t Type) error {
	return fmt.Errorf("mapgeom: unsupported geometry type %v", t)
}
