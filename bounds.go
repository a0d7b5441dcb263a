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

// Bounds holds the axis-aligned spatial extent of a geometry.
type Bounds struct {
	Min, Max Point
}

// NewBounds initializes an empty bounds object.
func NewBounds() *Bounds {
	return &Bounds{
		Min: Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// NewBoundsPoint creates a bounds object covering a single point.
func NewBoundsPoint(p Point) *Bounds {
	return &Bounds{Min: p, Max: p}
}

// Copy returns a copy of b.
func (b *Bounds) Copy() *Bounds {
	return &Bounds{Min: b.Min, Max: b.Max}
}

// Empty returns true if b does not contain any points.
func (b *Bounds) Empty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y
}

// Extend increases the extent of b to include b2.
func (b *Bounds) Extend(b2 *Bounds) {
	if b2 == nil || b2.Empty() {
		return
	}
	b.extendPoint(b2.Min)
	b.extendPoint(b2.Max)
}

func (b *Bounds) extendPoint(p Point) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

func (b *Bounds) extendPoints(pts []Point) {
	for _, p := range pts {
		b.extendPoint(p)
	}
}

// Overlaps returns whether b and b2 overlap in the xy plane.
func (b *Bounds) Overlaps(b2 *Bounds) bool {
	if b.Empty() || b2.Empty() {
		return false
	}
	return b.Min.X <= b2.Max.X && b.Min.Y <= b2.Max.Y &&
		b.Max.X >= b2.Min.X && b.Max.Y >= b2.Min.Y
}

// Contains returns whether the xy point (x, y) is inside b or on its
// edge.
func (b *Bounds) Contains(x, y float64) bool {
	return x >= b.Min.X && x <= b.Max.X && y >= b.Min.Y && y <= b.Max.Y
}

// Polygon returns the rectangular polygon covering b in the xy plane,
// wound counterclockwise.
func (b *Bounds) Polygon() *Polygon {
	return &Polygon{Ring: *NewRing(
		Point{X: b.Min.X, Y: b.Min.Y},
		Point{X: b.Max.X, Y: b.Min.Y},
		Point{X: b.Max.X, Y: b.Max.Y},
		Point{X: b.Min.X, Y: b.Max.Y},
	)}
}
