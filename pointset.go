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

// PointSet is an unordered collection of points. The storage order of
// the points carries no meaning.
type PointSet struct {
	Path
}

// NewPointSet creates a PointSet from pts.
func NewPointSet(pts ...Point) *PointSet {
	ps := &PointSet{Path: make(Path, len(pts))}
	copy(ps.Path, pts)
	return ps
}

// Type returns PointSetType.
func (ps *PointSet) Type() Type { return PointSetType }

// Valid reports whether the set holds at least one point.
func (ps *PointSet) Valid() bool { return len(ps.Path) >= 1 }

// NumGeometries returns 1.
func (ps *PointSet) NumGeometries() int { return 1 }

// Length returns 0: a point set has no path.
func (ps *PointSet) Length() float64 { return 0 }

// Clone returns a deep copy of the set.
func (ps *PointSet) Clone() Geometry {
	return &PointSet{Path: ps.Path.Clone()}
}

// CloneAs converts the set to the variant t. Only the identity
// conversion is defined for point sets: without an ordering there is no
// sensible mapping to the path-like variants.
func (ps *PointSet) CloneAs(t Type) (Geometry, bool) {
	if t == PointSetType {
		return ps.Clone(), true
	}
	return nil, false
}
