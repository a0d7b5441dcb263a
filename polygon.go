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

// Polygon is an outer boundary Ring plus zero or more hole Rings. The
// outer boundary is conventionally wound counterclockwise and the holes
// clockwise; the holes are expected to lie within the outer boundary
// without overlapping each other. Neither convention is validated:
// violations produce geometrically meaningless results downstream
// rather than errors here.
//
// The methods inherited from the embedded boundary Ring operate on the
// outer boundary alone. In particular Contains2D classifies against the
// outer boundary only, so a point inside a hole is still reported as
// contained; use Contains2DWithHoles for hole-aware containment.
type Polygon struct {
	Ring
	Holes []*Ring
}

// NewPolygon creates a Polygon with the given outer boundary and no
// holes.
func NewPolygon(outer *Ring) *Polygon {
	return &Polygon{Ring: Ring{Path: outer.Path.Clone()}}
}

// AddHole appends h to the polygon's holes. The polygon takes ownership
// of h.
func (pg *Polygon) AddHole(h *Ring) {
	pg.Holes = append(pg.Holes, h)
}

// Type returns PolygonType.
func (pg *Polygon) Type() Type { return PolygonType }

// NumPoints returns the total number of vertices in the outer boundary
// and all holes.
func (pg *Polygon) NumPoints() int {
	n := len(pg.Ring.Path)
	for _, h := range pg.Holes {
		n += len(h.Path)
	}
	return n
}

// NumGeometries returns 1 for the outer boundary plus the number of
// holes.
func (pg *Polygon) NumGeometries() int { return 1 + len(pg.Holes) }

// Bounds returns the extent of the outer boundary and all holes.
func (pg *Polygon) Bounds() *Bounds {
	b := pg.Ring.Bounds()
	for _, h := range pg.Holes {
		b.Extend(h.Bounds())
	}
	return b
}

// Clone returns a deep copy of the polygon.
func (pg *Polygon) Clone() Geometry {
	out := &Polygon{Ring: Ring{Path: pg.Ring.Path.Clone()}}
	for _, h := range pg.Holes {
		out.Holes = append(out.Holes, &Ring{Path: h.Path.Clone()})
	}
	return out
}

// CloneAs converts the polygon to the variant t. The outer boundary may
// become a Ring or a LineString; the holes are dropped by those
// conversions.
func (pg *Polygon) CloneAs(t Type) (Geometry, bool) {
	switch t {
	case PolygonType:
		return pg.Clone(), true
	case RingType:
		return &Ring{Path: pg.Ring.Path.Clone()}, true
	case LineStringType:
		return NewLineString(pg.Ring.Path...), true
	}
	return nil, false
}

// Close converts the outer boundary and every hole to the
// duplicated-endpoint representation.
func (pg *Polygon) Close() {
	pg.Ring.Close()
	for _, h := range pg.Holes {
		h.Close()
	}
}

// Open converts the outer boundary and every hole to the canonical open
// representation.
func (pg *Polygon) Open() {
	pg.Ring.Open()
	for _, h := range pg.Holes {
		h.Open()
	}
}

// RemoveDuplicates collapses consecutive equal points in the outer
// boundary and every hole.
func (pg *Polygon) RemoveDuplicates() {
	pg.Ring.RemoveDuplicates()
	for _, h := range pg.Holes {
		h.RemoveDuplicates()
	}
}

// RemoveColinearPoints drops colinear points from the outer boundary
// and every hole.
func (pg *Polygon) RemoveColinearPoints(tol float64) {
	pg.Ring.RemoveColinearPoints(tol)
	for _, h := range pg.Holes {
		h.RemoveColinearPoints(tol)
	}
}

// Localize translates the outer boundary and every hole so that the
// centroid of all vertices is at the origin, and returns the offset
// that restores the original coordinates.
func (pg *Polygon) Localize() Point {
	all := make(Path, 0, pg.NumPoints())
	all = append(all, pg.Ring.Path...)
	for _, h := range pg.Holes {
		all = append(all, h.Path...)
	}
	c := all.centroid()
	neg := Point{X: -c.X, Y: -c.Y, Z: -c.Z}
	pg.Ring.Path.translate(neg)
	for _, h := range pg.Holes {
		h.Path.translate(neg)
	}
	return c
}

// Delocalize translates the outer boundary and every hole by offset,
// reversing a previous Localize that returned the same offset.
func (pg *Polygon) Delocalize(offset Point) {
	pg.Ring.Path.translate(offset)
	for _, h := range pg.Holes {
		h.Path.translate(offset)
	}
}

// Contains2DWithHoles classifies the xy point (x, y) against the
// polygon's interior: inside the outer boundary and not inside any
// hole. The result for points exactly on a boundary is unspecified.
func (pg *Polygon) Contains2DWithHoles(x, y float64) bool {
	in := pg.Ring.Contains2D(x, y)
	if !in {
		return false
	}
	for _, h := range pg.Holes {
		if h.Contains2D(x, y) {
			in = !in
		}
	}
	return in
}

// AssembleRings builds the simplest geometry that represents rings,
// reading each ring's role from its winding: counterclockwise rings
// become outer boundaries and clockwise rings become holes in the
// outer boundary that contains their first vertex. A lone ring is
// returned unchanged whatever its winding, and when no ring is wound
// counterclockwise the first ring is taken as the outer boundary and
// the rest as its holes. The result takes ownership of rings: a single
// hole-free boundary comes back as a *Ring, a boundary with holes as a
// *Polygon, and multiple boundaries as a *MultiGeometry.
func AssembleRings(rings []*Ring) Geometry {
	if len(rings) == 0 {
		return new(MultiGeometry)
	}
	if len(rings) == 1 {
		return rings[0]
	}
	var outers []*Polygon
	var holes []*Ring
	for _, r := range rings {
		if r.Orientation() == CCW {
			outers = append(outers, &Polygon{Ring: *r})
		} else {
			holes = append(holes, r)
		}
	}
	if len(outers) == 0 {
		return &Polygon{Ring: *rings[0], Holes: rings[1:]}
	}
	for _, h := range holes {
		owner := outers[0]
		for _, pg := range outers {
			if len(h.Path) > 0 && pg.Ring.Contains2D(h.Path[0].X, h.Path[0].Y) {
				owner = pg
				break
			}
		}
		owner.Holes = append(owner.Holes, h)
	}
	if len(outers) == 1 {
		if len(outers[0].Holes) == 0 {
			return &outers[0].Ring
		}
		return outers[0]
	}
	m := new(MultiGeometry)
	for _, pg := range outers {
		if len(pg.Holes) == 0 {
			m.Append(&pg.Ring)
		} else {
			m.Append(pg)
		}
	}
	return m
}
