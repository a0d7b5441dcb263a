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

// MultiGeometry is an ordered collection of heterogeneous geometry
// parts, each owned exclusively by the collection. A MultiGeometry
// never appears as a part of another MultiGeometry: Append flattens
// nested collections so that the structure stays one level deep.
type MultiGeometry struct {
	Parts []Geometry
}

// NewMultiGeometry creates a MultiGeometry holding parts. Parts that
// are themselves MultiGeometries are flattened.
func NewMultiGeometry(parts ...Geometry) *MultiGeometry {
	m := new(MultiGeometry)
	for _, p := range parts {
		m.Append(p)
	}
	return m
}

// Append adds g to the collection, taking ownership of it. If g is
// itself a MultiGeometry its parts are appended individually instead,
// keeping the collection flat.
func (m *MultiGeometry) Append(g Geometry) {
	if g == nil {
		return
	}
	if m2, ok := g.(*MultiGeometry); ok {
		m.Parts = append(m.Parts, m2.Parts...)
		m2.Parts = nil
		return
	}
	m.Parts = append(m.Parts, g)
}

// Type returns MultiType.
func (m *MultiGeometry) Type() Type { return MultiType }

// ComponentType returns the shared variant of the collection's parts,
// or UnknownType when the collection is empty or holds mixed variants.
func (m *MultiGeometry) ComponentType() Type {
	if len(m.Parts) == 0 {
		return UnknownType
	}
	t := m.Parts[0].Type()
	for _, p := range m.Parts[1:] {
		if p.Type() != t {
			return UnknownType
		}
	}
	return t
}

// Valid reports whether every part is individually valid. An empty
// collection is not valid.
func (m *MultiGeometry) Valid() bool {
	if len(m.Parts) == 0 {
		return false
	}
	for _, p := range m.Parts {
		if !p.Valid() {
			return false
		}
	}
	return true
}

// NumPoints returns the total number of vertices across all parts.
func (m *MultiGeometry) NumPoints() int {
	n := 0
	for _, p := range m.Parts {
		n += p.NumPoints()
	}
	return n
}

// NumGeometries returns the recursive component count across all parts.
func (m *MultiGeometry) NumGeometries() int {
	n := 0
	for _, p := range m.Parts {
		n += p.NumGeometries()
	}
	return n
}

// Bounds returns the union of all parts' bounds.
func (m *MultiGeometry) Bounds() *Bounds {
	b := NewBounds()
	for _, p := range m.Parts {
		b.Extend(p.Bounds())
	}
	return b
}

// Length returns the sum of all parts' lengths.
func (m *MultiGeometry) Length() float64 {
	l := 0.
	for _, p := range m.Parts {
		l += p.Length()
	}
	return l
}

// Clone returns a deep copy of the collection and all its parts.
func (m *MultiGeometry) Clone() Geometry {
	out := &MultiGeometry{Parts: make([]Geometry, len(m.Parts))}
	for i, p := range m.Parts {
		out.Parts[i] = p.Clone()
	}
	return out
}

// CloneAs converts the collection to the variant t. Only the identity
// conversion is defined for collections.
func (m *MultiGeometry) CloneAs(t Type) (Geometry, bool) {
	if t == MultiType {
		return m.Clone(), true
	}
	return nil, false
}

// Rewind rewinds every part.
func (m *MultiGeometry) Rewind(o Orientation) {
	for _, p := range m.Parts {
		p.Rewind(o)
	}
}

// Close converts the rings in every part to the duplicated-endpoint
// representation.
func (m *MultiGeometry) Close() {
	for _, p := range m.Parts {
		p.Close()
	}
}

// Open converts the rings in every part to the canonical open
// representation.
func (m *MultiGeometry) Open() {
	for _, p := range m.Parts {
		p.Open()
	}
}

// RemoveDuplicates collapses consecutive equal points in every part.
func (m *MultiGeometry) RemoveDuplicates() {
	for _, p := range m.Parts {
		p.RemoveDuplicates()
	}
}

// RemoveColinearPoints drops colinear points from every part.
func (m *MultiGeometry) RemoveColinearPoints(tol float64) {
	for _, p := range m.Parts {
		p.RemoveColinearPoints(tol)
	}
}

// Localize translates every part by the same offset, placing the
// centroid of all vertices at the origin, and returns the offset that
// restores the original coordinates.
func (m *MultiGeometry) Localize() Point {
	var c Point
	n := 0
	for _, p := range m.Parts {
		pts := ownPath(p)
		if pg, ok := p.(*Polygon); ok {
			for _, h := range pg.Holes {
				pts = append(pts[:len(pts):len(pts)], h.Path...)
			}
		}
		for _, pt := range pts {
			c.X += pt.X
			c.Y += pt.Y
			c.Z += pt.Z
			n++
		}
	}
	if n == 0 {
		return Point{}
	}
	c = Point{X: c.X / float64(n), Y: c.Y / float64(n), Z: c.Z / float64(n)}
	m.Delocalize(Point{X: -c.X, Y: -c.Y, Z: -c.Z})
	return c
}

// Delocalize translates every part by offset, reversing a previous
// Localize that returned the same offset.
func (m *MultiGeometry) Delocalize(offset Point) {
	for _, p := range m.Parts {
		p.Delocalize(offset)
	}
}

// Float32s returns nil: a collection holds no vertices directly.
func (m *MultiGeometry) Float32s() []float32 { return nil }

// Float64s returns nil: a collection holds no vertices directly.
func (m *MultiGeometry) Float64s() []float64 { return nil }
