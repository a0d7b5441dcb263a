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

// LineString is an open path of two or more points.
type LineString struct {
	Path
}

// NewLineString creates a LineString from pts.
func NewLineString(pts ...Point) *LineString {
	ls := &LineString{Path: make(Path, len(pts))}
	copy(ls.Path, pts)
	return ls
}

// Type returns LineStringType.
func (ls *LineString) Type() Type { return LineStringType }

// Valid reports whether the path holds at least two points.
func (ls *LineString) Valid() bool { return len(ls.Path) >= 2 }

// NumGeometries returns 1.
func (ls *LineString) NumGeometries() int { return 1 }

// Clone returns a deep copy of the path.
func (ls *LineString) Clone() Geometry {
	return &LineString{Path: ls.Path.Clone()}
}

// CloneAs converts the path to the variant t: to a Ring when it holds
// enough distinct points to close a loop, or dissolved into a PointSet.
func (ls *LineString) CloneAs(t Type) (Geometry, bool) {
	switch t {
	case LineStringType:
		return ls.Clone(), true
	case RingType:
		r := NewRing(ls.Path...)
		if !r.Valid() {
			return nil, false
		}
		return r, true
	case PointSetType:
		return NewPointSet(ls.Path...), true
	}
	return nil, false
}

// Segment extracts the part of the path starting the distance begin
// from its first point and extending the distance length along it, with
// the cut points interpolated between the surrounding vertices. The
// extracted range is clamped to the path; Segment reports false when
// the range is empty or lies entirely beyond the end of the path.
func (ls *LineString) Segment(begin, length float64) (*LineString, bool) {
	total := ls.Path.Length()
	if !ls.Valid() || total == 0 || begin >= total || length <= 0 {
		return nil, false
	}
	if begin < 0 {
		begin = 0
	}
	end := begin + length
	if end > total {
		end = total
	}

	out := &LineString{}
	at := 0. // distance traveled up to the current vertex
	for i := 1; i < len(ls.Path); i++ {
		a, b := ls.Path[i-1], ls.Path[i]
		d := distance(a, b)
		if d == 0 {
			continue
		}
		segEnd := at + d
		if segEnd > begin && len(out.Path) == 0 {
			out.Append(interpolate(a, b, (begin-at)/d))
		}
		if len(out.Path) > 0 {
			if segEnd >= end {
				out.Append(interpolate(a, b, (end-at)/d))
				break
			}
			out.Append(b)
		}
		at = segEnd
	}
	return out, true
}
