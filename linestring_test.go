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

import (
	"reflect"
	"testing"
)

func TestLineStringValid(t *testing.T) {
	if NewLineString(Point{X: 0, Y: 0}).Valid() {
		t.Error("a single-point line string should not be valid")
	}
	if !NewLineString(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}).Valid() {
		t.Error("a two-point line string should be valid")
	}
}

func TestLineStringSegment(t *testing.T) {
	ls := NewLineString(
		Point{X: 0, Y: 0},
		Point{X: 1, Y: 0},
		Point{X: 2, Y: 0},
		Point{X: 2, Y: 1},
	)

	tests := []struct {
		begin, length float64
		want          Path
		ok            bool
	}{
		{0, 1, Path{{X: 0, Y: 0}, {X: 1, Y: 0}}, true},
		{0.5, 1, Path{{X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1.5, Y: 0}}, true},
		{1, 0.5, Path{{X: 1, Y: 0}, {X: 1.5, Y: 0}}, true},
		{2.5, 10, Path{{X: 2, Y: 0.5}, {X: 2, Y: 1}}, true}, // clamped to the end
		{-1, 1.5, Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1.5, Y: 0}}, true},
		{3, 1, nil, false}, // begins past the end
		{0, 0, nil, false},
	}
	for _, test := range tests {
		seg, ok := ls.Segment(test.begin, test.length)
		if ok != test.ok {
			t.Errorf("Segment(%g, %g): have ok=%v, want %v",
				test.begin, test.length, ok, test.ok)
			continue
		}
		if !ok {
			continue
		}
		if !reflect.DeepEqual(seg.Path, test.want) {
			t.Errorf("Segment(%g, %g): have %#v, want %#v",
				test.begin, test.length, seg.Path, test.want)
		}
	}
}

func TestLineStringSegmentInterpolatesZ(t *testing.T) {
	ls := NewLineString(Point{X: 0, Y: 0, Z: 0}, Point{X: 2, Y: 0, Z: 10})
	seg, ok := ls.Segment(0.5, 1)
	if !ok {
		t.Fatal("Segment should succeed")
	}
	want := Path{{X: 0.5, Y: 0, Z: 2.5}, {X: 1.5, Y: 0, Z: 7.5}}
	if !reflect.DeepEqual(seg.Path, want) {
		t.Errorf("have %#v, want %#v", seg.Path, want)
	}
}

func TestLineStringCloneAs(t *testing.T) {
	ls := NewLineString(
		Point{X: 0, Y: 0},
		Point{X: 1, Y: 0},
		Point{X: 1, Y: 1},
	)

	g, ok := ls.CloneAs(RingType)
	if !ok {
		t.Fatal("LineString to Ring conversion should succeed")
	}
	if g.Type() != RingType || g.NumPoints() != 3 {
		t.Errorf("have %v with %d points, want Ring with 3", g.Type(), g.NumPoints())
	}

	g, ok = ls.CloneAs(PointSetType)
	if !ok {
		t.Fatal("LineString to PointSet conversion should succeed")
	}
	if g.Type() != PointSetType || g.NumPoints() != 3 {
		t.Errorf("have %v with %d points, want PointSet with 3", g.Type(), g.NumPoints())
	}

	// Too few distinct points to close a loop.
	short := NewLineString(Point{X: 0, Y: 0}, Point{X: 1, Y: 0})
	if _, ok := short.CloneAs(RingType); ok {
		t.Error("two-point LineString to Ring conversion should fail")
	}

	if _, ok := ls.CloneAs(PolygonType); ok {
		t.Error("LineString to Polygon conversion should fail")
	}
}

func TestPointSetCloneAs(t *testing.T) {
	ps := NewPointSet(Point{X: 0, Y: 0}, Point{X: 1, Y: 1})
	if _, ok := ps.CloneAs(PolygonType); ok {
		t.Error("PointSet to Polygon conversion should fail")
	}
	if _, ok := ps.CloneAs(LineStringType); ok {
		t.Error("PointSet to LineString conversion should fail")
	}
	g, ok := ps.CloneAs(PointSetType)
	if !ok {
		t.Fatal("identity conversion should succeed")
	}
	g.(*PointSet).Path[0].X = 99
	if ps.Path[0].X == 99 {
		t.Error("identity conversion shares storage with its source")
	}
}
