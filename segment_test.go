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

func segments(si *SegmentIterator) []Segment {
	var out []Segment
	for si.HasMore() {
		out = append(out, si.Next())
	}
	return out
}

func TestSegmentIteratorLineString(t *testing.T) {
	ls := NewLineString(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 1, Y: 1})

	open := segments(NewSegmentIterator(ls, false))
	wantOpen := []Segment{
		{Start: Point{X: 0, Y: 0}, End: Point{X: 1, Y: 0}},
		{Start: Point{X: 1, Y: 0}, End: Point{X: 1, Y: 1}},
	}
	if !reflect.DeepEqual(open, wantOpen) {
		t.Errorf("open: have %#v, want %#v", open, wantOpen)
	}

	closed := segments(NewSegmentIterator(ls, true))
	wantClosed := append(wantOpen,
		Segment{Start: Point{X: 1, Y: 1}, End: Point{X: 0, Y: 0}})
	if !reflect.DeepEqual(closed, wantClosed) {
		t.Errorf("closed: have %#v, want %#v", closed, wantClosed)
	}
}

func TestSegmentIteratorRing(t *testing.T) {
	r := NewRing(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 1, Y: 1})

	// A ring closes implicitly regardless of forceClosedLoop.
	got := segments(NewSegmentIterator(r, false))
	want := []Segment{
		{Start: Point{X: 0, Y: 0}, End: Point{X: 1, Y: 0}},
		{Start: Point{X: 1, Y: 0}, End: Point{X: 1, Y: 1}},
		{Start: Point{X: 1, Y: 1}, End: Point{X: 0, Y: 0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("have %#v, want %#v", got, want)
	}

	// A ring in closed representation must not gain an extra
	// zero-length wrap segment.
	r.Close()
	got = segments(NewSegmentIterator(r, true))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("closed representation: have %#v, want %#v", got, want)
	}
}

func TestSegmentIteratorPolygon(t *testing.T) {
	pg := holedSquare()
	got := segments(NewSegmentIterator(pg, false))
	if len(got) != 4 {
		t.Errorf("have %d boundary segments, want 4", len(got))
	}
	// Hole segments come from the hole rings themselves.
	got = segments(NewSegmentIterator(pg.Holes[0], false))
	if len(got) != 4 {
		t.Errorf("have %d hole segments, want 4", len(got))
	}
}

func TestSegmentIteratorDegenerate(t *testing.T) {
	if got := segments(NewSegmentIterator(NewPointSet(Point{X: 1, Y: 1}), true)); got != nil {
		t.Errorf("have %#v for a single point, want none", got)
	}
	m := NewMultiGeometry(NewLineString(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}))
	if got := segments(NewSegmentIterator(m, true)); got != nil {
		t.Errorf("have %#v for a collection, want none", got)
	}
}

func TestSegmentIteratorNextPastEnd(t *testing.T) {
	si := NewSegmentIterator(NewLineString(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}), false)
	si.Next()
	if si.HasMore() {
		t.Fatal("iterator should be exhausted")
	}
	defer func() {
		if recover() == nil {
			t.Error("Next past the end should panic")
		}
	}()
	si.Next()
}
