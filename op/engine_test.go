/*
Copyright © 2018 the MapGeom authors.
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

package op

import (
	"math"
	"testing"

	"github.com/gonum/floats"

	"github.com/spatialmodel/mapgeom"
)

// absArea totals the area of the region g covers.
func absArea(g mapgeom.Geometry) float64 {
	var a float64
	it := mapgeom.NewIterator(g, false)
	for it.HasMore() {
		switch v := it.Next().(type) {
		case *mapgeom.Ring:
			a += math.Abs(v.SignedArea2D())
		case *mapgeom.Polygon:
			a += math.Abs(v.SignedArea2D())
			for _, h := range v.Holes {
				a -= math.Abs(h.SignedArea2D())
			}
		}
	}
	return a
}

// covers reports whether any area part of g contains the point (x, y).
func covers(g mapgeom.Geometry, x, y float64) bool {
	it := mapgeom.NewIterator(g, false)
	for it.HasMore() {
		switch v := it.Next().(type) {
		case *mapgeom.Ring:
			if v.Contains2D(x, y) {
				return true
			}
		case *mapgeom.Polygon:
			if v.Contains2DWithHoles(x, y) {
				return true
			}
		}
	}
	return false
}

func TestBufferPoint(t *testing.T) {
	o := NewDefault()
	pt := mapgeom.NewPointSet(mapgeom.Point{X: 2, Y: 3})

	res, err := o.Buffer(pt, 1, BufferParams{Cap: CapRound})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(res); !floats.EqualWithinAbsOrRel(a, math.Pi, 0.05, 0.02) {
		t.Errorf("have area %g, want about %g", a, math.Pi)
	}
	b := res.Bounds()
	if !floats.EqualWithinAbsOrRel(b.Min.X, 1, 1e-3, 1e-3) ||
		!floats.EqualWithinAbsOrRel(b.Max.Y, 4, 1e-3, 1e-3) {
		t.Errorf("have bounds %+v, want a unit circle around (2,3)", b)
	}

	// A flat cap squares off the point.
	res, err = o.Buffer(pt, 1, BufferParams{Cap: CapFlat})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(res); !floats.EqualWithinAbsOrRel(a, 4, 1e-3, 1e-6) {
		t.Errorf("have area %g, want 4", a)
	}
}

func TestBufferCornerSegs(t *testing.T) {
	o := NewDefault()
	pt := mapgeom.NewPointSet(mapgeom.Point{X: 0, Y: 0})
	coarse, err := o.Buffer(pt, 1, BufferParams{CornerSegs: 2})
	if err != nil {
		t.Fatal(err)
	}
	fine, err := o.Buffer(pt, 1, BufferParams{CornerSegs: 16})
	if err != nil {
		t.Fatal(err)
	}
	if coarse.NumPoints()*3 > fine.NumPoints() {
		t.Errorf("have %d and %d outline points; more corner segments should refine the outline",
			coarse.NumPoints(), fine.NumPoints())
	}
}

func TestBufferLineCaps(t *testing.T) {
	o := NewDefault()
	ln := mapgeom.NewLineString(mapgeom.Point{X: 0, Y: 0}, mapgeom.Point{X: 10, Y: 0})

	cases := []struct {
		cap  CapStyle
		want float64
		abs  float64
	}{
		{CapFlat, 20, 1e-3},
		{CapSquare, 24, 1e-2},
		{CapRound, 20 + math.Pi, 0.05},
		{CapDefault, 20 + math.Pi, 0.05},
	}
	for _, c := range cases {
		res, err := o.Buffer(ln, 1, BufferParams{Cap: c.cap})
		if err != nil {
			t.Fatal(err)
		}
		if a := absArea(res); !floats.EqualWithinAbsOrRel(a, c.want, c.abs, 1e-2) {
			t.Errorf("%v cap: have area %g, want about %g", c.cap, a, c.want)
		}
	}
}

func TestBufferPolygon(t *testing.T) {
	o := NewDefault()
	g := square(0, 0, 10)

	grown, err := o.Buffer(g, 1, BufferParams{Join: JoinMitre})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(grown); !floats.EqualWithinAbsOrRel(a, 144, 1e-3, 1e-6) {
		t.Errorf("have area %g, want 144", a)
	}

	shrunk, err := o.Buffer(g, -1, BufferParams{Join: JoinMitre})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(shrunk); !floats.EqualWithinAbsOrRel(a, 64, 1e-3, 1e-6) {
		t.Errorf("have area %g, want 64", a)
	}

	gone, err := o.Buffer(g, -6, BufferParams{})
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := gone.(*mapgeom.MultiGeometry); !ok || m.Valid() {
		t.Errorf("have %#v for a fully eroded square, want an empty collection", gone)
	}

	if len(g.Path) != 4 || g.Path[2].X != 10 {
		t.Error("buffering should not modify the operand")
	}
}

func TestBufferNegativeLineFails(t *testing.T) {
	o := NewDefault()
	ln := mapgeom.NewLineString(mapgeom.Point{X: 0, Y: 0}, mapgeom.Point{X: 10, Y: 0})
	if _, err := o.Buffer(ln, -1, BufferParams{}); err == nil {
		t.Error("shrinking a line should fail")
	}
}

func TestBufferZeroApproximatesInput(t *testing.T) {
	o := NewDefault()
	g := square(0, 0, 10)
	res, err := o.Buffer(g, 0, BufferParams{})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(res); !floats.EqualWithinAbsOrRel(a, 100, 1e-9, 1e-9) {
		t.Errorf("have area %g, want 100", a)
	}
	rb, gb := res.Bounds(), g.Bounds()
	if *rb != *gb {
		t.Errorf("have bounds %+v, want %+v", rb, gb)
	}
}

func TestBufferSingleSided(t *testing.T) {
	o := NewDefault()
	ln := mapgeom.NewLineString(mapgeom.Point{X: 0, Y: 0}, mapgeom.Point{X: 10, Y: 0})

	left, err := o.Buffer(ln, 1, BufferParams{SingleSided: true, LeftSide: true})
	if err != nil {
		t.Fatal(err)
	}
	if !covers(left, 5, 0.5) || covers(left, 5, -0.5) {
		t.Error("the left-side buffer should cover above the line only")
	}
	if a := absArea(left); !floats.EqualWithinAbsOrRel(a, 10, 0.5, 0.05) {
		t.Errorf("have area %g, want about 10", a)
	}

	right, err := o.Buffer(ln, 1, BufferParams{SingleSided: true})
	if err != nil {
		t.Fatal(err)
	}
	if covers(right, 5, 0.5) || !covers(right, 5, -0.5) {
		t.Error("the right-side buffer should cover below the line only")
	}

	if _, err := o.Buffer(square(0, 0, 1), 1, BufferParams{SingleSided: true}); err == nil {
		t.Error("single-sided buffering of an area geometry should fail")
	}
}

func TestUnion(t *testing.T) {
	o := NewDefault()

	merged, err := o.Union(square(0, 0, 1), square(0.5, 0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(merged); !floats.EqualWithinAbsOrRel(a, 1.75, 1e-6, 1e-6) {
		t.Errorf("have area %g, want 1.75", a)
	}

	apart, err := o.Union(square(0, 0, 1), square(5, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if n := apart.NumGeometries(); n != 2 {
		t.Errorf("have %d geometries, want 2", n)
	}
	if a := absArea(apart); !floats.EqualWithinAbsOrRel(a, 2, 1e-6, 1e-6) {
		t.Errorf("have area %g, want 2", a)
	}
}

func TestDifferenceMakesHole(t *testing.T) {
	o := NewDefault()
	res, err := o.Difference(square(0, 0, 10), square(4, 4, 2))
	if err != nil {
		t.Fatal(err)
	}
	pg, ok := res.(*mapgeom.Polygon)
	if !ok {
		t.Fatalf("have %T, want *mapgeom.Polygon", res)
	}
	if n := pg.NumGeometries(); n != 2 {
		t.Errorf("have %d rings, want boundary plus one hole", n)
	}
	if a := absArea(res); !floats.EqualWithinAbsOrRel(a, 96, 1e-6, 1e-6) {
		t.Errorf("have area %g, want 96", a)
	}
	if covers(res, 5, 5) {
		t.Error("the hole should not be covered")
	}
	if !covers(res, 1, 1) {
		t.Error("the remaining area should be covered")
	}
}

func TestCrop(t *testing.T) {
	o := NewDefault()

	ln := mapgeom.NewLineString(mapgeom.Point{X: -5, Y: 2}, mapgeom.Point{X: 15, Y: 2})
	res, err := o.Crop(ln, mapgeom.NewPolygon(square(0, 0, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if l := res.Length(); !floats.EqualWithinAbsOrRel(l, 10, 1e-6, 1e-6) {
		t.Errorf("have length %g, want 10", l)
	}
	b := res.Bounds()
	if !floats.EqualWithinAbsOrRel(b.Min.X, 0, 1e-6, 1e-6) ||
		!floats.EqualWithinAbsOrRel(b.Max.X, 10, 1e-6, 1e-6) {
		t.Errorf("have bounds %+v, want x from 0 to 10", b)
	}

	pg, err := o.Crop(square(0, 0, 10), mapgeom.NewPolygon(square(5, 5, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(pg); !floats.EqualWithinAbsOrRel(a, 25, 1e-6, 1e-6) {
		t.Errorf("have area %g, want 25", a)
	}
}

func TestCropBounds(t *testing.T) {
	o := NewDefault()
	g := square(0, 0, 10)
	res, err := o.CropBounds(g, &mapgeom.Bounds{
		Min: mapgeom.Point{X: 5, Y: 5},
		Max: mapgeom.Point{X: 20, Y: 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(res); !floats.EqualWithinAbsOrRel(a, 25, 1e-6, 1e-6) {
		t.Errorf("have area %g, want 25", a)
	}
}

func TestCropMulti(t *testing.T) {
	o := NewDefault()
	g := mapgeom.NewMultiGeometry(
		mapgeom.NewLineString(mapgeom.Point{X: -5, Y: 5}, mapgeom.Point{X: 15, Y: 5}),
		mapgeom.NewPointSet(mapgeom.Point{X: 1, Y: 1}, mapgeom.Point{X: 5, Y: 5}),
	)
	res, err := o.Crop(g, holedWindow())
	if err != nil {
		t.Fatal(err)
	}
	// The line is cut by the window and its hole; the point in the
	// hole is dropped.
	if l := res.Length(); !floats.EqualWithinAbsOrRel(l, 8, 1e-6, 1e-6) {
		t.Errorf("have length %g, want 8", l)
	}
	m, ok := res.(*mapgeom.MultiGeometry)
	if !ok {
		t.Fatalf("have %T, want *mapgeom.MultiGeometry", res)
	}
	var pointCount int
	for _, p := range m.Parts {
		if ps, isPts := p.(*mapgeom.PointSet); isPts {
			pointCount += len(ps.Path)
		}
	}
	if pointCount != 1 {
		t.Errorf("have %d points, want 1", pointCount)
	}
}

func TestIntersects(t *testing.T) {
	o := NewDefault()

	in, err := o.Intersects(square(0, 0, 1), square(0.5, 0.5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !in {
		t.Error("overlapping squares should intersect")
	}

	// Bounding boxes overlap here but the shapes do not.
	a := mapgeom.NewRing(mapgeom.Point{X: 0, Y: 0}, mapgeom.Point{X: 1, Y: 0}, mapgeom.Point{X: 0, Y: 1})
	b := mapgeom.NewRing(mapgeom.Point{X: 0.9, Y: 0.9}, mapgeom.Point{X: 1.9, Y: 0.9}, mapgeom.Point{X: 0.9, Y: 1.9})
	in, err = o.Intersects(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if in {
		t.Error("disjoint triangles should not intersect")
	}

	ln := mapgeom.NewLineString(mapgeom.Point{X: -5, Y: 5}, mapgeom.Point{X: 15, Y: 5})
	in, err = o.Intersects(ln, square(0, 0, 10))
	if err != nil {
		t.Fatal(err)
	}
	if !in {
		t.Error("a line crossing a square should intersect it")
	}
}

func TestOpsFarFromOrigin(t *testing.T) {
	o := NewDefault()
	g := square(1e7, 1e7, 10)

	grown, err := o.Buffer(g, 1, BufferParams{Join: JoinMitre})
	if err != nil {
		t.Fatal(err)
	}
	if a := absArea(grown); !floats.EqualWithinAbsOrRel(a, 144, 1e-3, 1e-6) {
		t.Errorf("have area %g, want 144", a)
	}
	b := grown.Bounds()
	if !floats.EqualWithinAbsOrRel(b.Min.X, 1e7-1, 1e-3, 1e-9) {
		t.Errorf("have bounds %+v, want them near (1e7-1, 1e7-1)", b)
	}

	in, err := o.Intersects(g, square(1e7+5, 1e7+5, 10))
	if err != nil {
		t.Fatal(err)
	}
	if !in {
		t.Error("overlapping squares far from the origin should intersect")
	}
}
