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

package geojson

import (
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/mapgeom"
)

func square(x, y, size float64) *mapgeom.Ring {
	return mapgeom.NewRing(
		mapgeom.Point{X: x, Y: y},
		mapgeom.Point{X: x + size, Y: y},
		mapgeom.Point{X: x + size, Y: y + size},
		mapgeom.Point{X: x, Y: y + size},
	)
}

func holedSquare() *mapgeom.Polygon {
	pg := mapgeom.NewPolygon(square(0, 0, 10))
	hole := square(4, 4, 2)
	hole.Rewind(mapgeom.CW)
	pg.AddHole(hole)
	return pg
}

func TestEncode(t *testing.T) {
	cases := []struct {
		g    mapgeom.Geometry
		want string
	}{
		{
			mapgeom.NewPointSet(mapgeom.Point{X: 1, Y: 2, Z: 3}),
			`{"type":"Point","coordinates":[1,2,3]}`,
		},
		{
			mapgeom.NewPointSet(
				mapgeom.Point{X: 1, Y: 2},
				mapgeom.Point{X: 3, Y: 4},
			),
			`{"type":"MultiPoint","coordinates":[[1,2,0],[3,4,0]]}`,
		},
		{
			mapgeom.NewLineString(
				mapgeom.Point{X: 0, Y: 0, Z: 5},
				mapgeom.Point{X: 1, Y: 1, Z: 6},
			),
			`{"type":"LineString","coordinates":[[0,0,5],[1,1,6]]}`,
		},
		{
			square(0, 0, 1),
			`{"type":"Polygon","coordinates":[[[0,0,0],[1,0,0],[1,1,0],[0,1,0],[0,0,0]]]}`,
		},
		{
			mapgeom.NewMultiGeometry(square(0, 0, 1), square(2, 0, 1)),
			`{"type":"MultiPolygon","coordinates":[[[[0,0,0],[1,0,0],[1,1,0],[0,1,0],[0,0,0]]],[[[2,0,0],[3,0,0],[3,1,0],[2,1,0],[2,0,0]]]]}`,
		},
		{
			mapgeom.NewMultiGeometry(
				mapgeom.NewPointSet(mapgeom.Point{X: 1, Y: 1}),
				mapgeom.NewLineString(mapgeom.Point{X: 0, Y: 0}, mapgeom.Point{X: 1, Y: 0}),
			),
			`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,1,0]},{"type":"LineString","coordinates":[[0,0,0],[1,0,0]]}]}`,
		},
	}
	for i, c := range cases {
		b, err := Encode(c.g)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if string(b) != c.want {
			t.Errorf("case %d: have %s, want %s", i, b, c.want)
		}
	}
}

func TestEncodeRingKeepsSource(t *testing.T) {
	r := square(0, 0, 1)
	if _, err := Encode(r); err != nil {
		t.Fatal(err)
	}
	if n := len(r.Path); n != 4 {
		t.Errorf("have %d points after encoding, want 4", n)
	}
}

func TestRoundTrip(t *testing.T) {
	line := func() *mapgeom.LineString {
		return mapgeom.NewLineString(
			mapgeom.Point{X: 0, Y: 0, Z: 1},
			mapgeom.Point{X: 2, Y: 0, Z: 2},
			mapgeom.Point{X: 2, Y: 3, Z: 3},
		)
	}
	cases := []mapgeom.Geometry{
		mapgeom.NewPointSet(mapgeom.Point{X: 1.5, Y: -2.25, Z: 3}),
		mapgeom.NewPointSet(
			mapgeom.Point{X: 1, Y: 2, Z: 3},
			mapgeom.Point{X: 4, Y: 5, Z: 6},
		),
		line(),
		square(0, 0, 10),
		holedSquare(),
		mapgeom.NewMultiGeometry(square(0, 0, 1), holedSquare()),
		mapgeom.NewMultiGeometry(line(), mapgeom.NewLineString(
			mapgeom.Point{X: 9, Y: 9},
			mapgeom.Point{X: 10, Y: 10},
		)),
		mapgeom.NewMultiGeometry(
			mapgeom.NewPointSet(mapgeom.Point{X: 1, Y: 1}),
			line(),
		),
	}
	for i, g := range cases {
		b, err := Encode(g)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		got, err := Decode(b)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		for _, d := range pretty.Diff(got, g) {
			t.Errorf("case %d: %s", i, d)
		}
	}
}

func TestDecodeTwoElementPositions(t *testing.T) {
	got, err := Decode([]byte(`{"type":"LineString","coordinates":[[1,2],[3,4,5]]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := mapgeom.NewLineString(
		mapgeom.Point{X: 1, Y: 2},
		mapgeom.Point{X: 3, Y: 4, Z: 5},
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("have %#v, want %#v", got, want)
	}
}

func TestDecodeCollapses(t *testing.T) {
	got, err := Decode([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if r, ok := got.(*mapgeom.Ring); !ok || len(r.Path) != 3 {
		t.Errorf("hole-free polygon should decode to an open Ring, have %#v", got)
	}

	got, err = Decode([]byte(`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*mapgeom.LineString); !ok {
		t.Errorf("one-element MultiLineString should decode to a LineString, have %T", got)
	}

	got, err = Decode([]byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*mapgeom.Ring); !ok {
		t.Errorf("one-element MultiPolygon should decode to a Ring, have %T", got)
	}

	got, err = Decode([]byte(`{"type":"GeometryCollection","geometries":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := got.(*mapgeom.MultiGeometry); !ok || len(m.Parts) != 0 {
		t.Errorf("empty collection should decode to an empty MultiGeometry, have %#v", got)
	}
}

func TestDecodePolygonHoles(t *testing.T) {
	b, err := Encode(holedSquare())
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	pg, ok := got.(*mapgeom.Polygon)
	if !ok {
		t.Fatalf("have %T, want *mapgeom.Polygon", got)
	}
	if len(pg.Holes) != 1 {
		t.Fatalf("have %d holes, want 1", len(pg.Holes))
	}
	if pg.Contains2DWithHoles(5, 5) || !pg.Contains2DWithHoles(1, 1) {
		t.Error("decoded polygon should keep its hole")
	}
}

func TestDecodeErrors(t *testing.T) {
	invalid := []string{
		`{"type":"Point","coordinates":[1]}`,
		`{"type":"Point","coordinates":"x"}`,
		`{"type":"LineString","coordinates":[]}`,
		`{"type":"Polygon","coordinates":[]}`,
		`{"type":"MultiPolygon","coordinates":[1,2]}`,
	}
	for _, doc := range invalid {
		g, err := Decode([]byte(doc))
		if _, ok := err.(*InvalidGeometryError); !ok {
			t.Errorf("%s: have (%#v, %v), want an InvalidGeometryError", doc, g, err)
		}
	}

	_, err := Decode([]byte(`{"type":"Triangle","coordinates":[]}`))
	if uerr, ok := err.(*UnsupportedGeometryError); !ok || uerr.Type != "Triangle" {
		t.Errorf("have %v, want an UnsupportedGeometryError for Triangle", err)
	}

	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("malformed JSON should not decode")
	}

	if _, err := Encode(nil); err == nil {
		t.Error("a nil geometry should not encode")
	}
}

func TestFeatures(t *testing.T) {
	features := []*Feature{
		{
			Geometry:   square(0, 0, 10),
			Properties: map[string]interface{}{"name": "block", "pop": float64(1200)},
		},
		{
			Geometry: mapgeom.NewLineString(
				mapgeom.Point{X: 0, Y: 0, Z: 7},
				mapgeom.Point{X: 5, Y: 5, Z: 8},
			),
		},
	}
	b, err := EncodeFeatures(features)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeFeatures(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(features) {
		t.Fatalf("have %d features, want %d", len(got), len(features))
	}
	for i := range features {
		for _, d := range pretty.Diff(got[i].Geometry, features[i].Geometry) {
			t.Errorf("feature %d geometry: %s", i, d)
		}
		if !reflect.DeepEqual(got[i].Properties, features[i].Properties) {
			t.Errorf("feature %d: have properties %#v, want %#v",
				i, got[i].Properties, features[i].Properties)
		}
	}
}

func TestDecodeFeaturesFlexibleRoot(t *testing.T) {
	// A bare geometry document decodes to one feature.
	got, err := DecodeFeatures([]byte(`{"type":"Point","coordinates":[1,2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Properties != nil {
		t.Fatalf("have %#v, want one propertyless feature", got)
	}
	want := mapgeom.NewPointSet(mapgeom.Point{X: 1, Y: 2, Z: 3})
	if !reflect.DeepEqual(got[0].Geometry, want) {
		t.Errorf("have %#v, want %#v", got[0].Geometry, want)
	}

	// A single Feature document decodes the same way.
	got, err = DecodeFeatures([]byte(
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2,3]},"properties":{"name":"a"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Properties["name"] != "a" {
		t.Fatalf("have %#v, want one feature named a", got)
	}

	// Null geometries are allowed.
	got, err = DecodeFeatures([]byte(`{"type":"Feature","geometry":null,"properties":{"name":"x"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Geometry != nil {
		t.Fatalf("have %#v, want one feature with a nil geometry", got)
	}
}
