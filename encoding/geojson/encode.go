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
	"encoding/json"
	"fmt"

	"github.com/spatialmodel/mapgeom"
)

func position(p mapgeom.Point) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func positions(pts []mapgeom.Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = position(p)
	}
	return out
}

// ringPositions returns the closed position list of a ring, leaving the
// ring itself in whatever representation it was in.
func ringPositions(r *mapgeom.Ring) [][]float64 {
	rc := r.Clone().(*mapgeom.Ring)
	rc.Close()
	return positions(rc.Path)
}

func polygonPositions(pg *mapgeom.Polygon) [][][]float64 {
	out := make([][][]float64, 0, 1+len(pg.Holes))
	out = append(out, ringPositions(&pg.Ring))
	for _, h := range pg.Holes {
		out = append(out, ringPositions(h))
	}
	return out
}

// ToGeoJSON converts g to its GeoJSON document form. A one-point
// PointSet becomes a Point and a larger one a MultiPoint; a collection
// of rings or polygons becomes a MultiPolygon, a collection of line
// strings a MultiLineString, and a mixed or empty collection a
// GeometryCollection.
func ToGeoJSON(g mapgeom.Geometry) (*Geometry, error) {
	switch t := g.(type) {
	case *mapgeom.PointSet:
		if len(t.Path) == 1 {
			return &Geometry{Type: "Point", Coordinates: position(t.Path[0])}, nil
		}
		return &Geometry{Type: "MultiPoint", Coordinates: positions(t.Path)}, nil
	case *mapgeom.LineString:
		return &Geometry{Type: "LineString", Coordinates: positions(t.Path)}, nil
	case *mapgeom.Ring:
		return &Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{ringPositions(t)},
		}, nil
	case *mapgeom.Polygon:
		return &Geometry{Type: "Polygon", Coordinates: polygonPositions(t)}, nil
	case *mapgeom.MultiGeometry:
		return multiToGeoJSON(t)
	case nil:
		return nil, &InvalidGeometryError{}
	default:
		return nil, &UnsupportedGeometryError{fmt.Sprintf("%T", g)}
	}
}

func multiToGeoJSON(m *mapgeom.MultiGeometry) (*Geometry, error) {
	switch m.ComponentType() {
	case mapgeom.PointSetType:
		var pts []mapgeom.Point
		for _, p := range m.Parts {
			pts = append(pts, p.(*mapgeom.PointSet).Path...)
		}
		return &Geometry{Type: "MultiPoint", Coordinates: positions(pts)}, nil
	case mapgeom.LineStringType:
		coords := make([][][]float64, len(m.Parts))
		for i, p := range m.Parts {
			coords[i] = positions(p.(*mapgeom.LineString).Path)
		}
		return &Geometry{Type: "MultiLineString", Coordinates: coords}, nil
	case mapgeom.RingType:
		coords := make([][][][]float64, len(m.Parts))
		for i, p := range m.Parts {
			coords[i] = [][][]float64{ringPositions(p.(*mapgeom.Ring))}
		}
		return &Geometry{Type: "MultiPolygon", Coordinates: coords}, nil
	case mapgeom.PolygonType:
		coords := make([][][][]float64, len(m.Parts))
		for i, p := range m.Parts {
			coords[i] = polygonPositions(p.(*mapgeom.Polygon))
		}
		return &Geometry{Type: "MultiPolygon", Coordinates: coords}, nil
	}
	parts := make([]*Geometry, len(m.Parts))
	for i, p := range m.Parts {
		var err error
		if parts[i], err = ToGeoJSON(p); err != nil {
			return nil, err
		}
	}
	return &Geometry{Type: "GeometryCollection", Geometries: parts}, nil
}

// Encode encodes g as a GeoJSON geometry document.
func Encode(g mapgeom.Geometry) ([]byte, error) {
	object, err := ToGeoJSON(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(object)
}
