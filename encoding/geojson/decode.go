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

	"github.com/spatialmodel/mapgeom"
)

// The decode helpers panic with the error to report; FromGeoJSON
// recovers it at the top of the document walk.

func decodeArray(v interface{}) []interface{} {
	array, ok := v.([]interface{})
	if !ok {
		panic(&InvalidGeometryError{})
	}
	return array
}

// decodePosition decodes one [x, y] or [x, y, z] position.
func decodePosition(v interface{}) mapgeom.Point {
	array := decodeArray(v)
	if len(array) != 2 && len(array) != 3 {
		panic(&InvalidGeometryError{})
	}
	coords := make([]float64, len(array))
	for i, e := range array {
		f, ok := e.(float64)
		if !ok {
			panic(&InvalidGeometryError{})
		}
		coords[i] = f
	}
	p := mapgeom.Point{X: coords[0], Y: coords[1]}
	if len(coords) == 3 {
		p.Z = coords[2]
	}
	return p
}

// decodePositions decodes a non-empty position list.
func decodePositions(v interface{}) []mapgeom.Point {
	array := decodeArray(v)
	if len(array) == 0 {
		panic(&InvalidGeometryError{})
	}
	pts := make([]mapgeom.Point, len(array))
	for i, e := range array {
		pts[i] = decodePosition(e)
	}
	return pts
}

// decodeRing decodes one polygon ring into the open representation.
func decodeRing(v interface{}) *mapgeom.Ring {
	return mapgeom.NewRing(decodePositions(v)...)
}

// decodePolygon decodes a polygon's ring list: the first ring is the
// outer boundary and the rest are its holes. A hole-free polygon
// decodes to a bare Ring.
func decodePolygon(v interface{}) mapgeom.Geometry {
	array := decodeArray(v)
	if len(array) == 0 {
		panic(&InvalidGeometryError{})
	}
	outer := decodeRing(array[0])
	if len(array) == 1 {
		return outer
	}
	pg := &mapgeom.Polygon{Ring: *outer}
	for _, e := range array[1:] {
		pg.Holes = append(pg.Holes, decodeRing(e))
	}
	return pg
}

func doFromGeoJSON(g *Geometry) mapgeom.Geometry {
	switch g.Type {
	case "Point":
		return mapgeom.NewPointSet(decodePosition(g.Coordinates))
	case "MultiPoint":
		return mapgeom.NewPointSet(decodePositions(g.Coordinates)...)
	case "LineString":
		return mapgeom.NewLineString(decodePositions(g.Coordinates)...)
	case "MultiLineString":
		array := decodeArray(g.Coordinates)
		if len(array) == 0 {
			panic(&InvalidGeometryError{})
		}
		if len(array) == 1 {
			return mapgeom.NewLineString(decodePositions(array[0])...)
		}
		m := new(mapgeom.MultiGeometry)
		for _, e := range array {
			m.Append(mapgeom.NewLineString(decodePositions(e)...))
		}
		return m
	case "Polygon":
		return decodePolygon(g.Coordinates)
	case "MultiPolygon":
		array := decodeArray(g.Coordinates)
		if len(array) == 0 {
			panic(&InvalidGeometryError{})
		}
		if len(array) == 1 {
			return decodePolygon(array[0])
		}
		m := new(mapgeom.MultiGeometry)
		for _, e := range array {
			m.Append(decodePolygon(e))
		}
		return m
	case "GeometryCollection":
		m := new(mapgeom.MultiGeometry)
		for _, member := range g.Geometries {
			m.Append(doFromGeoJSON(member))
		}
		return m
	default:
		panic(&UnsupportedGeometryError{g.Type})
	}
}

// FromGeoJSON converts a GeoJSON document object into a geometry. The
// simplest variant that holds the data is used: a hole-free polygon
// becomes a Ring, and a one-element MultiLineString or MultiPolygon
// collapses to its element.
func FromGeoJSON(doc *Geometry) (g mapgeom.Geometry, err error) {
	defer func() {
		if e := recover(); e != nil {
			g = nil
			err = e.(error)
		}
	}()
	return doFromGeoJSON(doc), nil
}

// Decode decodes a GeoJSON geometry document.
func Decode(data []byte) (mapgeom.Geometry, error) {
	var doc Geometry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromGeoJSON(&doc)
}
