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

// Package geojson encodes and decodes geometries as GeoJSON documents.
// Positions are written with three elements so that z coordinates
// survive a round trip; two-element positions read back with a zero z.
// Polygon rings are written in the closed form the format requires and
// come back in the open form the geometry model uses.
package geojson

// Geometry is the document form of a single GeoJSON geometry object.
// Coordinates holds the nested position arrays of the simple types;
// Geometries holds the members of a GeometryCollection.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates,omitempty"`
	Geometries  []*Geometry `json:"geometries,omitempty"`
}

// InvalidGeometryError is returned when a document's structure does not
// form a geometry: a missing or ragged coordinate array, a position
// with the wrong number of elements, or an empty coordinate list.
type InvalidGeometryError struct{}

func (e InvalidGeometryError) Error() string {
	return "geojson: invalid geometry"
}

// UnsupportedGeometryError is returned when a document or a geometry
// has a type this package cannot represent.
type UnsupportedGeometryError struct {
	Type string
}

func (e UnsupportedGeometryError) Error() string {
	return "geojson: unsupported geometry type " + e.Type
}
