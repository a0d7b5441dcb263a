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
	"fmt"

	"github.com/ctessum/geom"
)

// ToGeom converts g to the equivalent github.com/ctessum/geom type:
// a one-point PointSet becomes a Point and a larger one a MultiPoint,
// a LineString becomes a LineString, a Ring or Polygon becomes a
// Polygon with explicitly closed rings, and a MultiGeometry becomes a
// MultiPoint, MultiLineString, or MultiPolygon when its parts allow,
// or otherwise a GeometryCollection. Z coordinates are dropped; the
// target model is strictly two-dimensional.
func ToGeom(g Geometry) (geom.Geom, error) {
	switch v := g.(type) {
	case *PointSet:
		if len(v.Path) == 1 {
			return geom.Point{X: v.Path[0].X, Y: v.Path[0].Y}, nil
		}
		return geom.MultiPoint(xyPoints(v.Path)), nil
	case *LineString:
		return geom.LineString(xyPoints(v.Path)), nil
	case *Ring:
		return geom.Polygon{closedXYRing(v.Path)}, nil
	case *Polygon:
		return toGeomPolygon(v), nil
	case *MultiGeometry:
		return toGeomMulti(v)
	}
	return nil, fmt.Errorf("mapgeom: cannot convert geometry type %T", g)
}

func toGeomPolygon(pg *Polygon) geom.Polygon {
	o := geom.Polygon{closedXYRing(pg.Ring.Path)}
	for _, h := range pg.Holes {
		o = append(o, closedXYRing(h.Path))
	}
	return o
}

func toGeomMulti(m *MultiGeometry) (geom.Geom, error) {
	switch m.ComponentType() {
	case PointSetType:
		var o geom.MultiPoint
		for _, p := range m.Parts {
			o = append(o, xyPoints(p.(*PointSet).Path)...)
		}
		return o, nil
	case LineStringType:
		o := make(geom.MultiLineString, len(m.Parts))
		for i, p := range m.Parts {
			o[i] = geom.LineString(xyPoints(p.(*LineString).Path))
		}
		return o, nil
	case RingType:
		o := make(geom.MultiPolygon, len(m.Parts))
		for i, p := range m.Parts {
			o[i] = geom.Polygon{closedXYRing(p.(*Ring).Path)}
		}
		return o, nil
	case PolygonType:
		o := make(geom.MultiPolygon, len(m.Parts))
		for i, p := range m.Parts {
			o[i] = toGeomPolygon(p.(*Polygon))
		}
		return o, nil
	}
	o := make(geom.GeometryCollection, len(m.Parts))
	for i, p := range m.Parts {
		var err error
		if o[i], err = ToGeom(p); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// FromGeom converts a github.com/ctessum/geom geometry back into this
// package's model, inverting ToGeom: pointlike types become a PointSet,
// a Polygon's rings are reassembled into boundaries and holes by
// winding (see AssembleRings), and the closing vertex of each ring is
// stripped. The simplest type that holds the data is used: a hole-free
// polygon becomes a Ring and a one-element MultiLineString or
// MultiPolygon collapses to its element. An empty polygon or multi
// geometry becomes an empty (invalid) MultiGeometry. Z coordinates
// come back as zero.
func FromGeom(g geom.Geom) (Geometry, error) {
	switch v := g.(type) {
	case geom.Point:
		return NewPointSet(Point{X: v.X, Y: v.Y}), nil
	case geom.MultiPoint:
		return &PointSet{Path: zPoints(v)}, nil
	case geom.LineString:
		return &LineString{Path: zPoints(v)}, nil
	case geom.Polygon:
		return fromGeomPolygon(v)
	case geom.MultiLineString:
		if len(v) == 1 {
			return &LineString{Path: zPoints(v[0])}, nil
		}
		m := new(MultiGeometry)
		for _, l := range v {
			m.Append(&LineString{Path: zPoints(l)})
		}
		return m, nil
	case geom.MultiPolygon:
		if len(v) == 1 {
			return fromGeomPolygon(v[0])
		}
		m := new(MultiGeometry)
		for _, p := range v {
			pg, err := fromGeomPolygon(p)
			if err != nil {
				return nil, err
			}
			m.Append(pg)
		}
		return m, nil
	case geom.GeometryCollection:
		m := new(MultiGeometry)
		for _, gg := range v {
			p, err := FromGeom(gg)
			if err != nil {
				return nil, err
			}
			m.Append(p)
		}
		return m, nil
	}
	return nil, fmt.Errorf("mapgeom: cannot convert geometry type %T", g)
}

// fromGeomPolygon rebuilds the model form of a flat ring list. The
// source may hold several separate areas in one polygon: engine output
// marks boundaries counterclockwise and holes clockwise, so the rings
// are partitioned by winding, and each hole attaches to the boundary
// that encloses it.
func fromGeomPolygon(p geom.Polygon) (Geometry, error) {
	rings := make([]*Ring, len(p))
	for i, r := range p {
		rings[i] = &Ring{Path: zPoints(r)}
		rings[i].Open()
	}
	return AssembleRings(rings), nil
}

// xyPoints projects a path onto the XY plane.
func xyPoints(p Path) []geom.Point {
	o := make([]geom.Point, len(p))
	for i, pt := range p {
		o[i] = geom.Point{X: pt.X, Y: pt.Y}
	}
	return o
}

// closedXYRing projects a ring path onto the XY plane and closes it as
// per the OGC convention, leaving the input untouched.
func closedXYRing(p Path) []geom.Point {
	o := xyPoints(p)
	if len(o) > 0 && !o[0].Equals(o[len(o)-1]) {
		o = append(o, o[0])
	}
	return o
}

// zPoints lifts planar points into the model, with zero Z.
func zPoints(pts []geom.Point) Path {
	o := make(Path, len(pts))
	for i, pt := range pts {
		o[i] = Point{X: pt.X, Y: pt.Y}
	}
	return o
}
