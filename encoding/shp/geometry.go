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

package shp

import (
	"fmt"
	"math"

	"github.com/jonas-p/go-shp"
	"github.com/spatialmodel/mapgeom"
)

// shapeGeometry converts a shapefile shape to a geometry. Null shapes
// convert to a nil geometry.
func shapeGeometry(s shp.Shape) (mapgeom.Geometry, error) {
	switch t := s.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return mapgeom.NewPointSet(mapgeom.Point{X: t.X, Y: t.Y}), nil
	case *shp.PointM:
		return mapgeom.NewPointSet(mapgeom.Point{X: t.X, Y: t.Y}), nil
	case *shp.PointZ:
		return mapgeom.NewPointSet(mapgeom.Point{X: t.X, Y: t.Y, Z: t.Z}), nil
	case *shp.MultiPoint:
		return mapgeom.NewPointSet(points(t.Points, nil)...), nil
	case *shp.MultiPointM:
		return mapgeom.NewPointSet(points(t.Points, nil)...), nil
	case *shp.MultiPointZ:
		return mapgeom.NewPointSet(points(t.Points, t.ZArray)...), nil
	case *shp.PolyLine:
		return lineGeometry(partPoints(t.Parts, t.Points, nil)), nil
	case *shp.PolyLineM:
		return lineGeometry(partPoints(t.Parts, t.Points, nil)), nil
	case *shp.PolyLineZ:
		return lineGeometry(partPoints(t.Parts, t.Points, t.ZArray)), nil
	case *shp.Polygon:
		return ringGeometry(partPoints(t.Parts, t.Points, nil)), nil
	case *shp.PolygonM:
		return ringGeometry(partPoints(t.Parts, t.Points, nil)), nil
	case *shp.PolygonZ:
		return ringGeometry(partPoints(t.Parts, t.Points, t.ZArray)), nil
	default:
		return nil, fmt.Errorf("shp: unsupported shape type %T", s)
	}
}

// points converts shapefile points, taking z values from the parallel
// array the Z shape types carry.
func points(pts []shp.Point, z []float64) []mapgeom.Point {
	out := make([]mapgeom.Point, len(pts))
	for i, p := range pts {
		out[i] = mapgeom.Point{X: p.X, Y: p.Y}
		if i < len(z) {
			out[i].Z = z[i]
		}
	}
	return out
}

// partPoints splits the flat point array of a multi-part shape into
// its parts.
func partPoints(parts []int32, pts []shp.Point, z []float64) [][]mapgeom.Point {
	out := make([][]mapgeom.Point, len(parts))
	for i := range parts {
		start := int(parts[i])
		end := len(pts)
		if i < len(parts)-1 {
			end = int(parts[i+1])
		}
		part := make([]mapgeom.Point, end-start)
		for j := start; j < end; j++ {
			part[j-start] = mapgeom.Point{X: pts[j].X, Y: pts[j].Y}
			if j < len(z) {
				part[j-start].Z = z[j]
			}
		}
		out[i] = part
	}
	return out
}

// lineGeometry builds the simplest line variant holding parts.
func lineGeometry(parts [][]mapgeom.Point) mapgeom.Geometry {
	if len(parts) == 1 {
		return mapgeom.NewLineString(parts[0]...)
	}
	m := new(mapgeom.MultiGeometry)
	for _, p := range parts {
		m.Append(mapgeom.NewLineString(p...))
	}
	return m
}

// ringGeometry assembles polygon parts into rings. Shapefiles wind
// outer rings clockwise and holes counterclockwise, the reverse of the
// convention used here, so every ring's winding is flipped before the
// rings are matched up.
func ringGeometry(parts [][]mapgeom.Point) mapgeom.Geometry {
	rings := make([]*mapgeom.Ring, len(parts))
	for i, p := range parts {
		r := mapgeom.NewRing(p...)
		switch r.Orientation() {
		case mapgeom.CW:
			r.Rewind(mapgeom.CCW)
		case mapgeom.CCW:
			r.Rewind(mapgeom.CW)
		}
		rings[i] = r
	}
	return mapgeom.AssembleRings(rings)
}

// shapeTypeOf returns the shapefile shape type that stores g: POINTZ
// for a single point, MULTIPOINTZ for several, POLYLINEZ for line
// strings, and POLYGONZ for rings and polygons. Mixed collections have
// no shapefile representation.
func shapeTypeOf(g mapgeom.Geometry) (shp.ShapeType, error) {
	switch t := g.(type) {
	case *mapgeom.PointSet:
		if len(t.Path) == 1 {
			return shp.POINTZ, nil
		}
		return shp.MULTIPOINTZ, nil
	case *mapgeom.LineString:
		return shp.POLYLINEZ, nil
	case *mapgeom.Ring, *mapgeom.Polygon:
		return shp.POLYGONZ, nil
	case *mapgeom.MultiGeometry:
		switch t.ComponentType() {
		case mapgeom.PointSetType:
			return shp.MULTIPOINTZ, nil
		case mapgeom.LineStringType:
			return shp.POLYLINEZ, nil
		case mapgeom.RingType, mapgeom.PolygonType:
			return shp.POLYGONZ, nil
		}
		return shp.NULL, fmt.Errorf("shp: cannot store a mixed geometry collection in a shapefile")
	default:
		return shp.NULL, fmt.Errorf("shp: unsupported geometry type %T", g)
	}
}

// geometryShape converts a geometry to its shapefile shape.
func geometryShape(g mapgeom.Geometry) (shp.Shape, error) {
	switch t := g.(type) {
	case *mapgeom.PointSet:
		if len(t.Path) == 1 {
			p := t.Path[0]
			return &shp.PointZ{X: p.X, Y: p.Y, Z: p.Z}, nil
		}
		return multiPointShape(t.Path), nil
	case *mapgeom.LineString:
		return polyLineShape([][]mapgeom.Point{t.Path}), nil
	case *mapgeom.Ring, *mapgeom.Polygon:
		parts, err := polygonParts(g)
		if err != nil {
			return nil, err
		}
		return polygonShape(parts), nil
	case *mapgeom.MultiGeometry:
		switch t.ComponentType() {
		case mapgeom.PointSetType:
			var pts []mapgeom.Point
			for _, p := range t.Parts {
				pts = append(pts, p.(*mapgeom.PointSet).Path...)
			}
			return multiPointShape(pts), nil
		case mapgeom.LineStringType:
			parts := make([][]mapgeom.Point, len(t.Parts))
			for i, p := range t.Parts {
				parts[i] = p.(*mapgeom.LineString).Path
			}
			return polyLineShape(parts), nil
		case mapgeom.RingType, mapgeom.PolygonType:
			parts, err := polygonParts(t)
			if err != nil {
				return nil, err
			}
			return polygonShape(parts), nil
		}
		return nil, fmt.Errorf("shp: cannot store a mixed geometry collection in a shapefile")
	default:
		return nil, fmt.Errorf("shp: unsupported geometry type %T", g)
	}
}

// fileRing returns the closed vertex sequence storing one polygon
// ring, wound the way shapefiles expect: clockwise for outer rings and
// counterclockwise for holes. The source ring is left untouched.
func fileRing(r *mapgeom.Ring, hole bool) []mapgeom.Point {
	rc := r.Clone().(*mapgeom.Ring)
	if hole {
		rc.Rewind(mapgeom.CCW)
	} else {
		rc.Rewind(mapgeom.CW)
	}
	rc.Close()
	return rc.Path
}

// polygonParts flattens an area geometry into shapefile ring parts.
func polygonParts(g mapgeom.Geometry) ([][]mapgeom.Point, error) {
	switch t := g.(type) {
	case *mapgeom.Ring:
		return [][]mapgeom.Point{fileRing(t, false)}, nil
	case *mapgeom.Polygon:
		parts := [][]mapgeom.Point{fileRing(&t.Ring, false)}
		for _, h := range t.Holes {
			parts = append(parts, fileRing(h, true))
		}
		return parts, nil
	case *mapgeom.MultiGeometry:
		var parts [][]mapgeom.Point
		for _, p := range t.Parts {
			pp, err := polygonParts(p)
			if err != nil {
				return nil, err
			}
			parts = append(parts, pp...)
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("shp: unsupported geometry type %T", g)
	}
}

func polyLineShape(parts [][]mapgeom.Point) *shp.PolyLineZ {
	return newPolyLineZ(parts)
}

func polygonShape(parts [][]mapgeom.Point) *shp.PolygonZ {
	p := shp.PolygonZ(*newPolyLineZ(parts))
	return &p
}

// newPolyLineZ assembles the flat multi-part representation shared by
// the polyline and polygon shapes.
func newPolyLineZ(parts [][]mapgeom.Point) *shp.PolyLineZ {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	l := &shp.PolyLineZ{
		NumParts:  int32(len(parts)),
		NumPoints: int32(n),
		Parts:     make([]int32, len(parts)),
		Points:    make([]shp.Point, 0, n),
		ZArray:    make([]float64, 0, n),
		MArray:    make([]float64, n),
	}
	for i, p := range parts {
		l.Parts[i] = int32(len(l.Points))
		for _, pt := range p {
			l.Points = append(l.Points, shp.Point{X: pt.X, Y: pt.Y})
			l.ZArray = append(l.ZArray, pt.Z)
		}
	}
	l.Box = box(l.Points)
	l.ZRange = valueRange(l.ZArray)
	l.MRange = valueRange(l.MArray)
	return l
}

func multiPointShape(pts []mapgeom.Point) *shp.MultiPointZ {
	mp := new(shp.MultiPointZ)
	mp.NumPoints = int32(len(pts))
	mp.Points = make([]shp.Point, len(pts))
	mp.ZArray = make([]float64, len(pts))
	mp.MArray = make([]float64, len(pts))
	for i, p := range pts {
		mp.Points[i] = shp.Point{X: p.X, Y: p.Y}
		mp.ZArray[i] = p.Z
	}
	mp.Box = box(mp.Points)
	mp.ZRange = valueRange(mp.ZArray)
	mp.MRange = valueRange(mp.MArray)
	return mp
}

func box(pts []shp.Point) shp.Box {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return shp.Box{minX, minY, maxX, maxY}
}

func valueRange(a []float64) [2]float64 {
	out := [2]float64{math.Inf(1), math.Inf(-1)}
	for _, v := range a {
		if v < out[0] {
			out[0] = v
		}
		if v > out[1] {
			out[1] = v
		}
	}
	return out
}
