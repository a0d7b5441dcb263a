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

/*
Package op performs spatial operations on mapgeom geometries: buffering,
cropping, and boolean overlays. The operations are strictly planar;
Z coordinates do not take part and do not survive into results.
*/
package op

import (
	"fmt"

	"github.com/ctessum/geom"

	"github.com/spatialmodel/mapgeom"
)

// ErrEngineUnavailable is returned by every operation of an Operator
// that has no computation engine.
var ErrEngineUnavailable = fmt.Errorf("op: no spatial operation engine is configured")

// An Operator applies spatial operations to geometries by delegating
// the planar computation to an Engine. Operands are never modified:
// each operation works on copies shifted close to the origin for
// numerical stability, and shifts its result back afterwards.
type Operator struct {
	engine Engine
}

// New returns an Operator backed by engine. With a nil engine the
// Operator is still usable but every operation fails with
// ErrEngineUnavailable.
func New(engine Engine) *Operator {
	return &Operator{engine: engine}
}

// NewDefault returns an Operator backed by the built-in planar engine.
func NewDefault() *Operator {
	return New(clipperEngine{})
}

// Default is the Operator used by the package-level operation
// functions.
var Default = NewDefault()

// Buffer runs Operator.Buffer on the Default operator.
func Buffer(g mapgeom.Geometry, distance float64, p BufferParams) (mapgeom.Geometry, error) {
	return Default.Buffer(g, distance, p)
}

// Crop runs Operator.Crop on the Default operator.
func Crop(g mapgeom.Geometry, window *mapgeom.Polygon) (mapgeom.Geometry, error) {
	return Default.Crop(g, window)
}

// CropBounds runs Operator.CropBounds on the Default operator.
func CropBounds(g mapgeom.Geometry, b *mapgeom.Bounds) (mapgeom.Geometry, error) {
	return Default.CropBounds(g, b)
}

// Union runs Operator.Union on the Default operator.
func Union(a, b mapgeom.Geometry) (mapgeom.Geometry, error) {
	return Default.Union(a, b)
}

// Difference runs Operator.Difference on the Default operator.
func Difference(a, b mapgeom.Geometry) (mapgeom.Geometry, error) {
	return Default.Difference(a, b)
}

// Intersects runs Operator.Intersects on the Default operator.
func Intersects(a, b mapgeom.Geometry) (bool, error) {
	return Default.Intersects(a, b)
}

// Available reports whether this Operator has a computation engine.
// The answer is a static configuration fact; it never changes over the
// life of the Operator.
func (o *Operator) Available() bool {
	return o != nil && o.engine != nil
}

// check validates the common preconditions of every operation.
func (o *Operator) check(gs ...mapgeom.Geometry) error {
	if !o.Available() {
		return ErrEngineUnavailable
	}
	for _, g := range gs {
		if g == nil {
			return fmt.Errorf("op: nil geometry operand")
		}
		if !g.Valid() {
			return fmt.Errorf("op: invalid %v operand", g.Type())
		}
	}
	return nil
}

// Buffer returns the region within distance of g, shaped by p. A
// negative distance shrinks an area geometry; shrinking a geometry with
// no area is an error. A zero distance returns a copy of g.
func (o *Operator) Buffer(g mapgeom.Geometry, distance float64, p BufferParams) (mapgeom.Geometry, error) {
	if err := o.check(g); err != nil {
		return nil, err
	}
	gc := g.Clone()
	if distance == 0 && !p.SingleSided {
		return gc, nil
	}
	off := gc.Localize()
	gg, err := mapgeom.ToGeom(gc)
	if err != nil {
		return nil, err
	}
	gr, err := o.engine.Offset(gg, distance, p)
	if err != nil {
		return nil, err
	}
	return o.finish(gr, off)
}

// Crop returns the part of g inside window. Lines and areas are cut at
// the window boundary; points of a PointSet are kept or dropped whole,
// honoring the window's holes.
func (o *Operator) Crop(g mapgeom.Geometry, window *mapgeom.Polygon) (mapgeom.Geometry, error) {
	if window == nil {
		return nil, fmt.Errorf("op: nil crop window")
	}
	if err := o.check(g, window); err != nil {
		return nil, err
	}
	gc := g.Clone()
	off := gc.Localize()
	wc := window.Clone().(*mapgeom.Polygon)
	wc.Delocalize(neg(off))
	gw, err := mapgeom.ToGeom(wc)
	if err != nil {
		return nil, err
	}
	res, err := o.cropPart(gc, wc, gw)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return new(mapgeom.MultiGeometry), nil
	}
	res.Delocalize(off)
	return res, nil
}

// CropBounds returns the part of g inside the rectangle b.
func (o *Operator) CropBounds(g mapgeom.Geometry, b *mapgeom.Bounds) (mapgeom.Geometry, error) {
	if b == nil || b.Empty() {
		return nil, fmt.Errorf("op: empty crop bounds")
	}
	return o.Crop(g, b.Polygon())
}

// cropPart crops one geometry against the already localized window,
// returning nil for an empty result.
func (o *Operator) cropPart(g mapgeom.Geometry, w *mapgeom.Polygon, gw geom.Geom) (mapgeom.Geometry, error) {
	switch v := g.(type) {
	case *mapgeom.PointSet:
		var kept mapgeom.Path
		for _, pt := range v.Path {
			if w.Contains2DWithHoles(pt.X, pt.Y) {
				kept = append(kept, pt)
			}
		}
		if len(kept) == 0 {
			return nil, nil
		}
		return &mapgeom.PointSet{Path: kept}, nil
	case *mapgeom.MultiGeometry:
		out := new(mapgeom.MultiGeometry)
		for _, part := range v.Parts {
			r, err := o.cropPart(part, w, gw)
			if err != nil {
				return nil, err
			}
			if r != nil {
				out.Append(r)
			}
		}
		switch len(out.Parts) {
		case 0:
			return nil, nil
		case 1:
			return out.Parts[0], nil
		}
		return out, nil
	}
	gg, err := mapgeom.ToGeom(g)
	if err != nil {
		return nil, err
	}
	gr, err := o.engine.Construct(gg, gw, OpIntersection)
	if err != nil {
		return nil, err
	}
	if emptyResult(gr) {
		return nil, nil
	}
	return mapgeom.FromGeom(gr)
}

// Union returns the combination of a and b.
func (o *Operator) Union(a, b mapgeom.Geometry) (mapgeom.Geometry, error) {
	return o.construct(a, b, OpUnion)
}

// Difference returns the part of a not covered by b.
func (o *Operator) Difference(a, b mapgeom.Geometry) (mapgeom.Geometry, error) {
	return o.construct(a, b, OpDifference)
}

func (o *Operator) construct(a, b mapgeom.Geometry, operation Op) (mapgeom.Geometry, error) {
	if err := o.check(a, b); err != nil {
		return nil, err
	}
	if pointlike(a) || pointlike(b) {
		return nil, fmt.Errorf("op: %v requires geometries with length or area", operation)
	}
	ac, bc := a.Clone(), b.Clone()
	off := ac.Localize()
	bc.Delocalize(neg(off))
	ga, err := mapgeom.ToGeom(ac)
	if err != nil {
		return nil, err
	}
	gb, err := mapgeom.ToGeom(bc)
	if err != nil {
		return nil, err
	}
	gr, err := o.engine.Construct(ga, gb, operation)
	if err != nil {
		return nil, err
	}
	return o.finish(gr, off)
}

// Intersects reports whether a and b share any region of the plane.
// Points intersect an area geometry when they lie inside it (honoring
// polygon holes), and another point geometry when the two share a
// point; a point lying on a line does not count as an intersection.
func (o *Operator) Intersects(a, b mapgeom.Geometry) (bool, error) {
	if err := o.check(a, b); err != nil {
		return false, err
	}
	if !a.Bounds().Overlaps(b.Bounds()) {
		return false, nil
	}
	// Point parts settle by containment, without the engine.
	pa, pb := collectPoints(a), collectPoints(b)
	if anyPointWithin(pa, b) || anyPointWithin(pb, a) {
		return true, nil
	}
	if sharedPoint(pa, pb) {
		return true, nil
	}
	ac, bc := withoutPoints(a), withoutPoints(b)
	if ac == nil || bc == nil {
		return false, nil
	}
	off := ac.Localize()
	bc.Delocalize(neg(off))
	ga, err := mapgeom.ToGeom(ac)
	if err != nil {
		return false, err
	}
	gb, err := mapgeom.ToGeom(bc)
	if err != nil {
		return false, err
	}
	gr, err := o.engine.Construct(ga, gb, OpIntersection)
	if err != nil {
		return false, err
	}
	return !emptyResult(gr), nil
}

// finish converts an engine result back into the geometry model and
// shifts it back to the operands' origin. An empty result becomes an
// empty MultiGeometry.
func (o *Operator) finish(gr geom.Geom, off mapgeom.Point) (mapgeom.Geometry, error) {
	if emptyResult(gr) {
		return new(mapgeom.MultiGeometry), nil
	}
	res, err := mapgeom.FromGeom(gr)
	if err != nil {
		return nil, err
	}
	res.Delocalize(off)
	return res, nil
}

func neg(p mapgeom.Point) mapgeom.Point {
	return mapgeom.Point{X: -p.X, Y: -p.Y, Z: -p.Z}
}

func emptyResult(g geom.Geom) bool {
	switch v := g.(type) {
	case nil:
		return true
	case geom.Polygon:
		return len(v) == 0
	case geom.MultiPolygon:
		return len(v) == 0
	case geom.MultiLineString:
		return len(v) == 0
	case geom.MultiPoint:
		return len(v) == 0
	case geom.GeometryCollection:
		return len(v) == 0
	}
	return false
}

// pointlike reports whether g is or contains a PointSet.
func pointlike(g mapgeom.Geometry) bool {
	if g.Type() == mapgeom.PointSetType {
		return true
	}
	if m, ok := g.(*mapgeom.MultiGeometry); ok {
		for _, p := range m.Parts {
			if pointlike(p) {
				return true
			}
		}
	}
	return false
}

// collectPoints gathers the points of every PointSet leaf in g.
func collectPoints(g mapgeom.Geometry) mapgeom.Path {
	var pts mapgeom.Path
	it := mapgeom.NewIterator(g, false)
	for it.HasMore() {
		if ps, ok := it.Next().(*mapgeom.PointSet); ok {
			pts = append(pts, ps.Path...)
		}
	}
	return pts
}

// anyPointWithin reports whether any of pts lies inside an area leaf
// of g.
func anyPointWithin(pts mapgeom.Path, g mapgeom.Geometry) bool {
	if len(pts) == 0 {
		return false
	}
	it := mapgeom.NewIterator(g, false)
	for it.HasMore() {
		switch leaf := it.Next().(type) {
		case *mapgeom.Ring:
			for _, pt := range pts {
				if leaf.Contains2D(pt.X, pt.Y) {
					return true
				}
			}
		case *mapgeom.Polygon:
			for _, pt := range pts {
				if leaf.Contains2DWithHoles(pt.X, pt.Y) {
					return true
				}
			}
		}
	}
	return false
}

// sharedPoint reports whether the two point sets have a location in
// common.
func sharedPoint(a, b mapgeom.Path) bool {
	for _, pa := range a {
		for _, pb := range b {
			if pa.X == pb.X && pa.Y == pb.Y {
				return true
			}
		}
	}
	return false
}

// withoutPoints returns a copy of g with its PointSet parts removed,
// or nil if nothing remains.
func withoutPoints(g mapgeom.Geometry) mapgeom.Geometry {
	switch v := g.(type) {
	case *mapgeom.PointSet:
		return nil
	case *mapgeom.MultiGeometry:
		out := new(mapgeom.MultiGeometry)
		for _, p := range v.Parts {
			if p.Type() != mapgeom.PointSetType {
				out.Append(p.Clone())
			}
		}
		if len(out.Parts) == 0 {
			return nil
		}
		return out
	}
	return g.Clone()
}
