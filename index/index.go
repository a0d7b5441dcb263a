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

// Package index provides a spatial feature index over geometries so
// that bounds and point queries against a large feature set do not
// scan every feature.
package index

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/spatialmodel/mapgeom"
)

// Feature is one indexed geometry together with the data it was
// inserted with.
type Feature struct {
	Geometry mapgeom.Geometry
	Data     interface{}

	bounds *geom.Bounds
}

// Bounds returns the feature's planar extent at insertion time. It
// implements rtree.Spatial.
func (f *Feature) Bounds() *geom.Bounds {
	return f.bounds
}

// Index is an R-tree feature index. Features are matched by the bounds
// they had when inserted: mutating an indexed geometry afterwards
// leaves the index stale.
type Index struct {
	tree     *rtree.Rtree
	features []*Feature
}

// New creates an empty index.
func New() *Index {
	return &Index{tree: rtree.NewTree(25, 50)}
}

// Insert adds g to the index with its attached data.
func (ix *Index) Insert(g mapgeom.Geometry, data interface{}) error {
	if g == nil || !g.Valid() {
		return fmt.Errorf("index: cannot insert an invalid geometry")
	}
	f := &Feature{Geometry: g, Data: data, bounds: planarBounds(g.Bounds())}
	ix.tree.Insert(f)
	ix.features = append(ix.features, f)
	return nil
}

// Len returns the number of indexed features.
func (ix *Index) Len() int {
	return len(ix.features)
}

// Features returns the indexed features in insertion order.
func (ix *Index) Features() []*Feature {
	return ix.features
}

// SearchBounds returns the features whose bounds overlap b, in no
// particular order.
func (ix *Index) SearchBounds(b *mapgeom.Bounds) []*Feature {
	if b == nil || b.Empty() {
		return nil
	}
	hits := ix.tree.SearchIntersect(planarBounds(b))
	out := make([]*Feature, len(hits))
	for i, h := range hits {
		out[i] = h.(*Feature)
	}
	return out
}

// At returns the features whose area contains the xy point (x, y). The
// bounds candidates from the tree are refined by containment: a ring
// or polygon matches if it contains the point, holes excluded, and a
// collection matches if any of its area parts does. Point and line
// features have no area and never match.
func (ix *Index) At(x, y float64) []*Feature {
	var out []*Feature
	for _, f := range ix.SearchBounds(mapgeom.NewBoundsPoint(mapgeom.Point{X: x, Y: y})) {
		if containsPoint(f.Geometry, x, y) {
			out = append(out, f)
		}
	}
	return out
}

func containsPoint(g mapgeom.Geometry, x, y float64) bool {
	it := mapgeom.NewIterator(g, false)
	for it.HasMore() {
		switch t := it.Next().(type) {
		case *mapgeom.Ring:
			if t.Contains2D(x, y) {
				return true
			}
		case *mapgeom.Polygon:
			if t.Contains2DWithHoles(x, y) {
				return true
			}
		}
	}
	return false
}

func planarBounds(b *mapgeom.Bounds) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: b.Min.X, Y: b.Min.Y},
		Max: geom.Point{X: b.Max.X, Y: b.Max.Y},
	}
}
