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
	"fmt"
	"math"

	"github.com/ctessum/geom"
	geomop "github.com/ctessum/geom/op"
	clipper "github.com/ctessum/go.clipper"
)

// Op identifies a boolean overlay operation.
type Op int

const (
	OpIntersection Op = iota
	OpUnion
	OpDifference
)

func (o Op) String() string {
	switch o {
	case OpIntersection:
		return "intersection"
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	}
	return "unknown"
}

// An Engine performs the planar computations behind an Operator.
// Implementations work on two-dimensional geometries whose coordinates
// have already been shifted close to the origin.
type Engine interface {
	// Construct computes the boolean combination a <o> b. Both
	// operands must be line or area geometries. A nil or empty result
	// means the combination is empty.
	Construct(a, b geom.Geom, o Op) (geom.Geom, error)

	// Offset computes the region within distance of g, shaped by p.
	// A negative distance shrinks an area geometry. A zero distance
	// returns g unchanged.
	Offset(g geom.Geom, distance float64, p BufferParams) (geom.Geom, error)
}

// clipperScale converts between floating point coordinates and the
// integer grid the offset engine computes on: one grid step is 1e-6
// coordinate units.
const clipperScale = 1e6

const defaultCornerSegs = 8

// clipperEngine is the built-in Engine. Boolean overlays use the
// Martínez polygon clipping implementation in github.com/ctessum/geom/op
// and offsetting uses the Vatti clipping implementation in
// github.com/ctessum/go.clipper.
type clipperEngine struct{}

func (clipperEngine) Construct(a, b geom.Geom, o Op) (geom.Geom, error) {
	var gop geomop.Op
	switch o {
	case OpIntersection:
		gop = geomop.INTERSECTION
	case OpUnion:
		gop = geomop.UNION
	case OpDifference:
		gop = geomop.DIFFERENCE
	default:
		return nil, fmt.Errorf("op: unsupported overlay operation %v", o)
	}
	return geomop.Construct(a, b, gop)
}

func (e clipperEngine) Offset(g geom.Geom, distance float64, p BufferParams) (geom.Geom, error) {
	if p.SingleSided {
		return e.singleSided(g, distance, p)
	}
	if distance == 0 {
		return g, nil
	}
	closed, open, err := toClipperPaths(g)
	if err != nil {
		return nil, err
	}
	if len(closed) == 0 && len(open) == 0 {
		return geom.Polygon{}, nil
	}
	if distance < 0 && len(open) > 0 {
		return nil, fmt.Errorf("op: cannot shrink a geometry that has no area")
	}
	delta := distance * clipperScale
	co := clipper.NewClipperOffset()
	co.ArcTolerance = arcTolerance(delta, p.CornerSegs)
	co.AddPaths(closed, joinType(p.Join), clipper.EtClosedPolygon)
	for _, pth := range open {
		if len(pth) == 1 {
			// A lone point dilates into a circle or square around
			// itself; the cap style decides which.
			co.AddPath(pth, pointJoinType(p.Cap), clipper.EtOpenRound)
			continue
		}
		co.AddPath(pth, joinType(p.Join), capEndType(p.Cap))
	}
	return fromClipperPaths(co.Execute(delta))
}

// singleSided buffers each line on one side only. The full butt-capped
// band around the line is split in two with a thin sliver along the
// line itself, and the half on the requested side is kept.
func (e clipperEngine) singleSided(g geom.Geom, distance float64, p BufferParams) (geom.Geom, error) {
	lines, err := openLines(g)
	if err != nil {
		return nil, err
	}
	d := math.Abs(distance)
	delta := d * clipperScale
	var merged clipper.Paths
	for _, ln := range lines {
		probePt, err := sideProbe(ln, d, p.LeftSide)
		if err != nil {
			return nil, err
		}
		pth := toClipperPath(ln)

		co := clipper.NewClipperOffset()
		co.ArcTolerance = arcTolerance(delta, p.CornerSegs)
		co.AddPath(pth, joinType(p.Join), clipper.EtOpenButt)
		band := co.Execute(delta)

		// The splitter extends a little past the line ends so that it
		// severs the two sides from each other there.
		co = clipper.NewClipperOffset()
		co.AddPath(pth, clipper.JtMiter, clipper.EtOpenSquare)
		splitter := co.Execute(math.Max(delta*1e-3, 2))

		cl := clipper.NewClipper(clipper.IoNone)
		cl.AddPaths(band, clipper.PtSubject, true)
		cl.AddPaths(splitter, clipper.PtClip, true)
		halves, ok := cl.Execute1(clipper.CtDifference,
			clipper.PftPositive, clipper.PftPositive)
		if !ok {
			return nil, fmt.Errorf("op: buffer construction failed")
		}
		merged = append(merged, selectSide(halves, toIntPoint(probePt))...)
	}
	if len(merged) == 0 {
		return geom.Polygon{}, nil
	}
	cl := clipper.NewClipper(clipper.IoNone)
	cl.AddPaths(merged, clipper.PtSubject, true)
	sol, ok := cl.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil, fmt.Errorf("op: buffer construction failed")
	}
	return fromClipperPaths(sol)
}

// openLines collects the line strings in g, rejecting geometry kinds
// that have no single-sided buffer.
func openLines(g geom.Geom) ([]geom.LineString, error) {
	switch v := g.(type) {
	case geom.LineString:
		return []geom.LineString{v}, nil
	case geom.MultiLineString:
		return v, nil
	case geom.GeometryCollection:
		var out []geom.LineString
		for _, gg := range v {
			l, err := openLines(gg)
			if err != nil {
				return nil, err
			}
			out = append(out, l...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("op: single-sided buffering requires a line geometry, not %T", g)
}

// sideProbe returns a point half the buffer distance off the requested
// side of the line's first segment.
func sideProbe(ln geom.LineString, d float64, left bool) (geom.Point, error) {
	for i := 1; i < len(ln); i++ {
		dx, dy := ln[i].X-ln[i-1].X, ln[i].Y-ln[i-1].Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length, dx/length
		if !left {
			nx, ny = -nx, -ny
		}
		return geom.Point{
			X: (ln[i-1].X+ln[i].X)/2 + nx*d/2,
			Y: (ln[i-1].Y+ln[i].Y)/2 + ny*d/2,
		}, nil
	}
	return geom.Point{}, fmt.Errorf("op: cannot buffer a zero-length line")
}

// selectSide keeps the rings of the split band that enclose the probe
// point, along with their holes.
func selectSide(halves clipper.Paths, probe *clipper.IntPoint) clipper.Paths {
	var kept, outers clipper.Paths
	for _, r := range halves {
		if len(r) < 3 {
			continue
		}
		if pathArea(r) > 0 && pathContains(r, probe) {
			kept = append(kept, r)
			outers = append(outers, r)
		}
	}
	for _, r := range halves {
		if len(r) < 3 || pathArea(r) > 0 {
			continue
		}
		for _, o := range outers {
			if pathContains(o, r[0]) {
				kept = append(kept, r)
				break
			}
		}
	}
	return kept
}

func pathArea(p clipper.Path) float64 {
	var a float64
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a += (float64(p[j].X) + float64(p[i].X)) *
			(float64(p[i].Y) - float64(p[j].Y))
		j = i
	}
	return a / 2
}

func pathContains(p clipper.Path, pt *clipper.IntPoint) bool {
	x, y := float64(pt.X), float64(pt.Y)
	in := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		xi, yi := float64(p[i].X), float64(p[i].Y)
		xj, yj := float64(p[j].X), float64(p[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
		j = i
	}
	return in
}

// arcTolerance converts a segment count per quarter circle into the
// maximum deviation the offset engine allows between an arc and its
// polygonal approximation.
func arcTolerance(delta float64, segs int) float64 {
	if segs < 1 {
		segs = defaultCornerSegs
	}
	return math.Abs(delta) * (1 - math.Cos(math.Pi/float64(4*segs)))
}

func joinType(j JoinStyle) clipper.JoinType {
	switch j {
	case JoinMitre:
		return clipper.JtMiter
	case JoinBevel:
		return clipper.JtSquare
	}
	return clipper.JtRound
}

func capEndType(c CapStyle) clipper.EndType {
	switch c {
	case CapSquare:
		return clipper.EtOpenSquare
	case CapFlat:
		return clipper.EtOpenButt
	}
	return clipper.EtOpenRound
}

func pointJoinType(c CapStyle) clipper.JoinType {
	if c == CapSquare || c == CapFlat {
		return clipper.JtSquare
	}
	return clipper.JtRound
}

func toClipperPaths(g geom.Geom) (closed, open clipper.Paths, err error) {
	switch v := g.(type) {
	case geom.Point:
		open = append(open, clipper.Path{toIntPoint(v)})
	case geom.MultiPoint:
		for _, pt := range v {
			open = append(open, clipper.Path{toIntPoint(pt)})
		}
	case geom.LineString:
		open = append(open, toClipperPath(v))
	case geom.MultiLineString:
		for _, l := range v {
			open = append(open, toClipperPath(l))
		}
	case geom.Polygon:
		for _, r := range v {
			closed = append(closed, toClosedClipperPath(r))
		}
	case geom.MultiPolygon:
		for _, pg := range v {
			for _, r := range pg {
				closed = append(closed, toClosedClipperPath(r))
			}
		}
	case geom.GeometryCollection:
		for _, gg := range v {
			c, o, err2 := toClipperPaths(gg)
			if err2 != nil {
				return nil, nil, err2
			}
			closed = append(closed, c...)
			open = append(open, o...)
		}
	default:
		err = fmt.Errorf("op: unsupported geometry type %T", g)
	}
	return
}

// toClipperPath scales points onto the integer grid, dropping
// consecutive points that land on the same grid cell.
func toClipperPath(pts []geom.Point) clipper.Path {
	o := make(clipper.Path, 0, len(pts))
	for _, pt := range pts {
		ip := toIntPoint(pt)
		if n := len(o); n > 0 && o[n-1].Equals(ip) {
			continue
		}
		o = append(o, ip)
	}
	return o
}

// toClosedClipperPath additionally strips the closing vertex; closed
// paths on the integer grid leave it implicit.
func toClosedClipperPath(r []geom.Point) clipper.Path {
	o := toClipperPath(r)
	for len(o) > 1 && o[0].Equals(o[len(o)-1]) {
		o = o[:len(o)-1]
	}
	return o
}

func toIntPoint(pt geom.Point) *clipper.IntPoint {
	return clipper.NewIntPoint(roundCInt(pt.X*clipperScale), roundCInt(pt.Y*clipperScale))
}

func roundCInt(f float64) clipper.CInt {
	if f < 0 {
		return clipper.CInt(f - 0.5)
	}
	return clipper.CInt(f + 0.5)
}

func fromClipperPaths(paths clipper.Paths) (geom.Geom, error) {
	poly := make(geom.Polygon, 0, len(paths))
	for _, pth := range paths {
		if len(pth) < 3 {
			continue
		}
		r := make([]geom.Point, len(pth)+1)
		for j, ip := range pth {
			r[j] = geom.Point{
				X: float64(ip.X) / clipperScale,
				Y: float64(ip.Y) / clipperScale,
			}
		}
		r[len(pth)] = r[0]
		poly = append(poly, r)
	}
	if len(poly) == 0 {
		return geom.Polygon{}, nil
	}
	if err := geomop.FixOrientation(poly); err != nil {
		return nil, err
	}
	return poly, nil
}
