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

package op

// CapStyle selects how a buffered line is finished at its end points.
type CapStyle int

const (
	// CapDefault renders the same as CapRound.
	CapDefault CapStyle = iota
	// CapSquare extends the buffer past the line end by half the
	// buffer distance and cuts it off square.
	CapSquare
	// CapRound finishes the buffer with a semicircle around the line
	// end.
	CapRound
	// CapFlat cuts the buffer off at the line end.
	CapFlat
)

func (c CapStyle) String() string {
	switch c {
	case CapDefault:
		return "default"
	case CapSquare:
		return "square"
	case CapRound:
		return "round"
	case CapFlat:
		return "flat"
	}
	return "unknown"
}

// JoinStyle selects how a buffer outline turns an outside corner.
type JoinStyle int

const (
	// JoinRound rounds outside corners with a circular arc.
	JoinRound JoinStyle = iota
	// JoinMitre extends the outline edges until they meet in a point.
	JoinMitre
	// JoinBevel cuts outside corners off with a straight chamfer.
	JoinBevel
)

func (j JoinStyle) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinMitre:
		return "mitre"
	case JoinBevel:
		return "bevel"
	}
	return "unknown"
}

// BufferParams control the shape of the region built by Operator.Buffer.
// The zero value gives round caps and joins, the default corner
// smoothness, and a buffer on both sides of the input.
type BufferParams struct {
	// Cap is the end cap style for buffered lines.
	Cap CapStyle

	// Join is the corner style for the buffer outline.
	Join JoinStyle

	// CornerSegs is the number of line segments used to approximate a
	// quarter circle in round caps and joins. Values less than one
	// select the default of 8.
	CornerSegs int

	// SingleSided restricts the buffer of a line to one of its sides,
	// chosen with LeftSide. The input must be a line geometry, and the
	// sign of the buffer distance is ignored. Cap settings do not apply;
	// the region ends flat at the line ends.
	SingleSided bool

	// LeftSide selects the left side, relative to the direction of the
	// line, for a single-sided buffer. The default is the right side.
	LeftSide bool
}
