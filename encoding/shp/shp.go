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

// Package shp reads and writes geometries as shapefiles. Geometries
// are written using the Z shape types so that z coordinates survive a
// round trip; the planar and measured shape types read back with a
// zero z. Attribute data is carried as strings.
package shp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/spatialmodel/mapgeom"
)

// attributeLength is the fixed width of the string attribute fields in
// created shapefiles.
const attributeLength = 50

// Decoder is a wrapper around the github.com/jonas-p/go-shp shapefile
// reader.
type Decoder struct {
	shp.Reader
	row          int
	fieldIndices map[string]int
	err          error
}

// NewDecoder opens the shapefile at filename for reading. The ".shp"
// suffix may be omitted.
func NewDecoder(filename string) (*Decoder, error) {
	fname := strings.TrimSuffix(filename, ".shp")
	r, err := shp.Open(fname + ".shp")
	if err != nil {
		return nil, err
	}
	return &Decoder{Reader: *r}, nil
}

// Close closes the underlying reader.
func (d *Decoder) Close() {
	d.Reader.Close()
}

// Error returns the first error encountered while decoding rows.
func (d *Decoder) Error() error {
	return d.err
}

// FieldNames returns the names of the shapefile's attribute fields.
func (d *Decoder) FieldNames() []string {
	fields := d.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = fieldName(f.Name)
	}
	return names
}

func (d *Decoder) getFieldIndices() {
	if d.fieldIndices == nil {
		d.fieldIndices = make(map[string]int)
		for i, f := range d.Fields() {
			d.fieldIndices[strings.ToLower(fieldName(f.Name))] = i
		}
	}
}

// DecodeRow reads the next shapefile record, returning its geometry,
// the values of the named attribute fields (matched case
// insensitively), and whether a record was read. A null shape decodes
// to a nil geometry. Iteration stops early if decoding fails; call
// Error after the last row to tell exhaustion from failure.
func (d *Decoder) DecodeRow(fieldNames ...string) (g mapgeom.Geometry, fields map[string]string, more bool) {
	if d.err != nil || !d.Next() {
		return nil, nil, false
	}
	d.getFieldIndices()
	_, shape := d.Shape()
	g, d.err = shapeGeometry(shape)
	if d.err != nil {
		return nil, nil, false
	}
	fields = make(map[string]string, len(fieldNames))
	for _, name := range fieldNames {
		i, ok := d.fieldIndices[strings.ToLower(name)]
		if !ok {
			d.err = fmt.Errorf("shp: shapefile has no field %q", name)
			return nil, nil, false
		}
		fields[name] = cleanAttribute(d.ReadAttribute(d.row, i))
	}
	d.row++
	return g, fields, true
}

// fieldName converts a shapefile field name to a usable string.
func fieldName(name [11]byte) string {
	b := bytes.Trim(name[:], "\x00")
	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

// cleanAttribute strips the padding dbf attribute values carry.
func cleanAttribute(v string) string {
	return strings.TrimSpace(strings.Trim(v, "\x00"))
}

// Encoder is a wrapper around the github.com/jonas-p/go-shp shapefile
// writer.
type Encoder struct {
	shp.Writer
	shapeType  shp.ShapeType
	fieldCount int
	row        int
}

// NewEncoder creates a shapefile at filename, which should carry the
// ".shp" suffix. The shape type is chosen from archetype and every
// geometry encoded later must map to the same shape type: geometries
// must be of the archetype's variant, and a point set archetype
// additionally fixes whether rows hold one point or several. The named
// attribute fields are created as fixed-width strings.
func NewEncoder(filename string, archetype mapgeom.Geometry, fieldNames ...string) (*Encoder, error) {
	t, err := shapeTypeOf(archetype)
	if err != nil {
		return nil, err
	}
	w, err := shp.Create(filename, t)
	if err != nil {
		return nil, err
	}
	e := &Encoder{Writer: *w, shapeType: t, fieldCount: len(fieldNames)}
	fields := make([]shp.Field, len(fieldNames))
	for i, name := range fieldNames {
		fields[i] = shp.StringField(name, attributeLength)
	}
	e.Writer.SetFields(fields)
	return e, nil
}

// Encode writes g and its attribute values as one shapefile record.
// vals must match the fields the encoder was created with.
func (e *Encoder) Encode(g mapgeom.Geometry, vals ...string) error {
	if g == nil || !g.Valid() {
		return fmt.Errorf("shp: cannot encode an invalid geometry")
	}
	t, err := shapeTypeOf(g)
	if err != nil {
		return err
	}
	if t != e.shapeType {
		return fmt.Errorf("shp: geometry shape type %d does not match shapefile shape type %d",
			t, e.shapeType)
	}
	if len(vals) != e.fieldCount {
		return fmt.Errorf("shp: have %d attribute values, want %d", len(vals), e.fieldCount)
	}
	shape, err := geometryShape(g)
	if err != nil {
		return err
	}
	e.Writer.Write(shape)
	for i, v := range vals {
		e.Writer.WriteAttribute(e.row, i, v)
	}
	e.row++
	return nil
}

// Close flushes and closes the underlying writer.
func (e *Encoder) Close() {
	e.Writer.Close()
}
