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

package mapgeom

import (
	"encoding/gob"
	"fmt"
	"io"
)

func init() {
	gob.Register(&PointSet{})
	gob.Register(&LineString{})
	gob.Register(&Ring{})
	gob.Register(&Polygon{})
	gob.Register(&MultiGeometry{})
}

// Save writes g to w as a gob stream (format description at
// https://golang.org/pkg/encoding/gob/) so that it can be read back
// with Load.
func Save(w io.Writer, g Geometry) error {
	if err := gob.NewEncoder(w).Encode(&g); err != nil {
		return fmt.Errorf("mapgeom.Save: %v", err)
	}
	return nil
}

// Load reads a geometry from a previously Saved stream.
func Load(r io.Reader) (Geometry, error) {
	var g Geometry
	if err := gob.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("mapgeom.Load: %v", err)
	}
	return g, nil
}
