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

package mapgeomutil

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spatialmodel/mapgeom"
	"github.com/spatialmodel/mapgeom/encoding/geojson"
	"github.com/spatialmodel/mapgeom/encoding/shp"
	"github.com/spf13/cast"
)

// ReadFeatures reads the features of the geometry file at path. The
// file format is chosen by the file name extension: .geojson or .json
// for GeoJSON and .shp for an ESRI shapefile. Shapefile attributes
// come back as string properties.
func ReadFeatures(path string) ([]*geojson.Feature, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return geojson.DecodeFeatures(data)
	case ".shp":
		return readShapefile(path)
	default:
		return nil, fmt.Errorf("mapgeom: unknown geometry file extension %q", ext)
	}
}

func readShapefile(path string) ([]*geojson.Feature, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	names := d.FieldNames()
	var features []*geojson.Feature
	for {
		g, fields, more := d.DecodeRow(names...)
		if !more {
			break
		}
		var properties map[string]interface{}
		if len(fields) > 0 {
			properties = make(map[string]interface{}, len(fields))
			for name, value := range fields {
				properties[name] = value
			}
		}
		features = append(features, &geojson.Feature{Geometry: g, Properties: properties})
	}
	if err := d.Error(); err != nil {
		return nil, err
	}
	return features, nil
}

// WriteFeatures writes features to the geometry file at path. The file
// format is chosen by the file name extension, as in ReadFeatures. A
// shapefile holds a single shape class, so when writing one every
// feature must have a geometry and the geometries must all map to the
// same shape type; property values are written as strings.
func WriteFeatures(path string, features []*geojson.Feature) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		data, err := geojson.EncodeFeatures(features)
		if err != nil {
			return err
		}
		return ioutil.WriteFile(path, data, 0644)
	case ".shp":
		return writeShapefile(path, features)
	default:
		return fmt.Errorf("mapgeom: unknown geometry file extension %q", ext)
	}
}

func writeShapefile(path string, features []*geojson.Feature) error {
	var archetype mapgeom.Geometry
	for _, f := range features {
		if f.Geometry != nil {
			archetype = f.Geometry
			break
		}
	}
	if archetype == nil {
		return fmt.Errorf("mapgeom: a shapefile cannot hold features without geometry")
	}
	names := propertyNames(features)
	e, err := shp.NewEncoder(path, archetype, names...)
	if err != nil {
		return err
	}
	defer e.Close()
	for i, f := range features {
		if f.Geometry == nil {
			return fmt.Errorf("mapgeom: a shapefile cannot hold features without geometry")
		}
		values := make([]string, len(names))
		for j, name := range names {
			if v, ok := f.Properties[name]; ok {
				values[j] = cast.ToString(v)
			}
		}
		if err := e.Encode(f.Geometry, values...); err != nil {
			return fmt.Errorf("mapgeom: writing feature %d: %v", i, err)
		}
	}
	return nil
}

// propertyNames returns the sorted union of the features' property
// names.
func propertyNames(features []*geojson.Feature) []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range features {
		for name := range f.Properties {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
