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

package geojson

import (
	"encoding/json"

	"github.com/spatialmodel/mapgeom"
)

// Feature couples a geometry with its attribute data. The geometry may
// be nil, matching the format's null-geometry features.
type Feature struct {
	Geometry   mapgeom.Geometry
	Properties map[string]interface{}
}

type featureDoc struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type featureCollectionDoc struct {
	Type     string        `json:"type"`
	Features []*featureDoc `json:"features"`
}

// EncodeFeatures encodes features as a GeoJSON FeatureCollection
// document.
func EncodeFeatures(features []*Feature) ([]byte, error) {
	doc := featureCollectionDoc{
		Type:     "FeatureCollection",
		Features: make([]*featureDoc, len(features)),
	}
	for i, f := range features {
		fd := &featureDoc{Type: "Feature", Properties: f.Properties}
		if f.Geometry != nil {
			g, err := ToGeoJSON(f.Geometry)
			if err != nil {
				return nil, err
			}
			fd.Geometry = g
		}
		doc.Features[i] = fd
	}
	return json.Marshal(doc)
}

// DecodeFeatures decodes a GeoJSON document into features. The document
// may be a FeatureCollection, a single Feature, or a bare geometry; a
// bare geometry decodes to one feature with no properties.
func DecodeFeatures(data []byte) ([]*Feature, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Type {
	case "FeatureCollection":
		var doc featureCollectionDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		features := make([]*Feature, len(doc.Features))
		for i, fd := range doc.Features {
			f, err := fromFeatureDoc(fd)
			if err != nil {
				return nil, err
			}
			features[i] = f
		}
		return features, nil
	case "Feature":
		var doc featureDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		f, err := fromFeatureDoc(&doc)
		if err != nil {
			return nil, err
		}
		return []*Feature{f}, nil
	default:
		g, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return []*Feature{{Geometry: g}}, nil
	}
}

func fromFeatureDoc(doc *featureDoc) (*Feature, error) {
	f := &Feature{Properties: doc.Properties}
	if doc.Geometry == nil {
		return f, nil
	}
	g, err := FromGeoJSON(doc.Geometry)
	if err != nil {
		return nil, err
	}
	f.Geometry = g
	return f, nil
}
