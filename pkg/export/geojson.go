package export

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
)

// geoJSONCollection is a standard GeoJSON FeatureCollection of Point
// features, one per sample. Coordinates follow the GeoJSON convention of
// [longitude, latitude].
type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   geoJSONGeometry   `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

type geoJSONGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoJSON encodes the result's samples as a GeoJSON FeatureCollection,
// suitable for any map renderer or GIS tool.
func GeoJSON(res aggregate.Result) ([]byte, error) {
	coll := geoJSONCollection{
		Type:     "FeatureCollection",
		Features: make([]geoJSONFeature, 0, len(res.Samples)),
	}
	for _, s := range res.Samples {
		props := map[string]string{
			"taxon": s.Taxon,
			"node":  res.NodeLabel,
		}
		if s.Meta.CollectedOn != "" {
			props["collected_on"] = s.Meta.CollectedOn
		}
		coll.Features = append(coll.Features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{s.Coord.Lon, s.Coord.Lat},
			},
			Properties: props,
		})
	}

	data, err := json.MarshalIndent(coll, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return data, nil
}
