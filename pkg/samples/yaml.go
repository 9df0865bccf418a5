package samples

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile mirrors the on-disk sample file layout:
//
//	taxa:
//	  A:
//	    collected_on: 2021-03-14
//	    points:
//	      - [52.37, 4.89]
//	      - [48.85, 2.35]
//
// Points are [lat, lon] pairs, in recording order.
type yamlFile struct {
	Taxa map[string]yamlTaxon `yaml:"taxa"`
}

type yamlTaxon struct {
	CollectedOn string      `yaml:"collected_on"`
	Points      [][]float64 `yaml:"points"`
}

// LoadYAML reads a sample mapping from a YAML file.
func LoadYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Set, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse samples yaml: %w", err)
	}

	coords := make(map[string][]Coordinate, len(file.Taxa))
	meta := make(map[string]Metadata, len(file.Taxa))
	for taxon, entry := range file.Taxa {
		var cs []Coordinate
		for i, p := range entry.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("taxon %s point %d: expected [lat, lon], got %d values", taxon, i, len(p))
			}
			c := Coordinate{Lat: p[0], Lon: p[1]}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("taxon %s point %d: %w", taxon, i, err)
			}
			cs = append(cs, c)
		}
		if cs != nil {
			coords[taxon] = cs
		}
		if entry.CollectedOn != "" {
			meta[taxon] = Metadata{CollectedOn: entry.CollectedOn}
		}
	}
	return NewSet(coords, meta), nil
}
