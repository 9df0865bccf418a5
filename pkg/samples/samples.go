// Package samples holds the per-taxon geographic sample data the viewer
// joins against the tree: an ordered list of coordinates per taxon plus
// collection metadata. The data is loaded once at startup (from YAML or a
// SQLite database) and read-only afterwards.
package samples

import (
	"fmt"
	"sort"
)

// Coordinate is a WGS 84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Validate checks that the coordinate is within WGS 84 range.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %g out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %g out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Metadata carries per-taxon collection details. CollectedOn is kept as the
// source string; the analysis layer parses it best-effort.
type Metadata struct {
	CollectedOn string `json:"collected_on,omitempty" yaml:"collected_on,omitempty"`
}

// Set is the read-only mapping from taxon name to its samples and metadata.
// A taxon absent from the set is a normal case, not an error: lookups return
// empty values and aggregation degrades to zero samples for that leaf.
type Set struct {
	coords map[string][]Coordinate
	meta   map[string]Metadata
}

// NewSet builds a Set from already-assembled mappings. Both maps are
// retained as given; callers must not mutate them afterwards.
func NewSet(coords map[string][]Coordinate, meta map[string]Metadata) *Set {
	if coords == nil {
		coords = make(map[string][]Coordinate)
	}
	if meta == nil {
		meta = make(map[string]Metadata)
	}
	return &Set{coords: coords, meta: meta}
}

// Coordinates returns the ordered samples recorded for taxon, or nil when
// the taxon has none. The returned slice is the set's own backing storage
// and must be treated as read-only.
func (s *Set) Coordinates(taxon string) []Coordinate {
	return s.coords[taxon]
}

// Metadata returns the metadata recorded for taxon and whether any exists.
func (s *Set) Metadata(taxon string) (Metadata, bool) {
	m, ok := s.meta[taxon]
	return m, ok
}

// Taxa returns every taxon name with at least one recorded sample, sorted.
func (s *Set) Taxa() []string {
	names := make([]string, 0, len(s.coords))
	for name := range s.coords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of samples across all taxa.
func (s *Set) Len() int {
	n := 0
	for _, cs := range s.coords {
		n += len(cs)
	}
	return n
}
