// Package analysis derives geographic summary statistics from an
// aggregation result: centroid, dispersion, bounding box, and collection
// date range. These feed the summary panel and the robot JSON output.
package analysis

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

// Bounds is the axis-aligned bounding box of a sample cloud.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// GeoStats summarizes the spatial and temporal footprint of one node's
// samples. All fields are zero when the node has no samples; HasSamples
// distinguishes that case from a cloud genuinely centered at 0,0.
type GeoStats struct {
	SampleCount int                `json:"sample_count"`
	TaxonCount  int                `json:"taxon_count"`
	HasSamples  bool               `json:"has_samples"`
	Centroid    samples.Coordinate `json:"centroid"`
	// StdDevLat and StdDevLon measure dispersion in degrees along each
	// axis; zero for a single sample.
	StdDevLat float64 `json:"stddev_lat"`
	StdDevLon float64 `json:"stddev_lon"`
	Bounds    Bounds  `json:"bounds"`
	// Earliest and Latest are collection dates across the contributing
	// taxa, empty when no metadata carries a date.
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// Summarize computes GeoStats over the samples of one aggregation result.
func Summarize(res aggregate.Result) GeoStats {
	gs := GeoStats{
		SampleCount: res.TotalSamples,
		TaxonCount:  res.TotalTaxa,
	}
	if len(res.Samples) == 0 {
		return gs
	}
	gs.HasSamples = true

	lats := make([]float64, len(res.Samples))
	lons := make([]float64, len(res.Samples))
	gs.Bounds = Bounds{MinLat: 90, MinLon: 180, MaxLat: -90, MaxLon: -180}
	for i, s := range res.Samples {
		lats[i] = s.Coord.Lat
		lons[i] = s.Coord.Lon
		if s.Coord.Lat < gs.Bounds.MinLat {
			gs.Bounds.MinLat = s.Coord.Lat
		}
		if s.Coord.Lat > gs.Bounds.MaxLat {
			gs.Bounds.MaxLat = s.Coord.Lat
		}
		if s.Coord.Lon < gs.Bounds.MinLon {
			gs.Bounds.MinLon = s.Coord.Lon
		}
		if s.Coord.Lon > gs.Bounds.MaxLon {
			gs.Bounds.MaxLon = s.Coord.Lon
		}
	}

	gs.Centroid = samples.Coordinate{
		Lat: stat.Mean(lats, nil),
		Lon: stat.Mean(lons, nil),
	}
	if len(res.Samples) > 1 {
		gs.StdDevLat = stat.StdDev(lats, nil)
		gs.StdDevLon = stat.StdDev(lons, nil)
	}

	gs.Earliest, gs.Latest = dateRange(res.Samples)
	return gs
}

// dateRange finds the earliest and latest collection dates among the
// samples. Dates parse best-effort as 2006-01-02; unparseable values fall
// back to lexicographic comparison, which matches for ISO-style strings.
func dateRange(records []aggregate.Sample) (earliest, latest string) {
	var earliestT, latestT time.Time
	for _, s := range records {
		d := s.Meta.CollectedOn
		if d == "" {
			continue
		}
		if ts, err := time.Parse("2006-01-02", d); err == nil {
			if earliestT.IsZero() || ts.Before(earliestT) {
				earliestT, earliest = ts, d
			}
			if latestT.IsZero() || ts.After(latestT) {
				latestT, latest = ts, d
			}
			continue
		}
		if earliest == "" || d < earliest {
			earliest = d
		}
		if latest == "" || d > latest {
			latest = d
		}
	}
	return earliest, latest
}
