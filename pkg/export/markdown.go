// Package export renders aggregation results into shareable formats: a
// markdown report, a GeoJSON feature collection, and an SVG scatter map.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/analysis"
)

// Markdown renders a report for one selected node: summary bullets, the
// geographic footprint, and a per-sample table in traversal order.
func Markdown(res aggregate.Result, stats analysis.GeoStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", res.NodeLabel)
	fmt.Fprintf(&sb, "Generated: %s\n\n", time.Now().Format(time.RFC1123))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Taxa**: %d\n", res.TotalTaxa)
	fmt.Fprintf(&sb, "- **Samples**: %d\n", res.TotalSamples)
	if stats.HasSamples {
		fmt.Fprintf(&sb, "- **Centroid**: %.4f, %.4f\n", stats.Centroid.Lat, stats.Centroid.Lon)
		fmt.Fprintf(&sb, "- **Spread (σ lat/lon)**: %.4f° / %.4f°\n", stats.StdDevLat, stats.StdDevLon)
		fmt.Fprintf(&sb, "- **Bounds**: [%.4f, %.4f] to [%.4f, %.4f]\n",
			stats.Bounds.MinLat, stats.Bounds.MinLon, stats.Bounds.MaxLat, stats.Bounds.MaxLon)
	}
	if stats.Earliest != "" {
		fmt.Fprintf(&sb, "- **Collected**: %s to %s\n", stats.Earliest, stats.Latest)
	}
	sb.WriteString("\n")

	if res.TotalSamples == 0 {
		sb.WriteString("_No recorded samples under this node._\n")
		return sb.String()
	}

	sb.WriteString("## Samples\n\n")
	sb.WriteString("| Taxon | Latitude | Longitude | Collected |\n")
	sb.WriteString("|-------|----------|-----------|-----------|\n")
	for _, s := range res.Samples {
		collected := s.Meta.CollectedOn
		if collected == "" {
			collected = "-"
		}
		fmt.Fprintf(&sb, "| %s | %.4f | %.4f | %s |\n", s.Taxon, s.Coord.Lat, s.Coord.Lon, collected)
	}
	return sb.String()
}
