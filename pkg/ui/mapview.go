// mapview.go - ASCII scatter map of the selected node's samples.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/analysis"
)

// MapView plots sample markers on a character grid using an equirectangular
// projection over the sample cloud's padded bounding box. It implements
// selection.MapSink.
type MapView struct {
	theme   Theme
	width   int
	height  int
	records []aggregate.Sample
	stats   analysis.GeoStats
}

// NewMapView creates an empty map pane.
func NewMapView(theme Theme) MapView {
	return MapView{theme: theme}
}

// SetSize updates the pane dimensions.
func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Clear discards the current markers.
func (m *MapView) Clear() {
	m.records = nil
	m.stats = analysis.GeoStats{}
}

// UpdateMap replaces the plotted markers.
func (m *MapView) UpdateMap(records []aggregate.Sample) {
	m.records = records
	m.stats = analysis.Summarize(aggregate.Result{Samples: records, TotalSamples: len(records)})
}

// View renders the grid. Markers share a cell when they project onto the
// same character; the centroid renders as "+" on top.
func (m *MapView) View() string {
	w, h := m.width, m.height
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}

	if len(m.records) == 0 {
		muted := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted)
		return muted.Render("No samples to plot.")
	}

	minLat, maxLat, minLon, maxLon := m.extent()

	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}
	plot := func(lat, lon float64, r rune) {
		x := int((lon - minLon) / (maxLon - minLon) * float64(w-1))
		y := int((maxLat - lat) / (maxLat - minLat) * float64(h-1))
		grid[y][x] = r
	}

	for _, s := range m.records {
		plot(s.Coord.Lat, s.Coord.Lon, '•')
	}
	plot(m.stats.Centroid.Lat, m.stats.Centroid.Lon, '+')

	var sb strings.Builder
	for _, row := range grid {
		line := string(row)
		line = strings.ReplaceAll(line, "•", m.theme.Marker.Render("•"))
		line = strings.ReplaceAll(line, "+", m.theme.Centroid.Render("+"))
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render(
		fmt.Sprintf("lat [%.2f, %.2f]  lon [%.2f, %.2f]  %d samples",
			minLat, maxLat, minLon, maxLon, len(m.records))))
	return sb.String()
}

// extent returns the padded bounding box of the markers. Degenerate boxes
// (a single point, or samples on one parallel) get a minimum span so the
// projection never divides by zero.
func (m *MapView) extent() (minLat, maxLat, minLon, maxLon float64) {
	b := m.stats.Bounds
	minLat, maxLat, minLon, maxLon = b.MinLat, b.MaxLat, b.MinLon, b.MaxLon

	const minSpan = 2.0
	if maxLat-minLat < minSpan {
		mid := (maxLat + minLat) / 2
		minLat, maxLat = mid-minSpan/2, mid+minSpan/2
	}
	if maxLon-minLon < minSpan {
		mid := (maxLon + minLon) / 2
		minLon, maxLon = mid-minSpan/2, mid+minSpan/2
	}

	// Pad 10% so edge markers do not sit on the border.
	latPad := (maxLat - minLat) * 0.1
	lonPad := (maxLon - minLon) * 0.1
	minLat = math.Max(minLat-latPad, -90)
	maxLat = math.Min(maxLat+latPad, 90)
	minLon = math.Max(minLon-lonPad, -180)
	maxLon = math.Min(maxLon+lonPad, 180)
	return minLat, maxLat, minLon, maxLon
}
