package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/phylomap/pkg/aggregate"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

func mapRecords() []aggregate.Sample {
	return []aggregate.Sample{
		{Taxon: "A", Coord: samples.Coordinate{Lat: 10, Lon: 10}},
		{Taxon: "B", Coord: samples.Coordinate{Lat: -10, Lon: -10}},
	}
}

func TestMapViewEmpty(t *testing.T) {
	mv := NewMapView(newTreeTestTheme())
	mv.SetSize(40, 10)
	if !strings.Contains(mv.View(), "No samples") {
		t.Error("expected empty-state message")
	}
}

func TestMapViewPlotsMarkers(t *testing.T) {
	mv := NewMapView(newTreeTestTheme())
	mv.SetSize(40, 10)
	mv.UpdateMap(mapRecords())

	view := mv.View()
	if got := strings.Count(view, "•"); got != 2 {
		t.Errorf("expected 2 markers, got %d:\n%s", got, view)
	}
	if !strings.Contains(view, "+") {
		t.Error("expected centroid marker")
	}
	if !strings.Contains(view, "2 samples") {
		t.Error("expected sample count in footer")
	}
}

func TestMapViewClear(t *testing.T) {
	mv := NewMapView(newTreeTestTheme())
	mv.SetSize(40, 10)
	mv.UpdateMap(mapRecords())
	mv.Clear()
	if !strings.Contains(mv.View(), "No samples") {
		t.Error("expected empty state after Clear")
	}
}

func TestMapViewSinglePointNoPanic(t *testing.T) {
	mv := NewMapView(newTreeTestTheme())
	mv.SetSize(30, 8)
	mv.UpdateMap([]aggregate.Sample{
		{Taxon: "A", Coord: samples.Coordinate{Lat: 52.37, Lon: 4.89}},
	})
	view := mv.View()
	if !strings.Contains(view, "1 samples") {
		t.Errorf("expected footer for single sample:\n%s", view)
	}
}

func TestMapViewPoleAndDatelineClamped(t *testing.T) {
	mv := NewMapView(newTreeTestTheme())
	mv.SetSize(30, 8)
	mv.UpdateMap([]aggregate.Sample{
		{Taxon: "N", Coord: samples.Coordinate{Lat: 90, Lon: 180}},
		{Taxon: "S", Coord: samples.Coordinate{Lat: -90, Lon: -180}},
	})
	minLat, maxLat, minLon, maxLon := mv.extent()
	if minLat < -90 || maxLat > 90 || minLon < -180 || maxLon > 180 {
		t.Errorf("extent exceeds WGS 84: lat [%g, %g] lon [%g, %g]", minLat, maxLat, minLon, maxLon)
	}
}
