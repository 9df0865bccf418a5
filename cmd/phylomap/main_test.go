package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/phylomap/pkg/newick"
	"github.com/vanderheijden86/phylomap/pkg/phylo"
	"github.com/vanderheijden86/phylomap/pkg/samples"
)

func exportFixture(t *testing.T) (*phylo.Tree, *samples.Set) {
	t.Helper()
	root, err := newick.Parse("((A:0.1,B:0.2):0.3,C:0.4);")
	if err != nil {
		t.Fatalf("parse tree: %v", err)
	}
	set := samples.NewSet(map[string][]samples.Coordinate{
		"A": {{Lat: 52.37, Lon: 4.89}, {Lat: 48.85, Lon: 2.35}},
		"B": {{Lat: -33.86, Lon: 151.21}},
	}, map[string]samples.Metadata{
		"A": {CollectedOn: "2021-03-14"},
	})
	return phylo.New(root), set
}

func TestRunExports(t *testing.T) {
	tree, set := exportFixture(t)
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "report.md")
	geojsonPath := filepath.Join(dir, "samples.geojson")
	svgPath := filepath.Join(dir, "map.svg")

	if err := runExports(tree, set, mdPath, geojsonPath, svgPath); err != nil {
		t.Fatalf("runExports: %v", err)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("reading markdown: %v", err)
	}
	for _, want := range []string{"- **Taxa**: 3", "- **Samples**: 3", "| A | 52.3700 | 4.8900 | 2021-03-14 |"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	geojson, err := os.ReadFile(geojsonPath)
	if err != nil {
		t.Fatalf("reading geojson: %v", err)
	}
	for _, want := range []string{`"FeatureCollection"`, `"taxon": "A"`, `151.21`} {
		if !strings.Contains(string(geojson), want) {
			t.Errorf("geojson missing %q", want)
		}
	}

	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("reading svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "<circle") {
		t.Errorf("svg missing markers:\n%s", svg)
	}
}

func TestRunExportsSingleFormat(t *testing.T) {
	tree, set := exportFixture(t)
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "report.md")

	if err := runExports(tree, set, mdPath, "", ""); err != nil {
		t.Fatalf("runExports: %v", err)
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("expected markdown report: %v", err)
	}
	if entries, err := os.ReadDir(dir); err != nil || len(entries) != 1 {
		t.Errorf("expected only the requested export, got %v (err %v)", entries, err)
	}
}

func TestRunExportsBadPath(t *testing.T) {
	tree, set := exportFixture(t)
	missing := filepath.Join(t.TempDir(), "no-such-dir", "report.md")
	if err := runExports(tree, set, missing, "", ""); err == nil {
		t.Error("expected error for unwritable path")
	}
}
