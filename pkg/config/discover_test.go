package config

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDiscoverFindsConventionalNames(t *testing.T) {
	dir := t.TempDir()
	tree := touch(t, dir, "tree.nwk")
	yamlPath := touch(t, dir, "samples.yaml")
	touch(t, dir, "samples.db") // yaml wins over db

	in, err := Discover(dir, Inputs{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if in.TreePath != tree {
		t.Errorf("TreePath = %q, want %q", in.TreePath, tree)
	}
	if in.SamplesPath != yamlPath {
		t.Errorf("SamplesPath = %q, want %q", in.SamplesPath, yamlPath)
	}
	if in.SamplesDB != "" {
		t.Errorf("SamplesDB = %q, want empty", in.SamplesDB)
	}
}

func TestDiscoverFallsBackToSQLite(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "tree.newick")
	db := touch(t, dir, "samples.db")

	in, err := Discover(dir, Inputs{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if in.SamplesDB != db {
		t.Errorf("SamplesDB = %q, want %q", in.SamplesDB, db)
	}
}

func TestDiscoverKeepsExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "tree.nwk")

	in, err := Discover(dir, Inputs{TreePath: "explicit.nwk", SamplesPath: "explicit.yaml"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if in.TreePath != "explicit.nwk" || in.SamplesPath != "explicit.yaml" {
		t.Errorf("explicit paths overwritten: %+v", in)
	}
}

func TestDiscoverNoTree(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(dir, Inputs{}); err == nil {
		t.Error("expected error when no tree file can be resolved")
	}
}

func TestDiscoverSamplesOptional(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "tree.nwk")

	in, err := Discover(dir, Inputs{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if in.SamplesPath != "" || in.SamplesDB != "" {
		t.Errorf("expected no sample paths, got %+v", in)
	}
}
