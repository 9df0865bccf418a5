// Package config resolves the viewer's input files. When the user gives no
// explicit paths, we look for conventional names in the working directory
// so `phylomap` with no flags just works inside a dataset directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Inputs names the files a session loads.
type Inputs struct {
	// TreePath is the Newick tree file.
	TreePath string
	// SamplesPath is the YAML sample mapping, empty when SamplesDB is set.
	SamplesPath string
	// SamplesDB is a SQLite sample database, empty when SamplesPath is set.
	SamplesDB string
}

// treeCandidates are tried in order when no --tree flag is given.
var treeCandidates = []string{"tree.nwk", "tree.newick", "tree.tree"}

// sampleCandidates are tried in order when neither --samples nor
// --samples-db is given. YAML is preferred over SQLite.
var sampleCandidates = []string{"samples.yaml", "samples.yml", "samples.db"}

// Discover fills in any unset input path by probing dir for conventional
// file names. Explicitly supplied paths are kept untouched. An error is
// returned only when no tree file can be resolved at all; samples are
// optional (an empty mapping still renders the tree).
func Discover(dir string, in Inputs) (Inputs, error) {
	if in.TreePath == "" {
		for _, name := range treeCandidates {
			if p := probe(dir, name); p != "" {
				in.TreePath = p
				break
			}
		}
	}
	if in.TreePath == "" {
		return in, fmt.Errorf("no tree file given and none of %v found in %s", treeCandidates, dir)
	}

	if in.SamplesPath == "" && in.SamplesDB == "" {
		for _, name := range sampleCandidates {
			p := probe(dir, name)
			if p == "" {
				continue
			}
			if filepath.Ext(name) == ".db" {
				in.SamplesDB = p
			} else {
				in.SamplesPath = p
			}
			break
		}
	}
	return in, nil
}

// probe returns the joined path when it exists as a regular file.
func probe(dir, name string) string {
	p := filepath.Join(dir, name)
	if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
		return p
	}
	return ""
}
