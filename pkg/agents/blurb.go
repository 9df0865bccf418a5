// Package agents provides AGENTS.md integration for AI coding agents.
// It detects, injects, and upgrades a usage blurb that teaches agents the
// robot interface instead of the interactive TUI.
package agents

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// BlurbVersion is the current version of the agent instructions blurb.
// Increment this when making breaking changes to the blurb format.
const BlurbVersion = 1

// BlurbStartMarker marks the beginning of injected agent instructions.
const BlurbStartMarker = "<!-- phylomap-agent-instructions-v1 -->"

// BlurbEndMarker marks the end of injected agent instructions.
const BlurbEndMarker = "<!-- end-phylomap-agent-instructions -->"

// AgentBlurb contains the instructions to be appended to AGENTS.md files.
const AgentBlurb = `<!-- phylomap-agent-instructions-v1 -->

---

## Phylomap Integration

This project uses [phylomap](https://github.com/vanderheijden86/phylomap) to explore
phylogenies with georeferenced samples. The tree lives in ` + "`" + `tree.nwk` + "`" + ` and the
sample mapping in ` + "`" + `samples.yaml` + "`" + ` (or ` + "`" + `samples.db` + "`" + `).

### Essential Commands

` + "```" + `bash
# Interactive viewer (launches TUI - avoid in automated sessions)
phylomap

# CLI commands for agents (use these instead)
phylomap --robot-summary root          # Whole-tree aggregation as JSON
phylomap --robot-summary "Node_3"      # One internal node's subtree
phylomap --robot-summary "H1N1_TX_09"  # One taxon's samples
phylomap --export-geojson out.geojson  # All samples as RFC 7946 GeoJSON
phylomap --export-md report.md         # Readable report with sample tables
` + "```" + `

### Key Concepts

- **Leaves vs nodes**: Leaves are taxa; unlabeled internal nodes get synthetic
  ` + "`" + `Node_<n>` + "`" + ` names you can pass to ` + "`" + `--robot-summary` + "`" + `.
- **Aggregation**: A node's samples are the ordered concatenation of every
  descendant taxon's samples. Taxa missing from the mapping contribute nothing.
- **Geo output**: ` + "`" + `geo` + "`" + ` carries centroid, spread, bounding box, and date range.

<!-- end-phylomap-agent-instructions -->`

// SupportedAgentFiles lists the filenames that can contain agent instructions.
var SupportedAgentFiles = []string{
	"AGENTS.md",
	"CLAUDE.md",
	"agents.md",
	"claude.md",
}

// blurbVersionRegex extracts the version number from a blurb marker.
var blurbVersionRegex = regexp.MustCompile(`<!-- phylomap-agent-instructions-v(\d+) -->`)

// ContainsBlurb checks if the content already contains a phylomap agent blurb.
func ContainsBlurb(content string) bool {
	return strings.Contains(content, "<!-- phylomap-agent-instructions-v")
}

// GetBlurbVersion extracts the version number from existing blurb content.
func GetBlurbVersion(content string) int {
	matches := blurbVersionRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return 0
	}
	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return version
}

// NeedsUpdate checks if the content has an older version of the blurb that
// should be updated.
func NeedsUpdate(content string) bool {
	if !ContainsBlurb(content) {
		return false
	}
	return GetBlurbVersion(content) < BlurbVersion
}

// AppendBlurb appends the agent blurb to the given content.
func AppendBlurb(content string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n"
	content += AgentBlurb
	content += "\n"
	return content
}

// RemoveBlurb removes an existing blurb from the content.
func RemoveBlurb(content string) string {
	startIdx := strings.Index(content, "<!-- phylomap-agent-instructions-v")
	if startIdx == -1 {
		return content
	}
	endIdx := strings.Index(content, BlurbEndMarker)
	if endIdx == -1 {
		return content
	}
	endIdx += len(BlurbEndMarker)
	for endIdx < len(content) && (content[endIdx] == '\n' || content[endIdx] == '\r') {
		endIdx++
	}
	for startIdx > 0 && (content[startIdx-1] == '\n' || content[startIdx-1] == '\r') {
		startIdx--
	}
	return content[:startIdx] + content[endIdx:]
}

// UpdateBlurb replaces an existing blurb with the current version.
func UpdateBlurb(content string) string {
	content = RemoveBlurb(content)
	return AppendBlurb(content)
}

// FindAgentFile returns the first supported agent file present in dir, or
// empty when none exists.
func FindAgentFile(dir string) string {
	for _, name := range SupportedAgentFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// EnsureBlurb installs or upgrades the blurb in the given file, creating it
// when missing. Returns true when the file was modified.
func EnsureBlurb(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	content := string(data)

	switch {
	case !ContainsBlurb(content):
		content = AppendBlurb(content)
	case NeedsUpdate(content):
		content = UpdateBlurb(content)
	default:
		return false, nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}
