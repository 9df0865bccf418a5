package agents

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContainsBlurb(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "empty content",
			content:  "",
			expected: false,
		},
		{
			name:     "no blurb",
			content:  "# My AGENTS.md\n\nSome other content.",
			expected: false,
		},
		{
			name:     "has blurb v1",
			content:  "# My AGENTS.md\n\n<!-- phylomap-agent-instructions-v1 -->\nSome content\n<!-- end-phylomap-agent-instructions -->",
			expected: true,
		},
		{
			name:     "has blurb v2 (future)",
			content:  "# My AGENTS.md\n\n<!-- phylomap-agent-instructions-v2 -->\nSome content\n<!-- end-phylomap-agent-instructions -->",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ContainsBlurb(tt.content)
			if result != tt.expected {
				t.Errorf("ContainsBlurb() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetBlurbVersion(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{
			name:     "no blurb",
			content:  "plain file",
			expected: 0,
		},
		{
			name:     "version 1",
			content:  "<!-- phylomap-agent-instructions-v1 -->",
			expected: 1,
		},
		{
			name:     "version 12",
			content:  "<!-- phylomap-agent-instructions-v12 -->",
			expected: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetBlurbVersion(tt.content); got != tt.expected {
				t.Errorf("GetBlurbVersion() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAppendAndRemoveBlurbRoundTrip(t *testing.T) {
	original := "# Project notes\n\nKeep these.\n"
	withBlurb := AppendBlurb(original)

	if !ContainsBlurb(withBlurb) {
		t.Fatal("AppendBlurb did not add the blurb")
	}
	if !strings.Contains(withBlurb, "--robot-summary") {
		t.Error("blurb is missing the robot interface hint")
	}

	restored := RemoveBlurb(withBlurb)
	if ContainsBlurb(restored) {
		t.Error("RemoveBlurb left the blurb in place")
	}
	if !strings.Contains(restored, "Keep these.") {
		t.Error("RemoveBlurb damaged surrounding content")
	}
}

func TestNeedsUpdate(t *testing.T) {
	if NeedsUpdate("no blurb here") {
		t.Error("content without a blurb never needs an update")
	}
	if NeedsUpdate(AgentBlurb) {
		t.Error("current blurb must not need an update")
	}
	stale := strings.Replace(AgentBlurb, "-v1 -->", "-v0 -->", 1)
	if !NeedsUpdate(stale) {
		t.Error("older blurb version should need an update")
	}
}

func TestEnsureBlurbCreatesAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AGENTS.md")

	changed, err := EnsureBlurb(path)
	if err != nil {
		t.Fatalf("EnsureBlurb: %v", err)
	}
	if !changed {
		t.Fatal("expected first EnsureBlurb to write the file")
	}

	changed, err = EnsureBlurb(path)
	if err != nil {
		t.Fatalf("EnsureBlurb second run: %v", err)
	}
	if changed {
		t.Error("expected second EnsureBlurb to be a no-op")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if got := strings.Count(string(data), BlurbStartMarker); got != 1 {
		t.Errorf("expected exactly one blurb, found %d", got)
	}
}

func TestFindAgentFile(t *testing.T) {
	dir := t.TempDir()
	if got := FindAgentFile(dir); got != "" {
		t.Errorf("expected no agent file, got %q", got)
	}

	want := filepath.Join(dir, "CLAUDE.md")
	if err := os.WriteFile(want, []byte("# notes\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := FindAgentFile(dir); got != want {
		t.Errorf("FindAgentFile() = %q, want %q", got, want)
	}
}
