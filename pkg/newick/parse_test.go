package newick

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, text string) *Node {
	t.Helper()
	root, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return root
}

// TestParseTwoLeaves verifies the basic structural round-trip: two named
// leaves with branch lengths and no grandchildren.
func TestParseTwoLeaves(t *testing.T) {
	root := mustParse(t, "(A:1,B:2);")

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d:\n%s", len(root.Children), root)
	}
	want := []struct {
		name   string
		length float64
	}{
		{"A", 1},
		{"B", 2},
	}
	for i, w := range want {
		child := root.Children[i]
		if child.Name != w.name {
			t.Errorf("child %d: expected name %q, got %q", i, w.name, child.Name)
		}
		if child.Length == nil {
			t.Errorf("child %d: expected branch length %g, got nil", i, w.length)
		} else if *child.Length != w.length {
			t.Errorf("child %d: expected branch length %g, got %g", i, w.length, *child.Length)
		}
		if len(child.Children) != 0 {
			t.Errorf("child %d: expected leaf, got %d grandchildren", i, len(child.Children))
		}
	}
}

// TestParsePlaceholderNames verifies that unnamed internal nodes receive
// synthesized names that are non-empty, distinct from the leaf names, and
// distinct from each other within one parse.
func TestParsePlaceholderNames(t *testing.T) {
	root := mustParse(t, "((A,B),C);")

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children of root, got %d:\n%s", len(root.Children), root)
	}
	inner := root.Children[0]
	if len(inner.Children) != 2 {
		t.Fatalf("expected inner node with 2 children, got %d", len(inner.Children))
	}

	seen := map[string]bool{"A": true, "B": true, "C": true}
	for _, n := range []*Node{inner, root} {
		if n.Name == "" {
			t.Errorf("expected synthesized name, got empty string")
		}
		if !strings.HasPrefix(n.Name, "Node_") {
			t.Errorf("expected Node_<n> placeholder, got %q", n.Name)
		}
		if seen[n.Name] {
			t.Errorf("synthesized name %q collides with another name in the same parse", n.Name)
		}
		seen[n.Name] = true
	}
}

// TestParseFiveLeafTree checks leaf identity and left-to-right order on a
// deeper tree with fractional branch lengths.
func TestParseFiveLeafTree(t *testing.T) {
	root := mustParse(t, "((A:0.9,(B:0.,(C:0.3,D:0.4):0.5):0.1):0.6,E:2.8);")

	var leaves []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			leaves = append(leaves, n.Name)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	want := []string{"A", "B", "C", "D", "E"}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %d (%v)", len(want), len(leaves), leaves)
	}
	for i, name := range want {
		if leaves[i] != name {
			t.Errorf("leaf %d: expected %q, got %q", i, name, leaves[i])
		}
	}
}

func TestParseBranchLengths(t *testing.T) {
	root := mustParse(t, "(A:0.25,B)R:1e-3;")

	if a := root.Children[0]; a.Length == nil || *a.Length != 0.25 {
		t.Errorf("expected A length 0.25, got %v", a.Length)
	}
	if b := root.Children[1]; b.Length != nil {
		t.Errorf("expected B with nil length, got %g", *b.Length)
	}
	if root.Name != "R" {
		t.Errorf("expected root label R, got %q", root.Name)
	}
	if root.Length == nil || *root.Length != 1e-3 {
		t.Errorf("expected root length 1e-3, got %v", root.Length)
	}
}

func TestParseSingleLeaf(t *testing.T) {
	root := mustParse(t, "A;")
	if root.Name != "A" || !root.IsLeaf() {
		t.Errorf("expected single leaf A, got:\n%s", root)
	}
}

func TestParseWhitespaceTolerant(t *testing.T) {
	root := mustParse(t, "(A:1,\n  B:2)\n;")
	if len(root.Children) != 2 || root.Children[1].Name != "B" {
		t.Errorf("whitespace input parsed wrong:\n%s", root)
	}
}

// TestParseMalformed verifies the strict rejection contract: a grammar
// violation must yield a *ParseError and no tree at all.
func TestParseMalformed(t *testing.T) {
	inputs := []struct {
		text   string
		reason string
	}{
		{"(A,B", "unbalanced: missing ')' and ';'"},
		{"((A,B);", "unbalanced: descendant list left open"},
		{"(A,B));", "unbalanced: extra ')'"},
		{"(A:x,B);", "non-numeric branch length"},
		{"(A:,B);", "':' with no length"},
		{"(A:-1,B);", "negative branch length"},
		{"(A,B);extra", "trailing content after ';'"},
		{"(A,B);(C,D);", "second tree after ';'"},
		{"A,B;", "',' outside any descendant list"},
		{"", "empty input"},
	}
	for _, in := range inputs {
		root, err := Parse(in.text)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, expected failure (%s):\n%s", in.text, in.reason, root)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): expected *ParseError, got %T (%v)", in.text, err, err)
		}
		if root != nil {
			t.Errorf("Parse(%q): returned partial tree alongside error", in.text)
		}
	}
}

// TestParseCounterIsolation ensures the placeholder counter restarts for
// each parse instead of leaking across calls.
func TestParseCounterIsolation(t *testing.T) {
	first := mustParse(t, "(A,B);")
	second := mustParse(t, "(C,D);")
	if first.Name != second.Name {
		t.Errorf("expected identical placeholder roots across parses, got %q and %q", first.Name, second.Name)
	}
}

func TestTokenize(t *testing.T) {
	toks := tokenize("(A:1,B);")
	var got []string
	for _, tk := range toks {
		got = append(got, tk.text)
	}
	want := []string{"", "(", "A", ":", "1", ",", "B", ")", "", ";", ""}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
